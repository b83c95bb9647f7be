// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"testing"

	"github.com/pdiddy/docharvest/pkg/types"
)

func resultsFor(links ...string) []types.SearchResult {
	out := make([]types.SearchResult, len(links))
	for i, l := range links {
		out[i] = types.SearchResult{Link: l}
	}
	return out
}

func TestFilterLinks(t *testing.T) {
	tests := []struct {
		name    string
		results []types.SearchResult
		suffix  string
		want    []string
	}{
		{
			name:    "keeps matching links in order",
			results: resultsFor("http://x/a.pdf", "http://x/page.html", "http://x/b.pdf"),
			suffix:  ".pdf",
			want:    []string{"http://x/a.pdf", "http://x/b.pdf"},
		},
		{
			name:    "empty input yields empty output",
			results: nil,
			suffix:  ".pdf",
			want:    nil,
		},
		{
			name:    "no matches",
			results: resultsFor("http://x/a.html", "http://x/b.txt"),
			suffix:  ".pdf",
			want:    nil,
		},
		{
			name:    "match is case-sensitive",
			results: resultsFor("http://x/a.PDF", "http://x/b.pdf"),
			suffix:  ".pdf",
			want:    []string{"http://x/b.pdf"},
		},
		{
			name:    "duplicates are preserved",
			results: resultsFor("http://x/a.pdf", "http://x/a.pdf"),
			suffix:  ".pdf",
			want:    []string{"http://x/a.pdf", "http://x/a.pdf"},
		},
		{
			name:    "query strings are not stripped",
			results: resultsFor("http://x/a.pdf?download=1", "http://x/b.pdf"),
			suffix:  ".pdf",
			want:    []string{"http://x/b.pdf"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterLinks(tt.results, tt.suffix)
			if len(got) != len(tt.want) {
				t.Fatalf("FilterLinks() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("FilterLinks()[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}
