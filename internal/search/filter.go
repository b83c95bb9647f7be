// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"strings"

	"github.com/pdiddy/docharvest/pkg/types"
)

// FilterLinks returns the links of the results whose URL ends with suffix,
// preserving input order. The match is a case-sensitive exact suffix
// comparison with no URL normalization; duplicates are kept.
func FilterLinks(results []types.SearchResult, suffix string) []string {
	var links []string
	for _, r := range results {
		if strings.HasSuffix(r.Link, suffix) {
			links = append(links, r.Link)
		}
	}
	return links
}
