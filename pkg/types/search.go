// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the docharvest pipeline.
package types

// SearchResult represents one item returned by a Custom Search API query.
// The JSON tags follow the API's item object; Link is the only field the
// download pipeline requires, the rest are carried for display.
type SearchResult struct {
	// Title is the document title as returned by the search API.
	Title string `json:"title" yaml:"title"`

	// Link is the target URL of the matched document.
	Link string `json:"link" yaml:"link"`

	// DisplayLink is the abbreviated site name shown in result listings.
	DisplayLink string `json:"displayLink,omitempty" yaml:"display_link,omitempty"`

	// Snippet is the short excerpt the API produced for the match.
	Snippet string `json:"snippet,omitempty" yaml:"snippet,omitempty"`

	// Mime is the MIME type the API reports for the document, when known.
	Mime string `json:"mime,omitempty" yaml:"mime,omitempty"`
}
