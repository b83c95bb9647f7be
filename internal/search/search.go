// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package search queries the Custom Search JSON API and paginates through
// result pages by a fixed offset step.
package search

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/pdiddy/docharvest/pkg/types"
)

// customSearchBase is the Custom Search API endpoint. Declared as a var so
// tests can substitute an httptest server.
var customSearchBase = "https://www.googleapis.com/customsearch/v1"

// PageSize is the API's fixed page size: each request returns at most 10
// items and the start offset advances by 10.
const PageSize = 10

// Client queries the Custom Search API for one credential pair.
type Client struct {
	HTTP     *http.Client
	APIKey   string
	EngineID string
	Log      zerolog.Logger
}

// BuildQuery combines the free-text query with the filetype and site
// filters into a single search expression.
func BuildQuery(query, filetype, site string) string {
	return fmt.Sprintf(`"%s" filetype:%s site:%s`, query, filetype, site)
}

// Paginate issues search requests at offsets start, start+10, start+20, …
// while each response carries a non-empty items array and the offset stays
// below stop. It returns the concatenation of all pages' items in response
// order.
//
// Pagination stops silently on the first response without items — the API
// reports exhaustion and errors the same way — and on any transport or
// decode failure. Whatever was accumulated so far is returned; an empty
// result is valid and not an error.
func (c *Client) Paginate(ctx context.Context, query string, start, stop int, cfg types.SearchConfig) []types.SearchResult {
	var all []types.SearchResult

	for offset := start; offset < stop; offset += PageSize {
		items, err := c.page(ctx, query, offset, cfg)
		if err != nil {
			c.Log.Warn().Err(err).Int("start", offset).Msg("search page failed, stopping pagination")
			break
		}
		if len(items) == 0 {
			c.Log.Debug().Int("start", offset).Msg("no more results")
			break
		}
		c.Log.Info().Int("start", offset).Int("items", len(items)).Msg("search page fetched")
		all = append(all, items...)
	}

	return all
}

// searchResponse is the subset of the API response the paginator consumes.
// A response without an items field decodes to a nil slice.
type searchResponse struct {
	Items []types.SearchResult `json:"items"`
}

// page fetches a single result page at the given start offset.
func (c *Client) page(ctx context.Context, query string, offset int, cfg types.SearchConfig) ([]types.SearchResult, error) {
	params := url.Values{
		"q":     {query},
		"cx":    {c.EngineID},
		"key":   {c.APIKey},
		"start": {strconv.Itoa(offset)},
	}
	reqURL := customSearchBase + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", cfg.UserAgent)
	if cfg.Referer != "" {
		req.Header.Set("Referer", cfg.Referer)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search API request: %w", err)
	}
	defer resp.Body.Close()

	// Error responses also arrive as JSON bodies without an items field,
	// so the status code is not inspected separately: a 403 quota error
	// ends pagination exactly like an exhausted result list.
	var sr searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return nil, fmt.Errorf("parsing search response: %w", err)
	}
	return sr.Items, nil
}

// FormatTable writes results as a human-readable table to w.
func FormatTable(results []types.SearchResult, w io.Writer) {
	if len(results) == 0 {
		fmt.Fprintln(w, "No results found.")
		return
	}

	fmt.Fprintf(w, "%-4s  %-60s  %s\n", "Rank", "Title", "Link")
	fmt.Fprintln(w, strings.Repeat("-", 100))

	for i, r := range results {
		title := r.Title
		if len(title) > 60 {
			title = title[:57] + "..."
		}
		fmt.Fprintf(w, "%-4d  %-60s  %s\n", i+1, title, r.Link)
	}

	fmt.Fprintf(w, "\n%d results\n", len(results))
}

// FormatJSON writes results as indented JSON to w.
func FormatJSON(results []types.SearchResult, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(results)
}
