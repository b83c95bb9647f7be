// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package fetch downloads matched links into a destination folder, one at a
// time in input order.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/pdiddy/docharvest/pkg/types"
)

// Downloader fetches URLs and writes their bodies to a filesystem.
type Downloader struct {
	HTTP *http.Client
	Fs   afero.Fs
	Log  zerolog.Logger
}

// FileResult records the outcome of one download attempt.
type FileResult struct {
	URL      string
	Filename string
	Bytes    int64
	Err      error
}

// BatchResult summarizes a download run.
type BatchResult struct {
	Downloaded int
	Failed     int
	Files      []FileResult
}

// Total returns the number of URLs attempted.
func (r BatchResult) Total() int {
	return r.Downloaded + r.Failed
}

// HasFailures reports whether any downloads failed.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// DownloadAll ensures cfg.DestFolder exists, then fetches each link in order
// and writes it under the folder, named after the last "/"-delimited segment
// of its URL. Two links with the same trailing segment collide: the later
// write overwrites the earlier one.
//
// A failed fetch or write is logged and skipped; the loop continues with the
// next link. A partially written file from a failed transfer is left on
// disk. Only a failure to create the destination folder is returned as an
// error, since no download can proceed without it.
func (d *Downloader) DownloadAll(ctx context.Context, links []string, cfg types.FetchConfig) (BatchResult, error) {
	if err := d.Fs.MkdirAll(cfg.DestFolder, 0o755); err != nil {
		return BatchResult{}, fmt.Errorf("creating destination folder %s: %w", cfg.DestFolder, err)
	}

	var result BatchResult
	for i, link := range links {
		if i > 0 && cfg.DownloadDelay > 0 {
			time.Sleep(cfg.DownloadDelay)
		}

		fr := d.downloadOne(ctx, link, cfg)
		if fr.Err != nil {
			d.Log.Error().Err(fr.Err).Str("url", link).Msg("download failed")
			result.Failed++
		} else {
			d.Log.Info().Str("url", link).Str("file", fr.Filename).Int64("bytes", fr.Bytes).Msg("downloaded")
			result.Downloaded++
		}
		result.Files = append(result.Files, fr)
	}

	d.Log.Info().Int("downloaded", result.Downloaded).Int("failed", result.Failed).Msg("download batch finished")
	return result, nil
}

// downloadOne fetches a single URL and writes its body verbatim.
func (d *Downloader) downloadOne(ctx context.Context, link string, cfg types.FetchConfig) FileResult {
	fr := FileResult{URL: link}

	name := link[strings.LastIndexByte(link, '/')+1:]
	if name == "" {
		fr.Err = fmt.Errorf("no filename segment in %s", link)
		return fr
	}
	fr.Filename = name

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, link, nil)
	if err != nil {
		fr.Err = fmt.Errorf("creating request: %w", err)
		return fr
	}
	req.Header.Set("User-Agent", cfg.UserAgent)

	resp, err := d.HTTP.Do(req)
	if err != nil {
		fr.Err = fmt.Errorf("HTTP request: %w", err)
		return fr
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		fr.Err = fmt.Errorf("HTTP %d from %s", resp.StatusCode, link)
		return fr
	}

	dest := filepath.Join(cfg.DestFolder, name)
	f, err := d.Fs.Create(dest)
	if err != nil {
		fr.Err = fmt.Errorf("creating %s: %w", dest, err)
		return fr
	}

	n, copyErr := io.Copy(f, resp.Body)
	closeErr := f.Close()
	fr.Bytes = n
	if copyErr != nil {
		fr.Err = fmt.Errorf("writing %s: %w", dest, copyErr)
		return fr
	}
	if closeErr != nil {
		fr.Err = fmt.Errorf("closing %s: %w", dest, closeErr)
		return fr
	}
	return fr
}
