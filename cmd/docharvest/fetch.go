// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/docharvest/internal/fetch"
	"github.com/pdiddy/docharvest/internal/history"
	"github.com/pdiddy/docharvest/internal/logging"
	"github.com/pdiddy/docharvest/internal/search"
	"github.com/pdiddy/docharvest/internal/secrets"
	"github.com/pdiddy/docharvest/internal/settings"
	"github.com/pdiddy/docharvest/pkg/types"
)

// runFetch executes the full pipeline: load secrets and settings, persist
// merged overrides, paginate the search, filter links by suffix, download
// the matches, and record the run.
//
// Secrets or settings failures abort before any network activity. Download
// failures are per-file and never change the exit status.
func runFetch(cmd *cobra.Command, args []string) error {
	logger, closeLog, err := logging.New(os.Stderr, viper.GetString("log_file"))
	if err != nil {
		return err
	}
	defer closeLog()

	secretFile, _ := cmd.Flags().GetString("secret-file")
	configFile, _ := cmd.Flags().GetString("config-file")

	creds, err := secrets.Load(secretFile)
	if err != nil {
		logger.Error().Err(err).Msg("loading secrets failed")
		return err
	}

	st, created, err := settings.Load(configFile)
	if err != nil {
		logger.Error().Err(err).Msg("loading settings failed")
		return err
	}
	if created {
		logger.Warn().Str("file", configFile).Msg("settings file did not exist, created with defaults")
	}

	mergeFlagOverrides(cmd, &st)
	if err := settings.Save(configFile, st); err != nil {
		logger.Error().Err(err).Msg("persisting settings failed")
		return err
	}

	start, _ := cmd.Flags().GetInt("start")
	stop, _ := cmd.Flags().GetInt("stop")

	fullQuery := search.BuildQuery(st.Query, st.Filetype, st.Site)
	logger.Info().Str("query", fullQuery).Int("start", start).Int("stop", stop).Msg("starting search")

	httpClient := &http.Client{Timeout: viper.GetDuration("timeout")}
	searchCfg := types.SearchConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   viper.GetDuration("timeout"),
			UserAgent: viper.GetString("user_agent"),
		},
	}
	if st.Referer != nil {
		searchCfg.Referer = *st.Referer
	}

	client := &search.Client{
		HTTP:     httpClient,
		APIKey:   creds.APIKey,
		EngineID: creds.EngineID,
		Log:      logger,
	}

	ctx := cmd.Context()
	startedAt := time.Now()

	results := client.Paginate(ctx, fullQuery, start, stop, searchCfg)
	links := search.FilterLinks(results, "."+st.Filetype)

	var batch fetch.BatchResult
	switch {
	case len(results) == 0:
		logger.Warn().Msg("no results found")
	case len(links) == 0:
		logger.Warn().Int("results", len(results)).Str("suffix", "."+st.Filetype).Msg("no result links matched the suffix")
	default:
		logger.Info().Int("results", len(results)).Int("matched", len(links)).Msg("downloading matched links")

		downloader := &fetch.Downloader{
			HTTP: httpClient,
			Fs:   afero.NewOsFs(),
			Log:  logger,
		}
		fetchCfg := types.FetchConfig{
			HTTPConfig:    searchCfg.HTTPConfig,
			DestFolder:    st.DestFolder,
			DownloadDelay: viper.GetDuration("download_delay"),
		}
		batch, err = downloader.DownloadAll(ctx, links, fetchCfg)
		if err != nil {
			logger.Error().Err(err).Msg("download stage failed")
			return err
		}
	}

	recordRun(ctx, cmd, logger, st, startedAt, len(results), len(links), batch)
	return nil
}

// mergeFlagOverrides applies any explicitly provided flags onto the loaded
// settings so they take effect this run and persist afterwards.
func mergeFlagOverrides(cmd *cobra.Command, st *settings.Settings) {
	if cmd.Flags().Changed("query") {
		st.Query, _ = cmd.Flags().GetString("query")
	}
	if cmd.Flags().Changed("filetype") {
		st.Filetype, _ = cmd.Flags().GetString("filetype")
	}
	if cmd.Flags().Changed("site") {
		st.Site, _ = cmd.Flags().GetString("site")
	}
	if cmd.Flags().Changed("dest-folder") {
		st.DestFolder, _ = cmd.Flags().GetString("dest-folder")
	}
	if cmd.Flags().Changed("referer") {
		referer, _ := cmd.Flags().GetString("referer")
		st.Referer = &referer
	}
}

// recordRun writes the run summary to the history database. History is an
// audit convenience: failures here are logged and never fail the run.
func recordRun(ctx context.Context, cmd *cobra.Command, logger zerolog.Logger, st settings.Settings, startedAt time.Time, results, matched int, batch fetch.BatchResult) {
	if skip, _ := cmd.Flags().GetBool("no-history"); skip {
		return
	}
	dbPath, _ := cmd.Flags().GetString("history-db")

	store, err := history.Open(dbPath)
	if err != nil {
		logger.Warn().Err(err).Msg("history database unavailable")
		return
	}
	defer store.Close()

	downloads := make([]history.Download, 0, len(batch.Files))
	for _, f := range batch.Files {
		status := history.StatusOK
		if f.Err != nil {
			status = history.StatusFailed
		}
		downloads = append(downloads, history.Download{
			URL:      f.URL,
			Filename: f.Filename,
			Bytes:    f.Bytes,
			Status:   status,
		})
	}

	run := history.Run{
		StartedAt:  startedAt,
		Query:      st.Query,
		Filetype:   st.Filetype,
		Site:       st.Site,
		Results:    results,
		Matched:    matched,
		Downloaded: batch.Downloaded,
		Failed:     batch.Failed,
	}
	if _, err := store.RecordRun(ctx, run, downloads); err != nil {
		logger.Warn().Err(err).Msg("recording run history failed")
	}
}
