// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"net/http"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/docharvest/internal/logging"
	"github.com/pdiddy/docharvest/internal/search"
	"github.com/pdiddy/docharvest/internal/secrets"
	"github.com/pdiddy/docharvest/internal/settings"
	"github.com/pdiddy/docharvest/pkg/types"
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Run the search without downloading anything",
	Long: `Search paginates through the web search API with the configured query,
filetype, and site filters and prints the results, without downloading.
Settings are read from the settings file but not rewritten.`,
	Args: cobra.NoArgs,
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().String("query", "", "search query (overrides the settings key for this run)")
	searchCmd.Flags().String("filetype", "", "file type to search for (overrides the settings key for this run)")
	searchCmd.Flags().String("site", "", "site to target (overrides the settings key for this run)")
	searchCmd.Flags().Int("start", 1, "start offset for result pagination")
	searchCmd.Flags().Int("stop", 10000000, "stop offset for result pagination")
	searchCmd.Flags().Bool("json", false, "output results as JSON")

	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
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

	start, _ := cmd.Flags().GetInt("start")
	stop, _ := cmd.Flags().GetInt("stop")

	fullQuery := search.BuildQuery(st.Query, st.Filetype, st.Site)
	logger.Info().Str("query", fullQuery).Int("start", start).Int("stop", stop).Msg("starting search")

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
		HTTP:     &http.Client{Timeout: searchCfg.Timeout},
		APIKey:   creds.APIKey,
		EngineID: creds.EngineID,
		Log:      logger,
	}

	results := client.Paginate(cmd.Context(), fullQuery, start, stop, searchCfg)

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		return search.FormatJSON(results, os.Stdout)
	}
	search.FormatTable(results, os.Stdout)
	return nil
}
