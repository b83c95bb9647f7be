// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the docharvest CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

const (
	defaultSecretFile = ".secret"
	defaultConfigFile = "config.yaml"
	defaultHistoryDB  = "docharvest.db"

	defaultTimeout   = 60 * time.Second
	defaultUserAgent = "docharvest/0.1"
	defaultLogFile   = "docharvest.log"
)

// rootCmd is the base command. Running it without a subcommand executes the
// full pipeline: search, filter, download.
var rootCmd = &cobra.Command{
	Use:   "docharvest",
	Short: "Search the web for documents and download the matches",
	Long: `docharvest queries a web search API for documents matching a filetype and
site filter, paginates through the results, and downloads every link whose
URL ends with the configured file suffix into a local folder.

Run settings live in a YAML file that is created with defaults on first use
and rewritten after each run so command-line overrides persist. Credentials
come from a JSON secrets file or the environment.`,
	Args: cobra.NoArgs,
	RunE: runFetch,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// .env is optional; absence is not an error.
		godotenv.Load()
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("secret-file", defaultSecretFile, "path to the JSON secrets file")
	rootCmd.PersistentFlags().String("config-file", defaultConfigFile, "path to the YAML settings file")
	rootCmd.PersistentFlags().String("history-db", defaultHistoryDB, "path to the run history database")

	rootCmd.Flags().String("query", "", "search query (overrides and persists the settings key)")
	rootCmd.Flags().String("filetype", "", "file type to search for (overrides and persists the settings key)")
	rootCmd.Flags().String("site", "", "site to target (overrides and persists the settings key)")
	rootCmd.Flags().String("dest-folder", "", "destination folder for downloads (overrides and persists the settings key)")
	rootCmd.Flags().String("referer", "", "Referer header for search requests (overrides and persists the settings key)")
	rootCmd.Flags().Int("start", 1, "start offset for result pagination")
	rootCmd.Flags().Int("stop", 10000000, "stop offset for result pagination")
	rootCmd.Flags().Bool("no-history", false, "skip recording this run in the history database")
}

func initConfig() {
	viper.SetConfigName("docharvest")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")

	home, err := os.UserHomeDir()
	if err == nil {
		viper.AddConfigPath(filepath.Join(home, ".config", "docharvest"))
	}

	viper.SetDefault("timeout", defaultTimeout)
	viper.SetDefault("user_agent", defaultUserAgent)
	viper.SetDefault("download_delay", time.Duration(0))
	viper.SetDefault("log_file", defaultLogFile)

	viper.SetEnvPrefix("DOCHARVEST")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
