// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/docharvest/internal/history"
)

var historyCmd = &cobra.Command{
	Use:   "history [run-id]",
	Short: "List recorded fetch runs",
	Long: `History lists the runs recorded in the local history database, most recent
first. With a run ID argument it lists that run's download records instead.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().Int("limit", 20, "maximum number of runs to list")
	historyCmd.Flags().Bool("json", false, "output as JSON")

	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	dbPath, _ := cmd.Flags().GetString("history-db")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	store, err := history.Open(dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	if len(args) == 1 {
		runID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid run ID %q", args[0])
		}
		downloads, err := store.RunDownloads(cmd.Context(), runID)
		if err != nil {
			return err
		}
		return formatDownloads(downloads, jsonOutput)
	}

	limit, _ := cmd.Flags().GetInt("limit")
	runs, err := store.RecentRuns(cmd.Context(), limit)
	if err != nil {
		return err
	}
	return formatRuns(runs, jsonOutput)
}

func formatRuns(runs []history.Run, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(runs)
	}

	if len(runs) == 0 {
		fmt.Println("No runs recorded.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-4s  %-20s  %-30s  %-8s  %-20s  %-7s  %-7s  %-5s  %s\n",
		"ID", "Started", "Query", "Type", "Site", "Results", "Matched", "OK", "Failed")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 120))

	for _, r := range runs {
		query := r.Query
		if len(query) > 30 {
			query = query[:27] + "..."
		}
		fmt.Fprintf(os.Stdout, "%-4d  %-20s  %-30s  %-8s  %-20s  %-7d  %-7d  %-5d  %d\n",
			r.ID, r.StartedAt.Format("2006-01-02 15:04:05"), query, r.Filetype, r.Site,
			r.Results, r.Matched, r.Downloaded, r.Failed)
	}
	return nil
}

func formatDownloads(downloads []history.Download, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(downloads)
	}

	if len(downloads) == 0 {
		fmt.Println("No downloads recorded for this run.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-8s  %-10s  %-30s  %s\n", "Status", "Bytes", "File", "URL")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 100))
	for _, d := range downloads {
		fmt.Fprintf(os.Stdout, "%-8s  %-10d  %-30s  %s\n", d.Status, d.Bytes, d.Filename, d.URL)
	}
	return nil
}
