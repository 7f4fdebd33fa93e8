// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/namecol/internal/ledger"
	"github.com/pdiddy/namecol/pkg/types"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List extraction runs recorded in the history database",
	Long: `History lists successful runs recorded with --history-db, newest first.
The database path comes from --history-db, the history_db config key, or
NAMECOL_HISTORY_DB.`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().Int("limit", 0, "maximum runs to list (0 = 20)")
	historyCmd.Flags().Bool("json", false, "output runs as JSON")

	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, err := loadRunConfig()
	if err != nil {
		return err
	}
	if cfg.HistoryDB == "" {
		return fmt.Errorf("no history database configured: pass --history-db or set history_db")
	}
	limit, _ := cmd.Flags().GetInt("limit")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	l, err := ledger.Open(cfg.HistoryDB)
	if err != nil {
		return err
	}
	defer l.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	runs, err := l.List(ctx, limit)
	if err != nil {
		return err
	}
	return formatHistory(cmd.OutOrStdout(), runs, jsonOutput)
}

func formatHistory(w io.Writer, runs []types.ExtractionResult, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(runs)
	}

	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs recorded.")
		return nil
	}

	fmt.Fprintf(w, "%-20s  %-30s  %-30s  %s\n", "Time", "Input", "Output", "Rows")
	fmt.Fprintln(w, strings.Repeat("-", 90))
	for _, r := range runs {
		fmt.Fprintf(w, "%-20s  %-30s  %-30s  %d\n",
			r.Timestamp.Format("2006-01-02 15:04:05"), truncate(r.InputPath, 30), truncate(r.OutputPath, 30), r.Rows)
	}
	fmt.Fprintf(w, "\n%d runs\n", len(runs))
	return nil
}

// truncate shortens s to at most n runes, marking the cut with "...".
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
