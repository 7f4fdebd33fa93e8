// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pdiddy/namecol/internal/extract"
	"github.com/pdiddy/namecol/internal/ledger"
	"github.com/pdiddy/namecol/pkg/types"
)

func runExtract(cmd *cobra.Command, args []string) error {
	cfg, err := loadRunConfig()
	if err != nil {
		return err
	}

	ec := types.ExtractionConfig{
		InputPath:  args[0],
		OutputPath: cfg.Output,
		Column:     extract.NameColumn,
	}
	if len(args) > 1 {
		ec.OutputPath = args[1]
	}

	res, err := extract.New(logger).Extract(ec, cmd.OutOrStdout())
	if err != nil {
		return err
	}

	// The output is committed at this point; the extras below only warn.
	if cfg.Report != "" {
		if err := extract.WriteReport(cfg.Report, res); err != nil {
			logger.Warn("writing run report", zap.String("path", cfg.Report), zap.Error(err))
		}
	}
	if cfg.HistoryDB != "" {
		if err := recordRun(cmd.Context(), cfg.HistoryDB, res); err != nil {
			logger.Warn("recording run history", zap.String("path", cfg.HistoryDB), zap.Error(err))
		}
	}
	return nil
}

func recordRun(ctx context.Context, path string, res types.ExtractionResult) error {
	if ctx == nil {
		ctx = context.Background()
	}
	l, err := ledger.Open(path)
	if err != nil {
		return err
	}
	defer l.Close()

	id, err := l.Record(ctx, res)
	if err != nil {
		return err
	}
	logger.Debug("recorded run", zap.Int64("id", id), zap.String("history_db", path))
	return nil
}

// printError writes the user-facing message for err to w.
func printError(w io.Writer, err error) {
	if errors.Is(err, errUsage) {
		fmt.Fprintln(w, "Usage: namecol <input_csv_file> [output_csv_file]")
		fmt.Fprintln(w, "Example: namecol data.csv name_column.csv")
		return
	}

	var xerr *extract.Error
	if !errors.As(err, &xerr) {
		fmt.Fprintf(w, "Error: %v\n", err)
		return
	}

	switch xerr.Kind {
	case extract.FileNotFound:
		fmt.Fprintf(w, "Error: Input file '%s' not found.\n", xerr.Path)
	case extract.EmptyInput:
		fmt.Fprintf(w, "Error: The CSV file '%s' is empty.\n", xerr.Path)
	case extract.ColumnNotFound:
		fmt.Fprintf(w, "Error: '%s' column not found in the CSV file.\n", xerr.Column)
		fmt.Fprintf(w, "Available columns: %s\n", strings.Join(xerr.Columns, ", "))
	default:
		fmt.Fprintf(w, "Error: An unexpected error occurred: %v\n", xerr.Err)
	}
}
