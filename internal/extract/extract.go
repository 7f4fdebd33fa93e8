// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract pulls a single named column out of a CSV file and writes
// it to a new CSV file. The run is one linear pass: the input is read in
// full, the column is validated and projected, and the output is committed
// with a rename so it is either written completely or not at all.
package extract

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/pdiddy/namecol/internal/table"
	"github.com/pdiddy/namecol/pkg/types"
)

const (
	// NameColumn is the column the CLI extracts.
	NameColumn = "Name"

	// DefaultOutput is the output path used when none is given.
	DefaultOutput = "name_column.csv"
)

// Extractor runs extractions and logs diagnostics to its logger.
type Extractor struct {
	logger *zap.Logger
	now    func() time.Time
}

// New returns an Extractor. A nil logger discards diagnostics.
func New(logger *zap.Logger) *Extractor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Extractor{logger: logger, now: time.Now}
}

// Extract reads cfg.InputPath, projects cfg.Column (default NameColumn),
// and writes it to cfg.OutputPath (default DefaultOutput). Progress lines
// go to w. Every failure is returned as an *Error; on failure the output
// path is left untouched.
func (x *Extractor) Extract(cfg types.ExtractionConfig, w io.Writer) (types.ExtractionResult, error) {
	column := cfg.Column
	if column == "" {
		column = NameColumn
	}
	output := cfg.OutputPath
	if output == "" {
		output = DefaultOutput
	}

	if _, err := os.Stat(cfg.InputPath); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return types.ExtractionResult{}, &Error{Kind: FileNotFound, Path: cfg.InputPath, Err: err}
		}
		return types.ExtractionResult{}, unexpected(cfg.InputPath, err)
	}

	fmt.Fprintf(w, "Reading CSV file: %s\n", cfg.InputPath)

	tbl, err := readTable(cfg.InputPath)
	if errors.Is(err, table.ErrEmpty) {
		return types.ExtractionResult{}, &Error{Kind: EmptyInput, Path: cfg.InputPath, Err: err}
	}
	if err != nil {
		return types.ExtractionResult{}, unexpected(cfg.InputPath, err)
	}
	x.logger.Debug("loaded input table",
		zap.String("input", cfg.InputPath),
		zap.Strings("columns", tbl.Columns()),
		zap.Int("rows", tbl.Len()),
	)

	projected, err := tbl.Project(column)
	if errors.Is(err, table.ErrColumnNotFound) {
		return types.ExtractionResult{}, &Error{
			Kind:    ColumnNotFound,
			Path:    cfg.InputPath,
			Column:  column,
			Columns: tbl.Labels(),
			Err:     err,
		}
	}
	if err != nil {
		return types.ExtractionResult{}, unexpected(cfg.InputPath, err)
	}

	if err := x.commit(output, projected); err != nil {
		return types.ExtractionResult{}, unexpected(output, err)
	}

	fmt.Fprintf(w, "Successfully extracted '%s' column to '%s'\n", column, output)
	fmt.Fprintf(w, "Total rows extracted: %d\n", projected.Len())

	return types.ExtractionResult{
		InputPath:    cfg.InputPath,
		OutputPath:   output,
		Column:       column,
		Rows:         projected.Len(),
		InputColumns: tbl.Columns(),
		Timestamp:    x.now().UTC(),
	}, nil
}

func readTable(path string) (*table.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return table.Read(f)
}

// commit writes t to a temporary file beside the destination and renames
// it into place. A symlink at path is kept and its destination replaced.
// An existing destination keeps its permission bits; a new one gets 0644.
// The temporary file is removed on any failure.
func (x *Extractor) commit(path string, t *table.Table) (err error) {
	dest, mode, err := destination(path)
	if err != nil {
		return err
	}

	f, err := os.CreateTemp(filepath.Dir(dest), "."+filepath.Base(dest)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temporary output: %w", err)
	}
	tmp := f.Name()
	defer func() {
		if err != nil {
			os.Remove(tmp)
		}
	}()

	if err = t.Write(f); err != nil {
		f.Close()
		return err
	}
	if err = f.Close(); err != nil {
		return fmt.Errorf("closing temporary output: %w", err)
	}
	if err = os.Chmod(tmp, mode); err != nil {
		return fmt.Errorf("setting output permissions: %w", err)
	}
	if err = os.Rename(tmp, dest); err != nil {
		return fmt.Errorf("replacing %s: %w", dest, err)
	}

	x.logger.Debug("committed output",
		zap.String("output", path),
		zap.String("destination", dest),
		zap.Int("rows", t.Len()),
	)
	return nil
}

// destination resolves symlinks at path and returns the file to replace
// along with the permission bits the new file should carry.
func destination(path string) (string, fs.FileMode, error) {
	dest, err := filepath.EvalSymlinks(path)
	if errors.Is(err, fs.ErrNotExist) {
		dest = path
		// A dangling link still names where the output belongs.
		if link, lerr := os.Readlink(path); lerr == nil {
			if !filepath.IsAbs(link) {
				link = filepath.Join(filepath.Dir(path), link)
			}
			dest = link
		}
		return dest, 0o644, nil
	}
	if err != nil {
		return "", 0, fmt.Errorf("resolving %s: %w", path, err)
	}

	info, err := os.Stat(dest)
	if err != nil {
		return "", 0, fmt.Errorf("inspecting %s: %w", dest, err)
	}
	return dest, info.Mode().Perm(), nil
}
