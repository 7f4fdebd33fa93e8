// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ledger records successful extraction runs in a SQLite database.
// It is only opened when a history database is configured; a plain run
// persists nothing beyond its output file.
package ledger

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/namecol/pkg/types"
)

const defaultListLimit = 20

// Ledger manages the run history database.
type Ledger struct {
	db *sql.DB
}

// Open opens or creates the history database at path and creates the
// schema if it does not exist.
func Open(path string) (*Ledger, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating history directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening history database: %w", err)
	}

	l := &Ledger{db: db}
	if err := l.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return l, nil
}

// Close releases the database connection.
func (l *Ledger) Close() error {
	return l.db.Close()
}

func (l *Ledger) createSchema() error {
	_, err := l.db.Exec(`CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		input_path TEXT NOT NULL,
		output_path TEXT NOT NULL,
		column_name TEXT NOT NULL,
		row_count INTEGER NOT NULL,
		input_columns TEXT NOT NULL,
		created_at TEXT NOT NULL
	)`)
	return err
}

// Record stores one successful run and returns its row ID.
func (l *Ledger) Record(ctx context.Context, res types.ExtractionResult) (int64, error) {
	cols, err := json.Marshal(res.InputColumns)
	if err != nil {
		return 0, fmt.Errorf("encoding input columns: %w", err)
	}

	ts := res.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}

	r, err := l.db.ExecContext(ctx,
		`INSERT INTO runs (input_path, output_path, column_name, row_count, input_columns, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		res.InputPath, res.OutputPath, res.Column, res.Rows, string(cols),
		ts.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return 0, fmt.Errorf("recording run: %w", err)
	}
	return r.LastInsertId()
}

// List returns up to limit runs, newest first. A limit of 0 or less uses
// the default of 20.
func (l *Ledger) List(ctx context.Context, limit int) ([]types.ExtractionResult, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}

	rows, err := l.db.QueryContext(ctx,
		`SELECT input_path, output_path, column_name, row_count, input_columns, created_at
		 FROM runs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var results []types.ExtractionResult
	for rows.Next() {
		var (
			res     types.ExtractionResult
			cols    string
			created string
		)
		if err := rows.Scan(&res.InputPath, &res.OutputPath, &res.Column, &res.Rows, &cols, &created); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		if err := json.Unmarshal([]byte(cols), &res.InputColumns); err != nil {
			return nil, fmt.Errorf("decoding input columns: %w", err)
		}
		res.Timestamp, err = time.Parse(time.RFC3339Nano, created)
		if err != nil {
			return nil, fmt.Errorf("parsing run time %q: %w", created, err)
		}
		results = append(results, res)
	}
	return results, rows.Err()
}
