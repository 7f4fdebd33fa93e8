// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package table loads comma-separated text into an in-memory table and
// projects single columns out of it. The first record is the header;
// every row is held with exactly one cell per header column.
package table

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/samber/lo"
)

// ErrEmpty is returned by Read when the input holds no records at all.
var ErrEmpty = errors.New("no columns to parse from input")

// ErrColumnNotFound is returned when a named column is not in the header.
var ErrColumnNotFound = errors.New("column not found")

const utf8BOM = "\ufeff"

// Table is an immutable header plus rows of cells.
type Table struct {
	header []string
	rows   [][]string
}

// Read parses r fully into a Table. Blank lines, including lines holding
// only spaces or tabs, are skipped and quoted fields may span lines. Rows
// shorter than the header are padded with empty cells; rows longer than
// the header are an error.
func Read(r io.Reader) (*Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}
	data = bytes.TrimPrefix(data, []byte(utf8BOM))

	cr := csv.NewReader(bytes.NewReader(data))
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	var (
		t    *Table
		prev int64
	)
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			if t == nil {
				return nil, fmt.Errorf("reading header: %w", err)
			}
			return nil, fmt.Errorf("reading row %d: %w", len(t.rows)+1, err)
		}
		raw := data[prev:cr.InputOffset()]
		prev = cr.InputOffset()
		if len(rec) == 1 && len(bytes.TrimSpace(raw)) == 0 {
			continue
		}

		if t == nil {
			t = &Table{header: rec}
			continue
		}
		if len(rec) > len(t.header) {
			line, _ := cr.FieldPos(0)
			return nil, fmt.Errorf("line %d: expected %d fields, saw %d", line, len(t.header), len(rec))
		}
		for len(rec) < len(t.header) {
			rec = append(rec, "")
		}
		t.rows = append(t.rows, rec)
	}
	if t == nil {
		return nil, ErrEmpty
	}
	return t, nil
}

// Columns returns the header in its original order.
func (t *Table) Columns() []string {
	return append([]string(nil), t.header...)
}

// Labels returns the header with empty cells named "Unnamed: <position>"
// and repeated names suffixed ".1", ".2", and so on, so every label is
// distinct. It is meant for diagnostics; lookups use the raw header.
func (t *Table) Labels() []string {
	labels := make([]string, len(t.header))
	used := make(map[string]bool, len(t.header))
	counts := make(map[string]int, len(t.header))
	for i, name := range t.header {
		if name == "" {
			name = "Unnamed: " + strconv.Itoa(i)
		}
		label := name
		for used[label] {
			counts[name]++
			label = name + "." + strconv.Itoa(counts[name])
		}
		used[label] = true
		labels[i] = label
	}
	return labels
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// Index returns the position of the first column called name.
func (t *Table) Index(name string) (int, bool) {
	i := lo.IndexOf(t.header, name)
	return i, i >= 0
}

// Values returns the cells of the named column in row order.
func (t *Table) Values(name string) ([]string, error) {
	i, ok := t.Index(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrColumnNotFound, name)
	}
	return lo.Map(t.rows, func(row []string, _ int) string {
		return row[i]
	}), nil
}

// Project returns a single-column table holding the named column. Row
// order and count are preserved and cell values are not modified.
func (t *Table) Project(name string) (*Table, error) {
	values, err := t.Values(name)
	if err != nil {
		return nil, err
	}
	return &Table{
		header: []string{name},
		rows: lo.Map(values, func(v string, _ int) []string {
			return []string{v}
		}),
	}, nil
}

// Write serializes the table as a header line followed by one line per
// row, terminated by "\n". No row index is written.
func (t *Table) Write(w io.Writer) error {
	bw := bufio.NewWriter(w)
	cw := csv.NewWriter(bw)

	if err := writeRecord(cw, bw, t.header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, row := range t.rows {
		if err := writeRecord(cw, bw, row); err != nil {
			return fmt.Errorf("writing row %d: %w", i+1, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return err
	}
	return bw.Flush()
}

// writeRecord writes rec through cw. A lone empty cell is written as ""
// since a bare blank line would be dropped when the file is read back.
func writeRecord(cw *csv.Writer, bw *bufio.Writer, rec []string) error {
	if len(rec) != 1 || rec[0] != "" {
		return cw.Write(rec)
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return err
	}
	_, err := bw.WriteString("\"\"\n")
	return err
}
