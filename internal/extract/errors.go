// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies why an extraction failed.
type Kind int

const (
	// Unexpected covers I/O, parse, and permission failures.
	Unexpected Kind = iota
	// FileNotFound means the input path does not exist.
	FileNotFound
	// EmptyInput means the input file has no parseable content.
	EmptyInput
	// ColumnNotFound means the input header lacks the requested column.
	ColumnNotFound
)

func (k Kind) String() string {
	switch k {
	case FileNotFound:
		return "file_not_found"
	case EmptyInput:
		return "empty_input"
	case ColumnNotFound:
		return "column_not_found"
	default:
		return "unexpected"
	}
}

// Error is returned by Extract for every failure. Columns is set only for
// ColumnNotFound and lists the input header in its original order.
type Error struct {
	Kind    Kind
	Path    string
	Column  string
	Columns []string
	Err     error
}

func (e *Error) Error() string {
	switch e.Kind {
	case FileNotFound:
		return fmt.Sprintf("input file %s not found", e.Path)
	case EmptyInput:
		return fmt.Sprintf("csv file %s is empty", e.Path)
	case ColumnNotFound:
		return fmt.Sprintf("column %q not found in %s (available: %s)",
			e.Column, e.Path, strings.Join(e.Columns, ", "))
	default:
		return fmt.Sprintf("extracting %s: %v", e.Path, e.Err)
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf reports the Kind of err. Errors not produced by Extract are
// Unexpected.
func KindOf(err error) Kind {
	var xerr *Error
	if errors.As(err, &xerr) {
		return xerr.Kind
	}
	return Unexpected
}

func unexpected(path string, err error) *Error {
	return &Error{Kind: Unexpected, Path: path, Err: err}
}
