// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// ExtractionResult records the outcome of a successful extraction.
type ExtractionResult struct {
	// InputPath is the CSV file that was read.
	InputPath string `json:"input_path" yaml:"input_path"`

	// OutputPath is the CSV file that was written.
	OutputPath string `json:"output_path" yaml:"output_path"`

	// Column is the extracted column name.
	Column string `json:"column" yaml:"column"`

	// Rows is the number of data rows written, excluding the header.
	Rows int `json:"rows" yaml:"rows"`

	// InputColumns lists the input header in its original order.
	InputColumns []string `json:"input_columns" yaml:"input_columns"`

	// Timestamp is when the output file was committed.
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
}
