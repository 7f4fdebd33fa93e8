package types

// ExtractionConfig holds settings for a single column extraction run.
type ExtractionConfig struct {
	// InputPath is the CSV file to read. Required.
	InputPath string `json:"input_path" yaml:"input_path"`

	// OutputPath is the CSV file to write (default "name_column.csv").
	OutputPath string `json:"output_path" yaml:"output_path"`

	// Column is the header name to extract. Always "Name" from the CLI.
	Column string `json:"column" yaml:"column"`
}

// RunConfig groups the settings the CLI resolves from flags, the config
// file, and the environment.
type RunConfig struct {
	// Output is the default output path when no positional one is given.
	Output string `json:"output" yaml:"output" mapstructure:"output"`

	// Report is an optional path for a YAML run report.
	Report string `json:"report,omitempty" yaml:"report,omitempty" mapstructure:"report"`

	// HistoryDB is an optional SQLite database recording successful runs.
	HistoryDB string `json:"history_db,omitempty" yaml:"history_db,omitempty" mapstructure:"history_db"`

	// Verbose enables debug logging on stderr.
	Verbose bool `json:"verbose" yaml:"verbose" mapstructure:"verbose"`
}
