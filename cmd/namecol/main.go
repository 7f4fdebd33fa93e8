// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the namecol CLI.
//
//	namecol <input_csv_file> [output_csv_file]
//
// reads a CSV file, keeps only its Name column, and writes the result to
// output_csv_file (default name_column.csv).
package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/pdiddy/namecol/internal/extract"
	"github.com/pdiddy/namecol/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// logger carries diagnostics to stderr. It is replaced in PersistentPreRunE.
var logger = zap.NewNop()

// errUsage reports a command line without the required arguments.
var errUsage = errors.New("usage")

// rootCmd extracts the Name column when given positional arguments.
var rootCmd = &cobra.Command{
	Use:   "namecol <input_csv_file> [output_csv_file]",
	Short: "Extract the Name column from a CSV file",
	Long: `namecol reads a CSV file whose first line names its columns, keeps only
the Name column, and writes it to a new CSV file with a header and no row
index. The output defaults to name_column.csv.

The output file is replaced only when the whole extraction succeeds.

Paths starting with "-" are read as flags; put them after "--":

  namecol -- -data.csv names.csv`,
	Args:          positionalArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadRunConfig()
		if err != nil {
			return err
		}
		l, err := newLogger(cfg.Verbose)
		if err != nil {
			return fmt.Errorf("initializing logger: %w", err)
		}
		logger = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
	RunE: runExtract,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.PersistentFlags().String("config", "", "config file (default: ./namecol.yaml or ~/.config/namecol/config.yaml)")
	rootCmd.PersistentFlags().Bool("verbose", false, "log diagnostics to stderr")
	rootCmd.PersistentFlags().String("history-db", "", "SQLite database recording successful runs (off when empty)")
	rootCmd.Flags().String("report", "", "write a YAML report of the run to this path")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("namecol")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "namecol"))
		}
	}

	viper.SetDefault("output", extract.DefaultOutput)
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("history_db", rootCmd.PersistentFlags().Lookup("history-db"))
	_ = viper.BindPFlag("report", rootCmd.Flags().Lookup("report"))

	viper.SetEnvPrefix("NAMECOL")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(rootCmd.ErrOrStderr(), "Using config file:", viper.ConfigFileUsed())
	}
}

// loadRunConfig resolves settings from flags, environment, and config file.
func loadRunConfig() (types.RunConfig, error) {
	var cfg types.RunConfig
	if err := viper.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("reading configuration: %w", err)
	}
	if cfg.Output == "" {
		cfg.Output = extract.DefaultOutput
	}
	return cfg, nil
}

func newLogger(verbose bool) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	if verbose {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return config.Build()
}

func positionalArgs(cmd *cobra.Command, args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return errUsage
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		printError(rootCmd.OutOrStdout(), err)
		os.Exit(1)
	}
}
