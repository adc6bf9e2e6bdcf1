package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/qhfkit/internal/config"
	"github.com/joshuapare/qhfkit/internal/logger"
)

var (
	// Global flags
	verbose    bool
	quiet      bool
	jsonOut    bool
	configPath string
	logLevel   string

	// cfg is resolved before every command runs.
	cfg         = config.DefaultConfig()
	closeLogger = func() error { return nil }
)

var rootCmd = &cobra.Command{
	Use:   "qhfctl",
	Short: "Recover conversations from QIP .qhf history files",
	Long: `qhfctl validates QIP chat-history containers (.qhf), decodes their
obfuscated messages and writes readable transcripts, JSON documents or a
searchable SQLite archive.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setup()
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return closeLogger()
	},
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().
		BoolVarP(&quiet, "quiet", "q", false, "Suppress all output except errors")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default $HOME/.qhfctl/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Override the configured log level")
}

// setup loads the configuration and initializes logging.
func setup() error {
	loaded, err := config.Resolve(configPath)
	if err != nil {
		return err
	}
	if logLevel != "" {
		loaded.Logging.Level = logLevel
	}
	if verbose && logLevel == "" {
		loaded.Logging.Level = "debug"
	}
	if err := loaded.Validate(); err != nil {
		return err
	}
	cfg = loaded

	closeFn, err := logger.Init(cfg.LoggerOptions())
	if err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	closeLogger = closeFn
	return nil
}

func execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		printError("%v\n", err)
		os.Exit(1)
	}
}

// Helper functions for output

// stdout is swapped by tests.
var stdout io.Writer = os.Stdout

// printInfo prints an info message if not in quiet mode
func printInfo(format string, args ...interface{}) {
	if !quiet {
		fmt.Fprintf(stdout, format, args...)
	}
}

// printError prints an error message
func printError(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format, args...)
}

// printVerbose prints a verbose message if verbose mode is enabled
func printVerbose(format string, args ...interface{}) {
	if verbose && !quiet {
		fmt.Fprintf(stdout, format, args...)
	}
}

// printJSON outputs data as JSON
func printJSON(v interface{}) error {
	encoder := json.NewEncoder(stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
