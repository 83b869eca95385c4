package cli

import (
	"context"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/sdejongh/convcheck/pkg/config"
	"github.com/sdejongh/convcheck/pkg/logging"
	"github.com/sdejongh/convcheck/pkg/models"
	"github.com/sdejongh/convcheck/pkg/output"
)

// loadConfig loads configuration from --config, ./convcheck.yaml or defaults
func loadConfig() (*config.Config, error) {
	if globalFlags.ConfigFile != "" {
		return config.LoadFromFile(globalFlags.ConfigFile)
	}
	return config.LoadDefault()
}

// applyFlagsToConfig overrides config values with explicitly set flags
func applyFlagsToConfig(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()

	if flags.Changed("format") {
		cfg.Output.Format = reportFlags.Format
	}
	if flags.Changed("progress") {
		cfg.Output.Progress = reportFlags.Progress
	}
	if flags.Changed("tolerance") {
		cfg.Compare.Tolerance = reportFlags.Tolerance
	}
	if flags.Changed("pairing") {
		cfg.Compare.Pairing = models.PairingStrategy(reportFlags.Pairing)
	}
	if flags.Changed("timeout") {
		cfg.Converter.Timeout = runFlags.Timeout
	}

	if globalFlags.LogFile != "" {
		cfg.Logging.File = globalFlags.LogFile
	}
	if globalFlags.LogFormat != "" {
		cfg.Logging.Format = globalFlags.LogFormat
	}
	if globalFlags.LogLevel != "" {
		cfg.Logging.Level = globalFlags.LogLevel
	}

	// Quiet wins over progress
	if globalFlags.Quiet {
		cfg.Output.Progress = false
		cfg.Output.Quiet = true
	}
}

// createLogger creates a logger based on configuration
func createLogger(cfg *config.Config) (logging.Logger, error) {
	format := logging.ParseFormat(cfg.Logging.Format)

	if cfg.Logging.File != "" {
		logger, err := logging.NewFileLogger(cfg.Logging.File, format, logging.ParseLevel(cfg.Logging.Level))
		if err != nil {
			return nil, err
		}
		return logger, nil
	}
	if globalFlags.Verbose {
		return logging.NewStreamLogger(os.Stderr, format, logging.DebugLevel), nil
	}
	return logging.NewNullLogger(), nil
}

// createFormatter picks the console formatter
func createFormatter(cmd *cobra.Command, cfg *config.Config) output.Formatter {
	if cfg.Output.Quiet {
		return output.QuietFormatter{}
	}
	if cfg.Output.Progress && output.IsTerminal(cmd.ErrOrStderr()) {
		return output.NewProgressFormatter(cmd.ErrOrStderr())
	}
	return output.NewHumanFormatter()
}

// console is where informational output goes
func console(cmd *cobra.Command, cfg *config.Config) io.Writer {
	if cfg.Output.Quiet {
		return io.Discard
	}
	return cmd.OutOrStdout()
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
