package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/sdejongh/convcheck/pkg/harness"
	"github.com/sdejongh/convcheck/pkg/models"
	"github.com/sdejongh/convcheck/pkg/output"
)

// RunFlags holds flags of the regression run
type RunFlags struct {
	IgnoreMasks bool
	Timeout     time.Duration
}

var (
	runFlags RunFlags
	// reportSink is opened while flags are parsed so a bad path fails before any work
	reportSink *output.Sink
)

// NewRootCommand creates the convcheck command tree
func NewRootCommand(version string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "convcheck",
		Short: "Regression test harness for the image converter",
		Long: `convcheck runs the image converter on the test input directory, then
compares every produced image with the known-good reference images and
reports files that are missing or do not match.

On a clean match the output directories and the empty report file are removed.`,
		Args:          cobra.NoArgs,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PreRunE:       openReportSink,
		RunE:          runHarness,
	}

	AddGlobalFlags(rootCmd)
	addReportFlags(rootCmd)
	rootCmd.Flags().BoolVarP(&runFlags.IgnoreMasks, "ignore-masks", "m", false,
		"run the converter in masks mode against the masks directories")
	rootCmd.Flags().DurationVar(&runFlags.Timeout, "timeout", 0,
		"kill the converter after this duration (0 disables the limit; default from config)")

	rootCmd.AddCommand(NewCompareCommand())
	rootCmd.AddCommand(NewConfigCommand())
	rootCmd.AddCommand(NewVersionCommand())

	return rootCmd
}

func openReportSink(cmd *cobra.Command, args []string) error {
	sink, err := output.OpenSink(reportFlags.OutputFile)
	if err != nil {
		return err
	}
	if !sink.IsFile() {
		sink = output.NewWriterSink(cmd.OutOrStdout())
	}
	reportSink = sink
	return nil
}

func runHarness(cmd *cobra.Command, args []string) error {
	defer reportSink.Close()
	ctx := commandContext(cmd)

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyFlagsToConfig(cmd, cfg)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger, err := createLogger(cfg)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer logger.Close()

	h, err := harness.New(harness.Options{
		Config:          cfg,
		Mode:            models.ModeFromFlag(runFlags.IgnoreMasks),
		Sink:            reportSink,
		Formatter:       createFormatter(cmd, cfg),
		Logger:          logger,
		Console:         console(cmd, cfg),
		ConverterStdout: console(cmd, cfg),
		ConverterStderr: cmd.ErrOrStderr(),
	})
	if err != nil {
		return err
	}

	report, err := h.Run(ctx)
	if err != nil {
		return err
	}
	return statusError(report)
}

// statusError turns a failed report into models.ErrRegression
func statusError(report *models.Report) error {
	if report.Status == models.StatusFailed {
		return fmt.Errorf("%d missing, %d mismatched: %w",
			len(report.Missing), len(report.Mismatched), models.ErrRegression)
	}
	return nil
}
