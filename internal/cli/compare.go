package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sdejongh/convcheck/pkg/harness"
	"github.com/sdejongh/convcheck/pkg/models"
)

// CompareFlags holds compare command flags
type CompareFlags struct {
	Reference string
	Candidate string
}

var compareFlags CompareFlags

// NewCompareCommand creates the compare command
func NewCompareCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Compare two image trees without running the converter",
		Long: `Compare a candidate directory tree with a reference tree and report
missing or mismatched images. Nothing is deleted.`,
		Args:    cobra.NoArgs,
		PreRunE: openReportSink,
		RunE:    runCompare,
	}

	cmd.Flags().StringVarP(&compareFlags.Reference, "reference", "r", "", "reference directory path (required)")
	cmd.Flags().StringVarP(&compareFlags.Candidate, "candidate", "c", "", "candidate directory path (required)")
	cmd.MarkFlagRequired("reference")
	cmd.MarkFlagRequired("candidate")
	addReportFlags(cmd)

	return cmd
}

func runCompare(cmd *cobra.Command, args []string) error {
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
		Config:    cfg,
		Mode:      models.ModeNormal,
		Sink:      reportSink,
		Formatter: createFormatter(cmd, cfg),
		Logger:    logger,
		Console:   console(cmd, cfg),
	})
	if err != nil {
		return err
	}

	report, err := h.Compare(ctx, compareFlags.Reference, compareFlags.Candidate)
	if err != nil {
		return fmt.Errorf("comparison failed: %w", err)
	}
	return statusError(report)
}
