package cli

import (
	"github.com/spf13/cobra"
)

// GlobalFlags holds global flag values
type GlobalFlags struct {
	ConfigFile string
	Verbose    bool
	Quiet      bool
	LogFile    string
	LogFormat  string
	LogLevel   string
}

var globalFlags GlobalFlags

// AddGlobalFlags adds global flags to the root command
func AddGlobalFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(
		&globalFlags.ConfigFile,
		"config",
		"",
		"config file (default is ./convcheck.yaml when present)",
	)
	cmd.PersistentFlags().BoolVarP(
		&globalFlags.Verbose,
		"verbose",
		"v",
		false,
		"log debug output to stderr",
	)
	cmd.PersistentFlags().BoolVarP(
		&globalFlags.Quiet,
		"quiet",
		"q",
		false,
		"suppress non-error output",
	)
	cmd.PersistentFlags().StringVar(&globalFlags.LogFile, "log-file", "", "write logs to file (enables logging)")
	cmd.PersistentFlags().StringVar(&globalFlags.LogFormat, "log-format", "", "log format: text, json")
	cmd.PersistentFlags().StringVar(&globalFlags.LogLevel, "log-level", "", "log level: debug, info, warn, error")
}

// ReportFlags holds flags shared by the commands that produce a report
type ReportFlags struct {
	OutputFile string
	Format     string
	Progress   bool
	Tolerance  float64
	Pairing    string
}

var reportFlags ReportFlags

func addReportFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&reportFlags.OutputFile, "output-file", "o", "",
		"write the report to this file instead of stdout (overwrites existing files)")
	cmd.Flags().StringVar(&reportFlags.Format, "format", "", "report format: human, json")
	cmd.Flags().BoolVar(&reportFlags.Progress, "progress", false, "show a progress bar while comparing (terminal only)")
	cmd.Flags().Float64Var(&reportFlags.Tolerance, "tolerance", 0, "largest accepted sample difference as a fraction of the reference maximum")
	cmd.Flags().StringVar(&reportFlags.Pairing, "pairing", "", "directory pairing: order (traversal order), path (match by relative path)")
}
