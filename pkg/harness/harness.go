// Package harness drives one regression run: clear previous output, run the
// converter, compare its output with the reference tree and report.
package harness

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sdejongh/convcheck/pkg/compare"
	"github.com/sdejongh/convcheck/pkg/config"
	"github.com/sdejongh/convcheck/pkg/converter"
	"github.com/sdejongh/convcheck/pkg/imageio"
	"github.com/sdejongh/convcheck/pkg/logging"
	"github.com/sdejongh/convcheck/pkg/models"
	"github.com/sdejongh/convcheck/pkg/output"
	"github.com/sdejongh/convcheck/pkg/storage"
)

// Options wires a Harness. Zero-valued optional fields get defaults in New.
type Options struct {
	Config *config.Config
	Mode   models.Mode

	// Sink receives the missing/mismatched report; it is not closed by the harness
	Sink *output.Sink

	Runner    converter.Runner
	Loader    imageio.Loader
	Formatter output.Formatter
	Logger    logging.Logger

	// OpenTree opens a directory tree for reading (default storage.NewLocal)
	OpenTree func(root string) (storage.Backend, error)

	// Console receives the echoed command line and the files-counted line
	Console io.Writer
	// ConverterStdout and ConverterStderr receive the converter's own output
	ConverterStdout io.Writer
	ConverterStderr io.Writer
}

// Harness runs the converter and checks its output
type Harness struct {
	cfg     *config.Config
	mode    models.Mode
	profile config.Profile
	sink    *output.Sink

	runner    converter.Runner
	openTree  func(root string) (storage.Backend, error)
	trees     *compare.TreeComparator
	formatter output.Formatter
	logger    logging.Logger

	console         io.Writer
	converterStdout io.Writer
	converterStderr io.Writer
}

// New validates the options and builds a harness
func New(opts Options) (*Harness, error) {
	if opts.Config == nil {
		return nil, errors.New("harness: config is required")
	}
	if opts.Sink == nil {
		return nil, errors.New("harness: report sink is required")
	}
	profile, err := opts.Config.Profile(opts.Mode)
	if err != nil {
		return nil, err
	}

	h := &Harness{
		cfg:             opts.Config,
		mode:            opts.Mode,
		profile:         profile,
		sink:            opts.Sink,
		runner:          opts.Runner,
		openTree:        opts.OpenTree,
		formatter:       opts.Formatter,
		logger:          opts.Logger,
		console:         opts.Console,
		converterStdout: opts.ConverterStdout,
		converterStderr: opts.ConverterStderr,
	}
	if h.runner == nil {
		h.runner = converter.NewOSRunner()
	}
	if h.openTree == nil {
		h.openTree = openLocal
	}
	if h.formatter == nil {
		h.formatter = output.NewHumanFormatter()
	}
	if h.logger == nil {
		h.logger = logging.NewNullLogger()
	}
	if h.console == nil {
		h.console = io.Discard
	}

	loader := opts.Loader
	if loader == nil {
		loader = imageio.NewFileLoader()
	}
	h.trees = compare.NewTreeComparator(
		compare.NewImageComparator(loader, opts.Config.Compare.Tolerance),
		opts.Config.Compare.Extension,
		opts.Config.Compare.Pairing,
	)

	return h, nil
}

// Run performs setup, converter invocation, comparison and reporting.
// The returned error is fatal to the run; a non-empty report is signalled by
// report.Status == models.StatusFailed.
func (h *Harness) Run(ctx context.Context) (*models.Report, error) {
	report := h.newReport()
	log := h.logger.WithFields(logging.Fields{"run_id": report.RunID, "mode": string(h.mode)})

	for _, dir := range h.cfg.OutputDirs() {
		log.Debug(ctx, "clearing output directory", logging.Fields{"dir": dir})
		if err := storage.RemoveAll(dir); err != nil {
			return h.abort(ctx, log, report, err)
		}
	}

	if err := h.invoke(ctx, log, report); err != nil {
		return h.abort(ctx, log, report, err)
	}

	if err := h.compareTrees(ctx, log, report); err != nil {
		return h.abort(ctx, log, report, err)
	}

	if err := h.finish(ctx, log, report, true); err != nil {
		return h.abort(ctx, log, report, err)
	}
	return report, nil
}

// Compare checks candidate against reference without running the converter
// or deleting any directory
func (h *Harness) Compare(ctx context.Context, reference, candidate string) (*models.Report, error) {
	report := h.newReport()
	report.ReferenceRoot = reference
	report.CandidateRoot = candidate
	log := h.logger.WithFields(logging.Fields{"run_id": report.RunID})

	if err := h.compareTrees(ctx, log, report); err != nil {
		return h.abort(ctx, log, report, err)
	}
	if err := h.finish(ctx, log, report, false); err != nil {
		return h.abort(ctx, log, report, err)
	}
	return report, nil
}

func (h *Harness) newReport() *models.Report {
	return &models.Report{
		RunID:         uuid.New().String(),
		Mode:          h.mode,
		ReferenceRoot: h.profile.Reference,
		CandidateRoot: h.profile.Output,
		StartTime:     time.Now(),
	}
}

func (h *Harness) invoke(ctx context.Context, log logging.Logger, report *models.Report) error {
	argv := converter.BuildArgv(h.cfg.Converter.Command, h.profile.Flags, h.profile.Input, h.profile.Output)
	report.ConverterArgv = argv

	fmt.Fprintln(h.console, strings.Join(argv, " "))
	log.Info(ctx, "running converter", logging.Fields{"argv": strings.Join(argv, " ")})

	result, err := h.runner.Run(ctx, converter.Command{
		Argv:    argv,
		Stdout:  h.converterStdout,
		Stderr:  h.converterStderr,
		Timeout: h.cfg.Converter.Timeout,
	})
	if err != nil {
		return err
	}

	report.ConverterExitCode = result.ExitCode
	fields := logging.Fields{"exit_code": result.ExitCode, "duration": result.Duration.Round(time.Millisecond)}
	if result.ExitCode == 0 {
		log.Info(ctx, "converter finished", fields)
		return nil
	}

	log.Warn(ctx, "converter exited with non-zero status", fields)
	if h.cfg.Converter.FailOnExitCode {
		return &models.SubprocessError{Argv: argv, ExitCode: result.ExitCode}
	}
	return nil
}

func (h *Harness) compareTrees(ctx context.Context, log logging.Logger, report *models.Report) error {
	ref, err := h.snapshot(ctx, report.ReferenceRoot)
	if err != nil {
		return fmt.Errorf("reference tree: %w", err)
	}
	cand, err := h.snapshot(ctx, report.CandidateRoot)
	if err != nil {
		return fmt.Errorf("candidate tree: %w", err)
	}

	log.Info(ctx, "comparing", logging.Fields{
		"reference": report.ReferenceRoot,
		"candidate": report.CandidateRoot,
		"pairing":   string(h.cfg.Compare.Pairing),
	})

	if err := h.formatter.Start(h.console, h.trees.Candidates(ref)); err != nil {
		return err
	}
	h.trees.SetObserver(func(r models.FileResult) {
		log.Debug(ctx, "compared", logging.Fields{
			"file":          r.ReferencePath,
			"outcome":       string(r.Outcome),
			"max_deviation": r.MaxDeviation,
		})
		h.formatter.Progress(r)
	})

	if err := h.trees.Compare(ctx, ref, cand, report); err != nil {
		h.formatter.Error(err)
		return err
	}
	return h.formatter.Complete(report)
}

// finish writes the report when anything failed; otherwise it optionally clears
// the output directories and removes the empty report file
func (h *Harness) finish(ctx context.Context, log logging.Logger, report *models.Report, cleanup bool) error {
	report.Finish()
	log.Info(ctx, "comparison finished", logging.Fields{
		"examined":   report.FilesExamined,
		"missing":    len(report.Missing),
		"mismatched": len(report.Mismatched),
		"status":     string(report.Status),
	})

	if !report.Clean() {
		if err := output.WriteDifferencesReport(h.sink, report, h.cfg.Output.Format); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
		return h.sink.Close()
	}

	if cleanup {
		for _, dir := range h.cfg.OutputDirs() {
			if err := storage.RemoveAll(dir); err != nil {
				return err
			}
		}
	}
	return h.sink.Discard()
}

func (h *Harness) abort(ctx context.Context, log logging.Logger, report *models.Report, err error) (*models.Report, error) {
	report.Finish()
	report.Status = models.StatusError
	log.Error(ctx, "run aborted", err, nil)
	return report, err
}

func (h *Harness) snapshot(ctx context.Context, root string) (storage.Snapshot, error) {
	tree, err := h.openTree(root)
	if err != nil {
		return nil, err
	}
	defer tree.Close()
	return tree.Snapshot(ctx)
}

func openLocal(root string) (storage.Backend, error) {
	local, err := storage.NewLocal(root)
	if err != nil {
		return nil, err
	}
	return local, nil
}
