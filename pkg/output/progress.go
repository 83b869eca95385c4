package output

import (
	"io"
	"os"
	"strconv"

	"github.com/cheggaaa/pb/v3"
	"golang.org/x/term"

	"github.com/sdejongh/convcheck/pkg/models"
)

// progressTemplate shows counts, a bar and the mismatch tally
const progressTemplate = `{{counters . }} {{bar . }} {{percent . }} {{string . "failures"}}`

// ProgressFormatter draws a progress bar while reference files are examined
type ProgressFormatter struct {
	bar       *pb.ProgressBar
	barWriter io.Writer
	failures  int
	summary   *HumanFormatter
}

// NewProgressFormatter creates a progress bar formatter drawing on barWriter
// (stderr when nil)
func NewProgressFormatter(barWriter io.Writer) *ProgressFormatter {
	if barWriter == nil {
		barWriter = os.Stderr
	}
	return &ProgressFormatter{barWriter: barWriter, summary: NewHumanFormatter()}
}

// Start creates the bar; the summary line later goes to writer
func (f *ProgressFormatter) Start(writer io.Writer, total int) error {
	f.failures = 0

	f.bar = pb.ProgressBarTemplate(progressTemplate).New(total)
	f.bar.SetWriter(f.barWriter)
	f.bar.Set("failures", "")
	f.bar.Start()
	return f.summary.Start(writer, total)
}

// Progress advances the bar by one file
func (f *ProgressFormatter) Progress(result models.FileResult) error {
	if f.bar == nil {
		return nil
	}
	if result.Outcome != models.OutcomeEqual {
		f.failures++
		f.bar.Set("failures", formatFailures(f.failures))
	}
	f.bar.Increment()
	return nil
}

// Complete stops the bar and prints the summary line
func (f *ProgressFormatter) Complete(report *models.Report) error {
	if f.bar != nil {
		f.bar.Finish()
	}
	return f.summary.Complete(report)
}

// Error stops the bar without printing the summary
func (f *ProgressFormatter) Error(err error) error {
	if f.bar != nil {
		f.bar.Finish()
		f.bar = nil
	}
	return nil
}

// Name returns the formatter name
func (f *ProgressFormatter) Name() string {
	return "progress"
}

func formatFailures(n int) string {
	if n == 1 {
		return "1 failure"
	}
	return strconv.Itoa(n) + " failures"
}

// IsTerminal reports whether w is an interactive terminal
func IsTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	return ok && term.IsTerminal(int(file.Fd()))
}
