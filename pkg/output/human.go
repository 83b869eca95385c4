package output

import (
	"fmt"
	"io"

	"github.com/sdejongh/convcheck/pkg/models"
)

// HumanFormatter prints only the examined-file count
type HumanFormatter struct {
	writer io.Writer
}

// NewHumanFormatter creates a new human-readable formatter
func NewHumanFormatter() *HumanFormatter {
	return &HumanFormatter{}
}

// Start initializes the formatter
func (f *HumanFormatter) Start(writer io.Writer, total int) error {
	f.writer = writer
	return nil
}

// Progress does nothing for the plain formatter
func (f *HumanFormatter) Progress(result models.FileResult) error {
	return nil
}

// Complete prints the number of files counted
func (f *HumanFormatter) Complete(report *models.Report) error {
	if f.writer == nil {
		return nil
	}
	_, err := fmt.Fprintf(f.writer, "%d files counted\n", report.FilesExamined)
	return err
}

// Error does nothing; the caller reports the error
func (f *HumanFormatter) Error(err error) error {
	return nil
}

// Name returns the formatter name
func (f *HumanFormatter) Name() string {
	return "human"
}

// QuietFormatter prints nothing
type QuietFormatter struct{}

func (QuietFormatter) Start(writer io.Writer, total int) error { return nil }

func (QuietFormatter) Progress(result models.FileResult) error { return nil }

func (QuietFormatter) Complete(report *models.Report) error { return nil }

func (QuietFormatter) Error(err error) error { return nil }

func (QuietFormatter) Name() string { return "quiet" }
