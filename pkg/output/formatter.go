package output

import (
	"io"

	"github.com/sdejongh/convcheck/pkg/models"
)

// Formatter renders comparison progress on the console
type Formatter interface {
	// Start announces a comparison over total reference files
	Start(writer io.Writer, total int) error

	// Progress reports one examined reference file
	Progress(result models.FileResult) error

	// Complete prints the end-of-comparison summary
	Complete(report *models.Report) error

	// Error ends a comparison that was aborted
	Error(err error) error

	// Name returns the formatter name
	Name() string
}
