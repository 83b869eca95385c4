package output

import (
	"fmt"
	"io"
	"os"

	"github.com/sdejongh/convcheck/pkg/models"
)

// Sink is the destination of the regression report: a named file or stdout
type Sink struct {
	w    io.Writer
	file *os.File
	path string
}

// OpenSink opens path for writing, truncating it. An empty path or "-" selects stdout.
func OpenSink(path string) (*Sink, error) {
	if path == "" || path == "-" {
		return NewWriterSink(os.Stdout), nil
	}

	file, err := os.Create(path)
	if err != nil {
		return nil, &models.PathError{Path: path, Err: err}
	}
	return &Sink{w: file, file: file, path: path}, nil
}

// NewWriterSink wraps an arbitrary writer (stdout, or a buffer in tests)
func NewWriterSink(w io.Writer) *Sink {
	return &Sink{w: w}
}

// Write implements io.Writer
func (s *Sink) Write(p []byte) (int, error) {
	return s.w.Write(p)
}

// IsFile reports whether the sink is a named file
func (s *Sink) IsFile() bool {
	return s.file != nil
}

// Path returns the file path, or "" for a writer sink
func (s *Sink) Path() string {
	return s.path
}

// Close closes the file, if any. Safe to call more than once.
func (s *Sink) Close() error {
	if s.file == nil {
		return nil
	}
	err := s.file.Close()
	s.file = nil
	s.w = io.Discard
	return err
}

// Discard closes the sink and deletes its file. Writer sinks are left alone.
func (s *Sink) Discard() error {
	if s.path == "" {
		return nil
	}
	if err := s.Close(); err != nil {
		return err
	}
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove report file: %w", err)
	}
	return nil
}
