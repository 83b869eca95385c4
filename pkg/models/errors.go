package models

import (
	"errors"
	"fmt"
	"time"
)

// ErrRegression is returned when a run produced a non-empty report
var ErrRegression = errors.New("output does not match reference")

// PathError indicates the report sink could not be opened
type PathError struct {
	Path string
	Err  error
}

func (e *PathError) Error() string {
	return fmt.Sprintf("cannot open output file %s: %v", e.Path, e.Err)
}

func (e *PathError) Unwrap() error { return e.Err }

// SubprocessError indicates the converter could not be run to completion
type SubprocessError struct {
	Argv     []string
	ExitCode int
	Timeout  time.Duration
	Err      error

	// Interrupted is set when the run was cancelled after the process started
	Interrupted bool
}

func (e *SubprocessError) Error() string {
	switch {
	case e.Timeout > 0:
		return fmt.Sprintf("converter %v timed out after %s", e.Argv, e.Timeout)
	case e.Interrupted:
		return fmt.Sprintf("converter %v interrupted: %v", e.Argv, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("converter %v failed to start: %v", e.Argv, e.Err)
	default:
		return fmt.Sprintf("converter %v exited with code %d", e.Argv, e.ExitCode)
	}
}

func (e *SubprocessError) Unwrap() error { return e.Err }

// DecodeError indicates an image file could not be read or decoded
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("cannot decode image %s: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// ComparisonError indicates a pair could not be compared numerically
type ComparisonError struct {
	Path   string
	Reason string
}

func (e *ComparisonError) Error() string {
	return fmt.Sprintf("cannot compare %s: %s", e.Path, e.Reason)
}

// StructureError indicates a subdirectory present on only one side
type StructureError struct {
	Dir string
	// Side names the tree that has the directory: "reference" or "candidate"
	Side string
}

func (e *StructureError) Error() string {
	return fmt.Sprintf("directory %q exists only in %s tree", e.Dir, e.Side)
}

// ExitCode maps a run error to a process exit code
func ExitCode(err error) int {
	if err == nil {
		return ExitPassed
	}
	if errors.Is(err, ErrRegression) {
		return ExitFailed
	}
	return ExitError
}
