package models

import (
	"time"
)

// Report represents the results of a regression run
type Report struct {
	RunID         string `json:"run_id"`
	Mode          Mode   `json:"mode"`
	ReferenceRoot string `json:"reference_root"`
	CandidateRoot string `json:"candidate_root"`

	StartTime time.Time     `json:"start_time"`
	EndTime   time.Time     `json:"end_time"`
	Duration  time.Duration `json:"duration"`

	// ConverterArgv is empty when no converter was invoked
	ConverterArgv     []string `json:"converter_argv,omitempty"`
	ConverterExitCode int      `json:"converter_exit_code"`

	// FilesExamined counts reference files carrying the configured extension
	FilesExamined int `json:"files_examined"`

	// Missing and Mismatched keep traversal order
	Missing    []string   `json:"missing"`
	Mismatched []Mismatch `json:"mismatched"`

	Status RunStatus `json:"status"`
}

// AddMissing records a reference file with no candidate
func (r *Report) AddMissing(path string) {
	r.Missing = append(r.Missing, path)
}

// AddMismatch records a reference file whose candidate differs
func (r *Report) AddMismatch(path, note string) {
	r.Mismatched = append(r.Mismatched, Mismatch{Path: path, Note: note})
}

// Clean reports whether no file was missing or mismatched
func (r *Report) Clean() bool {
	return len(r.Missing) == 0 && len(r.Mismatched) == 0
}

// Finish stamps timing and status
func (r *Report) Finish() {
	r.EndTime = time.Now()
	r.Duration = r.EndTime.Sub(r.StartTime)
	if r.Clean() {
		r.Status = StatusPassed
	} else {
		r.Status = StatusFailed
	}
}

// RunStatus represents the overall result
type RunStatus string

const (
	// StatusPassed indicates every reference file matched
	StatusPassed RunStatus = "passed"
	// StatusFailed indicates missing or mismatched files
	StatusFailed RunStatus = "failed"
	// StatusError indicates the run aborted
	StatusError RunStatus = "error"
)

// Exit codes
const (
	ExitPassed = 0
	ExitFailed = 1
	ExitError  = 2
)

// ExitCode returns the appropriate exit code for the run status
func (s RunStatus) ExitCode() int {
	switch s {
	case StatusPassed:
		return ExitPassed
	case StatusFailed:
		return ExitFailed
	default:
		return ExitError
	}
}
