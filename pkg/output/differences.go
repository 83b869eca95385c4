package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/sdejongh/convcheck/pkg/models"
)

// Report headings
const (
	MissedHeading   = "# Missed files:"
	MismatchHeading = "# Images do not match:"
)

// WriteDifferencesReport writes the missing and mismatched files of report to w.
// Format can be "human" or "json".
func WriteDifferencesReport(w io.Writer, report *models.Report, format string) error {
	switch format {
	case "json":
		return writeDifferencesJSON(w, report)
	default: // "human"
		return writeDifferencesHuman(w, report)
	}
}

// writeDifferencesHuman writes the two-section plain text report
func writeDifferencesHuman(w io.Writer, report *models.Report) error {
	if _, err := fmt.Fprintln(w, MissedHeading); err != nil {
		return err
	}
	for _, path := range report.Missing {
		if _, err := fmt.Fprintf(w, "  %s\n", path); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintln(w, MismatchHeading); err != nil {
		return err
	}
	for _, m := range report.Mismatched {
		line := "  " + m.Path
		if m.Note != "" {
			line += " (" + m.Note + ")"
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// writeDifferencesJSON writes the report as indented JSON
func writeDifferencesJSON(w io.Writer, report *models.Report) error {
	out := struct {
		RunID             string            `json:"run_id"`
		Mode              models.Mode       `json:"mode"`
		ReferenceRoot     string            `json:"reference_root"`
		CandidateRoot     string            `json:"candidate_root"`
		ConverterArgv     []string          `json:"converter_argv,omitempty"`
		ConverterExitCode int               `json:"converter_exit_code"`
		FilesExamined     int               `json:"files_examined"`
		Missing           []string          `json:"missing"`
		Mismatched        []models.Mismatch `json:"mismatched"`
		Status            models.RunStatus  `json:"status"`
	}{
		RunID:             report.RunID,
		Mode:              report.Mode,
		ReferenceRoot:     report.ReferenceRoot,
		CandidateRoot:     report.CandidateRoot,
		ConverterArgv:     report.ConverterArgv,
		ConverterExitCode: report.ConverterExitCode,
		FilesExamined:     report.FilesExamined,
		Missing:           report.Missing,
		Mismatched:        report.Mismatched,
		Status:            report.Status,
	}
	// Empty lists render as [] rather than null
	if out.Missing == nil {
		out.Missing = []string{}
	}
	if out.Mismatched == nil {
		out.Mismatched = []models.Mismatch{}
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(out)
}
