package models

// Outcome classifies a single reference file after comparison
type Outcome string

const (
	// OutcomeEqual indicates every sample is within tolerance
	OutcomeEqual Outcome = "equal"
	// OutcomeMissing indicates no same-named candidate file exists
	OutcomeMissing Outcome = "missing"
	// OutcomeMismatched indicates at least one sample exceeds tolerance
	OutcomeMismatched Outcome = "mismatched"
)

// Notes attached to mismatches that were not decided by the tolerance check
const (
	NoteDegenerateReference = "degenerate reference image"
	NoteDimensionsDiffer    = "dimensions differ"
)

// FileResult is the outcome for one reference file
type FileResult struct {
	// ReferencePath is the reference file as found under the reference root
	ReferencePath string `json:"reference_path"`
	// CandidatePath is empty when the file is missing
	CandidatePath string  `json:"candidate_path,omitempty"`
	Outcome       Outcome `json:"outcome"`
	// MaxDeviation is the largest normalized absolute sample difference
	MaxDeviation float64 `json:"max_deviation,omitempty"`
	Note         string  `json:"note,omitempty"`
}

// Mismatch is a reference path whose candidate did not match
type Mismatch struct {
	Path string `json:"path"`
	Note string `json:"note,omitempty"`
}
