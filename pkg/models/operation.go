package models

// Mode selects which named directory profile a run uses
type Mode string

const (
	// ModeNormal compares the converter's regular output
	ModeNormal Mode = "normal"
	// ModeMasks runs the converter with its masks flag against the masks directories
	ModeMasks Mode = "masks"
)

// ModeFromFlag maps the --ignore-masks flag to a mode
func ModeFromFlag(ignoreMasks bool) Mode {
	if ignoreMasks {
		return ModeMasks
	}
	return ModeNormal
}

// PairingStrategy defines how reference and candidate subdirectories are matched
type PairingStrategy string

const (
	// PairByPath matches subdirectories by relative path and fails on divergence
	PairByPath PairingStrategy = "path"
	// PairByOrder zips both walks in traversal order, stopping at the shorter one
	PairByOrder PairingStrategy = "order"
)

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}
