package compare

import (
	"github.com/sdejongh/convcheck/pkg/models"
)

// Comparator defines the interface for comparing one reference file with its candidate
type Comparator interface {
	// Compare classifies the candidate as equal or mismatched.
	// A *models.ComparisonError means the pair could not be compared numerically;
	// the returned result is still filled in as a mismatch.
	Compare(referencePath, candidatePath string) (models.FileResult, error)

	// Name returns the name of the comparison method
	Name() string
}
