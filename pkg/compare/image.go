package compare

import (
	"math"

	"github.com/sdejongh/convcheck/pkg/imageio"
	"github.com/sdejongh/convcheck/pkg/models"
)

// DefaultTolerance is the largest accepted sample deviation, as a fraction
// of the reference image's maximum sample
const DefaultTolerance = 0.01

// ImageComparator compares decoded images sample by sample
type ImageComparator struct {
	loader    imageio.Loader
	tolerance float64
}

// NewImageComparator creates a comparator with the given loader and tolerance
func NewImageComparator(loader imageio.Loader, tolerance float64) *ImageComparator {
	if tolerance <= 0 {
		tolerance = DefaultTolerance
	}
	return &ImageComparator{
		loader:    loader,
		tolerance: tolerance,
	}
}

// Compare loads both images and checks every sample difference, divided by the
// reference maximum, against the tolerance
func (c *ImageComparator) Compare(referencePath, candidatePath string) (models.FileResult, error) {
	result := models.FileResult{
		ReferencePath: referencePath,
		CandidatePath: candidatePath,
	}

	ref, err := c.loader.Load(referencePath)
	if err != nil {
		return result, err
	}
	cand, err := c.loader.Load(candidatePath)
	if err != nil {
		return result, err
	}

	if !ref.SameShape(cand) {
		result.Outcome = models.OutcomeMismatched
		result.Note = models.NoteDimensionsDiffer
		return result, &models.ComparisonError{
			Path:   referencePath,
			Reason: "reference is " + ref.String() + ", candidate is " + cand.String(),
		}
	}

	max := ref.Max()
	if max == 0 {
		result.Outcome = models.OutcomeMismatched
		result.Note = models.NoteDegenerateReference
		return result, &models.ComparisonError{
			Path:   referencePath,
			Reason: "reference maximum sample is zero",
		}
	}

	result.MaxDeviation = MaxDeviation(ref.Samples, cand.Samples, max)
	if result.MaxDeviation > c.tolerance {
		result.Outcome = models.OutcomeMismatched
	} else {
		result.Outcome = models.OutcomeEqual
	}
	return result, nil
}

// Name returns the comparator name
func (c *ImageComparator) Name() string {
	return "image"
}

// MaxDeviation returns max |candidate-reference| / scale over equally sized sample slices
func MaxDeviation(reference, candidate []float64, scale float64) float64 {
	var worst float64
	for i, r := range reference {
		d := math.Abs((candidate[i] - r) / scale)
		if d > worst {
			worst = d
		}
	}
	return worst
}
