package compare

import (
	"context"
	"errors"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sdejongh/convcheck/pkg/models"
	"github.com/sdejongh/convcheck/pkg/storage"
)

// TreeComparator walks paired directory listings and classifies every
// reference file carrying the configured extension
type TreeComparator struct {
	files     Comparator
	extension string
	pairing   models.PairingStrategy
	observe   func(models.FileResult)
}

// NewTreeComparator creates a tree comparator
func NewTreeComparator(files Comparator, extension string, pairing models.PairingStrategy) *TreeComparator {
	return &TreeComparator{
		files:     files,
		extension: extension,
		pairing:   pairing,
	}
}

// SetObserver registers a callback invoked once per examined reference file
func (t *TreeComparator) SetObserver(fn func(models.FileResult)) {
	t.observe = fn
}

// Candidates returns the number of reference files a comparison will examine
func (t *TreeComparator) Candidates(reference storage.Snapshot) int {
	return reference.CountFiles(t.matches)
}

func (t *TreeComparator) matches(name string) bool {
	return strings.HasSuffix(name, t.extension)
}

// Compare runs the comparison over both snapshots and accumulates into report.
// Decode and structure errors abort; comparison errors become mismatches.
func (t *TreeComparator) Compare(ctx context.Context, reference, candidate storage.Snapshot, report *models.Report) error {
	pairs, err := Pairs(t.pairing, reference, candidate)
	if err != nil {
		return err
	}

	for pair, err := range pairs {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := t.CompareListing(pair, report); err != nil {
			return err
		}
	}
	return nil
}

// CompareListing compares one directory pair. Reference files are visited in
// sorted order; candidate files without a reference are ignored.
func (t *TreeComparator) CompareListing(pair Pair, report *models.Report) error {
	var names []string
	for _, name := range pair.Reference.Files {
		if t.matches(name) {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	for _, name := range names {
		report.FilesExamined++

		refPath := filepath.Join(pair.Reference.Path, name)
		if !pair.Candidate.HasFile(name) {
			report.AddMissing(refPath)
			t.notify(models.FileResult{ReferencePath: refPath, Outcome: models.OutcomeMissing})
			continue
		}

		result, err := t.files.Compare(refPath, filepath.Join(pair.Candidate.Path, name))
		var cmpErr *models.ComparisonError
		switch {
		case errors.As(err, &cmpErr):
			report.AddMismatch(refPath, result.Note)
		case err != nil:
			return err
		case result.Outcome == models.OutcomeMismatched:
			report.AddMismatch(refPath, result.Note)
		}
		t.notify(result)
	}
	return nil
}

func (t *TreeComparator) notify(result models.FileResult) {
	if t.observe != nil {
		t.observe(result)
	}
}
