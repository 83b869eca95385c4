package compare

import (
	"fmt"
	"iter"

	"github.com/sdejongh/convcheck/pkg/models"
	"github.com/sdejongh/convcheck/pkg/storage"
)

// Pair is a reference directory listing and the candidate listing compared against it
type Pair struct {
	Reference storage.Listing
	Candidate storage.Listing
}

// Pairs returns the pairing sequence for the given strategy
func Pairs(strategy models.PairingStrategy, reference, candidate storage.Snapshot) (iter.Seq2[Pair, error], error) {
	switch strategy {
	case models.PairByOrder:
		return PairByOrder(reference, candidate), nil
	case models.PairByPath:
		return PairByPath(reference, candidate), nil
	default:
		return nil, fmt.Errorf("unsupported pairing strategy: %s", strategy)
	}
}

// PairByOrder zips both walks in traversal order. Directories are not matched
// by name; the sequence stops silently at the end of the shorter walk.
func PairByOrder(reference, candidate storage.Snapshot) iter.Seq2[Pair, error] {
	return func(yield func(Pair, error) bool) {
		n := min(len(reference), len(candidate))
		for i := 0; i < n; i++ {
			if !yield(Pair{Reference: reference[i], Candidate: candidate[i]}, nil) {
				return
			}
		}
	}
}

// PairByPath matches directories by relative path in reference order.
// If a directory exists on one side only, a single *models.StructureError
// is yielded before any pair.
func PairByPath(reference, candidate storage.Snapshot) iter.Seq2[Pair, error] {
	return func(yield func(Pair, error) bool) {
		byDir := make(map[string]storage.Listing, len(candidate))
		for _, l := range candidate {
			byDir[l.Dir] = l
		}

		refDirs := make(map[string]bool, len(reference))
		for _, l := range reference {
			refDirs[l.Dir] = true
			if _, ok := byDir[l.Dir]; !ok {
				yield(Pair{}, &models.StructureError{Dir: l.Dir, Side: "reference"})
				return
			}
		}
		for _, l := range candidate {
			if !refDirs[l.Dir] {
				yield(Pair{}, &models.StructureError{Dir: l.Dir, Side: "candidate"})
				return
			}
		}

		for _, l := range reference {
			if !yield(Pair{Reference: l, Candidate: byDir[l.Dir]}, nil) {
				return
			}
		}
	}
}
