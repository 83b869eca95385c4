package storage

import (
	"context"
	"sort"
)

// Listing is one directory of a tree snapshot
type Listing struct {
	// Dir is relative to the tree root ("." for the root itself)
	Dir string
	// Path is Dir joined onto the root as the root was given
	Path string
	// Files holds the names of the non-directory entries, sorted
	Files []string
}

// HasFile reports whether name is one of the listing's files.
// Files must be sorted.
func (l Listing) HasFile(name string) bool {
	i := sort.SearchStrings(l.Files, name)
	return i < len(l.Files) && l.Files[i] == name
}

// Snapshot is a top-down walk of a tree, parents before children,
// siblings in lexical order
type Snapshot []Listing

// CountFiles counts files across every listing that match keep
func (s Snapshot) CountFiles(keep func(name string) bool) int {
	n := 0
	for _, l := range s {
		for _, f := range l.Files {
			if keep(f) {
				n++
			}
		}
	}
	return n
}

// Backend defines the interface for reading a directory tree
type Backend interface {
	// Root returns the root path as given
	Root() string

	// Snapshot walks the whole tree once
	Snapshot(ctx context.Context) (Snapshot, error)

	// Close releases any resources held by the backend
	Close() error
}
