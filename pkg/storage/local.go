package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// Local is a filesystem-based storage backend
type Local struct {
	rootPath string
}

// NewLocal creates a new local filesystem backend
func NewLocal(rootPath string) (*Local, error) {
	info, err := os.Stat(rootPath)
	if err != nil {
		return nil, fmt.Errorf("failed to access path: %w", err)
	}

	if !info.IsDir() {
		return nil, fmt.Errorf("path is not a directory: %s", rootPath)
	}

	return &Local{rootPath: rootPath}, nil
}

// Root returns the root path as given
func (l *Local) Root() string {
	return l.rootPath
}

// Snapshot walks the tree top-down
func (l *Local) Snapshot(ctx context.Context) (Snapshot, error) {
	var snap Snapshot
	if err := l.walk(ctx, ".", &snap); err != nil {
		return nil, fmt.Errorf("failed to list files: %w", err)
	}
	return snap, nil
}

func (l *Local) walk(ctx context.Context, rel string, snap *Snapshot) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	fullPath := filepath.Join(l.rootPath, rel)
	entries, err := os.ReadDir(fullPath)
	if err != nil {
		return err
	}

	listing := Listing{Dir: rel, Path: fullPath}
	var subdirs []string
	for _, e := range entries {
		if e.IsDir() {
			subdirs = append(subdirs, e.Name())
		} else {
			listing.Files = append(listing.Files, e.Name())
		}
	}
	// ReadDir already sorts by name; keep the guarantee explicit
	sort.Strings(listing.Files)
	sort.Strings(subdirs)

	*snap = append(*snap, listing)

	for _, d := range subdirs {
		if err := l.walk(ctx, filepath.Join(rel, d), snap); err != nil {
			return err
		}
	}
	return nil
}

// Close releases resources (no-op for local filesystem)
func (l *Local) Close() error {
	return nil
}

// RemoveAll deletes a directory tree. A missing path is not an error.
func RemoveAll(path string) error {
	if err := os.RemoveAll(path); err != nil {
		return fmt.Errorf("failed to delete %s: %w", path, err)
	}
	return nil
}
