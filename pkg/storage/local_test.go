package storage

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func createTree(t *testing.T, root string, files ...string) {
	t.Helper()
	for _, f := range files {
		path := filepath.Join(root, filepath.FromSlash(f))
		if strings.HasSuffix(f, "/") {
			if err := os.MkdirAll(path, 0755); err != nil {
				t.Fatalf("failed to create dir: %v", err)
			}
			continue
		}
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatalf("failed to create parent dir: %v", err)
		}
		if err := os.WriteFile(path, []byte(f), 0644); err != nil {
			t.Fatalf("failed to create file: %v", err)
		}
	}
}

func TestNewLocal(t *testing.T) {
	dir := t.TempDir()

	if _, err := NewLocal(dir); err != nil {
		t.Fatalf("NewLocal() error = %v", err)
	}

	if _, err := NewLocal(filepath.Join(dir, "absent")); err == nil {
		t.Error("NewLocal() should fail for missing directory")
	}

	file := filepath.Join(dir, "file.txt")
	if err := os.WriteFile(file, nil, 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := NewLocal(file); err == nil {
		t.Error("NewLocal() should fail for a regular file")
	}
}

func TestSnapshot_TopDownOrder(t *testing.T) {
	root := t.TempDir()
	createTree(t, root,
		"z.tif",
		"a.tif",
		"b/2.tif",
		"b/1.tif",
		"b/c/deep.tif",
		"a/x.tif",
		"empty/",
	)

	local, err := NewLocal(root)
	if err != nil {
		t.Fatal(err)
	}
	snap, err := local.Snapshot(context.Background())
	if err != nil {
		t.Fatalf("Snapshot() error = %v", err)
	}

	var dirs []string
	for _, l := range snap {
		dirs = append(dirs, filepath.ToSlash(l.Dir))
	}
	wantDirs := []string{".", "a", "b", "b/c", "empty"}
	if !reflect.DeepEqual(dirs, wantDirs) {
		t.Errorf("dirs = %v, want %v", dirs, wantDirs)
	}

	if !reflect.DeepEqual(snap[0].Files, []string{"a.tif", "z.tif"}) {
		t.Errorf("root files = %v", snap[0].Files)
	}
	if !reflect.DeepEqual(snap[2].Files, []string{"1.tif", "2.tif"}) {
		t.Errorf("b files = %v", snap[2].Files)
	}
	if snap[2].Path != filepath.Join(root, "b") {
		t.Errorf("Path = %q", snap[2].Path)
	}
	if len(snap[4].Files) != 0 {
		t.Errorf("empty dir files = %v", snap[4].Files)
	}

	n := snap.CountFiles(func(name string) bool { return strings.HasSuffix(name, ".tif") })
	if n != 6 {
		t.Errorf("CountFiles() = %d, want 6", n)
	}
}

func TestSnapshot_Cancelled(t *testing.T) {
	local, err := NewLocal(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := local.Snapshot(ctx); err == nil {
		t.Error("Snapshot() should fail on a cancelled context")
	}
}

func TestListingHasFile(t *testing.T) {
	l := Listing{Files: []string{"a.tif", "b.tif", "c.txt", "d.tif"}}

	tests := []struct {
		name string
		want bool
	}{
		{"a.tif", true},
		{"b.tif", true},
		{"d.tif", true},
		{"c.tif", false},
		{"0.tif", false},
		{"z.tif", false},
	}

	for _, tt := range tests {
		if got := l.HasFile(tt.name); got != tt.want {
			t.Errorf("HasFile(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
	if (Listing{}).HasFile("a.tif") {
		t.Error("empty listing has no files")
	}
}

func TestRemoveAll(t *testing.T) {
	root := t.TempDir()
	createTree(t, root, "out/a/b.tif")

	target := filepath.Join(root, "out")
	if err := RemoveAll(target); err != nil {
		t.Fatalf("RemoveAll() error = %v", err)
	}
	if _, err := os.Stat(target); !os.IsNotExist(err) {
		t.Error("directory still exists")
	}

	// Second removal is a no-op
	if err := RemoveAll(target); err != nil {
		t.Errorf("RemoveAll() on missing path error = %v", err)
	}
}
