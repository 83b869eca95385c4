package converter

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/sdejongh/convcheck/pkg/models"
)

func TestBuildArgv(t *testing.T) {
	tests := []struct {
		name  string
		flags []string
		want  []string
	}{
		{"normal", nil, []string{"python", "cellom2tif.py", "test-data", "test-data-out"}},
		{"masks", []string{"-m"}, []string{"python", "cellom2tif.py", "-m", "test-data", "test-data-out"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BuildArgv([]string{"python", "cellom2tif.py"}, tt.flags, "test-data", "test-data-out")
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("BuildArgv() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestOSRunner_Success(t *testing.T) {
	dir := t.TempDir()
	var stdout bytes.Buffer

	result, err := NewOSRunner().Run(context.Background(), Command{
		Argv:   []string{"/bin/sh", "-c", `echo "$0 $1" && mkdir "$1"`, "in", "out"},
		Dir:    dir,
		Stdout: &stdout,
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if result.ExitCode != 0 {
		t.Errorf("ExitCode = %d, want 0", result.ExitCode)
	}
	if strings.TrimSpace(stdout.String()) != "in out" {
		t.Errorf("stdout = %q", stdout.String())
	}
	if _, err := os.Stat(filepath.Join(dir, "out")); err != nil {
		t.Errorf("command did not run in Dir: %v", err)
	}
}

func TestOSRunner_NonZeroExit(t *testing.T) {
	result, err := NewOSRunner().Run(context.Background(), Command{
		Argv: []string{"/bin/sh", "-c", "exit 3"},
	})
	if err != nil {
		t.Fatalf("Run() error = %v, non-zero exit should not be an error", err)
	}
	if result.ExitCode != 3 {
		t.Errorf("ExitCode = %d, want 3", result.ExitCode)
	}
}

func TestOSRunner_StartFailure(t *testing.T) {
	argv := []string{filepath.Join(t.TempDir(), "no-such-converter")}

	_, err := NewOSRunner().Run(context.Background(), Command{Argv: argv})
	var serr *models.SubprocessError
	if !errors.As(err, &serr) {
		t.Fatalf("Run() error = %v, want SubprocessError", err)
	}
	if serr.Err == nil || serr.Timeout != 0 {
		t.Errorf("SubprocessError = %+v", serr)
	}
}

func TestOSRunner_EmptyArgv(t *testing.T) {
	_, err := NewOSRunner().Run(context.Background(), Command{})
	var serr *models.SubprocessError
	if !errors.As(err, &serr) {
		t.Fatalf("Run() error = %v, want SubprocessError", err)
	}
}

func TestOSRunner_Timeout(t *testing.T) {
	start := time.Now()
	_, err := NewOSRunner().Run(context.Background(), Command{
		Argv:    []string{"sleep", "10"},
		Timeout: 100 * time.Millisecond,
	})

	var serr *models.SubprocessError
	if !errors.As(err, &serr) {
		t.Fatalf("Run() error = %v, want SubprocessError", err)
	}
	if serr.Timeout != 100*time.Millisecond {
		t.Errorf("Timeout = %v", serr.Timeout)
	}
	if elapsed := time.Since(start); elapsed > 5*time.Second {
		t.Errorf("Run() took %v, timeout not enforced", elapsed)
	}
}

func TestOSRunner_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(100*time.Millisecond, cancel)

	_, err := NewOSRunner().Run(ctx, Command{Argv: []string{"sleep", "10"}})

	var serr *models.SubprocessError
	if !errors.As(err, &serr) {
		t.Fatalf("Run() error = %v, want SubprocessError", err)
	}
	if !serr.Interrupted || serr.Timeout != 0 {
		t.Errorf("Interrupted = %v, Timeout = %v", serr.Interrupted, serr.Timeout)
	}
	if strings.Contains(err.Error(), "failed to start") {
		t.Errorf("a started process should not read as a start failure: %v", err)
	}
}
