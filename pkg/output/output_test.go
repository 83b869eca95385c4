package output

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sdejongh/convcheck/pkg/models"
)

func sampleReport() *models.Report {
	r := &models.Report{
		RunID:         "run-1",
		Mode:          models.ModeNormal,
		ReferenceRoot: "test-data-results",
		CandidateRoot: "test-data-out",
		FilesExamined: 5,
	}
	r.AddMissing("test-data-results/plate1/a.tif")
	r.AddMissing("test-data-results/plate1/b.tif")
	r.AddMismatch("test-data-results/plate2/c.tif", "")
	r.AddMismatch("test-data-results/plate2/zero.tif", models.NoteDegenerateReference)
	r.Status = models.StatusFailed
	return r
}

func TestWriteDifferencesReport_Human(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteDifferencesReport(&buf, sampleReport(), "human"); err != nil {
		t.Fatalf("WriteDifferencesReport() error = %v", err)
	}

	want := `# Missed files:
  test-data-results/plate1/a.tif
  test-data-results/plate1/b.tif
# Images do not match:
  test-data-results/plate2/c.tif
  test-data-results/plate2/zero.tif (degenerate reference image)
`
	if buf.String() != want {
		t.Errorf("report =\n%s\nwant\n%s", buf.String(), want)
	}
}

func TestWriteDifferencesReport_HumanEmptySections(t *testing.T) {
	r := &models.Report{}
	r.AddMismatch("ref/a.tif", "")

	var buf bytes.Buffer
	if err := WriteDifferencesReport(&buf, r, "human"); err != nil {
		t.Fatal(err)
	}
	want := "# Missed files:\n# Images do not match:\n  ref/a.tif\n"
	if buf.String() != want {
		t.Errorf("report = %q, want %q", buf.String(), want)
	}
}

func TestWriteDifferencesReport_JSON(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteDifferencesReport(&buf, sampleReport(), "json"); err != nil {
		t.Fatalf("WriteDifferencesReport() error = %v", err)
	}

	var decoded struct {
		RunID         string            `json:"run_id"`
		FilesExamined int               `json:"files_examined"`
		Missing       []string          `json:"missing"`
		Mismatched    []models.Mismatch `json:"mismatched"`
		Status        string            `json:"status"`
	}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if decoded.RunID != "run-1" || decoded.FilesExamined != 5 || decoded.Status != "failed" {
		t.Errorf("decoded = %+v", decoded)
	}
	if len(decoded.Missing) != 2 || len(decoded.Mismatched) != 2 {
		t.Errorf("decoded lists = %v / %v", decoded.Missing, decoded.Mismatched)
	}
	if decoded.Mismatched[1].Note != models.NoteDegenerateReference {
		t.Errorf("Note = %q", decoded.Mismatched[1].Note)
	}
}

func TestWriteDifferencesReport_JSONEmptyLists(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteDifferencesReport(&buf, &models.Report{}, "json"); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), `"missing": []`) || !strings.Contains(buf.String(), `"mismatched": []`) {
		t.Errorf("empty lists should render as []: %s", buf.String())
	}
}

func TestOpenSink(t *testing.T) {
	t.Run("Stdout", func(t *testing.T) {
		for _, path := range []string{"", "-"} {
			s, err := OpenSink(path)
			if err != nil {
				t.Fatalf("OpenSink(%q) error = %v", path, err)
			}
			if s.IsFile() {
				t.Errorf("OpenSink(%q) should select stdout", path)
			}
			if err := s.Discard(); err != nil {
				t.Errorf("Discard() on stdout error = %v", err)
			}
		}
	})

	t.Run("File", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "report.txt")
		s, err := OpenSink(path)
		if err != nil {
			t.Fatalf("OpenSink() error = %v", err)
		}
		if !s.IsFile() || s.Path() != path {
			t.Errorf("sink = %+v", s)
		}
		if _, err := s.Write([]byte("hello\n")); err != nil {
			t.Fatal(err)
		}
		if err := s.Close(); err != nil {
			t.Fatal(err)
		}
		if err := s.Close(); err != nil {
			t.Errorf("second Close() error = %v", err)
		}

		data, err := os.ReadFile(path)
		if err != nil || string(data) != "hello\n" {
			t.Errorf("content = %q, err = %v", data, err)
		}
	})

	t.Run("Discard", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "report.txt")
		s, err := OpenSink(path)
		if err != nil {
			t.Fatal(err)
		}
		if err := s.Discard(); err != nil {
			t.Fatalf("Discard() error = %v", err)
		}
		if _, err := os.Stat(path); !os.IsNotExist(err) {
			t.Error("report file should be deleted")
		}
	})

	t.Run("Unwritable", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "missing-dir", "report.txt")
		_, err := OpenSink(path)
		var perr *models.PathError
		if !errors.As(err, &perr) {
			t.Fatalf("OpenSink() error = %v, want PathError", err)
		}
		if perr.Path != path {
			t.Errorf("Path = %q", perr.Path)
		}
	})
}

func TestHumanFormatter(t *testing.T) {
	var buf bytes.Buffer
	f := NewHumanFormatter()
	if err := f.Start(&buf, 3); err != nil {
		t.Fatal(err)
	}
	f.Progress(models.FileResult{Outcome: models.OutcomeEqual})
	if err := f.Complete(&models.Report{FilesExamined: 3}); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "3 files counted\n" {
		t.Errorf("output = %q", buf.String())
	}
}

func TestProgressFormatter(t *testing.T) {
	var bar, buf bytes.Buffer
	f := NewProgressFormatter(&bar)
	if err := f.Start(&buf, 2); err != nil {
		t.Fatal(err)
	}
	f.Progress(models.FileResult{Outcome: models.OutcomeEqual})
	f.Progress(models.FileResult{Outcome: models.OutcomeMissing})
	if err := f.Complete(&models.Report{FilesExamined: 2}); err != nil {
		t.Fatal(err)
	}

	if f.failures != 1 {
		t.Errorf("failures = %d, want 1", f.failures)
	}
	if buf.String() != "2 files counted\n" {
		t.Errorf("summary = %q", buf.String())
	}
	if bar.Len() == 0 {
		t.Error("progress bar was not drawn")
	}
}

func TestProgressFormatterError(t *testing.T) {
	var bar, buf bytes.Buffer
	f := NewProgressFormatter(&bar)
	if err := f.Start(&buf, 3); err != nil {
		t.Fatal(err)
	}
	f.Progress(models.FileResult{Outcome: models.OutcomeEqual})
	if err := f.Error(errors.New("decode failed")); err != nil {
		t.Fatal(err)
	}

	if f.bar != nil {
		t.Error("bar should be finished after Error")
	}
	if buf.Len() != 0 {
		t.Errorf("no summary expected after an abort: %q", buf.String())
	}
	// Later calls are harmless
	if err := f.Progress(models.FileResult{Outcome: models.OutcomeEqual}); err != nil {
		t.Error(err)
	}
}

func TestFormatFailures(t *testing.T) {
	if formatFailures(1) != "1 failure" || formatFailures(12) != "12 failures" {
		t.Error("unexpected failure label")
	}
}

func TestIsTerminal(t *testing.T) {
	if IsTerminal(&bytes.Buffer{}) {
		t.Error("a buffer is not a terminal")
	}
}
