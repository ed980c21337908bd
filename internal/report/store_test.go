package report

import (
	"bytes"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/irsanai/repoprep/internal/model"
)

func newTestStore(t *testing.T) (*Store, *bytes.Buffer) {
	t.Helper()
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))
	return NewStore(filepath.Join(t.TempDir(), "Reports"), WithStoreLogger(logger)), &logs
}

func TestStoreCurrent(t *testing.T) {
	t.Parallel()

	s, _ := newTestStore(t)
	r := createTestReport()

	if err := s.SaveCurrent(r); err != nil {
		t.Fatalf("SaveCurrent() error = %v", err)
	}

	data, err := os.ReadFile(s.Path(CurrentScanFile))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "{\n  \"scan_metadata\"") {
		t.Errorf("expected two-space indentation, got %q", string(data[:30]))
	}
	if !strings.HasSuffix(string(data), "}\n") {
		t.Error("expected trailing newline")
	}

	got, err := s.LoadCurrent()
	if err != nil {
		t.Fatalf("LoadCurrent() error = %v", err)
	}
	if got.TotalViolations() != r.TotalViolations() || got.Metadata.ProjectID != r.Metadata.ProjectID {
		t.Errorf("loaded report differs: %+v", got.Metadata)
	}

	entries, err := os.ReadDir(s.Dir())
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("expected only the artifact in the directory, got %d entries", len(entries))
	}
}

func TestStoreHistory(t *testing.T) {
	t.Parallel()

	t.Run("missing history is empty", func(t *testing.T) {
		t.Parallel()

		s, logs := newTestStore(t)
		if h := s.LoadHistory(); h == nil || len(h) != 0 {
			t.Errorf("LoadHistory() = %v", h)
		}
		if logs.Len() != 0 {
			t.Errorf("expected no warning, got %q", logs.String())
		}
	})

	t.Run("append keeps order", func(t *testing.T) {
		t.Parallel()

		s, _ := newTestStore(t)
		first := model.ScanHistoryEntry{Timestamp: time.Unix(1, 0).UTC(), FileCount: 1}
		second := model.ScanHistoryEntry{Timestamp: time.Unix(2, 0).UTC(), FileCount: 2}

		if _, err := s.AppendHistory(first); err != nil {
			t.Fatal(err)
		}
		h, err := s.AppendHistory(second)
		if err != nil {
			t.Fatal(err)
		}
		if len(h) != 2 || h[0].FileCount != 1 || h[1].FileCount != 2 {
			t.Errorf("history = %+v", h)
		}
		if got := s.LoadHistory(); len(got) != 2 {
			t.Errorf("reloaded history has %d entries", len(got))
		}
	})

	t.Run("corrupt history is replaced", func(t *testing.T) {
		t.Parallel()

		s, logs := newTestStore(t)
		if err := os.MkdirAll(s.Dir(), 0o750); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(s.Path(HistoryFile), []byte("{not json"), 0o600); err != nil {
			t.Fatal(err)
		}

		h, err := s.AppendHistory(model.ScanHistoryEntry{FileCount: 7})
		if err != nil {
			t.Fatal(err)
		}
		if len(h) != 1 || h[0].FileCount != 7 {
			t.Errorf("history = %+v", h)
		}
		if !strings.Contains(logs.String(), "corrupt") {
			t.Errorf("expected corruption warning, got %q", logs.String())
		}
	})
}

func TestStoreWriteError(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	blocker := filepath.Join(dir, "Reports")
	if err := os.WriteFile(blocker, []byte("x"), 0o600); err != nil {
		t.Fatal(err)
	}

	s := NewStore(blocker)
	err := s.SaveCurrent(createTestReport())
	if !errors.Is(err, ErrWriteReport) {
		t.Errorf("expected ErrWriteReport, got %v", err)
	}
	if !errors.Is(err, ErrCreateReportDir) {
		t.Errorf("expected ErrCreateReportDir, got %v", err)
	}
}

func TestStoreEnsure(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), ".IrsanAI", "Reports")
	s := NewStore(dir)
	if err := s.Ensure(); err != nil {
		t.Fatalf("Ensure() error = %v", err)
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		t.Fatalf("expected report directory: %v", err)
	}
	if err := s.Ensure(); err != nil {
		t.Errorf("second Ensure() error = %v", err)
	}

	blocked := NewStore(filepath.Join(dir, "x", "y"))
	if err := os.WriteFile(filepath.Join(dir, "x"), []byte("x"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := blocked.Ensure(); !errors.Is(err, ErrCreateReportDir) {
		t.Errorf("expected ErrCreateReportDir, got %v", err)
	}
}

func TestStoreRemediation(t *testing.T) {
	t.Parallel()

	s, _ := newTestStore(t)
	plan := &model.RemediationPlan{}
	if err := s.SaveRemediation(plan); err != nil {
		t.Fatalf("SaveRemediation() error = %v", err)
	}
	if _, err := os.Stat(s.Path(RemediationFile)); err != nil {
		t.Errorf("remediation artifact missing: %v", err)
	}
}
