package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"

	"github.com/irsanai/repoprep/internal/model"
)

// Artifact file names inside the report directory.
const (
	CurrentScanFile = "current_scan.json"
	HistoryFile     = "scan_history.json"
	RemediationFile = "remediation.json"
)

// Store persists report artifacts in one directory. Every write goes to a
// temporary file that is renamed into place.
type Store struct {
	dir    string
	logger *slog.Logger
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithStoreLogger sets the logger for tolerated read failures.
func WithStoreLogger(logger *slog.Logger) StoreOption {
	return func(s *Store) {
		s.logger = logger
	}
}

// NewStore creates a Store rooted at dir.
func NewStore(dir string, opts ...StoreOption) *Store {
	s := &Store{dir: dir, logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Dir returns the report directory.
func (s *Store) Dir() string {
	return s.dir
}

// Ensure creates the report directory and its parents.
func (s *Store) Ensure() error {
	if err := os.MkdirAll(s.dir, 0o750); err != nil {
		return fmt.Errorf("%w: %w", ErrCreateReportDir, err)
	}
	return nil
}

// Path returns the path of an artifact in the report directory.
func (s *Store) Path(name string) string {
	return filepath.Join(s.dir, name)
}

// SaveCurrent overwrites the current report artifact.
func (s *Store) SaveCurrent(r *model.Report) error {
	if err := s.writeJSON(CurrentScanFile, r); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteReport, err)
	}
	return nil
}

// LoadCurrent reads the current report artifact.
func (s *Store) LoadCurrent() (*model.Report, error) {
	data, err := os.ReadFile(s.Path(CurrentScanFile))
	if err != nil {
		return nil, err
	}
	var r model.Report
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", CurrentScanFile, err)
	}
	return &r, nil
}

// LoadHistory reads the scan history. A missing file is an empty history;
// an unreadable or corrupt file is logged and also treated as empty.
func (s *Store) LoadHistory() model.ScanHistory {
	data, err := os.ReadFile(s.Path(HistoryFile))
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			s.logger.Warn("failed to read scan history, starting a new one", "error", err)
		}
		return model.ScanHistory{}
	}

	var h model.ScanHistory
	if err := json.Unmarshal(data, &h); err != nil {
		s.logger.Warn("scan history is corrupt, starting a new one", "error", err)
		return model.ScanHistory{}
	}
	if h == nil {
		h = model.ScanHistory{}
	}
	return h
}

// AppendHistory appends entry to the history and writes it back.
func (s *Store) AppendHistory(entry model.ScanHistoryEntry) (model.ScanHistory, error) {
	h := append(s.LoadHistory(), entry)
	if err := s.writeJSON(HistoryFile, h); err != nil {
		return h, fmt.Errorf("%w: %w", ErrWriteHistory, err)
	}
	return h, nil
}

// SaveRemediation overwrites the remediation plan artifact.
func (s *Store) SaveRemediation(plan *model.RemediationPlan) error {
	if err := s.writeJSON(RemediationFile, plan); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteRemediation, err)
	}
	return nil
}

// writeJSON marshals v with two-space indentation and writes it atomically.
func (s *Store) writeJSON(name string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return writeFileAtomic(s.Path(name), append(data, '\n'))
}

// writeFileAtomic writes data to a temp file in the target directory,
// syncs it and renames it over path.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("%w: %w", ErrCreateReportDir, err)
	}

	f, err := os.CreateTemp(dir, filepath.Base(path)+".tmp.*")
	if err != nil {
		return err
	}
	tmp := f.Name()

	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return err
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	if runtime.GOOS == "windows" {
		_ = os.Remove(path)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}
