package feedback

import (
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/irsanai/repoprep/internal/model"
)

// DefaultDir is the feedback directory below the managed directory.
const DefaultDir = "Feedback"

// DefaultFileName is the name of the feedback artifact.
const DefaultFileName = "online_feedback.json"

// Path returns the feedback artifact path for a project root and managed
// directory.
func Path(root, managedDir string) string {
	return filepath.Join(root, filepath.FromSlash(managedDir), DefaultDir, DefaultFileName)
}

// Load reads the feedback artifact at path. It never fails: a missing file
// yields an empty record silently, while unreadable or malformed files
// yield an empty record and a warning.
func Load(path string, logger *slog.Logger) model.FeedbackRecord {
	if logger == nil {
		logger = slog.Default()
	}

	data, err := os.ReadFile(path) //nolint:gosec // Path is derived from the project root
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			logger.Warn("failed to read feedback file", "path", path, "error", err)
		}
		return model.FeedbackRecord{}
	}

	var record model.FeedbackRecord
	if err := json.Unmarshal(data, &record); err != nil {
		logger.Warn("ignoring malformed feedback file", "path", path, "error", err)
		return model.FeedbackRecord{}
	}

	logger.Debug("loaded feedback",
		"path", path,
		"critical_files", len(record.Recommendations.CriticalFiles))
	return record
}
