package remediate

import (
	"errors"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/irsanai/repoprep/internal/config"
	"github.com/irsanai/repoprep/internal/model"
	"github.com/irsanai/repoprep/internal/rules"
	"github.com/irsanai/repoprep/internal/walker"
)

// junkSuffixes mark editor backups and temporary files.
var junkSuffixes = []string{".bak", ".backup", ".old", ".swp", ".swo", "~", ".tmp"}

// junkNames are operating system metadata files.
var junkNames = []string{".DS_Store", "Thumbs.db", "Desktop.ini"}

// IsJunk reports whether a file name looks like a deletable backup,
// temporary or OS metadata file.
func IsJunk(name string) bool {
	if slices.Contains(junkNames, name) {
		return true
	}
	lower := strings.ToLower(name)
	for _, s := range junkSuffixes {
		if strings.HasSuffix(lower, s) && len(lower) > len(s) {
			return true
		}
	}
	return false
}

// BuildPlan computes the remediation plan for a scanned root.
// RuleViolationCount is left for the caller to fill in.
func BuildPlan(root string, walk *walker.Result, cfg *config.Config) *model.RemediationPlan {
	plan := &model.RemediationPlan{
		GitignoreEntries: missingEntries(root, cfg.RequiredGitignoreEntries),
		DeleteCandidates: []string{},
		ManagedDirPrune:  managedDirExtras(root, cfg.ManagedDir),
	}

	if walk != nil {
		for _, p := range walk.IgnoredFiles {
			if IsJunk(path.Base(p)) {
				plan.DeleteCandidates = append(plan.DeleteCandidates, p)
			}
		}
	}
	return plan
}

// missingEntries reads .gitignore and returns the required entries it lacks.
// A missing .gitignore lacks all of them.
func missingEntries(root string, required []string) []string {
	data, err := os.ReadFile(filepath.Join(root, ".gitignore")) //nolint:gosec // Path is derived from the project root
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Default().Warn("failed to read .gitignore", "error", err)
	}
	missing := rules.MissingGitignoreEntries(string(data), required)
	if missing == nil {
		return []string{}
	}
	return missing
}

// managedDirExtras lists managed directory entries outside the allow-list.
// The tool's own artifact directories are never pruned.
func managedDirExtras(root, managedDir string) []string {
	entries, err := os.ReadDir(filepath.Join(root, filepath.FromSlash(managedDir)))
	if err != nil {
		return []string{}
	}

	out := []string{}
	for _, e := range entries {
		name := e.Name()
		if slices.Contains(rules.DefaultManagedDirAllowList, name) || slices.Contains(rules.DefaultArtifactDirs, name) {
			continue
		}
		out = append(out, path.Join(managedDir, name))
	}
	return out
}
