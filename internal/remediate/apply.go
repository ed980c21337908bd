package remediate

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/irsanai/repoprep/internal/model"
)

// Result counts what Apply did, or would have done in dry-run mode.
type Result struct {
	DryRun          bool
	Deleted         []string
	Pruned          []string
	GitignoreAdded  []string
	GitignoreCreate bool
}

// Changes returns the number of actions.
func (r *Result) Changes() int {
	return len(r.Deleted) + len(r.Pruned) + len(r.GitignoreAdded)
}

type applier struct {
	dryRun bool
	logger *slog.Logger
}

// Option configures Apply.
type Option func(*applier)

// WithDryRun only logs the planned actions.
func WithDryRun(dryRun bool) Option {
	return func(a *applier) {
		a.dryRun = dryRun
	}
}

// WithLogger sets the logger that records every action.
func WithLogger(logger *slog.Logger) Option {
	return func(a *applier) {
		a.logger = logger
	}
}

// Apply executes plan against root. Paths that resolve outside root are
// refused. The first failure stops the run; actions already taken are
// reported in the returned Result.
func Apply(root string, plan *model.RemediationPlan, opts ...Option) (*Result, error) {
	a := &applier{logger: slog.Default()}
	for _, opt := range opts {
		opt(a)
	}

	res := &Result{DryRun: a.dryRun}
	if plan == nil {
		return res, nil
	}

	for _, rel := range plan.DeleteCandidates {
		abs, err := resolve(root, rel)
		if err != nil {
			return res, err
		}
		a.logger.Info("deleting junk file", "path", rel, "dry_run", a.dryRun)
		if !a.dryRun {
			if err := os.Remove(abs); err != nil && !errors.Is(err, os.ErrNotExist) {
				return res, fmt.Errorf("%w: %s: %w", ErrRemove, rel, err)
			}
		}
		res.Deleted = append(res.Deleted, rel)
	}

	if len(plan.GitignoreEntries) > 0 {
		created, err := a.appendGitignore(root, plan.GitignoreEntries)
		if err != nil {
			return res, err
		}
		res.GitignoreCreate = created
		res.GitignoreAdded = append(res.GitignoreAdded, plan.GitignoreEntries...)
	}

	for _, rel := range plan.ManagedDirPrune {
		abs, err := resolve(root, rel)
		if err != nil {
			return res, err
		}
		a.logger.Info("removing from managed directory", "path", rel, "dry_run", a.dryRun)
		if !a.dryRun {
			if err := os.RemoveAll(abs); err != nil {
				return res, fmt.Errorf("%w: %s: %w", ErrRemove, rel, err)
			}
		}
		res.Pruned = append(res.Pruned, rel)
	}

	return res, nil
}

// appendGitignore appends entries to root/.gitignore, creating it if needed.
func (a *applier) appendGitignore(root string, entries []string) (bool, error) {
	p := filepath.Join(root, ".gitignore")

	existing, err := os.ReadFile(p) //nolint:gosec // Path is derived from the project root
	created := errors.Is(err, os.ErrNotExist)
	if err != nil && !created {
		return false, fmt.Errorf("%w: %w", ErrUpdateGitignore, err)
	}

	a.logger.Info("adding .gitignore entries", "entries", strings.Join(entries, " "), "create", created, "dry_run", a.dryRun)
	if a.dryRun {
		return created, nil
	}

	var sb strings.Builder
	if len(existing) > 0 && existing[len(existing)-1] != '\n' {
		sb.WriteString("\n")
	}
	if len(existing) > 0 {
		sb.WriteString("\n")
	}
	sb.WriteString("# Added by repoprep\n")
	for _, e := range entries {
		sb.WriteString(e)
		sb.WriteString("\n")
	}

	f, err := os.OpenFile(p, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644) //nolint:gosec // .gitignore is world-readable
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrUpdateGitignore, err)
	}
	if _, err := f.WriteString(sb.String()); err != nil {
		_ = f.Close()
		return false, fmt.Errorf("%w: %w", ErrUpdateGitignore, err)
	}
	if err := f.Close(); err != nil {
		return false, fmt.Errorf("%w: %w", ErrUpdateGitignore, err)
	}
	return created, nil
}

// resolve joins a slash-separated relative path to root and refuses
// anything that escapes it.
func resolve(root, rel string) (string, error) {
	abs := filepath.Join(root, filepath.FromSlash(rel))
	back, err := filepath.Rel(root, abs)
	if err != nil || back == "." || back == ".." || strings.HasPrefix(back, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s", ErrOutsideRoot, rel)
	}
	return abs, nil
}
