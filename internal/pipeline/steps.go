package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/irsanai/repoprep/internal/anonymize"
	"github.com/irsanai/repoprep/internal/config"
	"github.com/irsanai/repoprep/internal/feedback"
	"github.com/irsanai/repoprep/internal/model"
	"github.com/irsanai/repoprep/internal/remediate"
	"github.com/irsanai/repoprep/internal/report"
	"github.com/irsanai/repoprep/internal/rules"
	"github.com/irsanai/repoprep/internal/walker"
)

// SetupStep creates the report directory before anything is scanned, so
// that every run, the first included, walks the same tree.
type SetupStep struct {
	store  *report.Store
	logger *slog.Logger
}

// NewSetupStep creates a SetupStep.
func NewSetupStep(store *report.Store, logger *slog.Logger) *SetupStep {
	return &SetupStep{store: store, logger: orDefault(logger)}
}

// Name returns the step name.
func (s *SetupStep) Name() string {
	return "setup"
}

// Do executes the setup step. A missing root is reported as such rather
// than created.
func (s *SetupStep) Do(_ context.Context, scan *Scan) error {
	info, err := os.Stat(scan.Root)
	if err != nil {
		return fmt.Errorf("%w: %v", walker.ErrRootNotFound, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s", walker.ErrRootNotDirectory, scan.Root)
	}

	if err := s.store.Ensure(); err != nil {
		return err
	}
	s.logger.Debug("report directory ready", "path", s.store.Dir())
	return nil
}

// WalkStep traverses the project root.
type WalkStep struct {
	walker *walker.Walker
	logger *slog.Logger
}

// NewWalkStep creates a WalkStep.
func NewWalkStep(w *walker.Walker, logger *slog.Logger) *WalkStep {
	return &WalkStep{walker: w, logger: orDefault(logger)}
}

// Name returns the step name.
func (s *WalkStep) Name() string {
	return "walk"
}

// Do executes the walk step.
func (s *WalkStep) Do(ctx context.Context, scan *Scan) error {
	s.logger.Info("scanning project", "root", scan.Root)

	res, err := s.walker.Walk(ctx, scan.Root)
	if err != nil {
		return err
	}
	scan.Walk = res

	s.logger.Info("traversal finished",
		"files", len(res.Files),
		"directories", len(res.Directories),
		"ignored_files", len(res.IgnoredFiles),
		"ignored_directories", len(res.IgnoredDirectories),
	)
	return nil
}

// EvaluateStep runs the rule set over the walk result.
type EvaluateStep struct {
	engine *rules.Engine
	rules  []rules.Rule
	loader rules.ContentLoader
	logger *slog.Logger
}

// NewEvaluateStep creates an EvaluateStep. A nil loader reads files from disk.
func NewEvaluateStep(engine *rules.Engine, ruleSet []rules.Rule, loader rules.ContentLoader, logger *slog.Logger) *EvaluateStep {
	return &EvaluateStep{engine: engine, rules: ruleSet, loader: loader, logger: orDefault(logger)}
}

// Name returns the step name.
func (s *EvaluateStep) Name() string {
	return "evaluate"
}

// Do executes the evaluate step.
func (s *EvaluateStep) Do(ctx context.Context, scan *Scan) error {
	if scan.Walk == nil {
		return fmt.Errorf("%w: %s needs walk", ErrStepOrder, s.Name())
	}

	violations, err := s.engine.Evaluate(ctx, s.rules, rules.Target{
		Root:   scan.Root,
		Files:  scan.Walk.Files,
		Dirs:   scan.Walk.Directories,
		Loader: s.loader,
	})
	if err != nil {
		return err
	}
	scan.Violations = violations
	scan.Categories = rules.Categories(s.rules)

	for _, v := range violations {
		s.logger.Debug("rule violated", "rule", v.RuleID, "path", v.Path, "severity", v.Severity.String())
	}
	s.logger.Info("rules evaluated", "rules", len(s.rules), "violations", len(violations))
	return nil
}

// FeedbackStep loads the optional feedback artifact.
type FeedbackStep struct {
	managedDir string
	logger     *slog.Logger
}

// NewFeedbackStep creates a FeedbackStep reading below managedDir.
func NewFeedbackStep(managedDir string, logger *slog.Logger) *FeedbackStep {
	return &FeedbackStep{managedDir: managedDir, logger: orDefault(logger)}
}

// Name returns the step name.
func (s *FeedbackStep) Name() string {
	return "feedback"
}

// Do executes the feedback step. It never fails.
func (s *FeedbackStep) Do(_ context.Context, scan *Scan) error {
	scan.Feedback = feedback.Load(feedback.Path(scan.Root, s.managedDir), s.logger)
	if !scan.Feedback.IsEmpty() {
		s.logger.Info("using reviewer feedback",
			"critical_files", len(scan.Feedback.Recommendations.CriticalFiles),
			"timestamp", scan.Feedback.Metadata.Timestamp,
		)
	}
	return nil
}

// AggregateStep builds the report.
type AggregateStep struct {
	aggregator *report.Aggregator
}

// NewAggregateStep creates an AggregateStep.
func NewAggregateStep(a *report.Aggregator) *AggregateStep {
	return &AggregateStep{aggregator: a}
}

// Name returns the step name.
func (s *AggregateStep) Name() string {
	return "aggregate"
}

// Do executes the aggregate step.
func (s *AggregateStep) Do(_ context.Context, scan *Scan) error {
	if scan.Walk == nil {
		return fmt.Errorf("%w: %s needs walk", ErrStepOrder, s.Name())
	}
	scan.Report = s.aggregator.Aggregate(report.Input{
		Root:       scan.Root,
		Walk:       scan.Walk,
		Violations: scan.Violations,
		Categories: scan.Categories,
		Feedback:   scan.Feedback,
	})
	return nil
}

// PersistStep writes the current report and appends to the history.
// Failing to write the current report is fatal; a failed history write is
// logged and the run continues.
type PersistStep struct {
	store  *report.Store
	logger *slog.Logger
}

// NewPersistStep creates a PersistStep.
func NewPersistStep(store *report.Store, logger *slog.Logger) *PersistStep {
	return &PersistStep{store: store, logger: orDefault(logger)}
}

// Name returns the step name.
func (s *PersistStep) Name() string {
	return "persist"
}

// Do executes the persist step.
func (s *PersistStep) Do(_ context.Context, scan *Scan) error {
	if scan.Report == nil {
		return fmt.Errorf("%w: %s needs aggregate", ErrStepOrder, s.Name())
	}

	if err := s.store.SaveCurrent(scan.Report); err != nil {
		return err
	}
	s.logger.Info("report saved", "path", s.store.Path(report.CurrentScanFile))

	history, err := s.store.AppendHistory(report.HistoryEntry(scan.Report))
	if err != nil {
		s.logger.Error("failed to update scan history", "error", err)
	}
	scan.History = history
	return nil
}

// RemediationStep builds and stores the remediation plan.
// The plan kept on the Scan holds disk paths; the stored artifact is masked.
type RemediationStep struct {
	cfg    *config.Config
	store  *report.Store
	masker *anonymize.Masker
	logger *slog.Logger
}

// NewRemediationStep creates a RemediationStep. A nil masker uses
// anonymize.DefaultMasker.
func NewRemediationStep(cfg *config.Config, store *report.Store, masker *anonymize.Masker, logger *slog.Logger) *RemediationStep {
	if masker == nil {
		masker = anonymize.DefaultMasker()
	}
	return &RemediationStep{cfg: cfg, store: store, masker: masker, logger: orDefault(logger)}
}

// Name returns the step name.
func (s *RemediationStep) Name() string {
	return "remediation"
}

// Do executes the remediation step.
func (s *RemediationStep) Do(_ context.Context, scan *Scan) error {
	plan := remediate.BuildPlan(scan.Root, scan.Walk, s.cfg)
	plan.RuleViolationCount = len(scan.Violations)
	scan.Plan = plan

	if err := s.store.SaveRemediation(maskPlan(plan, s.masker)); err != nil {
		return err
	}
	s.logger.Info("remediation plan saved",
		"path", s.store.Path(report.RemediationFile),
		"gitignore_entries", len(plan.GitignoreEntries),
		"delete_candidates", len(plan.DeleteCandidates),
		"managed_dir_prune", len(plan.ManagedDirPrune),
	)
	return nil
}

// maskPlan returns a copy of plan with every path masked.
func maskPlan(plan *model.RemediationPlan, m *anonymize.Masker) *model.RemediationPlan {
	mask := func(paths []string) []string {
		out := make([]string, 0, len(paths))
		for _, p := range paths {
			out = append(out, m.Mask(p))
		}
		return out
	}
	masked := *plan
	masked.DeleteCandidates = mask(plan.DeleteCandidates)
	masked.ManagedDirPrune = mask(plan.ManagedDirPrune)
	return &masked
}

func orDefault(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.Default()
	}
	return logger
}
