package pipeline

import (
	"log/slog"
	"path/filepath"
	"time"

	"github.com/irsanai/repoprep/internal/anonymize"
	"github.com/irsanai/repoprep/internal/config"
	"github.com/irsanai/repoprep/internal/report"
	"github.com/irsanai/repoprep/internal/rules"
	"github.com/irsanai/repoprep/internal/walker"
)

// Deps are the collaborators Default wires into the steps.
type Deps struct {
	// Logger receives every step's log records. Nil means slog.Default.
	Logger *slog.Logger

	// Version is recorded in the report.
	Version string

	// Progress is called once per kept file during the walk.
	Progress walker.ProgressFunc

	// Clock overrides the report timestamp source.
	Clock func() time.Time

	// Masker overrides the home directory masker.
	Masker *anonymize.Masker

	// Loader overrides how rule predicates read file content.
	Loader rules.ContentLoader
}

// Default assembles the standard scan pipeline for cfg:
// setup, walk, evaluate, feedback, aggregate, persist and, when cfg.Remediation
// is set, remediation.
func Default(cfg *config.Config, deps Deps) (*Pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	filter, err := cfg.Filter()
	if err != nil {
		return nil, err
	}
	policy, err := cfg.Policy()
	if err != nil {
		return nil, err
	}
	root, err := filepath.Abs(cfg.Root)
	if err != nil {
		return nil, err
	}

	logger := orDefault(deps.Logger)
	masker := deps.Masker
	if masker == nil {
		masker = anonymize.DefaultMasker()
	}
	loader := deps.Loader
	if loader == nil {
		loader = rules.NewFileLoader(cfg.MaxContentSize)
	}

	walkOpts := []walker.Option{walker.WithLogger(logger)}
	if deps.Progress != nil {
		walkOpts = append(walkOpts, walker.WithProgress(deps.Progress))
	}

	ruleSet := rules.DefaultRules(rules.Options{
		Filter:                   filter,
		Masker:                   masker,
		ManagedDir:               cfg.ManagedDir,
		RequiredGitignoreEntries: cfg.RequiredGitignoreEntries,
		CriticalFiles:            rules.CriticalFilePaths(cfg.CriticalFiles),
	})

	aggOpts := []report.AggregatorOption{report.WithMasker(masker)}
	if deps.Version != "" {
		aggOpts = append(aggOpts, report.WithVersion(deps.Version))
	}
	if deps.Clock != nil {
		aggOpts = append(aggOpts, report.WithClock(deps.Clock))
	}

	store := report.NewStore(
		filepath.Join(root, filepath.FromSlash(cfg.ManagedDir), config.DefaultReportsDir),
		report.WithStoreLogger(logger),
	)

	p := New(WithLogger(logger))
	p.AddSteps(
		NewSetupStep(store, logger),
		NewWalkStep(walker.New(filter, masker, walkOpts...), logger),
		NewEvaluateStep(rules.NewEngine(rules.WithPolicy(policy), rules.WithLogger(logger)), ruleSet, loader, logger),
		NewFeedbackStep(cfg.ManagedDir, logger),
		NewAggregateStep(report.NewAggregator(cfg, aggOpts...)),
		NewPersistStep(store, logger),
	)
	if cfg.Remediation {
		p.AddStep(NewRemediationStep(cfg, store, masker, logger))
	}
	return p, nil
}
