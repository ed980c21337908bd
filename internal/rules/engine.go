package rules

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/irsanai/repoprep/internal/model"
)

// Target is the set of kept entries a rule set is evaluated against.
type Target struct {
	// Root is the absolute project root.
	Root string

	// Files and Dirs are the kept entries from the walk.
	Files []model.FileRecord
	Dirs  []model.DirectoryRecord

	// Loader provides file content. Nil means a default FileLoader.
	Loader ContentLoader
}

// Engine evaluates rules against a Target.
type Engine struct {
	policy Policy
	logger *slog.Logger
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithPolicy sets the predicate error policy.
func WithPolicy(p Policy) EngineOption {
	return func(e *Engine) {
		e.policy = p
	}
}

// WithLogger sets the logger for predicate errors.
func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		e.logger = logger
	}
}

// NewEngine creates an Engine. The default policy is PolicySkip.
func NewEngine(opts ...EngineOption) *Engine {
	e := &Engine{
		policy: PolicySkip,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Policy returns the configured predicate error policy.
func (e *Engine) Policy() Policy {
	return e.policy
}

// Evaluate runs every rule in order. Root rules are called once with the
// project root; other rules are called for each selected kept directory,
// then each selected kept file. Each false result yields one violation.
// The only error returned is context cancellation.
func (e *Engine) Evaluate(ctx context.Context, rules []Rule, target Target) ([]model.RuleViolation, error) {
	loader := target.Loader
	if loader == nil {
		loader = NewFileLoader(DefaultMaxContentSize)
	}
	cache := make(map[string]Content)
	load := func(abs string) Content {
		if c, ok := cache[abs]; ok {
			return c
		}
		c := loader.Load(abs)
		cache[abs] = c
		return c
	}

	violations := make([]model.RuleViolation, 0)

	for _, rule := range rules {
		if err := ctx.Err(); err != nil {
			return violations, err
		}

		if rule.IsRoot() {
			in := Input{Path: "", AbsPath: target.Root, IsDir: true, Root: target.Root}
			if v, ok := e.check(rule, in, ""); ok {
				violations = append(violations, v)
			}
			continue
		}

		for _, d := range target.Dirs {
			rel := d.DiskPath()
			if !rule.Selects(rel) {
				continue
			}
			in := Input{
				Path:    rel,
				AbsPath: absPath(target.Root, rel),
				IsDir:   true,
				Root:    target.Root,
			}
			if v, ok := e.check(rule, in, d.RelativePath); ok {
				violations = append(violations, v)
			}
		}

		for _, f := range target.Files {
			rel := f.DiskPath()
			if !rule.Selects(rel) {
				continue
			}
			in := Input{
				Path:    rel,
				AbsPath: absPath(target.Root, rel),
				Root:    target.Root,
			}
			if rule.NeedsContent {
				in.Content = load(in.AbsPath)
			}
			if v, ok := e.check(rule, in, f.RelativePath); ok {
				violations = append(violations, v)
			}
		}
	}

	return violations, nil
}

// check evaluates one (rule, path) pair. It returns a violation and true
// when the rule is not satisfied, applying the policy to predicate errors.
// The violation is reported under display, the masked form of in.Path.
func (e *Engine) check(rule Rule, in Input, display string) (model.RuleViolation, bool) {
	ok, err := safeCall(rule.Predicate, in)
	if err != nil {
		e.logger.Warn("rule predicate failed",
			"rule", rule.ID,
			"path", display,
			"policy", string(e.policy),
			"error", err)
		if e.policy != PolicyReport {
			return model.RuleViolation{}, false
		}
		v := newViolation(rule, display)
		v.Detail = "predicate error: " + err.Error()
		return v, true
	}
	if ok {
		return model.RuleViolation{}, false
	}

	v := newViolation(rule, display)
	if rule.Detail != nil {
		v.Detail = rule.Detail(in)
	}
	e.logger.Debug("rule violated", "rule", rule.ID, "path", display)
	return v, true
}

// safeCall invokes the predicate, turning panics into errors.
func safeCall(p Predicate, in Input) (ok bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			ok = false
			err = fmt.Errorf("%w: %v", ErrPredicatePanic, r)
		}
	}()
	if p == nil {
		return true, nil
	}
	return p(in)
}

func newViolation(rule Rule, path string) model.RuleViolation {
	return model.RuleViolation{
		RuleID:         rule.ID,
		RuleName:       rule.Name,
		Category:       rule.Category,
		Path:           path,
		Severity:       rule.Severity,
		Recommendation: rule.Recommendation,
	}
}

func absPath(root, rel string) string {
	return filepath.Join(root, filepath.FromSlash(rel))
}
