package report

import (
	"runtime"
	"time"

	"github.com/irsanai/repoprep/internal/anonymize"
	"github.com/irsanai/repoprep/internal/config"
	"github.com/irsanai/repoprep/internal/model"
	"github.com/irsanai/repoprep/internal/walker"
)

// ReviewQuestions are the fixed prompts included in every report.
var ReviewQuestions = []string{
	"Which of the prioritized files should be analyzed first?",
	"Are any critical files missing or unexpected?",
	"Should specific file contents be analyzed, for example for protocol conformance?",
}

// Input is everything Aggregate combines into a report.
type Input struct {
	// Root is the absolute project root.
	Root string

	// Walk is the traversal result.
	Walk *walker.Result

	// Violations are the rule engine results in evaluation order.
	Violations []model.RuleViolation

	// Categories are the categories of the active rule set. Each appears
	// in the report even without violations.
	Categories []model.Category

	// Feedback is the loaded feedback record, possibly empty.
	Feedback model.FeedbackRecord
}

// Aggregator builds reports and history entries.
type Aggregator struct {
	cfg     *config.Config
	clock   func() time.Time
	version string
	masker  *anonymize.Masker
	salt    string
}

// AggregatorOption configures an Aggregator.
type AggregatorOption func(*Aggregator)

// WithClock overrides the time source.
func WithClock(clock func() time.Time) AggregatorOption {
	return func(a *Aggregator) {
		a.clock = clock
	}
}

// WithVersion sets the scanner version recorded in reports.
func WithVersion(version string) AggregatorOption {
	return func(a *Aggregator) {
		a.version = version
	}
}

// WithMasker sets the masker applied to the project root.
func WithMasker(m *anonymize.Masker) AggregatorOption {
	return func(a *Aggregator) {
		a.masker = m
	}
}

// NewAggregator creates an Aggregator for the given configuration.
func NewAggregator(cfg *config.Config, opts ...AggregatorOption) *Aggregator {
	a := &Aggregator{
		cfg:     cfg,
		clock:   time.Now,
		version: "dev",
		masker:  anonymize.DefaultMasker(),
		salt:    anonymize.DefaultSalt,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Aggregate combines walk output, violations and feedback into a report.
func (a *Aggregator) Aggregate(in Input) *model.Report {
	walk := in.Walk
	if walk == nil {
		walk = &walker.Result{}
	}

	grouped := GroupViolations(a.maskViolations(in.Violations), in.Categories)
	summary := make(map[model.Category]bool, len(grouped))
	for _, g := range grouped {
		summary[g.Category] = len(g.Violations) == 0
	}

	report := &model.Report{
		Metadata: model.ScanMetadata{
			Timestamp:          a.clock(),
			ScannerVersion:     a.version,
			ProjectRootMasked:  a.masker.Mask(in.Root),
			ProjectID:          anonymize.Identifier(in.Root, a.salt),
			Platform:           runtime.GOOS + "/" + runtime.GOARCH,
			TotalFiles:         len(walk.Files),
			TotalDirectories:   len(walk.Directories),
			IgnoredFiles:       len(walk.IgnoredFiles),
			IgnoredDirectories: len(walk.IgnoredDirectories),
			OnPredicateError:   a.cfg.OnPredicateError,
		},
		FileTypes:          nonNilMap(walk.FileTypes),
		DirectoryTree:      walk.Tree,
		Files:              nonNil(walk.Files),
		Directories:        nonNil(walk.Directories),
		Violations:         grouped,
		ValidationSummary:  summary,
		CriticalFileStatus: a.criticalFileStatus(walk.Files),
		AnalyzeFirst:       AnalyzeFirst(walk.Files, in.Feedback, a.cfg.PriorityFiles, a.cfg.AnalyzeFirstLimit),
		ReviewQuestions:    append([]string(nil), ReviewQuestions...),
		FeedbackContext:    feedbackContext(in.Feedback),
	}
	if report.DirectoryTree == nil {
		report.DirectoryTree = model.DirectoryTree{}
	}
	return report
}

// criticalFileStatus reports which configured critical files were kept.
func (a *Aggregator) criticalFileStatus(files []model.FileRecord) []model.CriticalFileStatus {
	present := make(map[string]struct{}, len(files))
	for _, f := range files {
		present[f.DiskPath()] = struct{}{}
	}

	out := make([]model.CriticalFileStatus, 0, len(a.cfg.CriticalFiles))
	for _, c := range a.cfg.CriticalFiles {
		_, ok := present[c.Path]
		out = append(out, model.CriticalFileStatus{Path: c.Path, Description: c.Description, Exists: ok})
	}
	return out
}

// maskViolations masks the home directory out of violation paths and
// details. Predicate errors can carry absolute paths in Detail.
func (a *Aggregator) maskViolations(violations []model.RuleViolation) []model.RuleViolation {
	out := make([]model.RuleViolation, len(violations))
	for i, v := range violations {
		v.Path = a.masker.Mask(v.Path)
		v.Detail = a.masker.Mask(v.Detail)
		out[i] = v
	}
	return out
}

// GroupViolations groups violations by category in rank order. Every
// category in categories is present, as is every category that occurs in
// violations. Within a category, evaluation order is kept.
func GroupViolations(violations []model.RuleViolation, categories []model.Category) []model.CategoryViolations {
	byCat := make(map[model.Category][]model.RuleViolation)
	cats := make([]model.Category, 0, len(categories))
	add := func(c model.Category) {
		if _, ok := byCat[c]; !ok {
			byCat[c] = []model.RuleViolation{}
			cats = append(cats, c)
		}
	}

	for _, c := range categories {
		add(c)
	}
	for _, v := range violations {
		add(v.Category)
		byCat[v.Category] = append(byCat[v.Category], v)
	}
	model.SortCategories(cats)

	out := make([]model.CategoryViolations, 0, len(cats))
	for _, c := range cats {
		out = append(out, model.CategoryViolations{Category: c, Violations: byCat[c]})
	}
	return out
}

// HistoryEntry derives the compact history record of a report.
func HistoryEntry(r *model.Report) model.ScanHistoryEntry {
	summary := make(map[model.Category]int, len(r.Violations))
	for _, c := range r.Violations {
		summary[c.Category] = len(c.Violations)
	}
	return model.ScanHistoryEntry{
		Timestamp:         r.Metadata.Timestamp,
		FileCount:         r.Metadata.TotalFiles,
		AnalyzeFirstCount: len(r.AnalyzeFirst),
		ViolationSummary:  summary,
	}
}

func feedbackContext(f model.FeedbackRecord) model.FeedbackContext {
	ts := f.Metadata.Timestamp
	if ts == "" {
		ts = model.FeedbackTimestampUnknown
	}
	return model.FeedbackContext{
		PreviousFeedbackExists:  !f.IsEmpty(),
		FeedbackTimestamp:       ts,
		PreviousRecommendations: f.Recommendations,
	}
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

func nonNilMap(m map[string]int) map[string]int {
	if m == nil {
		return map[string]int{}
	}
	return m
}
