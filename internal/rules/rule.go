package rules

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/irsanai/repoprep/internal/model"
)

// Input is what a predicate sees for one selected path.
type Input struct {
	// Path is the unmasked slash-separated path relative to the project root.
	// It is empty for root rules.
	Path string

	// AbsPath is the absolute path on disk.
	AbsPath string

	// IsDir is true for directories and for the root.
	IsDir bool

	// Content is the decoded text. It is only populated for rules that set
	// NeedsContent, and is empty when loading failed.
	Content

	// Root is the absolute project root.
	Root string
}

// Predicate reports whether the input complies with a rule.
// A returned error is handled according to the engine's Policy.
type Predicate func(in Input) (bool, error)

// Rule is a declarative compliance check. The predicate is the only
// rule-specific logic; the engine treats everything else as metadata.
type Rule struct {
	// ID is a stable dotted identifier such as "gitignore.required-entries".
	ID string

	// Name is a short human-readable title.
	Name string

	// Description explains what the rule expects.
	Description string

	// Category groups violations in the report.
	Category model.Category

	// Selector picks the paths the rule applies to. A selector that
	// matches the empty string, or a nil selector, makes a root rule
	// evaluated once against the project root.
	Selector *regexp.Regexp

	// Predicate returns true when the path complies.
	Predicate Predicate

	// Severity of a violation.
	Severity model.Severity

	// Recommendation is the remediation hint copied into violations.
	Recommendation string

	// NeedsContent makes the engine load file content before calling
	// the predicate.
	NeedsContent bool

	// Detail, when set, is called for non-compliant inputs to describe
	// what exactly was wrong.
	Detail func(in Input) string
}

// IsRoot reports whether the rule is evaluated once against the root.
func (r Rule) IsRoot() bool {
	return r.Selector == nil || r.Selector.MatchString("")
}

// Selects reports whether the rule applies to a relative path.
func (r Rule) Selects(relativePath string) bool {
	if r.IsRoot() {
		return false
	}
	return r.Selector.MatchString(relativePath)
}

// Policy decides what happens when a predicate fails with an error or panics.
type Policy string

const (
	// PolicySkip logs the error and emits no violation (fail-open).
	PolicySkip Policy = "skip"

	// PolicyReport emits a violation whose detail names the error
	// (fail-closed).
	PolicyReport Policy = "report"
)

// ParsePolicy converts a configuration value to a Policy.
func ParsePolicy(s string) (Policy, error) {
	switch Policy(strings.ToLower(strings.TrimSpace(s))) {
	case PolicySkip, "":
		return PolicySkip, nil
	case PolicyReport:
		return PolicyReport, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownPolicy, s)
	}
}

// Categories returns the distinct categories of rules in rank order.
func Categories(rules []Rule) []model.Category {
	seen := make(map[model.Category]struct{}, len(rules))
	cats := make([]model.Category, 0, len(rules))
	for _, r := range rules {
		if _, ok := seen[r.Category]; ok {
			continue
		}
		seen[r.Category] = struct{}{}
		cats = append(cats, r.Category)
	}
	model.SortCategories(cats)
	return cats
}
