package model

// RuleViolation is produced when a rule's predicate rejects a selected path.
// Ignored paths never produce violations because they never reach the engine.
type RuleViolation struct {
	// RuleID is the stable identifier of the rule, e.g. "gitignore.required-entries".
	RuleID string `json:"rule_id"`

	// RuleName is the human-readable rule name.
	RuleName string `json:"rule_name"`

	// Category groups the violation in reports.
	Category Category `json:"category"`

	// Path is the masked relative path the rule was evaluated on.
	// The project root is represented by the empty string.
	Path string `json:"path"`

	// Severity is copied from the rule.
	Severity Severity `json:"severity"`

	// Recommendation tells the operator how to resolve the violation.
	Recommendation string `json:"recommendation"`

	// Detail explains this particular failure, e.g. the missing entries.
	Detail string `json:"detail,omitempty"`
}

// CategoryViolations is one category section of a report.
type CategoryViolations struct {
	// Category is the section key.
	Category Category `json:"category"`

	// Violations are listed in evaluation order. Never nil in a
	// finished report so that empty categories serialize as [].
	Violations []RuleViolation `json:"violations"`
}

// CountBySeverity returns the number of violations with the given severity.
func (c CategoryViolations) CountBySeverity(severity Severity) int {
	count := 0
	for _, v := range c.Violations {
		if v.Severity == severity {
			count++
		}
	}
	return count
}
