package model

import "time"

// Report is the result of one compliance scan. It is written as the
// "current" artifact and summarized into the scan history.
type Report struct {
	// === Scan Metadata ===

	// Metadata describes the run itself.
	Metadata ScanMetadata `json:"scan_metadata"`

	// === Walk Results ===

	// FileTypes counts kept files by lower-cased extension.
	FileTypes map[string]int `json:"file_types"`

	// DirectoryTree is the nested hierarchy of kept directories.
	DirectoryTree DirectoryTree `json:"directory_tree"`

	// Files lists every kept file in traversal order.
	Files []FileRecord `json:"files"`

	// Directories lists every kept directory in traversal order.
	Directories []DirectoryRecord `json:"directories"`

	// === Compliance Results ===

	// Violations are grouped by category in report order. Every category
	// of the active rule set is present even when it has no violations.
	Violations []CategoryViolations `json:"violations"`

	// ValidationSummary maps each category to whether it passed.
	ValidationSummary map[Category]bool `json:"validation_summary"`

	// CriticalFileStatus reports presence of each configured critical file.
	CriticalFileStatus []CriticalFileStatus `json:"critical_file_status"`

	// === Review Guidance ===

	// AnalyzeFirst lists at most a handful of files a reviewer should read first.
	AnalyzeFirst []AnalyzeFirstEntry `json:"analyze_first"`

	// ReviewQuestions are fixed prompts for the external reviewer.
	ReviewQuestions []string `json:"review_questions"`

	// FeedbackContext summarizes the feedback artifact consulted by this run.
	FeedbackContext FeedbackContext `json:"feedback_context"`
}

// ScanMetadata describes a single scan run.
type ScanMetadata struct {
	// Timestamp is when the report was aggregated.
	Timestamp time.Time `json:"timestamp"`

	// ScannerVersion is the version of the tool that produced the report.
	ScannerVersion string `json:"scanner_version"`

	// ProjectRootMasked is the absolute project root with the home prefix masked.
	ProjectRootMasked string `json:"project_root_masked"`

	// ProjectID is a salted identifier of the unmasked project root.
	ProjectID string `json:"project_id"`

	// Platform is GOOS/GOARCH of the scanning host.
	Platform string `json:"platform"`

	// TotalFiles is the number of kept files.
	TotalFiles int `json:"total_files"`

	// TotalDirectories is the number of kept directories.
	TotalDirectories int `json:"total_directories"`

	// IgnoredFiles is the number of files rejected by the ignore patterns.
	IgnoredFiles int `json:"ignored_files"`

	// IgnoredDirectories is the number of directories pruned by the ignore patterns.
	IgnoredDirectories int `json:"ignored_directories"`

	// OnPredicateError is the policy applied when a rule predicate fails.
	OnPredicateError string `json:"on_predicate_error"`
}

// CriticalFileStatus reports whether a configured critical file exists.
type CriticalFileStatus struct {
	Path        string `json:"path"`
	Description string `json:"description"`
	Exists      bool   `json:"exists"`
}

// AnalyzeFirstEntry is a prioritized file in the analysis request.
type AnalyzeFirstEntry struct {
	Path      string  `json:"path"`
	Hash      string  `json:"hash"`
	Extension string  `json:"extension"`
	SizeKB    float64 `json:"size_kb"`
}

// FeedbackContext records what the feedback artifact contributed.
type FeedbackContext struct {
	// PreviousFeedbackExists is true when a non-empty feedback record was loaded.
	PreviousFeedbackExists bool `json:"previous_feedback_exists"`

	// FeedbackTimestamp is copied from the feedback metadata, or "N/A".
	FeedbackTimestamp string `json:"feedback_timestamp"`

	// PreviousRecommendations echoes the feedback recommendations.
	PreviousRecommendations FeedbackRecommendations `json:"previous_recommendations"`
}

// FeedbackTimestampUnknown is used when the feedback carries no timestamp.
const FeedbackTimestampUnknown = "N/A"

// TotalViolations returns the number of violations across all categories.
func (r *Report) TotalViolations() int {
	total := 0
	for _, c := range r.Violations {
		total += len(c.Violations)
	}
	return total
}

// CountBySeverity returns the number of violations with the given severity.
func (r *Report) CountBySeverity(severity Severity) int {
	total := 0
	for _, c := range r.Violations {
		total += c.CountBySeverity(severity)
	}
	return total
}

// HasViolations reports whether any rule failed.
func (r *Report) HasViolations() bool {
	return r.TotalViolations() > 0
}

// ViolationsFor returns the violations of one category, or nil.
func (r *Report) ViolationsFor(category Category) []RuleViolation {
	for _, c := range r.Violations {
		if c.Category == category {
			return c.Violations
		}
	}
	return nil
}
