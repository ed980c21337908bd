package config

import "errors"

// Configuration validation errors returned by Config.Validate.
var (
	// ErrEmptyRoot is returned when no project root is set.
	ErrEmptyRoot = errors.New("no project root specified")

	// ErrEmptyManagedDir is returned when the managed directory name is empty.
	ErrEmptyManagedDir = errors.New("managed directory must not be empty")

	// ErrConflictingReportFormats is returned when both --json and --markdown
	// are specified.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --json and --markdown cannot be used together")

	// ErrInvalidAnalyzeFirstLimit is returned when the analyze-first limit
	// is not positive.
	ErrInvalidAnalyzeFirstLimit = errors.New("invalid analyze-first limit: must be positive")

	// ErrInvalidMaxContentSize is returned for a negative content size cap.
	ErrInvalidMaxContentSize = errors.New("invalid max content size: must be non-negative")

	// ErrInvalidPredicatePolicy is returned for an unknown onPredicateError value.
	ErrInvalidPredicatePolicy = errors.New("invalid onPredicateError: must be skip or report")

	// ErrInvalidPattern is returned when an ignore or keep pattern does not compile.
	ErrInvalidPattern = errors.New("invalid path pattern")
)
