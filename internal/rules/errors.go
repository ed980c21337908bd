package rules

import "errors"

var (
	// ErrUnknownPolicy is returned by ParsePolicy for unsupported values.
	ErrUnknownPolicy = errors.New("unknown predicate error policy")

	// ErrPredicatePanic wraps a panic recovered from a predicate.
	ErrPredicatePanic = errors.New("rule predicate panicked")

	// ErrNotDirectory is returned by predicates that expect a directory.
	ErrNotDirectory = errors.New("path is not a directory")
)
