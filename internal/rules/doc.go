// Package rules provides the declarative compliance rules and the engine
// that evaluates them.
//
// A Rule is plain data: a path selector, a predicate, a severity and a
// remediation hint. The Engine walks the kept entries of a scan, calls each
// selected predicate once per path and turns false results into
// model.RuleViolation values. Predicate errors follow the configured Policy.
//
// BuiltinRules returns the checks every scan runs (managed directory layout,
// .gitignore completeness, exclusion compliance). DomainRules adds the
// project-specific checks built in the same shape.
package rules
