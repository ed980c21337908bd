// Package anonymize masks user-identifying path segments and derives
// salted identifiers for paths.
//
// Reports and logs produced by the scanner may be shared with external
// reviewers, so every absolute path passes through a Masker before it is
// written. Identifiers are short digests meant for correlation between
// runs; they are not a security boundary.
package anonymize
