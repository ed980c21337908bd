// Package feedback reads the reviewer feedback artifact.
//
// Feedback only influences which files the report asks a reviewer to
// analyze first. It never changes traversal, filtering or rule results.
package feedback
