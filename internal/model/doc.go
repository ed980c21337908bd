// Package model defines the data structures shared by the scanner packages.
//
// This package contains the following main types:
//   - FileRecord, DirectoryRecord, DirectoryTree: traversal output
//   - RuleViolation, CategoryViolations: rule engine output
//   - Report: the current scan artifact
//   - ScanHistoryEntry, ScanHistory: the append-only run history
//   - FeedbackRecord: externally supplied review feedback
//   - RemediationPlan: fixes computed by the prepare command
//
// The models live in their own package because the walker, rules, report
// and remediate packages all exchange them.
//
// All types serialize to JSON with snake_case keys.
package model
