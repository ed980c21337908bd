// Package pipeline runs a scan as an ordered list of steps.
//
// Each Step receives the shared Scan state and fills in its part: the walk
// result, the rule violations, the feedback record, the report and the
// persisted history. Default assembles the standard sequence
//
//	walk -> evaluate -> feedback -> aggregate -> persist [-> remediation]
//
// Execution is sequential. The context is checked before every step.
package pipeline
