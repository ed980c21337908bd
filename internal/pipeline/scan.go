package pipeline

import (
	"fmt"
	"path/filepath"

	"github.com/irsanai/repoprep/internal/model"
	"github.com/irsanai/repoprep/internal/walker"
)

// Scan is the state shared by the steps of one run.
type Scan struct {
	// Root is the absolute project root.
	Root string

	// Walk is set by the walk step.
	Walk *walker.Result

	// Violations and Categories are set by the evaluate step.
	Violations []model.RuleViolation
	Categories []model.Category

	// Feedback is set by the feedback step. It may be empty.
	Feedback model.FeedbackRecord

	// Report is set by the aggregate step.
	Report *model.Report

	// History is the scan history after the persist step appended to it.
	History model.ScanHistory

	// Plan is set by the remediation step.
	Plan *model.RemediationPlan

	// PerformedSteps lists the steps that ran, in order.
	PerformedSteps []string

	// Err is the last step error.
	Err error
}

// NewScan creates the state for scanning root.
func NewScan(root string) (*Scan, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve project root %s: %w", root, err)
	}
	return &Scan{Root: abs}, nil
}
