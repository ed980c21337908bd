package model

// RemediationPlan lists the fixes the prepare command can apply.
// The plan is computed from one scan and persisted next to the report.
type RemediationPlan struct {
	// GitignoreEntries are required entries missing from .gitignore.
	GitignoreEntries []string `json:"gitignore_entries"`

	// DeleteCandidates are ignored junk or backup files found in the tree.
	DeleteCandidates []string `json:"delete_candidates"`

	// ManagedDirPrune are entries of the managed metadata directory that
	// are not on its allow-list.
	ManagedDirPrune []string `json:"managed_dir_prune"`

	// RuleViolationCount is the number of violations the plan was built from.
	RuleViolationCount int `json:"rule_violation_count"`
}

// IsEmpty reports whether there is nothing to apply.
func (p *RemediationPlan) IsEmpty() bool {
	return len(p.GitignoreEntries) == 0 && len(p.DeleteCandidates) == 0 && len(p.ManagedDirPrune) == 0
}
