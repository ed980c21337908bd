// Package remediate turns a scan into a remediation plan and applies it.
//
// BuildPlan only reads the project. Apply deletes junk files, completes
// .gitignore and prunes the managed metadata directory. With WithDryRun it
// logs the same actions without touching the disk.
package remediate
