package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for repoprep.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "repoprep",
		Short: "Rule-based compliance scanner for repositories before publication",
		Long: `repoprep walks a project tree, skips build output and other ignored paths,
and evaluates compliance rules against what is left.

Reports go to .IrsanAI/Reports/ inside the project: the current scan, an
append-only scan history and, on request, a remediation plan. Reviewer
feedback in .IrsanAI/Feedback/online_feedback.json steers which files are
listed for review first.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	cmd.AddCommand(NewScanCmd())
	cmd.AddCommand(NewPrepareCmd())
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
