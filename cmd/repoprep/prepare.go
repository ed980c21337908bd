package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/irsanai/repoprep/internal/remediate"
)

// NewPrepareCmd creates the prepare command.
func NewPrepareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prepare",
		Short: "Scan and fix what can be fixed automatically",
		Long: `Prepare runs a full scan, stores the remediation plan and lists the fixes:
missing .gitignore entries, ignored junk and backup files, and unexpected
entries in the managed metadata directory.

Nothing is changed unless --apply is given.

Examples:
  # Show what would be fixed
  repoprep prepare

  # Apply the fixes
  repoprep prepare --apply`,
		Args: cobra.NoArgs,
		RunE: runPrepareCmd,
	}

	addScanFlags(cmd)
	cmd.Flags().Bool("apply", false, "Apply the remediation plan instead of listing it")

	return cmd
}

// runPrepareCmd executes the prepare command.
func runPrepareCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	cfg.Remediation = true

	apply, err := cmd.Flags().GetBool("apply")
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	rl := setupLogger(cmd, cfg)
	defer rl.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	scan, err := runScan(ctx, cmd, cfg, rl.logger)
	if err != nil {
		return rl.fatal(err)
	}

	res, err := remediate.Apply(scan.Root, scan.Plan,
		remediate.WithDryRun(!apply),
		remediate.WithLogger(rl.logger),
	)
	if res != nil {
		writePrepareSummary(cmd.OutOrStdout(), res, scan.Plan.RuleViolationCount)
	}
	if err != nil {
		return rl.fatal(err)
	}
	return nil
}

// writePrepareSummary prints what was, or would be, changed.
func writePrepareSummary(w io.Writer, res *remediate.Result, violations int) {
	verb := "Removed"
	added := "Added to .gitignore"
	if res.DryRun {
		verb = "Would remove"
		added = "Would add to .gitignore"
	}

	fmt.Fprintf(w, "Violations found: %d\n", violations)
	if res.Changes() == 0 {
		fmt.Fprintln(w, "Nothing to fix.")
		return
	}

	for _, p := range res.Deleted {
		fmt.Fprintf(w, "%s %s\n", verb, p)
	}
	for _, p := range res.Pruned {
		fmt.Fprintf(w, "%s %s\n", verb, p)
	}
	if len(res.GitignoreAdded) > 0 {
		if res.GitignoreCreate {
			added += " (new file)"
		}
		fmt.Fprintf(w, "%s:\n", added)
		for _, e := range res.GitignoreAdded {
			fmt.Fprintf(w, "  %s\n", e)
		}
	}

	if res.DryRun {
		fmt.Fprintf(w, "\n%d change(s) planned. Run with --apply to make them.\n", res.Changes())
		return
	}
	fmt.Fprintf(w, "\n%d change(s) applied. Run repoprep scan to verify.\n", res.Changes())
}
