package main

import (
	"errors"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/irsanai/repoprep/internal/config"
	"github.com/irsanai/repoprep/internal/model"
	"github.com/irsanai/repoprep/internal/report"
)

// Trend labels between two history entries.
const (
	trendWorsened  = "worsened"
	trendImproved  = "improved"
	trendUnchanged = "unchanged"
	noViolations   = "No violations"
)

// NewHistoryCmd creates the history command.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show the scan history and the trend since the previous scan",
		Long: `History reads .IrsanAI/Reports/scan_history.json and lists past scans,
newest last. When at least two scans exist, the change per category
between the last two is shown.

Examples:
  # Show the whole history
  repoprep history

  # Show the last five scans of another project
  repoprep history --root ../project --last 5

  # Print the raw history as JSON
  repoprep history --json`,
		Args: cobra.NoArgs,
		RunE: runHistoryCmd,
	}

	cmd.Flags().StringP("root", "r", ".",
		"Project root whose history is shown")
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .repoprep in current or home directory)")
	cmd.Flags().IntP("last", "n", 0,
		"Only show the last N scans (0 shows all)")
	cmd.Flags().BoolP("json", "j", false,
		"Output history in JSON format")

	return cmd
}

// runHistoryCmd executes the history command.
func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	cfg := config.NewConfig()

	var err error
	cfg.Root, err = cmd.Flags().GetString("root")
	if err != nil {
		return err
	}
	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return err
	}
	if _, err := config.Load(cfg); err != nil {
		if errors.Is(err, config.ErrConfigNotFound) {
			return err
		}
		return fmt.Errorf("failed to load config file: %w", err)
	}

	last, err := cmd.Flags().GetInt("last")
	if err != nil {
		return err
	}
	if last < 0 {
		return fmt.Errorf("invalid --last value %d: must not be negative", last)
	}

	jsonOutput, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}

	history := report.NewStore(cfg.ReportsDir()).LoadHistory()
	if last > 0 && len(history) > last {
		history = history[len(history)-last:]
	}

	out := cmd.OutOrStdout()
	if jsonOutput {
		_, err := report.NewJSONWriter(out, report.WithPrettyPrint()).WriteHistory(history)
		return err
	}
	writeHistory(out, history)
	return nil
}

// writeHistory prints the history table and the latest trend.
func writeHistory(w io.Writer, history model.ScanHistory) {
	if len(history) == 0 {
		fmt.Fprintln(w, "No scan history found.")
		fmt.Fprintln(w, "\nUse 'repoprep scan' to scan this project.")
		return
	}

	fmt.Fprintf(w, "Scan history (%d scans):\n\n", len(history))
	fmt.Fprintf(w, "  %-20s  %-6s  %-10s  %s\n", "Date", "Files", "Violations", "By Category")
	fmt.Fprintln(w, "  "+strings.Repeat("-", 70))
	for _, e := range history {
		fmt.Fprintf(w, "  %-20s  %-6d  %-10d  %s\n",
			e.Timestamp.Local().Format("2006-01-02 15:04:05"),
			e.FileCount,
			e.TotalViolations(),
			formatSummary(e.ViolationSummary),
		)
	}

	if len(history) < 2 {
		fmt.Fprintln(w, "\nAt least two scans are needed to show a trend.")
		return
	}

	previous, current := history[len(history)-2], history[len(history)-1]
	fmt.Fprintf(w, "\nTrend since previous scan: %s\n", trendDirection(previous.TotalViolations(), current.TotalViolations()))
	for _, c := range summaryCategories(previous.ViolationSummary, current.ViolationSummary) {
		before, after := previous.ViolationSummary[c], current.ViolationSummary[c]
		fmt.Fprintf(w, "  %-15s %3d -> %-3d (%s, %s)\n",
			c, before, after, formatDelta(after-before), trendDirection(before, after))
	}
}

// formatSummary formats the per-category counts, skipping zero entries.
func formatSummary(summary map[model.Category]int) string {
	var parts []string
	for _, c := range summaryCategories(summary) {
		if n := summary[c]; n > 0 {
			parts = append(parts, fmt.Sprintf("%s:%d", c, n))
		}
	}
	if len(parts) == 0 {
		return noViolations
	}
	return strings.Join(parts, " ")
}

// summaryCategories returns the union of the summaries' keys in display order.
func summaryCategories(summaries ...map[model.Category]int) []model.Category {
	seen := make(map[model.Category]struct{})
	for _, s := range summaries {
		for c := range s {
			seen[c] = struct{}{}
		}
	}
	return model.SortCategories(slices.Collect(maps.Keys(seen)))
}

// trendDirection compares two violation counts.
func trendDirection(before, after int) string {
	switch {
	case after < before:
		return trendImproved
	case after > before:
		return trendWorsened
	default:
		return trendUnchanged
	}
}

// formatDelta formats a count difference with an explicit sign.
func formatDelta(delta int) string {
	if delta > 0 {
		return fmt.Sprintf("+%d", delta)
	}
	return fmt.Sprintf("%d", delta)
}
