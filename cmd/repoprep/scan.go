package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/irsanai/repoprep/internal/anonymize"
	"github.com/irsanai/repoprep/internal/config"
	"github.com/irsanai/repoprep/internal/log"
	"github.com/irsanai/repoprep/internal/model"
	"github.com/irsanai/repoprep/internal/pipeline"
	"github.com/irsanai/repoprep/internal/report"
	"github.com/irsanai/repoprep/internal/rules"
)

// supportAddress is where operators send the log file after a failed run.
const supportAddress = "support@irsanai.example"

// NewScanCmd creates the scan command.
func NewScanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Scan a project tree for compliance violations",
		Long: `Scan walks the project root, skips ignored paths and evaluates every rule
against the remaining files and directories.

The report is written to .IrsanAI/Reports/current_scan.json and a summary
is appended to .IrsanAI/Reports/scan_history.json. A console summary is
printed unless --json or --markdown selects another format.

Examples:
  # Scan the current directory
  repoprep scan

  # Scan another project and print Markdown
  repoprep scan --root ../project --markdown

  # Write the JSON report to a file and also store a remediation plan
  repoprep scan --json -o report.json --remediation

  # Report rules that fail to evaluate instead of skipping them
  repoprep scan --fail-closed`,
		Args: cobra.NoArgs,
		RunE: runScanCmd,
	}

	addScanFlags(cmd)

	// Report flags
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON report (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown report (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "",
		"Write report to specified file path (creates directories if needed)")
	cmd.Flags().Bool("remediation", false,
		"Also write .IrsanAI/Reports/remediation.json")

	return cmd
}

// addScanFlags registers the flags shared by scan and prepare.
func addScanFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("root", "r", ".",
		"Project root to scan")
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .repoprep in current or home directory)")
	cmd.Flags().String("log-file", config.DefaultLogFile,
		"Transcript log file, relative to the root (empty disables)")
	cmd.Flags().Bool("progress", false,
		"Show a progress spinner while walking the tree")
	cmd.Flags().Bool("fail-closed", false,
		"Report rules whose check fails instead of skipping them")
}

// runScanCmd executes the scan command.
func runScanCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildConfig(cmd)
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

	if err := outputReport(cmd.OutOrStdout(), cfg, scan.Report, cfg.Verbose); err != nil {
		return rl.fatal(err)
	}
	return nil
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// buildConfig creates a Config from defaults, the config file and flags,
// in that order of precedence.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.NewConfig()

	var err error

	cfg.Root, err = cmd.Flags().GetString("root")
	if err != nil {
		return nil, err
	}

	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	if _, err := config.Load(cfg); err != nil {
		if errors.Is(err, config.ErrConfigNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	if cmd.Flags().Changed("log-file") {
		cfg.LogFile, err = cmd.Flags().GetString("log-file")
		if err != nil {
			return nil, err
		}
	}

	failClosed, err := cmd.Flags().GetBool("fail-closed")
	if err != nil {
		return nil, err
	}
	if failClosed {
		cfg.OnPredicateError = string(rules.PolicyReport)
	}

	cfg.Progress, err = cmd.Flags().GetBool("progress")
	if err != nil {
		return nil, err
	}

	cfg.Verbose = getVerboseFlag(cmd)

	// Report flags only exist on scan.
	if cmd.Flags().Lookup("json") != nil {
		cfg.JSONReport, err = cmd.Flags().GetBool("json")
		if err != nil {
			return nil, err
		}
		cfg.MarkdownReport, err = cmd.Flags().GetBool("markdown")
		if err != nil {
			return nil, err
		}
		cfg.ReportFile, err = cmd.Flags().GetString("output")
		if err != nil {
			return nil, err
		}
		cfg.Remediation, err = cmd.Flags().GetBool("remediation")
		if err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// runLog is the logger of one command run and the transcript file behind it.
type runLog struct {
	logger *slog.Logger
	path   string
	file   *os.File
}

// Close closes the transcript file.
func (l *runLog) Close() {
	if l.file != nil {
		_ = l.file.Close()
	}
}

// setupLogger creates the transcript logger writing to stderr and the log
// file. A log file that cannot be opened leaves a console-only logger.
func setupLogger(cmd *cobra.Command, cfg *config.Config) *runLog {
	opts := []log.HandlerOption{log.WithPathMasker(anonymize.DefaultMasker())}
	rl := &runLog{}

	var openErr error
	if p := cfg.LogFilePath(); p != "" {
		f, err := os.OpenFile(p, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600) //nolint:gosec // Path comes from flags or config
		if err != nil {
			openErr = err
		} else {
			rl.file = f
			rl.path = p
		}
	}

	var file io.Writer
	if rl.file != nil {
		file = rl.file
	}
	rl.logger = log.NewTranscriptLogger(cmd.ErrOrStderr(), file, cfg.Verbose, opts...)
	if openErr != nil {
		rl.logger.Warn("log file unavailable, logging to console only", "error", openErr)
	}
	slog.SetDefault(rl.logger)
	return rl
}

// fatal logs the two critical records that close a failed run and returns err.
func (l *runLog) fatal(err error) error {
	log.Critical(l.logger, "run aborted", "error", err)
	target := l.path
	if target == "" {
		target = "the console output"
	}
	log.Critical(l.logger, "send "+target+" to "+supportAddress+" to report the failure")
	return err
}

// runScan builds and executes the default pipeline.
func runScan(ctx context.Context, cmd *cobra.Command, cfg *config.Config, logger *slog.Logger) (*pipeline.Scan, error) {
	progress, stopProgress := newProgress(cmd.ErrOrStderr(), cfg.Progress)
	defer stopProgress()

	p, err := pipeline.Default(cfg, pipeline.Deps{
		Logger:   logger,
		Version:  getVersion(),
		Progress: progress,
	})
	if err != nil {
		return nil, err
	}

	scan, err := pipeline.NewScan(cfg.Root)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	if err := p.Execute(ctx, scan); err != nil {
		return scan, err
	}
	logger.Info("scan completed",
		"elapsed", time.Since(start).Round(time.Millisecond).String(),
		"violations", scan.Report.TotalViolations(),
	)
	logger.Info("violation summary", violationSummary(scan.Report)...)
	return scan, nil
}

// violationSummary returns slog key-value pairs with per-category counts
// packed into one value, followed by severity totals. Category names are not
// used as keys because the secure handler redacts keys such as "secrets".
func violationSummary(r *model.Report) []any {
	counts := make([]string, 0, len(r.Violations))
	var errs, warnings int
	for _, g := range r.Violations {
		counts = append(counts, fmt.Sprintf("%s:%d", g.Category, len(g.Violations)))
		errs += g.CountBySeverity(model.SeverityError)
		warnings += g.CountBySeverity(model.SeverityWarning)
	}
	return []any{"categories", strings.Join(counts, " "), "errors", errs, "warnings", warnings}
}

// outputReport outputs the scan report in the requested format.
func outputReport(stdout io.Writer, cfg *config.Config, r *model.Report, verbose bool) error {
	output := stdout
	if cfg.ReportFile != "" {
		dir := filepath.Dir(cfg.ReportFile)
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0750); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
		}

		f, err := os.OpenFile(cfg.ReportFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		output = f
	}

	var w report.Writer
	switch {
	case cfg.JSONReport:
		w = report.NewJSONWriter(output, report.WithPrettyPrint())
	case cfg.MarkdownReport:
		w = report.NewMarkdownWriter(output)
	default:
		w = report.NewSimpleWriter(output, report.WithVerbose(verbose))
	}
	_, err := w.Write(r)
	return err
}
