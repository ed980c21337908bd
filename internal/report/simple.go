package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/irsanai/repoprep/internal/model"
)

// SimpleWriter outputs the human-readable console summary. Every category
// of the report is listed with its severity counts, including categories
// without violations.
type SimpleWriter struct {
	baseWriter

	// verbose adds recommendations and per-file detail.
	verbose bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithVerbose enables verbose output with additional details.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the report in human-readable format.
func (w *SimpleWriter) Write(report *model.Report) (int, error) {
	var sb strings.Builder

	w.writeHeader(&sb, report)
	w.writeSummary(&sb, report)
	w.writeViolations(&sb, report)
	w.writeAnalyzeFirst(&sb, report)
	w.writeFooter(&sb, report)

	return w.output.Write([]byte(sb.String()))
}

// writeHeader writes the report header with scan information.
func (w *SimpleWriter) writeHeader(sb *strings.Builder, report *model.Report) {
	meta := report.Metadata

	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	sb.WriteString("                  REPOSITORY COMPLIANCE REPORT\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n\n")

	sb.WriteString(fmt.Sprintf("Project Root:   %s\n", meta.ProjectRootMasked))
	sb.WriteString(fmt.Sprintf("Scan Date:      %s\n", meta.Timestamp.Format("2006-01-02 15:04:05 MST")))
	sb.WriteString(fmt.Sprintf("Files:          %d (%d ignored)\n", meta.TotalFiles, meta.IgnoredFiles))
	sb.WriteString(fmt.Sprintf("Directories:    %d (%d ignored)\n", meta.TotalDirectories, meta.IgnoredDirectories))
	sb.WriteString("\n")
}

// writeSummary writes one line per category with its severity counts.
func (w *SimpleWriter) writeSummary(sb *strings.Builder, report *model.Report) {
	writeSection(sb, "SUMMARY")

	for _, c := range report.Violations {
		mark := "OK"
		if len(c.Violations) > 0 {
			mark = "!!"
		}
		sb.WriteString(fmt.Sprintf("  [%s] %-22s ERROR: %-3d WARNING: %d\n",
			mark,
			categoryTitle(c.Category),
			c.CountBySeverity(model.SeverityError),
			c.CountBySeverity(model.SeverityWarning)))
	}
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("  TOTAL: %d violation(s), %d error(s), %d warning(s)\n",
		report.TotalViolations(),
		report.CountBySeverity(model.SeverityError),
		report.CountBySeverity(model.SeverityWarning)))
	sb.WriteString("\n")
}

// writeViolations lists each violation under its category.
func (w *SimpleWriter) writeViolations(sb *strings.Builder, report *model.Report) {
	if !report.HasViolations() {
		return
	}

	writeSection(sb, "VIOLATIONS")

	for _, c := range report.Violations {
		if len(c.Violations) == 0 {
			continue
		}
		sb.WriteString(fmt.Sprintf("%s\n", categoryTitle(c.Category)))
		for _, v := range c.Violations {
			sb.WriteString(fmt.Sprintf("  * [%s] %s: %s\n", v.Severity.String(), v.RuleName, displayPath(v.Path)))
			if v.Detail != "" {
				sb.WriteString(fmt.Sprintf("    Detail: %s\n", v.Detail))
			}
			if w.verbose && v.Recommendation != "" {
				sb.WriteString(fmt.Sprintf("    Recommendation: %s\n", v.Recommendation))
			}
		}
		sb.WriteString("\n")
	}
}

// writeAnalyzeFirst lists the prioritized files.
func (w *SimpleWriter) writeAnalyzeFirst(sb *strings.Builder, report *model.Report) {
	if len(report.AnalyzeFirst) == 0 {
		return
	}

	writeSection(sb, "ANALYZE FIRST")

	for _, f := range report.AnalyzeFirst {
		sb.WriteString(fmt.Sprintf("  [+] %s (%.2f KB)\n", f.Path, f.SizeKB))
	}
	if w.verbose && report.FeedbackContext.PreviousFeedbackExists {
		sb.WriteString(fmt.Sprintf("  Feedback from %s was applied\n", report.FeedbackContext.FeedbackTimestamp))
	}
	sb.WriteString("\n")
}

// writeFooter writes the report footer.
func (w *SimpleWriter) writeFooter(sb *strings.Builder, report *model.Report) {
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Report generated by repoprep %s\n", report.Metadata.ScannerVersion))
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
}

func writeSection(sb *strings.Builder, title string) {
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString(title)
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")
}
