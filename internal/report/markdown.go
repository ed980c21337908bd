package report

import (
	"io"
	"strconv"
	"strings"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"

	"github.com/irsanai/repoprep/internal/model"
)

// MarkdownWriter outputs reports in GitHub-flavored Markdown with tables,
// alerts and a mermaid chart of violations per category.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the report in Markdown format.
func (w *MarkdownWriter) Write(report *model.Report) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, report)
	w.writeSummary(md, report)
	w.writeViolations(md, report)
	w.writeCriticalFiles(md, report)
	w.writeAnalyzeFirst(md, report)
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// writeHeader writes the report header with scan information.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, report *model.Report) {
	meta := report.Metadata

	md.H1("Repository Compliance Report")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Project Root", "`" + meta.ProjectRootMasked + "`"},
			{"Project ID", "`" + meta.ProjectID + "`"},
			{"Scan Date", meta.Timestamp.Format("2006-01-02 15:04:05 MST")},
			{"Scanner Version", meta.ScannerVersion},
			{"Files", strconv.Itoa(meta.TotalFiles)},
			{"Directories", strconv.Itoa(meta.TotalDirectories)},
			{"Ignored Files", strconv.Itoa(meta.IgnoredFiles)},
			{"Ignored Directories", strconv.Itoa(meta.IgnoredDirectories)},
		},
	})
	md.PlainText("")
}

// writeSummary writes one row per category plus the overall alert.
func (w *MarkdownWriter) writeSummary(md *markdown.Markdown, report *model.Report) {
	md.H2("Summary")
	md.PlainText("")

	rows := make([][]string, 0, len(report.Violations)+1)
	for _, c := range report.Violations {
		status := "✅ Pass"
		if len(c.Violations) > 0 {
			status = "❌ Fail"
		}
		rows = append(rows, []string{
			categoryTitle(c.Category),
			strconv.Itoa(c.CountBySeverity(model.SeverityError)),
			strconv.Itoa(c.CountBySeverity(model.SeverityWarning)),
			status,
		})
	}
	rows = append(rows, []string{
		"**Total**",
		"**" + strconv.Itoa(report.CountBySeverity(model.SeverityError)) + "**",
		"**" + strconv.Itoa(report.CountBySeverity(model.SeverityWarning)) + "**",
		"",
	})

	md.Table(markdown.TableSet{
		Header: []string{"Category", "Errors", "Warnings", "Status"},
		Rows:   rows,
	})
	md.PlainText("")

	if report.HasViolations() {
		w.writePieChart(md, report)
	}
	w.writeAlert(md, report)
}

// writePieChart writes a mermaid pie chart of violations per category.
func (w *MarkdownWriter) writePieChart(md *markdown.Markdown, report *model.Report) {
	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Violations by Category"),
		piechart.WithShowData(true),
	)

	for _, c := range report.Violations {
		if n := len(c.Violations); n > 0 {
			chart.LabelAndIntValue(categoryTitle(c.Category), uint64(n))
		}
	}

	md.PlainText("")
	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

// writeAlert writes an alert matching the worst severity found.
func (w *MarkdownWriter) writeAlert(md *markdown.Markdown, report *model.Report) {
	errs := report.CountBySeverity(model.SeverityError)
	warns := report.CountBySeverity(model.SeverityWarning)

	switch {
	case errs > 0:
		md.Cautionf("%d error(s) must be fixed before the repository is published.", errs)
	case warns > 0:
		md.Warningf("%d warning(s) should be reviewed before the repository is published.", warns)
	default:
		md.Tip("The repository passes every compliance rule.")
	}
	md.PlainText("")
}

// writeViolations writes a table per category that has violations.
func (w *MarkdownWriter) writeViolations(md *markdown.Markdown, report *model.Report) {
	md.H2("Violations")
	md.PlainText("")

	if !report.HasViolations() {
		md.PlainText("No violations found.")
		md.PlainText("")
		return
	}

	for _, c := range report.Violations {
		if len(c.Violations) == 0 {
			continue
		}

		md.H3(categoryTitle(c.Category))
		md.PlainText("")

		rows := make([][]string, len(c.Violations))
		for i, v := range c.Violations {
			rows[i] = []string{
				v.Severity.String(),
				v.RuleName,
				orDash(displayPath(v.Path)),
				truncateString(orDash(v.Detail), 60),
				truncateString(orDash(v.Recommendation), 60),
			}
		}
		md.Table(markdown.TableSet{
			Header: []string{"Severity", "Rule", "Path", "Detail", "Recommendation"},
			Rows:   rows,
		})
		md.PlainText("")
	}
}

// writeCriticalFiles writes the presence table of critical files.
func (w *MarkdownWriter) writeCriticalFiles(md *markdown.Markdown, report *model.Report) {
	if len(report.CriticalFileStatus) == 0 {
		return
	}

	md.H2("Critical Files")
	md.PlainText("")

	rows := make([][]string, len(report.CriticalFileStatus))
	for i, c := range report.CriticalFileStatus {
		status := "✅"
		if !c.Exists {
			status = "❌ missing"
		}
		rows[i] = []string{"`" + c.Path + "`", c.Description, status}
	}
	md.Table(markdown.TableSet{
		Header: []string{"Path", "Description", "Status"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeAnalyzeFirst writes the prioritized files and review questions.
func (w *MarkdownWriter) writeAnalyzeFirst(md *markdown.Markdown, report *model.Report) {
	md.H2("Analyze First")
	md.PlainText("")

	if len(report.AnalyzeFirst) == 0 {
		md.PlainText("No prioritized files.")
	} else {
		items := make([]string, len(report.AnalyzeFirst))
		for i, f := range report.AnalyzeFirst {
			items[i] = "`" + f.Path + "` (" + strconv.FormatFloat(f.SizeKB, 'f', 2, 64) + " KB, " + f.Hash + ")"
		}
		md.BulletList(items...)
	}
	md.PlainText("")

	if len(report.ReviewQuestions) > 0 {
		md.Details("Review questions", joinLines(report.ReviewQuestions))
		md.PlainText("")
	}

	if report.FeedbackContext.PreviousFeedbackExists {
		md.Note("Prioritization used reviewer feedback from " + report.FeedbackContext.FeedbackTimestamp + ".")
		md.PlainText("")
	}
}

// writeFooter writes the report footer.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainTextf("*Report generated by repoprep*")
}

// truncateString truncates a string to maxLen bytes with ellipsis.
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// displayPath renders the project root path as ".".
func displayPath(p string) string {
	if p == "" {
		return "."
	}
	return p
}

func joinLines(lines []string) string {
	return "- " + strings.Join(lines, "\n- ")
}
