// Package report aggregates scan results into a model.Report, persists the
// report and history artifacts, and renders reports for people.
//
// Writers:
//   - SimpleWriter: console summary listing every category
//   - JSONWriter: the report as JSON
//   - MarkdownWriter: GitHub-flavored Markdown with a mermaid chart
package report
