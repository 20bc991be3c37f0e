// Package report renders the report of a logpuzzle download run.
//
// Three formats are supported:
//   - SimpleWriter: plain text for the terminal
//   - JSONWriter: JSON for other tools
//   - MarkdownWriter: Markdown with tables and a Mermaid pie chart
//
// All writers implement Writer and consume a *model.RunReport.
package report
