package report

import (
	"io"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/nao1215/logpuzzle/internal/model"
)

// Writer defines the interface for report output.
type Writer interface {
	// Write outputs the report to the configured destination.
	// Returns the number of bytes written and any error encountered.
	Write(report *model.RunReport) (int, error)
}

// baseWriter provides common functionality for report writers.
type baseWriter struct {
	output io.Writer
}

// newBaseWriter creates a baseWriter with the given output destination.
func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}

// kindLabel returns the display label of a failure kind, such as "Transport".
func kindLabel(k model.FailureKind) string {
	if k == model.FailureNone {
		return "Fetched"
	}
	// Casers are stateful and must not be shared between goroutines.
	return cases.Title(language.English).String(k.String())
}

// statusText summarizes how the run ended.
func statusText(report *model.RunReport) string {
	if report.ErrorMessage != "" {
		return "ERROR - " + report.ErrorMessage
	}
	if report.Summarize().Failed() > 0 {
		return "Complete with failures"
	}
	return "Complete"
}

// failureDetail describes why a fetch failed.
func failureDetail(r model.FetchResult) string {
	if r.Message != "" {
		return r.Message
	}
	return "-"
}

// shortDigest returns the first 12 hex characters of a digest.
func shortDigest(d string) string {
	if len(d) <= 12 {
		return d
	}
	return d[:12]
}

// truncateString truncates a string to maxLen runes with ellipsis.
func truncateString(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}

// rule returns a horizontal line of width 70.
func rule(c string) string {
	return strings.Repeat(c, 70)
}
