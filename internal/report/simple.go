package report

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/nao1215/logpuzzle/internal/imageinfo"
	"github.com/nao1215/logpuzzle/internal/model"
)

// SimpleWriter outputs human-readable text reports for the terminal.
// Plain ASCII keeps the output safe to pipe into files or other tools.
type SimpleWriter struct {
	baseWriter

	// showEmpty controls whether sections with no entries are shown.
	showEmpty bool

	// verbose adds per-image digests and EXIF tags.
	verbose bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithShowEmpty configures the writer to show empty sections.
func WithShowEmpty(show bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.showEmpty = show
	}
}

// WithVerbose enables verbose output with additional details.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{baseWriter: newBaseWriter(output)}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write outputs the report in human-readable format.
func (w *SimpleWriter) Write(report *model.RunReport) (int, error) {
	var sb strings.Builder

	w.writeHeader(&sb, report)
	w.writeSummary(&sb, report)
	w.writeFailures(&sb, report)
	w.writeImages(&sb, report)
	w.writeFooter(&sb, report)

	return io.WriteString(w.output, sb.String())
}

func (w *SimpleWriter) writeHeader(sb *strings.Builder, report *model.RunReport) {
	sb.WriteString("\n")
	sb.WriteString(rule("="))
	sb.WriteString("\n")
	sb.WriteString("                         LOGPUZZLE REPORT\n")
	sb.WriteString(rule("="))
	sb.WriteString("\n\n")

	fmt.Fprintf(sb, "Log File:       %s\n", report.LogFile)
	fmt.Fprintf(sb, "Hostname:       %s\n", report.Hostname)
	fmt.Fprintf(sb, "Policy:         %s\n", report.Policy)
	fmt.Fprintf(sb, "Target Dir:     %s\n", report.TargetDir)
	if report.IndexFile != "" {
		fmt.Fprintf(sb, "Index:          %s\n", report.IndexFile)
	}
	fmt.Fprintf(sb, "Started:        %s\n", report.StartedAt.Format("2006-01-02 15:04:05 MST"))
	fmt.Fprintf(sb, "Status:         %s\n", statusText(report))
	sb.WriteString("\n")
}

func (w *SimpleWriter) writeSummary(sb *strings.Builder, report *model.RunReport) {
	s := report.Summarize()

	sb.WriteString(rule("-"))
	sb.WriteString("\nSUMMARY\n")
	sb.WriteString(rule("-"))
	sb.WriteString("\n\n")

	fmt.Fprintf(sb, "  URLS:       %d\n", s.Total)
	fmt.Fprintf(sb, "  FETCHED:    %d\n", s.Fetched)
	fmt.Fprintf(sb, "  TRANSPORT:  %d\n", s.Transport)
	fmt.Fprintf(sb, "  STATUS:     %d\n", s.Status)
	fmt.Fprintf(sb, "  WRITE:      %d\n", s.Write)
	sb.WriteString("\n")
}

func (w *SimpleWriter) writeFailures(sb *strings.Builder, report *model.RunReport) {
	failures := report.Failures()
	if len(failures) == 0 && !w.showEmpty {
		return
	}

	sb.WriteString(rule("-"))
	sb.WriteString("\nFAILURES\n")
	sb.WriteString(rule("-"))
	sb.WriteString("\n\n")

	if len(failures) == 0 {
		sb.WriteString("  No failures\n\n")
		return
	}

	for _, f := range failures {
		fmt.Fprintf(sb, "  [%s] #%d %s\n", strings.ToUpper(f.Failure.String()), f.Index, f.URL)
		if f.Message != "" {
			fmt.Fprintf(sb, "      %s\n", f.Message)
		}
	}
	sb.WriteString("\n")
}

func (w *SimpleWriter) writeImages(sb *strings.Builder, report *model.RunReport) {
	if len(report.Images) == 0 && !w.showEmpty {
		return
	}

	sb.WriteString(rule("-"))
	sb.WriteString("\nIMAGES\n")
	sb.WriteString(rule("-"))
	sb.WriteString("\n\n")

	withEXIF := 0
	for _, img := range report.Images {
		if img.HasEXIF() {
			withEXIF++
		}
	}
	fmt.Fprintf(sb, "  Inspected: %d, with EXIF metadata: %d\n", len(report.Images), withEXIF)

	dups := imageinfo.Duplicates(report.Images)
	for _, digest := range slices.Sorted(maps.Keys(dups)) {
		fmt.Fprintf(sb, "  [!] identical content: %s\n", strings.Join(dups[digest], ", "))
	}

	if w.verbose {
		sb.WriteString("\n")
		for _, img := range report.Images {
			fmt.Fprintf(sb, "  %-16s %8d bytes  sha3:%s\n", img.File, img.Size, shortDigest(img.Digest))
			for _, tag := range slices.Sorted(maps.Keys(img.EXIF)) {
				fmt.Fprintf(sb, "      %s: %s\n", tag, img.EXIF[tag])
			}
		}
	}
	sb.WriteString("\n")
}

func (w *SimpleWriter) writeFooter(sb *strings.Builder, report *model.RunReport) {
	sb.WriteString(rule("="))
	sb.WriteString("\n")
	if d := report.Duration(); d > 0 {
		fmt.Fprintf(sb, "Completed in %s\n", d.Round(time.Millisecond))
	}
	sb.WriteString("\n")
}
