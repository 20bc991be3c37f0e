package report

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"

	"github.com/nao1215/logpuzzle/internal/imageinfo"
	"github.com/nao1215/logpuzzle/internal/model"
)

// MarkdownWriter outputs reports in Markdown format for sharing a run,
// for example as a CI job summary.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{baseWriter: newBaseWriter(output)}
}

// Write outputs the report in Markdown format.
func (w *MarkdownWriter) Write(report *model.RunReport) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, report)
	w.writeSummary(md, report)
	w.writeFailures(md, report)
	w.writeImages(md, report)
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, report *model.RunReport) {
	md.H1("logpuzzle Report")
	md.PlainText("")

	rows := [][]string{
		{"Log File", "`" + report.LogFile + "`"},
		{"Hostname", "`" + report.Hostname + "`"},
		{"Policy", report.Policy},
		{"Target Directory", "`" + report.TargetDir + "`"},
	}
	if report.IndexFile != "" {
		rows = append(rows, []string{"Index", "`" + report.IndexFile + "`"})
	}
	rows = append(rows,
		[]string{"Started", report.StartedAt.Format("2006-01-02 15:04:05 MST")},
		[]string{"Status", statusText(report)},
	)

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows:   rows,
	})
	md.PlainText("")
}

func (w *MarkdownWriter) writeSummary(md *markdown.Markdown, report *model.RunReport) {
	s := report.Summarize()

	md.H2("Summary")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Outcome", "Count"},
		Rows: [][]string{
			{kindLabel(model.FailureNone), strconv.Itoa(s.Fetched)},
			{kindLabel(model.FailureTransport), strconv.Itoa(s.Transport)},
			{kindLabel(model.FailureStatus), strconv.Itoa(s.Status)},
			{kindLabel(model.FailureWrite), strconv.Itoa(s.Write)},
			{"**Total**", "**" + strconv.Itoa(s.Total) + "**"},
		},
	})
	md.PlainText("")

	if len(report.Results) > 0 {
		w.writePieChart(md, s)
	}
	w.writeAlert(md, s)
}

// writePieChart writes a mermaid pie chart of fetch outcomes.
func (w *MarkdownWriter) writePieChart(md *markdown.Markdown, s model.Summary) {
	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Fetch Outcomes"),
		piechart.WithShowData(true),
	)

	counts := []struct {
		kind  model.FailureKind
		count int
	}{
		{model.FailureNone, s.Fetched},
		{model.FailureTransport, s.Transport},
		{model.FailureStatus, s.Status},
		{model.FailureWrite, s.Write},
	}
	for _, c := range counts {
		if c.count > 0 {
			chart.LabelAndIntValue(kindLabel(c.kind), uint64(c.count)) //nolint:gosec // count is non-negative
		}
	}

	md.PlainText("")
	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

func (w *MarkdownWriter) writeAlert(md *markdown.Markdown, s model.Summary) {
	switch {
	case s.Total == 0:
		md.Note("No puzzle URLs were found in the log.")
	case s.Fetched == 0 && s.Failed() > 0:
		md.Cautionf("Every fetch failed (%d URL(s)). The index is empty.", s.Failed())
	case s.Failed() > 0:
		md.Warningf("%d of %d image(s) could not be fetched; the puzzle is incomplete.", s.Failed(), s.Total)
	default:
		md.Tip("All puzzle pieces were fetched.")
	}
	md.PlainText("")
}

func (w *MarkdownWriter) writeFailures(md *markdown.Markdown, report *model.RunReport) {
	failures := report.Failures()

	md.H2("Failures")
	md.PlainText("")

	if len(failures) == 0 {
		md.PlainText("No failed fetches.")
		md.PlainText("")
		return
	}

	rows := make([][]string, len(failures))
	for i, f := range failures {
		status := "-"
		if f.StatusCode != 0 {
			status = strconv.Itoa(f.StatusCode)
		}
		rows[i] = []string{
			strconv.Itoa(f.Index),
			truncateString(f.URL, 80),
			kindLabel(f.Failure),
			status,
			truncateString(failureDetail(f), 60),
		}
	}

	md.Table(markdown.TableSet{
		Header: []string{"#", "URL", "Kind", "Status", "Detail"},
		Rows:   rows,
	})
	md.PlainText("")
}

func (w *MarkdownWriter) writeImages(md *markdown.Markdown, report *model.RunReport) {
	if len(report.Images) == 0 {
		return
	}

	md.H2("Images")
	md.PlainText("")

	rows := make([][]string, len(report.Images))
	for i, img := range report.Images {
		rows[i] = []string{
			"`" + img.File + "`",
			strconv.FormatInt(img.Size, 10),
			"`" + shortDigest(img.Digest) + "`",
			strconv.Itoa(len(img.EXIF)),
		}
	}
	md.Table(markdown.TableSet{
		Header: []string{"File", "Bytes", "SHA3-256", "EXIF Tags"},
		Rows:   rows,
	})
	md.PlainText("")

	dups := imageinfo.Duplicates(report.Images)
	if len(dups) > 0 {
		groups := make([]string, 0, len(dups))
		for _, digest := range slices.Sorted(maps.Keys(dups)) {
			groups = append(groups, strings.Join(dups[digest], ", "))
		}
		md.Note("Some downloaded files have identical content.")
		md.PlainText("")
		md.BulletList(groups...)
		md.PlainText("")
	}

	for _, img := range report.Images {
		if !img.HasEXIF() {
			continue
		}
		lines := make([]string, 0, len(img.EXIF))
		for _, tag := range slices.Sorted(maps.Keys(img.EXIF)) {
			lines = append(lines, fmt.Sprintf("%s: %s", tag, img.EXIF[tag]))
		}
		md.Details(img.File+" EXIF", strings.Join(lines, "\n"))
	}
	md.PlainText("")
}

func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainTextf("*Report generated by [logpuzzle](https://github.com/nao1215/logpuzzle)*")
}
