package report

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"

	"github.com/keyhound/keyhound/internal/model"
)

// MarkdownWriter outputs reports in Markdown format.
// This format is designed for documentation and sharing.
//
// Design decision: We use the nao1215/markdown library for fluent markdown
// generation which provides:
// 1. Type-safe markdown generation
// 2. Support for tables, lists, and code blocks
// 3. GitHub-flavored markdown alerts
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the full report in Markdown format.
func (w *MarkdownWriter) Write(report *model.ScanReport) (int, error) {
	summary := ensureSummary(report)

	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, report)
	w.writeSummary(md, summary)
	w.writeFindings(md, report)
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// WriteSummary outputs only the summary in Markdown format.
func (w *MarkdownWriter) WriteSummary(summary *model.ScanSummary) (int, error) {
	md := markdown.NewMarkdown(w.output)
	w.writeSummary(md, summary)
	return len(md.String()), md.Build()
}

// writeHeader writes the report header with scan information.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, report *model.ScanReport) {
	md.H1("KeyHound Scan Report")
	md.PlainText("")

	status := "✅ Complete"
	if report.Error != "" {
		status = "❌ Error - " + report.Error
	}

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Targets", "`" + strings.Join(report.Targets, "`, `") + "`"},
			{"Network", report.Network},
			{"Scan Date", report.StartedAt.Format("2006-01-02 15:04:05 MST")},
			{"Files Scanned", strconv.Itoa(report.ScannedFiles)},
			{"Status", status},
		},
	})
	md.PlainText("")
}

// writeSummary writes the finding count summary section.
func (w *MarkdownWriter) writeSummary(md *markdown.Markdown, summary *model.ScanSummary) {
	md.H2("Summary")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Outcome", "Count"},
		Rows: [][]string{
			{"🔴 Valid", strconv.Itoa(summary.ValidCount)},
			{"🟡 Error", strconv.Itoa(summary.ErrorCount)},
			{"⚪ Invalid", strconv.Itoa(summary.InvalidCount)},
			{"🔵 Pending", strconv.Itoa(summary.PendingCount)},
			{"**Total**", "**" + strconv.Itoa(summary.TotalFindings) + "**"},
		},
	})
	md.PlainText("")

	if summary.TotalFindings > 0 {
		w.writePieChart(md, summary)
	}

	w.writeAlert(md, summary)
}

// writePieChart writes a mermaid pie chart of the artifact type
// distribution.
func (w *MarkdownWriter) writePieChart(md *markdown.Markdown, summary *model.ScanSummary) {
	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Finding Type Distribution"),
		piechart.WithShowData(true),
	)

	types := make([]string, 0, len(summary.TypeCounts))
	for t := range summary.TypeCounts {
		types = append(types, t)
	}
	sort.Strings(types)

	for _, t := range types {
		if count := summary.TypeCounts[t]; count > 0 {
			chart.LabelAndIntValue(t, uint64(count))
		}
	}

	md.PlainText("")
	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

// writeAlert writes an appropriate alert based on validated findings.
// A verified private key or seed phrase is the worst case for the
// scanned tree's owner, so it gets the strongest alert.
func (w *MarkdownWriter) writeAlert(md *markdown.Markdown, summary *model.ScanSummary) {
	keyMaterial := summary.TypeCounts["private_key"] + summary.TypeCounts["seed_phrase"]

	switch {
	case summary.ValidCount > 0 && keyMaterial > 0:
		md.Cautionf(
			"Validated key material detected! %d finding(s) passed cryptographic checks and should be secured or destroyed immediately.",
			summary.ValidCount,
		)
	case summary.ValidCount > 0:
		md.Warningf(
			"%d finding(s) passed validation. Review whether they should be stored here.",
			summary.ValidCount,
		)
	case summary.TotalFindings > 0:
		md.Note("Candidate artifacts were found but none passed validation.")
	default:
		md.Tip("No cryptocurrency artifacts detected.")
	}
	md.PlainText("")
}

// writeFindings writes all findings grouped by validation status.
func (w *MarkdownWriter) writeFindings(md *markdown.Markdown, report *model.ScanReport) {
	md.H2("Findings")
	md.PlainText("")

	if !report.HasFindings() {
		md.PlainText("No artifacts detected.")
		md.PlainText("")
		return
	}

	statuses := []struct {
		status model.ValidationStatus
		header string
	}{
		{model.StatusValid, "### 🔴 Valid"},
		{model.StatusError, "### 🟡 Error"},
		{model.StatusInvalid, "### ⚪ Invalid"},
		{model.StatusPending, "### 🔵 Pending"},
	}

	for _, s := range statuses {
		findings := report.FindingsByStatus(s.status)
		if len(findings) == 0 {
			continue
		}

		md.PlainText(s.header)
		md.PlainText("")
		w.writeFindingsTable(md, findings)
	}
}

// writeFindingsTable writes a table of findings with details.
func (w *MarkdownWriter) writeFindingsTable(md *markdown.Markdown, findings []model.Finding) {
	headers := []string{"Type", "Value", "Location", "Confidence"}

	rows := make([][]string, len(findings))
	for i, f := range findings {
		location := f.Location
		if location == "" {
			location = "-"
		}

		rows[i] = []string{
			f.Type + " (" + f.Subtype + ")",
			"`" + f.MaskedValue + "`",
			truncateString(location, 40),
			fmt.Sprintf("%.2f", f.Confidence),
		}
	}

	md.Table(markdown.TableSet{
		Header: headers,
		Rows:   rows,
	})
	md.PlainText("")

	// Derived addresses are public material; list them in a detail
	// block so the table stays readable.
	for _, f := range findings {
		if len(f.DerivedAddresses) == 0 {
			continue
		}
		var sb strings.Builder
		for _, addr := range f.DerivedAddresses {
			sb.WriteString(fmt.Sprintf("- `%s` (%s, %s)\n", addr.Address, addr.Type, addr.Path))
		}
		md.Details("Derived addresses for "+f.MaskedValue, sb.String())
	}
	md.PlainText("")
}

// writeFooter writes the report footer.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainTextf("*Report generated by KeyHound. Matched values are masked; full artifacts never leave memory.*")
}

// truncateString truncates a string to maxLen characters with ellipsis.
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
