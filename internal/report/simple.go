package report

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/keyhound/keyhound/internal/model"
)

// SimpleWriter outputs human-readable text reports.
// This format is designed for terminal display with clear section
// formatting.
//
// Design decision: We use plain text with ASCII formatting rather than
// ANSI colors by default because:
// 1. It works in all terminals without compatibility issues
// 2. It's easier to pipe to files or other tools
// 3. Color can be added as an option later if needed
type SimpleWriter struct {
	baseWriter

	// showEmpty controls whether sections with no findings are shown.
	showEmpty bool

	// verbose enables additional detail in the output, including
	// derived addresses and validation warnings.
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
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the full report in human-readable format.
func (w *SimpleWriter) Write(report *model.ScanReport) (int, error) {
	summary := ensureSummary(report)

	var sb strings.Builder
	w.writeHeader(&sb, report)
	w.writeSummarySection(&sb, summary)
	w.writeFindings(&sb, report)
	w.writeFooter(&sb)

	return w.output.Write([]byte(sb.String()))
}

// WriteSummary outputs only the summary in human-readable format.
func (w *SimpleWriter) WriteSummary(summary *model.ScanSummary) (int, error) {
	var sb strings.Builder
	w.writeSummarySection(&sb, summary)
	return w.output.Write([]byte(sb.String()))
}

// writeHeader writes the report header with scan information.
func (w *SimpleWriter) writeHeader(sb *strings.Builder, report *model.ScanReport) {
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	sb.WriteString("                         KEYHOUND SCAN REPORT\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n\n")

	sb.WriteString(fmt.Sprintf("Targets:       %s\n", strings.Join(report.Targets, ", ")))
	sb.WriteString(fmt.Sprintf("Network:       %s\n", report.Network))
	sb.WriteString(fmt.Sprintf("Scan Date:     %s\n", report.StartedAt.Format("2006-01-02 15:04:05 MST")))
	sb.WriteString(fmt.Sprintf("Duration:      %s\n", report.FinishedAt.Sub(report.StartedAt).Round(time.Millisecond)))
	sb.WriteString(fmt.Sprintf("Files Scanned: %d\n", report.ScannedFiles))

	if report.Error != "" {
		sb.WriteString(fmt.Sprintf("Status:        ERROR - %s\n", report.Error))
	} else {
		sb.WriteString("Status:        Complete\n")
	}

	sb.WriteString("\n")
}

// writeSummarySection writes the finding count summary.
func (w *SimpleWriter) writeSummarySection(sb *strings.Builder, summary *model.ScanSummary) {
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString("SUMMARY\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")

	sb.WriteString(fmt.Sprintf("  VALID:    %d\n", summary.ValidCount))
	sb.WriteString(fmt.Sprintf("  INVALID:  %d\n", summary.InvalidCount))
	sb.WriteString(fmt.Sprintf("  ERROR:    %d\n", summary.ErrorCount))
	sb.WriteString(fmt.Sprintf("  PENDING:  %d\n", summary.PendingCount))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("  TOTAL:    %d findings\n", summary.TotalFindings))
	sb.WriteString("\n")

	if len(summary.TypeCounts) > 0 {
		types := make([]string, 0, len(summary.TypeCounts))
		for t := range summary.TypeCounts {
			types = append(types, t)
		}
		sort.Strings(types)

		sb.WriteString("  By type:\n")
		for _, t := range types {
			sb.WriteString(fmt.Sprintf("    %-14s %d\n", t+":", summary.TypeCounts[t]))
		}
		sb.WriteString("\n")
	}
}

// writeFindings writes all findings grouped by validation status.
// Valid findings come first since they are what the operator came for.
func (w *SimpleWriter) writeFindings(sb *strings.Builder, report *model.ScanReport) {
	if !report.HasFindings() && !w.showEmpty {
		return
	}

	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString("FINDINGS\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")

	statuses := []struct {
		status    model.ValidationStatus
		indicator string
	}{
		{model.StatusValid, "!!"},
		{model.StatusError, "!"},
		{model.StatusInvalid, "-"},
		{model.StatusPending, "?"},
	}

	for _, s := range statuses {
		findings := report.FindingsByStatus(s.status)
		if len(findings) == 0 && !w.showEmpty {
			continue
		}
		w.writeFindingsForStatus(sb, s.status, s.indicator, findings)
	}
}

// writeFindingsForStatus writes findings of a specific validation status.
func (w *SimpleWriter) writeFindingsForStatus(sb *strings.Builder, status model.ValidationStatus, indicator string, findings []model.Finding) {
	sb.WriteString(fmt.Sprintf("[%s] %s\n", indicator, status.String()))

	if len(findings) == 0 {
		sb.WriteString("  No findings\n\n")
		return
	}

	for _, f := range findings {
		sb.WriteString(fmt.Sprintf("  * %s (%s)\n", f.Type, f.Subtype))
		sb.WriteString(fmt.Sprintf("    Value:      %s\n", f.MaskedValue))
		if f.Location != "" {
			sb.WriteString(fmt.Sprintf("    Location:   %s\n", f.Location))
		}
		sb.WriteString(fmt.Sprintf("    Confidence: %.2f\n", f.Confidence))

		if w.verbose {
			for _, addr := range f.DerivedAddresses {
				sb.WriteString(fmt.Sprintf("    Address:    %s (%s, %s)\n", addr.Address, addr.Type, addr.Path))
			}
			for _, warn := range f.Warnings {
				sb.WriteString(fmt.Sprintf("    Warning:    %s\n", warn))
			}
			for _, e := range f.Errors {
				sb.WriteString(fmt.Sprintf("    Error:      %s\n", e))
			}
		}
	}
	sb.WriteString("\n")
}

// writeFooter writes the report footer.
func (w *SimpleWriter) writeFooter(sb *strings.Builder) {
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	sb.WriteString("Report generated by KeyHound\n")
	sb.WriteString("Matched values are masked; full artifacts never leave memory.\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
}
