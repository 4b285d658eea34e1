package model

import (
	"time"
)

// Finding is one display-safe scan finding. The matched text is
// carried only in masked form; raw artifact bytes never enter a
// report.
type Finding struct {
	// ArtifactID is the identity of the underlying artifact.
	ArtifactID string `json:"artifact_id"`

	// Type is the artifact type as a string (e.g. "private_key").
	Type string `json:"type"`

	// Subtype is the artifact subtype (e.g. "wif", "bech32").
	Subtype string `json:"subtype,omitempty"`

	// MaskedValue is the matched text with its middle masked out.
	MaskedValue string `json:"masked_value"`

	// Location is the file path or other origin of the finding.
	Location string `json:"location,omitempty"`

	// SourceKind describes how the artifact was found (file content,
	// file name, raw text).
	SourceKind string `json:"source_kind"`

	// Currency is the cryptocurrency symbol the finding belongs to.
	Currency string `json:"currency"`

	// Confidence is the scanner's confidence in [0, 0.95].
	Confidence float64 `json:"confidence"`

	// Status is the validation outcome (PENDING, VALID, INVALID, ERROR).
	Status string `json:"status"`

	// DerivedAddresses holds addresses derived during validation.
	// Addresses are public material and safe to report in full.
	DerivedAddresses []DerivedAddress `json:"derived_addresses,omitempty"`

	// Errors holds validation error messages.
	Errors []string `json:"errors,omitempty"`

	// Warnings holds validation warning messages.
	Warnings []string `json:"warnings,omitempty"`
}

// NewFinding builds a Finding from an artifact and its pre-masked
// display value. Masking is the caller's responsibility so that this
// package never touches raw secret bytes at report time.
func NewFinding(a *Artifact, maskedValue string) Finding {
	return Finding{
		ArtifactID:       a.ID,
		Type:             a.Type.String(),
		Subtype:          a.Subtype,
		MaskedValue:      maskedValue,
		Location:         a.Source.Path,
		SourceKind:       a.Source.Kind.String(),
		Currency:         a.Metadata.Currency.Symbol,
		Confidence:       a.Metadata.Confidence,
		Status:           a.ValidationStatus.String(),
		DerivedAddresses: a.DerivedAddresses,
	}
}

// ScanReport is the complete, display-safe result of one scan run.
type ScanReport struct {
	// Targets is the list of files and directories that were scanned.
	Targets []string `json:"targets"`

	// Network is the cryptocurrency network symbol used for validation.
	Network string `json:"network"`

	// StartedAt is when the scan began.
	StartedAt time.Time `json:"started_at"`

	// FinishedAt is when the scan completed.
	FinishedAt time.Time `json:"finished_at"`

	// ScannedFiles is the number of files whose content was scanned.
	ScannedFiles int `json:"scanned_files"`

	// Findings holds all masked findings from the scan.
	Findings []Finding `json:"findings"`

	// Error is set when the scan terminated abnormally.
	Error string `json:"error,omitempty"`

	// Summary aggregates finding counts. Populated by NewScanSummary.
	Summary *ScanSummary `json:"summary,omitempty"`
}

// ScanSummary aggregates finding counts for quick display and for
// persistence in the scan history database.
type ScanSummary struct {
	// TotalFindings is the number of findings in the report.
	TotalFindings int `json:"total_findings"`

	// ValidCount is the number of findings that passed validation.
	ValidCount int `json:"valid_count"`

	// InvalidCount is the number of findings that failed validation.
	InvalidCount int `json:"invalid_count"`

	// ErrorCount is the number of findings whose validation could not
	// complete.
	ErrorCount int `json:"error_count"`

	// PendingCount is the number of findings never validated
	// (scan-only mode).
	PendingCount int `json:"pending_count"`

	// TypeCounts maps artifact type names to their finding counts.
	TypeCounts map[string]int `json:"type_counts"`
}

// NewScanSummary computes a summary from a report's findings.
func NewScanSummary(r *ScanReport) *ScanSummary {
	s := &ScanSummary{
		TotalFindings: len(r.Findings),
		TypeCounts:    make(map[string]int),
	}
	for _, f := range r.Findings {
		s.TypeCounts[f.Type]++
		switch f.Status {
		case StatusValid.String():
			s.ValidCount++
		case StatusInvalid.String():
			s.InvalidCount++
		case StatusError.String():
			s.ErrorCount++
		default:
			s.PendingCount++
		}
	}
	return s
}

// FindingsByStatus returns all findings with the given validation
// status, in report order.
func (r *ScanReport) FindingsByStatus(status ValidationStatus) []Finding {
	var out []Finding
	for _, f := range r.Findings {
		if f.Status == status.String() {
			out = append(out, f)
		}
	}
	return out
}

// HasFindings reports whether the scan produced any findings.
func (r *ScanReport) HasFindings() bool {
	return len(r.Findings) > 0
}
