package model

// Severity represents the impact level of an operational failure.
// It is carried by security-operation errors so callers can distinguish
// failures that break the secure-custody guarantee from recoverable ones.
//
// Design decision: We use iota-based constants rather than string constants
// for efficiency in comparisons and sorting. The String() method provides
// human-readable output when needed.
type Severity int

const (
	// SeverityLow indicates a failure with minimal impact, such as a
	// failed audit-log append when auditing is best-effort.
	SeverityLow Severity = iota

	// SeverityMedium indicates a failure that degrades a guarantee,
	// such as a record that could not be removed cleanly.
	SeverityMedium

	// SeverityHigh indicates the secure-custody guarantee cannot be
	// upheld, such as an encryption or decryption failure. Callers must
	// treat the affected operation as fatal.
	SeverityHigh
)

// String returns a human-readable representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityLow:
		return "LOW"
	case SeverityMedium:
		return "MEDIUM"
	case SeverityHigh:
		return "HIGH"
	default:
		return "UNKNOWN"
	}
}
