package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() and provide specific
// information about what is wrong with the configuration.
//
// Design decision: We use package-level sentinel errors rather than
// creating new error instances in Validate(). This allows callers to use
// errors.Is() for programmatic error handling while still providing
// human-readable messages.
var (
	// ErrNoTarget is returned when no file or directory to scan is
	// specified.
	ErrNoTarget = errors.New("no target specified: provide a file or directory to scan")

	// ErrInvalidBatchSize is returned when the batch size is not positive.
	// A batch size of zero would mean no concurrent validations,
	// effectively stopping the pipeline.
	ErrInvalidBatchSize = errors.New("invalid batch size: must be positive")

	// ErrInvalidMaxFileSize is returned when the max file size is negative.
	// Use 0 to fall back to the default limit.
	ErrInvalidMaxFileSize = errors.New("invalid max file size: must be non-negative")

	// ErrInvalidVisibleChars is returned when the visible character
	// count for masking is negative. Use 0 to mask values entirely.
	ErrInvalidVisibleChars = errors.New("invalid visible chars: must be non-negative")

	// ErrUnknownNetwork is returned when the network symbol is not
	// supported. Supported symbols are BTC and TBTC.
	ErrUnknownNetwork = errors.New("unknown network: supported symbols are BTC and TBTC")

	// ErrConflictingReportFormats is returned when both --json and
	// --markdown are specified. Only one output format can be used at
	// a time.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --json and --markdown cannot be used together")
)
