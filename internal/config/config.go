package config

import (
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
)

// Default configuration values.
const (
	// DefaultBatchSize of 10 concurrent validations balances throughput
	// with resource usage. Validation is CPU-bound curve arithmetic, so
	// values far above the core count buy nothing.
	DefaultBatchSize = 10

	// DefaultMaxFileSize limits the size of files read during scanning.
	// 10MB covers text files, notes, and exported wallet dumps while
	// keeping memory bounded when a scan wanders into large binaries.
	DefaultMaxFileSize = 10 * 1024 * 1024 // 10MB

	// DefaultVisibleChars is the number of characters revealed at each
	// end of a masked artifact in reports and terminal output. Four
	// characters are enough to recognize a finding without disclosing
	// usable key material.
	DefaultVisibleChars = 4

	// DefaultNetwork selects the Bitcoin network used for validation
	// and address derivation.
	DefaultNetwork = "BTC"

	// AppName is the application name used for XDG directory paths.
	AppName = "keyhound"
)

// Config holds all configuration options for KeyHound.
// This struct is designed to be populated from CLI flags and passed
// through the application via dependency injection rather than global
// state.
//
// Design decision: We use a single flat struct instead of nested
// structs (e.g., ScanConfig, ReportConfig) for simplicity. The number
// of options is manageable, and nesting would add complexity without
// significant benefit.
type Config struct {
	// Targets is the list of files and directories to scan.
	// Must contain at least one path.
	Targets []string

	// Recursive enables descending into subdirectories of target
	// directories. Defaults to true.
	Recursive bool

	// IncludeHidden enables scanning dot-files and dot-directories.
	// Hidden paths often hold the most interesting material
	// (~/.electrum, ~/.bitcoin) but are skipped by default to keep
	// casual scans fast and predictable.
	IncludeHidden bool

	// FollowSymlinks enables following symbolic links during the walk.
	// Disabled by default to avoid cycles and scanning outside the
	// requested tree.
	FollowSymlinks bool

	// MaxFileSize is the maximum file size in bytes to read during
	// scanning. Files larger than this are skipped. Set to 0 to use
	// the default (10MB).
	MaxFileSize int64

	// Extensions restricts content scanning to files with the given
	// extensions (e.g., ".txt", ".dat"). Empty means scan every file
	// that passes the other filters. File-name classification runs
	// regardless.
	Extensions []string

	// IgnorePatterns are glob patterns for paths to skip during
	// scanning (e.g., "node_modules", "*.log").
	IgnorePatterns []string

	// IncludePatterns are glob patterns files must match to be scanned.
	// Empty means every file is eligible.
	IncludePatterns []string

	// BatchSize is the number of concurrent artifact validations.
	BatchSize int

	// SkipValidation disables cryptographic validation and address
	// derivation, reporting classified artifacts as-is. Useful for a
	// fast first pass over a large tree.
	SkipValidation bool

	// Network selects the cryptocurrency network for validation,
	// by symbol ("BTC" or "TBTC").
	Network string

	// VisibleChars is the number of characters revealed at each end of
	// masked artifact values in output. Artifacts are never printed in
	// full.
	VisibleChars int

	// AuditAccess enables the secure store's in-memory access log.
	AuditAccess bool

	// Verbose enables detailed log output using slog.LevelDebug.
	// When false, only warnings and errors are logged.
	Verbose bool

	// ConfigFilePath is the path to the configuration file.
	// If empty, the tool searches for .keyhound in the current
	// directory and then in the user's home directory.
	ConfigFilePath string

	// Profiles holds per-directory scan profiles loaded from the
	// config file. This is populated by LoadConfigFile and consulted
	// when scanning each target.
	Profiles *File

	// JSONReport enables JSON report output instead of human-readable
	// format. Mutually exclusive with MarkdownReport.
	JSONReport bool

	// MarkdownReport enables Markdown report output instead of
	// human-readable format. Mutually exclusive with JSONReport.
	MarkdownReport bool

	// ReportFile is the output file path for the report.
	// When set, the report is written to this file instead of stdout.
	// Directories are created automatically if they don't exist.
	ReportFile string

	// DBDir is the directory path for storing the scan history
	// database. When set, masked scan summaries are saved for
	// historical comparison. When empty, nothing is persisted.
	// Defaults to the XDG data directory.
	DBDir string

	// SaveToDB indicates whether to save scan summaries to the
	// database. This is automatically set to true when DBDir is
	// configured.
	SaveToDB bool
}

// NewConfig creates a new Config with default values.
// All fields are set to safe, sensible defaults that work for most
// use cases. Users can override specific values after creation.
//
// Design decision: We use a constructor function instead of relying on
// zero values because many defaults are non-zero (e.g., batch size,
// file size limit). This also serves as documentation of what the
// defaults are.
func NewConfig() *Config {
	return &Config{
		Recursive:    true,
		MaxFileSize:  DefaultMaxFileSize,
		BatchSize:    DefaultBatchSize,
		Network:      DefaultNetwork,
		VisibleChars: DefaultVisibleChars,
		AuditAccess:  true,
	}
}

// XDGDataDir returns the XDG data directory for KeyHound.
// On Linux: ~/.local/share/keyhound
// On macOS: ~/Library/Application Support/keyhound
// On Windows: %LOCALAPPDATA%\keyhound
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for KeyHound.
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// XDGCacheDir returns the XDG cache directory for KeyHound.
func XDGCacheDir() string {
	return filepath.Join(xdg.CacheHome, AppName)
}

// Validate checks if the configuration is valid.
// It returns a specific error describing what is invalid.
//
// Design decision: We validate at the config level rather than at each
// point of use to fail fast and provide clear error messages upfront.
// This is called once after CLI parsing, before any scanning begins.
//
// We chose to return the first error found rather than collecting all
// errors because fixing one error often makes others irrelevant.
func (c *Config) Validate() error {
	// We must have at least one path to scan
	if len(c.Targets) == 0 {
		return ErrNoTarget
	}

	// BatchSize must be positive; zero would mean no validation
	if c.BatchSize <= 0 {
		return ErrInvalidBatchSize
	}

	// MaxFileSize must be non-negative; 0 means use the default
	if c.MaxFileSize < 0 {
		return ErrInvalidMaxFileSize
	}

	// VisibleChars must be non-negative; 0 masks everything
	if c.VisibleChars < 0 {
		return ErrInvalidVisibleChars
	}

	// Network must be one of the supported symbols
	switch strings.ToUpper(c.Network) {
	case "BTC", "TBTC":
	default:
		return ErrUnknownNetwork
	}

	// JSONReport and MarkdownReport are mutually exclusive
	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}

	return nil
}
