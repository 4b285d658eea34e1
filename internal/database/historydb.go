package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/keyhound/keyhound/internal/model"
)

// HistoryDB provides SQLite-based storage for scan history.
// It manages connection pooling and provides methods for saving and
// querying scan summaries.
//
// Design decision: We use a single database file for all scans rather
// than one file per scan. This keeps history queries trivial and makes
// backup/restore a single-file operation.
type HistoryDB struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Options configures HistoryDB behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging for better concurrent
	// performance. This is recommended for most use cases.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates a HistoryDB at the specified path.
// If CreateIfNotExists is true, the directory and database file are created.
// If CreateIfNotExists is false and the database doesn't exist, an error
// is returned.
func Open(dbDir string, opts Options) (*HistoryDB, error) {
	dbPath := filepath.Join(dbDir, "keyhound.db")

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("database not found at %s (use CreateIfNotExists option to create)", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// modernc.org/sqlite uses its own connection string format.
	// mode=rw prevents creating new files; mode=rwc allows creation.
	var dsn string
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	} else {
		dsn = dbPath + "?mode=rw"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer; multiple connections buy
	// nothing for our write-mostly workload.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	hdb := &HistoryDB{
		db:     db,
		dbPath: dbPath,
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := hdb.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return hdb, nil
}

// Close closes the database connection.
func (hdb *HistoryDB) Close() error {
	return hdb.db.Close()
}

// createTables creates the database schema if it doesn't exist.
// The schema deliberately has no column for matched text: only counts
// and scan metadata are stored.
func (hdb *HistoryDB) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS scans (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		started_at DATETIME NOT NULL,
		finished_at DATETIME NOT NULL,
		network TEXT NOT NULL,
		targets TEXT NOT NULL,
		scanned_files INTEGER DEFAULT 0,
		total_findings INTEGER DEFAULT 0,
		status_counts TEXT,
		type_counts TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_scans_started ON scans(started_at);
	CREATE INDEX IF NOT EXISTS idx_scans_network ON scans(network);
	`

	_, err := hdb.db.ExecContext(context.Background(), schema)
	return err
}

// ScanRecord is a stored scan summary.
type ScanRecord struct {
	// ID is the unique identifier of the scan in the database.
	ID int64

	// StartedAt is when the scan began.
	StartedAt time.Time

	// FinishedAt is when the scan completed.
	FinishedAt time.Time

	// Network is the cryptocurrency network symbol used for validation.
	Network string

	// Targets is the list of scanned paths.
	Targets []string

	// ScannedFiles is the number of files whose content was scanned.
	ScannedFiles int

	// TotalFindings is the number of findings in the scan.
	TotalFindings int

	// StatusCounts maps validation statuses to finding counts.
	StatusCounts map[string]int

	// TypeCounts maps artifact type names to finding counts.
	TypeCounts map[string]int
}

// SaveScan persists a scan report's summary. Findings themselves are
// never written; only their counts survive.
func (hdb *HistoryDB) SaveScan(ctx context.Context, report *model.ScanReport) (int64, error) {
	summary := report.Summary
	if summary == nil {
		summary = model.NewScanSummary(report)
	}

	targetsJSON, err := json.Marshal(report.Targets)
	if err != nil {
		return 0, fmt.Errorf("failed to serialize targets: %w", err)
	}

	statusCounts := map[string]int{
		"valid":   summary.ValidCount,
		"invalid": summary.InvalidCount,
		"error":   summary.ErrorCount,
		"pending": summary.PendingCount,
	}
	statusJSON, _ := json.Marshal(statusCounts) //nolint:errcheck,errchkjson // simple map; Marshal won't fail
	typeJSON, _ := json.Marshal(summary.TypeCounts)

	query := `
	INSERT INTO scans (started_at, finished_at, network, targets, scanned_files, total_findings, status_counts, type_counts)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := hdb.db.ExecContext(ctx, query,
		report.StartedAt.UTC().Format("2006-01-02 15:04:05"),
		report.FinishedAt.UTC().Format("2006-01-02 15:04:05"),
		report.Network,
		string(targetsJSON),
		report.ScannedFiles,
		summary.TotalFindings,
		string(statusJSON),
		string(typeJSON),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to save scan: %w", err)
	}

	return result.LastInsertId()
}

// ListScans returns stored scan summaries, newest first, up to limit.
// A limit of 0 returns everything.
func (hdb *HistoryDB) ListScans(ctx context.Context, limit int) ([]ScanRecord, error) {
	query := `
	SELECT id, started_at, finished_at, network, targets, scanned_files, total_findings, status_counts, type_counts
	FROM scans
	ORDER BY started_at DESC
	`
	args := make([]any, 0, 1)
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := hdb.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list scans: %w", err)
	}
	defer rows.Close()

	var results []ScanRecord
	for rows.Next() {
		record, err := scanRow(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, record)
	}

	return results, rows.Err()
}

// GetScanByID retrieves a stored scan summary by its database ID.
// Returns nil when no scan with that ID exists.
func (hdb *HistoryDB) GetScanByID(ctx context.Context, id int64) (*ScanRecord, error) {
	query := `
	SELECT id, started_at, finished_at, network, targets, scanned_files, total_findings, status_counts, type_counts
	FROM scans
	WHERE id = ?
	`

	rows, err := hdb.db.QueryContext(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get scan: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}

	record, err := scanRow(rows)
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// scanRow reads one ScanRecord from the current row.
func scanRow(rows *sql.Rows) (ScanRecord, error) {
	var record ScanRecord
	var startedAt, finishedAt, targetsJSON string
	var statusJSON, typeJSON sql.NullString

	err := rows.Scan(
		&record.ID,
		&startedAt,
		&finishedAt,
		&record.Network,
		&targetsJSON,
		&record.ScannedFiles,
		&record.TotalFindings,
		&statusJSON,
		&typeJSON,
	)
	if err != nil {
		return ScanRecord{}, fmt.Errorf("failed to scan row: %w", err)
	}

	record.StartedAt = parseTimestamp(startedAt)
	record.FinishedAt = parseTimestamp(finishedAt)

	if err := json.Unmarshal([]byte(targetsJSON), &record.Targets); err != nil {
		return ScanRecord{}, fmt.Errorf("failed to parse targets: %w", err)
	}

	record.StatusCounts = parseCounts(statusJSON)
	record.TypeCounts = parseCounts(typeJSON)

	return record, nil
}

// parseCounts unmarshals a JSON count map, returning an empty map for
// null or malformed values.
func parseCounts(s sql.NullString) map[string]int {
	counts := make(map[string]int)
	if s.Valid && s.String != "" {
		if err := json.Unmarshal([]byte(s.String), &counts); err != nil {
			return make(map[string]int)
		}
	}
	return counts
}

// timestampFormats contains the timestamp formats that SQLite may return.
// The order matters: more specific formats should come first.
var timestampFormats = []string{
	"2006-01-02 15:04:05",     // SQLite default datetime format
	"2006-01-02T15:04:05Z",    // ISO 8601 with Z suffix
	"2006-01-02T15:04:05",     // ISO 8601 without timezone
	time.RFC3339,              // Full RFC3339 format
	time.RFC3339Nano,          // RFC3339 with nanoseconds
	"2006-01-02 15:04:05.999", // SQLite with milliseconds
}

// parseTimestamp attempts to parse a timestamp string using multiple
// formats. SQLite may return timestamps in different formats depending
// on configuration. If parsing fails with all formats, returns zero time.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
