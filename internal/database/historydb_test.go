package database

import (
	"context"
	"testing"
	"time"

	"github.com/keyhound/keyhound/internal/model"
)

// newTestDB creates a HistoryDB in a temporary directory.
func newTestDB(t *testing.T) *HistoryDB {
	t.Helper()
	hdb, err := Open(t.TempDir(), DefaultOptions())
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() {
		if err := hdb.Close(); err != nil {
			t.Errorf("Close failed: %v", err)
		}
	})
	return hdb
}

// testReport builds a report with mixed-status findings.
func testReport() *model.ScanReport {
	now := time.Now().UTC()
	return &model.ScanReport{
		Targets:      []string{"/home/user/docs", "/home/user/backups"},
		Network:      "BTC",
		StartedAt:    now.Add(-time.Minute),
		FinishedAt:   now,
		ScannedFiles: 42,
		Findings: []model.Finding{
			{ArtifactID: "a1", Type: "private_key", MaskedValue: "KwDi...noWn", Status: "VALID"},
			{ArtifactID: "a2", Type: "address", MaskedValue: "1BgG...SAMH", Status: "VALID"},
			{ArtifactID: "a3", Type: "address", MaskedValue: "1AAA...zzzz", Status: "INVALID"},
			{ArtifactID: "a4", Type: "wallet_file", MaskedValue: "wall....dat", Status: "ERROR"},
		},
	}
}

// TestOpenCreatesDatabase tests database creation.
func TestOpenCreatesDatabase(t *testing.T) {
	t.Parallel()

	hdb := newTestDB(t)
	if hdb.dbPath == "" {
		t.Error("expected non-empty database path")
	}
}

// TestOpenWithoutCreate tests that a missing database is rejected when
// creation is disabled.
func TestOpenWithoutCreate(t *testing.T) {
	t.Parallel()

	opts := Options{CreateIfNotExists: false}
	if _, err := Open(t.TempDir(), opts); err == nil {
		t.Error("expected error for missing database")
	}
}

// TestSaveScanAndList tests the save and list round trip.
func TestSaveScanAndList(t *testing.T) {
	t.Parallel()

	hdb := newTestDB(t)
	ctx := context.Background()

	id, err := hdb.SaveScan(ctx, testReport())
	if err != nil {
		t.Fatalf("SaveScan failed: %v", err)
	}
	if id <= 0 {
		t.Errorf("expected positive scan id, got %d", id)
	}

	records, err := hdb.ListScans(ctx, 0)
	if err != nil {
		t.Fatalf("ListScans failed: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 scan record, got %d", len(records))
	}

	record := records[0]
	if record.Network != "BTC" {
		t.Errorf("expected network BTC, got %q", record.Network)
	}
	if len(record.Targets) != 2 {
		t.Errorf("expected 2 targets, got %v", record.Targets)
	}
	if record.ScannedFiles != 42 {
		t.Errorf("expected 42 scanned files, got %d", record.ScannedFiles)
	}
	if record.TotalFindings != 4 {
		t.Errorf("expected 4 findings, got %d", record.TotalFindings)
	}
	if record.StatusCounts["valid"] != 2 {
		t.Errorf("expected 2 valid findings, got %d", record.StatusCounts["valid"])
	}
	if record.StatusCounts["invalid"] != 1 {
		t.Errorf("expected 1 invalid finding, got %d", record.StatusCounts["invalid"])
	}
	if record.TypeCounts["address"] != 2 {
		t.Errorf("expected 2 address findings, got %d", record.TypeCounts["address"])
	}
	if record.StartedAt.IsZero() || record.FinishedAt.IsZero() {
		t.Error("expected non-zero timestamps")
	}
}

// TestSaveScanStoresNoRawText tests that matched text never reaches
// the database file.
func TestSaveScanStoresNoRawText(t *testing.T) {
	t.Parallel()

	hdb := newTestDB(t)
	ctx := context.Background()

	report := testReport()
	report.Findings = append(report.Findings, model.Finding{
		ArtifactID:  "a5",
		Type:        "private_key",
		MaskedValue: "5Hue...vyTJ",
		Status:      "VALID",
	})

	if _, err := hdb.SaveScan(ctx, report); err != nil {
		t.Fatalf("SaveScan failed: %v", err)
	}

	records, err := hdb.ListScans(ctx, 0)
	if err != nil {
		t.Fatalf("ListScans failed: %v", err)
	}

	// Only counts survive; there is no field that could carry the
	// masked value, let alone the raw text.
	if records[0].TypeCounts["private_key"] != 2 {
		t.Errorf("expected 2 private_key findings, got %d", records[0].TypeCounts["private_key"])
	}
}

// TestListScansLimit tests the limit parameter and newest-first order.
func TestListScansLimit(t *testing.T) {
	t.Parallel()

	hdb := newTestDB(t)
	ctx := context.Background()

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	for i := range 3 {
		report := testReport()
		report.StartedAt = base.Add(time.Duration(i) * time.Hour)
		report.FinishedAt = report.StartedAt.Add(time.Minute)
		if _, err := hdb.SaveScan(ctx, report); err != nil {
			t.Fatalf("SaveScan failed: %v", err)
		}
	}

	records, err := hdb.ListScans(ctx, 2)
	if err != nil {
		t.Fatalf("ListScans failed: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records with limit, got %d", len(records))
	}
	if !records[0].StartedAt.After(records[1].StartedAt) {
		t.Error("expected newest scan first")
	}
}

// TestGetScanByID tests lookup by database ID.
func TestGetScanByID(t *testing.T) {
	t.Parallel()

	hdb := newTestDB(t)
	ctx := context.Background()

	id, err := hdb.SaveScan(ctx, testReport())
	if err != nil {
		t.Fatalf("SaveScan failed: %v", err)
	}

	record, err := hdb.GetScanByID(ctx, id)
	if err != nil {
		t.Fatalf("GetScanByID failed: %v", err)
	}
	if record == nil {
		t.Fatal("expected a record")
	}
	if record.ID != id {
		t.Errorf("expected id %d, got %d", id, record.ID)
	}

	missing, err := hdb.GetScanByID(ctx, id+1000)
	if err != nil {
		t.Fatalf("GetScanByID failed for missing id: %v", err)
	}
	if missing != nil {
		t.Error("expected nil for missing id")
	}
}

// TestSaveScanComputesSummary tests that a report without a
// precomputed summary is summarized on save.
func TestSaveScanComputesSummary(t *testing.T) {
	t.Parallel()

	hdb := newTestDB(t)
	ctx := context.Background()

	report := testReport()
	report.Summary = nil

	id, err := hdb.SaveScan(ctx, report)
	if err != nil {
		t.Fatalf("SaveScan failed: %v", err)
	}

	record, err := hdb.GetScanByID(ctx, id)
	if err != nil {
		t.Fatalf("GetScanByID failed: %v", err)
	}
	if record.TotalFindings != 4 {
		t.Errorf("expected computed total of 4, got %d", record.TotalFindings)
	}
}
