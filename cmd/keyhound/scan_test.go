package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/keyhound/keyhound/internal/config"
	"github.com/keyhound/keyhound/internal/model"
)

// TestNewScanCmd tests the scan command creation.
func TestNewScanCmd(t *testing.T) {
	t.Parallel()

	cmd := NewScanCmd()

	t.Run("has correct use", func(t *testing.T) {
		t.Parallel()
		if cmd.Use != "scan <path> [<path>...]" {
			t.Errorf("expected use 'scan <path> [<path>...]', got %q", cmd.Use)
		}
	})

	t.Run("has short description", func(t *testing.T) {
		t.Parallel()
		if cmd.Short == "" {
			t.Error("expected non-empty short description")
		}
	})

	t.Run("has expected flags", func(t *testing.T) {
		t.Parallel()

		tests := []struct {
			name      string
			shorthand string
			defValue  string
		}{
			{name: "hidden", defValue: "false"},
			{name: "follow-symlinks", defValue: "false"},
			{name: "no-recursive", defValue: "false"},
			{name: "include", defValue: "[]"},
			{name: "batch", shorthand: "b", defValue: "10"},
			{name: "skip-validation", defValue: "false"},
			{name: "network", shorthand: "n", defValue: "BTC"},
			{name: "visible", defValue: "4"},
			{name: "json", shorthand: "j", defValue: "false"},
			{name: "markdown", shorthand: "m", defValue: "false"},
			{name: "output", shorthand: "o", defValue: ""},
			{name: "config", shorthand: "c", defValue: ""},
			{name: "no-save", defValue: "false"},
			{name: "no-audit", defValue: "false"},
		}

		for _, tt := range tests {
			flag := cmd.Flags().Lookup(tt.name)
			if flag == nil {
				t.Errorf("expected flag %q", tt.name)
				continue
			}
			if flag.Shorthand != tt.shorthand {
				t.Errorf("flag %q: expected shorthand %q, got %q", tt.name, tt.shorthand, flag.Shorthand)
			}
			if flag.DefValue != tt.defValue {
				t.Errorf("flag %q: expected default %q, got %q", tt.name, tt.defValue, flag.DefValue)
			}
		}
	})
}

// TestGetVerboseFlag tests verbose flag retrieval.
func TestGetVerboseFlag(t *testing.T) {
	t.Parallel()

	t.Run("returns false when flag missing", func(t *testing.T) {
		t.Parallel()

		cmd := NewScanCmd()
		if getVerboseFlag(cmd) {
			t.Error("expected false when verbose flag is not defined")
		}
	})

	t.Run("reads persistent flag from root", func(t *testing.T) {
		t.Parallel()

		root := NewRootCmd()
		if err := root.PersistentFlags().Set("verbose", "true"); err != nil {
			t.Fatalf("failed to set verbose flag: %v", err)
		}
		if !getVerboseFlag(root) {
			t.Error("expected true after setting verbose flag")
		}
	})
}

// TestBuildConfig tests config construction from flags.
func TestBuildConfig(t *testing.T) {
	t.Parallel()

	t.Run("defaults", func(t *testing.T) {
		t.Parallel()

		cmd := NewScanCmd()
		if err := cmd.ParseFlags(nil); err != nil {
			t.Fatalf("failed to parse flags: %v", err)
		}

		cfg, err := buildConfig(cmd, []string{"/tmp/scan-target"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !cfg.Recursive {
			t.Error("expected Recursive to default to true")
		}
		if cfg.IncludeHidden {
			t.Error("expected IncludeHidden to default to false")
		}
		if cfg.BatchSize != config.DefaultBatchSize {
			t.Errorf("expected BatchSize %d, got %d", config.DefaultBatchSize, cfg.BatchSize)
		}
		if cfg.MaxFileSize != config.DefaultMaxFileSize {
			t.Errorf("expected MaxFileSize %d, got %d", config.DefaultMaxFileSize, cfg.MaxFileSize)
		}
		if cfg.Network != config.DefaultNetwork {
			t.Errorf("expected Network %q, got %q", config.DefaultNetwork, cfg.Network)
		}
		if !cfg.AuditAccess {
			t.Error("expected AuditAccess to default to true")
		}
		if !cfg.SaveToDB {
			t.Error("expected SaveToDB to default to true")
		}
		if len(cfg.Targets) != 1 || cfg.Targets[0] != "/tmp/scan-target" {
			t.Errorf("unexpected targets: %v", cfg.Targets)
		}
	})

	t.Run("flags override defaults", func(t *testing.T) {
		t.Parallel()

		cmd := NewScanCmd()
		args := []string{
			"--hidden",
			"--no-recursive",
			"--batch", "3",
			"--network", "TBTC",
			"--skip-validation",
			"--no-save",
			"--no-audit",
			"--ext", ".txt,.dat",
			"--ignore", "node_modules",
			"--include", "*.txt,wallet*",
		}
		if err := cmd.ParseFlags(args); err != nil {
			t.Fatalf("failed to parse flags: %v", err)
		}

		cfg, err := buildConfig(cmd, []string{"/tmp/a", "/tmp/b"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !cfg.IncludeHidden {
			t.Error("expected IncludeHidden to be true")
		}
		if cfg.Recursive {
			t.Error("expected Recursive to be false")
		}
		if cfg.BatchSize != 3 {
			t.Errorf("expected BatchSize 3, got %d", cfg.BatchSize)
		}
		if cfg.Network != "TBTC" {
			t.Errorf("expected Network TBTC, got %q", cfg.Network)
		}
		if !cfg.SkipValidation {
			t.Error("expected SkipValidation to be true")
		}
		if cfg.SaveToDB {
			t.Error("expected SaveToDB to be false with --no-save")
		}
		if cfg.AuditAccess {
			t.Error("expected AuditAccess to be false with --no-audit")
		}
		if len(cfg.Extensions) != 2 {
			t.Errorf("expected 2 extensions, got %v", cfg.Extensions)
		}
		if len(cfg.IgnorePatterns) != 1 {
			t.Errorf("expected 1 ignore pattern, got %v", cfg.IgnorePatterns)
		}
		if len(cfg.IncludePatterns) != 2 {
			t.Errorf("expected 2 include patterns, got %v", cfg.IncludePatterns)
		}
		if len(cfg.Targets) != 2 {
			t.Errorf("expected 2 targets, got %v", cfg.Targets)
		}
	})

	t.Run("explicit missing config file errors", func(t *testing.T) {
		t.Parallel()

		cmd := NewScanCmd()
		if err := cmd.ParseFlags([]string{"--config", "/nonexistent/.keyhound"}); err != nil {
			t.Fatalf("failed to parse flags: %v", err)
		}

		_, err := buildConfig(cmd, []string{"/tmp"})
		if err == nil {
			t.Error("expected error for missing explicit config file")
		}
	})
}

// TestBuildConfigWithConfigFile tests loading per-target profiles.
func TestBuildConfigWithConfigFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	configPath := filepath.Join(dir, ".keyhound")
	content := `defaults:
  ignorePatterns:
    - node_modules
targets:
  /home/user/backups:
    includeHidden: true
    maxFileSize: 1024
`
	if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	cmd := NewScanCmd()
	if err := cmd.ParseFlags([]string{"--config", configPath}); err != nil {
		t.Fatalf("failed to parse flags: %v", err)
	}

	cfg, err := buildConfig(cmd, []string{"/home/user/backups"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Profiles == nil {
		t.Fatal("expected profiles to be loaded")
	}
	profile := cfg.Profiles.GetProfile("/home/user/backups")
	if !profile.IncludeHidden {
		t.Error("expected profile IncludeHidden to be true")
	}
	if profile.MaxFileSize != 1024 {
		t.Errorf("expected profile MaxFileSize 1024, got %d", profile.MaxFileSize)
	}
	if len(profile.IgnorePatterns) == 0 {
		t.Error("expected defaults ignore patterns to be merged in")
	}
}

// TestRunScanCmdNoArgs tests that scan without targets fails.
func TestRunScanCmdNoArgs(t *testing.T) {
	t.Parallel()

	root := NewRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"scan"})

	err := root.Execute()
	if err == nil {
		t.Fatal("expected error for scan without targets")
	}
	if !errors.Is(err, config.ErrNoTarget) {
		t.Errorf("expected ErrNoTarget, got %v", err)
	}
}

// TestRunScanCmdConflictingFormats tests the json/markdown exclusion.
func TestRunScanCmdConflictingFormats(t *testing.T) {
	t.Parallel()

	root := NewRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"scan", "--json", "--markdown", t.TempDir()})

	err := root.Execute()
	if err == nil {
		t.Fatal("expected error for conflicting report formats")
	}
	if !errors.Is(err, config.ErrConflictingReportFormats) {
		t.Errorf("expected ErrConflictingReportFormats, got %v", err)
	}
}

// testScanReport builds a minimal report for output tests.
func testScanReport() *model.ScanReport {
	now := time.Now().UTC()
	r := &model.ScanReport{
		Targets:      []string{"/tmp/scan-target"},
		Network:      "BTC",
		StartedAt:    now.Add(-time.Second),
		FinishedAt:   now,
		ScannedFiles: 2,
		Findings: []model.Finding{
			{
				ArtifactID:  "artifact-1",
				Type:        "address",
				Subtype:     "legacy",
				MaskedValue: "1A1z***fNa",
				Location:    "/tmp/scan-target/notes.txt",
				SourceKind:  "file_content",
				Currency:    "BTC",
				Confidence:  0.9,
				Status:      model.StatusValid.String(),
			},
		},
	}
	r.Summary = model.NewScanSummary(r)
	return r
}

// TestOutputReport tests report output to files in each format.
func TestOutputReport(t *testing.T) {
	t.Parallel()

	t.Run("json report to file", func(t *testing.T) {
		t.Parallel()

		cfg := config.NewConfig()
		cfg.JSONReport = true
		cfg.ReportFile = filepath.Join(t.TempDir(), "out", "report.json")

		if err := outputReport(cfg, testScanReport()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		data, err := os.ReadFile(cfg.ReportFile)
		if err != nil {
			t.Fatalf("failed to read report: %v", err)
		}
		if !strings.Contains(string(data), `"version"`) {
			t.Error("expected JSON report to contain version field")
		}
		if !strings.Contains(string(data), "1A1z***fNa") {
			t.Error("expected JSON report to contain the masked value")
		}
	})

	t.Run("markdown report to file", func(t *testing.T) {
		t.Parallel()

		cfg := config.NewConfig()
		cfg.MarkdownReport = true
		cfg.ReportFile = filepath.Join(t.TempDir(), "report.md")

		if err := outputReport(cfg, testScanReport()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		data, err := os.ReadFile(cfg.ReportFile)
		if err != nil {
			t.Fatalf("failed to read report: %v", err)
		}
		if !strings.Contains(string(data), "KeyHound Scan Report") {
			t.Error("expected markdown report header")
		}
	})

	t.Run("report file has restricted permissions", func(t *testing.T) {
		t.Parallel()

		cfg := config.NewConfig()
		cfg.JSONReport = true
		cfg.ReportFile = filepath.Join(t.TempDir(), "report.json")

		if err := outputReport(cfg, testScanReport()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		info, err := os.Stat(cfg.ReportFile)
		if err != nil {
			t.Fatalf("failed to stat report: %v", err)
		}
		if perm := info.Mode().Perm(); perm != 0600 {
			t.Errorf("expected permissions 0600, got %o", perm)
		}
	})
}
