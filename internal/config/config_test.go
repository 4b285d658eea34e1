package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// TestNewConfig verifies that NewConfig returns a Config with all
// expected default values. This ensures that changes to defaults are
// intentional (tests will fail if defaults change unexpectedly).
func TestNewConfig(t *testing.T) {
	t.Parallel()

	cfg := NewConfig()

	t.Run("default Recursive is true", func(t *testing.T) {
		t.Parallel()
		if !cfg.Recursive {
			t.Error("expected Recursive to be true")
		}
	})

	t.Run("default MaxFileSize is 10MB", func(t *testing.T) {
		t.Parallel()
		if cfg.MaxFileSize != 10*1024*1024 {
			t.Errorf("expected MaxFileSize to be 10MB, got %d", cfg.MaxFileSize)
		}
	})

	t.Run("default BatchSize is 10", func(t *testing.T) {
		t.Parallel()
		if cfg.BatchSize != 10 {
			t.Errorf("expected BatchSize to be 10, got %d", cfg.BatchSize)
		}
	})

	t.Run("default Network is BTC", func(t *testing.T) {
		t.Parallel()
		if cfg.Network != "BTC" {
			t.Errorf("expected Network to be BTC, got %q", cfg.Network)
		}
	})

	t.Run("default VisibleChars is 4", func(t *testing.T) {
		t.Parallel()
		if cfg.VisibleChars != 4 {
			t.Errorf("expected VisibleChars to be 4, got %d", cfg.VisibleChars)
		}
	})

	t.Run("default IncludeHidden is false", func(t *testing.T) {
		t.Parallel()
		if cfg.IncludeHidden {
			t.Error("expected IncludeHidden to be false")
		}
	})

	t.Run("default AuditAccess is true", func(t *testing.T) {
		t.Parallel()
		if !cfg.AuditAccess {
			t.Error("expected AuditAccess to be true")
		}
	})
}

// TestConfigValidate tests the Validate method with various configurations.
// Each test case is designed to test one specific validation rule.
func TestConfigValidate(t *testing.T) {
	t.Parallel()

	// validConfig returns a minimal valid configuration.
	// Tests modify specific fields to test validation rules.
	validConfig := func() *Config {
		cfg := NewConfig()
		cfg.Targets = []string{"/tmp/scan-target"}
		return cfg
	}

	t.Run("valid config returns nil", func(t *testing.T) {
		t.Parallel()
		if err := validConfig().Validate(); err != nil {
			t.Errorf("expected no error, got %v", err)
		}
	})

	t.Run("multiple targets is valid", func(t *testing.T) {
		t.Parallel()
		cfg := validConfig()
		cfg.Targets = []string{"/a", "/b", "/c"}

		if err := cfg.Validate(); err != nil {
			t.Errorf("expected no error, got %v", err)
		}
	})

	t.Run("empty targets returns ErrNoTarget", func(t *testing.T) {
		t.Parallel()
		cfg := validConfig()
		cfg.Targets = nil

		if err := cfg.Validate(); !errors.Is(err, ErrNoTarget) {
			t.Errorf("expected ErrNoTarget, got %v", err)
		}
	})

	t.Run("zero batch size returns ErrInvalidBatchSize", func(t *testing.T) {
		t.Parallel()
		cfg := validConfig()
		cfg.BatchSize = 0

		if err := cfg.Validate(); !errors.Is(err, ErrInvalidBatchSize) {
			t.Errorf("expected ErrInvalidBatchSize, got %v", err)
		}
	})

	t.Run("negative max file size returns ErrInvalidMaxFileSize", func(t *testing.T) {
		t.Parallel()
		cfg := validConfig()
		cfg.MaxFileSize = -1

		if err := cfg.Validate(); !errors.Is(err, ErrInvalidMaxFileSize) {
			t.Errorf("expected ErrInvalidMaxFileSize, got %v", err)
		}
	})

	t.Run("negative visible chars returns ErrInvalidVisibleChars", func(t *testing.T) {
		t.Parallel()
		cfg := validConfig()
		cfg.VisibleChars = -1

		if err := cfg.Validate(); !errors.Is(err, ErrInvalidVisibleChars) {
			t.Errorf("expected ErrInvalidVisibleChars, got %v", err)
		}
	})

	t.Run("zero visible chars is valid", func(t *testing.T) {
		t.Parallel()
		cfg := validConfig()
		cfg.VisibleChars = 0

		if err := cfg.Validate(); err != nil {
			t.Errorf("expected no error, got %v", err)
		}
	})

	t.Run("unknown network returns ErrUnknownNetwork", func(t *testing.T) {
		t.Parallel()
		cfg := validConfig()
		cfg.Network = "DOGE"

		if err := cfg.Validate(); !errors.Is(err, ErrUnknownNetwork) {
			t.Errorf("expected ErrUnknownNetwork, got %v", err)
		}
	})

	t.Run("lowercase network symbol is valid", func(t *testing.T) {
		t.Parallel()
		cfg := validConfig()
		cfg.Network = "tbtc"

		if err := cfg.Validate(); err != nil {
			t.Errorf("expected no error, got %v", err)
		}
	})

	t.Run("json and markdown both enabled returns ErrConflictingReportFormats", func(t *testing.T) {
		t.Parallel()
		cfg := validConfig()
		cfg.JSONReport = true
		cfg.MarkdownReport = true

		if err := cfg.Validate(); !errors.Is(err, ErrConflictingReportFormats) {
			t.Errorf("expected ErrConflictingReportFormats, got %v", err)
		}
	})

	t.Run("json only is valid", func(t *testing.T) {
		t.Parallel()
		cfg := validConfig()
		cfg.JSONReport = true

		if err := cfg.Validate(); err != nil {
			t.Errorf("expected no error, got %v", err)
		}
	})

	t.Run("markdown only is valid", func(t *testing.T) {
		t.Parallel()
		cfg := validConfig()
		cfg.MarkdownReport = true

		if err := cfg.Validate(); err != nil {
			t.Errorf("expected no error, got %v", err)
		}
	})
}

// TestFileGetProfile tests the GetProfile method.
func TestFileGetProfile(t *testing.T) {
	t.Parallel()

	t.Run("returns defaults when target not found", func(t *testing.T) {
		t.Parallel()

		file := &File{
			Defaults: ScanProfile{
				MaxFileSize:    1024,
				IgnorePatterns: []string{"*.log"},
			},
			Targets: map[string]ScanProfile{},
		}

		p := file.GetProfile("/unknown")
		if p.MaxFileSize != 1024 {
			t.Errorf("expected max file size 1024, got %d", p.MaxFileSize)
		}
		if len(p.IgnorePatterns) != 1 || p.IgnorePatterns[0] != "*.log" {
			t.Errorf("expected default ignore patterns, got %v", p.IgnorePatterns)
		}
	})

	t.Run("returns target-specific profile", func(t *testing.T) {
		t.Parallel()

		file := &File{
			Defaults: ScanProfile{
				MaxFileSize: 1024,
			},
			Targets: map[string]ScanProfile{
				"/backups": {
					MaxFileSize:   4096,
					IncludeHidden: true,
				},
			},
		}

		p := file.GetProfile("/backups")
		if p.MaxFileSize != 4096 {
			t.Errorf("expected max file size 4096, got %d", p.MaxFileSize)
		}
		if !p.IncludeHidden {
			t.Error("expected IncludeHidden true")
		}
	})

	t.Run("zero max file size uses default", func(t *testing.T) {
		t.Parallel()

		file := &File{
			Defaults: ScanProfile{
				MaxFileSize: 2048,
			},
			Targets: map[string]ScanProfile{
				"/docs": {
					Extensions: []string{".txt"}, // no size specified
				},
			},
		}

		p := file.GetProfile("/docs")
		if p.MaxFileSize != 2048 {
			t.Errorf("expected default max file size 2048, got %d", p.MaxFileSize)
		}
		if len(p.Extensions) != 1 || p.Extensions[0] != ".txt" {
			t.Errorf("expected target extensions, got %v", p.Extensions)
		}
	})

	t.Run("target patterns override defaults", func(t *testing.T) {
		t.Parallel()

		file := &File{
			Defaults: ScanProfile{
				IgnorePatterns: []string{"*.bak"},
			},
			Targets: map[string]ScanProfile{
				"/src": {
					IgnorePatterns: []string{"vendor", "node_modules"},
				},
			},
		}

		p := file.GetProfile("/src")
		if len(p.IgnorePatterns) != 2 {
			t.Errorf("expected target ignore patterns, got %v", p.IgnorePatterns)
		}
	})

	t.Run("target include patterns override defaults", func(t *testing.T) {
		t.Parallel()

		file := &File{
			Defaults: ScanProfile{
				IncludePatterns: []string{"*.txt"},
			},
			Targets: map[string]ScanProfile{
				"/backups": {
					IncludePatterns: []string{"wallet*", "*.dat"},
				},
			},
		}

		p := file.GetProfile("/backups")
		if len(p.IncludePatterns) != 2 {
			t.Errorf("expected target include patterns, got %v", p.IncludePatterns)
		}

		p = file.GetProfile("/other")
		if len(p.IncludePatterns) != 1 || p.IncludePatterns[0] != "*.txt" {
			t.Errorf("expected default include patterns, got %v", p.IncludePatterns)
		}
	})

	t.Run("nil targets map", func(t *testing.T) {
		t.Parallel()

		file := &File{
			Defaults: ScanProfile{MaxFileSize: 512},
		}

		p := file.GetProfile("/any")
		if p.MaxFileSize != 512 {
			t.Errorf("expected max file size 512, got %d", p.MaxFileSize)
		}
	})
}

// TestLoadConfigFile tests the LoadConfigFile function.
func TestLoadConfigFile(t *testing.T) {
	t.Parallel()

	t.Run("returns ErrConfigNotFound for non-existent file", func(t *testing.T) {
		t.Parallel()

		cfg, err := LoadConfigFile("/nonexistent/path/.keyhound")
		if !errors.Is(err, ErrConfigNotFound) {
			t.Fatalf("expected ErrConfigNotFound, got: %v", err)
		}
		if cfg != nil {
			t.Error("expected nil config when file not found")
		}
	})

	t.Run("loads valid YAML config", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, ".keyhound")

		content := `defaults:
  maxFileSize: 1048576
  ignorePatterns:
    - "*.log"
targets:
  /backups:
    maxFileSize: 5242880
    includeHidden: true
    extensions:
      - ".dat"
      - ".txt"
`
		if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		cfg, err := LoadConfigFile(configPath)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if cfg.Defaults.MaxFileSize != 1048576 {
			t.Errorf("expected default max file size 1048576, got %d", cfg.Defaults.MaxFileSize)
		}
		if len(cfg.Defaults.IgnorePatterns) != 1 {
			t.Errorf("expected 1 default ignore pattern, got %d", len(cfg.Defaults.IgnorePatterns))
		}

		target, ok := cfg.Targets["/backups"]
		if !ok {
			t.Fatal("expected /backups in targets")
		}
		if target.MaxFileSize != 5242880 {
			t.Errorf("expected target max file size 5242880, got %d", target.MaxFileSize)
		}
		if !target.IncludeHidden {
			t.Error("expected includeHidden true")
		}
		if len(target.Extensions) != 2 {
			t.Errorf("expected 2 extensions, got %d", len(target.Extensions))
		}
	})

	t.Run("returns error for invalid YAML", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, ".keyhound")

		if err := os.WriteFile(configPath, []byte(`invalid: yaml: content: [}`), 0600); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		if _, err := LoadConfigFile(configPath); err == nil {
			t.Error("expected error for invalid YAML")
		}
	})

	t.Run("initializes nil Targets map", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, ".keyhound")

		content := `defaults:
  maxFileSize: 1024
`
		if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		cfg, err := LoadConfigFile(configPath)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.Targets == nil {
			t.Error("expected Targets map to be initialized")
		}
	})
}

// TestFindConfigFile tests the FindConfigFile function.
func TestFindConfigFile(t *testing.T) {
	t.Run("returns explicit path if exists", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "custom.yaml")

		if err := os.WriteFile(configPath, []byte("defaults: {}"), 0600); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		if result := FindConfigFile(configPath); result != configPath {
			t.Errorf("expected %q, got %q", configPath, result)
		}
	})

	t.Run("returns empty for non-existent explicit path", func(t *testing.T) {
		if result := FindConfigFile("/nonexistent/path/config.yaml"); result != "" {
			t.Errorf("expected empty string, got %q", result)
		}
	})

	t.Run("returns empty when no config found", func(_ *testing.T) {
		// This may or may not find a config depending on the system.
		// Just ensure it doesn't panic.
		_ = FindConfigFile("")
	})
}

// TestXDGDirs tests XDG directory functions.
func TestXDGDirs(t *testing.T) {
	t.Parallel()

	t.Run("XDGDataDir returns non-empty path", func(t *testing.T) {
		t.Parallel()
		if XDGDataDir() == "" {
			t.Error("expected non-empty XDG data dir")
		}
	})

	t.Run("XDGConfigDir returns non-empty path", func(t *testing.T) {
		t.Parallel()
		if XDGConfigDir() == "" {
			t.Error("expected non-empty XDG config dir")
		}
	})

	t.Run("XDGCacheDir returns non-empty path", func(t *testing.T) {
		t.Parallel()
		if XDGCacheDir() == "" {
			t.Error("expected non-empty XDG cache dir")
		}
	})
}
