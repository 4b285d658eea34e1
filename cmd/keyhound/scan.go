package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/keyhound/keyhound/internal/classify"
	"github.com/keyhound/keyhound/internal/config"
	"github.com/keyhound/keyhound/internal/database"
	"github.com/keyhound/keyhound/internal/log"
	"github.com/keyhound/keyhound/internal/model"
	"github.com/keyhound/keyhound/internal/pipeline"
	"github.com/keyhound/keyhound/internal/report"
	"github.com/keyhound/keyhound/internal/scanner"
	"github.com/keyhound/keyhound/internal/secure"
)

// NewScanCmd creates the scan command.
func NewScanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan <path> [<path>...]",
		Short: "Scan files and directories for cryptocurrency artifacts",
		Long: `Scan walks the given paths looking for cryptocurrency artifacts:

- Private keys (WIF and raw hex)
- BIP39 seed phrases
- Wallet files (wallet.dat, keystores, hardware wallet backups)
- Bitcoin addresses (legacy, segwit, taproot)

Candidates are classified and cryptographically validated: keys are
checked against the secp256k1 curve, seed phrases against the BIP39
checksum, and valid material has its receiving addresses derived.
All matched values are masked in output.

Examples:
  # Scan a directory
  keyhound scan ~/Documents

  # Include hidden files and scan only text files
  keyhound scan --hidden --ext .txt,.md ~/backups

  # Fast pass without cryptographic validation
  keyhound scan --skip-validation /mnt/disk

  # Output a JSON report to a file
  keyhound scan --json -o report.json ~/Documents

Configuration file (.keyhound) example:
  defaults:
    ignorePatterns:
      - node_modules
  targets:
    /home/user/backups:
      includeHidden: true
      maxFileSize: 52428800`,
		Args: cobra.ArbitraryArgs,
		RunE: runScanCmd,
	}

	// Walk behavior flags
	cmd.Flags().Bool("hidden", false,
		"Include hidden files and directories")
	cmd.Flags().Bool("follow-symlinks", false,
		"Follow symbolic links during the walk")
	cmd.Flags().Bool("no-recursive", false,
		"Do not descend into subdirectories")
	cmd.Flags().Int64("max-file-size", config.DefaultMaxFileSize,
		"Maximum file size in bytes to read")
	cmd.Flags().StringSliceP("ext", "E", nil,
		"Only scan content of files with these extensions (e.g. .txt,.dat)")
	cmd.Flags().StringSliceP("ignore", "i", nil,
		"Glob patterns for paths to skip")
	cmd.Flags().StringSlice("include", nil,
		"Glob patterns files must match to be scanned (empty scans all)")

	// Validation flags
	cmd.Flags().IntP("batch", "b", config.DefaultBatchSize,
		"Number of concurrent validations")
	cmd.Flags().Bool("skip-validation", false,
		"Skip cryptographic validation and report candidates as-is")
	cmd.Flags().StringP("network", "n", config.DefaultNetwork,
		"Network symbol for validation (BTC or TBTC)")

	// Output flags
	cmd.Flags().Int("visible", config.DefaultVisibleChars,
		"Characters revealed at each end of masked values (0 masks fully)")
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON report (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown report (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "",
		"Write report to specified file path (creates directories if needed)")

	// Configuration and persistence
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .keyhound in current or home directory)")
	cmd.Flags().Bool("no-save", false,
		"Do not record the scan summary in the history database")
	cmd.Flags().Bool("no-audit", false,
		"Disable the secure store access log")

	return cmd
}

// runScanCmd executes the scan command.
func runScanCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	// Structured logging with secret masking. Even verbose logs must
	// never carry raw artifact text.
	verbose := getVerboseFlag(cmd)
	logger := log.NewSecureLogger(os.Stderr, verbose)
	slog.SetDefault(logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-sigCh:
			logger.Info("received shutdown signal, cancelling...")
			cancel()
		case <-ctx.Done():
		}
	}()

	return runScan(ctx, cfg, logger)
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// buildConfig creates a Config from cobra command flags.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()
	cfg.Verbose = getVerboseFlag(cmd)

	var err error

	hidden, err := cmd.Flags().GetBool("hidden")
	if err != nil {
		return nil, err
	}
	cfg.IncludeHidden = hidden

	cfg.FollowSymlinks, err = cmd.Flags().GetBool("follow-symlinks")
	if err != nil {
		return nil, err
	}

	noRecursive, err := cmd.Flags().GetBool("no-recursive")
	if err != nil {
		return nil, err
	}
	cfg.Recursive = !noRecursive

	cfg.MaxFileSize, err = cmd.Flags().GetInt64("max-file-size")
	if err != nil {
		return nil, err
	}

	cfg.Extensions, err = cmd.Flags().GetStringSlice("ext")
	if err != nil {
		return nil, err
	}

	cfg.IgnorePatterns, err = cmd.Flags().GetStringSlice("ignore")
	if err != nil {
		return nil, err
	}

	cfg.IncludePatterns, err = cmd.Flags().GetStringSlice("include")
	if err != nil {
		return nil, err
	}

	cfg.BatchSize, err = cmd.Flags().GetInt("batch")
	if err != nil {
		return nil, err
	}

	cfg.SkipValidation, err = cmd.Flags().GetBool("skip-validation")
	if err != nil {
		return nil, err
	}

	cfg.Network, err = cmd.Flags().GetString("network")
	if err != nil {
		return nil, err
	}

	cfg.VisibleChars, err = cmd.Flags().GetInt("visible")
	if err != nil {
		return nil, err
	}

	noAudit, err := cmd.Flags().GetBool("no-audit")
	if err != nil {
		return nil, err
	}
	cfg.AuditAccess = !noAudit

	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	// Load per-target profiles from the config file.
	// If the user explicitly specified a config file path, error if not
	// found. If no path was specified, silently use an empty config.
	explicitConfigPath := cfg.ConfigFilePath != ""
	configPath := config.FindConfigFile(cfg.ConfigFilePath)

	if configPath != "" {
		cfg.Profiles, err = config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	} else if explicitConfigPath {
		return nil, fmt.Errorf("configuration file not found: %s", cfg.ConfigFilePath)
	} else {
		cfg.Profiles = &config.File{
			Targets: make(map[string]config.ScanProfile),
		}
	}

	cfg.JSONReport, err = cmd.Flags().GetBool("json")
	if err != nil {
		return nil, err
	}

	cfg.MarkdownReport, err = cmd.Flags().GetBool("markdown")
	if err != nil {
		return nil, err
	}

	cfg.ReportFile, err = cmd.Flags().GetString("output")
	if err != nil {
		return nil, err
	}

	noSave, err := cmd.Flags().GetBool("no-save")
	if err != nil {
		return nil, err
	}
	cfg.SaveToDB = !noSave
	if cfg.SaveToDB {
		cfg.DBDir = config.XDGDataDir()
	}

	cfg.Targets = args

	return cfg, nil
}

// runScan executes the scan.
func runScan(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	currency, ok := model.LookupCurrency(cfg.Network)
	if !ok {
		return fmt.Errorf("unknown network symbol %q", cfg.Network)
	}

	logger.Info("starting scan",
		"targets", cfg.Targets,
		"network", currency.Symbol,
		"batchSize", cfg.BatchSize,
		"saveToDB", cfg.SaveToDB,
	)

	var db *database.HistoryDB
	if cfg.SaveToDB {
		var err error
		db, err = database.Open(cfg.DBDir, database.DefaultOptions())
		if err != nil {
			return fmt.Errorf("failed to open history database: %w", err)
		}
		defer db.Close()
		logger.Debug("history database opened", "dir", cfg.DBDir)
	}

	// All discovered key material lives encrypted in this store until
	// the process exits. The guard wipes it on signals and panics.
	store, err := secure.New(secure.Options{AuditAccess: cfg.AuditAccess})
	if err != nil {
		return fmt.Errorf("failed to create secure store: %w", err)
	}
	guard := secure.NewGuard(logger, store)
	defer guard.Close()
	defer guard.Recover()

	startTime := time.Now().UTC()
	fmt.Printf("Scanning %s...\n", strings.Join(cfg.Targets, ", "))

	matches, summary, err := walkTargets(ctx, cfg, logger)
	if err != nil {
		return err
	}

	artifacts := classify.ClassifyAll(matches)
	for _, a := range artifacts {
		a.Metadata.Currency = currency
	}

	// Take custody of key material before validation so a crash later
	// in the run still clears it through the guard.
	stashSecrets(store, artifacts, logger)

	var results map[string]*model.ValidationResult
	if !cfg.SkipValidation && len(artifacts) > 0 {
		validator := pipeline.NewBatchValidator(
			pipeline.WithConcurrency(cfg.BatchSize),
			pipeline.WithBatchLogger(logger),
		)
		results, err = validator.ValidateBatch(ctx, artifacts)
		if err != nil {
			logger.Warn("validation interrupted", "error", err)
		}
	}

	scanReport := buildReport(cfg, currency, artifacts, results, summary, startTime)

	elapsed := time.Since(startTime)
	fmt.Printf("Scan completed in %s\n", elapsed.Round(time.Millisecond))

	if err := outputReport(cfg, scanReport); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	if db != nil {
		if _, err := db.SaveScan(ctx, scanReport); err != nil {
			logger.Error("failed to save scan summary", "error", err)
		} else {
			logger.Debug("scan summary saved")
		}
	}

	return ctx.Err()
}

// walkTargets walks every target with its merged scan profile and
// aggregates matches and summary counts.
func walkTargets(ctx context.Context, cfg *config.Config, logger *slog.Logger) ([]scanner.Match, scanner.Summary, error) {
	var all []scanner.Match
	var total scanner.Summary

	for _, target := range cfg.Targets {
		profile := cfg.Profiles.GetProfile(target)

		maxSize := cfg.MaxFileSize
		if profile.MaxFileSize > 0 {
			maxSize = profile.MaxFileSize
		}
		extensions := cfg.Extensions
		if len(profile.Extensions) > 0 {
			extensions = profile.Extensions
		}
		ignore := append([]string{}, cfg.IgnorePatterns...)
		ignore = append(ignore, profile.IgnorePatterns...)
		include := append([]string{}, cfg.IncludePatterns...)
		include = append(include, profile.IncludePatterns...)

		walker := scanner.NewWalker(
			scanner.WithMaxFileSize(maxSize),
			scanner.WithExtensions(extensions),
			scanner.WithIncludeHidden(cfg.IncludeHidden || profile.IncludeHidden),
			scanner.WithFollowSymlinks(cfg.FollowSymlinks),
			scanner.WithRecursive(cfg.Recursive),
			scanner.WithIgnorePatterns(ignore),
			scanner.WithIncludePatterns(include),
			scanner.WithWalkerLogger(logger),
		)

		matches, summary, err := walker.Walk(ctx, []string{target}, nil)
		all = append(all, matches...)
		total.ScannedCount += summary.ScannedCount
		total.FoundCount += summary.FoundCount
		if err != nil {
			return all, total, err
		}
	}

	return all, total, nil
}

// stashSecrets encrypts key-bearing artifacts into the secure store.
// Addresses and wallet-file names are not secret and skip custody.
func stashSecrets(store *secure.Store, artifacts []*model.Artifact, logger *slog.Logger) {
	for _, a := range artifacts {
		switch a.Type {
		case model.ArtifactPrivateKey, model.ArtifactSeedPhrase:
		default:
			continue
		}

		buf := []byte(a.Raw)
		if err := store.Store(a.ID, buf); err != nil {
			logger.Error("failed to take custody of artifact",
				"artifact_id", a.ID,
				"artifact_type", a.Type.String(),
				"error", err,
			)
		}
	}
}

// buildReport assembles the masked scan report.
func buildReport(cfg *config.Config, currency model.CryptocurrencyType, artifacts []*model.Artifact, results map[string]*model.ValidationResult, summary scanner.Summary, startTime time.Time) *model.ScanReport {
	findings := make([]model.Finding, 0, len(artifacts))
	for _, a := range artifacts {
		f := model.NewFinding(a, secure.TruncateForDisplay(a.Raw, cfg.VisibleChars))
		if res, ok := results[a.ID]; ok {
			f.Errors = res.Errors
			f.Warnings = res.Warnings
		}
		findings = append(findings, f)
	}

	scanReport := &model.ScanReport{
		Targets:      cfg.Targets,
		Network:      currency.Symbol,
		StartedAt:    startTime,
		FinishedAt:   time.Now().UTC(),
		ScannedFiles: summary.ScannedCount,
		Findings:     findings,
	}
	scanReport.Summary = model.NewScanSummary(scanReport)
	return scanReport
}

// outputReport outputs the scan report in the requested format.
func outputReport(cfg *config.Config, scanReport *model.ScanReport) error {
	var output *os.File
	if cfg.ReportFile != "" {
		dir := filepath.Dir(cfg.ReportFile)
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0750); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
		}

		// 0600: reports carry masked values and file paths that should
		// only be readable by the owner.
		f, err := os.OpenFile(cfg.ReportFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		output = f
	} else {
		output = os.Stdout
	}

	var writer report.Writer
	switch {
	case cfg.JSONReport:
		writer = report.NewFullJSONWriter(output, getVersion(), report.WithPrettyPrint())
	case cfg.MarkdownReport:
		writer = report.NewMarkdownWriter(output)
	default:
		writer = report.NewSimpleWriter(output, report.WithVerbose(cfg.Verbose))
	}

	_, err := writer.Write(scanReport)
	return err
}
