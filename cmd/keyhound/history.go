package main

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/keyhound/keyhound/internal/config"
	"github.com/keyhound/keyhound/internal/database"
)

// NewHistoryCmd creates the history command.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recorded scan summaries",
		Long: `History lists scan summaries recorded in the local database.

Only masked summaries are stored: timestamps, targets, file counts,
and per-type finding counts. Raw artifact text never reaches the
database, so history output is always safe to share.

Examples:
  # Show recent scans
  keyhound history

  # Show the last 5 scans as JSON
  keyhound history --limit 5 --json

  # Show one scan by id
  keyhound history --id 12`,
		RunE: runHistoryCmd,
	}

	cmd.Flags().IntP("limit", "l", 20, "Maximum number of scans to show (0 for all)")
	cmd.Flags().Int64("id", 0, "Show a single scan by database id")
	cmd.Flags().BoolP("json", "j", false, "Output JSON instead of a table")
	cmd.Flags().String("db-dir", "", "History database directory (default: XDG data directory)")

	return cmd
}

// runHistoryCmd executes the history command.
func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	limit, err := cmd.Flags().GetInt("limit")
	if err != nil {
		return err
	}
	id, err := cmd.Flags().GetInt64("id")
	if err != nil {
		return err
	}
	asJSON, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}
	dbDir, err := cmd.Flags().GetString("db-dir")
	if err != nil {
		return err
	}
	if dbDir == "" {
		dbDir = config.XDGDataDir()
	}

	db, err := database.Open(dbDir, database.Options{CreateIfNotExists: false, EnableWAL: true})
	if err != nil {
		return fmt.Errorf("no scan history found (run a scan first): %w", err)
	}
	defer db.Close()

	ctx := cmd.Context()

	if id > 0 {
		record, err := db.GetScanByID(ctx, id)
		if err != nil {
			return err
		}
		if record == nil {
			return fmt.Errorf("no scan with id %d", id)
		}
		return writeRecords(cmd, []database.ScanRecord{*record}, asJSON)
	}

	records, err := db.ListScans(ctx, limit)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No scans recorded yet.")
		return nil
	}
	return writeRecords(cmd, records, asJSON)
}

// writeRecords outputs scan records as JSON or a plain table.
func writeRecords(cmd *cobra.Command, records []database.ScanRecord, asJSON bool) error {
	out := cmd.OutOrStdout()

	if asJSON {
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		return encoder.Encode(records)
	}

	fmt.Fprintf(out, "%-5s %-20s %-8s %-6s %-9s %s\n",
		"ID", "STARTED", "NETWORK", "FILES", "FINDINGS", "TARGETS")
	for _, r := range records {
		fmt.Fprintf(out, "%-5d %-20s %-8s %-6d %-9d %s\n",
			r.ID,
			r.StartedAt.Format("2006-01-02 15:04:05"),
			r.Network,
			r.ScannedFiles,
			r.TotalFindings,
			strings.Join(r.Targets, ", "),
		)
		if len(r.TypeCounts) > 0 {
			fmt.Fprintf(out, "      by type: %s\n", formatCounts(r.TypeCounts))
		}
	}
	return nil
}

// formatCounts renders a count map as "key=1 key2=3" in sorted order.
func formatCounts(counts map[string]int) string {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%d", k, counts[k]))
	}
	return strings.Join(parts, " ")
}
