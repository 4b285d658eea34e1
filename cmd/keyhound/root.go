// Package main provides the entry point for the KeyHound CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for KeyHound.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keyhound",
		Short: "Find and validate cryptocurrency artifacts in filesystem trees",
		Long: `KeyHound scans files and directories for cryptocurrency artifacts:
private keys, seed phrases, wallet files, and addresses. Discovered
candidates are classified, cryptographically validated, and reported
with their values masked.

Secret material found during a scan is held encrypted in memory and
wiped on exit; it is never written to disk or printed in full.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewScanCmd())
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
