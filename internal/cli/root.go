// Package cli implements the plaisir command-line interface using Cobra.
// Each subcommand maps to a bank operation (record, redeem, bonus, etc.).
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "plaisir",
	Short: "plaisir — Caloric reward bank",
	Long: `plaisir turns your daily calorie surpluses into pleasure meals.
Log your days, bank what you save, and spend it guilt-free.

Single node, local SQLite state, JSON API.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command. Called from main.go.
func Execute(version string) {
	rootCmd.Version = version

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
