// Package app implements the main application commands.
package app

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "zonekit",
	Short: "zonekit is a canonicalizer and differ for DNS zone data",
	Long: `zonekit reconciles DNS zone data from zone files, zone transfers and
SQL-backed name servers into one canonical, human-legible rendering, and
computes the minimal dynamic-update instruction set between two snapshots.`,
	Args: cobra.OnlyValidArgs,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
