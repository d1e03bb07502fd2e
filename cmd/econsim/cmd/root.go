package cmd

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "econsim",
	Short: "An agent-based economic simulator with a double-entry settlement core",
	Long: `Econsim runs an agent-based economy: corporations produce and price
goods, people earn and spend, and every unit of money settles through a
double-entry bank ledger mirrored by a central-bank reserve.

It provides tools for:
  - Running simulations from a YAML/JSON configuration
  - Journaling every ledger entry and per-tick statistics to SQLite or CSV
  - Corporate financial-health forecasting and credit underwriting`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Optional .env for local overrides; missing file is fine.
		_ = godotenv.Load()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}
