package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "trader",
	Short: "An automated intraday equities crossover trading engine",
	Long: `Trader runs the F1/F3/F4 EMA/SMA crossover strategy against a
real-time market-data feed, sizing and submitting orders through a
brokerage REST API, enforcing market-session windows, optionally
banning symbols after losses, and journaling per-symbol trade history.

Complete documentation is available at https://github.com/rustyeddy/crossbar`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}
