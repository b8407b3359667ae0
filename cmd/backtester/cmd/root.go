package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "backtester",
	Short: "A rule-based trading strategy backtester for daily price data",
	Long: `Backtester simulates rule-based trading strategies against historical
daily price series and scores the resulting performance.

It provides tools for:
  - Replaying buy/sell signal series through a cash/position engine
  - Scoring runs (drawdown, CAGR, Sharpe ratio, volatility, win rate)
  - Sweeping strategy parameter grids in parallel
  - Journaling runs and equity ledgers to SQLite or CSV
  - Generating latest-bar signals for a watchlist`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}
