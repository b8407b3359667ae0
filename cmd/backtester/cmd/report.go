package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/backtester/backtest"
	"github.com/rustyeddy/backtester/journal"
)

var reportCmd = &cobra.Command{
	Use:   "report [run-id]",
	Short: "Print a stored backtest run from the SQLite journal",
	Long: `Report prints the performance report of a journaled run. Without a
run-id it lists the journaled runs ranked by Sharpe ratio.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runReport,
}

var (
	repDBPath  string
	repTop     int
	repOrgPath string
)

func init() {
	rootCmd.AddCommand(reportCmd)

	reportCmd.Flags().StringVarP(&repDBPath, "db", "d", "./backtests.sqlite", "path to SQLite journal DB")
	reportCmd.Flags().IntVar(&repTop, "top", 10, "number of runs to list")
	reportCmd.Flags().StringVar(&repOrgPath, "org", "", "also write an org-mode report to this file")
}

func runReport(cmd *cobra.Command, args []string) error {
	j, err := journal.NewSQLite(repDBPath)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer j.Close()

	if len(args) == 0 {
		return listRuns(j)
	}
	return printRun(j, args[0])
}

func listRuns(j *journal.SQLiteJournal) error {
	runs, err := j.BestBySharpe(repTop)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("No journaled runs.")
		return nil
	}

	fmt.Println("Run ID                      Strategy         Sharpe  Return%  Trades")
	fmt.Println("----------------------------------------------------------------------")
	for _, r := range runs {
		fmt.Printf("%-26s  %-15s %7.2f  %7.2f  %6d\n",
			r.RunID, r.Strategy, r.Metrics.SharpeRatio, r.Metrics.TotalReturn,
			r.Metrics.Trades.TotalTrades)
	}
	return nil
}

func printRun(j *journal.SQLiteJournal, runID string) error {
	r, err := j.GetRun(runID)
	if err != nil {
		return err
	}

	backtest.PrintSummary(os.Stdout, backtest.RunInfo{
		RunID:    r.RunID,
		Created:  r.Created,
		Strategy: r.Strategy,
		Dataset:  r.Dataset,
		Bars:     r.Bars,
		Start:    r.Start,
		End:      r.End,
	}, r.Metrics)

	if repOrgPath != "" {
		f, err := os.Create(repOrgPath)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := journal.WriteOrg(f, r); err != nil {
			return err
		}
		fmt.Printf("Org report: %s\n", repOrgPath)
	}
	return nil
}
