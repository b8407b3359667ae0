package backtest

import (
	"fmt"
	"io"
	"time"
)

// RunInfo carries the run identity printed alongside a metrics record.
type RunInfo struct {
	RunID    string
	Created  time.Time
	Strategy string
	Dataset  string
	Bars     int
	Start    time.Time
	End      time.Time
}

// PrintSummary writes a human-readable report of one backtest run.
func PrintSummary(w io.Writer, info RunInfo, rec Record) {
	fmt.Fprintln(w, "==================================================")
	fmt.Fprintln(w, " Backtest Result")
	fmt.Fprintln(w, "==================================================")

	if info.RunID != "" {
		fmt.Fprintf(w, "Run ID:        %s\n", info.RunID)
	}
	if !info.Created.IsZero() {
		fmt.Fprintf(w, "Created:       %s\n", info.Created.Format(time.RFC3339))
	}
	fmt.Fprintf(w, "Strategy:      %s\n", info.Strategy)
	if info.Dataset != "" {
		fmt.Fprintf(w, "Dataset:       %s\n", info.Dataset)
	}
	if info.Bars > 0 {
		fmt.Fprintf(w, "Bars:          %d\n", info.Bars)
	}
	if !info.Start.IsZero() && !info.End.IsZero() {
		fmt.Fprintf(w, "Period:        %s to %s\n",
			info.Start.Format("2006-01-02"), info.End.Format("2006-01-02"))
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Performance")
	fmt.Fprintln(w, "--------------------------------------------------")
	fmt.Fprintf(w, "Initial:       %.2f\n", rec.InitialCapital)
	fmt.Fprintf(w, "Final Value:   %.2f\n", rec.FinalValue)
	fmt.Fprintf(w, "Total Return:  %.2f%%\n", rec.TotalReturn)
	fmt.Fprintf(w, "CAGR:          %.2f%%\n", rec.CAGR)
	fmt.Fprintf(w, "Max Drawdown:  %.2f%%\n", rec.MaxDrawdown)
	fmt.Fprintf(w, "Sharpe Ratio:  %.2f\n", rec.SharpeRatio)
	fmt.Fprintf(w, "Volatility:    %.2f%%\n", rec.Volatility)

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Trade Statistics")
	fmt.Fprintln(w, "--------------------------------------------------")
	fmt.Fprintf(w, "Trades:        %d\n", rec.Trades.TotalTrades)
	fmt.Fprintf(w, "Wins:          %d\n", rec.Trades.WinningTrades)
	fmt.Fprintf(w, "Losses:        %d\n", rec.Trades.LosingTrades)
	fmt.Fprintf(w, "Win Rate:      %.2f%%\n", rec.Trades.WinRate)

	fmt.Fprintln(w)
}
