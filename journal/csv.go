// journal/csv.go
package journal

import (
	"encoding/csv"
	"os"
	"strconv"
	"time"

	"github.com/rustyeddy/backtester/backtest"
)

// CSVJournal appends runs and ledgers to two flat files.
type CSVJournal struct {
	runs   *csv.Writer
	ledger *csv.Writer
	rf, lf *os.File
}

func NewCSV(runsPath, ledgerPath string) (*CSVJournal, error) {
	rf, err := os.Create(runsPath)
	if err != nil {
		return nil, err
	}
	lf, err := os.Create(ledgerPath)
	if err != nil {
		rf.Close()
		return nil, err
	}

	rw := csv.NewWriter(rf)
	lw := csv.NewWriter(lf)

	if err := rw.Write([]string{
		"run_id", "created", "strategy", "dataset", "bars",
		"initial_capital", "commission", "final_value", "total_return",
		"max_drawdown", "cagr", "sharpe_ratio", "volatility",
		"total_trades", "win_rate",
	}); err != nil {
		return nil, err
	}
	if err := lw.Write([]string{"run_id", "time", "cash", "holdings", "total"}); err != nil {
		return nil, err
	}

	rw.Flush()
	if err := rw.Error(); err != nil {
		return nil, err
	}
	lw.Flush()
	if err := lw.Error(); err != nil {
		return nil, err
	}

	return &CSVJournal{runs: rw, ledger: lw, rf: rf, lf: lf}, nil
}

func (j *CSVJournal) RecordRun(r Run) error {
	err := j.runs.Write([]string{
		r.RunID,
		r.Created.Format(time.RFC3339),
		r.Strategy,
		r.Dataset,
		strconv.Itoa(r.Bars),
		f(r.InitialCapital),
		f(r.Commission),
		f(r.Metrics.FinalValue),
		f(r.Metrics.TotalReturn),
		f(r.Metrics.MaxDrawdown),
		f(r.Metrics.CAGR),
		f(r.Metrics.SharpeRatio),
		f(r.Metrics.Volatility),
		strconv.Itoa(r.Metrics.Trades.TotalTrades),
		f(r.Metrics.Trades.WinRate),
	})
	if err != nil {
		return err
	}
	j.runs.Flush()
	return j.runs.Error()
}

func (j *CSVJournal) RecordLedger(runID string, ledger backtest.Ledger) error {
	for _, e := range ledger {
		err := j.ledger.Write([]string{
			runID,
			e.Time.Format(time.RFC3339),
			f(e.Cash),
			f(e.Holdings),
			f(e.Total),
		})
		if err != nil {
			return err
		}
	}
	j.ledger.Flush()
	return j.ledger.Error()
}

func (j *CSVJournal) Close() error {
	j.runs.Flush()
	j.ledger.Flush()
	if err := j.rf.Close(); err != nil {
		j.lf.Close()
		return err
	}
	return j.lf.Close()
}

func f(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
