// Package journal persists backtest runs: one Run record per completed
// simulation plus its full per-bar ledger.
package journal

import (
	"time"

	"github.com/rustyeddy/backtester/backtest"
)

// Run is the stored record of one completed backtest.
type Run struct {
	RunID    string
	Created  time.Time
	Strategy string
	Params   []byte // strategy params, JSON
	Dataset  string
	Bars     int
	Start    time.Time
	End      time.Time

	InitialCapital float64
	Commission     float64
	RiskFree       float64

	Metrics backtest.Record
}

// Journal records completed runs and their ledgers.
type Journal interface {
	RecordRun(Run) error
	RecordLedger(runID string, ledger backtest.Ledger) error
	Close() error
}
