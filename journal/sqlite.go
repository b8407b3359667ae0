package journal

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/rustyeddy/backtester/backtest"
)

type SQLiteJournal struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLiteJournal, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		return nil, err
	}

	return &SQLiteJournal{db: db}, nil
}

func (j *SQLiteJournal) RecordRun(r Run) error {
	_, err := j.db.Exec(`
		INSERT INTO runs
		(run_id, created, strategy, params, dataset, bars, start_time, end_time,
		 initial_capital, commission, risk_free,
		 final_value, total_return, max_drawdown, cagr, sharpe_ratio, volatility,
		 total_trades, winning_trades, losing_trades, win_rate)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.RunID, r.Created, r.Strategy, string(r.Params), r.Dataset, r.Bars, r.Start, r.End,
		r.InitialCapital, r.Commission, r.RiskFree,
		r.Metrics.FinalValue, r.Metrics.TotalReturn, r.Metrics.MaxDrawdown,
		r.Metrics.CAGR, r.Metrics.SharpeRatio, r.Metrics.Volatility,
		r.Metrics.Trades.TotalTrades, r.Metrics.Trades.WinningTrades,
		r.Metrics.Trades.LosingTrades, r.Metrics.Trades.WinRate,
	)
	return err
}

func (j *SQLiteJournal) RecordLedger(runID string, ledger backtest.Ledger) error {
	tx, err := j.db.Begin()
	if err != nil {
		return err
	}

	stmt, err := tx.Prepare(`
		INSERT INTO ledger (run_id, time, cash, holdings, total)
		VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()

	for _, e := range ledger {
		if _, err := stmt.Exec(runID, e.Time, e.Cash, e.Holdings, e.Total); err != nil {
			tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

func (j *SQLiteJournal) Close() error {
	return j.db.Close()
}

const runColumns = `run_id, created, strategy, params, dataset, bars, start_time, end_time,
	initial_capital, commission, risk_free,
	final_value, total_return, max_drawdown, cagr, sharpe_ratio, volatility,
	total_trades, winning_trades, losing_trades, win_rate`

func scanRun(row interface{ Scan(...any) error }) (Run, error) {
	var r Run
	var params string
	err := row.Scan(
		&r.RunID, &r.Created, &r.Strategy, &params, &r.Dataset, &r.Bars, &r.Start, &r.End,
		&r.InitialCapital, &r.Commission, &r.RiskFree,
		&r.Metrics.FinalValue, &r.Metrics.TotalReturn, &r.Metrics.MaxDrawdown,
		&r.Metrics.CAGR, &r.Metrics.SharpeRatio, &r.Metrics.Volatility,
		&r.Metrics.Trades.TotalTrades, &r.Metrics.Trades.WinningTrades,
		&r.Metrics.Trades.LosingTrades, &r.Metrics.Trades.WinRate,
	)
	if err != nil {
		return Run{}, err
	}
	r.Params = []byte(params)
	r.Metrics.InitialCapital = r.InitialCapital
	return r, nil
}

// GetRun returns a single run record by ID.
func (j *SQLiteJournal) GetRun(runID string) (Run, error) {
	row := j.db.QueryRow(`SELECT `+runColumns+` FROM runs WHERE run_id = ?`, runID)
	r, err := scanRun(row)
	if err == sql.ErrNoRows {
		return Run{}, fmt.Errorf("run %q not found", runID)
	}
	return r, err
}

// ListRuns returns all runs, newest first.
func (j *SQLiteJournal) ListRuns() ([]Run, error) {
	rows, err := j.db.Query(`SELECT ` + runColumns + ` FROM runs ORDER BY created DESC, run_id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// BestBySharpe returns the top n runs ranked by Sharpe ratio.
func (j *SQLiteJournal) BestBySharpe(n int) ([]Run, error) {
	rows, err := j.db.Query(`SELECT `+runColumns+` FROM runs ORDER BY sharpe_ratio DESC LIMIT ?`, n)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// LedgerForRun loads the stored ledger rows for a run, in time order.
func (j *SQLiteJournal) LedgerForRun(runID string) (backtest.Ledger, error) {
	rows, err := j.db.Query(`
		SELECT time, cash, holdings, total
		FROM ledger
		WHERE run_id = ?
		ORDER BY time ASC`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out backtest.Ledger
	for rows.Next() {
		var e backtest.Entry
		if err := rows.Scan(&e.Time, &e.Cash, &e.Holdings, &e.Total); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
