// journal/schema.go
package journal

const Schema = `
CREATE TABLE IF NOT EXISTS runs (
	run_id TEXT PRIMARY KEY,
	created DATETIME NOT NULL,
	strategy TEXT NOT NULL,
	params TEXT NOT NULL,
	dataset TEXT NOT NULL,
	bars INTEGER NOT NULL,
	start_time DATETIME NOT NULL,
	end_time DATETIME NOT NULL,
	initial_capital REAL NOT NULL,
	commission REAL NOT NULL,
	risk_free REAL NOT NULL,
	final_value REAL NOT NULL,
	total_return REAL NOT NULL,
	max_drawdown REAL NOT NULL,
	cagr REAL NOT NULL,
	sharpe_ratio REAL NOT NULL,
	volatility REAL NOT NULL,
	total_trades INTEGER NOT NULL,
	winning_trades INTEGER NOT NULL,
	losing_trades INTEGER NOT NULL,
	win_rate REAL NOT NULL
);

CREATE TABLE IF NOT EXISTS ledger (
	run_id TEXT NOT NULL,
	time DATETIME NOT NULL,
	cash REAL NOT NULL,
	holdings REAL NOT NULL,
	total REAL NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_ledger_run ON ledger(run_id, time);
`
