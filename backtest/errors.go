package backtest

import "errors"

var (
	// ErrInvalidInput reports malformed or misaligned engine input: length
	// mismatch, empty series, or non-positive close prices. The run fails
	// before any state mutation; no partial ledger is produced.
	ErrInvalidInput = errors.New("backtest: invalid input")

	// ErrEmptySeries reports a metrics request on an empty ledger or value
	// series. It is fatal to that metric call only.
	ErrEmptySeries = errors.New("backtest: empty series")

	// ErrAlreadyRun reports a second Run on the same engine instance. Use a
	// fresh engine, or Reset, to run again.
	ErrAlreadyRun = errors.New("backtest: engine already ran, Reset before reuse")
)
