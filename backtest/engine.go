// Package backtest replays a signal series against daily price bars and
// scores the resulting portfolio performance.
//
// The engine holds one all-in long position at a time: it is either flat
// or fully invested. Entries and exits fill at the bar close, whole
// shares only. Commission is charged on both sides.
package backtest

import (
	"fmt"
	"math"

	"github.com/rustyeddy/backtester/market"
)

// Engine replays one signal series over one bar series, producing a
// Ledger. Initial capital and commission rate are fixed at construction.
//
// An engine instance runs once; call Reset (or build a fresh instance)
// to run again. Instances are not safe for concurrent use; concurrent
// callers must use separate engines.
type Engine struct {
	initialCapital float64
	commission     float64

	ledger Ledger
	ran    bool
}

func NewEngine(initialCapital, commission float64) *Engine {
	return &Engine{
		initialCapital: initialCapital,
		commission:     commission,
	}
}

func (e *Engine) InitialCapital() float64 { return e.initialCapital }
func (e *Engine) Commission() float64     { return e.commission }

// Ledger returns the ledger from the completed run, nil before Run.
func (e *Engine) Ledger() Ledger { return e.ledger }

// Reset clears run state so the engine can be reused with the same
// capital and commission settings.
func (e *Engine) Reset() {
	e.ledger = nil
	e.ran = false
}

// Run replays signals against bars bar-by-bar and returns the ledger.
//
// The two series must be equal-length, non-empty, and index-aligned, and
// every close must be positive; otherwise Run fails with ErrInvalidInput
// before touching any state. Bar 0 only seeds the ledger; there is no
// information before it to trade on, so its signal is ignored.
//
// Entry: on a buy signal while flat, buy floor(cash*(1-commission)/close)
// shares at the close and pay commission on the cost. A buy that cannot
// afford a single share is silently ignored. Exit: on a sell signal while
// holding, sell everything at the close, commission deducted from the
// proceeds. Every other signal/position combination is a no-op; signals
// are never queued.
func (e *Engine) Run(signals []market.Signal, bars []market.Bar) (Ledger, error) {
	if e.ran {
		return nil, ErrAlreadyRun
	}
	if err := validateInput(signals, bars); err != nil {
		return nil, err
	}

	cash := e.initialCapital
	quantity := int64(0)

	ledger := make(Ledger, 0, len(bars))
	ledger = append(ledger, Entry{
		Time:  bars[0].Time,
		Cash:  cash,
		Total: cash,
	})

	for i := 1; i < len(bars); i++ {
		sig := signals[i]
		price := bars[i].Close

		switch {
		case sig > 0 && quantity == 0:
			shares := int64(math.Floor(cash * (1 - e.commission) / price))
			if shares >= 1 {
				cost := float64(shares) * price
				fee := cost * e.commission
				cash -= cost + fee
				quantity = shares
			}
			// shares == 0: not enough capital for one share, signal ignored

		case sig < 0 && quantity > 0:
			revenue := float64(quantity) * price
			fee := revenue * e.commission
			cash += revenue - fee
			quantity = 0
		}

		holdings := float64(quantity) * price
		ledger = append(ledger, Entry{
			Time:     bars[i].Time,
			Cash:     cash,
			Holdings: holdings,
			Total:    cash + holdings,
		})
	}

	e.ledger = ledger
	e.ran = true
	return ledger, nil
}

func validateInput(signals []market.Signal, bars []market.Bar) error {
	if len(bars) == 0 {
		return fmt.Errorf("%w: empty price series", ErrInvalidInput)
	}
	if len(signals) != len(bars) {
		return fmt.Errorf("%w: %d signals vs %d bars", ErrInvalidInput, len(signals), len(bars))
	}
	for i, b := range bars {
		if !(b.Close > 0) || math.IsInf(b.Close, 0) || math.IsNaN(b.Close) {
			return fmt.Errorf("%w: bar %d close %v must be positive", ErrInvalidInput, i, b.Close)
		}
	}
	return nil
}
