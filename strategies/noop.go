package strategies

import "github.com/rustyeddy/backtester/market"

// NoopStrategy holds everywhere. Useful as a buy-nothing baseline.
type NoopStrategy struct{}

func (NoopStrategy) Name() string { return "noop" }

func (NoopStrategy) Params() map[string]float64 { return nil }

func (NoopStrategy) Signals(bars []market.Bar) ([]market.Signal, error) {
	return make([]market.Signal, len(bars)), nil
}
