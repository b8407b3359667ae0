// Package strategies turns bar series into per-bar trade signals.
package strategies

import (
	"fmt"
	"strings"

	"github.com/rustyeddy/backtester/market"
)

// Strategy is the contract every signal source implements: given a bar
// series, produce an index-aligned signal series of the same length.
type Strategy interface {
	Name() string
	Params() map[string]float64
	Signals(bars []market.Bar) ([]market.Signal, error)
}

// ByName constructs a strategy from its name and a parameter map.
// Missing parameters take the strategy's defaults; unknown parameter
// keys are an error so that typos in config files fail loudly.
func ByName(name string, params map[string]float64) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "noop", "none":
		return NoopStrategy{}, nil

	case "momentum":
		return NewMomentum(params)

	case "mean-reversion", "meanreversion", "mean_reversion":
		return NewMeanReversion(params)

	default:
		return nil, fmt.Errorf("unknown strategy %q (supported: noop, momentum, mean-reversion)", name)
	}
}

// take pops a parameter from the map, falling back to def when absent.
func take(params map[string]float64, key string, def float64) float64 {
	if v, ok := params[key]; ok {
		delete(params, key)
		return v
	}
	return def
}

func checkLeftover(name string, params map[string]float64) error {
	for k := range params {
		return fmt.Errorf("%s: unknown parameter %q", name, k)
	}
	return nil
}
