package strategies

import (
	"fmt"

	"github.com/rustyeddy/backtester/indicators"
	"github.com/rustyeddy/backtester/market"
)

// Momentum is a trend-following strategy on an SMA cross: long while the
// short average is above the long average. The signal fires on the
// transition (golden cross buys, death cross sells), not on every bar of
// the trend.
type Momentum struct {
	ShortWindow int
	LongWindow  int
}

// NewMomentum builds a momentum strategy from a parameter map with keys
// short_window and long_window (defaults 20 and 60).
func NewMomentum(params map[string]float64) (*Momentum, error) {
	p := cloneParams(params)
	m := &Momentum{
		ShortWindow: int(take(p, "short_window", 20)),
		LongWindow:  int(take(p, "long_window", 60)),
	}
	if err := checkLeftover("momentum", p); err != nil {
		return nil, err
	}
	if m.ShortWindow <= 0 || m.LongWindow <= 0 {
		return nil, fmt.Errorf("momentum: windows must be positive, got %d/%d", m.ShortWindow, m.LongWindow)
	}
	if m.ShortWindow >= m.LongWindow {
		return nil, fmt.Errorf("momentum: short_window %d must be below long_window %d", m.ShortWindow, m.LongWindow)
	}
	return m, nil
}

func (m *Momentum) Name() string { return "momentum" }

func (m *Momentum) Params() map[string]float64 {
	return map[string]float64{
		"short_window": float64(m.ShortWindow),
		"long_window":  float64(m.LongWindow),
	}
}

func (m *Momentum) Signals(bars []market.Bar) ([]market.Signal, error) {
	if len(bars) == 0 {
		return nil, fmt.Errorf("momentum: empty bar series")
	}

	closes := market.Closes(bars)
	short := indicators.SMA(closes, m.ShortWindow)
	long := indicators.SMA(closes, m.LongWindow)

	// position[i] is 1 while short > long; NaN warmup compares false and
	// stays flat. The signal is the position delta.
	signals := make([]market.Signal, len(bars))
	prev := 0
	for i := range bars {
		pos := 0
		if short[i] > long[i] {
			pos = 1
		}
		signals[i] = market.Signal(pos - prev)
		prev = pos
	}
	return signals, nil
}

func cloneParams(params map[string]float64) map[string]float64 {
	p := make(map[string]float64, len(params))
	for k, v := range params {
		p[k] = v
	}
	return p
}
