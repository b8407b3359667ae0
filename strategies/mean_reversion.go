package strategies

import (
	"fmt"

	"github.com/rustyeddy/backtester/indicators"
	"github.com/rustyeddy/backtester/market"
)

// MeanReversion buys oversold bars and sells overbought bars using RSI
// thresholds: +1 below the oversold level, -1 above the overbought
// level. StopLevels exposes an ATR-based stop-loss series for reporting;
// the engine itself does not consume stops.
type MeanReversion struct {
	RSIPeriod     int
	Oversold      float64
	Overbought    float64
	ATRPeriod     int
	ATRMultiplier float64
}

// NewMeanReversion builds a mean-reversion strategy from a parameter map
// with keys rsi_period, rsi_oversold, rsi_overbought, atr_period and
// atr_multiplier (defaults 14, 30, 70, 14, 2.0).
func NewMeanReversion(params map[string]float64) (*MeanReversion, error) {
	p := cloneParams(params)
	m := &MeanReversion{
		RSIPeriod:     int(take(p, "rsi_period", 14)),
		Oversold:      take(p, "rsi_oversold", 30),
		Overbought:    take(p, "rsi_overbought", 70),
		ATRPeriod:     int(take(p, "atr_period", 14)),
		ATRMultiplier: take(p, "atr_multiplier", 2.0),
	}
	if err := checkLeftover("mean-reversion", p); err != nil {
		return nil, err
	}
	if m.RSIPeriod <= 0 || m.ATRPeriod <= 0 {
		return nil, fmt.Errorf("mean-reversion: periods must be positive")
	}
	if m.Oversold >= m.Overbought {
		return nil, fmt.Errorf("mean-reversion: oversold %v must be below overbought %v", m.Oversold, m.Overbought)
	}
	return m, nil
}

func (m *MeanReversion) Name() string { return "mean-reversion" }

func (m *MeanReversion) Params() map[string]float64 {
	return map[string]float64{
		"rsi_period":     float64(m.RSIPeriod),
		"rsi_oversold":   m.Oversold,
		"rsi_overbought": m.Overbought,
		"atr_period":     float64(m.ATRPeriod),
		"atr_multiplier": m.ATRMultiplier,
	}
}

func (m *MeanReversion) Signals(bars []market.Bar) ([]market.Signal, error) {
	if len(bars) == 0 {
		return nil, fmt.Errorf("mean-reversion: empty bar series")
	}

	rsi := indicators.RSI(market.Closes(bars), m.RSIPeriod)

	signals := make([]market.Signal, len(bars))
	for i := range bars {
		switch {
		case rsi[i] < m.Oversold: // false during NaN warmup
			signals[i] = market.Buy
		case rsi[i] > m.Overbought:
			signals[i] = market.Sell
		}
	}
	return signals, nil
}

// StopLevels returns the per-bar stop-loss series: close minus
// ATRMultiplier times ATR. NaN during the ATR warmup.
func (m *MeanReversion) StopLevels(bars []market.Bar) []float64 {
	var high, low []float64
	for _, b := range bars {
		high = append(high, b.High)
		low = append(low, b.Low)
	}
	closes := market.Closes(bars)
	atr := indicators.ATR(high, low, closes, m.ATRPeriod)

	stops := make([]float64, len(bars))
	for i := range bars {
		stops[i] = closes[i] - atr[i]*m.ATRMultiplier
	}
	return stops
}
