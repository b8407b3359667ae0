package backtest

import (
	"math"

	"github.com/rustyeddy/backtester/market"
)

// TradingDays is the annualization basis: trading days per year.
const TradingDays = 252

// MaxDrawdown returns the largest percentage decline of the value series
// from its running peak, as a percentage <= 0. A single-entry series has
// no drawdown and returns 0.
func MaxDrawdown(values []float64) (float64, error) {
	if len(values) == 0 {
		return 0, ErrEmptySeries
	}

	peak := values[0]
	worst := 0.0
	for _, v := range values {
		if v > peak {
			peak = v
		}
		dd := (v - peak) / peak
		if dd < worst {
			worst = dd
		}
	}
	return worst * 100, nil
}

// CAGR returns the compound annual growth rate of the value series as a
// percentage. A years value <= 0 means "derive from length": len/252
// trading days. Returns 0 when the initial value or the derived years is
// non-positive. That is a degenerate-input guard, not a computed result.
func CAGR(values []float64, years float64) (float64, error) {
	if len(values) == 0 {
		return 0, ErrEmptySeries
	}

	if years <= 0 {
		years = float64(len(values)) / TradingDays
	}

	initial := values[0]
	final := values[len(values)-1]
	if initial <= 0 || years <= 0 {
		return 0, nil
	}
	return (math.Pow(final/initial, 1/years) - 1) * 100, nil
}

// SharpeRatio computes the annualized Sharpe ratio from per-bar simple
// returns. riskFree is an annual rate (e.g. 0.02) and is de-annualized
// over 252 trading days before subtraction.
//
// A zero standard deviation (flat series, or fewer than two returns)
// yields 0. That is a defined fallback to avoid dividing by zero, not a
// real Sharpe value.
func SharpeRatio(returns []float64, riskFree float64) (float64, error) {
	if len(returns) == 0 {
		return 0, ErrEmptySeries
	}

	perBar := riskFree / TradingDays
	excess := make([]float64, len(returns))
	for i, r := range returns {
		excess[i] = r - perBar
	}

	sd := stdev(excess)
	if sd == 0 {
		return 0, nil
	}
	return math.Sqrt(TradingDays) * mean(excess) / sd, nil
}

// Volatility returns the annualized standard deviation of per-bar
// returns, as a percentage.
func Volatility(returns []float64) (float64, error) {
	if len(returns) == 0 {
		return 0, ErrEmptySeries
	}
	return stdev(returns) * math.Sqrt(TradingDays) * 100, nil
}

// TradeStats summarizes completed round-trip trades.
type TradeStats struct {
	TotalTrades   int
	WinningTrades int
	LosingTrades  int
	WinRate       float64 // percent
}

// WinRate reconstructs discrete trades from the signal series and scores
// each by the sum of per-bar returns over its holding window.
//
// A buy signal marks an entry; the first subsequent sell signal closes
// it. A buy on bar 0 never opens a trade, mirroring the engine, which
// never trades the seed bar. A trade still open at the end of the
// series is discarded. A trade return > 0 counts as a win, <= 0 as a
// loss (zero return is scored as a loss).
// returns must be the per-bar series from Ledger.Returns, i.e.
// returns[j-1] is the return of bar j.
func WinRate(signals []market.Signal, returns []float64) TradeStats {
	var tradeReturns []float64

	entry := -1
	for i, sig := range signals {
		switch {
		case sig > 0:
			entry = i
		case sig < 0 && entry > 0:
			sum := 0.0
			for j := entry; j <= i && j-1 < len(returns); j++ {
				sum += returns[j-1]
			}
			tradeReturns = append(tradeReturns, sum)
			entry = -1
		}
	}

	var stats TradeStats
	stats.TotalTrades = len(tradeReturns)
	if stats.TotalTrades == 0 {
		return stats
	}

	for _, r := range tradeReturns {
		if r > 0 {
			stats.WinningTrades++
		} else {
			stats.LosingTrades++
		}
	}
	stats.WinRate = float64(stats.WinningTrades) / float64(stats.TotalTrades) * 100
	return stats
}

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

// stdev is the sample standard deviation (n-1 denominator). Fewer than
// two samples have no spread and return 0.
func stdev(xs []float64) float64 {
	if len(xs) < 2 {
		return 0
	}
	m := mean(xs)
	sum := 0.0
	for _, x := range xs {
		d := x - m
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(xs)-1))
}
