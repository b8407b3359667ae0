// Package indicators provides technical analysis indicators over daily
// price series.
//
// All functions are series-in/series-out: the result is index-aligned
// with the input, with math.NaN() filling the warmup prefix where the
// indicator is not yet defined. Callers compare against NaN-safe
// predicates (any comparison with NaN is false), so warmup bars simply
// produce no signal.
package indicators

import "math"

// SMA computes the simple moving average over the given window.
func SMA(prices []float64, window int) []float64 {
	out := nanSeries(len(prices))
	if window <= 0 || window > len(prices) {
		return out
	}

	sum := 0.0
	for i, p := range prices {
		sum += p
		if i >= window {
			sum -= prices[i-window]
		}
		if i >= window-1 {
			out[i] = sum / float64(window)
		}
	}
	return out
}

// EMA computes the exponential moving average with span semantics:
// multiplier 2/(window+1), seeded from the first price.
func EMA(prices []float64, window int) []float64 {
	out := nanSeries(len(prices))
	if window <= 0 || len(prices) == 0 {
		return out
	}

	mult := 2.0 / float64(window+1)
	ema := prices[0]
	out[0] = ema
	for i := 1; i < len(prices); i++ {
		ema = (prices[i]-ema)*mult + ema
		out[i] = ema
	}
	return out
}

func nanSeries(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.NaN()
	}
	return out
}
