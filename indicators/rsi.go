package indicators

import "math"

// RSI computes the Relative Strength Index over the given period using
// rolling-mean average gains and losses. Values range 0-100; the warmup
// prefix is NaN. A window with losses but no gains reads 0, gains but no
// losses reads 100; a completely flat window has no defined RSI and
// stays NaN.
func RSI(prices []float64, period int) []float64 {
	out := nanSeries(len(prices))
	if period <= 0 || len(prices) <= period {
		return out
	}

	gains := make([]float64, len(prices))
	losses := make([]float64, len(prices))
	for i := 1; i < len(prices); i++ {
		d := prices[i] - prices[i-1]
		if d > 0 {
			gains[i] = d
		} else {
			losses[i] = -d
		}
	}

	for i := period; i < len(prices); i++ {
		var avgGain, avgLoss float64
		for j := i - period + 1; j <= i; j++ {
			avgGain += gains[j]
			avgLoss += losses[j]
		}
		avgGain /= float64(period)
		avgLoss /= float64(period)

		switch {
		case avgLoss > 0:
			rs := avgGain / avgLoss
			out[i] = 100 - 100/(1+rs)
		case avgGain > 0:
			out[i] = 100
		default:
			// flat window, leave NaN
		}
	}
	return out
}

// ATR computes the Average True Range: an EMA (span semantics) of the
// true range, where true range is the greatest of high-low,
// |high-prevClose| and |low-prevClose|.
func ATR(high, low, closes []float64, period int) []float64 {
	n := len(closes)
	out := nanSeries(n)
	if period <= 0 || n == 0 || len(high) != n || len(low) != n {
		return out
	}

	tr := make([]float64, n)
	for i := 0; i < n; i++ {
		r := high[i] - low[i]
		if i > 0 {
			r = math.Max(r, math.Abs(high[i]-closes[i-1]))
			r = math.Max(r, math.Abs(low[i]-closes[i-1]))
		}
		tr[i] = r
	}
	return EMA(tr, period)
}
