package indicators

import "math"

// Bollinger computes Bollinger bands: an SMA middle band with upper and
// lower bands numStd sample standard deviations away.
func Bollinger(prices []float64, window int, numStd float64) (upper, middle, lower []float64) {
	n := len(prices)
	middle = SMA(prices, window)
	upper = nanSeries(n)
	lower = nanSeries(n)
	if window <= 1 || window > n {
		return upper, middle, lower
	}

	for i := window - 1; i < n; i++ {
		m := middle[i]
		sum := 0.0
		for j := i - window + 1; j <= i; j++ {
			d := prices[j] - m
			sum += d * d
		}
		sd := math.Sqrt(sum / float64(window-1))
		upper[i] = m + sd*numStd
		lower[i] = m - sd*numStd
	}
	return upper, middle, lower
}

// MACD computes the Moving Average Convergence Divergence: the fast EMA
// minus the slow EMA, a signal-line EMA of that difference, and the
// histogram between the two.
func MACD(prices []float64, fast, slow, signal int) (macd, signalLine, histogram []float64) {
	emaFast := EMA(prices, fast)
	emaSlow := EMA(prices, slow)

	macd = make([]float64, len(prices))
	for i := range prices {
		macd[i] = emaFast[i] - emaSlow[i]
	}

	signalLine = EMA(macd, signal)
	histogram = make([]float64, len(prices))
	for i := range prices {
		histogram[i] = macd[i] - signalLine[i]
	}
	return macd, signalLine, histogram
}
