package indicators

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPrices() []float64 {
	return []float64{102, 105, 106, 108, 110, 111, 113, 114, 116, 118}
}

func TestSMA(t *testing.T) {
	prices := testPrices()
	sma := SMA(prices, 5)
	require.Len(t, sma, len(prices))

	// First window-1 values are warmup
	for i := 0; i < 4; i++ {
		assert.True(t, math.IsNaN(sma[i]), "index %d should be NaN", i)
	}
	// Last 5 closes: 111,113,114,116,118 => 572/5 = 114.4
	assert.InDelta(t, 114.4, sma[len(sma)-1], 0.001)
	// First defined value: 102+105+106+108+110 = 531/5 = 106.2
	assert.InDelta(t, 106.2, sma[4], 0.001)
}

func TestSMAWindowTooLarge(t *testing.T) {
	sma := SMA([]float64{1, 2}, 5)
	for _, v := range sma {
		assert.True(t, math.IsNaN(v))
	}
}

func TestEMA(t *testing.T) {
	prices := testPrices()
	ema := EMA(prices, 5)
	require.Len(t, ema, len(prices))

	assert.Equal(t, prices[0], ema[0], "EMA seeds from the first price")
	// EMA of a rising series trails the price but rises with it.
	assert.Greater(t, ema[len(ema)-1], ema[0])
	assert.Less(t, ema[len(ema)-1], prices[len(prices)-1])
}

func TestRSIExtremes(t *testing.T) {
	up := []float64{1, 2, 3, 4, 5, 6, 7, 8}
	rsi := RSI(up, 5)
	assert.InDelta(t, 100.0, rsi[len(rsi)-1], 1e-9, "all gains reads 100")

	down := []float64{8, 7, 6, 5, 4, 3, 2, 1}
	rsi = RSI(down, 5)
	assert.InDelta(t, 0.0, rsi[len(rsi)-1], 1e-9, "all losses reads 0")

	flat := []float64{5, 5, 5, 5, 5, 5, 5, 5}
	rsi = RSI(flat, 5)
	assert.True(t, math.IsNaN(rsi[len(rsi)-1]), "flat window has no RSI")
}

func TestRSIWarmup(t *testing.T) {
	rsi := RSI(testPrices(), 5)
	for i := 0; i < 5; i++ {
		assert.True(t, math.IsNaN(rsi[i]), "index %d should be NaN", i)
	}
	assert.False(t, math.IsNaN(rsi[5]))
}

func TestATR(t *testing.T) {
	high := []float64{10, 11, 12, 11, 12, 13}
	low := []float64{8, 9, 10, 9, 10, 11}
	closes := []float64{9, 10, 11, 10, 11, 12}

	atr := ATR(high, low, closes, 3)
	require.Len(t, atr, 6)
	// Every bar's range is 2 and gaps stay within it, so ATR settles at 2.
	assert.InDelta(t, 2.0, atr[len(atr)-1], 1e-9)
}

func TestBollinger(t *testing.T) {
	prices := testPrices()
	upper, middle, lower := Bollinger(prices, 5, 2.0)

	i := len(prices) - 1
	assert.InDelta(t, 114.4, middle[i], 0.001)
	assert.Greater(t, upper[i], middle[i])
	assert.Less(t, lower[i], middle[i])
	assert.InDelta(t, middle[i], (upper[i]+lower[i])/2, 1e-9)
}

func TestMACD(t *testing.T) {
	prices := testPrices()
	macd, signal, hist := MACD(prices, 3, 6, 3)
	require.Len(t, macd, len(prices))

	i := len(prices) - 1
	// Rising series: fast EMA above slow EMA.
	assert.Greater(t, macd[i], 0.0)
	assert.InDelta(t, macd[i]-signal[i], hist[i], 1e-12)
}
