// Package market defines the daily price bar data model shared by
// strategies and the backtest engine.
package market

import (
	"fmt"
	"math"
	"time"
)

// Bar represents one daily OHLCV (Open, High, Low, Close, Volume) observation.
type Bar struct {
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// Validate checks a bar sequence for the properties the engine relies on:
// timestamps strictly ascending and unique, prices positive and finite.
func Validate(bars []Bar) error {
	if len(bars) == 0 {
		return fmt.Errorf("empty bar series")
	}

	for i, b := range bars {
		if !positiveFinite(b.Close) {
			return fmt.Errorf("bar %d: close must be positive and finite, got %v", i, b.Close)
		}
		if i > 0 && !bars[i-1].Time.Before(b.Time) {
			return fmt.Errorf("bar %d: timestamp %s not after previous %s",
				i, b.Time.Format(time.RFC3339), bars[i-1].Time.Format(time.RFC3339))
		}
	}
	return nil
}

// Closes extracts the close-price series from a bar sequence.
func Closes(bars []Bar) []float64 {
	out := make([]float64, len(bars))
	for i, b := range bars {
		out[i] = b.Close
	}
	return out
}

func positiveFinite(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}
