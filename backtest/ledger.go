package backtest

import "time"

// Entry is one per-bar accounting row. Total is always Cash + Holdings,
// and Holdings is the share count valued at that bar's close.
type Entry struct {
	Time     time.Time
	Cash     float64
	Holdings float64
	Total    float64
}

// Ledger is the ordered, append-only record of a completed run. It is
// written by exactly one engine run and read-only afterwards; metrics
// functions only ever read it.
type Ledger []Entry

// Values returns the total portfolio value series, one element per bar.
func (l Ledger) Values() []float64 {
	out := make([]float64, len(l))
	for i, e := range l {
		out[i] = e.Total
	}
	return out
}

// Returns computes per-bar simple returns r[i] = total[i]/total[i-1] - 1.
// The result has len(l)-1 elements; the first bar has no prior value to
// compare against. An empty or single-entry ledger yields an empty slice.
func (l Ledger) Returns() []float64 {
	if len(l) < 2 {
		return nil
	}
	out := make([]float64, len(l)-1)
	for i := 1; i < len(l); i++ {
		out[i-1] = l[i].Total/l[i-1].Total - 1
	}
	return out
}
