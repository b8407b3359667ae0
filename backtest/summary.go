package backtest

import "github.com/rustyeddy/backtester/market"

// DefaultRiskFree is the annual risk-free rate used by Summary when the
// caller passes a negative rate.
const DefaultRiskFree = 0.02

// Record is the immutable per-run metrics snapshot handed to downstream
// ranking and reporting. Percentages are in percent units (e.g. 12.5),
// SharpeRatio is unitless.
type Record struct {
	InitialCapital float64
	FinalValue     float64
	TotalReturn    float64 // percent
	MaxDrawdown    float64 // percent, <= 0
	CAGR           float64 // percent
	SharpeRatio    float64
	Volatility     float64 // percent

	Trades TradeStats
}

// Summary derives the full metrics record from a completed ledger and
// the signal series that produced it. riskFree is an annual rate; pass a
// negative value for DefaultRiskFree. Fails with ErrEmptySeries only on
// an empty ledger; degenerate numeric cases resolve to the documented
// zero fallbacks of the individual metric functions.
func Summary(ledger Ledger, signals []market.Signal, initialCapital, riskFree float64) (Record, error) {
	if len(ledger) == 0 {
		return Record{}, ErrEmptySeries
	}
	if riskFree < 0 {
		riskFree = DefaultRiskFree
	}

	values := ledger.Values()
	returns := ledger.Returns()
	final := values[len(values)-1]

	rec := Record{
		InitialCapital: initialCapital,
		FinalValue:     final,
	}
	if initialCapital > 0 {
		rec.TotalReturn = (final - initialCapital) / initialCapital * 100
	}

	// Empty returns (single-entry ledger) fall back to zero metrics; the
	// ledger itself is valid.
	rec.MaxDrawdown, _ = MaxDrawdown(values)
	rec.CAGR, _ = CAGR(values, 0)
	if len(returns) > 0 {
		rec.SharpeRatio, _ = SharpeRatio(returns, riskFree)
		rec.Volatility, _ = Volatility(returns)
	}
	rec.Trades = WinRate(signals, returns)

	return rec, nil
}
