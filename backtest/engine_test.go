package backtest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/backtester/market"
)

func dailyBars(t *testing.T, closes ...float64) []market.Bar {
	t.Helper()
	t0 := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	bars := make([]market.Bar, len(closes))
	for i, c := range closes {
		bars[i] = market.Bar{Time: t0.AddDate(0, 0, i), Close: c}
	}
	return bars
}

func sigs(vals ...int) []market.Signal {
	out := make([]market.Signal, len(vals))
	for i, v := range vals {
		out[i] = market.Signal(v)
	}
	return out
}

func checkLedgerInvariants(t *testing.T, ledger Ledger) {
	t.Helper()
	for i, e := range ledger {
		assert.InDelta(t, e.Total, e.Cash+e.Holdings, 1e-9, "entry %d: total = cash + holdings", i)
		assert.GreaterOrEqual(t, e.Cash, 0.0, "entry %d: cash non-negative", i)
	}
}

func TestRunZeroCommission(t *testing.T) {
	// prices [100,110,90,120], signals [0,+1,-1,0], capital 1000:
	// bar1 buys floor(1000/110)=9 shares for 990 (cash 10), bar2 sells
	// at 90 for 810 (cash 820), bar3 holds. Final total 820.
	e := NewEngine(1000, 0)
	ledger, err := e.Run(sigs(0, 1, -1, 0), dailyBars(t, 100, 110, 90, 120))
	require.NoError(t, err)
	require.Len(t, ledger, 4)

	assert.InDelta(t, 1000.0, ledger[0].Total, 1e-9)
	assert.InDelta(t, 10.0, ledger[1].Cash, 1e-9)
	assert.InDelta(t, 9*110.0, ledger[1].Holdings, 1e-9)
	assert.InDelta(t, 820.0, ledger[2].Cash, 1e-9)
	assert.InDelta(t, 0.0, ledger[2].Holdings, 1e-9)
	assert.InDelta(t, 820.0, ledger[3].Total, 1e-9)

	checkLedgerInvariants(t, ledger)
}

func TestRunWithCommission(t *testing.T) {
	// Same series at 1% commission: bar1 buys 8 shares (cost 880, fee
	// 8.8, cash 111.2), bar2 sells for 720 less 7.2 fee (cash 824).
	e := NewEngine(1000, 0.01)
	ledger, err := e.Run(sigs(0, 1, -1, 0), dailyBars(t, 100, 110, 90, 120))
	require.NoError(t, err)

	assert.InDelta(t, 111.2, ledger[1].Cash, 1e-9)
	assert.InDelta(t, 8*110.0, ledger[1].Holdings, 1e-9)
	assert.InDelta(t, 824.0, ledger[2].Cash, 1e-9)
	assert.InDelta(t, 824.0, ledger[3].Total, 1e-9)

	checkLedgerInvariants(t, ledger)
}

func TestRunBarZeroNeverTrades(t *testing.T) {
	e := NewEngine(1000, 0)
	ledger, err := e.Run(sigs(1), dailyBars(t, 100))
	require.NoError(t, err)
	require.Len(t, ledger, 1)
	assert.InDelta(t, 1000.0, ledger[0].Cash, 1e-9)
	assert.InDelta(t, 0.0, ledger[0].Holdings, 1e-9)
}

func TestRunInsufficientCash(t *testing.T) {
	// Close above affordable: buy is ignored, state carries forward.
	e := NewEngine(50, 0)
	ledger, err := e.Run(sigs(0, 1, 0), dailyBars(t, 100, 110, 120))
	require.NoError(t, err)

	for _, entry := range ledger {
		assert.InDelta(t, 50.0, entry.Cash, 1e-9)
		assert.InDelta(t, 0.0, entry.Holdings, 1e-9)
	}
}

func TestRunAdvisorySignals(t *testing.T) {
	// Buy while holding and sell while flat are no-ops.
	e := NewEngine(1000, 0)
	ledger, err := e.Run(sigs(0, -1, 1, 1, -1, -1), dailyBars(t, 100, 100, 100, 100, 100, 100))
	require.NoError(t, err)

	// bar1: sell while flat ignored
	assert.InDelta(t, 1000.0, ledger[1].Cash, 1e-9)
	// bar2: buys 10 shares; bar3: buy while holding ignored
	assert.InDelta(t, 10*100.0, ledger[2].Holdings, 1e-9)
	assert.InDelta(t, ledger[2].Cash, ledger[3].Cash, 1e-9)
	// bar4: sells; bar5: sell while flat ignored
	assert.InDelta(t, 1000.0, ledger[4].Cash, 1e-9)
	assert.InDelta(t, 1000.0, ledger[5].Total, 1e-9)

	checkLedgerInvariants(t, ledger)
}

func TestRunDeterministic(t *testing.T) {
	bars := dailyBars(t, 100, 110, 90, 120, 95, 130)
	signals := sigs(0, 1, -1, 1, 0, -1)

	a, err := NewEngine(1000, 0.001425).Run(signals, bars)
	require.NoError(t, err)
	b, err := NewEngine(1000, 0.001425).Run(signals, bars)
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestRunDoesNotMutateInputs(t *testing.T) {
	bars := dailyBars(t, 100, 110, 90)
	signals := sigs(0, 1, -1)
	barsCopy := append([]market.Bar(nil), bars...)
	sigCopy := append([]market.Signal(nil), signals...)

	_, err := NewEngine(1000, 0).Run(signals, bars)
	require.NoError(t, err)
	assert.Equal(t, barsCopy, bars)
	assert.Equal(t, sigCopy, signals)
}

func TestRunOncePerInstance(t *testing.T) {
	e := NewEngine(1000, 0)
	bars := dailyBars(t, 100, 110)
	signals := sigs(0, 1)

	_, err := e.Run(signals, bars)
	require.NoError(t, err)

	_, err = e.Run(signals, bars)
	assert.ErrorIs(t, err, ErrAlreadyRun)

	e.Reset()
	_, err = e.Run(signals, bars)
	assert.NoError(t, err)
}

func TestRunInputErrors(t *testing.T) {
	tests := []struct {
		name    string
		signals []market.Signal
		closes  []float64
	}{
		{"empty series", nil, nil},
		{"length mismatch", sigs(0, 1), []float64{100}},
		{"non-positive close", sigs(0, 0), []float64{100, -5}},
		{"zero close", sigs(0, 0), []float64{100, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewEngine(1000, 0)
			ledger, err := e.Run(tt.signals, dailyBars(t, tt.closes...))
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.Nil(t, ledger, "no partial ledger on invalid input")

			// A failed run does not consume the instance.
			_, err = e.Run(sigs(0, 1), dailyBars(t, 100, 110))
			assert.NoError(t, err)
		})
	}
}

func TestLedgerReturns(t *testing.T) {
	ledger := Ledger{
		{Total: 1000},
		{Total: 1100},
		{Total: 990},
	}
	rets := ledger.Returns()
	require.Len(t, rets, 2)
	assert.InDelta(t, 0.10, rets[0], 1e-9)
	assert.InDelta(t, -0.10, rets[1], 1e-9)

	assert.Nil(t, Ledger{{Total: 1000}}.Returns())
	assert.Nil(t, Ledger{}.Returns())
}
