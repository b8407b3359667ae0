package backtest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummary(t *testing.T) {
	e := NewEngine(1000, 0)
	bars := dailyBars(t, 100, 110, 90, 120)
	signals := sigs(0, 1, -1, 0)

	ledger, err := e.Run(signals, bars)
	require.NoError(t, err)

	rec, err := Summary(ledger, signals, 1000, -1)
	require.NoError(t, err)

	assert.InDelta(t, 1000.0, rec.InitialCapital, 1e-9)
	assert.InDelta(t, 820.0, rec.FinalValue, 1e-9)
	assert.InDelta(t, -18.0, rec.TotalReturn, 1e-9)
	assert.Less(t, rec.MaxDrawdown, 0.0)
	assert.Equal(t, 1, rec.Trades.TotalTrades)
	assert.Equal(t, 1, rec.Trades.LosingTrades)
}

func TestSummaryEmptyLedger(t *testing.T) {
	_, err := Summary(Ledger{}, nil, 1000, -1)
	assert.ErrorIs(t, err, ErrEmptySeries)
}

func TestSummarySingleEntry(t *testing.T) {
	// A one-bar run is valid: zero metrics across the board.
	ledger := Ledger{{Total: 1000, Cash: 1000}}
	rec, err := Summary(ledger, sigs(1), 1000, -1)
	require.NoError(t, err)

	assert.Equal(t, 0.0, rec.TotalReturn)
	assert.Equal(t, 0.0, rec.MaxDrawdown)
	assert.Equal(t, 0.0, rec.SharpeRatio)
	assert.Equal(t, 0, rec.Trades.TotalTrades)
}

func TestPrintSummary(t *testing.T) {
	rec := Record{
		InitialCapital: 1000,
		FinalValue:     1200,
		TotalReturn:    20,
		SharpeRatio:    1.5,
		Trades:         TradeStats{TotalTrades: 3, WinningTrades: 2, LosingTrades: 1, WinRate: 66.67},
	}

	var sb strings.Builder
	PrintSummary(&sb, RunInfo{Strategy: "momentum", Bars: 100}, rec)

	out := sb.String()
	assert.Contains(t, out, "momentum")
	assert.Contains(t, out, "Total Return:  20.00%")
	assert.Contains(t, out, "Win Rate:      66.67%")
}
