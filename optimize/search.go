package optimize

import (
	"context"
	"fmt"
	"runtime"
	"sort"
	"sync"

	"github.com/rustyeddy/backtester/backtest"
	"github.com/rustyeddy/backtester/market"
	"github.com/rustyeddy/backtester/strategies"
)

// Factory builds a strategy from one parameter combination.
type Factory func(params map[string]float64) (strategies.Strategy, error)

// Result is one evaluated parameter combination.
type Result struct {
	Strategy string             `json:"strategy"`
	Params   map[string]float64 `json:"params"`
	Metrics  backtest.Record    `json:"metrics"`
	Err      string             `json:"error,omitempty"`
}

// Options controls a Search run.
type Options struct {
	InitialCapital float64
	Commission     float64
	RiskFree       float64 // annual; negative means backtest.DefaultRiskFree
	Workers        int     // <= 0 means GOMAXPROCS
}

// Search evaluates every combination of the grid against the bar series
// and returns results sorted by Sharpe ratio, best first.
//
// Each combination is an independent unit: its own strategy, engine and
// metrics. Units run on a bounded worker pool; results are collected
// into the returned slice, never into package state, so concurrent
// sweeps don't interfere. A combination whose strategy construction or
// run fails is reported in its Result.Err and ranked last rather than
// aborting the sweep. Search itself fails only on empty bars or a
// cancelled context.
func Search(ctx context.Context, bars []market.Bar, factory Factory, grid Grid, opts Options) ([]Result, error) {
	if len(bars) == 0 {
		return nil, fmt.Errorf("optimize: empty bar series")
	}

	combos := grid.Expand()
	results := make([]Result, len(combos))

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > len(combos) {
		workers = len(combos)
	}

	jobs := make(chan int)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = evaluate(bars, factory, combos[i], opts)
			}
		}()
	}

	var ctxErr error
feed:
	for i := range combos {
		if ctxErr = ctx.Err(); ctxErr != nil {
			break
		}
		select {
		case jobs <- i:
		case <-ctx.Done():
			ctxErr = ctx.Err()
			break feed
		}
	}
	close(jobs)
	wg.Wait()

	if ctxErr != nil {
		return nil, ctxErr
	}

	sortResults(results)
	return results, nil
}

func evaluate(bars []market.Bar, factory Factory, params map[string]float64, opts Options) Result {
	res := Result{Params: params}

	strat, err := factory(params)
	if err != nil {
		res.Err = err.Error()
		return res
	}
	res.Strategy = strat.Name()

	signals, err := strat.Signals(bars)
	if err != nil {
		res.Err = err.Error()
		return res
	}

	engine := backtest.NewEngine(opts.InitialCapital, opts.Commission)
	ledger, err := engine.Run(signals, bars)
	if err != nil {
		res.Err = err.Error()
		return res
	}

	rec, err := backtest.Summary(ledger, signals, opts.InitialCapital, opts.RiskFree)
	if err != nil {
		res.Err = err.Error()
		return res
	}
	res.Metrics = rec
	return res
}

// sortResults ranks by Sharpe descending; failed combinations sink to
// the bottom. Ties break on total return so ordering is stable across
// runs.
func sortResults(results []Result) {
	sort.SliceStable(results, func(i, j int) bool {
		a, b := results[i], results[j]
		if (a.Err == "") != (b.Err == "") {
			return a.Err == ""
		}
		if a.Metrics.SharpeRatio != b.Metrics.SharpeRatio {
			return a.Metrics.SharpeRatio > b.Metrics.SharpeRatio
		}
		return a.Metrics.TotalReturn > b.Metrics.TotalReturn
	})
}

// Best returns the top-ranked successful result.
func Best(results []Result) (Result, bool) {
	for _, r := range results {
		if r.Err == "" {
			return r, true
		}
	}
	return Result{}, false
}
