package cmd

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/backtester/market"
	"github.com/rustyeddy/backtester/optimize"
	"github.com/rustyeddy/backtester/strategies"
)

var optimizeCmd = &cobra.Command{
	Use:   "optimize",
	Short: "Sweep a strategy parameter grid and rank the results",
	Long: `Optimize runs one full backtest per parameter combination, in parallel,
and prints the combinations ranked by Sharpe ratio.

Example:
  backtester optimize --bars data/2330.csv --strategy momentum \
      --grid short_window=10,20,30 --grid long_window=50,60,70`,
	RunE: runOptimize,
}

var (
	optBarsPath   string
	optStrategy   string
	optGrid       []string
	optCapital    float64
	optCommission float64
	optRiskFree   float64
	optWorkers    int
	optTop        int
	optExportPath string
)

func init() {
	rootCmd.AddCommand(optimizeCmd)

	optimizeCmd.Flags().StringVarP(&optBarsPath, "bars", "b", "", "path to daily bar CSV (required)")
	optimizeCmd.Flags().StringVarP(&optStrategy, "strategy", "s", "momentum", "strategy name to sweep")
	optimizeCmd.Flags().StringArrayVarP(&optGrid, "grid", "g", nil, "grid entry key=v1,v2,v3 (repeatable)")
	optimizeCmd.Flags().Float64Var(&optCapital, "capital", 100_000, "initial capital")
	optimizeCmd.Flags().Float64Var(&optCommission, "commission", 0.001425, "commission rate per side")
	optimizeCmd.Flags().Float64Var(&optRiskFree, "risk-free", 0.02, "annual risk-free rate for Sharpe")
	optimizeCmd.Flags().IntVarP(&optWorkers, "workers", "w", 0, "worker count (0 = all CPUs)")
	optimizeCmd.Flags().IntVar(&optTop, "top", 10, "number of ranked results to print")
	optimizeCmd.Flags().StringVarP(&optExportPath, "out", "o", "", "export full results to this JSON file")

	optimizeCmd.MarkFlagRequired("bars")
}

func runOptimize(cmd *cobra.Command, args []string) error {
	bars, err := market.LoadCSV(optBarsPath, time.Time{}, time.Time{})
	if err != nil {
		return fmt.Errorf("load bars: %w", err)
	}

	grid, err := parseGrid(optGrid)
	if err != nil {
		return err
	}

	factory := func(params map[string]float64) (strategies.Strategy, error) {
		return strategies.ByName(optStrategy, params)
	}

	fmt.Printf("Sweeping %d combinations of %s over %d bars\n\n",
		len(grid.Expand()), optStrategy, len(bars))

	results, err := optimize.Search(context.Background(), bars, factory, grid, optimize.Options{
		InitialCapital: optCapital,
		Commission:     optCommission,
		RiskFree:       optRiskFree,
		Workers:        optWorkers,
	})
	if err != nil {
		return err
	}

	printRanking(results, optTop)

	if optExportPath != "" {
		if err := optimize.Export(optExportPath, results); err != nil {
			return fmt.Errorf("export: %w", err)
		}
		fmt.Printf("\nResults exported to %s\n", optExportPath)
	}
	return nil
}

func printRanking(results []optimize.Result, top int) {
	fmt.Println("Rank  Sharpe  Return%    MaxDD%  Trades  Params")
	fmt.Println("------------------------------------------------------------")
	for i, r := range results {
		if i >= top {
			break
		}
		if r.Err != "" {
			fmt.Printf("%4d  skipped: %s (%s)\n", i+1, r.Err, formatParams(r.Params))
			continue
		}
		fmt.Printf("%4d  %6.2f  %7.2f  %8.2f  %6d  %s\n",
			i+1,
			r.Metrics.SharpeRatio,
			r.Metrics.TotalReturn,
			r.Metrics.MaxDrawdown,
			r.Metrics.Trades.TotalTrades,
			formatParams(r.Params),
		)
	}
}

func formatParams(params map[string]float64) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s=%v", k, params[k])
	}
	return strings.Join(parts, " ")
}

func parseGrid(entries []string) (optimize.Grid, error) {
	grid := optimize.Grid{}
	for _, entry := range entries {
		k, vs, ok := strings.Cut(entry, "=")
		if !ok {
			return nil, fmt.Errorf("bad --grid %q, want key=v1,v2,...", entry)
		}
		var values []float64
		for _, s := range strings.Split(vs, ",") {
			v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
			if err != nil {
				return nil, fmt.Errorf("bad --grid value %q in %q: %w", s, entry, err)
			}
			values = append(values, v)
		}
		grid[strings.TrimSpace(k)] = values
	}
	return grid, nil
}
