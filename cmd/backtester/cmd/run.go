package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/backtester/backtest"
	"github.com/rustyeddy/backtester/config"
	"github.com/rustyeddy/backtester/internal/id"
	"github.com/rustyeddy/backtester/journal"
	"github.com/rustyeddy/backtester/market"
	"github.com/rustyeddy/backtester/strategies"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a backtest over a daily bar CSV",
	Long: `Run loads daily bars from a CSV file, generates signals with the chosen
strategy, replays them through the simulation engine and prints the
performance report.

Example:
  backtester run --bars data/2330.csv --strategy momentum \
      --param short_window=20 --param long_window=60`,
	RunE: runRun,
}

var (
	runConfigPath string
	runBarsPath   string
	runStrategy   string
	runParams     []string
	runCapital    float64
	runCommission float64
	runRiskFree   float64
	runFrom       string
	runTo         string
	runDBPath     string
	runCSVPrefix  string
	runOrgPath    string
)

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&runConfigPath, "config", "c", "", "config file (overrides the other flags)")
	runCmd.Flags().StringVarP(&runBarsPath, "bars", "b", "", "path to daily bar CSV (date,open,high,low,close,volume)")
	runCmd.Flags().StringVarP(&runStrategy, "strategy", "s", "momentum", "strategy name (noop, momentum, mean-reversion)")
	runCmd.Flags().StringArrayVarP(&runParams, "param", "p", nil, "strategy parameter key=value (repeatable)")
	runCmd.Flags().Float64Var(&runCapital, "capital", 100_000, "initial capital")
	runCmd.Flags().Float64Var(&runCommission, "commission", 0.001425, "commission rate per side")
	runCmd.Flags().Float64Var(&runRiskFree, "risk-free", 0.02, "annual risk-free rate for Sharpe")
	runCmd.Flags().StringVar(&runFrom, "from", "", "start date (2006-01-02), inclusive")
	runCmd.Flags().StringVar(&runTo, "to", "", "end date (2006-01-02), exclusive")
	runCmd.Flags().StringVarP(&runDBPath, "db", "d", "", "journal the run to this SQLite DB")
	runCmd.Flags().StringVar(&runCSVPrefix, "csv-journal", "", "journal the run to <prefix>_runs.csv and <prefix>_ledger.csv")
	runCmd.Flags().StringVar(&runOrgPath, "org", "", "write an org-mode report to this file")
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := effectiveConfig()
	if err != nil {
		return err
	}

	from, to, err := parseRange(cfg.Data.From, cfg.Data.To)
	if err != nil {
		return err
	}

	bars, err := market.LoadCSV(cfg.Data.CSVPath, from, to)
	if err != nil {
		return fmt.Errorf("load bars: %w", err)
	}

	strat, err := strategies.ByName(cfg.Strategy.Name, cfg.Strategy.Params)
	if err != nil {
		return fmt.Errorf("strategy: %w", err)
	}

	signals, err := strat.Signals(bars)
	if err != nil {
		return fmt.Errorf("signals: %w", err)
	}

	engine := backtest.NewEngine(cfg.Backtest.InitialCapital, cfg.Backtest.Commission)
	ledger, err := engine.Run(signals, bars)
	if err != nil {
		return fmt.Errorf("run: %w", err)
	}

	rec, err := backtest.Summary(ledger, signals, cfg.Backtest.InitialCapital, cfg.Backtest.RiskFree)
	if err != nil {
		return fmt.Errorf("summary: %w", err)
	}

	run := journal.Run{
		RunID:          id.New(),
		Created:        time.Now().UTC(),
		Strategy:       strat.Name(),
		Dataset:        cfg.Data.CSVPath,
		Bars:           len(bars),
		Start:          bars[0].Time,
		End:            bars[len(bars)-1].Time,
		InitialCapital: cfg.Backtest.InitialCapital,
		Commission:     cfg.Backtest.Commission,
		RiskFree:       cfg.Backtest.RiskFree,
		Metrics:        rec,
	}
	if run.Params, err = json.Marshal(strat.Params()); err != nil {
		return err
	}

	backtest.PrintSummary(os.Stdout, backtest.RunInfo{
		RunID:    run.RunID,
		Created:  run.Created,
		Strategy: run.Strategy,
		Dataset:  run.Dataset,
		Bars:     run.Bars,
		Start:    run.Start,
		End:      run.End,
	}, rec)

	if err := journalRun(cfg, run, ledger); err != nil {
		return err
	}

	if runOrgPath != "" {
		f, err := os.Create(runOrgPath)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := journal.WriteOrg(f, run); err != nil {
			return err
		}
		fmt.Printf("Org report: %s\n", runOrgPath)
	}

	return nil
}

// effectiveConfig builds the run configuration from --config when given,
// otherwise from the individual flags.
func effectiveConfig() (*config.Config, error) {
	if runConfigPath != "" {
		return config.LoadFromFile(runConfigPath)
	}

	if runBarsPath == "" {
		return nil, fmt.Errorf("--bars or --config is required")
	}

	params, err := parseParams(runParams)
	if err != nil {
		return nil, err
	}

	cfg := &config.Config{
		Data:     config.DataConfig{CSVPath: runBarsPath, From: runFrom, To: runTo},
		Strategy: config.StrategyConfig{Name: runStrategy, Params: params},
		Backtest: config.BacktestConfig{
			InitialCapital: runCapital,
			Commission:     runCommission,
			RiskFree:       runRiskFree,
		},
	}
	switch {
	case runDBPath != "":
		cfg.Journal = config.JournalConfig{Type: "sqlite", DBPath: runDBPath}
	case runCSVPrefix != "":
		cfg.Journal = config.JournalConfig{
			Type:       "csv",
			RunsFile:   runCSVPrefix + "_runs.csv",
			LedgerFile: runCSVPrefix + "_ledger.csv",
		}
	default:
		cfg.Journal = config.JournalConfig{Type: "none"}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func journalRun(cfg *config.Config, run journal.Run, ledger backtest.Ledger) error {
	var j journal.Journal
	var err error

	switch cfg.Journal.Type {
	case "", "none":
		return nil
	case "sqlite":
		j, err = journal.NewSQLite(cfg.Journal.DBPath)
	case "csv":
		j, err = journal.NewCSV(cfg.Journal.RunsFile, cfg.Journal.LedgerFile)
	}
	if err != nil {
		return fmt.Errorf("open journal: %w", err)
	}
	defer j.Close()

	if err := j.RecordRun(run); err != nil {
		return fmt.Errorf("record run: %w", err)
	}
	if err := j.RecordLedger(run.RunID, ledger); err != nil {
		return fmt.Errorf("record ledger: %w", err)
	}
	fmt.Printf("Journaled run %s\n", run.RunID)
	return nil
}

func parseParams(pairs []string) (map[string]float64, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	out := make(map[string]float64, len(pairs))
	for _, pair := range pairs {
		k, v, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("bad --param %q, want key=value", pair)
		}
		fv, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return nil, fmt.Errorf("bad --param %q: %w", pair, err)
		}
		out[strings.TrimSpace(k)] = fv
	}
	return out, nil
}

func parseRange(fromStr, toStr string) (from, to time.Time, err error) {
	if fromStr != "" {
		if from, err = time.Parse("2006-01-02", fromStr); err != nil {
			return from, to, fmt.Errorf("bad from date: %w", err)
		}
	}
	if toStr != "" {
		if to, err = time.Parse("2006-01-02", toStr); err != nil {
			return from, to, fmt.Errorf("bad to date: %w", err)
		}
	}
	return from, to, nil
}
