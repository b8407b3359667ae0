package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/backtester/market"
	"github.com/rustyeddy/backtester/strategies"
)

var signalCmd = &cobra.Command{
	Use:   "signal",
	Short: "Generate latest-bar signals for a watchlist",
	Long: `Signal loads each symbol's daily bar CSV from the data directory, runs
the momentum and mean-reversion strategies over the full history, and
reports each strategy's signal on the most recent bar as a JSON
document.

Example:
  backtester signal --data ./data --symbols 2330,0050 --out signals.json`,
	RunE: runSignal,
}

var (
	sigDataDir string
	sigSymbols string
	sigOutPath string
	sigMinBars int
)

func init() {
	rootCmd.AddCommand(signalCmd)

	signalCmd.Flags().StringVarP(&sigDataDir, "data", "d", "./data", "directory of <symbol>.csv bar files")
	signalCmd.Flags().StringVar(&sigSymbols, "symbols", "", "comma-separated symbol list (required)")
	signalCmd.Flags().StringVarP(&sigOutPath, "out", "o", "", "write JSON here instead of stdout")
	signalCmd.Flags().IntVar(&sigMinBars, "min-bars", 100, "skip symbols with fewer bars than this")

	signalCmd.MarkFlagRequired("symbols")
}

// SymbolSignal is the per-symbol entry of the signal report.
type SymbolSignal struct {
	Close          float64 `json:"close"`
	Date           string  `json:"date"`
	Momentum       int     `json:"momentum"`
	MeanReversion  int     `json:"mean_reversion"`
	Recommendation string  `json:"recommendation"`
}

func runSignal(cmd *cobra.Command, args []string) error {
	momentum, err := strategies.ByName("momentum", nil)
	if err != nil {
		return err
	}
	meanRev, err := strategies.ByName("mean-reversion", nil)
	if err != nil {
		return err
	}

	report := make(map[string]SymbolSignal)

	for _, symbol := range strings.Split(sigSymbols, ",") {
		symbol = strings.TrimSpace(symbol)
		if symbol == "" {
			continue
		}

		path := filepath.Join(sigDataDir, symbol+".csv")
		bars, err := market.LoadCSV(path, time.Time{}, time.Time{})
		if err != nil {
			fmt.Fprintf(os.Stderr, "skip %s: %v\n", symbol, err)
			continue
		}
		if len(bars) < sigMinBars {
			fmt.Fprintf(os.Stderr, "skip %s: only %d bars\n", symbol, len(bars))
			continue
		}

		entry, err := latestSignals(bars, momentum, meanRev)
		if err != nil {
			fmt.Fprintf(os.Stderr, "skip %s: %v\n", symbol, err)
			continue
		}
		report[symbol] = entry
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return err
	}

	if sigOutPath == "" {
		fmt.Println(string(data))
		return nil
	}
	if err := os.WriteFile(sigOutPath, data, 0644); err != nil {
		return err
	}
	fmt.Printf("Signals written to %s (%d symbols)\n", sigOutPath, len(report))
	return nil
}

func latestSignals(bars []market.Bar, momentum, meanRev strategies.Strategy) (SymbolSignal, error) {
	momSigs, err := momentum.Signals(bars)
	if err != nil {
		return SymbolSignal{}, err
	}
	mrSigs, err := meanRev.Signals(bars)
	if err != nil {
		return SymbolSignal{}, err
	}

	last := len(bars) - 1
	entry := SymbolSignal{
		Close:         bars[last].Close,
		Date:          bars[last].Time.Format("2006-01-02"),
		Momentum:      int(momSigs[last]),
		MeanReversion: int(mrSigs[last]),
	}
	entry.Recommendation = recommend(momSigs[last], mrSigs[last])
	return entry, nil
}

// recommend combines the two strategy votes: agreement wins, a single
// vote carries, disagreement holds.
func recommend(a, b market.Signal) string {
	sum := int(a) + int(b)
	switch {
	case sum > 0:
		return "buy"
	case sum < 0:
		return "sell"
	default:
		return "hold"
	}
}
