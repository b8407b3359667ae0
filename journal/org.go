package journal

import (
	"bytes"
	"io"
	"text/template"
	"time"
)

var orgFuncs = template.FuncMap{
	"orTime": func(t time.Time) time.Time {
		if t.IsZero() {
			return time.Now()
		}
		return t
	},
}

// WriteOrg renders a run as an org-mode research note, suitable for a
// trading journal file.
func WriteOrg(w io.Writer, r Run) error {
	t, err := template.New("run").Funcs(orgFuncs).Parse(orgTemplate)
	if err != nil {
		return err
	}

	buf := new(bytes.Buffer)
	if err := t.Execute(buf, r); err != nil {
		return err
	}
	_, err = w.Write(buf.Bytes())
	return err
}

const orgTemplate = `
* BACKTEST: {{.Strategy}} {{if .Dataset}}{{.Dataset}}{{else}}(dataset?){{end}}
:PROPERTIES:
:RUN_ID:      {{if .RunID}}{{.RunID}}{{else}}(run-id?){{end}}
:STRATEGY:    {{.Strategy}}
:DATASET:     {{if .Dataset}}{{.Dataset}}{{else}}(dataset?){{end}}
:BARS:        {{.Bars}}
:START_DATE:  {{.Start.Format "2006-01-02"}}
:END_DATE:    {{.End.Format "2006-01-02"}}
:CAPITAL:     {{printf "%.2f" .InitialCapital}}
:FINAL_VALUE: {{printf "%.2f" .Metrics.FinalValue}}
:RETURN_PCT:  {{printf "%.2f" .Metrics.TotalReturn}}
:CAGR_PCT:    {{printf "%.2f" .Metrics.CAGR}}
:MAX_DD_PCT:  {{printf "%.2f" .Metrics.MaxDrawdown}}
:SHARPE:      {{printf "%.2f" .Metrics.SharpeRatio}}
:VOL_PCT:     {{printf "%.2f" .Metrics.Volatility}}
:TRADES:      {{.Metrics.Trades.TotalTrades}}
:WIN_RATE:    {{printf "%.2f" .Metrics.Trades.WinRate}}
:CREATED:     [{{(orTime .Created).Format "2006-01-02 Mon 15:04"}}]
:END:

** Strategy Parameters
{{printf "%s" .Params}}

** Performance Summary
- Total Return:     *{{printf "%.2f" .Metrics.TotalReturn}}%*
- CAGR:             *{{printf "%.2f" .Metrics.CAGR}}%*
- Max Drawdown:     *{{printf "%.2f" .Metrics.MaxDrawdown}}%*
- Sharpe Ratio:     *{{printf "%.2f" .Metrics.SharpeRatio}}*
- Volatility:       *{{printf "%.2f" .Metrics.Volatility}}%*

** Trade Distribution
| Outcome | Count |
|---------+-------|
| Wins    | {{.Metrics.Trades.WinningTrades}} |
| Losses  | {{.Metrics.Trades.LosingTrades}} |
| Total   | {{.Metrics.Trades.TotalTrades}} |
`
