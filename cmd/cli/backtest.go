package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"allocation-backtest/internal/backtest"
	"allocation-backtest/internal/config"

	"github.com/spf13/cobra"
)

type backtestFlags struct {
	configFile string
	preset     string
	cash       float64
	stocks     float64
	balance    float64
	start      int
	years      int
	strategy   string
	every      int
	rounding   string
	clamp      bool
	out        string
	rows       bool
}

func newBacktestCmd(root *rootOptions) *cobra.Command {
	f := &backtestFlags{}
	cmd := &cobra.Command{
		Use:   "backtest",
		Short: "Run one backtest and print its summary",
		Long: `Run one backtest. Inputs come from flags, from a scenario file (--config),
or both; flags given explicitly override the scenario file. Without a period
the backtest runs from the first data year to the last.`,
		Example: `  backtest-cli backtest --cash 10 --stocks 50 --preset 2007
  backtest-cli backtest --config examples/scenarios/moderate.yaml --out results/moderate.csv`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBacktest(cmd, root, f)
		},
	}

	fl := cmd.Flags()
	fl.StringVarP(&f.configFile, "config", "c", "", "scenario YAML file")
	fl.StringVar(&f.preset, "preset", "", "timeframe preset id (see 'timeframes')")
	fl.Float64Var(&f.cash, "cash", 10, "cash allocation %")
	fl.Float64Var(&f.stocks, "stocks", 50, "stock allocation %; bonds get the rest")
	fl.Float64Var(&f.balance, "balance", 10000, "starting balance")
	fl.IntVar(&f.start, "start", 0, "first year of the holding period")
	fl.IntVar(&f.years, "years", 0, "number of years to hold")
	fl.StringVar(&f.strategy, "strategy", "", "annual (default), periodic or buy_and_hold")
	fl.IntVar(&f.every, "every", 1, "years between rebalances for the periodic strategy")
	fl.StringVar(&f.rounding, "rounding", "", "output (default) or per_step")
	fl.BoolVar(&f.clamp, "clamp", false, "fit allocation and period into valid ranges instead of failing")
	fl.StringVarP(&f.out, "out", "o", "", "write the year-by-year rows to this CSV file")
	fl.BoolVar(&f.rows, "rows", false, "print the year-by-year rows")
	return cmd
}

func runBacktest(cmd *cobra.Command, root *rootOptions, f *backtestFlags) error {
	table, err := root.loadTable()
	if err != nil {
		return err
	}
	timeframes, err := root.loadTimeframes()
	if err != nil {
		return err
	}

	cfg, err := scenarioFromFlags(cmd, f)
	if err != nil {
		return err
	}
	if cfg.Timeframe == "" && cfg.NumYears == 0 {
		// Run to the end of the table.
		if cfg.StartYear == 0 {
			cfg.StartYear = table.FirstYear() + 1
		}
		cfg.NumYears = table.LastYear() + 1 - cfg.StartYear
	}

	engine, err := cfg.Engine(root.logger())
	if err != nil {
		return err
	}
	in, err := cfg.Inputs(table, timeframes, f.clamp)
	if err != nil {
		return err
	}
	res, err := engine.Run(in)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	printSummary(out, cfg.Name, res)
	if f.rows {
		fmt.Fprintln(out)
		printRows(out, res)
	}

	if f.out != "" {
		// ensure output dir exists
		if err := os.MkdirAll(filepath.Dir(f.out), 0o755); err != nil {
			return err
		}
		if err := backtest.WriteResultCSV(f.out, res); err != nil {
			return err
		}
		fmt.Fprintf(out, "\nWrote %d rows to %s\n", len(res.Rows), f.out)
	}
	return nil
}

// scenarioFromFlags starts from the scenario file, or from the flag defaults
// without one, and applies every flag set on the command line.
func scenarioFromFlags(cmd *cobra.Command, f *backtestFlags) (*config.Config, error) {
	base := &config.Config{
		Allocation: config.AllocationConfig{
			CashPct:  config.Float(f.cash),
			StockPct: config.Float(f.stocks),
		},
		StartBalance: f.balance,
	}
	if f.configFile != "" {
		loaded, err := config.LoadUnchecked(f.configFile)
		if err != nil {
			return nil, err
		}
		base = loaded
	}

	fl := cmd.Flags()
	var o config.Config
	if fl.Changed("cash") {
		o.Allocation.CashPct = config.Float(f.cash)
	}
	if fl.Changed("stocks") {
		o.Allocation.StockPct = config.Float(f.stocks)
	}
	if fl.Changed("balance") {
		o.StartBalance = f.balance
	}
	if fl.Changed("start") {
		o.StartYear = f.start
	}
	if fl.Changed("years") {
		o.NumYears = f.years
	}
	if fl.Changed("preset") {
		o.Timeframe = f.preset
	}
	if fl.Changed("strategy") || fl.Changed("every") {
		name := f.strategy
		if name == "" {
			name = "periodic"
		}
		o.Strategy = config.StrategyConfig{Name: name, Params: map[string]any{"every": f.every}}
	}
	if fl.Changed("rounding") {
		o.Rounding = f.rounding
	}

	merged := config.Merge(*base, o)
	if merged.StartBalance == 0 {
		merged.StartBalance = f.balance
	}
	return &merged, nil
}

func printSummary(w io.Writer, name string, res *backtest.Result) {
	s := res.Summary
	a := res.Allocation
	if name != "" {
		fmt.Fprintf(w, "%s\n\n", name)
	}
	fmt.Fprintf(w, "%-12s cash %s  bonds %s  stocks %s  (%s)\n", "Allocation",
		pctLabel(a.CashPct), pctLabel(a.BondPct()), pctLabel(a.StockPct), s.Style)
	fmt.Fprintf(w, "%-12s %d-%d (%d years), %s, rounding at %s\n", "Period",
		s.StartYear, s.EndYear, res.Period.NumYears, res.Strategy, res.Rounding)
	fmt.Fprintf(w, "%-12s %s\n", "Start", backtest.FormatMoney(res.StartBalance))
	fmt.Fprintf(w, "%-12s %s\n\n", "Result", s.Text)

	fmt.Fprintf(w, "%-14s %8s   %s\n", "series", "CAGR", "worst year")
	for _, line := range s.Series {
		worst := ""
		if line.Worst != nil {
			worst = line.Worst.String()
		}
		fmt.Fprintf(w, "%-14s %8s   %s\n", line.Label, backtest.FormatPercent(line.CAGR), worst)
	}
}

func printRows(w io.Writer, res *backtest.Result) {
	fmt.Fprintf(w, "%-6s %12s %12s %12s %12s %12s %12s %12s %12s\n",
		"year", "cash", "bonds", "stocks", "total", "all cash", "all bonds", "all stocks", "inflation")
	for _, r := range res.Rows {
		fmt.Fprintf(w, "%-6d %12.0f %12.0f %12.0f %12.0f %12.0f %12.0f %12.0f %12.0f\n",
			r.Year, r.Cash, r.Bonds, r.Stocks, r.Total, r.AllCash, r.AllBonds, r.AllStocks, r.InflationOnly)
	}
}

func pctLabel(v float64) string {
	return fmt.Sprintf("%g%%", v)
}
