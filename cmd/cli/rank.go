package main

import (
	"fmt"

	"allocation-backtest/internal/analysis"
	"allocation-backtest/internal/backtest"
	"allocation-backtest/internal/config"
	"allocation-backtest/internal/model"

	"github.com/spf13/cobra"
)

func newRankCmd(root *rootOptions) *cobra.Command {
	var (
		step      float64
		balance   float64
		start     int
		years     int
		preset    string
		strat     string
		maxStocks float64
		limit     int
	)
	cmd := &cobra.Command{
		Use:   "rank",
		Short: "Backtest a grid of allocations and rank them by CAGR",
		Example: `  backtest-cli rank --step 10 --preset 2007 --limit 5
  backtest-cli rank --step 5 --start 2000 --max-stocks 60`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := root.loadTable()
			if err != nil {
				return err
			}
			timeframes, err := root.loadTimeframes()
			if err != nil {
				return err
			}

			cfg := config.Config{
				StartBalance: balance,
				StartYear:    start,
				NumYears:     years,
				Timeframe:    preset,
				Strategy:     config.StrategyConfig{Name: strat},
			}
			period, err := cfg.Period(timeframes)
			if err != nil {
				return err
			}
			if period.NumYears == 0 {
				period = model.ClampPeriod(table, period.StartYear, table.Len())
			}
			engine, err := cfg.Engine(root.logger())
			if err != nil {
				return err
			}

			ranked, err := analysis.SweepAllocations(engine, table, analysis.SweepOptions{
				Step:         step,
				StartBalance: balance,
				Period:       period,
				MaxStockPct:  maxStocks,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%d allocations, %d-%d, step %g%%\n\n", len(ranked), period.StartYear, period.EndYear(), step)
			fmt.Fprintf(out, "%-4s %-6s %-6s %-6s %-12s %-14s %-8s %-16s %-8s\n",
				"rank", "cash", "bonds", "stocks", "style", "final", "cagr", "worst year", "max dd")
			if limit > 0 && limit < len(ranked) {
				ranked = ranked[:limit]
			}
			for i, r := range ranked {
				fmt.Fprintf(out, "%-4d %-6s %-6s %-6s %-12s %-14s %-8s %-16s %-8s\n",
					i+1,
					pctLabel(r.Allocation.CashPct),
					pctLabel(r.Allocation.BondPct()),
					pctLabel(r.Allocation.StockPct),
					r.Style,
					backtest.FormatMoney(r.FinalBalance),
					backtest.FormatPercent(r.CAGR),
					r.Annual.Worst.String(),
					backtest.FormatPercent(r.Annual.MaxDrawdown),
				)
			}
			return nil
		},
	}

	fl := cmd.Flags()
	fl.Float64Var(&step, "step", 10, "grid spacing in percentage points; must divide 100 and be at least 1")
	fl.Float64Var(&balance, "balance", 10000, "starting balance")
	fl.IntVar(&start, "start", 0, "first year of the holding period")
	fl.IntVar(&years, "years", 0, "number of years to hold (default: to the end of the data)")
	fl.StringVar(&preset, "preset", "", "timeframe preset id")
	fl.StringVar(&strat, "strategy", "", "annual (default), periodic or buy_and_hold")
	fl.Float64Var(&maxStocks, "max-stocks", 0, "cap on the stock allocation % (0 = no cap)")
	fl.IntVar(&limit, "limit", 10, "rows to print (0 = all)")
	return cmd
}
