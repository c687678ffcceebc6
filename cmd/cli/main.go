package main

import (
	"fmt"
	"os"

	"allocation-backtest/internal/data"
	"allocation-backtest/internal/logger"
	"allocation-backtest/internal/model"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// rootOptions are the persistent flags shared by every command.
type rootOptions struct {
	dataFile       string
	timeframesFile string
	debug          bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:   "backtest-cli",
		Short: "Backtest cash/bond/stock allocations against historical annual returns",
		Long: `backtest-cli runs a rebalanced cash/bond/stock portfolio through a table of
historical annual returns (3-month T.Bill, 10-year T.Bond, S&P 500, inflation)
and reports the year-by-year balances, CAGR and worst year of each series.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&opts.dataFile, "data", "data/historic.csv", "historical returns file (.csv or .json)")
	cmd.PersistentFlags().StringVar(&opts.timeframesFile, "timeframes", "", "timeframe presets JSON file (default: built in)")
	cmd.PersistentFlags().BoolVarP(&opts.debug, "debug", "d", false, "enable debug logging")

	cmd.AddCommand(
		newBacktestCmd(opts),
		newRankCmd(opts),
		newReturnsCmd(opts),
		newTimeframesCmd(opts),
	)
	return cmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func (o *rootOptions) logger() *zap.Logger {
	if !o.debug {
		return zap.NewNop()
	}
	return logger.Must(true)
}

func (o *rootOptions) loadTable() (*model.ReturnTable, error) {
	table, err := data.LoadReturns(o.dataFile)
	if err != nil {
		return nil, fmt.Errorf("loading returns: %w", err)
	}
	return table, nil
}

func (o *rootOptions) loadTimeframes() ([]data.Timeframe, error) {
	tfs, err := data.LoadTimeframes(o.timeframesFile)
	if err != nil {
		return nil, fmt.Errorf("loading timeframes: %w", err)
	}
	return tfs, nil
}
