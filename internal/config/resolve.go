package config

import (
	"allocation-backtest/internal/backtest"
	"allocation-backtest/internal/data"
	"allocation-backtest/internal/model"

	"go.uber.org/zap"
)

// Engine builds a backtest engine for the scenario's strategy and rounding.
func (c *Config) Engine(logger *zap.Logger) (*backtest.Engine, error) {
	strat, err := c.BuildStrategy()
	if err != nil {
		return nil, err
	}
	rounding, err := backtest.ParseRounding(c.Rounding)
	if err != nil {
		return nil, err
	}
	return backtest.New(
		backtest.WithStrategy(strat),
		backtest.WithRounding(rounding),
		backtest.WithLogger(logger),
	), nil
}

// Inputs resolves the scenario against a return table. With clamp set, the
// allocation and period are fitted into valid ranges the way interactive
// inputs are; otherwise out-of-range values are left for the engine to reject.
func (c *Config) Inputs(table *model.ReturnTable, timeframes []data.Timeframe, clamp bool) (model.BacktestInputs, error) {
	p, err := c.Period(timeframes)
	if err != nil {
		return model.BacktestInputs{}, err
	}

	var alloc model.Allocation
	if clamp {
		alloc = model.ClampAllocation(deref(c.Allocation.CashPct), deref(c.Allocation.StockPct))
		if table != nil {
			p = model.ClampPeriod(table, p.StartYear, p.NumYears)
		}
	} else {
		alloc, err = c.ModelAllocation()
		if err != nil {
			return model.BacktestInputs{}, err
		}
	}

	return model.BacktestInputs{
		Table:        table,
		Allocation:   alloc,
		StartBalance: c.StartBalance,
		StartYear:    p.StartYear,
		NumYears:     p.NumYears,
	}, nil
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
