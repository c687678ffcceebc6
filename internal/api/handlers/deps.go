package handlers

import (
	"allocation-backtest/internal/data"
	"allocation-backtest/internal/metrics"
	"allocation-backtest/internal/model"

	"go.uber.org/zap"
)

// Deps is the state shared by handlers. Table and Timeframes are loaded once
// at startup and never modified.
type Deps struct {
	Table       *model.ReturnTable
	Timeframes  []data.Timeframe
	ScenarioDir string
	// Store keeps results for later row retrieval; nil disables it.
	Store   data.ResultStore
	Metrics *metrics.Registry
	Logger  *zap.Logger
}

func (d *Deps) logger() *zap.Logger {
	if d.Logger == nil {
		return zap.NewNop()
	}
	return d.Logger
}
