package model

// BacktestInputs is the canonical set of inputs to one backtest run.
// The table is shared and must not be modified by the engine.
type BacktestInputs struct {
	Table        *ReturnTable
	Allocation   Allocation
	StartBalance float64
	StartYear    int
	NumYears     int
}

// EndYear is the last year of the holding period.
func (in BacktestInputs) EndYear() int { return in.StartYear + in.NumYears - 1 }
