package models

// BacktestRequest represents the request body for running a backtest
type BacktestRequest struct {
	Config  BacktestConfig  `json:"config"`
	Options BacktestOptions `json:"options,omitempty"`
}

// BacktestConfig mirrors a YAML scenario. Fields left out fall back to the
// named scenario preset, if any.
type BacktestConfig struct {
	// ScenarioFile names a preset in the scenario directory, without extension.
	ScenarioFile string          `json:"scenario_file,omitempty"`
	Allocation   AllocationInput `json:"allocation"`
	StartBalance float64         `json:"start_balance"`
	StartYear    int             `json:"start_year,omitempty"`
	NumYears     int             `json:"num_years,omitempty"`
	Timeframe    string          `json:"timeframe,omitempty"`
	Strategy     StrategyConfig  `json:"strategy,omitempty"`
	Rounding     string          `json:"rounding,omitempty"` // "output" (default) or "per_step"
}

// AllocationInput uses pointers so an explicit 0 overrides a preset.
type AllocationInput struct {
	CashPct  *float64 `json:"cash_pct"`
	StockPct *float64 `json:"stock_pct"`
}

// StrategyConfig defines strategy and its parameters
type StrategyConfig struct {
	Name   string                 `json:"name,omitempty"`
	Params map[string]interface{} `json:"params,omitempty"`
}

// BacktestOptions contains optional backtest parameters
type BacktestOptions struct {
	// Clamp fits the allocation and period into valid ranges instead of
	// rejecting them.
	Clamp       bool `json:"clamp,omitempty"`
	IncludeRows bool `json:"include_rows,omitempty"` // default: false
}

// CompareBacktestRequest represents a request to compare multiple backtests
type CompareBacktestRequest struct {
	BaseConfig BacktestConfig      `json:"base_config"`
	Variations []BacktestVariation `json:"variations" binding:"required,min=1,dive"`
	Options    BacktestOptions     `json:"options,omitempty"`
}

// BacktestVariation defines a variation to test
type BacktestVariation struct {
	Name   string         `json:"name" binding:"required"`
	Config BacktestConfig `json:"config"`
}

// RankRequest represents a request to rank allocations over one period
type RankRequest struct {
	Step         float64 `form:"step"`          // default: 10, minimum 1
	StartBalance float64 `form:"start_balance"` // default: 10000
	StartYear    int     `form:"start_year"`
	NumYears     int     `form:"num_years"`
	Timeframe    string  `form:"timeframe"`
	Strategy     string  `form:"strategy"`
	MaxStockPct  float64 `form:"max_stock_pct"`
	Limit        int     `form:"limit"` // default: 10
}

// ReturnsRequest filters the historical table by year
type ReturnsRequest struct {
	From int `form:"from"`
	To   int `form:"to"`
}
