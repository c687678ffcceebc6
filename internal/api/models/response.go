package models

// BacktestResponse represents the response from a backtest run
type BacktestResponse struct {
	ID      string          `json:"id,omitempty"`
	Status  string          `json:"status"`
	Summary BacktestSummary `json:"summary"`
	Rows    []YearRow       `json:"rows,omitempty"`
}

// BacktestSummary contains aggregated backtest results
type BacktestSummary struct {
	Allocation   AllocationInfo  `json:"allocation"`
	Style        string          `json:"style"`
	StartBalance float64         `json:"start_balance"`
	StartYear    int             `json:"start_year"`
	EndYear      int             `json:"end_year"`
	NumYears     int             `json:"num_years"`
	Strategy     string          `json:"strategy"`
	Rounding     string          `json:"rounding"`
	FinalBalance float64         `json:"final_balance"`
	CAGR         float64         `json:"cagr"`
	Result       string          `json:"result"` // e.g. "$10,610     6.1%"
	Series       []SeriesSummary `json:"series"`
	Risk         RiskSummary     `json:"risk"`
}

// AllocationInfo is an allocation with the derived bond weight
type AllocationInfo struct {
	CashPct  float64 `json:"cash_pct"`
	BondPct  float64 `json:"bond_pct"`
	StockPct float64 `json:"stock_pct"`
}

// SeriesSummary is one line of the per-asset summary table
type SeriesSummary struct {
	Asset string     `json:"asset"`
	Label string     `json:"label"`
	CAGR  float64    `json:"cagr"`
	Worst *WorstYear `json:"worst_year,omitempty"` // absent for inflation
}

// WorstYear is the lowest annual return of a series
type WorstYear struct {
	Year   int     `json:"year"`
	Return float64 `json:"return"`
	Text   string  `json:"text"` // e.g. "2008:  -37.0%"
}

// RiskSummary describes the portfolio's own annual returns
type RiskSummary struct {
	WorstYear   WorstYear `json:"worst_year"`
	MeanReturn  float64   `json:"mean_return"`
	StdDev      float64   `json:"std_dev"`
	MaxDrawdown float64   `json:"max_drawdown"`
}

// YearRow represents one year of the backtest trajectory
type YearRow struct {
	Year          int     `json:"year"`
	Cash          float64 `json:"cash"`
	Bonds         float64 `json:"bonds"`
	Stocks        float64 `json:"stocks"`
	Total         float64 `json:"total"`
	AllCash       float64 `json:"all_cash"`
	AllBonds      float64 `json:"all_bonds"`
	AllStocks     float64 `json:"all_stocks"`
	InflationOnly float64 `json:"inflation_only"`
}

// RowsResponse holds the trajectory of a stored result
type RowsResponse struct {
	ID   string    `json:"id"`
	Rows []YearRow `json:"rows"`
}

// CompareBacktestResponse represents the response from a comparison
type CompareBacktestResponse struct {
	Comparison []ComparisonResult `json:"comparison"`
}

// ComparisonResult contains results for one variation. Exactly one of
// Summary and Error is set.
type ComparisonResult struct {
	Name    string           `json:"name"`
	ID      string           `json:"id,omitempty"`
	Summary *BacktestSummary `json:"summary,omitempty"`
	Error   *ErrorDetail     `json:"error,omitempty"`
}

// RankResponse represents the response from ranking allocations
type RankResponse struct {
	StartYear  int       `json:"start_year"`
	EndYear    int       `json:"end_year"`
	Step       float64   `json:"step"`
	Candidates int       `json:"candidates"`
	Rankings   []Ranking `json:"rankings"`
}

// Ranking represents one ranked allocation
type Ranking struct {
	Rank         int            `json:"rank"`
	Allocation   AllocationInfo `json:"allocation"`
	Style        string         `json:"style"`
	FinalBalance float64        `json:"final_balance"`
	CAGR         float64        `json:"cagr"`
	WorstYear    WorstYear      `json:"worst_year"`
	MaxDrawdown  float64        `json:"max_drawdown"`
}

// ReturnsResponse holds historical annual returns
type ReturnsResponse struct {
	FirstYear int         `json:"first_year"`
	LastYear  int         `json:"last_year"`
	Count     int         `json:"count"`
	Rows      []ReturnRow `json:"rows"`
}

// ReturnRow is one year of historical returns as fractions
type ReturnRow struct {
	Year      int     `json:"year"`
	Cash      float64 `json:"cash"`
	Bonds     float64 `json:"bonds"`
	Stocks    float64 `json:"stocks"`
	Inflation float64 `json:"inflation"`
}

// TimeframeInfo represents a preset holding period
type TimeframeInfo struct {
	ID        string `json:"id"`
	Label     string `json:"label"`
	StartYear int    `json:"start_year"`
	NumYears  int    `json:"num_years"`
	EndYear   int    `json:"end_year"`
	Available bool   `json:"available"` // covered by the loaded table
}

// ScenarioInfo represents information about a scenario preset
type ScenarioInfo struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	File        string         `json:"file"`
	Allocation  AllocationInfo `json:"allocation"`
	Timeframe   string         `json:"timeframe,omitempty"`
	Strategy    string         `json:"strategy,omitempty"`
}

// StrategyInfo represents information about a strategy
type StrategyInfo struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Parameters  []ParameterInfo `json:"parameters"`
}

// ParameterInfo describes a strategy parameter
type ParameterInfo struct {
	Name        string      `json:"name"`
	Type        string      `json:"type"` // "float", "int", "string"
	Description string      `json:"description"`
	Default     interface{} `json:"default,omitempty"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information
type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}
