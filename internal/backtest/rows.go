package backtest

import (
	"allocation-backtest/internal/model"
)

// YearRow is one year of backtest output. Balances are whole currency units
// as of year end. The first row of a result is the seed year (start-1),
// holding the starting balance split by the allocation.
type YearRow struct {
	Year int `json:"year"`

	Cash   float64 `json:"cash"`
	Bonds  float64 `json:"bonds"`
	Stocks float64 `json:"stocks"`
	Total  float64 `json:"total"`

	// Single-series references grown from the starting balance without rebalancing.
	AllCash       float64 `json:"all_cash"`
	AllBonds      float64 `json:"all_bonds"`
	AllStocks     float64 `json:"all_stocks"`
	InflationOnly float64 `json:"inflation_only"`
}

// Balance returns the reference balance tracked for a single asset.
func (r YearRow) Balance(a model.Asset) float64 {
	switch a {
	case model.AssetCash:
		return r.AllCash
	case model.AssetBonds:
		return r.AllBonds
	case model.AssetStocks:
		return r.AllStocks
	case model.AssetInflation:
		return r.InflationOnly
	default:
		return 0
	}
}

// Result is the output of one run. It is never modified after Run returns.
type Result struct {
	Allocation   model.Allocation `json:"allocation"`
	StartBalance float64          `json:"start_balance"`
	Period       model.Period     `json:"period"`
	Strategy     string           `json:"strategy"`
	Rounding     Rounding         `json:"rounding"`

	Rows    []YearRow `json:"rows"`
	Summary Summary   `json:"summary"`
}

// Column extracts a per-year column for CAGR and charting.
func (r *Result) Column(f func(YearRow) float64) []float64 {
	out := make([]float64, len(r.Rows))
	for i, row := range r.Rows {
		out[i] = f(row)
	}
	return out
}

// Final is the last row of the result.
func (r *Result) Final() YearRow {
	return r.Rows[len(r.Rows)-1]
}
