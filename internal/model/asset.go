package model

// Asset names a return series. Keep these values stable; they appear in CSV
// and JSON output.
type Asset string

const (
	AssetCash      Asset = "cash"
	AssetBonds     Asset = "bonds"
	AssetStocks    Asset = "stocks"
	AssetInflation Asset = "inflation"
)

// Assets lists the series in display order.
var Assets = []Asset{AssetCash, AssetBonds, AssetStocks, AssetInflation}

// Label is the human-readable series name used in tables.
func (a Asset) Label() string {
	switch a {
	case AssetCash:
		return "Cash"
	case AssetBonds:
		return "Bonds"
	case AssetStocks:
		return "Stocks"
	case AssetInflation:
		return "Inflation"
	default:
		return string(a)
	}
}

// Style is the investment style implied by the stock allocation.
type Style string

const (
	StyleConservative Style = "Conservative"
	StyleModerate     Style = "Moderate"
	StyleAggressive   Style = "Aggressive"
)

func StyleFromStockPct(stockPct float64) Style {
	switch {
	case stockPct >= 70:
		return StyleAggressive
	case stockPct <= 30:
		return StyleConservative
	default:
		return StyleModerate
	}
}
