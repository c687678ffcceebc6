package analysis

import (
	"math"
	"sort"

	"allocation-backtest/internal/backtest"
)

// AnnualStats summarizes the portfolio's year-over-year returns. It does not
// depend on the starting balance, so allocations can be compared directly.
type AnnualStats struct {
	Count int `json:"count"`

	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
	P05    float64 `json:"p05"`
	P95    float64 `json:"p95"`

	// Worst is the lowest annual return; ties go to the earliest year.
	Worst backtest.YearReturn `json:"worst"`
	// MaxDrawdown is the largest peak-to-trough fall of the year-end total,
	// as a non-positive fraction.
	MaxDrawdown float64 `json:"max_drawdown"`
}

// PortfolioReturns derives the portfolio's return for each year of the
// holding period from consecutive year-end totals.
func PortfolioReturns(res *backtest.Result) map[int]float64 {
	out := make(map[int]float64, len(res.Rows))
	for i := 1; i < len(res.Rows); i++ {
		prev := res.Rows[i-1].Total
		if prev == 0 {
			continue
		}
		out[res.Rows[i].Year] = res.Rows[i].Total/prev - 1
	}
	return out
}

// ComputeAnnualStats is the zero value when the result has no holding years.
func ComputeAnnualStats(res *backtest.Result) AnnualStats {
	var s AnnualStats
	returns := PortfolioReturns(res)
	if len(returns) == 0 {
		return s
	}
	s.Count = len(returns)
	s.Worst, _ = backtest.WorstYear(returns)

	sum := 0.0
	minv := math.Inf(1)
	maxv := math.Inf(-1)
	vals := make([]float64, 0, len(returns))
	for _, v := range returns {
		vals = append(vals, v)
		sum += v
		if v < minv {
			minv = v
		}
		if v > maxv {
			maxv = v
		}
	}
	sort.Float64s(vals)
	s.Min = minv
	s.Max = maxv
	s.Mean = sum / float64(len(vals))
	s.P05 = percentileSorted(vals, 0.05)
	s.P95 = percentileSorted(vals, 0.95)

	if len(vals) > 1 {
		ss := 0.0
		for _, v := range vals {
			ss += (v - s.Mean) * (v - s.Mean)
		}
		s.StdDev = math.Sqrt(ss / float64(len(vals)-1))
	}

	s.MaxDrawdown = maxDrawdown(res.Column(func(r backtest.YearRow) float64 { return r.Total }))
	return s
}

func percentileSorted(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[len(sorted)-1]
	}
	// Linear interpolation between order stats.
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

func maxDrawdown(totals []float64) float64 {
	peak := 0.0
	worst := 0.0
	for _, v := range totals {
		if v > peak {
			peak = v
		}
		if peak > 0 {
			if dd := v/peak - 1; dd < worst {
				worst = dd
			}
		}
	}
	return worst
}
