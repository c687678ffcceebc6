package analysis

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"allocation-backtest/internal/backtest"
	"allocation-backtest/internal/model"
)

var ErrInvalidStep = errors.New("invalid sweep step")

// MinStep is the finest grid spacing accepted, in percentage points. A step of
// 1 gives 5151 allocations.
const MinStep = 1.0

// SweepOptions describes the allocation grid and the period to test it on.
type SweepOptions struct {
	// Step is the grid spacing in percentage points; it must divide 100 and
	// be at least MinStep.
	Step         float64
	StartBalance float64
	Period       model.Period
	// MaxStockPct caps the stock weight of generated allocations (0 = 100).
	MaxStockPct float64
}

// Candidate is one allocation evaluated over the sweep period.
type Candidate struct {
	Allocation   model.Allocation `json:"allocation"`
	Style        model.Style      `json:"style"`
	FinalBalance float64          `json:"final_balance"`
	CAGR         float64          `json:"cagr"`
	Annual       AnnualStats      `json:"annual"`
}

// Grid lists every allocation with cash and stock on multiples of step and
// cash+stock <= 100, cash-major.
func Grid(step, maxStockPct float64) ([]model.Allocation, error) {
	if !(step > 0) || step > 100 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidStep, step)
	}
	if step < MinStep {
		return nil, fmt.Errorf("%w: %v is finer than %v", ErrInvalidStep, step, MinStep)
	}
	n := math.Round(100 / step)
	if math.Abs(n*step-100) > 1e-9 {
		return nil, fmt.Errorf("%w: %v does not divide 100", ErrInvalidStep, step)
	}
	if maxStockPct <= 0 || maxStockPct > 100 {
		maxStockPct = 100
	}
	steps := int(n)
	out := make([]model.Allocation, 0, (steps+1)*(steps+2)/2)
	for i := 0; i <= steps; i++ {
		cash := float64(i) * step
		for j := 0; i+j <= steps; j++ {
			stock := float64(j) * step
			if stock > maxStockPct {
				break
			}
			out = append(out, model.Allocation{CashPct: cash, StockPct: stock})
		}
	}
	return out, nil
}

// SweepAllocations backtests every grid allocation with engine and returns the
// candidates ranked by RankByCAGR.
func SweepAllocations(engine *backtest.Engine, table *model.ReturnTable, opts SweepOptions) ([]Candidate, error) {
	grid, err := Grid(opts.Step, opts.MaxStockPct)
	if err != nil {
		return nil, err
	}
	out := make([]Candidate, 0, len(grid))
	for _, alloc := range grid {
		res, err := engine.Run(model.BacktestInputs{
			Table:        table,
			Allocation:   alloc,
			StartBalance: opts.StartBalance,
			StartYear:    opts.Period.StartYear,
			NumYears:     opts.Period.NumYears,
		})
		if err != nil {
			// Every candidate shares the period, so the first failure applies to all.
			return nil, err
		}
		out = append(out, Candidate{
			Allocation:   alloc,
			Style:        alloc.Style(),
			FinalBalance: res.Summary.FinalBalance,
			CAGR:         res.Summary.CAGR,
			Annual:       ComputeAnnualStats(res),
		})
	}
	RankByCAGR(out)
	return out, nil
}

// RankByCAGR sorts descending by CAGR. Ties go to the higher worst-year
// return, then to the lower cash weight.
func RankByCAGR(cs []Candidate) {
	sort.SliceStable(cs, func(i, j int) bool {
		a, b := cs[i], cs[j]
		if a.CAGR != b.CAGR {
			return a.CAGR > b.CAGR
		}
		if a.Annual.Worst.Return != b.Annual.Worst.Return {
			return a.Annual.Worst.Return > b.Annual.Worst.Return
		}
		return a.Allocation.CashPct < b.Allocation.CashPct
	})
}
