package model

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var ErrInvalidAllocation = errors.New("invalid allocation")

var hundred = decimal.NewFromInt(100)

// Allocation splits a portfolio between cash, stocks and bonds.
// Units: percentages in [0,100]. Bonds take whatever cash and stocks leave.
type Allocation struct {
	CashPct  float64 `json:"cash_pct" yaml:"cash_pct"`
	StockPct float64 `json:"stock_pct" yaml:"stock_pct"`
}

// NewAllocation validates cash and stock percentages.
func NewAllocation(cashPct, stockPct float64) (Allocation, error) {
	a := Allocation{CashPct: cashPct, StockPct: stockPct}
	if err := a.Validate(); err != nil {
		return Allocation{}, err
	}
	return a, nil
}

func (a Allocation) Validate() error {
	if a.CashPct < 0 || a.CashPct > 100 {
		return fmt.Errorf("%w: cash_pct must be in [0, 100], got %v", ErrInvalidAllocation, a.CashPct)
	}
	if a.StockPct < 0 || a.StockPct > 100 {
		return fmt.Errorf("%w: stock_pct must be in [0, 100], got %v", ErrInvalidAllocation, a.StockPct)
	}
	if a.bonds().IsNegative() {
		return fmt.Errorf("%w: cash_pct + stock_pct must be <= 100, got %v", ErrInvalidAllocation, a.CashPct+a.StockPct)
	}
	return nil
}

// bonds derives the bond share in decimal so cash+bonds+stocks is exactly 100.
func (a Allocation) bonds() decimal.Decimal {
	return hundred.Sub(decimal.NewFromFloat(a.CashPct)).Sub(decimal.NewFromFloat(a.StockPct))
}

func (a Allocation) BondPct() float64 {
	return a.bonds().InexactFloat64()
}

// Weights returns the cash, bond and stock fractions (0..1).
func (a Allocation) Weights() (cash, bonds, stocks float64) {
	return decimal.NewFromFloat(a.CashPct).Div(hundred).InexactFloat64(),
		a.bonds().Div(hundred).InexactFloat64(),
		decimal.NewFromFloat(a.StockPct).Div(hundred).InexactFloat64()
}

// Total is cash+bonds+stocks computed exactly; 100 for any valid allocation.
func (a Allocation) Total() decimal.Decimal {
	return decimal.NewFromFloat(a.CashPct).Add(a.bonds()).Add(decimal.NewFromFloat(a.StockPct))
}

func (a Allocation) Style() Style { return StyleFromStockPct(a.StockPct) }

// ClampAllocation pulls user input into range: cash into [0,100] and stocks
// into [0, 100-cash], so the stock control never exceeds what cash leaves.
func ClampAllocation(cashPct, stockPct float64) Allocation {
	cash := clamp(cashPct, 0, 100)
	stock := clamp(stockPct, 0, 100-cash)
	return Allocation{CashPct: cash, StockPct: stock}
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
