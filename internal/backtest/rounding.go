package backtest

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Rounding selects when balances are rounded to whole units.
type Rounding int

const (
	// RoundAtOutput compounds at full precision and rounds each output
	// field once.
	RoundAtOutput Rounding = iota
	// RoundPerStep rounds bucket and reference balances every year and
	// feeds the rounded values into the next year.
	RoundPerStep
)

func (r Rounding) String() string {
	switch r {
	case RoundAtOutput:
		return "output"
	case RoundPerStep:
		return "per_step"
	default:
		return fmt.Sprintf("Rounding(%d)", int(r))
	}
}

// ParseRounding accepts "", "output" or "per_step".
func ParseRounding(s string) (Rounding, error) {
	switch s {
	case "", "output":
		return RoundAtOutput, nil
	case "per_step", "step":
		return RoundPerStep, nil
	default:
		return 0, fmt.Errorf("unknown rounding policy %q", s)
	}
}

func (r Rounding) MarshalText() ([]byte, error) { return []byte(r.String()), nil }

func (r *Rounding) UnmarshalText(b []byte) error {
	v, err := ParseRounding(string(b))
	if err != nil {
		return err
	}
	*r = v
	return nil
}

// roundUnit rounds to a whole unit, half to even.
func roundUnit(x float64) float64 {
	return decimal.NewFromFloat(x).RoundBank(0).InexactFloat64()
}
