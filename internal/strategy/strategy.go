package strategy

import (
	"fmt"
	"math"
)

// Context describes the year the engine is about to compound.
type Context struct {
	// Index counts holding years from 1 (the start year).
	Index int
	Year  int
}

// Strategy decides whether the portfolio is reset to its target weights at
// the start of a year. Buckets that are not rebalanced keep compounding from
// the previous year's ending balances.
type Strategy interface {
	Name() string
	Rebalance(ctx Context) bool
}

// Default is annual rebalancing.
func Default() Strategy { return Periodic{Every: 1} }

// ByName builds a strategy from its name and optional params.
func ByName(name string, params map[string]any) (Strategy, error) {
	switch name {
	case "", "annual":
		return Default(), nil
	case "periodic":
		every, err := intParam(params, "every", 1)
		if err != nil {
			return nil, fmt.Errorf("periodic: %w", err)
		}
		if every < 1 {
			return nil, fmt.Errorf("periodic: every must be >= 1, got %d", every)
		}
		return Periodic{Every: every}, nil
	case "buy_and_hold", "never":
		return Never{}, nil
	default:
		return nil, fmt.Errorf("unsupported strategy: %q", name)
	}
}

// intParam reads a whole-number param. JSON numbers arrive as float64 and
// YAML ints as int.
func intParam(m map[string]any, key string, def int) (int, error) {
	v, ok := m[key]
	if !ok || v == nil {
		return def, nil
	}
	switch x := v.(type) {
	case int:
		return x, nil
	case int64:
		return int(x), nil
	case float64:
		if x != math.Trunc(x) || math.IsInf(x, 0) || math.Abs(x) > math.MaxInt32 {
			return 0, fmt.Errorf("%s must be a whole number, got %v", key, x)
		}
		return int(x), nil
	default:
		return 0, fmt.Errorf("%s must be a number, got %T", key, v)
	}
}
