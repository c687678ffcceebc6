package strategy

import "fmt"

// Periodic rebalances in the first holding year and then every Every years.
// Every=1 is full annual rebalancing.
type Periodic struct {
	Every int
}

func (p Periodic) Name() string {
	if p.Every <= 1 {
		return "annual"
	}
	return fmt.Sprintf("periodic(%d)", p.Every)
}

func (p Periodic) Rebalance(ctx Context) bool {
	if p.Every <= 1 {
		return true
	}
	return (ctx.Index-1)%p.Every == 0
}

// Never is buy and hold: the seed split is never reset.
type Never struct{}

func (Never) Name() string { return "buy_and_hold" }

func (Never) Rebalance(Context) bool { return false }
