package backtest

import (
	"fmt"
	"math"

	"allocation-backtest/internal/model"
	"allocation-backtest/internal/strategy"

	"go.uber.org/zap"
)

type Engine struct {
	strategy strategy.Strategy
	rounding Rounding
	logger   *zap.Logger
}

type Option func(*Engine)

// WithStrategy sets the rebalancing strategy (default: annual).
func WithStrategy(s strategy.Strategy) Option {
	return func(e *Engine) {
		if s != nil {
			e.strategy = s
		}
	}
}

// WithRounding sets the rounding policy (default: RoundAtOutput).
func WithRounding(r Rounding) Option {
	return func(e *Engine) { e.rounding = r }
}

func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

func New(opts ...Option) *Engine {
	e := &Engine{
		strategy: strategy.Default(),
		rounding: RoundAtOutput,
		logger:   zap.NewNop(),
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Run backtests an allocation with the default engine: annual rebalancing,
// rounding at output.
func Run(table *model.ReturnTable, alloc model.Allocation, startBalance float64, startYear, numYears int) (*Result, error) {
	return New().Run(model.BacktestInputs{
		Table:        table,
		Allocation:   alloc,
		StartBalance: startBalance,
		StartYear:    startYear,
		NumYears:     numYears,
	})
}

// balances is the unrounded state carried from one year to the next.
type balances struct {
	cash, bonds, stocks float64
	ref                 [4]float64 // indexed like model.Assets
}

func (b balances) total() float64 { return b.cash + b.bonds + b.stocks }

func (b balances) finite() bool {
	if math.IsInf(b.total(), 0) || math.IsNaN(b.total()) {
		return false
	}
	for _, v := range b.ref {
		if math.IsInf(v, 0) || math.IsNaN(v) {
			return false
		}
	}
	return true
}

// Run computes the year-by-year trajectory for in. The table needs rows for
// StartYear-1 through EndYear. The returned Result has NumYears+1 rows.
func (e *Engine) Run(in model.BacktestInputs) (*Result, error) {
	if err := in.Allocation.Validate(); err != nil {
		return nil, err
	}
	if !(in.StartBalance > 0) || math.IsInf(in.StartBalance, 1) {
		return nil, fmt.Errorf("%w: got %v", ErrInvalidBalance, in.StartBalance)
	}
	if in.NumYears < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidPeriod, in.NumYears)
	}
	if in.Table == nil {
		return nil, fmt.Errorf("%w: no return table", ErrInsufficientHistory)
	}
	seedYear, endYear := in.StartYear-1, in.EndYear()
	history, err := in.Table.Range(seedYear, endYear)
	if err != nil {
		return nil, fmt.Errorf("%w: need years %d-%d, table has %d-%d",
			ErrInsufficientHistory, seedYear, endYear, in.Table.FirstYear(), in.Table.LastYear())
	}

	wCash, wBonds, wStocks := in.Allocation.Weights()
	cur := balances{
		cash:   wCash * in.StartBalance,
		bonds:  wBonds * in.StartBalance,
		stocks: wStocks * in.StartBalance,
	}
	for i := range cur.ref {
		cur.ref[i] = in.StartBalance
	}

	raw := make([]balances, 0, len(history))
	raw = append(raw, cur)
	for i, yr := range history[1:] {
		total := cur.total()
		if e.strategy.Rebalance(strategy.Context{Index: i + 1, Year: yr.Year}) {
			cur.cash = total * wCash
			cur.bonds = total * wBonds
			cur.stocks = total * wStocks
		}
		cur.cash *= 1 + yr.Cash
		cur.bonds *= 1 + yr.Bonds
		cur.stocks *= 1 + yr.Stocks
		for j, a := range model.Assets {
			cur.ref[j] *= 1 + yr.Return(a)
		}
		if !cur.finite() {
			return nil, fmt.Errorf("%w: year %d", ErrOverflow, yr.Year)
		}
		if e.rounding == RoundPerStep {
			cur = cur.rounded()
		}
		raw = append(raw, cur)
	}

	rows := make([]YearRow, len(raw))
	for i, b := range raw {
		rows[i] = b.row(seedYear + i)
	}

	res := &Result{
		Allocation:   in.Allocation,
		StartBalance: in.StartBalance,
		Period:       model.Period{StartYear: in.StartYear, NumYears: in.NumYears},
		Strategy:     e.strategy.Name(),
		Rounding:     e.rounding,
		Rows:         rows,
	}
	res.Summary, err = Summarize(res, in.Table)
	if err != nil {
		return nil, err
	}

	e.logger.Debug("backtest complete",
		zap.Float64("cash_pct", in.Allocation.CashPct),
		zap.Float64("stock_pct", in.Allocation.StockPct),
		zap.Int("start_year", in.StartYear),
		zap.Int("num_years", in.NumYears),
		zap.String("strategy", res.Strategy),
		zap.Float64("final_total", res.Final().Total),
	)
	return res, nil
}

func (b balances) rounded() balances {
	out := balances{
		cash:   roundUnit(b.cash),
		bonds:  roundUnit(b.bonds),
		stocks: roundUnit(b.stocks),
	}
	for i, v := range b.ref {
		out.ref[i] = roundUnit(v)
	}
	return out
}

// row rounds once. Total is the sum of the rounded buckets so the row adds up
// exactly.
func (b balances) row(year int) YearRow {
	r := YearRow{
		Year:          year,
		Cash:          roundUnit(b.cash),
		Bonds:         roundUnit(b.bonds),
		Stocks:        roundUnit(b.stocks),
		AllCash:       roundUnit(b.ref[0]),
		AllBonds:      roundUnit(b.ref[1]),
		AllStocks:     roundUnit(b.ref[2]),
		InflationOnly: roundUnit(b.ref[3]),
	}
	r.Total = r.Cash + r.Bonds + r.Stocks
	return r
}
