package model

import (
	"errors"
	"fmt"
	"math"
)

// ReturnRow is one year of historical annual returns.
// All returns are fractional (0.07 == 7%) and measured at year end.
type ReturnRow struct {
	Year      int     `json:"year"`
	Cash      float64 `json:"cash"`      // 3-month T.Bill
	Bonds     float64 `json:"bonds"`     // 10-year T.Bond
	Stocks    float64 `json:"stocks"`    // S&P 500
	Inflation float64 `json:"inflation"` // CPI
}

// Return gives the row's return for the given asset.
func (r ReturnRow) Return(a Asset) float64 {
	switch a {
	case AssetCash:
		return r.Cash
	case AssetBonds:
		return r.Bonds
	case AssetStocks:
		return r.Stocks
	case AssetInflation:
		return r.Inflation
	default:
		return 0
	}
}

// ReturnTable is an ordered, contiguous set of ReturnRows.
// It is built once at startup and shared read-only afterwards.
type ReturnTable struct {
	rows []ReturnRow
}

var (
	ErrEmptyTable     = errors.New("return table has no rows")
	ErrNonContiguous  = errors.New("return table years must be unique, ascending and contiguous")
	ErrYearOutOfRange = errors.New("year is outside the return table")
	ErrNonFinite      = errors.New("return is not a finite number")
)

// NewReturnTable validates rows and copies them into a table.
func NewReturnTable(rows []ReturnRow) (*ReturnTable, error) {
	if len(rows) == 0 {
		return nil, ErrEmptyTable
	}
	for i, r := range rows {
		for _, a := range Assets {
			if v := r.Return(a); math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, fmt.Errorf("%w: %s %d is %v", ErrNonFinite, a.Label(), r.Year, v)
			}
		}
		if i > 0 && rows[i].Year != rows[i-1].Year+1 {
			return nil, fmt.Errorf("%w: year %d follows %d", ErrNonContiguous, rows[i].Year, rows[i-1].Year)
		}
	}
	out := make([]ReturnRow, len(rows))
	copy(out, rows)
	return &ReturnTable{rows: out}, nil
}

// WithSeedYear returns a table with a zero-return row prepended for the year
// before the first data year. The data is year-end, so a backtest starting in
// the first data year needs that row to hold its starting balance.
func (t *ReturnTable) WithSeedYear() *ReturnTable {
	out := make([]ReturnRow, 0, len(t.rows)+1)
	out = append(out, ReturnRow{Year: t.rows[0].Year - 1})
	out = append(out, t.rows...)
	return &ReturnTable{rows: out}
}

func (t *ReturnTable) Len() int { return len(t.rows) }

// FirstYear is the first year present in the table (the seed year if one was added).
func (t *ReturnTable) FirstYear() int { return t.rows[0].Year }

// LastYear is the last year present in the table.
func (t *ReturnTable) LastYear() int { return t.rows[len(t.rows)-1].Year }

// Covers reports whether every year in [from, to] is present.
func (t *ReturnTable) Covers(from, to int) bool {
	return from <= to && from >= t.FirstYear() && to <= t.LastYear()
}

// Row returns the row for year.
func (t *ReturnTable) Row(year int) (ReturnRow, error) {
	if year < t.FirstYear() || year > t.LastYear() {
		return ReturnRow{}, fmt.Errorf("%w: %d not in [%d, %d]", ErrYearOutOfRange, year, t.FirstYear(), t.LastYear())
	}
	return t.rows[year-t.FirstYear()], nil
}

// Range returns a copy of the rows for years [from, to].
func (t *ReturnTable) Range(from, to int) ([]ReturnRow, error) {
	if !t.Covers(from, to) {
		return nil, fmt.Errorf("%w: [%d, %d] not in [%d, %d]", ErrYearOutOfRange, from, to, t.FirstYear(), t.LastYear())
	}
	lo := from - t.FirstYear()
	out := make([]ReturnRow, to-from+1)
	copy(out, t.rows[lo:lo+len(out)])
	return out, nil
}

// Rows returns a copy of all rows.
func (t *ReturnTable) Rows() []ReturnRow {
	out := make([]ReturnRow, len(t.rows))
	copy(out, t.rows)
	return out
}

// Series extracts one asset's returns for [from, to] keyed by year.
func (t *ReturnTable) Series(a Asset, from, to int) (map[int]float64, error) {
	rows, err := t.Range(from, to)
	if err != nil {
		return nil, err
	}
	out := make(map[int]float64, len(rows))
	for _, r := range rows {
		out[r.Year] = r.Return(a)
	}
	return out, nil
}
