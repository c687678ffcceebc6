package backtest

import (
	"fmt"
	"math"
	"sort"

	"allocation-backtest/internal/model"
)

// CAGR is the constant annual rate that grows balances[0] into the last
// balance over len(balances)-1 years.
func CAGR(balances []float64) (float64, error) {
	n := len(balances)
	if n < 2 {
		return 0, fmt.Errorf("%w: need at least 2 balances, got %d", ErrDivisionByZero, n)
	}
	if balances[0] == 0 {
		return 0, fmt.Errorf("%w: starting balance is 0", ErrDivisionByZero)
	}
	return math.Pow(balances[n-1]/balances[0], 1/float64(n-1)) - 1, nil
}

// YearReturn pairs a year with a return.
type YearReturn struct {
	Year   int     `json:"year"`
	Return float64 `json:"return"`
}

func (y YearReturn) String() string {
	return fmt.Sprintf("%d:  %s", y.Year, FormatPercent(y.Return))
}

// WorstYear finds the lowest return in a per-year series. Among equal returns
// the earliest year wins.
func WorstYear(returns map[int]float64) (YearReturn, error) {
	if len(returns) == 0 {
		return YearReturn{}, fmt.Errorf("%w: empty return series", ErrInsufficientHistory)
	}
	years := make([]int, 0, len(returns))
	for y := range returns {
		years = append(years, y)
	}
	sort.Ints(years)

	worst := YearReturn{Year: years[0], Return: returns[years[0]]}
	for _, y := range years[1:] {
		if returns[y] < worst.Return {
			worst = YearReturn{Year: y, Return: returns[y]}
		}
	}
	return worst, nil
}

// SeriesSummary is one line of the summary table.
type SeriesSummary struct {
	Asset model.Asset `json:"asset"`
	Label string      `json:"label"`
	CAGR  float64     `json:"cagr"`
	// Worst is nil for series without a meaningful worst year (inflation).
	Worst *YearReturn `json:"worst,omitempty"`
}

// Summary condenses a result for display.
type Summary struct {
	StartYear    int             `json:"start_year"`
	EndYear      int             `json:"end_year"`
	FinalBalance float64         `json:"final_balance"`
	CAGR         float64         `json:"cagr"`
	Style        model.Style     `json:"style"`
	Series       []SeriesSummary `json:"series"`
	Text         string          `json:"text"`
}

// Summarize computes CAGR per tracked column and the worst year of each
// asset's return series over the holding period. The seed year is not part
// of the holding period and is excluded from worst-year search.
func Summarize(res *Result, table *model.ReturnTable) (Summary, error) {
	if len(res.Rows) < 2 {
		return Summary{}, fmt.Errorf("%w: result has %d rows", ErrInsufficientHistory, len(res.Rows))
	}
	start, end := res.Period.StartYear, res.Period.EndYear()

	total, err := CAGR(res.Column(func(r YearRow) float64 { return r.Total }))
	if err != nil {
		return Summary{}, err
	}
	s := Summary{
		StartYear:    start,
		EndYear:      end,
		FinalBalance: res.Final().Total,
		CAGR:         total,
		Style:        res.Allocation.Style(),
	}

	for _, a := range model.Assets {
		cagr, err := CAGR(res.Column(func(r YearRow) float64 { return r.Balance(a) }))
		if err != nil {
			return Summary{}, err
		}
		line := SeriesSummary{Asset: a, Label: a.Label(), CAGR: cagr}
		if a != model.AssetInflation {
			series, err := table.Series(a, start, end)
			if err != nil {
				return Summary{}, fmt.Errorf("%w: %v", ErrInsufficientHistory, err)
			}
			w, err := WorstYear(series)
			if err != nil {
				return Summary{}, err
			}
			line.Worst = &w
		}
		s.Series = append(s.Series, line)
	}

	s.Text = ResultText(s.FinalBalance, s.CAGR)
	return s, nil
}
