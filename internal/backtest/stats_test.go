package backtest

import (
	"testing"

	"allocation-backtest/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCAGR(t *testing.T) {
	got, err := CAGR([]float64{10000, 10610})
	require.NoError(t, err)
	assert.InDelta(t, 0.061, got, 1e-12)
	assert.Equal(t, "6.1%", FormatPercent(got))

	// Doubling over two years.
	got, err = CAGR([]float64{100, 150, 200})
	require.NoError(t, err)
	assert.InDelta(t, 0.41421356, got, 1e-8)
}

func TestCAGR_DivisionByZero(t *testing.T) {
	_, err := CAGR([]float64{10000})
	assert.ErrorIs(t, err, ErrDivisionByZero)

	_, err = CAGR(nil)
	assert.ErrorIs(t, err, ErrDivisionByZero)

	_, err = CAGR([]float64{0, 100})
	assert.ErrorIs(t, err, ErrDivisionByZero)
}

func TestWorstYear(t *testing.T) {
	w, err := WorstYear(map[int]float64{2006: 0.05, 2007: -0.20, 2008: 0.08})
	require.NoError(t, err)
	assert.Equal(t, YearReturn{Year: 2007, Return: -0.20}, w)
	assert.Equal(t, "2007:  -20.0%", w.String())
}

func TestWorstYear_TieGoesToEarliest(t *testing.T) {
	series := map[int]float64{2005: 0, 2001: -0.1, 1999: -0.1, 2003: -0.05}
	for i := 0; i < 20; i++ {
		w, err := WorstYear(series)
		require.NoError(t, err)
		assert.Equal(t, 1999, w.Year)
	}
}

func TestWorstYear_YearIsFromInput(t *testing.T) {
	series := map[int]float64{1931: -0.43, 1932: -0.08, 1933: 0.5}
	w, err := WorstYear(series)
	require.NoError(t, err)
	_, ok := series[w.Year]
	assert.True(t, ok)
}

func TestWorstYear_Empty(t *testing.T) {
	_, err := WorstYear(map[int]float64{})
	assert.ErrorIs(t, err, ErrInsufficientHistory)
}

func TestSummarize(t *testing.T) {
	res, err := Run(exampleTable(t), model.Allocation{CashPct: 50, StockPct: 30}, 10000, 2007, 1)
	require.NoError(t, err)

	s := res.Summary
	assert.Equal(t, 2007, s.StartYear)
	assert.Equal(t, 2007, s.EndYear)
	assert.Equal(t, 10610.0, s.FinalBalance)
	assert.InDelta(t, 0.061, s.CAGR, 1e-12)
	assert.Equal(t, model.StyleConservative, s.Style)
	assert.Equal(t, "$10,610     6.1%", s.Text)

	require.Len(t, s.Series, 4)
	assert.Equal(t, model.AssetCash, s.Series[0].Asset)
	assert.InDelta(t, 0.05, s.Series[0].CAGR, 1e-12)
	require.NotNil(t, s.Series[0].Worst)
	assert.Equal(t, 2007, s.Series[0].Worst.Year)

	assert.Equal(t, model.AssetInflation, s.Series[3].Asset)
	assert.InDelta(t, 0.02, s.Series[3].CAGR, 1e-12)
	assert.Nil(t, s.Series[3].Worst)
}

func TestSummarize_ExcludesSeedYear(t *testing.T) {
	tbl := mustTable(t,
		model.ReturnRow{Year: 2000, Stocks: -0.5},
		model.ReturnRow{Year: 2001, Stocks: 0.1},
		model.ReturnRow{Year: 2002, Stocks: -0.1},
	)
	res, err := Run(tbl, model.Allocation{StockPct: 100}, 1000, 2001, 2)
	require.NoError(t, err)
	assert.Equal(t, 2002, res.Summary.Series[2].Worst.Year)
}

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "$10,610.00", FormatMoney(10610))
	assert.Equal(t, "$0.00", FormatMoney(0))
	assert.Equal(t, "-$12.50", FormatMoney(-12.5))
}

func TestFormatDollars(t *testing.T) {
	assert.Equal(t, "$10,610", FormatDollars(10610))
	assert.Equal(t, "$10,610", FormatDollars(10610.4))
	assert.Equal(t, "$0", FormatDollars(0))
}

func TestFormatMoney_BeyondInt64Cents(t *testing.T) {
	// 1e17 dollars is 1e19 cents, past math.MaxInt64.
	assert.Equal(t, "$100,000,000,000,000,000.00", FormatMoney(1e17))
	assert.Equal(t, "-$100,000,000,000,000,000.00", FormatMoney(-1e17))
	assert.Equal(t, "$100,000,000,000,000,000", FormatDollars(1e17))
}

func TestResultText_LargeBalance(t *testing.T) {
	res, err := Run(exampleTable(t), model.Allocation{CashPct: 50, StockPct: 30}, 1e17, 2007, 1)
	require.NoError(t, err)
	assert.Regexp(t, `^\$106,100,000,000,000,\d{3}     6\.1%$`, res.Summary.Text)
}
