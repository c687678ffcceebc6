package data

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"allocation-backtest/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadReturns_CSV(t *testing.T) {
	tbl, err := LoadReturns(filepath.Join("testdata", "returns.csv"))
	require.NoError(t, err)

	// Seed year prepended, rows sorted.
	assert.Equal(t, 2006, tbl.FirstYear())
	assert.Equal(t, 2009, tbl.LastYear())

	seed, err := tbl.Row(2006)
	require.NoError(t, err)
	assert.Equal(t, model.ReturnRow{Year: 2006}, seed)

	row, err := tbl.Row(2008)
	require.NoError(t, err)
	assert.InDelta(t, 0.02, row.Cash, 1e-12)
	assert.InDelta(t, 0.08, row.Bonds, 1e-12)
	assert.InDelta(t, -0.30, row.Stocks, 1e-12)
	assert.InDelta(t, 0.0, row.Inflation, 1e-12)
}

func TestLoadReturns_JSON(t *testing.T) {
	tbl, err := LoadReturns(filepath.Join("testdata", "returns.json"))
	require.NoError(t, err)
	assert.Equal(t, 1999, tbl.FirstYear())
	assert.Equal(t, 2001, tbl.LastYear())

	row, err := tbl.Row(2000)
	require.NoError(t, err)
	assert.Equal(t, -0.09, row.Stocks)
}

func TestLoadReturns_UnsupportedType(t *testing.T) {
	_, err := LoadReturns("historic.xlsx")
	assert.Error(t, err)
}

func TestParseReturnsCSV_Fractions(t *testing.T) {
	in := "year, cash, bonds, stocks, inflation\n1928,0.0308,0.0084,0.4381,-0.0116\n\n1929,0.0316,,-0.083,0.0058\n"
	tbl, err := ParseReturnsCSV(strings.NewReader(in))
	require.NoError(t, err)
	require.Equal(t, 2, tbl.Len())

	row, err := tbl.Row(1929)
	require.NoError(t, err)
	assert.Equal(t, 0.0, row.Bonds)
	assert.Equal(t, -0.083, row.Stocks)
}

func TestParseReturnsCSV_Errors(t *testing.T) {
	tests := map[string]string{
		"no year":       "cash,bonds,stocks,inflation\n0,0,0,0\n",
		"no inflation":  "Year,cash,bonds,stocks\n2000,0,0,0\n",
		"bad year":      "Year,cash,bonds,stocks,inflation\nabc,0,0,0,0\n",
		"bad return":    "Year,cash,bonds,stocks,inflation\n2000,x,0,0,0\n",
		"nan return":    "Year,cash,bonds,stocks,inflation\n2000,0,0,NaN,0\n",
		"inf return":    "Year,cash,bonds,stocks,inflation\n2000,0,+Inf%,0,0\n",
		"gap":           "Year,cash,bonds,stocks,inflation\n2000,0,0,0,0\n2002,0,0,0,0\n",
		"duplicate":     "Year,cash,bonds,stocks,inflation\n2000,0,0,0,0\n2000,0,0,0,0\n",
		"only a header": "Year,cash,bonds,stocks,inflation\n",
		"empty":         "",
	}
	for name, in := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ParseReturnsCSV(strings.NewReader(in))
			assert.Error(t, err)
		})
	}
}

func TestParseReturnsCSV_MissingColumnError(t *testing.T) {
	_, err := ParseReturnsCSV(strings.NewReader("Year,cash,bonds,stocks\n2000,0,0,0\n"))
	assert.ErrorIs(t, err, ErrMissingColumn)
}

func TestLoadReturnsCSV_MissingFile(t *testing.T) {
	_, err := LoadReturnsCSV(filepath.Join(t.TempDir(), "nope.csv"))
	assert.True(t, os.IsNotExist(err))
}

func TestParseYearAndReturn(t *testing.T) {
	y, err := parseYear("1999.0")
	require.NoError(t, err)
	assert.Equal(t, 1999, y)

	_, err = parseYear("1999.5")
	assert.Error(t, err)

	v, err := parseReturn("-43.84%")
	require.NoError(t, err)
	assert.InDelta(t, -0.4384, v, 1e-12)

	for _, s := range []string{"NaN", "nan", "Inf", "-inf", "+Infinity"} {
		_, err = parseReturn(s)
		assert.Error(t, err, s)
	}
}
