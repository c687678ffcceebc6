package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"allocation-backtest/internal/backtest"
	"allocation-backtest/internal/data"
	"allocation-backtest/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorCode(t *testing.T) {
	tests := []struct {
		err  error
		code string
	}{
		{fmt.Errorf("cash: %w", model.ErrInvalidAllocation), CodeInvalidAllocation},
		{backtest.ErrInvalidAllocation, CodeInvalidAllocation},
		{fmt.Errorf("x: %w", backtest.ErrInsufficientHistory), CodeInsufficientHistory},
		{backtest.ErrInvalidBalance, CodeInvalidBalance},
		{fmt.Errorf("%w: year 2007", backtest.ErrOverflow), CodeInvalidBalance},
		{backtest.ErrInvalidPeriod, CodeInvalidPeriod},
		{fmt.Errorf("%w: x", errScenarioNotFound), CodeScenarioNotFound},
		{data.ErrResultNotFound, CodeResultNotFound},
		{assert.AnError, CodeInvalidRequest},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.code, errorCode(tt.err), tt.err.Error())
	}

	assert.Equal(t, http.StatusNotFound, statusFor(CodeResultNotFound))
	assert.Equal(t, http.StatusInternalServerError, statusFor(CodeStoreError))
	assert.Equal(t, http.StatusBadRequest, statusFor(CodeInvalidBalance))
}

func TestLoadScenario(t *testing.T) {
	dir := "../testdata/scenarios"

	cfg, err := loadScenario(dir, "balanced")
	require.NoError(t, err)
	assert.Equal(t, "Balanced", cfg.Name)

	for _, id := range []string{"", "missing", "../router", ".hidden", "sub/balanced"} {
		_, err := loadScenario(dir, id)
		assert.ErrorIs(t, err, errScenarioNotFound, "id %q", id)
	}
}

func TestBuildSummary(t *testing.T) {
	tbl, err := model.NewReturnTable([]model.ReturnRow{
		{Year: 2006},
		{Year: 2007, Cash: 0.05, Bonds: 0.03, Stocks: 0.10, Inflation: 0.02},
	})
	require.NoError(t, err)
	res, err := backtest.Run(tbl, model.Allocation{CashPct: 50, StockPct: 30}, 10000, 2007, 1)
	require.NoError(t, err)

	s := buildSummary(res)
	assert.Equal(t, 20.0, s.Allocation.BondPct)
	assert.Equal(t, 1, s.NumYears)
	assert.Equal(t, "output", s.Rounding)
	assert.Equal(t, 2007, s.Risk.WorstYear.Year)
	assert.InDelta(t, 0.061, s.Risk.WorstYear.Return, 1e-12)
	assert.Equal(t, "2007:  6.1%", s.Risk.WorstYear.Text)
}
