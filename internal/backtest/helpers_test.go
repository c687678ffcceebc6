package backtest

import (
	"testing"

	"allocation-backtest/internal/model"

	"github.com/stretchr/testify/require"
)

func mustTable(t *testing.T, rows ...model.ReturnRow) *model.ReturnTable {
	t.Helper()
	tbl, err := model.NewReturnTable(rows)
	require.NoError(t, err)
	return tbl
}

// exampleTable is a seed year followed by a single data year.
func exampleTable(t *testing.T) *model.ReturnTable {
	return mustTable(t,
		model.ReturnRow{Year: 2006},
		model.ReturnRow{Year: 2007, Cash: 0.05, Bonds: 0.03, Stocks: 0.10, Inflation: 0.02},
	)
}
