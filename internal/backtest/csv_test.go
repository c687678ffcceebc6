package backtest

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"allocation-backtest/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeResultCSV(t *testing.T) {
	res, err := Run(exampleTable(t), model.Allocation{CashPct: 50, StockPct: 30}, 10000, 2007, 1)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, EncodeResultCSV(&buf, res))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "year,cash,bonds,stocks,total,all_cash,all_bonds,all_stocks,inflation_only", lines[0])
	assert.Equal(t, "2006,5000,2000,3000,10000,10000,10000,10000,10000", lines[1])
	assert.Equal(t, "2007,5250,2060,3300,10610,10500,10300,11000,10200", lines[2])
}

func TestWriteResultCSV(t *testing.T) {
	res, err := Run(exampleTable(t), model.Allocation{CashPct: 100}, 100, 2007, 1)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "out.csv")
	require.NoError(t, WriteResultCSV(path, res))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "2007,105,0,0,105,105,103,110,102")
}
