package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"allocation-backtest/internal/backtest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--data", "testdata/returns.csv"}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestBacktestCmd(t *testing.T) {
	out, err := execute(t, "backtest", "--cash", "50", "--stocks", "30", "--start", "2007", "--years", "1", "--rows")
	require.NoError(t, err, out)

	assert.Contains(t, out, "cash 50%  bonds 20%  stocks 30%  (Conservative)")
	assert.Contains(t, out, "2007-2007 (1 years), annual")
	assert.Contains(t, out, "$10,610     6.1%")
	assert.Contains(t, out, "2007:  10.0%")
	assert.Contains(t, out, "10610")
}

func TestBacktestCmd_ConfigFileAndOverride(t *testing.T) {
	out, err := execute(t, "backtest", "--config", "testdata/scenario.yaml")
	require.NoError(t, err, out)
	assert.Contains(t, out, "Example scenario")
	assert.Contains(t, out, "$10,610     6.1%")

	out, err = execute(t, "backtest", "--config", "testdata/scenario.yaml", "--stocks", "50", "--cash", "0")
	require.NoError(t, err, out)
	assert.Contains(t, out, "cash 0%  bonds 50%  stocks 50%")
}

func TestBacktestCmd_DefaultsRunToEndOfData(t *testing.T) {
	out, err := execute(t, "backtest", "--strategy", "buy_and_hold")
	require.NoError(t, err, out)
	assert.Contains(t, out, "cash 10%  bonds 40%  stocks 50%  (Moderate)")
	assert.Contains(t, out, "2007-2009 (3 years), buy_and_hold")
}

func TestBacktestCmd_WritesCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "out.csv")
	out, err := execute(t, "backtest", "--start", "2008", "--out", path)
	require.NoError(t, err, out)
	assert.Contains(t, out, "Wrote 3 rows to "+path)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[1], "2007,1000,4000,5000,10000,"))
}

func TestBacktestCmd_Errors(t *testing.T) {
	_, err := execute(t, "backtest", "--cash", "60", "--stocks", "50")
	assert.ErrorIs(t, err, backtest.ErrInvalidAllocation)

	_, err = execute(t, "backtest", "--start", "2008", "--years", "5")
	assert.ErrorIs(t, err, backtest.ErrInsufficientHistory)

	_, err = execute(t, "backtest", "--balance=-1")
	assert.ErrorIs(t, err, backtest.ErrInvalidBalance)

	// Clamping turns the same inputs into a valid run.
	out, err := execute(t, "backtest", "--cash", "60", "--stocks", "50", "--start", "2008", "--years", "5", "--clamp")
	require.NoError(t, err, out)
	assert.Contains(t, out, "cash 60%  bonds 0%  stocks 40%")
	assert.Contains(t, out, "2008-2009 (2 years)")
}

func TestRankCmd(t *testing.T) {
	out, err := execute(t, "rank", "--step", "50", "--start", "2007", "--years", "1", "--limit", "1")
	require.NoError(t, err, out)
	assert.Contains(t, out, "6 allocations, 2007-2007, step 50%")

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[3], "1    0%     0%     100%"), lines[3])

	_, err = execute(t, "rank", "--step", "7")
	assert.Error(t, err)
}

func TestReturnsCmd(t *testing.T) {
	out, err := execute(t, "returns", "--from", "2008")
	require.NoError(t, err, out)
	assert.Contains(t, out, "2008")
	assert.Contains(t, out, "-37.0%")
	assert.NotContains(t, out, "2007 ")
}

func TestTimeframesCmd(t *testing.T) {
	out, err := execute(t, "timeframes")
	require.NoError(t, err, out)
	assert.Contains(t, out, "2007-2008 Great Financial Crisis")
	assert.Contains(t, out, "1928-2019")
}
