package data

import (
	"os"
	"path/filepath"
	"testing"

	"allocation-backtest/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTimeframes(t *testing.T) {
	list, err := LoadTimeframes("")
	require.NoError(t, err)
	require.Len(t, list, 5)

	tf, ok := FindTimeframe(list, "2007")
	require.True(t, ok)
	assert.Equal(t, model.Period{StartYear: 2007, NumYears: 13}, tf.Period())

	tf, ok = FindTimeframe(list, "1928")
	require.True(t, ok)
	assert.Equal(t, 98, tf.NumYears)

	_, ok = FindTimeframe(list, "1066")
	assert.False(t, ok)
}

func TestLoadTimeframes_File(t *testing.T) {
	list, err := LoadTimeframes(filepath.Join("testdata", "timeframes.json"))
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Financial crisis", list[0].Label)
}

func TestLoadTimeframes_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tf.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"id":"x","num_years":0}]`), 0o644))
	_, err := LoadTimeframes(path)
	assert.Error(t, err)

	_, err = LoadTimeframes(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
