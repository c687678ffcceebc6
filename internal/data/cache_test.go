package data

import (
	"context"
	"testing"
	"time"

	"allocation-backtest/internal/backtest"
	"allocation-backtest/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleResult(t *testing.T) *backtest.Result {
	t.Helper()
	tbl, err := model.NewReturnTable([]model.ReturnRow{
		{Year: 2006},
		{Year: 2007, Cash: 0.05, Bonds: 0.03, Stocks: 0.10, Inflation: 0.02},
	})
	require.NoError(t, err)
	res, err := backtest.Run(tbl, model.Allocation{CashPct: 50, StockPct: 30}, 10000, 2007, 1)
	require.NoError(t, err)
	return res
}

func TestMemoryStore_SaveLoad(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(time.Minute)
	res := sampleResult(t)

	id, err := store.Save(ctx, res)
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	got, err := store.Load(ctx, id)
	require.NoError(t, err)
	assert.Same(t, res, got)

	_, err = store.Load(ctx, "unknown")
	assert.ErrorIs(t, err, ErrResultNotFound)
}

func TestMemoryStore_Expiry(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(time.Minute)
	now := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	id, err := store.Save(ctx, sampleResult(t))
	require.NoError(t, err)

	now = now.Add(2 * time.Minute)
	_, err = store.Load(ctx, id)
	assert.ErrorIs(t, err, ErrResultNotFound)

	assert.Equal(t, 1, store.Len())
	assert.Equal(t, 1, store.Sweep())
	assert.Equal(t, 0, store.Len())
}

func TestMemoryStore_Clear(t *testing.T) {
	store := NewMemoryStore(0)
	_, err := store.Save(context.Background(), sampleResult(t))
	require.NoError(t, err)
	store.Clear()
	assert.Equal(t, 0, store.Len())
}

func TestMemoryStore_RunSweeperStops(t *testing.T) {
	store := NewMemoryStore(time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		store.RunSweeper(ctx, time.Millisecond)
		close(done)
	}()

	_, err := store.Save(context.Background(), sampleResult(t))
	require.NoError(t, err)
	assert.Eventually(t, func() bool { return store.Len() == 0 }, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop")
	}
}
