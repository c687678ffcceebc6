package data

import (
	"context"
	"errors"
	"sync"
	"time"

	"allocation-backtest/internal/backtest"

	"github.com/google/uuid"
)

// ErrResultNotFound is returned for unknown or expired result ids.
var ErrResultNotFound = errors.New("result not found")

// ResultStore keeps backtest results so clients can page through rows after
// the run that produced them.
type ResultStore interface {
	Save(ctx context.Context, res *backtest.Result) (string, error)
	Load(ctx context.Context, id string) (*backtest.Result, error)
}

// DefaultResultTTL is how long stored results stay retrievable.
const DefaultResultTTL = time.Hour

type cacheEntry struct {
	result    *backtest.Result
	expiresAt time.Time
}

// MemoryStore is an in-process ResultStore with per-entry expiry.
type MemoryStore struct {
	mu    sync.RWMutex
	store map[string]*cacheEntry
	ttl   time.Duration
	now   func() time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = DefaultResultTTL
	}
	return &MemoryStore{
		store: make(map[string]*cacheEntry),
		ttl:   ttl,
		now:   time.Now,
	}
}

func (c *MemoryStore) Save(_ context.Context, res *backtest.Result) (string, error) {
	id := uuid.NewString()

	c.mu.Lock()
	defer c.mu.Unlock()

	c.store[id] = &cacheEntry{
		result:    res,
		expiresAt: c.now().Add(c.ttl),
	}
	return id, nil
}

func (c *MemoryStore) Load(_ context.Context, id string) (*backtest.Result, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.store[id]
	if !ok || c.now().After(entry.expiresAt) {
		return nil, ErrResultNotFound
	}
	return entry.result, nil
}

// Len counts entries, including expired ones not yet swept.
func (c *MemoryStore) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.store)
}

// Clear removes all entries.
func (c *MemoryStore) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store = make(map[string]*cacheEntry)
}

// Sweep drops expired entries and returns how many were removed.
func (c *MemoryStore) Sweep() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	n := 0
	for key, entry := range c.store {
		if now.After(entry.expiresAt) {
			delete(c.store, key)
			n++
		}
	}
	return n
}

// RunSweeper sweeps every interval until ctx is done.
func (c *MemoryStore) RunSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.Sweep()
		}
	}
}
