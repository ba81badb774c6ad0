package location

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/light-bringer/pricing-service/internal/pkg/clock"
)

// ErrNotCached is returned by a Store when no location is stored under a key.
var ErrNotCached = errors.New("location not cached")

// Store persists resolved locations per visitor key.
type Store interface {
	Get(ctx context.Context, key string) (UserLocation, error)
	Set(ctx context.Context, key string, loc UserLocation, ttl time.Duration) error
}

type memoryEntry struct {
	loc       UserLocation
	expiresAt time.Time
}

// MemoryStore is a process-local Store. Entries are dropped lazily once their ttl passes.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	clock   clock.Clock
}

func NewMemoryStore(clk clock.Clock) *MemoryStore {
	return &MemoryStore{entries: make(map[string]memoryEntry), clock: clk}
}

func (s *MemoryStore) Get(_ context.Context, key string) (UserLocation, error) {
	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()
	if !ok {
		return UserLocation{}, ErrNotCached
	}
	if !e.expiresAt.IsZero() && !s.clock.Now().Before(e.expiresAt) {
		s.mu.Lock()
		delete(s.entries, key)
		s.mu.Unlock()
		return UserLocation{}, ErrNotCached
	}
	return e.loc, nil
}

func (s *MemoryStore) Set(_ context.Context, key string, loc UserLocation, ttl time.Duration) error {
	var expiresAt time.Time
	if ttl > 0 {
		expiresAt = s.clock.Now().Add(ttl)
	}
	s.mu.Lock()
	s.entries[key] = memoryEntry{loc: loc, expiresAt: expiresAt}
	s.mu.Unlock()
	return nil
}
