package chartcache

import (
	"context"
	"sync"
	"time"

	"github.com/valentinromain/astrosiderale/internal/domain/chart"
)

type cachedEntry struct {
	payload   chart.CachedChart
	expiresAt time.Time
}

// MemoryStore is an in-memory chart cache for tests/dev.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]cachedEntry
	now     func() time.Time
}

// NewMemoryStore constructs a cache backed by process memory.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]cachedEntry),
		now:     time.Now,
	}
}

// Get implements chart.Cache.
func (s *MemoryStore) Get(_ context.Context, key string) (chart.CachedChart, bool, error) {
	if key == "" {
		return chart.CachedChart{}, false, nil
	}
	s.mu.RLock()
	entry, ok := s.entries[key]
	s.mu.RUnlock()
	if !ok {
		return chart.CachedChart{}, false, nil
	}
	if expired(entry, s.now()) {
		s.mu.Lock()
		// A Save may have replaced the entry since the read lock was released.
		if current, ok := s.entries[key]; ok && expired(current, s.now()) {
			delete(s.entries, key)
		}
		s.mu.Unlock()
		return chart.CachedChart{}, false, nil
	}
	return clonePayload(entry.payload), true, nil
}

// Save caches the chart with optional TTL.
func (s *MemoryStore) Save(_ context.Context, key string, payload chart.CachedChart, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	exp := time.Time{}
	if ttl > 0 {
		exp = s.now().Add(ttl)
	}
	s.entries[key] = cachedEntry{payload: clonePayload(payload), expiresAt: exp}
	return nil
}

func expired(entry cachedEntry, now time.Time) bool {
	return !entry.expiresAt.IsZero() && entry.expiresAt.Before(now)
}

func clonePayload(in chart.CachedChart) chart.CachedChart {
	in.Planets = append([]chart.PlanetResult(nil), in.Planets...)
	return in
}

var _ chart.Cache = (*MemoryStore)(nil)
