package chartrepo

import (
	"context"
	"sort"
	"sync"

	"github.com/valentinromain/astrosiderale/internal/domain/chart"
)

// MemoryRepository is an in-memory HistoryRepository used for tests/dev.
type MemoryRepository struct {
	mu      sync.RWMutex
	entries []chart.HistoryEntry
	max     int
}

// NewMemoryRepository constructs a repo that keeps at most max entries (0 keeps all).
func NewMemoryRepository(max int) *MemoryRepository {
	return &MemoryRepository{max: max}
}

// Insert implements chart.HistoryRepository.
func (r *MemoryRepository) Insert(_ context.Context, entry chart.HistoryEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry.Planets = append([]chart.PlanetResult(nil), entry.Planets...)
	r.entries = append(r.entries, entry)
	if r.max > 0 && len(r.entries) > r.max {
		r.entries = append([]chart.HistoryEntry(nil), r.entries[len(r.entries)-r.max:]...)
	}
	return nil
}

// Recent implements chart.HistoryRepository; entries are returned newest first.
func (r *MemoryRepository) Recent(_ context.Context, limit int) ([]chart.HistoryEntry, error) {
	r.mu.RLock()
	out := make([]chart.HistoryEntry, len(r.entries))
	for i, entry := range r.entries {
		out[len(r.entries)-1-i] = entry
	}
	r.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

var _ chart.HistoryRepository = (*MemoryRepository)(nil)
