package chart

import (
	"context"
	"time"
)

// HistoryRepository persists computed chart requests.
type HistoryRepository interface {
	Insert(ctx context.Context, entry HistoryEntry) error
	Recent(ctx context.Context, limit int) ([]HistoryEntry, error)
}

// CachedChart is the payload kept in the result cache.
type CachedChart struct {
	Planets  []PlanetResult `json:"planets"`
	ChartURL string         `json:"chartUrl,omitempty"`
}

// Cache stores computed charts keyed by a digest of the birth moment.
type Cache interface {
	Get(ctx context.Context, key string) (CachedChart, bool, error)
	Save(ctx context.Context, key string, chart CachedChart, ttl time.Duration) error
}

// Archive uploads serialised charts and returns a URL they can be fetched from.
type Archive interface {
	Put(ctx context.Context, key string, payload []byte) (string, error)
}
