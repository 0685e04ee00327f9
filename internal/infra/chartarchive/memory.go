package chartarchive

import (
	"context"
	"strings"
	"sync"

	"github.com/valentinromain/astrosiderale/internal/domain/chart"
)

// MemoryArchive keeps archived charts in memory. Useful for tests and local dev.
type MemoryArchive struct {
	mu      sync.RWMutex
	blobs   map[string][]byte
	baseURL string
}

// NewMemoryArchive constructs an archive whose URLs start with baseURL.
func NewMemoryArchive(baseURL string) *MemoryArchive {
	if baseURL == "" {
		baseURL = "memory://charts"
	}
	return &MemoryArchive{blobs: make(map[string][]byte), baseURL: strings.TrimRight(baseURL, "/")}
}

// Put stores the payload and returns its URL.
func (a *MemoryArchive) Put(_ context.Context, key string, payload []byte) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.blobs[key] = append([]byte(nil), payload...)
	return a.baseURL + "/" + key, nil
}

// Get returns a stored payload.
func (a *MemoryArchive) Get(key string) ([]byte, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	data, ok := a.blobs[key]
	return data, ok
}

var _ chart.Archive = (*MemoryArchive)(nil)
