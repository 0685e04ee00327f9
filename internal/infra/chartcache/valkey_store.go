package chartcache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/valkey-io/valkey-go"

	"github.com/valentinromain/astrosiderale/internal/domain/chart"
)

// ValkeyStore caches computed charts in a Valkey-compatible database.
type ValkeyStore struct {
	client valkey.Client
	prefix string
}

// NewValkeyStore constructs a new store backed by Valkey.
func NewValkeyStore(client valkey.Client, prefix string) *ValkeyStore {
	if prefix == "" {
		prefix = "chart"
	}
	return &ValkeyStore{client: client, prefix: prefix}
}

func (s *ValkeyStore) Get(ctx context.Context, key string) (chart.CachedChart, bool, error) {
	if key == "" {
		return chart.CachedChart{}, false, nil
	}
	payload, err := s.client.Do(ctx, s.client.B().Get().Key(s.entryKey(key)).Build()).ToString()
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return chart.CachedChart{}, false, nil
		}
		return chart.CachedChart{}, false, err
	}
	var cached chart.CachedChart
	if err := json.Unmarshal([]byte(payload), &cached); err != nil {
		return chart.CachedChart{}, false, err
	}
	return cached, true, nil
}

func (s *ValkeyStore) Save(ctx context.Context, key string, payload chart.CachedChart, ttl time.Duration) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	builder := s.client.B().Set().Key(s.entryKey(key)).Value(string(data))
	var cmd valkey.Completed
	if ttl > 0 {
		if ttl < time.Second {
			ttl = time.Second
		}
		cmd = builder.Ex(ttl).Build()
	} else {
		cmd = builder.Build()
	}
	return s.client.Do(ctx, cmd).Error()
}

func (s *ValkeyStore) entryKey(key string) string {
	return fmt.Sprintf("%s:result:%s", s.prefix, key)
}

var _ chart.Cache = (*ValkeyStore)(nil)
