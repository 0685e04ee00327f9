package chart

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	apperrors "github.com/valentinromain/astrosiderale/pkg/errors"
	"github.com/valentinromain/astrosiderale/pkg/util"
)

const (
	defaultHistoryLimit = 10
	maxHistoryLimit     = 100
)

// Service exposes sidereal chart capabilities.
type Service interface {
	Compute(ctx context.Context, req Request) (Response, error)
	History(ctx context.Context, limit int) ([]HistoryEntry, error)
}

type service struct {
	cfg     Config
	engine  *Engine
	history HistoryRepository
	cache   Cache
	archive Archive
	logger  *slog.Logger
	now     func() time.Time
	newID   func() string

	inflight singleflight.Group
}

// NewService wires up the chart domain. archive may be nil when charts are not archived.
func NewService(cfg Config, engine *Engine, history HistoryRepository, cache Cache, archive Archive, logger *slog.Logger) Service {
	return &service{
		cfg:     cfg,
		engine:  engine,
		history: history,
		cache:   cache,
		archive: archive,
		logger:  logger.With("component", "chart.service"),
		now:     util.NowUTC,
		newID:   uuid.NewString,
	}
}

func (s *service) Compute(ctx context.Context, req Request) (Response, error) {
	if req.Ayanamsha == "" {
		req.Ayanamsha = DefaultAyanamsha.String()
	}
	if err := Validate(req); err != nil {
		return Response{}, err
	}

	key := cacheKey(req)
	cached, hit, err := s.cache.Get(ctx, key)
	if err != nil {
		s.logger.Warn("chart cache lookup failed", "error", err)
	}

	if !hit {
		// Identical requests arriving together share one computation, so it must
		// not inherit the cancellation of whichever caller started it.
		shared := context.WithoutCancel(ctx)
		v, err, _ := s.inflight.Do(key, func() (any, error) {
			return s.computeAndStore(shared, key, req)
		})
		if err != nil {
			return Response{}, err
		}
		cached = v.(CachedChart)
	}
	if err := ctx.Err(); err != nil {
		return Response{}, err
	}

	entry := HistoryEntry{
		ID:        s.newID(),
		Request:   req,
		Timestamp: s.now(),
		Planets:   cached.Planets,
	}
	if err := s.history.Insert(ctx, entry); err != nil {
		s.logger.Warn("chart history insert failed", "error", err)
	}

	resp := Response{Planets: cached.Planets}
	if cached.ChartURL != "" {
		url := cached.ChartURL
		resp.ChartURL = &url
	}
	return resp, nil
}

// computeAndStore assembles the chart, archives it and caches complete results.
func (s *service) computeAndStore(ctx context.Context, key string, req Request) (CachedChart, error) {
	result, err := s.engine.Assemble(ctx, req.BirthMoment())
	if err != nil {
		return CachedChart{}, apperrors.Wrap(apperrors.CodeChart, "chart computation failed", err)
	}
	if len(result.Omitted) > 0 {
		s.logger.Warn("chart computed with omitted bodies", "omitted", len(result.Omitted), "resolved", len(result.Planets))
	}
	cached := CachedChart{
		Planets:  result.Planets,
		ChartURL: s.archiveChart(ctx, key, result.Planets),
	}
	// A partial chart is not cached so a transient provider fault is retried next time.
	if len(result.Omitted) == 0 {
		if err := s.cache.Save(ctx, key, cached, s.cfg.CacheTTL); err != nil {
			s.logger.Warn("chart cache save failed", "error", err)
		}
	}
	return cached, nil
}

func (s *service) History(ctx context.Context, limit int) ([]HistoryEntry, error) {
	if limit <= 0 {
		limit = s.cfg.HistoryLimit
	}
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}
	entries, err := s.history.Recent(ctx, limit)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeHistory, "failed to load chart history", err)
	}
	if entries == nil {
		entries = []HistoryEntry{}
	}
	return entries, nil
}

func (s *service) archiveChart(ctx context.Context, key string, planets []PlanetResult) string {
	if s.archive == nil {
		return ""
	}
	payload, err := json.Marshal(struct {
		Planets []PlanetResult `json:"planets"`
	}{Planets: planets})
	if err != nil {
		s.logger.Warn("chart archive encode failed", "error", err)
		return ""
	}
	url, err := s.archive.Put(ctx, s.cfg.ArchivePrefix+key+".json", payload)
	if err != nil {
		s.logger.Warn("chart archive upload failed", "error", err)
		return ""
	}
	return url
}

func cacheKey(req Request) string {
	raw := fmt.Sprintf("%d-%02d-%02dT%02d:%02d:%02d|%.6f|%.6f|%.6f|%s",
		req.Year, req.Month, req.Day, req.Hours, req.Minutes, req.Seconds,
		req.Timezone, req.Latitude, req.Longitude, ResolveAyanamsha(req.Ayanamsha))
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:16])
}
