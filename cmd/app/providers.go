package main

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/valkey-io/valkey-go"

	"github.com/valentinromain/astrosiderale/internal/domain/chart"
	"github.com/valentinromain/astrosiderale/internal/infra/chartarchive"
	"github.com/valentinromain/astrosiderale/internal/infra/chartcache"
	"github.com/valentinromain/astrosiderale/internal/infra/chartrepo"
	"github.com/valentinromain/astrosiderale/internal/infra/config"
)

func provideEngineConfig(cfg *config.Config) chart.EngineConfig {
	system := chart.HouseSystemPlacidus
	if hs := strings.TrimSpace(cfg.Chart.HouseSystem); hs != "" {
		system = chart.HouseSystem(hs[0])
	}
	return chart.EngineConfig{
		HouseSystem:    system,
		SiderealHouses: cfg.Chart.SiderealHouses,
	}
}

func provideChartConfig(cfg *config.Config) chart.Config {
	return chart.Config{
		HistoryLimit:  cfg.Chart.HistoryLimit,
		CacheTTL:      cfg.Chart.CacheTTL,
		ArchivePrefix: cfg.Archive.Prefix,
	}
}

func provideHistoryRepository(cfg *config.Config, logger *slog.Logger) (chart.HistoryRepository, func(), error) {
	fallback := chartrepo.NewMemoryRepository(cfg.Chart.MemoryHistory)
	noop := func() {}
	dsn := strings.TrimSpace(cfg.Postgres.DSN)
	if dsn == "" {
		logger.Info("postgres dsn not set, using memory history repository")
		return fallback, noop, nil
	}
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		logger.Error("invalid postgres dsn, using memory history repository", "error", err)
		return fallback, noop, nil
	}
	if cfg.Postgres.MaxConns > 0 {
		poolConfig.MaxConns = cfg.Postgres.MaxConns
	}
	if cfg.Postgres.MinConns > 0 {
		poolConfig.MinConns = cfg.Postgres.MinConns
	}
	pool, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
	if err != nil {
		logger.Error("failed to initialize postgres pool, using memory history repository", "error", err)
		return fallback, noop, nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := pool.Ping(ctx); err != nil {
		logger.Error("postgres ping failed, using memory history repository", "error", err)
		pool.Close()
		return fallback, noop, nil
	}
	if cfg.Postgres.Migrate {
		migrateCtx, migrateCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer migrateCancel()
		if err := chartrepo.Migrate(migrateCtx, pool); err != nil {
			pool.Close()
			return nil, nil, err
		}
	}
	logger.Info("postgres history repository enabled")
	return chartrepo.NewPostgresRepository(pool), pool.Close, nil
}

func provideChartCache(cfg *config.Config, logger *slog.Logger) (chart.Cache, func(), error) {
	noop := func() {}
	if !cfg.Valkey.Enabled {
		return chartcache.NewMemoryStore(), noop, nil
	}
	opt, err := buildValkeyOptions(cfg)
	if err != nil {
		logger.Error("invalid valkey configuration, falling back to memory cache", "error", err)
		return chartcache.NewMemoryStore(), noop, nil
	}
	client, err := valkey.NewClient(opt)
	if err != nil {
		logger.Error("failed to create valkey client, falling back to memory cache", "error", err)
		return chartcache.NewMemoryStore(), noop, nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
		logger.Error("valkey ping failed, falling back to memory cache", "error", err)
		client.Close()
		return chartcache.NewMemoryStore(), noop, nil
	}
	logger.Info("valkey chart cache enabled", "addr", cfg.Valkey.Addr)
	return chartcache.NewValkeyStore(client, cfg.Valkey.Prefix), client.Close, nil
}

func buildValkeyOptions(cfg *config.Config) (valkey.ClientOption, error) {
	if strings.Contains(cfg.Valkey.Addr, "://") {
		return valkey.ParseURL(cfg.Valkey.Addr)
	}
	return valkey.ClientOption{InitAddress: []string{cfg.Valkey.Addr}}, nil
}

// provideChartArchive returns nil when archiving is disabled; the service then omits chart_url.
func provideChartArchive(cfg *config.Config, logger *slog.Logger) chart.Archive {
	if !cfg.Archive.Enabled {
		return nil
	}
	archive, err := chartarchive.NewS3Archive(
		cfg.Archive.Endpoint,
		cfg.Archive.AccessKey,
		cfg.Archive.SecretKey,
		cfg.Archive.Bucket,
		cfg.Archive.Region,
		cfg.Archive.PublicURL,
		logger,
	)
	if err != nil {
		logger.Error("failed to initialize chart archive, charts will not be archived", "error", err)
		return nil
	}
	logger.Info("chart archive enabled", "bucket", cfg.Archive.Bucket)
	return archive
}
