package app

import (
	"context"
	"fmt"
	"log/slog"

	s3blob "github.com/yuval-krn/yieldcurve/internal/blob/s3"
	"github.com/yuval-krn/yieldcurve/internal/cache/redis"
	"github.com/yuval-krn/yieldcurve/internal/config"
	"github.com/yuval-krn/yieldcurve/internal/domain"
	"github.com/yuval-krn/yieldcurve/internal/store/postgres"
	"github.com/yuval-krn/yieldcurve/internal/treasury"
)

// Dependencies bundles every domain-level dependency the application
// modes need to operate. It is constructed by Wire and torn down by the
// returned cleanup function.
type Dependencies struct {
	// Stores
	CurveStore domain.CurvePointStore
	OrderStore domain.OrderStore

	// Source
	Fetcher *treasury.Client

	// Optional: latest-curve cache (nil when redis is disabled).
	CurveCache *redis.CurveCache

	// Optional: raw-document archival (nil when snapshots are disabled).
	Snapshots *s3blob.SnapshotWriter
}

// Wire constructs all concrete dependency implementations from the
// given configuration and returns them together with a cleanup function
// that should be called on shutdown to release resources.
func Wire(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Dependencies, func(), error) {
	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	deps := &Dependencies{}

	// --- PostgreSQL ---
	pgClient, err := postgres.New(ctx, postgres.ClientConfig{
		DSN:      cfg.Postgres.DSN,
		Host:     cfg.Postgres.Host,
		Port:     cfg.Postgres.Port,
		Database: cfg.Postgres.Database,
		User:     cfg.Postgres.User,
		Password: cfg.Postgres.Password,
		SSLMode:  cfg.Postgres.SSLMode,
		MaxConns: cfg.Postgres.PoolMaxConns,
		MinConns: cfg.Postgres.PoolMinConns,
	})
	if err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("wire: postgres: %w", err)
	}
	closers = append(closers, pgClient.Close)

	if cfg.Postgres.RunMigrations {
		if err := pgClient.RunMigrations(ctx); err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("wire: postgres migrations: %w", err)
		}
	}

	pool := pgClient.Pool()
	deps.CurveStore = postgres.NewCurvePointStore(pool)
	deps.OrderStore = postgres.NewOrderStore(pool)

	// --- Treasury source ---
	deps.Fetcher = treasury.NewClient(
		cfg.Treasury.BaseURL,
		cfg.Treasury.Year,
		cfg.Treasury.FetchTimeout.Duration,
	)

	// --- Redis (optional) ---
	if cfg.Redis.Enabled {
		redisClient, err := redis.New(ctx, redis.ClientConfig{
			Addr:       cfg.Redis.Addr,
			Password:   cfg.Redis.Password,
			DB:         cfg.Redis.DB,
			PoolSize:   cfg.Redis.PoolSize,
			MaxRetries: cfg.Redis.MaxRetries,
			TLSEnabled: cfg.Redis.TLSEnabled,
		})
		if err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("wire: redis: %w", err)
		}
		closers = append(closers, func() { _ = redisClient.Close() })

		deps.CurveCache = redis.NewCurveCache(redisClient, cfg.Redis.CacheTTL.Duration)
		logger.InfoContext(ctx, "wire: redis cache enabled",
			slog.String("addr", cfg.Redis.Addr),
			slog.Duration("ttl", cfg.Redis.CacheTTL.Duration),
		)
	}

	// --- S3 snapshots (optional) ---
	if cfg.Snapshots.Enabled {
		s3Client, err := s3blob.New(ctx, s3blob.ClientConfig{
			Endpoint:       cfg.Snapshots.Endpoint,
			Region:         cfg.Snapshots.Region,
			Bucket:         cfg.Snapshots.Bucket,
			AccessKey:      cfg.Snapshots.AccessKey,
			SecretKey:      cfg.Snapshots.SecretKey,
			UseSSL:         cfg.Snapshots.UseSSL,
			ForcePathStyle: cfg.Snapshots.ForcePathStyle,
		})
		if err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("wire: s3: %w", err)
		}

		deps.Snapshots = s3blob.NewSnapshotWriter(s3Client)
		logger.InfoContext(ctx, "wire: snapshot archival enabled",
			slog.String("bucket", cfg.Snapshots.Bucket),
		)
	}

	return deps, cleanup, nil
}
