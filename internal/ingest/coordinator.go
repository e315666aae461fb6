// Package ingest orchestrates the startup pipeline: fetch the source
// document, parse and relabel it, and replace the curve store contents.
package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/yuval-krn/yieldcurve/internal/domain"
	"github.com/yuval-krn/yieldcurve/internal/treasury"
)

// DocumentFetcher retrieves the raw source document.
type DocumentFetcher interface {
	Fetch(ctx context.Context) ([]byte, error)
}

// SnapshotWriter archives a raw fetched document for later inspection.
type SnapshotWriter interface {
	Put(ctx context.Context, fetchedAt time.Time, doc []byte) error
}

// CacheInvalidator drops any cached curve derived from the previous
// store contents.
type CacheInvalidator interface {
	Invalidate(ctx context.Context) error
}

// Coordinator runs the ingestion pipeline exactly once, before the
// service accepts any read traffic. It has no retry loop: a fetch,
// parse, or store failure is fatal to startup.
type Coordinator struct {
	fetcher   DocumentFetcher
	store     domain.CurvePointStore
	snapshots SnapshotWriter   // optional
	cache     CacheInvalidator // optional
	logger    *slog.Logger
}

// New creates a Coordinator. snapshots and cache may be nil.
func New(fetcher DocumentFetcher, store domain.CurvePointStore, logger *slog.Logger) *Coordinator {
	return &Coordinator{
		fetcher: fetcher,
		store:   store,
		logger:  logger,
	}
}

// WithSnapshots attaches a snapshot writer; the raw document is
// archived after a successful store replace.
func (c *Coordinator) WithSnapshots(w SnapshotWriter) *Coordinator {
	c.snapshots = w
	return c
}

// WithCache attaches a cache invalidator, called after every successful
// store replace.
func (c *Coordinator) WithCache(inv CacheInvalidator) *Coordinator {
	c.cache = inv
	return c
}

// Run executes one full ingestion pass: fetch, parse, transform,
// replace-all. Re-running with identical source data leaves the store
// observably identical.
func (c *Coordinator) Run(ctx context.Context) error {
	start := time.Now()

	doc, err := c.fetcher.Fetch(ctx)
	if err != nil {
		return fmt.Errorf("ingest: fetch: %w", err)
	}

	entries, err := treasury.Parse(doc)
	if err != nil {
		return fmt.Errorf("ingest: parse: %w", err)
	}
	if len(entries) == 0 {
		return fmt.Errorf("ingest: source document contained no entries")
	}

	var points []domain.CurvePoint
	var dropped treasury.TransformStats
	for _, e := range entries {
		entryPoints, stats := treasury.Transform(e.Date, e.Fields)
		points = append(points, entryPoints...)
		dropped.Null += stats.Null
		dropped.Unmapped += stats.Unmapped
	}
	if len(points) == 0 {
		return fmt.Errorf("ingest: no usable curve points in %d entries", len(entries))
	}

	if err := c.store.ReplaceAll(ctx, points); err != nil {
		return fmt.Errorf("ingest: store replace: %w", err)
	}

	if c.cache != nil {
		if err := c.cache.Invalidate(ctx); err != nil {
			// The store is already consistent; a stale cache entry only
			// survives until its TTL.
			c.logger.Warn("ingest: cache invalidation failed",
				slog.String("error", err.Error()),
			)
		}
	}

	if c.snapshots != nil {
		if err := c.snapshots.Put(ctx, start.UTC(), doc); err != nil {
			c.logger.Warn("ingest: snapshot upload failed",
				slog.String("error", err.Error()),
			)
		}
	}

	c.logger.Info("ingest: complete",
		slog.Int("entries", len(entries)),
		slog.Int("points", len(points)),
		slog.Int("dropped_null", dropped.Null),
		slog.Int("dropped_unmapped", dropped.Unmapped),
		slog.Duration("elapsed", time.Since(start)),
	)
	return nil
}
