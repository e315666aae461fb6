// Package service holds the application services between the HTTP
// handlers and the stores: curve queries and the order ledger.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/yuval-krn/yieldcurve/internal/domain"
)

// CurveCache caches the latest curve between requests. Implementations
// must return domain.ErrNotFound on a miss.
type CurveCache interface {
	GetLatest(ctx context.Context) (string, []domain.CurvePoint, error)
	SetLatest(ctx context.Context, date string, points []domain.CurvePoint) error
}

// CurveService serves read queries over the curve point store. All
// operations are pure reads.
type CurveService struct {
	store  domain.CurvePointStore
	cache  CurveCache // optional
	logger *slog.Logger
}

// NewCurveService creates a CurveService. cache may be nil, in which
// case every query goes to the store.
func NewCurveService(store domain.CurvePointStore, cache CurveCache, logger *slog.Logger) *CurveService {
	return &CurveService{
		store:  store,
		cache:  cache,
		logger: logger,
	}
}

// Latest returns the most recent date and its curve points in canonical
// term order. Returns domain.ErrNoData when the store is empty.
func (s *CurveService) Latest(ctx context.Context) (string, []domain.CurvePoint, error) {
	if s.cache != nil {
		date, points, err := s.cache.GetLatest(ctx)
		if err == nil {
			return date, points, nil
		}
		if !errors.Is(err, domain.ErrNotFound) {
			// Cache trouble is not a reason to fail the read; fall
			// through to the store.
			s.logger.Warn("curve_service: cache read failed",
				slog.String("error", err.Error()),
			)
		}
	}

	date, err := s.store.LatestDate(ctx)
	if err != nil {
		return "", nil, fmt.Errorf("curve_service: latest date: %w", err)
	}

	points, err := s.store.ListByDate(ctx, date)
	if err != nil {
		return "", nil, fmt.Errorf("curve_service: points for %s: %w", date, err)
	}
	domain.SortCurve(points)

	if s.cache != nil {
		if err := s.cache.SetLatest(ctx, date, points); err != nil {
			s.logger.Warn("curve_service: cache write failed",
				slog.String("error", err.Error()),
			)
		}
	}

	return date, points, nil
}

// ByDate returns the curve points for one date in canonical term order.
// Returns domain.ErrNotFound when no points exist for the date.
func (s *CurveService) ByDate(ctx context.Context, date string) ([]domain.CurvePoint, error) {
	points, err := s.store.ListByDate(ctx, date)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("curve_service: points for %s: %w", date, err)
	}
	domain.SortCurve(points)
	return points, nil
}

// Dates returns all distinct curve dates, most recent first.
func (s *CurveService) Dates(ctx context.Context) ([]string, error) {
	dates, err := s.store.ListDates(ctx)
	if err != nil {
		return nil, fmt.Errorf("curve_service: list dates: %w", err)
	}
	return dates, nil
}

// List returns raw paginated rows ordered by date descending then term
// ascending. This is a bulk-export ordering, not the canonical curve
// ordering; callers wanting a visual curve use Latest or ByDate.
func (s *CurveService) List(ctx context.Context, opts domain.ListOpts) ([]domain.CurvePoint, error) {
	points, err := s.store.List(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("curve_service: list points: %w", err)
	}
	return points, nil
}
