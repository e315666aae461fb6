package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/yuval-krn/yieldcurve/internal/domain"
)

// OrderService books orders against the latest curve. The yield written
// to an order always comes from the store, never from the client; this
// is the one authoritative policy for the yield field.
type OrderService struct {
	orders domain.OrderStore
	curves domain.CurvePointStore
	logger *slog.Logger

	// overridable for tests
	now   func() time.Time
	newID func() string
}

// NewOrderService creates an OrderService with the given stores.
func NewOrderService(orders domain.OrderStore, curves domain.CurvePointStore, logger *slog.Logger) *OrderService {
	return &OrderService{
		orders: orders,
		curves: curves,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
		newID:  func() string { return uuid.New().String() },
	}
}

// Create validates the request, captures the market yield for the term
// on the latest date, derives the maturity date, and persists the
// order. Validation failures are checked in order; the first one wins.
func (s *OrderService) Create(ctx context.Context, term domain.Term, quantity float64) (domain.Order, error) {
	if !domain.ValidTerm(term) {
		return domain.Order{}, fmt.Errorf("%w: unknown term %q", domain.ErrInvalidOrder, term)
	}
	if quantity <= 0 || quantity > domain.MaxOrderQuantity {
		return domain.Order{}, fmt.Errorf("%w: quantity must be in (0, %d], got %v",
			domain.ErrInvalidOrder, domain.MaxOrderQuantity, quantity)
	}

	latest, err := s.curves.LatestDate(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrNoData) {
			return domain.Order{}, domain.ErrNoData
		}
		return domain.Order{}, fmt.Errorf("order_service: latest date: %w", err)
	}

	points, err := s.curves.ListByDate(ctx, latest)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Order{}, domain.ErrNoData
		}
		return domain.Order{}, fmt.Errorf("order_service: points for %s: %w", latest, err)
	}

	marketYield, found := 0.0, false
	for _, p := range points {
		if p.Term == term {
			marketYield, found = p.Yield, true
			break
		}
	}
	if !found {
		return domain.Order{}, fmt.Errorf("%w: %s on %s", domain.ErrUnknownTerm, term, latest)
	}

	issueDate := dateOnly(latest)
	maturity, err := maturityDate(issueDate, term)
	if err != nil {
		return domain.Order{}, fmt.Errorf("order_service: maturity for %s: %w", term, err)
	}

	order := domain.Order{
		ID:                s.newID(),
		Term:              term,
		Yield:             marketYield,
		Quantity:          quantity,
		IssueDate:         issueDate,
		MaturityDate:      maturity,
		PurchaseTimestamp: s.now(),
	}

	if err := s.orders.Create(ctx, order); err != nil {
		return domain.Order{}, fmt.Errorf("order_service: create: %w", err)
	}

	s.logger.Info("order_service: order booked",
		slog.String("id", order.ID),
		slog.String("term", string(order.Term)),
		slog.Float64("yield", order.Yield),
		slog.Float64("quantity", order.Quantity),
		slog.String("maturity_date", order.MaturityDate),
	)
	return order, nil
}

// List returns orders newest first.
func (s *OrderService) List(ctx context.Context, opts domain.ListOpts) ([]domain.Order, error) {
	orders, err := s.orders.List(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("order_service: list: %w", err)
	}
	return orders, nil
}

// dateOnly strips any time-of-day suffix from a source-provided date,
// e.g. "2025-09-18T00:00:00" -> "2025-09-18".
func dateOnly(date string) string {
	if i := strings.IndexByte(date, 'T'); i >= 0 {
		return date[:i]
	}
	return date
}
