package service

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yuval-krn/yieldcurve/internal/domain"
)

// fakeCurveStore is an in-memory CurvePointStore for service tests.
type fakeCurveStore struct {
	points []domain.CurvePoint

	listByDateErr error
	latestDateErr error
}

func (f *fakeCurveStore) ReplaceAll(ctx context.Context, points []domain.CurvePoint) error {
	f.points = append([]domain.CurvePoint(nil), points...)
	return nil
}

func (f *fakeCurveStore) LatestDate(ctx context.Context) (string, error) {
	if f.latestDateErr != nil {
		return "", f.latestDateErr
	}
	latest := ""
	for _, p := range f.points {
		if p.Date > latest {
			latest = p.Date
		}
	}
	if latest == "" {
		return "", domain.ErrNoData
	}
	return latest, nil
}

func (f *fakeCurveStore) ListByDate(ctx context.Context, date string) ([]domain.CurvePoint, error) {
	if f.listByDateErr != nil {
		return nil, f.listByDateErr
	}
	var out []domain.CurvePoint
	for _, p := range f.points {
		if p.Date == date || dateOnly(p.Date) == date {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return nil, domain.ErrNotFound
	}
	return out, nil
}

func (f *fakeCurveStore) ListDates(ctx context.Context) ([]string, error) {
	seen := map[string]bool{}
	var dates []string
	for _, p := range f.points {
		if !seen[p.Date] {
			seen[p.Date] = true
			dates = append(dates, p.Date)
		}
	}
	return dates, nil
}

func (f *fakeCurveStore) List(ctx context.Context, opts domain.ListOpts) ([]domain.CurvePoint, error) {
	return append([]domain.CurvePoint(nil), f.points...), nil
}

// fakeOrderStore is an in-memory OrderStore for service tests.
type fakeOrderStore struct {
	orders    []domain.Order
	createErr error
}

func (f *fakeOrderStore) Create(ctx context.Context, order domain.Order) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.orders = append(f.orders, order)
	return nil
}

func (f *fakeOrderStore) GetByID(ctx context.Context, id string) (domain.Order, error) {
	for _, o := range f.orders {
		if o.ID == id {
			return o, nil
		}
	}
	return domain.Order{}, domain.ErrNotFound
}

func (f *fakeOrderStore) List(ctx context.Context, opts domain.ListOpts) ([]domain.Order, error) {
	return append([]domain.Order(nil), f.orders...), nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func newTestOrderService(curves *fakeCurveStore, orders *fakeOrderStore) *OrderService {
	svc := NewOrderService(orders, curves, testLogger())
	svc.now = func() time.Time {
		return time.Date(2025, 9, 18, 12, 0, 0, 0, time.UTC)
	}
	svc.newID = func() string { return "order-1" }
	return svc
}

func latestCurveFixture() *fakeCurveStore {
	return &fakeCurveStore{points: []domain.CurvePoint{
		{Date: "2025-09-17T00:00:00", Term: "10Y", Yield: 3.99},
		{Date: "2025-09-18T00:00:00", Term: "1m", Yield: 4.20},
		{Date: "2025-09-18T00:00:00", Term: "1.5m", Yield: 4.22},
		{Date: "2025-09-18T00:00:00", Term: "10Y", Yield: 4.05},
	}}
}

func TestOrderCreate(t *testing.T) {
	curves := latestCurveFixture()
	orders := &fakeOrderStore{}
	svc := newTestOrderService(curves, orders)

	order, err := svc.Create(context.Background(), "10Y", 1000)
	require.NoError(t, err)

	assert.Equal(t, "order-1", order.ID)
	assert.Equal(t, domain.Term("10Y"), order.Term)
	assert.Equal(t, 4.05, order.Yield, "yield must come from the latest curve")
	assert.Equal(t, 1000.0, order.Quantity)
	assert.Equal(t, "2025-09-18", order.IssueDate)
	assert.Equal(t, "2035-09-18", order.MaturityDate)
	assert.Equal(t, svc.now(), order.PurchaseTimestamp)

	require.Len(t, orders.orders, 1)
	assert.Equal(t, order, orders.orders[0])
}

func TestOrderCreateFractionalMonthTerm(t *testing.T) {
	svc := newTestOrderService(latestCurveFixture(), &fakeOrderStore{})

	order, err := svc.Create(context.Background(), "1.5m", 500)
	require.NoError(t, err)
	assert.Equal(t, 4.22, order.Yield)
	assert.Equal(t, "2025-11-02", order.MaturityDate)
}

func TestOrderCreateQuantityBounds(t *testing.T) {
	tests := []struct {
		name     string
		quantity float64
		wantErr  bool
	}{
		{"zero rejected", 0, true},
		{"negative rejected", -5, true},
		{"smallest positive accepted", 0.01, false},
		{"max accepted", 10_000_000, false},
		{"just above max rejected", 10_000_000.000001, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestOrderService(latestCurveFixture(), &fakeOrderStore{})
			_, err := svc.Create(context.Background(), "10Y", tt.quantity)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, domain.ErrInvalidOrder))
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestOrderCreateUnknownTermLabel(t *testing.T) {
	svc := newTestOrderService(latestCurveFixture(), &fakeOrderStore{})

	_, err := svc.Create(context.Background(), "9Y", 100)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidOrder))
}

func TestOrderCreateValidationBeforeStoreAccess(t *testing.T) {
	// An invalid quantity must be rejected even when the store would
	// also fail; input validation runs first.
	curves := &fakeCurveStore{latestDateErr: errors.New("store down")}
	svc := newTestOrderService(curves, &fakeOrderStore{})

	_, err := svc.Create(context.Background(), "10Y", -1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidOrder))
}

func TestOrderCreateEmptyStore(t *testing.T) {
	svc := newTestOrderService(&fakeCurveStore{}, &fakeOrderStore{})

	_, err := svc.Create(context.Background(), "10Y", 100)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNoData))
}

func TestOrderCreateTermAbsentFromLatestCurve(t *testing.T) {
	curves := &fakeCurveStore{points: []domain.CurvePoint{
		{Date: "2025-09-18T00:00:00", Term: "1m", Yield: 4.20},
	}}
	svc := newTestOrderService(curves, &fakeOrderStore{})

	_, err := svc.Create(context.Background(), "30Y", 100)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUnknownTerm))
}

func TestOrderCreatePersistFailure(t *testing.T) {
	orders := &fakeOrderStore{createErr: errors.New("insert failed")}
	svc := newTestOrderService(latestCurveFixture(), orders)

	_, err := svc.Create(context.Background(), "10Y", 100)
	require.Error(t, err)
	assert.False(t, errors.Is(err, domain.ErrInvalidOrder))
}

func TestOrderList(t *testing.T) {
	orders := &fakeOrderStore{orders: []domain.Order{
		{ID: "a", Term: "1m"},
		{ID: "b", Term: "10Y"},
	}}
	svc := newTestOrderService(latestCurveFixture(), orders)

	got, err := svc.List(context.Background(), domain.ListOpts{Limit: 50})
	require.NoError(t, err)
	assert.Len(t, got, 2)
}
