package domain

import "context"

// ListOpts provides pagination for list queries.
type ListOpts struct {
	Limit  int
	Offset int
}

// CurvePointStore persists yield curve observations. ReplaceAll is the
// only write: the table is cleared and repopulated on every ingestion
// run, so a (date, term) pair is unique by construction.
type CurvePointStore interface {
	// ReplaceAll discards every stored point and inserts the given set
	// within one transaction. On failure the previous contents remain.
	ReplaceAll(ctx context.Context, points []CurvePoint) error

	// LatestDate returns the most recent curve date, or ErrNoData when
	// the store is empty.
	LatestDate(ctx context.Context) (string, error)

	// ListByDate returns all points for the given date. The date may be
	// the full stored form or the bare YYYY-MM-DD prefix. Returns
	// ErrNotFound when no points exist for the date.
	ListByDate(ctx context.Context, date string) ([]CurvePoint, error)

	// ListDates returns all distinct dates, most recent first.
	ListDates(ctx context.Context) ([]string, error)

	// List returns raw rows ordered by date descending then term
	// ascending (lexical).
	List(ctx context.Context, opts ListOpts) ([]CurvePoint, error)
}

// OrderStore persists booked orders append-only.
type OrderStore interface {
	Create(ctx context.Context, order Order) error
	GetByID(ctx context.Context, id string) (Order, error)

	// List returns orders newest first by purchase timestamp.
	List(ctx context.Context, opts ListOpts) ([]Order, error)
}
