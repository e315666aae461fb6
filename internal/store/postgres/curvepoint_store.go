package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yuval-krn/yieldcurve/internal/domain"
)

// CurvePointStore implements domain.CurvePointStore using PostgreSQL.
type CurvePointStore struct {
	pool *pgxpool.Pool
}

// NewCurvePointStore creates a CurvePointStore backed by the given
// connection pool.
func NewCurvePointStore(pool *pgxpool.Pool) *CurvePointStore {
	return &CurvePointStore{pool: pool}
}

// ReplaceAll clears the table and inserts the given points within one
// transaction. Concurrent readers see either the previous contents or
// the full new set, never a half-replaced table.
func (s *CurvePointStore) ReplaceAll(ctx context.Context, points []domain.CurvePoint) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("postgres: replace curve points: begin: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM chart_data_points`); err != nil {
		return fmt.Errorf("postgres: replace curve points: clear: %w", err)
	}

	rows := make([][]any, 0, len(points))
	for _, p := range points {
		rows = append(rows, []any{p.Date, string(p.Term), p.Yield})
	}

	if _, err := tx.CopyFrom(ctx,
		pgx.Identifier{"chart_data_points"},
		[]string{"date", "term", "yield_value"},
		pgx.CopyFromRows(rows),
	); err != nil {
		return fmt.Errorf("postgres: replace curve points: copy %d rows: %w", len(rows), err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("postgres: replace curve points: commit: %w", err)
	}
	return nil
}

// LatestDate returns the most recent curve date. Dates are stored in
// ISO form, so lexical ordering matches chronological ordering.
func (s *CurvePointStore) LatestDate(ctx context.Context) (string, error) {
	var date string
	err := s.pool.QueryRow(ctx,
		`SELECT date FROM chart_data_points ORDER BY date DESC LIMIT 1`,
	).Scan(&date)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", domain.ErrNoData
		}
		return "", fmt.Errorf("postgres: latest curve date: %w", err)
	}
	return date, nil
}

// ListByDate returns all points for the given date, matching either the
// full stored form or the bare YYYY-MM-DD prefix.
func (s *CurvePointStore) ListByDate(ctx context.Context, date string) ([]domain.CurvePoint, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT date, term, yield_value FROM chart_data_points
		 WHERE date = $1 OR split_part(date, 'T', 1) = $1
		 ORDER BY term ASC`, date)
	if err != nil {
		return nil, fmt.Errorf("postgres: list curve points for %s: %w", date, err)
	}
	defer rows.Close()

	points, err := scanCurvePoints(rows)
	if err != nil {
		return nil, fmt.Errorf("postgres: scan curve points for %s: %w", date, err)
	}
	if len(points) == 0 {
		return nil, domain.ErrNotFound
	}
	return points, nil
}

// ListDates returns all distinct curve dates, most recent first.
func (s *CurvePointStore) ListDates(ctx context.Context) ([]string, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT DISTINCT date FROM chart_data_points ORDER BY date DESC`)
	if err != nil {
		return nil, fmt.Errorf("postgres: list curve dates: %w", err)
	}
	defer rows.Close()

	var dates []string
	for rows.Next() {
		var d string
		if err := rows.Scan(&d); err != nil {
			return nil, fmt.Errorf("postgres: scan curve date: %w", err)
		}
		dates = append(dates, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: list curve dates: %w", err)
	}
	return dates, nil
}

// List returns raw rows ordered by date descending then term ascending.
func (s *CurvePointStore) List(ctx context.Context, opts domain.ListOpts) ([]domain.CurvePoint, error) {
	query := `SELECT date, term, yield_value FROM chart_data_points
		 ORDER BY date DESC, term ASC`
	args := []any{}
	argIdx := 1

	if opts.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argIdx)
		args = append(args, opts.Limit)
		argIdx++
	}
	if opts.Offset > 0 {
		query += fmt.Sprintf(" OFFSET $%d", argIdx)
		args = append(args, opts.Offset)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("postgres: list curve points: %w", err)
	}
	defer rows.Close()

	points, err := scanCurvePoints(rows)
	if err != nil {
		return nil, fmt.Errorf("postgres: scan curve points: %w", err)
	}
	return points, nil
}

func scanCurvePoints(rows pgx.Rows) ([]domain.CurvePoint, error) {
	var points []domain.CurvePoint
	for rows.Next() {
		var p domain.CurvePoint
		var term string
		if err := rows.Scan(&p.Date, &term, &p.Yield); err != nil {
			return nil, err
		}
		p.Term = domain.Term(term)
		points = append(points, p)
	}
	return points, rows.Err()
}

// Compile-time interface check.
var _ domain.CurvePointStore = (*CurvePointStore)(nil)
