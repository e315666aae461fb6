// Package handler serves the HTTP endpoints: yield curve queries and
// order booking.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/yuval-krn/yieldcurve/internal/domain"
)

// CurveService defines the read operations the curve handler requires
// from the service layer.
type CurveService interface {
	Latest(ctx context.Context) (string, []domain.CurvePoint, error)
	ByDate(ctx context.Context, date string) ([]domain.CurvePoint, error)
	Dates(ctx context.Context) ([]string, error)
	List(ctx context.Context, opts domain.ListOpts) ([]domain.CurvePoint, error)
}

// CurveHandler serves yield-curve HTTP endpoints.
type CurveHandler struct {
	curves CurveService
	logger *slog.Logger
}

// NewCurveHandler creates a CurveHandler with the given service and
// logger.
func NewCurveHandler(curves CurveService, logger *slog.Logger) *CurveHandler {
	return &CurveHandler{
		curves: curves,
		logger: logger,
	}
}

// chartPoint is the wire shape of one curve point in chart responses.
// The capitalized Yield key is part of the public contract.
type chartPoint struct {
	Term  string  `json:"term"`
	Yield float64 `json:"Yield"`
}

// curveResponse is the wire shape of a full curve for one date.
type curveResponse struct {
	Date      string       `json:"date"`
	ChartData []chartPoint `json:"chart_data"`
}

func toChartData(points []domain.CurvePoint) []chartPoint {
	chart := make([]chartPoint, 0, len(points))
	for _, p := range points {
		chart = append(chart, chartPoint{Term: string(p.Term), Yield: p.Yield})
	}
	return chart
}

// LatestCurve returns the most recent curve in canonical term order.
// GET /
func (h *CurveHandler) LatestCurve(w http.ResponseWriter, r *http.Request) {
	date, points, err := h.curves.Latest(r.Context())
	if err != nil {
		if errors.Is(err, domain.ErrNoData) || errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "no yield curve data available")
			return
		}
		h.logger.ErrorContext(r.Context(), "handler: latest curve failed",
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusInternalServerError, "failed to load yield curve")
		return
	}

	writeJSON(w, http.StatusOK, curveResponse{
		Date:      date,
		ChartData: toChartData(points),
	})
}

// datesResponse wraps the list of distinct curve dates.
type datesResponse struct {
	Dates []string `json:"dates"`
}

// ListDates returns all distinct curve dates, most recent first.
// GET /treasury/dates/
func (h *CurveHandler) ListDates(w http.ResponseWriter, r *http.Request) {
	dates, err := h.curves.Dates(r.Context())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "handler: list dates failed",
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusInternalServerError, "failed to list dates")
		return
	}

	if dates == nil {
		dates = []string{}
	}
	writeJSON(w, http.StatusOK, datesResponse{Dates: dates})
}

// CurveByDate returns the curve for one date in canonical term order.
// GET /treasury/{date}
func (h *CurveHandler) CurveByDate(w http.ResponseWriter, r *http.Request) {
	date := r.PathValue("date")
	if date == "" {
		writeError(w, http.StatusBadRequest, "missing date")
		return
	}

	points, err := h.curves.ByDate(r.Context(), date)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "no data for date "+date)
			return
		}
		h.logger.ErrorContext(r.Context(), "handler: curve by date failed",
			slog.String("date", date),
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusInternalServerError, "failed to load yield curve")
		return
	}

	writeJSON(w, http.StatusOK, curveResponse{
		Date:      date,
		ChartData: toChartData(points),
	})
}

// ListPoints returns raw paginated rows for bulk export, ordered by
// date descending then term ascending.
// GET /treasury/?offset=0&limit=50
func (h *CurveHandler) ListPoints(w http.ResponseWriter, r *http.Request) {
	points, err := h.curves.List(r.Context(), parseListOpts(r))
	if err != nil {
		h.logger.ErrorContext(r.Context(), "handler: list points failed",
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusInternalServerError, "failed to list points")
		return
	}

	if points == nil {
		points = []domain.CurvePoint{}
	}
	writeJSON(w, http.StatusOK, points)
}
