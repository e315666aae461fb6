package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yuval-krn/yieldcurve/internal/domain"
)

// stubCurveService implements CurveService with canned responses.
type stubCurveService struct {
	latestDate   string
	latestPoints []domain.CurvePoint
	latestErr    error

	byDatePoints []domain.CurvePoint
	byDateErr    error

	dates    []string
	datesErr error

	listPoints []domain.CurvePoint
	listErr    error
	listOpts   domain.ListOpts
}

func (s *stubCurveService) Latest(ctx context.Context) (string, []domain.CurvePoint, error) {
	return s.latestDate, s.latestPoints, s.latestErr
}

func (s *stubCurveService) ByDate(ctx context.Context, date string) ([]domain.CurvePoint, error) {
	return s.byDatePoints, s.byDateErr
}

func (s *stubCurveService) Dates(ctx context.Context) ([]string, error) {
	return s.dates, s.datesErr
}

func (s *stubCurveService) List(ctx context.Context, opts domain.ListOpts) ([]domain.CurvePoint, error) {
	s.listOpts = opts
	return s.listPoints, s.listErr
}

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func TestLatestCurve(t *testing.T) {
	svc := &stubCurveService{
		latestDate: "2025-09-18T00:00:00",
		latestPoints: []domain.CurvePoint{
			{Date: "2025-09-18T00:00:00", Term: "1m", Yield: 4.20},
			{Date: "2025-09-18T00:00:00", Term: "10Y", Yield: 4.05},
		},
	}
	h := NewCurveHandler(svc, testLogger())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	h.LatestCurve(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")

	var body struct {
		Date      string `json:"date"`
		ChartData []struct {
			Term  string  `json:"term"`
			Yield float64 `json:"Yield"`
		} `json:"chart_data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	assert.Equal(t, "2025-09-18T00:00:00", body.Date)
	require.Len(t, body.ChartData, 2)
	assert.Equal(t, "1m", body.ChartData[0].Term)
	assert.Equal(t, 4.20, body.ChartData[0].Yield)

	// The capitalized Yield key is part of the contract.
	assert.Contains(t, rec.Body.String(), `"Yield":`)
}

func TestLatestCurveNoData(t *testing.T) {
	h := NewCurveHandler(&stubCurveService{latestErr: domain.ErrNoData}, testLogger())

	rec := httptest.NewRecorder()
	h.LatestCurve(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "error")
}

func TestCurveByDate(t *testing.T) {
	svc := &stubCurveService{
		byDatePoints: []domain.CurvePoint{
			{Date: "2025-09-17T00:00:00", Term: "10Y", Yield: 3.99},
		},
	}
	h := NewCurveHandler(svc, testLogger())

	mux := http.NewServeMux()
	mux.HandleFunc("GET /treasury/{date}", h.CurveByDate)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/treasury/2025-09-17", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Date      string `json:"date"`
		ChartData []struct {
			Term string `json:"term"`
		} `json:"chart_data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "2025-09-17", body.Date)
	require.Len(t, body.ChartData, 1)
}

func TestCurveByDateNotFound(t *testing.T) {
	h := NewCurveHandler(&stubCurveService{byDateErr: domain.ErrNotFound}, testLogger())

	mux := http.NewServeMux()
	mux.HandleFunc("GET /treasury/{date}", h.CurveByDate)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/treasury/1999-01-01", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListDates(t *testing.T) {
	svc := &stubCurveService{dates: []string{"2025-09-18T00:00:00", "2025-09-17T00:00:00"}}
	h := NewCurveHandler(svc, testLogger())

	rec := httptest.NewRecorder()
	h.ListDates(rec, httptest.NewRequest(http.MethodGet, "/treasury/dates/", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Dates []string `json:"dates"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Len(t, body.Dates, 2)
}

func TestListDatesEmpty(t *testing.T) {
	h := NewCurveHandler(&stubCurveService{}, testLogger())

	rec := httptest.NewRecorder()
	h.ListDates(rec, httptest.NewRequest(http.MethodGet, "/treasury/dates/", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"dates":[]}`, rec.Body.String())
}

func TestListPointsPagination(t *testing.T) {
	svc := &stubCurveService{}
	h := NewCurveHandler(svc, testLogger())

	rec := httptest.NewRecorder()
	h.ListPoints(rec, httptest.NewRequest(http.MethodGet, "/treasury/?limit=10&offset=20", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, domain.ListOpts{Limit: 10, Offset: 20}, svc.listOpts)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestListPointsLimitClamped(t *testing.T) {
	svc := &stubCurveService{}
	h := NewCurveHandler(svc, testLogger())

	rec := httptest.NewRecorder()
	h.ListPoints(rec, httptest.NewRequest(http.MethodGet, "/treasury/?limit=9999", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 500, svc.listOpts.Limit)
}
