package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/yuval-krn/yieldcurve/internal/domain"
)

// OrderService defines the methods the order handler requires from the
// service layer.
type OrderService interface {
	Create(ctx context.Context, term domain.Term, quantity float64) (domain.Order, error)
	List(ctx context.Context, opts domain.ListOpts) ([]domain.Order, error)
}

// OrderHandler serves order-related HTTP endpoints.
type OrderHandler struct {
	orders OrderService
	logger *slog.Logger
}

// NewOrderHandler creates an OrderHandler with the given service and
// logger.
func NewOrderHandler(orders OrderService, logger *slog.Logger) *OrderHandler {
	return &OrderHandler{
		orders: orders,
		logger: logger,
	}
}

// createOrderRequest is the POST body for booking an order. The yield
// is deliberately not an input: the ledger always substitutes the
// current market yield for the term.
type createOrderRequest struct {
	Term     string  `json:"term"`
	Quantity float64 `json:"quantity"`
}

// CreateOrder books an order against the latest curve.
// POST /orders/
//
// Responds 422 for malformed input (bad JSON, unknown term, quantity
// out of bounds) and 400 for business-rule rejections (empty store,
// term absent from the latest curve).
func (h *OrderHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid request body: "+err.Error())
		return
	}

	order, err := h.orders.Create(r.Context(), domain.Term(req.Term), req.Quantity)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidOrder):
			writeError(w, http.StatusUnprocessableEntity, err.Error())
		case errors.Is(err, domain.ErrNoData), errors.Is(err, domain.ErrUnknownTerm):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			h.logger.ErrorContext(r.Context(), "handler: create order failed",
				slog.String("term", req.Term),
				slog.String("error", err.Error()),
			)
			writeError(w, http.StatusInternalServerError, "failed to create order")
		}
		return
	}

	writeJSON(w, http.StatusCreated, order)
}

// ListOrders returns booked orders, newest first.
// GET /orders/?offset=0&limit=50
func (h *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orders.List(r.Context(), parseListOpts(r))
	if err != nil {
		h.logger.ErrorContext(r.Context(), "handler: list orders failed",
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusInternalServerError, "failed to list orders")
		return
	}

	if orders == nil {
		orders = []domain.Order{}
	}
	writeJSON(w, http.StatusOK, orders)
}
