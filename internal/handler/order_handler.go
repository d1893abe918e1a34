package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/VASCOSORO/soopbeta/internal/service"
	"github.com/VASCOSORO/soopbeta/pkg/logger"
	"github.com/go-chi/chi/v5"
)

// OrderHandler exposes the point-of-sale session over HTTP.
type OrderHandler struct {
	orderService service.OrderServiceInterface
	logger       *logger.Logger
}

// NewOrderHandler creates a new OrderHandler with the given service and logger
func NewOrderHandler(orderService service.OrderServiceInterface, logger *logger.Logger) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
		logger:       logger.WithComponent("order_handler"),
	}
}

type addLineRequest struct {
	Code     string `json:"code"`
	Quantity int    `json:"quantity"`
}

type commitRequest struct {
	Client      string `json:"client"`
	Salesperson string `json:"salesperson"`
}

// GetOrder handles GET /api/v1/order
func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	order := h.orderService.Current()
	writeJSONResponse(w, http.StatusOK, map[string]interface{}{
		"lines":      order.Lines,
		"total":      order.Total(),
		"item_count": order.ItemCount(),
	})
}

// AddLine handles POST /api/v1/order/lines
func (h *OrderHandler) AddLine(w http.ResponseWriter, r *http.Request) {
	var req addLineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("Invalid request body for add line", "error", err)
		writeErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.orderService.AddLine(req.Code, req.Quantity); err != nil {
		writeErrorResponse(w, statusForError(err), err.Error())
		return
	}
	h.GetOrder(w, r)
}

// RemoveLine handles DELETE /api/v1/order/lines/{index}
func (h *OrderHandler) RemoveLine(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "Invalid line index")
		return
	}

	if err := h.orderService.RemoveLine(index); err != nil {
		writeErrorResponse(w, statusForError(err), err.Error())
		return
	}
	h.GetOrder(w, r)
}

// Discard handles DELETE /api/v1/order
func (h *OrderHandler) Discard(w http.ResponseWriter, r *http.Request) {
	h.orderService.Discard()
	w.WriteHeader(http.StatusNoContent)
}

// Commit handles POST /api/v1/order/commit
func (h *OrderHandler) Commit(w http.ResponseWriter, r *http.Request) {
	var req commitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("Invalid request body for commit", "error", err)
		writeErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	rec, err := h.orderService.Commit(req.Client, req.Salesperson)
	if err != nil {
		writeErrorResponse(w, statusForError(err), err.Error())
		return
	}
	writeJSONResponse(w, http.StatusCreated, rec)
}
