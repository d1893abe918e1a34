package handler

import (
	"net/http"

	"github.com/VASCOSORO/soopbeta/internal/service"
	"github.com/VASCOSORO/soopbeta/pkg/logger"
)

// DashboardHandler exposes the client/sales dashboard over HTTP.
type DashboardHandler struct {
	dashboardService service.DashboardServiceInterface
	logger           *logger.Logger
}

// NewDashboardHandler creates a new DashboardHandler with the given service and logger
func NewDashboardHandler(dashboardService service.DashboardServiceInterface, logger *logger.Logger) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
		logger:           logger.WithComponent("dashboard_handler"),
	}
}

// Clients handles GET /api/v1/clients
func (h *DashboardHandler) Clients(w http.ResponseWriter, r *http.Request) {
	writeJSONResponse(w, http.StatusOK, h.dashboardService.Clients())
}

// ClientSummaries handles GET /api/v1/dashboard/clients
func (h *DashboardHandler) ClientSummaries(w http.ResponseWriter, r *http.Request) {
	summaries, err := h.dashboardService.ClientSummaries()
	if err != nil {
		h.logger.Error("Failed to build client summaries", "error", err)
		writeErrorResponse(w, http.StatusInternalServerError, "Failed to build client summaries")
		return
	}
	writeJSONResponse(w, http.StatusOK, summaries)
}

// SalespersonSummaries handles GET /api/v1/dashboard/salespeople
func (h *DashboardHandler) SalespersonSummaries(w http.ResponseWriter, r *http.Request) {
	summaries, err := h.dashboardService.SalespersonSummaries()
	if err != nil {
		h.logger.Error("Failed to build salesperson summaries", "error", err)
		writeErrorResponse(w, http.StatusInternalServerError, "Failed to build salesperson summaries")
		return
	}
	writeJSONResponse(w, http.StatusOK, summaries)
}
