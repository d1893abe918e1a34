package handler

import (
	"encoding/json"
	"net/http"

	"github.com/VASCOSORO/soopbeta/internal/service"
	"github.com/VASCOSORO/soopbeta/pkg/logger"
)

// ConvertHandler exposes the free-form file converter over HTTP.
type ConvertHandler struct {
	convertService service.ConvertServiceInterface
	logger         *logger.Logger
}

// NewConvertHandler creates a new ConvertHandler with the given service and logger
func NewConvertHandler(convertService service.ConvertServiceInterface, logger *logger.Logger) *ConvertHandler {
	return &ConvertHandler{
		convertService: convertService,
		logger:         logger.WithComponent("convert_handler"),
	}
}

// Convert handles POST /api/v1/convert
func (h *ConvertHandler) Convert(w http.ResponseWriter, r *http.Request) {
	var req service.ConvertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("Invalid request body for convert", "error", err)
		writeErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Source == "" || req.Target == "" {
		writeErrorResponse(w, http.StatusBadRequest, "source and target are required")
		return
	}

	result, err := h.convertService.Convert(req)
	if err != nil {
		writeErrorResponse(w, statusForError(err), err.Error())
		return
	}
	writeJSONResponse(w, http.StatusOK, result)
}
