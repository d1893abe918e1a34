package handler

import (
	"encoding/json"
	"net/http"

	"github.com/VASCOSORO/soopbeta/internal/service"
	"github.com/VASCOSORO/soopbeta/pkg/logger"
	"github.com/go-chi/chi/v5"
)

// CatalogHandler exposes catalog import and the catalog editor over HTTP.
type CatalogHandler struct {
	catalogService service.CatalogServiceInterface
	logger         *logger.Logger
}

// NewCatalogHandler creates a new CatalogHandler with the given service and logger
func NewCatalogHandler(catalogService service.CatalogServiceInterface, logger *logger.Logger) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
		logger:         logger.WithComponent("catalog_handler"),
	}
}

// Import handles POST /api/v1/catalog/import
func (h *CatalogHandler) Import(w http.ResponseWriter, r *http.Request) {
	var req service.ImportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("Invalid request body for catalog import", "error", err)
		writeErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Path == "" {
		writeErrorResponse(w, http.StatusBadRequest, "path is required")
		return
	}

	count, err := h.catalogService.Import(req)
	if err != nil {
		writeErrorResponse(w, statusForError(err), err.Error())
		return
	}
	writeJSONResponse(w, http.StatusOK, map[string]int{"imported": count})
}

// GetAll handles GET /api/v1/catalog
func (h *CatalogHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	writeJSONResponse(w, http.StatusOK, h.catalogService.GetAll())
}

// GetByCode handles GET /api/v1/catalog/{code}
func (h *CatalogHandler) GetByCode(w http.ResponseWriter, r *http.Request) {
	product, err := h.catalogService.Get(chi.URLParam(r, "code"))
	if err != nil {
		writeErrorResponse(w, statusForError(err), err.Error())
		return
	}
	writeJSONResponse(w, http.StatusOK, product)
}

// Update handles PUT /api/v1/catalog/{code}
func (h *CatalogHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req service.UpdateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("Invalid request body for product update", "error", err)
		writeErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	product, err := h.catalogService.Update(chi.URLParam(r, "code"), req)
	if err != nil {
		writeErrorResponse(w, statusForError(err), err.Error())
		return
	}
	writeJSONResponse(w, http.StatusOK, product)
}
