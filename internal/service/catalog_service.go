package service

import (
	"errors"
	"fmt"

	"github.com/VASCOSORO/soopbeta/internal/normalizer"
	"github.com/VASCOSORO/soopbeta/internal/repositories"
	"github.com/VASCOSORO/soopbeta/internal/tabular"
	"github.com/VASCOSORO/soopbeta/models"
	"github.com/VASCOSORO/soopbeta/pkg/logger"
	"github.com/shopspring/decimal"
)

// ErrValidation marks a catalog edit with unusable field values.
var ErrValidation = errors.New("invalid product data")

// ImportRequest describes a raw catalog file to import.
type ImportRequest struct {
	Path      string `json:"path"`
	Delimiter string `json:"delimiter,omitempty"` // first rune used; "," when empty
	Encoding  string `json:"encoding,omitempty"`
}

// UpdateProductRequest carries the editable fields of a product. The code
// is taken from the URL and cannot change.
type UpdateProductRequest struct {
	Name           string          `json:"name"`
	Price          decimal.Decimal `json:"price"`
	Stock          int             `json:"stock"`
	ForcedMultiple int             `json:"forced_multiple"`
	ImageRef       string          `json:"image_ref"`
}

// CatalogServiceInterface imports raw product files into the fixed catalog
// schema and supports the catalog editor operations.
type CatalogServiceInterface interface {
	Import(req ImportRequest) (int, error)
	GetAll() []*models.Product
	Get(code string) (*models.Product, error)
	Update(code string, req UpdateProductRequest) (*models.Product, error)
}

// CatalogService implements CatalogServiceInterface.
type CatalogService struct {
	catalog repositories.CatalogRepositoryInterface
	schema  normalizer.Schema
	logger  *logger.Logger
}

// NewCatalogService creates a catalog service normalizing imports against
// the given schema.
func NewCatalogService(catalog repositories.CatalogRepositoryInterface, schema normalizer.Schema, logger *logger.Logger) *CatalogService {
	return &CatalogService{
		catalog: catalog,
		schema:  schema,
		logger:  logger.WithComponent("catalog_service"),
	}
}

// Import reads a delimited product file, normalizes it to the catalog
// schema and persists the result wholesale, replacing the loaded catalog.
// Returns the number of imported products.
func (s *CatalogService) Import(req ImportRequest) (int, error) {
	s.logger.Info("Importing catalog", "path", req.Path, "encoding", req.Encoding)

	opts := tabular.ReadOptions{Encoding: req.Encoding}
	for _, r := range req.Delimiter {
		opts.Delimiter = r
		break
	}

	raw, err := tabular.ReadDelimited(req.Path, opts)
	if err != nil {
		s.logger.Error("Catalog import failed", "path", req.Path, "error", err)
		return 0, err
	}

	normalized := normalizer.Normalize(raw, s.schema)
	products := make([]models.Product, 0, len(normalized.Rows))
	for _, row := range normalized.Rows {
		p := models.ProductFromRow(row)
		if p.Code == "" {
			continue
		}
		products = append(products, p)
	}

	s.catalog.ReplaceAll(products)
	if err := s.catalog.Save(); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	s.logger.Info("Catalog imported",
		"path", req.Path,
		"rows_read", len(raw.Rows),
		"products", s.catalog.Count())
	return s.catalog.Count(), nil
}

// GetAll returns the loaded catalog.
func (s *CatalogService) GetAll() []*models.Product {
	return s.catalog.GetAll()
}

// Get returns one product by code.
func (s *CatalogService) Get(code string) (*models.Product, error) {
	p, ok := s.catalog.GetByCode(code)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, code)
	}
	return p, nil
}

// Update edits a product in place and persists the catalog wholesale.
func (s *CatalogService) Update(code string, req UpdateProductRequest) (*models.Product, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}
	if req.Price.IsNegative() {
		return nil, fmt.Errorf("%w: price cannot be negative", ErrValidation)
	}
	if req.ForcedMultiple < 0 {
		return nil, fmt.Errorf("%w: forced multiple cannot be negative", ErrValidation)
	}

	updated := models.Product{
		Code:           code,
		Name:           req.Name,
		Price:          req.Price,
		Stock:          req.Stock,
		ForcedMultiple: req.ForcedMultiple,
		ImageRef:       req.ImageRef,
	}
	if !s.catalog.Update(code, updated) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, code)
	}
	if err := s.catalog.Save(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	s.logger.Info("Product updated", "code", code)
	p, _ := s.catalog.GetByCode(code)
	return p, nil
}
