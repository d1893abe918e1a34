package repositories

import (
	"errors"
	"fmt"
	"os"

	"github.com/VASCOSORO/soopbeta/internal/normalizer"
	"github.com/VASCOSORO/soopbeta/internal/tabular"
	"github.com/VASCOSORO/soopbeta/models"
	"github.com/VASCOSORO/soopbeta/pkg/logger"
)

// CatalogSheet is the worksheet name of the catalog workbook.
const CatalogSheet = "Products"

// CatalogRepositoryInterface is the catalog store: an in-memory product
// table loaded wholesale from an xlsx workbook and written back wholesale.
// There is no row-level diffing; the last writer wins on the backing file.
type CatalogRepositoryInterface interface {
	Load() error
	Save() error
	GetAll() []*models.Product
	GetByCode(code string) (*models.Product, bool)
	ReplaceAll(products []models.Product)
	Update(code string, p models.Product) bool
	Count() int
}

// ValidateCatalogSchema checks that a normalization schema produces every
// column the typed catalog rows are keyed by. A schema file that renames or
// omits one of them would otherwise load and save empty cells silently.
func ValidateCatalogSchema(s normalizer.Schema) error {
	required := []string{
		models.ColCode,
		models.ColName,
		models.ColPrice,
		models.ColStock,
		models.ColForcedMultiple,
		models.ColImageRef,
	}
	headers := make(map[string]bool, len(s.Target))
	for _, h := range s.TargetHeaders() {
		headers[h] = true
	}
	for _, col := range required {
		if !headers[col] {
			return fmt.Errorf("catalog schema is missing required column %q", col)
		}
	}
	return nil
}

// CatalogRepository implements CatalogRepositoryInterface over one workbook.
type CatalogRepository struct {
	path     string
	schema   normalizer.Schema
	products []*models.Product
	index    map[string]*models.Product
	logger   *logger.Logger
}

// NewCatalogRepository creates a catalog repository backed by the workbook
// at path. Call Load before use; a missing workbook is not an error at
// construction time (first run).
func NewCatalogRepository(path string, schema normalizer.Schema, logger *logger.Logger) *CatalogRepository {
	return &CatalogRepository{
		path:   path,
		schema: schema,
		index:  make(map[string]*models.Product),
		logger: logger.WithComponent("catalog_repository"),
	}
}

// Load reads the whole workbook into memory, replacing any loaded state.
// Rows without a code are skipped; on duplicate codes the first row wins.
func (r *CatalogRepository) Load() error {
	if _, err := os.Stat(r.path); errors.Is(err, os.ErrNotExist) {
		r.logger.Warn("Catalog workbook not found, starting empty", "path", r.path)
		r.ReplaceAll(nil)
		return nil
	}

	table, err := tabular.ReadSheet(r.path, CatalogSheet)
	if err != nil {
		r.logger.Error("Failed to load catalog workbook", "path", r.path, "error", err)
		return fmt.Errorf("load catalog: %w", err)
	}

	products := make([]models.Product, 0, len(table.Rows))
	for _, row := range table.Rows {
		p := models.ProductFromRow(row)
		if p.Code == "" {
			continue
		}
		products = append(products, p)
	}
	r.ReplaceAll(products)
	r.logger.Info("Catalog loaded", "path", r.path, "products", len(r.products))
	return nil
}

// Save writes the full in-memory catalog back to the workbook, overwriting
// it wholesale.
func (r *CatalogRepository) Save() error {
	table := tabular.New(r.schema.TargetHeaders()...)
	for _, p := range r.products {
		table.Append(p.ToRow())
	}
	if err := tabular.WriteSheet(table, r.path, CatalogSheet); err != nil {
		r.logger.Error("Failed to save catalog workbook", "path", r.path, "error", err)
		return fmt.Errorf("save catalog: %w", err)
	}
	r.logger.Info("Catalog saved", "path", r.path, "products", len(r.products))
	return nil
}

// GetAll returns the loaded products in catalog order.
func (r *CatalogRepository) GetAll() []*models.Product {
	return r.products
}

// GetByCode looks a product up by its sanitized code.
func (r *CatalogRepository) GetByCode(code string) (*models.Product, bool) {
	p, ok := r.index[code]
	return p, ok
}

// ReplaceAll swaps the in-memory catalog for the given products. Duplicate
// codes keep the first occurrence.
func (r *CatalogRepository) ReplaceAll(products []models.Product) {
	r.products = make([]*models.Product, 0, len(products))
	r.index = make(map[string]*models.Product, len(products))
	for i := range products {
		p := products[i]
		if _, dup := r.index[p.Code]; dup {
			r.logger.Warn("Duplicate product code in catalog, keeping first", "code", p.Code)
			continue
		}
		r.products = append(r.products, &p)
		r.index[p.Code] = &p
	}
}

// Update overwrites the stored product with the given code. The code itself
// is immutable; p.Code is ignored. Returns false when the code is unknown.
func (r *CatalogRepository) Update(code string, p models.Product) bool {
	existing, ok := r.index[code]
	if !ok {
		return false
	}
	p.Code = code
	*existing = p
	return true
}

// Count returns the number of loaded products.
func (r *CatalogRepository) Count() int {
	return len(r.products)
}
