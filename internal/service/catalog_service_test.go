package service

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/VASCOSORO/soopbeta/internal/normalizer"
	"github.com/VASCOSORO/soopbeta/internal/repositories"
	"github.com/VASCOSORO/soopbeta/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCatalogFixture(t *testing.T, products ...models.Product) (*CatalogService, *repositories.CatalogRepository) {
	t.Helper()
	repo := repositories.NewCatalogRepository(
		filepath.Join(t.TempDir(), "catalog.xlsx"), normalizer.DefaultCatalogSchema(), testLogger())
	repo.ReplaceAll(products)
	return NewCatalogService(repo, normalizer.DefaultCatalogSchema(), testLogger()), repo
}

func TestImportSupplierFile(t *testing.T) {
	src := filepath.Join(t.TempDir(), "supplier.csv")
	require.NoError(t, os.WriteFile(src, []byte(
		"Codigo ,Descripcion,Precio,Rubro\n"+
			"1.234,Lamp,\"99,90\",Hogar\n"+
			"88,Mug,5,Cocina\n"+
			",sin codigo,1,Otros\n"), 0o644))

	svc, repo := newCatalogFixture(t)
	count, err := svc.Import(ImportRequest{Path: src})
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	// Identifier dots stripped, comma decimal parsed, dropped column gone.
	p, err := svc.Get("1234")
	require.NoError(t, err)
	assert.Equal(t, "Lamp", p.Name)
	assert.True(t, p.Price.Equal(decimal.RequireFromString("99.90")))
	assert.Equal(t, 0, p.Stock)

	// The import was persisted wholesale.
	require.NoError(t, repo.Load())
	assert.Equal(t, 2, repo.Count())
}

func TestImportReplacesExistingCatalog(t *testing.T) {
	src := filepath.Join(t.TempDir(), "supplier.csv")
	require.NoError(t, os.WriteFile(src, []byte("Codigo,Descripcion\n9,New\n"), 0o644))

	svc, _ := newCatalogFixture(t, models.Product{Code: "old", Name: "Old"})
	count, err := svc.Import(ImportRequest{Path: src})
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	_, err = svc.Get("old")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestImportMissingFile(t *testing.T) {
	svc, _ := newCatalogFixture(t, models.Product{Code: "A1", Name: "Keep"})
	_, err := svc.Import(ImportRequest{Path: filepath.Join(t.TempDir(), "nope.csv")})
	require.Error(t, err)

	// A failed import leaves the loaded catalog alone.
	_, err = svc.Get("A1")
	assert.NoError(t, err)
}

func TestUpdateProduct(t *testing.T) {
	svc, _ := newCatalogFixture(t, models.Product{Code: "A1", Name: "Lamp", Stock: 5})

	p, err := svc.Update("A1", UpdateProductRequest{
		Name:           "Desk Lamp",
		Price:          decimal.NewFromInt(120),
		Stock:          7,
		ForcedMultiple: 2,
	})
	require.NoError(t, err)
	assert.Equal(t, "A1", p.Code)
	assert.Equal(t, "Desk Lamp", p.Name)
	assert.Equal(t, 7, p.Stock)
}

func TestUpdateProductValidation(t *testing.T) {
	svc, _ := newCatalogFixture(t, models.Product{Code: "A1", Name: "Lamp"})

	_, err := svc.Update("A1", UpdateProductRequest{Name: ""})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Update("A1", UpdateProductRequest{Name: "x", Price: decimal.NewFromInt(-1)})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Update("A1", UpdateProductRequest{Name: "x", ForcedMultiple: -2})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Update("ZZ", UpdateProductRequest{Name: "x"})
	assert.ErrorIs(t, err, ErrNotFound)
}
