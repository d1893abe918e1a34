package service

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/VASCOSORO/soopbeta/internal/normalizer"
	"github.com/VASCOSORO/soopbeta/internal/repositories"
	"github.com/VASCOSORO/soopbeta/models"
	"github.com/VASCOSORO/soopbeta/pkg/logger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Level: logger.LevelError, Format: "text", Output: "stderr"})
}

func fixedClock() func() time.Time {
	return func() time.Time {
		return time.Date(2026, 9, 1, 10, 30, 0, 0, time.UTC)
	}
}

type orderFixture struct {
	catalog *repositories.CatalogRepository
	ledger  *repositories.LedgerRepository
	service *OrderService
}

func newOrderFixture(t *testing.T, products ...models.Product) *orderFixture {
	t.Helper()
	dir := t.TempDir()

	catalog := repositories.NewCatalogRepository(
		filepath.Join(dir, "catalog.xlsx"), normalizer.DefaultCatalogSchema(), testLogger())
	catalog.ReplaceAll(products)

	ledger := repositories.NewLedgerRepository(filepath.Join(dir, "orders.csv"), testLogger())

	svc := NewOrderService(catalog, ledger, testLogger()).WithClock(fixedClock())
	return &orderFixture{catalog: catalog, ledger: ledger, service: svc}
}

func stockOf(t *testing.T, f *orderFixture, code string) int {
	t.Helper()
	p, ok := f.catalog.GetByCode(code)
	require.True(t, ok)
	return p.Stock
}

func TestAddRemoveRestoresStock(t *testing.T) {
	f := newOrderFixture(t, models.Product{Code: "A1", Name: "Lamp", Price: decimal.NewFromInt(100), Stock: 5})

	require.NoError(t, f.service.AddLine("A1", 2))
	assert.Equal(t, 3, stockOf(t, f, "A1"))
	order := f.service.Current()
	assert.True(t, order.Total().Equal(decimal.NewFromInt(200)))
	assert.Equal(t, 2, order.ItemCount())

	require.NoError(t, f.service.RemoveLine(0))
	assert.Equal(t, 5, stockOf(t, f, "A1"))
	assert.Empty(t, f.service.Current().Lines)

	_, err := f.service.Commit("Acme", "Alice")
	assert.ErrorIs(t, err, ErrEmptyOrder)
}

func TestAddLineUnknownCode(t *testing.T) {
	f := newOrderFixture(t)
	assert.ErrorIs(t, f.service.AddLine("ZZ", 1), ErrNotFound)
}

func TestAddLineDuplicateCode(t *testing.T) {
	f := newOrderFixture(t, models.Product{Code: "A1", Price: decimal.NewFromInt(10), Stock: 10})

	require.NoError(t, f.service.AddLine("A1", 1))
	assert.ErrorIs(t, f.service.AddLine("A1", 1), ErrDuplicate)
	assert.Len(t, f.service.Current().Lines, 1)
	// The rejected add must not have touched stock.
	assert.Equal(t, 9, stockOf(t, f, "A1"))
}

func TestAddLineQuantityValidation(t *testing.T) {
	f := newOrderFixture(t, models.Product{Code: "A1", Price: decimal.NewFromInt(10), Stock: 5})

	assert.ErrorIs(t, f.service.AddLine("A1", 0), ErrInvalidQuantity)
	assert.ErrorIs(t, f.service.AddLine("A1", -3), ErrInvalidQuantity)
	assert.ErrorIs(t, f.service.AddLine("A1", 6), ErrInvalidQuantity) // exceeds stock
	assert.Equal(t, 5, stockOf(t, f, "A1"))
}

func TestAddLineForcedMultiple(t *testing.T) {
	f := newOrderFixture(t, models.Product{Code: "A1", Price: decimal.NewFromInt(10), Stock: 5, ForcedMultiple: 6})

	assert.ErrorIs(t, f.service.AddLine("A1", 4), ErrInvalidQuantity)

	// Multiples are accepted even beyond available stock: forced-multiple
	// products skip the stock ceiling, so the row can go negative.
	require.NoError(t, f.service.AddLine("A1", 12))
	assert.Equal(t, -7, stockOf(t, f, "A1"))
}

func TestRemoveLineOutOfRange(t *testing.T) {
	f := newOrderFixture(t, models.Product{Code: "A1", Price: decimal.NewFromInt(10), Stock: 5})
	require.NoError(t, f.service.AddLine("A1", 1))

	assert.ErrorIs(t, f.service.RemoveLine(-1), ErrOutOfRange)
	assert.ErrorIs(t, f.service.RemoveLine(1), ErrOutOfRange)
}

func TestStockConservation(t *testing.T) {
	f := newOrderFixture(t,
		models.Product{Code: "A1", Price: decimal.NewFromInt(10), Stock: 5},
		models.Product{Code: "B2", Price: decimal.NewFromInt(20), Stock: 8},
	)

	require.NoError(t, f.service.AddLine("A1", 3))
	require.NoError(t, f.service.AddLine("B2", 4))
	require.NoError(t, f.service.RemoveLine(0))
	require.NoError(t, f.service.AddLine("A1", 1))
	f.service.Discard()

	assert.Equal(t, 5, stockOf(t, f, "A1"))
	assert.Equal(t, 8, stockOf(t, f, "B2"))
	assert.Empty(t, f.service.Current().Lines)
}

func TestStockReservationVisibleWithinSession(t *testing.T) {
	f := newOrderFixture(t,
		models.Product{Code: "A1", Price: decimal.NewFromInt(10), Stock: 5},
		models.Product{Code: "B2", Price: decimal.NewFromInt(10), Stock: 5},
	)

	require.NoError(t, f.service.AddLine("A1", 5))
	// A1 is fully reserved now; B2 is untouched.
	assert.Equal(t, 0, stockOf(t, f, "A1"))
	require.NoError(t, f.service.AddLine("B2", 5))
}

func TestCommitValidation(t *testing.T) {
	f := newOrderFixture(t, models.Product{Code: "A1", Price: decimal.NewFromInt(10), Stock: 5})
	require.NoError(t, f.service.AddLine("A1", 1))

	_, err := f.service.Commit("", "Alice")
	assert.ErrorIs(t, err, ErrMissingParticipant)
	_, err = f.service.Commit("Acme", "")
	assert.ErrorIs(t, err, ErrMissingParticipant)

	// The failed commits left the order intact.
	assert.Len(t, f.service.Current().Lines, 1)
}

func TestCommitSequentialIDs(t *testing.T) {
	f := newOrderFixture(t, models.Product{Code: "A1", Name: "Lamp", Price: decimal.NewFromInt(100), Stock: 10})

	require.NoError(t, f.service.AddLine("A1", 2))
	rec1, err := f.service.Commit("Acme", "Alice")
	require.NoError(t, err)
	assert.Equal(t, 1, rec1.ID)
	assert.Equal(t, "2026-09-01", rec1.Date)
	assert.Equal(t, "10:30:00", rec1.Time)
	assert.Empty(t, f.service.Current().Lines)

	require.NoError(t, f.service.AddLine("A1", 3))
	rec2, err := f.service.Commit("Acme", "Bob")
	require.NoError(t, err)
	assert.Equal(t, 2, rec2.ID)

	records, err := f.ledger.GetAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, 1, records[0].ID)
	assert.Equal(t, 2, records[1].ID)
}

func TestCommitPersistsDecrementedCatalog(t *testing.T) {
	f := newOrderFixture(t, models.Product{Code: "A1", Name: "Lamp", Price: decimal.NewFromInt(100), Stock: 5})

	require.NoError(t, f.service.AddLine("A1", 2))
	_, err := f.service.Commit("Acme", "Alice")
	require.NoError(t, err)

	// A fresh load from the workbook sees the decrement.
	require.NoError(t, f.catalog.Load())
	assert.Equal(t, 3, stockOf(t, f, "A1"))
}

func TestCommitLedgerFailureKeepsOrder(t *testing.T) {
	f := newOrderFixture(t, models.Product{Code: "A1", Price: decimal.NewFromInt(10), Stock: 5})

	// Point the service at an unwritable order log: the path is a directory.
	dir := t.TempDir()
	badLedger := repositories.NewLedgerRepository(dir, testLogger())
	f.service = NewOrderService(f.catalog, badLedger, testLogger()).WithClock(fixedClock())

	require.NoError(t, f.service.AddLine("A1", 2))
	_, err := f.service.Commit("Acme", "Alice")
	require.ErrorIs(t, err, ErrPersistence)
	assert.NotErrorIs(t, err, ErrPartialCommit)

	// Retry is possible: the order is still there.
	assert.Len(t, f.service.Current().Lines, 1)
}

func TestCommitCatalogFailureIsPartial(t *testing.T) {
	dir := t.TempDir()
	// Catalog workbook path inside a directory that does not exist: the
	// ledger append succeeds, the catalog save cannot.
	catalog := repositories.NewCatalogRepository(
		filepath.Join(dir, "missing", "catalog.xlsx"), normalizer.DefaultCatalogSchema(), testLogger())
	catalog.ReplaceAll([]models.Product{{Code: "A1", Price: decimal.NewFromInt(10), Stock: 5}})
	ledger := repositories.NewLedgerRepository(filepath.Join(dir, "orders.csv"), testLogger())
	svc := NewOrderService(catalog, ledger, testLogger()).WithClock(fixedClock())

	require.NoError(t, svc.AddLine("A1", 2))
	_, err := svc.Commit("Acme", "Alice")
	require.ErrorIs(t, err, ErrPartialCommit)
	// Partial commits also match the generic persistence failure.
	assert.ErrorIs(t, err, ErrPersistence)

	// The ledger row was written; the order is kept for the operator.
	records, readErr := ledger.GetAll()
	require.NoError(t, readErr)
	assert.Len(t, records, 1)
	assert.Len(t, svc.Current().Lines, 1)
}

func TestTotalsRecomputedNotCached(t *testing.T) {
	f := newOrderFixture(t,
		models.Product{Code: "A1", Price: decimal.RequireFromString("10.50"), Stock: 10},
		models.Product{Code: "B2", Price: decimal.NewFromInt(3), Stock: 10},
	)

	require.NoError(t, f.service.AddLine("A1", 2)) // 21.00
	require.NoError(t, f.service.AddLine("B2", 4)) // 12.00
	assert.True(t, f.service.Current().Total().Equal(decimal.RequireFromString("33.00")))

	require.NoError(t, f.service.RemoveLine(1))
	assert.True(t, f.service.Current().Total().Equal(decimal.RequireFromString("21.00")))
	assert.Equal(t, 2, f.service.Current().ItemCount())
}
