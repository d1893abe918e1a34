package service

import (
	"fmt"
	"time"

	"github.com/VASCOSORO/soopbeta/internal/repositories"
	"github.com/VASCOSORO/soopbeta/models"
	"github.com/VASCOSORO/soopbeta/pkg/logger"
)

// OrderServiceInterface drives one point-of-sale session: build an order
// line by line, then commit it to the order log and persist the decremented
// catalog.
type OrderServiceInterface interface {
	AddLine(code string, quantity int) error
	RemoveLine(index int) error
	Discard()
	Current() models.Order
	Commit(client, salesperson string) (*models.LedgerRecord, error)
}

// OrderService owns exactly one active session, matching the single-writer
// model of the backing files.
type OrderService struct {
	session *OrderSession
	catalog repositories.CatalogRepositoryInterface
	ledger  repositories.LedgerRepositoryInterface
	logger  *logger.Logger
	now     func() time.Time
}

// NewOrderService creates an order service with an empty session. The clock
// defaults to time.Now; tests inject their own.
func NewOrderService(catalog repositories.CatalogRepositoryInterface, ledger repositories.LedgerRepositoryInterface, logger *logger.Logger) *OrderService {
	return &OrderService{
		session: NewOrderSession(catalog),
		catalog: catalog,
		ledger:  ledger,
		logger:  logger.WithComponent("order_service"),
		now:     time.Now,
	}
}

// WithClock overrides the commit timestamp source.
func (s *OrderService) WithClock(now func() time.Time) *OrderService {
	s.now = now
	return s
}

// AddLine adds a product to the current order.
func (s *OrderService) AddLine(code string, quantity int) error {
	if err := s.session.AddLine(code, quantity); err != nil {
		s.logger.Warn("Add line rejected", "code", code, "quantity", quantity, "error", err)
		return err
	}
	s.logger.Info("Line added", "code", code, "quantity", quantity, "lines", len(s.session.Lines()))
	return nil
}

// RemoveLine removes a line by index, restoring its stock.
func (s *OrderService) RemoveLine(index int) error {
	if err := s.session.RemoveLine(index); err != nil {
		s.logger.Warn("Remove line rejected", "index", index, "error", err)
		return err
	}
	s.logger.Info("Line removed", "index", index, "lines", len(s.session.Lines()))
	return nil
}

// Discard abandons the current order and releases all reserved stock.
func (s *OrderService) Discard() {
	lines := len(s.session.Lines())
	s.session.Discard()
	s.logger.Info("Order discarded", "lines_released", lines)
}

// Current returns a snapshot of the order being built.
func (s *OrderService) Current() models.Order {
	return models.Order{Lines: s.session.Lines()}
}

// Commit appends the order to the log, persists the catalog with its
// decremented stock, and clears the session.
//
// The two writes are not atomic. A log failure returns ErrPersistence with
// nothing written. A catalog failure after a successful append returns
// ErrPartialCommit (which also matches ErrPersistence) so the caller can
// tell the stores are now inconsistent. In both cases the in-memory order
// is kept so the operator may retry; retrying after ErrPartialCommit will
// append a second log row.
func (s *OrderService) Commit(client, salesperson string) (*models.LedgerRecord, error) {
	lines := s.session.Lines()
	if len(lines) == 0 {
		return nil, ErrEmptyOrder
	}
	if client == "" || salesperson == "" {
		return nil, ErrMissingParticipant
	}

	now := s.now()
	rec := &models.LedgerRecord{
		ID:          s.ledger.NextID(),
		Client:      client,
		Salesperson: salesperson,
		Date:        now.Format("2006-01-02"),
		Time:        now.Format("15:04:05"),
		Items:       append([]models.OrderLine(nil), lines...),
	}

	if err := s.ledger.Append(rec); err != nil {
		s.logger.Error("Commit failed appending to order log", "order_id", rec.ID, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if err := s.catalog.Save(); err != nil {
		s.logger.Error("Commit logged the order but catalog save failed",
			"order_id", rec.ID, "error", err)
		return nil, &partialCommitError{cause: err}
	}

	s.session.clear()
	s.logger.Info("Order committed",
		"order_id", rec.ID,
		"client", client,
		"salesperson", salesperson,
		"items", rec.Items)
	return rec, nil
}
