package service

import (
	"fmt"

	"github.com/VASCOSORO/soopbeta/internal/repositories"
	"github.com/VASCOSORO/soopbeta/models"
	"github.com/shopspring/decimal"
)

// OrderSession is one in-memory order being built against the catalog.
// Stock is reserved synchronously: AddLine decrements the catalog row
// immediately, and RemoveLine/Discard restore it, so a later AddLine in the
// same session already sees the reduced stock. An abandoned session keeps
// its reservation until Discard is called.
//
// The session is owned by whoever constructs it and carries no hidden
// global state. It is not safe for concurrent use; the system assumes a
// single active writer.
type OrderSession struct {
	catalog repositories.CatalogRepositoryInterface
	lines   []models.OrderLine
}

// NewOrderSession creates an empty session over the given catalog.
func NewOrderSession(catalog repositories.CatalogRepositoryInterface) *OrderSession {
	return &OrderSession{catalog: catalog}
}

// AddLine validates and appends one line, decrementing catalog stock.
//
// Quantity rules: it must be positive; when the product has a forced
// multiple it must be an exact multiple of it, and the stock ceiling is not
// checked, so forced-multiple products may drive stock negative. Products
// without a forced multiple cannot exceed available stock.
func (s *OrderSession) AddLine(code string, quantity int) error {
	product, ok := s.catalog.GetByCode(code)
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, code)
	}
	for _, l := range s.lines {
		if l.Code == code {
			return fmt.Errorf("%w: %s", ErrDuplicate, code)
		}
	}
	if quantity <= 0 {
		return fmt.Errorf("%w: quantity must be positive, got %d", ErrInvalidQuantity, quantity)
	}
	if product.ForcedMultiple > 0 {
		if quantity%product.ForcedMultiple != 0 {
			return fmt.Errorf("%w: %s sells in multiples of %d, got %d",
				ErrInvalidQuantity, code, product.ForcedMultiple, quantity)
		}
	} else if quantity > product.Stock {
		return fmt.Errorf("%w: %s has %d in stock, requested %d",
			ErrInvalidQuantity, code, product.Stock, quantity)
	}

	product.Stock -= quantity
	s.lines = append(s.lines, models.OrderLine{
		Code:      product.Code,
		Name:      product.Name,
		Quantity:  quantity,
		UnitPrice: product.Price,
	})
	return nil
}

// RemoveLine removes the line at index and restores its quantity to the
// catalog row, the exact inverse of AddLine's decrement.
func (s *OrderSession) RemoveLine(index int) error {
	if index < 0 || index >= len(s.lines) {
		return fmt.Errorf("%w: %d", ErrOutOfRange, index)
	}
	line := s.lines[index]
	if product, ok := s.catalog.GetByCode(line.Code); ok {
		product.Stock += line.Quantity
	}
	s.lines = append(s.lines[:index], s.lines[index+1:]...)
	return nil
}

// Discard drops every remaining line, restoring all reserved stock. The
// catalog file itself is untouched; reservations only ever existed in
// memory.
func (s *OrderSession) Discard() {
	for i := len(s.lines) - 1; i >= 0; i-- {
		_ = s.RemoveLine(i)
	}
}

// Lines returns the current lines in add order.
func (s *OrderSession) Lines() []models.OrderLine {
	return s.lines
}

// Total sums LineTotal over the current lines, recomputed on demand.
func (s *OrderSession) Total() decimal.Decimal {
	return models.Order{Lines: s.lines}.Total()
}

// ItemCount sums the quantities of the current lines.
func (s *OrderSession) ItemCount() int {
	return models.Order{Lines: s.lines}.ItemCount()
}

// clear empties the session without touching stock. Only commit uses it,
// after the decremented catalog has been persisted.
func (s *OrderSession) clear() {
	s.lines = nil
}
