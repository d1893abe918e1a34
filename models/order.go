package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderLine is one line of an in-session order. Name and UnitPrice are
// copied from the catalog at add-time so later catalog edits do not change
// an order already being built.
type OrderLine struct {
	Code      string          `json:"code"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// LineTotal is Quantity × UnitPrice, computed on demand.
func (l OrderLine) LineTotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Order is the transient per-session order. It exists only in memory until
// a successful commit appends it to the order log.
type Order struct {
	Client      string      `json:"client"`
	Salesperson string      `json:"salesperson"`
	Lines       []OrderLine `json:"lines"`
	CreatedAt   time.Time   `json:"created_at,omitempty"`
}

// Total sums every line total. Recomputed on every call; nothing is cached,
// so add/remove sequences cannot drift.
func (o Order) Total() decimal.Decimal {
	total := decimal.Zero
	for _, l := range o.Lines {
		total = total.Add(l.LineTotal())
	}
	return total
}

// ItemCount sums the quantities across all lines.
func (o Order) ItemCount() int {
	count := 0
	for _, l := range o.Lines {
		count += l.Quantity
	}
	return count
}
