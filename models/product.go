package models

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Catalog column names. The normalizer guarantees imported catalog tables
// carry exactly these columns, in this order.
const (
	ColCode           = "Code"
	ColName           = "Name"
	ColPrice          = "Price"
	ColStock          = "Stock"
	ColForcedMultiple = "ForcedMultiple"
	ColImageRef       = "ImageRef"
)

// Product is one catalog row after normalization. Stock is the only field
// mutated in place: order sessions decrement it at add-time and restore it
// on remove or discard. It may transiently go negative when a
// forced-multiple product is oversold.
type Product struct {
	Code           string          `json:"code"`
	Name           string          `json:"name"`
	Price          decimal.Decimal `json:"price"`
	Stock          int             `json:"stock"`
	ForcedMultiple int             `json:"forced_multiple,omitempty"`
	ImageRef       string          `json:"image_ref,omitempty"`
}

// ProductFromRow builds a typed product from a normalized table row.
// Numeric coercion happens here, not in the normalizer: unparsable price or
// stock values become 0 rather than failing the load.
func ProductFromRow(row map[string]string) Product {
	return Product{
		Code:           strings.TrimSpace(row[ColCode]),
		Name:           strings.TrimSpace(row[ColName]),
		Price:          ParsePrice(row[ColPrice]),
		Stock:          parseInt(row[ColStock]),
		ForcedMultiple: parseInt(row[ColForcedMultiple]),
		ImageRef:       strings.TrimSpace(row[ColImageRef]),
	}
}

// ToRow converts the product back into a table row for wholesale saves.
func (p Product) ToRow() map[string]string {
	row := map[string]string{
		ColCode:     p.Code,
		ColName:     p.Name,
		ColPrice:    p.Price.String(),
		ColStock:    strconv.Itoa(p.Stock),
		ColImageRef: p.ImageRef,
	}
	if p.ForcedMultiple > 0 {
		row[ColForcedMultiple] = strconv.Itoa(p.ForcedMultiple)
	} else {
		row[ColForcedMultiple] = ""
	}
	return row
}

// ParsePrice parses a money value leniently. Source files use either a
// plain decimal point or a comma decimal separator; anything unparsable
// yields zero.
func ParsePrice(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero
	}
	if d, err := decimal.NewFromString(s); err == nil {
		return d
	}
	// Retry with a comma decimal separator (legacy exports).
	if d, err := decimal.NewFromString(strings.Replace(s, ",", ".", 1)); err == nil {
		return d
	}
	return decimal.Zero
}

func parseInt(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	// Tolerate values that came through a float-typed spreadsheet cell.
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return int(f)
	}
	return 0
}
