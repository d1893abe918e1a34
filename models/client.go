package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Client store column names.
const (
	ColClientName  = "Name"
	ColDiscount    = "Discount"
	ColSalespeople = "Salespeople"
	ColPhone       = "Phone"
	ColAddress     = "Address"
)

// Client is one row of the read-only client store.
type Client struct {
	Name        string          `json:"name"`
	Discount    decimal.Decimal `json:"discount"`
	Salespeople []string        `json:"salespeople"`
	Phone       string          `json:"phone,omitempty"`
	Address     string          `json:"address,omitempty"`
}

// ClientFromRow builds a typed client from a store row. The Salespeople
// column is a comma-separated list; empty entries are dropped.
func ClientFromRow(row map[string]string) Client {
	var people []string
	for _, s := range strings.Split(row[ColSalespeople], ",") {
		if s = strings.TrimSpace(s); s != "" {
			people = append(people, s)
		}
	}
	return Client{
		Name:        strings.TrimSpace(row[ColClientName]),
		Discount:    ParsePrice(row[ColDiscount]),
		Salespeople: people,
		Phone:       strings.TrimSpace(row[ColPhone]),
		Address:     strings.TrimSpace(row[ColAddress]),
	}
}

// DefaultSalesperson returns the first configured salesperson, or "" when
// the client has none assigned.
func (c Client) DefaultSalesperson() string {
	if len(c.Salespeople) == 0 {
		return ""
	}
	return c.Salespeople[0]
}
