package service

import (
	"fmt"
	"sort"

	"github.com/VASCOSORO/soopbeta/internal/repositories"
	"github.com/VASCOSORO/soopbeta/models"
	"github.com/VASCOSORO/soopbeta/pkg/logger"
	"github.com/shopspring/decimal"
)

// ClientSummary aggregates the committed orders of one client.
type ClientSummary struct {
	Client             string          `json:"client"`
	Discount           decimal.Decimal `json:"discount"`
	DefaultSalesperson string          `json:"default_salesperson,omitempty"`
	Phone              string          `json:"phone,omitempty"`
	Orders             int             `json:"orders"`
	Items              int             `json:"items"`
	Revenue            decimal.Decimal `json:"revenue"`
}

// SalespersonSummary aggregates the committed orders of one salesperson.
type SalespersonSummary struct {
	Salesperson string          `json:"salesperson"`
	Orders      int             `json:"orders"`
	Items       int             `json:"items"`
	Revenue     decimal.Decimal `json:"revenue"`
}

// DashboardServiceInterface serves the client/sales dashboard: the client
// list and per-client / per-salesperson sales totals read from the order
// log.
type DashboardServiceInterface interface {
	Clients() []models.Client
	ClientSummaries() ([]ClientSummary, error)
	SalespersonSummaries() ([]SalespersonSummary, error)
}

// DashboardService implements DashboardServiceInterface.
type DashboardService struct {
	clients repositories.ClientRepositoryInterface
	ledger  repositories.LedgerRepositoryInterface
	logger  *logger.Logger
}

// NewDashboardService creates a dashboard service.
func NewDashboardService(clients repositories.ClientRepositoryInterface, ledger repositories.LedgerRepositoryInterface, logger *logger.Logger) *DashboardService {
	return &DashboardService{
		clients: clients,
		ledger:  ledger,
		logger:  logger.WithComponent("dashboard_service"),
	}
}

// Clients returns the client store as loaded.
func (s *DashboardService) Clients() []models.Client {
	return s.clients.GetAll()
}

// ClientSummaries returns one summary per known client plus one for every
// client name found in the log that the store does not know, sorted by
// revenue descending then name.
func (s *DashboardService) ClientSummaries() ([]ClientSummary, error) {
	records, err := s.ledger.GetAll()
	if err != nil {
		return nil, fmt.Errorf("read order log: %w", err)
	}

	byName := make(map[string]*ClientSummary)
	var out []ClientSummary
	for _, c := range s.clients.GetAll() {
		byName[c.Name] = &ClientSummary{
			Client:             c.Name,
			Discount:           c.Discount,
			DefaultSalesperson: c.DefaultSalesperson(),
			Phone:              c.Phone,
			Revenue:            decimal.Zero,
		}
	}
	for _, rec := range records {
		sum, ok := byName[rec.Client]
		if !ok {
			sum = &ClientSummary{Client: rec.Client, Revenue: decimal.Zero}
			byName[rec.Client] = sum
		}
		addRecord(&sum.Orders, &sum.Items, &sum.Revenue, rec)
	}
	for _, sum := range byName {
		out = append(out, *sum)
	}
	sortByRevenue(out, func(c ClientSummary) (decimal.Decimal, string) { return c.Revenue, c.Client })
	return out, nil
}

// SalespersonSummaries returns one summary per salesperson appearing in the
// log, sorted by revenue descending then name.
func (s *DashboardService) SalespersonSummaries() ([]SalespersonSummary, error) {
	records, err := s.ledger.GetAll()
	if err != nil {
		return nil, fmt.Errorf("read order log: %w", err)
	}

	byName := make(map[string]*SalespersonSummary)
	for _, rec := range records {
		sum, ok := byName[rec.Salesperson]
		if !ok {
			sum = &SalespersonSummary{Salesperson: rec.Salesperson, Revenue: decimal.Zero}
			byName[rec.Salesperson] = sum
		}
		addRecord(&sum.Orders, &sum.Items, &sum.Revenue, rec)
	}

	out := make([]SalespersonSummary, 0, len(byName))
	for _, sum := range byName {
		out = append(out, *sum)
	}
	sortByRevenue(out, func(s SalespersonSummary) (decimal.Decimal, string) { return s.Revenue, s.Salesperson })
	return out, nil
}

func addRecord(orders, items *int, revenue *decimal.Decimal, rec *models.LedgerRecord) {
	*orders++
	for _, l := range rec.Items {
		*items += l.Quantity
		*revenue = revenue.Add(l.LineTotal())
	}
}

func sortByRevenue[T any](xs []T, key func(T) (decimal.Decimal, string)) {
	sort.Slice(xs, func(i, j int) bool {
		ri, ni := key(xs[i])
		rj, nj := key(xs[j])
		if !ri.Equal(rj) {
			return ri.GreaterThan(rj)
		}
		return ni < nj
	})
}
