package repositories

import (
	"errors"
	"fmt"
	"os"

	"github.com/VASCOSORO/soopbeta/internal/tabular"
	"github.com/VASCOSORO/soopbeta/models"
	"github.com/VASCOSORO/soopbeta/pkg/logger"
)

// ClientSheet is the worksheet name of the client workbook.
const ClientSheet = "Clients"

// ClientRepositoryInterface is the read-only client store.
type ClientRepositoryInterface interface {
	Load() error
	GetAll() []models.Client
	GetByName(name string) (models.Client, bool)
}

// ClientRepository implements ClientRepositoryInterface over one workbook.
// Nothing in the system ever writes it back.
type ClientRepository struct {
	path    string
	clients []models.Client
	index   map[string]int
	logger  *logger.Logger
}

// NewClientRepository creates a client repository backed by the workbook at
// path.
func NewClientRepository(path string, logger *logger.Logger) *ClientRepository {
	return &ClientRepository{
		path:   path,
		index:  make(map[string]int),
		logger: logger.WithComponent("client_repository"),
	}
}

// Load reads the whole workbook into memory. A missing workbook leaves the
// store empty; orders can still be committed against clients typed in by
// hand.
func (r *ClientRepository) Load() error {
	if _, err := os.Stat(r.path); errors.Is(err, os.ErrNotExist) {
		r.logger.Warn("Client workbook not found, starting empty", "path", r.path)
		r.clients = nil
		r.index = make(map[string]int)
		return nil
	}

	table, err := tabular.ReadSheet(r.path, ClientSheet)
	if err != nil {
		r.logger.Error("Failed to load client workbook", "path", r.path, "error", err)
		return fmt.Errorf("load clients: %w", err)
	}

	r.clients = make([]models.Client, 0, len(table.Rows))
	r.index = make(map[string]int, len(table.Rows))
	for _, row := range table.Rows {
		c := models.ClientFromRow(row)
		if c.Name == "" {
			continue
		}
		if _, dup := r.index[c.Name]; dup {
			continue
		}
		r.index[c.Name] = len(r.clients)
		r.clients = append(r.clients, c)
	}
	r.logger.Info("Clients loaded", "path", r.path, "clients", len(r.clients))
	return nil
}

// GetAll returns the loaded clients in store order.
func (r *ClientRepository) GetAll() []models.Client {
	return r.clients
}

// GetByName looks a client up by exact name.
func (r *ClientRepository) GetByName(name string) (models.Client, bool) {
	i, ok := r.index[name]
	if !ok {
		return models.Client{}, false
	}
	return r.clients[i], true
}
