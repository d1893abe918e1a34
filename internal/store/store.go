// Package store bootstraps the file-backed data directory: the catalog and
// client workbooks and the append-only order log live under one directory,
// validated once at startup.
package store

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/VASCOSORO/soopbeta/pkg/logger"
)

// Default file names inside the data directory.
const (
	DefaultDataDir      = "data"
	DefaultCatalogFile  = "catalog.xlsx"
	DefaultClientsFile  = "clients.xlsx"
	DefaultOrderLogFile = "orders.csv"
)

// Config locates the backing files. File names are joined onto DataDir
// unless given as absolute paths.
type Config struct {
	DataDir      string
	CatalogFile  string
	ClientsFile  string
	OrderLogFile string
	SchemaFile   string // optional normalization schema YAML
}

// DefaultConfig returns a store configuration with sensible defaults
func DefaultConfig() Config {
	return Config{
		DataDir:      DefaultDataDir,
		CatalogFile:  DefaultCatalogFile,
		ClientsFile:  DefaultClientsFile,
		OrderLogFile: DefaultOrderLogFile,
	}
}

// Store is the opened data directory.
type Store struct {
	config Config
	logger *logger.Logger
}

// Open creates the data directory when missing and returns the store.
func Open(config Config, appLogger *logger.Logger) (*Store, error) {
	if config.DataDir == "" {
		config.DataDir = DefaultDataDir
	}
	if config.CatalogFile == "" {
		config.CatalogFile = DefaultCatalogFile
	}
	if config.ClientsFile == "" {
		config.ClientsFile = DefaultClientsFile
	}
	if config.OrderLogFile == "" {
		config.OrderLogFile = DefaultOrderLogFile
	}

	if err := os.MkdirAll(config.DataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data directory %s: %w", config.DataDir, err)
	}

	s := &Store{
		config: config,
		logger: appLogger.WithComponent("store"),
	}
	s.logger.Info("Data directory opened",
		"dir", config.DataDir,
		"catalog", s.CatalogPath(),
		"clients", s.ClientsPath(),
		"order_log", s.OrderLogPath())
	return s, nil
}

// HealthCheck verifies the data directory is writable.
func (s *Store) HealthCheck() error {
	probe := filepath.Join(s.config.DataDir, ".probe")
	f, err := os.Create(probe)
	if err != nil {
		return fmt.Errorf("data directory %s is not writable: %w", s.config.DataDir, err)
	}
	f.Close()
	if err := os.Remove(probe); err != nil {
		return fmt.Errorf("cleanup health probe: %w", err)
	}
	return nil
}

// CatalogPath returns the catalog workbook path.
func (s *Store) CatalogPath() string { return s.resolve(s.config.CatalogFile) }

// ClientsPath returns the client workbook path.
func (s *Store) ClientsPath() string { return s.resolve(s.config.ClientsFile) }

// OrderLogPath returns the order log path.
func (s *Store) OrderLogPath() string { return s.resolve(s.config.OrderLogFile) }

// SchemaPath returns the schema file path, or "" when none is configured.
func (s *Store) SchemaPath() string {
	if s.config.SchemaFile == "" {
		return ""
	}
	return s.resolve(s.config.SchemaFile)
}

func (s *Store) resolve(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(s.config.DataDir, name)
}
