package envconfig

import "github.com/VASCOSORO/soopbeta/internal/store"

// LoadStoreConfig loads the data-directory configuration from environment
// variables, falling back to the store defaults.
func LoadStoreConfig() store.Config {
	config := store.DefaultConfig()

	if dir := GetEnv("DATA_DIR", ""); dir != "" {
		config.DataDir = dir
	}
	if name := GetEnv("CATALOG_FILE", ""); name != "" {
		config.CatalogFile = name
	}
	if name := GetEnv("CLIENTS_FILE", ""); name != "" {
		config.ClientsFile = name
	}
	if name := GetEnv("ORDER_LOG_FILE", ""); name != "" {
		config.OrderLogFile = name
	}
	if name := GetEnv("SCHEMA_FILE", ""); name != "" {
		config.SchemaFile = name
	}

	return config
}
