package main

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/VASCOSORO/soopbeta/internal/handler"
	"github.com/VASCOSORO/soopbeta/internal/normalizer"
	"github.com/VASCOSORO/soopbeta/internal/repositories"
	"github.com/VASCOSORO/soopbeta/internal/router"
	"github.com/VASCOSORO/soopbeta/internal/service"
	"github.com/VASCOSORO/soopbeta/internal/store"
	"github.com/VASCOSORO/soopbeta/pkg/envconfig"
	"github.com/VASCOSORO/soopbeta/pkg/flags"
	"github.com/VASCOSORO/soopbeta/pkg/logger"
	"github.com/VASCOSORO/soopbeta/pkg/shutdownsetup"
)

func main() {
	// Parse command-line flags
	flagConfig := flags.Parse()

	if err := flagConfig.Validate(); err != nil {
		fmt.Printf("Configuration error: %v\n", err)
		return
	}

	envErr := envconfig.LoadEnvFile(".env")

	loggerConfig := logger.Config{
		Level:        envconfig.GetLogLevel(),
		Format:       envconfig.GetEnv("LOG_FORMAT", "json"),
		Output:       envconfig.GetEnv("LOG_OUTPUT", "stdout"),
		EnableCaller: envconfig.GetEnv("LOG_ENABLE_CALLER", "true") == "true",
		Environment:  envconfig.GetEnv("ENVIRONMENT", "development"),
	}

	appLogger := logger.New(loggerConfig)

	if envErr != nil {
		appLogger.Warn("Failed to load .env file", "error", envErr)
	} else {
		appLogger.Debug(".env file loaded successfully")
	}

	appLogger.Info("Starting SoopBeta back office",
		"environment", loggerConfig.Environment,
		"log_level", loggerConfig.Level)

	storeConfig := envconfig.LoadStoreConfig()
	if flagConfig.DataDir != "" {
		storeConfig.DataDir = flagConfig.DataDir
	}

	// Open the file-backed data directory
	dataStore, err := store.Open(storeConfig, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to open data directory", "error", err)
	}
	if err := dataStore.HealthCheck(); err != nil {
		appLogger.Fatal("Data directory health check failed", "error", err)
	}
	appLogger.Info("Data directory health check passed")

	// Resolve the normalization schema: built-in catalog schema unless a
	// schema file is configured.
	schema := normalizer.DefaultCatalogSchema()
	if path := dataStore.SchemaPath(); path != "" {
		loaded, err := normalizer.LoadSchema(path)
		if err != nil {
			appLogger.Fatal("Failed to load normalization schema", "path", path, "error", err)
		}
		if err := repositories.ValidateCatalogSchema(loaded); err != nil {
			appLogger.Fatal("Normalization schema cannot back the catalog", "path", path, "error", err)
		}
		schema = loaded
		appLogger.Info("Normalization schema loaded", "path", path)
	}

	// Initialize repositories with logger and backing files
	catalogRepo := repositories.NewCatalogRepository(dataStore.CatalogPath(), schema, appLogger)
	clientRepo := repositories.NewClientRepository(dataStore.ClientsPath(), appLogger)
	ledgerRepo := repositories.NewLedgerRepository(dataStore.OrderLogPath(), appLogger)

	if err := catalogRepo.Load(); err != nil {
		appLogger.Fatal("Failed to load catalog", "error", err)
	}
	if err := clientRepo.Load(); err != nil {
		appLogger.Fatal("Failed to load clients", "error", err)
	}

	// Initialize services with logger
	orderService := service.NewOrderService(catalogRepo, ledgerRepo, appLogger)
	catalogService := service.NewCatalogService(catalogRepo, schema, appLogger)
	convertService := service.NewConvertService(appLogger)
	dashboardService := service.NewDashboardService(clientRepo, ledgerRepo, appLogger)

	// Initialize handlers with logger
	orderHandler := handler.NewOrderHandler(orderService, appLogger)
	catalogHandler := handler.NewCatalogHandler(catalogService, appLogger)
	convertHandler := handler.NewConvertHandler(convertService, appLogger)
	dashboardHandler := handler.NewDashboardHandler(dashboardService, appLogger)

	mux := router.New(orderHandler, catalogHandler, convertHandler, dashboardHandler)

	httpHandler := appLogger.HTTPMiddleware(mux)

	initialPort := flagConfig.Port
	if initialPort == "" {
		initialPort = envconfig.GetEnv("PORT", "8080")
	}
	host := envconfig.GetEnv("HOST", "localhost")

	port := initialPort

	server := &http.Server{
		Handler:      httpHandler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErrors := make(chan error, 1)

	maxRetries := 3
	for i := 0; i < maxRetries; i++ {
		server.Addr = host + ":" + port

		go func() {
			appLogger.Info("Starting HTTP server",
				"host", host,
				"port", port,
				"address", server.Addr)

			if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				appLogger.Error("Server error", "error", err)
				serverErrors <- err
			}
		}()

		select {
		case err := <-serverErrors:
			if strings.Contains(err.Error(), "address already in use") && i < maxRetries-1 {
				portNum := 8080 + i + 1
				port = fmt.Sprintf("%d", portNum)
				appLogger.Warn("Port already in use, trying alternative port",
					"current_port", server.Addr,
					"next_port", port)
				continue
			} else {
				appLogger.Error("Failed to start server after retries", "error", err)
				return
			}
		case <-time.After(200 * time.Millisecond):
			appLogger.Info("Server started successfully", "port", port)
		}

		break
	}

	select {
	case err := <-serverErrors:
		appLogger.Error("Could not start server", "error", err)
		return
	default:
		shutdownsetup.SetupGracefulShutdown(server, appLogger)
	}
}
