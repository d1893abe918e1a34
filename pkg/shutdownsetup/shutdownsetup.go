// Package shutdownsetup wires graceful HTTP server shutdown to SIGINT and
// SIGTERM.
package shutdownsetup

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/VASCOSORO/soopbeta/pkg/logger"
)

// SetupGracefulShutdown blocks until a termination signal arrives, then
// shuts the server down with a timeout.
func SetupGracefulShutdown(server *http.Server, appLogger *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	appLogger.Info("Shutdown signal received", "signal", sig.String())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		appLogger.Error("Error during shutdown", "error", err)
		return
	}
	appLogger.Info("Server gracefully stopped")
}
