// Package envconfig centralizes environment-based configuration. The .env
// file itself is parsed by godotenv; this package only provides typed
// getters on top of the process environment.
package envconfig

import (
	"os"
	"strings"

	"github.com/VASCOSORO/soopbeta/pkg/logger"
	"github.com/joho/godotenv"
)

// LoadEnvFile loads the given .env file into the process environment.
// Variables already set in the environment win over file values.
func LoadEnvFile(path string) error {
	return godotenv.Load(path)
}

// GetEnv returns the environment variable or the fallback when unset or
// empty.
func GetEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// GetLogLevel reads LOG_LEVEL and maps it onto a logger level, defaulting
// to info.
func GetLogLevel() logger.LogLevel {
	switch strings.ToLower(GetEnv("LOG_LEVEL", "info")) {
	case "debug":
		return logger.LevelDebug
	case "warn", "warning":
		return logger.LevelWarn
	case "error":
		return logger.LevelError
	default:
		return logger.LevelInfo
	}
}
