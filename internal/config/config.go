// Package config loads client configuration from the environment and
// manages the persisted credentials file.
package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration values.
type Config struct {
	// Backend endpoint
	APIURL  string
	Timeout time.Duration

	// Logging
	LogFile  string
	LogLevel slog.Level

	// Persisted session
	CredentialsPath string
}

// Load reads configuration from a .env file (when present) and the
// environment.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		APIURL:  getEnv("DATABOT_API_URL", "http://localhost:3000/api"),
		Timeout: parseDuration(getEnv("DATABOT_CLIENT_TIMEOUT", "2m")),

		LogFile:  getEnv("DATABOT_LOG_FILE", filepath.Join(os.TempDir(), "databot.log")),
		LogLevel: parseLogLevel(getEnv("DATABOT_LOG_LEVEL", "INFO")),

		CredentialsPath: getEnv("DATABOT_CREDENTIALS", defaultCredentialsPath()),
	}
}

func defaultCredentialsPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "databot", "credentials.yaml")
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func parseDuration(s string) time.Duration {
	if d, err := time.ParseDuration(s); err == nil {
		return d
	}
	return 2 * time.Minute
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToUpper(s) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
