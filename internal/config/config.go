package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port        string
	Environment string
	CORSOrigins string
	// Upstream Mamaty API
	UpstreamBaseURL string
	UpstreamTimeout time.Duration
	// View preferences storage
	PreferencesStore string // "memory", "postgres" or "sqlite"
	DatabaseURL      string
	SQLitePath       string
	TablePrefix      string
	// Operator workspaces
	WorkspaceIdleTimeout time.Duration
	WorkspaceSweepEvery  time.Duration
	// Logging
	LogDir      string
	LogMaxFiles int
	// Debug flags
	Debug bool // Enables debug logging of derived views
}

func Load() *Config {
	env := getEnv("ENVIRONMENT", "dev")

	return &Config{
		Port:             getEnv("PORT", "8080"),
		Environment:      env,
		CORSOrigins:      getEnv("CORS_ORIGINS", "http://localhost:3000"),
		UpstreamBaseURL:  getEnv("UPSTREAM_BASE_URL", "http://localhost:5000"),
		UpstreamTimeout:  getDuration("UPSTREAM_TIMEOUT", 30*time.Second),
		PreferencesStore: getEnv("PREFERENCES_STORE", "memory"),
		DatabaseURL:      getEnv("DATABASE_URL", ""),
		SQLitePath:       getEnv("SQLITE_PATH", "data/console.db"),
		TablePrefix:      getTablePrefix(env),
		// Workspaces idle longer than this are dropped and reloaded on next use
		WorkspaceIdleTimeout: getDuration("WORKSPACE_IDLE_TIMEOUT", 30*time.Minute),
		WorkspaceSweepEvery:  getDuration("WORKSPACE_SWEEP_INTERVAL", 5*time.Minute),
		LogDir:               getEnv("LOG_DIR", ""),
		LogMaxFiles:          getInt("LOG_MAX_FILES", 10),
		// Debug flags - default to true in dev/test, false in production
		Debug: getEnv("DEBUG", getDefaultDebug(env)) == "true",
	}
}

// getDefaultDebug returns the default debug setting based on environment
func getDefaultDebug(env string) string {
	if env == "prod" {
		return "false"
	}
	return "true"
}

// getTablePrefix returns the table prefix based on environment
func getTablePrefix(env string) string {
	// Allow manual override via TABLE_PREFIX env var
	if prefix := os.Getenv("TABLE_PREFIX"); prefix != "" {
		return prefix
	}

	switch env {
	case "prod":
		return "prod_"
	case "test":
		return "test_"
	default:
		return "dev_"
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getInt(key string, defaultValue int) int {
	n, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return n
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	d, err := time.ParseDuration(os.Getenv(key))
	if err != nil || d <= 0 {
		return defaultValue
	}
	return d
}
