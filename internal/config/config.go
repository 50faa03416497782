package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"drops-mcp/internal/dataset"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// AppConfig holds the complete application configuration.
type AppConfig struct {
	Dataset             dataset.Config
	DataPath            string
	ItemTablePath       string
	LogDir              string
	ReportsDir          string
	EnableMermaidCharts bool
}

// Load loads the configuration from .env files and environment variables.
func Load() (*AppConfig, error) {
	// 1. Executable directory first; MCP hosts rarely start us from a useful cwd
	exeDir := ""
	if exePath, err := os.Executable(); err == nil {
		exeDir = filepath.Dir(exePath)
		envPath := filepath.Join(exeDir, ".env")
		if err := godotenv.Load(envPath); err == nil {
			log.Debug().Str("path", envPath).Msg("Loaded configuration from binary directory")
		}
	}

	// 2. Working directory (godotenv never overrides already set keys)
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found in working directory, relying on environment variables or binary-relative .env")
	}

	return fromEnv(exeDir), nil
}

func fromEnv(exeDir string) *AppConfig {
	base := exeDir
	if base == "" {
		base = "."
	}

	dataPath := getEnv("DATA_PATH", base)
	reportsDir := getEnv("REPORTS_DIR", filepath.Join(dataPath, "reports"))
	logDir := getEnv("LOGS_FOLDER", filepath.Join(base, "logs"))

	interval := max(getEnvInt("REQUEST_INTERVAL_MS", 200), 0)
	cacheTTL := max(getEnvInt("CACHE_TTL_SECONDS", 60), 0)

	return &AppConfig{
		Dataset: dataset.Config{
			BaseURL:         getEnv("DATA_URL", ""),
			Dir:             dataPath,
			RequestInterval: time.Duration(interval) * time.Millisecond,
			Concurrency:     getEnvInt("FETCH_CONCURRENCY", dataset.DefaultConcurrency),
			CacheTTL:        time.Duration(cacheTTL) * time.Second,
		},
		DataPath:            dataPath,
		ItemTablePath:       getEnv("ITEM_TABLE_PATH", ""),
		LogDir:              logDir,
		ReportsDir:          reportsDir,
		EnableMermaidCharts: getEnvBool("ENABLE_MERMAID_CHARTS", false),
	}
}

// EnsureReportsDir creates the reports directory on first use.
func (c *AppConfig) EnsureReportsDir() error {
	return os.MkdirAll(c.ReportsDir, 0755)
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
		log.Warn().Str("key", key).Str("value", value).Msg("Ignoring non-integer setting")
	}
	return fallback
}
