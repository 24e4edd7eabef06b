package config

import (
	"os"
	"strconv"
)

type Config struct {
	Port string

	GeminiAPIKey string
	ModelName    string
	UseMockLLM   bool

	StorageBackend string // "memory" or "sqlite"
	SQLitePath     string

	// MaxHistoryTurns caps stored conversation length per session.
	// 0 keeps every turn.
	MaxHistoryTurns int
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getBoolEnv(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v == "1" || v == "true" || v == "TRUE"
}

func getIntEnv(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

// Load reads all env vars and builds the config.
func Load() *Config {
	return &Config{
		Port: getEnv("NUTRIPLAN_PORT", "8080"),

		GeminiAPIKey: getEnv("GEMINI_API_KEY", ""),
		ModelName:    getEnv("NUTRIPLAN_MODEL_NAME", "gemini-3-pro-preview"),
		UseMockLLM:   getBoolEnv("NUTRIPLAN_USE_MOCK_LLM", false),

		StorageBackend: getEnv("NUTRIPLAN_STORAGE_BACKEND", "memory"),
		SQLitePath:     getEnv("NUTRIPLAN_SQLITE_PATH", "nutriplan.db"),

		MaxHistoryTurns: getIntEnv("NUTRIPLAN_MAX_HISTORY_TURNS", 0),
	}
}
