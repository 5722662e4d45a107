package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the whole application configuration. It is created once at
// session start and passed down explicitly; there is no global state.
type Config struct {
	Database  DatabaseConfig
	Dify      DifyConfig
	WordPress WordPressConfig
	HTTP      HTTPConfig
}

// DatabaseConfig is the task store connection configuration.
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// DifyConfig configures the remote workflow service. Each pipeline stage runs
// against its own workflow, identified by a per-stage API key.
type DifyConfig struct {
	BaseURL        string
	APIKeyResearch string
	APIKeyHeaders  string
	APIKeyRAG      string
	APIKeyBrief    string
	APIKeyWrite    string
}

// WordPressConfig is the default publishing target. Per-session overrides from
// the CLI or the HTTP API take precedence and are never persisted.
type WordPressConfig struct {
	Domain      string
	Username    string
	AppPassword string
}

// HTTPConfig configures the table-UI API server.
type HTTPConfig struct {
	Port        int
	AppPassword string
}

// Load reads configuration from the environment, optionally seeded from a
// .env file. A missing .env file is not an error; the process environment
// alone is enough.
func Load(envFilePath string) (*Config, error) {
	if envFilePath != "" {
		if err := godotenv.Load(envFilePath); err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("failed to load .env file: %w", err)
			}
		}
	}

	cfg := &Config{
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvAsInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "contentfactory"),
			Password: getEnv("DB_PASSWORD", ""),
			DBName:   getEnv("DB_NAME", "contentfactory"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Dify: DifyConfig{
			BaseURL:        getEnv("DIFY_BASE_URL", ""),
			APIKeyResearch: getEnv("DIFY_API_KEY_RESEARCH", ""),
			APIKeyHeaders:  getEnv("DIFY_API_KEY_HEADERS", ""),
			APIKeyRAG:      getEnv("DIFY_API_KEY_RAG", ""),
			APIKeyBrief:    getEnv("DIFY_API_KEY_BRIEF", ""),
			APIKeyWrite:    getEnv("DIFY_API_KEY_WRITE", ""),
		},
		WordPress: WordPressConfig{
			Domain:      getEnv("WP_DOMAIN", ""),
			Username:    getEnv("WP_API_USER", ""),
			AppPassword: getEnv("WP_APP_PASSWORD", ""),
		},
		HTTP: HTTPConfig{
			Port:        getEnvAsInt("HTTP_PORT", 8080),
			AppPassword: getEnv("APP_PASSWORD", ""),
		},
	}

	return cfg, nil
}

// getEnv returns an environment variable or the default when unset.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt returns an environment variable parsed as an integer.
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
