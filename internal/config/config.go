package config

import (
	"fmt"
	"os"
	"slices"
	"strings"
	"time"
)

// Config holds all configuration for the service
type Config struct {
	Port               string
	GinMode            string
	RedisURL           string
	AdminAPIKey        string
	TMDBAPIKeys        []string // 支持多个 API Key 轮询
	TMDBBaseURL        string
	TMDBImageBase      string
	DefaultLanguage    string
	SupportedLanguages []string
	RequestTimeout     time.Duration
	CORSOrigins        []string // "*" 表示任意来源
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	return LoadFrom(os.Getenv)
}

// LoadFrom reads configuration through lookup, which returns "" for unset keys.
func LoadFrom(lookup func(string) string) (*Config, error) {
	getEnv := func(key, defaultValue string) string {
		if value := lookup(key); value != "" {
			return value
		}
		return defaultValue
	}

	timeout, err := time.ParseDuration(getEnv("REQUEST_TIMEOUT", "10s"))
	if err != nil {
		return nil, fmt.Errorf("invalid REQUEST_TIMEOUT: %w", err)
	}

	cfg := &Config{
		Port:               getEnv("PORT", "8080"),
		GinMode:            getEnv("GIN_MODE", "debug"),
		RedisURL:           lookup("REDIS_URL"),
		AdminAPIKey:        lookup("ADMIN_API_KEY"),
		TMDBAPIKeys:        splitList(lookup("TMDB_API_KEY")),
		TMDBBaseURL:        strings.TrimRight(getEnv("TMDB_BASE_URL", "https://api.themoviedb.org/3"), "/"),
		TMDBImageBase:      getEnv("TMDB_IMAGE_BASE", "https://image.tmdb.org/t/p/w500"),
		DefaultLanguage:    strings.ToLower(getEnv("DEFAULT_LANGUAGE", "en")),
		SupportedLanguages: splitList(strings.ToLower(getEnv("SUPPORTED_LANGUAGES", "en,es,fr,de"))),
		RequestTimeout:     timeout,
		CORSOrigins:        splitList(getEnv("CORS_ALLOW_ORIGINS", "*")),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	if len(c.SupportedLanguages) == 0 {
		return fmt.Errorf("no supported languages configured")
	}
	if !slices.Contains(c.SupportedLanguages, c.DefaultLanguage) {
		return fmt.Errorf("default language %q is not in supported languages %v", c.DefaultLanguage, c.SupportedLanguages)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request timeout must be positive")
	}
	return nil
}

// 逗号分隔，忽略空项
func splitList(value string) []string {
	items := []string{}
	for _, p := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			items = append(items, trimmed)
		}
	}
	return items
}
