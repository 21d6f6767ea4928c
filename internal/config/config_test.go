package config

import (
	"testing"
	"time"
)

func envMap(values map[string]string) func(string) string {
	return func(key string) string { return values[key] }
}

func TestLoadFrom_Defaults(t *testing.T) {
	cfg, err := LoadFrom(envMap(nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("expected port 8080, got %s", cfg.Port)
	}
	if cfg.DefaultLanguage != "en" {
		t.Errorf("expected default language en, got %s", cfg.DefaultLanguage)
	}
	if len(cfg.SupportedLanguages) != 4 {
		t.Errorf("expected 4 supported languages, got %v", cfg.SupportedLanguages)
	}
	if cfg.RequestTimeout != 10*time.Second {
		t.Errorf("expected 10s timeout, got %s", cfg.RequestTimeout)
	}
	if len(cfg.TMDBAPIKeys) != 0 {
		t.Errorf("expected no TMDB keys, got %v", cfg.TMDBAPIKeys)
	}
	if cfg.RedisURL != "" {
		t.Errorf("expected empty redis URL, got %s", cfg.RedisURL)
	}
	if len(cfg.CORSOrigins) != 1 || cfg.CORSOrigins[0] != "*" {
		t.Errorf("expected any CORS origin, got %v", cfg.CORSOrigins)
	}
}

func TestLoadFrom_Overrides(t *testing.T) {
	cfg, err := LoadFrom(envMap(map[string]string{
		"TMDB_API_KEY":        " key1, ,key2 ",
		"TMDB_BASE_URL":       "http://localhost:9999/3/",
		"DEFAULT_LANGUAGE":    "ES",
		"SUPPORTED_LANGUAGES": "en, es",
		"REQUEST_TIMEOUT":     "3s",
		"CORS_ALLOW_ORIGINS":  "https://a.example, https://b.example",
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(cfg.TMDBAPIKeys) != 2 || cfg.TMDBAPIKeys[0] != "key1" || cfg.TMDBAPIKeys[1] != "key2" {
		t.Errorf("unexpected keys: %v", cfg.TMDBAPIKeys)
	}
	if cfg.TMDBBaseURL != "http://localhost:9999/3" {
		t.Errorf("expected trailing slash trimmed, got %s", cfg.TMDBBaseURL)
	}
	if cfg.DefaultLanguage != "es" {
		t.Errorf("expected es, got %s", cfg.DefaultLanguage)
	}
	if cfg.RequestTimeout != 3*time.Second {
		t.Errorf("expected 3s, got %s", cfg.RequestTimeout)
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[1] != "https://b.example" {
		t.Errorf("unexpected CORS origins: %v", cfg.CORSOrigins)
	}
}

func TestLoadFrom_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"default not supported", map[string]string{"DEFAULT_LANGUAGE": "ja"}},
		{"bad timeout", map[string]string{"REQUEST_TIMEOUT": "soon"}},
		{"negative timeout", map[string]string{"REQUEST_TIMEOUT": "-1s"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadFrom(envMap(tt.env)); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}
