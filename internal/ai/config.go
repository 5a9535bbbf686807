package ai

import (
	"os"
	"strconv"
)

// Config holds all configuration for the external planning service.
type Config struct {
	APIKey          string
	Endpoint        string
	Model           string
	TimeoutMs       int
	Temperature     float64
	TopK            int
	TopP            float64
	MaxOutputTokens int
	LogCalls        bool
}

// DefaultConfig returns a Config with sensible defaults. Planning runs in
// deterministic-only mode until an API key is configured.
func DefaultConfig() Config {
	return Config{
		Endpoint:        "https://generativelanguage.googleapis.com",
		Model:           "gemini-1.5-flash",
		TimeoutMs:       30000,
		Temperature:     0.3,
		TopK:            32,
		TopP:            0.95,
		MaxOutputTokens: 8192,
	}
}

// LoadConfig reads configuration from environment variables, falling back
// to defaults for any unset values.
func LoadConfig() Config {
	cfg := DefaultConfig()

	if v := os.Getenv("ESTUDIA_AI_API_KEY"); v != "" {
		cfg.APIKey = v
	}
	if v := os.Getenv("ESTUDIA_AI_ENDPOINT"); v != "" {
		cfg.Endpoint = v
	}
	if v := os.Getenv("ESTUDIA_AI_MODEL"); v != "" {
		cfg.Model = v
	}
	if v := os.Getenv("ESTUDIA_AI_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.TimeoutMs = n
		}
	}
	if v := os.Getenv("ESTUDIA_AI_LOG_CALLS"); v != "" {
		cfg.LogCalls, _ = strconv.ParseBool(v)
	}

	return cfg
}

// HasCredential reports whether an API key is configured.
func (c Config) HasCredential() bool {
	return c.APIKey != ""
}
