package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all configuration for the assistant service
type Config struct {
	// Server settings
	Port int

	// Auth settings
	AuthToken   string
	OwnerNumber string

	// Codeforces settings
	DefaultHandle  string
	RequestTimeout time.Duration

	// clist.by contest calendar (optional)
	ClistUsername string
	ClistAPIKey   string

	// Gemini practice advice (optional)
	GeminiAPIKey string
	GeminiModel  string

	// Keep-alive pinger
	KeepAliveURL      string
	KeepAliveInterval time.Duration
	KeepAliveTimeout  time.Duration
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Port:              getEnvInt("PORT", 8086),
		AuthToken:         os.Getenv("AUTH_TOKEN"),
		OwnerNumber:       os.Getenv("MY_NUMBER"),
		DefaultHandle:     os.Getenv("DEFAULT_HANDLE"),
		RequestTimeout:    getEnvDuration("REQUEST_TIMEOUT", 30*time.Second),
		ClistUsername:     os.Getenv("CLIST_USERNAME"),
		ClistAPIKey:       os.Getenv("CLIST_API_KEY"),
		GeminiAPIKey:      os.Getenv("GEMINI_API_KEY"),
		GeminiModel:       getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		KeepAliveURL:      os.Getenv("KEEP_ALIVE_URL"),
		KeepAliveInterval: getEnvDuration("KEEP_ALIVE_INTERVAL", 14*time.Minute),
		KeepAliveTimeout:  getEnvDuration("KEEP_ALIVE_TIMEOUT", 30*time.Second),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validate checks that required configuration is present and sane.
// The keep-alive URL is deliberately not required: its absence
// disables the pinger instead of failing startup.
func (c *Config) validate() error {
	if c.AuthToken == "" {
		return fmt.Errorf("AUTH_TOKEN is required")
	}
	if c.OwnerNumber == "" {
		return fmt.Errorf("MY_NUMBER is required")
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid PORT: %d", c.Port)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("REQUEST_TIMEOUT must be positive")
	}
	if c.KeepAliveInterval <= 0 {
		return fmt.Errorf("KEEP_ALIVE_INTERVAL must be positive")
	}
	if c.KeepAliveTimeout <= 0 {
		return fmt.Errorf("KEEP_ALIVE_TIMEOUT must be positive")
	}
	return nil
}

// ClistConfigured reports whether the clist.by contest calendar can be used.
func (c *Config) ClistConfigured() bool {
	return c.ClistUsername != "" && c.ClistAPIKey != ""
}

// GeminiConfigured reports whether the Gemini advice tool can be used.
func (c *Config) GeminiConfigured() bool {
	return c.GeminiAPIKey != ""
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
