// Package config loads and validates all environment variables at startup.
// Every other package receives typed values — nothing reads os.Getenv directly.
package config

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Defaults for the sender identity. The relay historically sent from one
// fixed address; these keep that behaviour unless EMAIL_FROM_ADDR /
// EMAIL_FROM_NAME override it.
const (
	DefaultFromAddr = "alex.morgan@pipelinehq.io"
	DefaultFromName = "PipelineHQ Reports"
)

// Config is the fully-parsed application configuration.
type Config struct {
	// ── Server ────────────────────────────────────────────────────────────────
	Port string // default "3000"
	Env  string // "development" | "staging" | "production"

	// ── SendGrid ──────────────────────────────────────────────────────────────
	// SendGridAPIKey may be empty: the server still starts and the health and
	// logs endpoints work, but every send fails at the provider. /logs reports
	// whether the key is present.
	SendGridAPIKey string
	FromAddr       string
	FromName       string

	// ── Limits ────────────────────────────────────────────────────────────────
	// MaxBodyBytes caps the /send-pdf-email request body. Base64 inflates the
	// PDF by ~33%, so this has to be well above any expected PDF size.
	MaxBodyBytes int64 // default 50 MB
}

// Load reads all environment variables and returns a validated Config.
// It automatically loads a .env file from the working directory when present,
// so plain `go run ./cmd/api` works in development without any wrapper.
// Real environment variables always take precedence over .env values.
func Load() (*Config, error) {
	loadDotEnv(".env")

	c := &Config{
		Port:           getEnv("PORT", "3000"),
		Env:            getEnv("ENV", "development"),
		SendGridAPIKey: os.Getenv("SENDGRID_API_KEY"),
		FromAddr:       getEnv("EMAIL_FROM_ADDR", DefaultFromAddr),
		FromName:       getEnv("EMAIL_FROM_NAME", DefaultFromName),
		MaxBodyBytes:   getEnvAsInt64("MAX_BODY_BYTES", 50<<20),
	}

	return c, c.validate()
}

func (c *Config) validate() error {
	if _, err := strconv.Atoi(c.Port); err != nil {
		return fmt.Errorf("PORT must be numeric, got %q", c.Port)
	}
	if c.MaxBodyBytes <= 0 {
		return fmt.Errorf("MAX_BODY_BYTES must be positive, got %d", c.MaxBodyBytes)
	}
	return nil
}

// SendGridConfigured reports whether a provider API key is present.
func (c *Config) SendGridConfigured() bool {
	return c.SendGridAPIKey != ""
}

// ─── DOT-ENV LOADER ──────────────────────────────────────────────────────────

// loadDotEnv reads key=value pairs from path and sets them in the environment,
// but only for keys that are not already set. This means real env vars (e.g.
// from Docker / Railway / your shell) always win over the file.
// Missing file, blank lines, and #-comments are all silently ignored.
func loadDotEnv(path string) {
	f, err := os.Open(path)
	if err != nil {
		return // file absent — that's fine
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		// Strip optional surrounding quotes: KEY="value" or KEY='value'
		if len(value) >= 2 {
			if (value[0] == '"' && value[len(value)-1] == '"') ||
				(value[0] == '\'' && value[len(value)-1] == '\'') {
				value = value[1 : len(value)-1]
			}
		}
		// Only set if the key isn't already present in the environment.
		if os.Getenv(key) == "" {
			_ = os.Setenv(key, value)
		}
	}
}

// ─── HELPERS ─────────────────────────────────────────────────────────────────

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value, err := strconv.ParseInt(os.Getenv(key), 10, 64); err == nil {
		return value
	}
	return defaultValue
}
