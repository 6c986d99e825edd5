// Package config reads service settings from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"bodydry/internal/app"

	"github.com/joho/godotenv"
)

// Storage backends.
const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

// Config holds the runtime settings.
type Config struct {
	Addr           string
	DatabaseURL    string
	Storage        string
	LogLevel       slog.Level
	CORSOrigins    []string
	AdminToken     string
	SessionTTL     time.Duration
	LoginPerMinute int
	OIDC           OIDC
}

// OIDC holds the optional SSO provider settings.
type OIDC struct {
	Issuer       string
	ClientID     string
	ClientSecret string
	RedirectURL  string
}

// Enabled reports whether SSO is fully configured.
func (o OIDC) Enabled() bool {
	return o.Issuer != "" && o.ClientID != "" && o.RedirectURL != ""
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from getenv.
func FromEnv(getenv func(string) string) (*Config, error) {
	env := func(key, fallback string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return fallback
	}

	cfg := &Config{
		Addr:        env("ADDR", ":8080"),
		DatabaseURL: getenv("DATABASE_URL"),
		Storage:     strings.ToLower(env("STORAGE", StoragePostgres)),
		CORSOrigins: splitList(getenv("CORS_ORIGINS")),
		AdminToken:  getenv("ADMIN_TOKEN"),
		OIDC: OIDC{
			Issuer:       getenv("OIDC_ISSUER"),
			ClientID:     getenv("OIDC_CLIENT_ID"),
			ClientSecret: getenv("OIDC_CLIENT_SECRET"),
			RedirectURL:  getenv("OIDC_REDIRECT_URL"),
		},
	}

	if err := cfg.LogLevel.UnmarshalText([]byte(env("LOG_LEVEL", "info"))); err != nil {
		return nil, fmt.Errorf("LOG_LEVEL: %w", err)
	}

	ttl, err := time.ParseDuration(env("SESSION_TTL", app.DefaultSessionTTL.String()))
	if err != nil || ttl <= 0 {
		return nil, fmt.Errorf("SESSION_TTL must be a positive duration, got %q", getenv("SESSION_TTL"))
	}
	cfg.SessionTTL = ttl

	perMin, err := strconv.Atoi(env("LOGIN_RATE_PER_MIN", "10"))
	if err != nil || perMin <= 0 {
		return nil, fmt.Errorf("LOGIN_RATE_PER_MIN must be a positive integer, got %q", getenv("LOGIN_RATE_PER_MIN"))
	}
	cfg.LoginPerMinute = perMin

	switch cfg.Storage {
	case StoragePostgres:
		if cfg.DatabaseURL == "" {
			return nil, errors.New("DATABASE_URL is required when STORAGE=postgres")
		}
	case StorageMemory:
	default:
		return nil, fmt.Errorf("STORAGE must be %q or %q, got %q", StoragePostgres, StorageMemory, cfg.Storage)
	}
	return cfg, nil
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
