package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	EnvProduction  = "production"
	EnvDevelopment = "development"
)

// Config holds everything main needs to wire the application together.
type Config struct {
	Port          int
	ConnString    string
	LogLevel      string
	SessionSecret string
	SessionTTL    time.Duration
	RedisURL      string
	JoinAttempts  int
	Environment   string
}

// SecureCookies reports whether session cookies should carry the Secure flag.
func (c *Config) SecureCookies() bool {
	return c.Environment != EnvDevelopment
}

// Load reads the configuration from the environment. A .env file in the
// working directory is loaded first if one exists.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}
	return fromEnv(os.Getenv)
}

func fromEnv(getenv func(string) string) (*Config, error) {
	get := func(key, fallback string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return fallback
	}

	cfg := &Config{
		ConnString:    get("POSTGRES_CONN_STR", ""),
		LogLevel:      get("LOG_LEVEL", "info"),
		SessionSecret: get("SESSION_SECRET", ""),
		RedisURL:      get("REDIS_URL", ""),
		Environment:   strings.ToLower(get("ENVIRONMENT", EnvProduction)),
	}

	var err error
	if cfg.Port, err = strconv.Atoi(get("PORT", "3000")); err != nil || cfg.Port <= 0 {
		return nil, fmt.Errorf("PORT must be a positive integer: %q", getenv("PORT"))
	}
	if cfg.SessionTTL, err = time.ParseDuration(get("SESSION_TTL", "720h")); err != nil || cfg.SessionTTL <= 0 {
		return nil, fmt.Errorf("SESSION_TTL must be a positive duration: %q", getenv("SESSION_TTL"))
	}
	if cfg.JoinAttempts, err = strconv.Atoi(get("JOIN_ATTEMPTS_PER_HOUR", "10")); err != nil || cfg.JoinAttempts <= 0 {
		return nil, fmt.Errorf("JOIN_ATTEMPTS_PER_HOUR must be a positive integer: %q", getenv("JOIN_ATTEMPTS_PER_HOUR"))
	}

	if cfg.ConnString == "" {
		return nil, errors.New("POSTGRES_CONN_STR is required")
	}
	if cfg.SessionSecret == "" {
		return nil, errors.New("SESSION_SECRET is required")
	}
	if cfg.Environment != EnvProduction && cfg.Environment != EnvDevelopment {
		return nil, fmt.Errorf("ENVIRONMENT must be %q or %q, got %q", EnvProduction, EnvDevelopment, cfg.Environment)
	}

	return cfg, nil
}
