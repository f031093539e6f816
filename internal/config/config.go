// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package config loads the server configuration from CCMS_* environment
// variables.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net"
	"strconv"
	"strings"

	"github.com/caarlos0/env/v11"
)

// DevSessionSecret is the development fallback for CCMS_SESSION_SECRET.
const DevSessionSecret = "ccms-development-secret-change-me!"

// DevAdminPassword is the default bootstrap admin password.
const DevAdminPassword = "changeme"

// MinSessionSecretLength is the minimum required length for the session secret.
// The CSRF key derivation expects 32 bytes.
const MinSessionSecretLength = 32

// knownWeakSecrets contains default/example secrets that must be rejected in production.
var knownWeakSecrets = []string{
	DevSessionSecret,
	"change-me-to-32-byte-secret-key!",
	"REPLACE_WITH_YOUR_OWN_SECRET_KEY!",
}

// Config holds the application configuration loaded from environment variables.
type Config struct {
	Env        string `env:"CCMS_ENV" envDefault:"development"`
	ServerHost string `env:"CCMS_SERVER_HOST" envDefault:"localhost"`
	ServerPort int    `env:"CCMS_SERVER_PORT" envDefault:"8080"`
	LogLevel   string `env:"CCMS_LOG_LEVEL" envDefault:"info"`
	DBPath     string `env:"CCMS_DB_PATH" envDefault:"./data/ccms.db"`

	// Public URLs
	PublicURL string `env:"CCMS_PUBLIC_URL"` // when empty the request origin is used
	BasePath  string `env:"CCMS_BASE_PATH"`  // prefix for generated image URLs

	// Bootstrap admin
	AdminEmail    string `env:"CCMS_ADMIN_EMAIL" envDefault:"admin@example.com"`
	AdminPassword string `env:"CCMS_ADMIN_PASSWORD" envDefault:"changeme"`

	// Object store (MinIO or any S3-compatible service)
	S3Endpoint  string `env:"CCMS_S3_ENDPOINT" envDefault:"localhost"`
	S3Port      int    `env:"CCMS_S3_PORT" envDefault:"9000"`
	S3AccessKey string `env:"CCMS_S3_ACCESS_KEY" envDefault:"minioadmin"`
	S3SecretKey string `env:"CCMS_S3_SECRET_KEY" envDefault:"minioadmin"`
	S3UseSSL    bool   `env:"CCMS_S3_USE_SSL" envDefault:"false"`
	S3Region    string `env:"CCMS_S3_REGION" envDefault:"us-east-1"`

	// Cache configuration
	RedisURL     string `env:"CCMS_REDIS_URL"`                         // Optional Redis URL for distributed caching
	CachePrefix  string `env:"CCMS_CACHE_PREFIX" envDefault:"ccms:"`   // Redis key prefix
	CacheTTL     int    `env:"CCMS_CACHE_TTL" envDefault:"300"`        // Default cache TTL in seconds
	CacheMaxSize int    `env:"CCMS_CACHE_MAX_SIZE" envDefault:"10000"` // Max memory cache entries

	DigestSchedule string `env:"CCMS_DIGEST_SCHEDULE" envDefault:"@hourly"`
	GeoIPDBPath    string `env:"CCMS_GEOIP_DB_PATH"` // Path to GeoLite2-Country.mmdb file
	SessionSecret  string `env:"CCMS_SESSION_SECRET"`
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return net.JoinHostPort(c.ServerHost, strconv.Itoa(c.ServerPort))
}

// ObjectStoreEndpoint returns the object store base URL.
func (c Config) ObjectStoreEndpoint() string {
	scheme := "http"
	if c.S3UseSSL {
		scheme = "https"
	}
	return scheme + "://" + net.JoinHostPort(c.S3Endpoint, strconv.Itoa(c.S3Port))
}

// UseRedisCache returns true if Redis caching is configured.
func (c Config) UseRedisCache() bool {
	return c.RedisURL != ""
}

// GeoIPEnabled returns true if GeoIP database is configured.
func (c Config) GeoIPEnabled() bool {
	return c.GeoIPDBPath != ""
}

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	cfg.BasePath = strings.TrimRight(cfg.BasePath, "/")
	cfg.PublicURL = strings.TrimRight(cfg.PublicURL, "/")

	if cfg.SessionSecret == "" && cfg.IsDevelopment() {
		cfg.SessionSecret = DevSessionSecret
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Env {
	case "development", "production":
	default:
		return fmt.Errorf("CCMS_ENV must be development or production, got %q", c.Env)
	}

	if c.ServerPort <= 0 || c.ServerPort > 65535 {
		return fmt.Errorf("CCMS_SERVER_PORT out of range: %d", c.ServerPort)
	}

	if len(c.SessionSecret) < MinSessionSecretLength {
		return fmt.Errorf("CCMS_SESSION_SECRET must be at least %d bytes long, got %d bytes; "+
			"generate a secure secret with: openssl rand -base64 32",
			MinSessionSecretLength, len(c.SessionSecret))
	}

	if c.IsDevelopment() {
		return nil
	}

	for _, weak := range knownWeakSecrets {
		if c.SessionSecret == weak {
			return errors.New("CCMS_SESSION_SECRET is a known default value and must not be used; " +
				"generate a secure secret with: openssl rand -base64 32")
		}
	}
	if c.AdminPassword == DevAdminPassword {
		return errors.New("CCMS_ADMIN_PASSWORD must be changed from the default in production")
	}

	// Warn about low-entropy secrets
	if !hasMinimumEntropy(c.SessionSecret) {
		slog.Warn("CCMS_SESSION_SECRET has low character diversity; " +
			"consider generating a random secret with: openssl rand -base64 32")
	}
	return nil
}

// hasMinimumEntropy checks that a secret contains at least 3 character classes
// (lowercase, uppercase, digits, special characters).
func hasMinimumEntropy(s string) bool {
	charTypes := 0
	if strings.ContainsAny(s, "abcdefghijklmnopqrstuvwxyz") {
		charTypes++
	}
	if strings.ContainsAny(s, "ABCDEFGHIJKLMNOPQRSTUVWXYZ") {
		charTypes++
	}
	if strings.ContainsAny(s, "0123456789") {
		charTypes++
	}
	if strings.ContainsAny(s, "!@#$%^&*()-_=+[]{}|;:,.<>?/~`'\"\\") {
		charTypes++
	}
	return charTypes >= 3
}
