package auth

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// minSecretLen is the minimum HMAC secret size in bytes (256 bits).
const minSecretLen = 32

// Config holds token signing configuration. The secret is process-wide,
// read-only after startup, and must never appear in logs or responses.
type Config struct {
	Secret   []byte
	TokenTTL time.Duration // Default 24h
}

// ConfigFromEnv loads config from environment variables.
// TASKHIVE_JWT_SECRET (required, >= 32 bytes), TASKHIVE_JWT_TTL_HOURS
func ConfigFromEnv() (Config, error) {
	secret := os.Getenv("TASKHIVE_JWT_SECRET")
	if secret == "" {
		return Config{}, fmt.Errorf("TASKHIVE_JWT_SECRET is required")
	}
	if len(secret) < minSecretLen {
		return Config{}, fmt.Errorf("TASKHIVE_JWT_SECRET must be at least %d bytes, got %d", minSecretLen, len(secret))
	}

	cfg := Config{
		Secret:   []byte(secret),
		TokenTTL: 24 * time.Hour,
	}

	if v := os.Getenv("TASKHIVE_JWT_TTL_HOURS"); v != "" {
		if hours, err := strconv.Atoi(v); err == nil && hours > 0 {
			cfg.TokenTTL = time.Duration(hours) * time.Hour
		}
	}

	return cfg, nil
}
