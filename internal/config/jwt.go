package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// minSecretLength rejects secrets short enough to brute-force; analysis
// results are low-sensitivity but the token also gates analysis submission.
const minSecretLength = 16

// JWTConfig holds the signing material for operator API tokens. Tokens are
// minted at login and carry only the operator email as subject.
type JWTConfig struct {
	Secret          string
	ExpirationHours int
}

// NewJWTConfig builds token configuration from environment variables.
// It reads JWT_SECRET (required, at least 16 bytes) and JWT_EXPIRATION_HOURS
// (default: 24).
func NewJWTConfig() (*JWTConfig, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required but not set")
	}

	hoursStr := os.Getenv("JWT_EXPIRATION_HOURS")
	if hoursStr == "" {
		hoursStr = "24" // default
	}

	hours, err := strconv.Atoi(hoursStr)
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_EXPIRATION_HOURS: %v", err)
	}

	config := &JWTConfig{
		Secret:          secret,
		ExpirationHours: hours,
	}

	if err := config.normalize(); err != nil {
		return nil, err
	}

	return config, nil
}

// normalize validates the configuration.
func (c *JWTConfig) normalize() error {
	if len(c.Secret) < minSecretLength {
		return fmt.Errorf("JWT_SECRET too short: %d bytes (must be at least %d)", len(c.Secret), minSecretLength)
	}
	if c.ExpirationHours < 1 {
		return fmt.Errorf("JWT_EXPIRATION_HOURS must be at least 1 hour, got: %d", c.ExpirationHours)
	}
	return nil
}

// TokenTTL returns the configured token lifetime as a duration.
func (c *JWTConfig) TokenTTL() time.Duration {
	return time.Duration(c.ExpirationHours) * time.Hour
}
