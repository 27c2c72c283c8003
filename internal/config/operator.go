// Package config provides operator credential configuration for the API.
package config

import (
	"fmt"
	"os"
	"strconv"

	"golang.org/x/crypto/bcrypt"
)

// OperatorConfig holds the single-operator credentials used to mint API
// tokens. The password is stored as a bcrypt hash; plaintext never enters
// the environment.
type OperatorConfig struct {
	Email        string
	PasswordHash string
	BcryptCost   int
}

// NewOperatorConfig creates operator credentials from environment variables.
// It reads OPERATOR_EMAIL and OPERATOR_PASSWORD_HASH (both required) and
// BCRYPT_COST (default: 12, used when generating new hashes).
func NewOperatorConfig() (*OperatorConfig, error) {
	email := os.Getenv("OPERATOR_EMAIL")
	if email == "" {
		return nil, fmt.Errorf("OPERATOR_EMAIL is required but not set")
	}

	hash := os.Getenv("OPERATOR_PASSWORD_HASH")
	if hash == "" {
		return nil, fmt.Errorf("OPERATOR_PASSWORD_HASH is required but not set")
	}

	costStr := os.Getenv("BCRYPT_COST")
	if costStr == "" {
		costStr = "12" // default
	}

	cost, err := strconv.Atoi(costStr)
	if err != nil {
		return nil, fmt.Errorf("invalid BCRYPT_COST: %v", err)
	}

	config := &OperatorConfig{
		Email:        email,
		PasswordHash: hash,
		BcryptCost:   cost,
	}

	if err := config.normalize(); err != nil {
		return nil, err
	}

	return config, nil
}

// normalize validates the configuration.
func (c *OperatorConfig) normalize() error {
	if c.BcryptCost < 10 || c.BcryptCost > 14 {
		return fmt.Errorf("bcrypt cost out of range: %d (must be 10-14)", c.BcryptCost)
	}
	return nil
}

// VerifyCredentials checks a login attempt against the configured operator.
func (c *OperatorConfig) VerifyCredentials(email, password string) bool {
	if email != c.Email {
		return false
	}
	err := bcrypt.CompareHashAndPassword([]byte(c.PasswordHash), []byte(password))
	return err == nil
}

// HashPassword hashes a password using bcrypt at the configured cost.
// Used by the hash-password CLI helper when provisioning an operator.
func HashPassword(password string, cost int) (string, error) {
	if cost < 10 || cost > 14 {
		return "", fmt.Errorf("bcrypt cost out of range: %d (must be 10-14)", cost)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}
