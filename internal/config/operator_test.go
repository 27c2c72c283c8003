package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOperatorConfig_RequiresEmailAndHash(t *testing.T) {
	t.Setenv("OPERATOR_EMAIL", "")
	t.Setenv("OPERATOR_PASSWORD_HASH", "")

	_, err := NewOperatorConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "OPERATOR_EMAIL")

	t.Setenv("OPERATOR_EMAIL", "ops@example.com")
	_, err = NewOperatorConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "OPERATOR_PASSWORD_HASH")
}

func TestNewOperatorConfig_CostValidation(t *testing.T) {
	t.Setenv("OPERATOR_EMAIL", "ops@example.com")
	t.Setenv("OPERATOR_PASSWORD_HASH", "$2a$10$abcdefghijklmnopqrstuv")
	t.Setenv("BCRYPT_COST", "20")

	_, err := NewOperatorConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "out of range")
}

func TestVerifyCredentials_RoundTrip(t *testing.T) {
	hash, err := HashPassword("s3cret-pass", 10)
	require.NoError(t, err)

	t.Setenv("OPERATOR_EMAIL", "ops@example.com")
	t.Setenv("OPERATOR_PASSWORD_HASH", hash)
	t.Setenv("BCRYPT_COST", "10")

	cfg, err := NewOperatorConfig()
	require.NoError(t, err)

	assert.True(t, cfg.VerifyCredentials("ops@example.com", "s3cret-pass"))
	assert.False(t, cfg.VerifyCredentials("ops@example.com", "wrong-pass"))
	assert.False(t, cfg.VerifyCredentials("other@example.com", "s3cret-pass"))
}

func TestHashPassword_CostRange(t *testing.T) {
	_, err := HashPassword("pw", 9)
	assert.Error(t, err)
	_, err = HashPassword("pw", 15)
	assert.Error(t, err)
}
