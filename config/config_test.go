package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("MONGO_URI", "mongodb://localhost:27017")
	t.Setenv("JWT_SECRET", "test-secret")
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "paisafy", cfg.MongoDB)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, 24*time.Hour, cfg.JWTExpiration)
	assert.Equal(t, 587, cfg.SMTPPort)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadRequiresMongoURI(t *testing.T) {
	t.Setenv("MONGO_URI", "")
	t.Setenv("JWT_SECRET", "test-secret")

	_, err := Load()
	assert.ErrorContains(t, err, "MONGO_URI")
}

func TestLoadRequiresJWTSecret(t *testing.T) {
	t.Setenv("MONGO_URI", "mongodb://localhost:27017")
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	assert.ErrorContains(t, err, "JWT_SECRET")
}

func TestLoadCustomExpiration(t *testing.T) {
	setRequired(t)
	t.Setenv("JWT_EXPIRATION", "3600")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, time.Hour, cfg.JWTExpiration)
}

func TestLoadRejectsBadExpiration(t *testing.T) {
	setRequired(t)
	t.Setenv("JWT_EXPIRATION", "tomorrow")

	_, err := Load()
	assert.ErrorContains(t, err, "JWT_EXPIRATION")

	t.Setenv("JWT_EXPIRATION", "-5")
	_, err = Load()
	assert.Error(t, err)
}

func TestLoadRejectsBadSMTPPort(t *testing.T) {
	setRequired(t)
	t.Setenv("SMTP_PORT", "not-a-port")

	_, err := Load()
	assert.ErrorContains(t, err, "SMTP_PORT")
}
