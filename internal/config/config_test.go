// internal/config/config_test.go
package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("ENVIRONMENT", "development")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.True(t, cfg.Database.SeedData)
}

func TestSeedDataFlag(t *testing.T) {
	t.Setenv("DB_SEED_DATA", "false")

	cfg, err := Load()
	require.NoError(t, err)
	assert.False(t, cfg.Database.SeedData)
}

func TestGetEnvAsBool(t *testing.T) {
	t.Setenv("SOME_FLAG", "TRUE")
	assert.True(t, getEnvAsBool("SOME_FLAG", false))

	t.Setenv("SOME_FLAG", "0")
	assert.False(t, getEnvAsBool("SOME_FLAG", true))

	t.Setenv("SOME_FLAG", "not-a-bool")
	assert.True(t, getEnvAsBool("SOME_FLAG", true))
}

func TestValidateProduction(t *testing.T) {
	cfg := &Config{Environment: "production"}
	cfg.JWT.SecretKey = "your-secret-key-change-in-production"
	assert.Error(t, cfg.Validate())

	cfg.JWT.SecretKey = "rotated"
	cfg.Database.Password = ""
	assert.Error(t, cfg.Validate())

	cfg.Database.Password = "pw"
	assert.NoError(t, cfg.Validate())
}
