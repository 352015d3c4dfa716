package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "4000", cfg.Server.Port)
	assert.Equal(t, "doorprize", cfg.MongoDB.Database)
	assert.Equal(t, 24*60*60, cfg.JWT.ExpiresIn)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("MONGODB_DATABASE", "doorprize_test")
	t.Setenv("JWT_EXPIRES_IN", "3600")
	t.Setenv("ALLOWED_HOSTS", "a.example.com,b.example.com")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, "doorprize_test", cfg.MongoDB.Database)
	assert.Equal(t, 3600, cfg.JWT.ExpiresIn)
	assert.Equal(t, []string{"a.example.com", "b.example.com"}, cfg.Server.AllowedHosts)
}

func TestGetEnvHelpers(t *testing.T) {
	t.Setenv("SOME_INT", "not-a-number")
	assert.Equal(t, 7, GetEnvAsInt("SOME_INT", 7))
	assert.Equal(t, "fallback", GetEnv("UNSET_VAR_FOR_TEST", "fallback"))
}
