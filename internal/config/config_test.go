package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, 8080, cfg.Server.Port)
	require.Equal(t, "memory", cfg.Cache.Type)
	require.False(t, cfg.Database.Enabled)
	require.Equal(t, time.Second, cfg.Auth.LoginLatency)
	require.Equal(t, 24*time.Hour, cfg.Auth.TokenTTL)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9999")
	t.Setenv("CACHE_TYPE", "redis")
	t.Setenv("AUTH_LOGIN_LATENCY", "250ms")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, 9999, cfg.Server.Port)
	require.Equal(t, "redis", cfg.Cache.Type)
	require.Equal(t, 250*time.Millisecond, cfg.Auth.LoginLatency)
	require.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowedOrigins)
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		cfg, err := Load()
		require.NoError(t, err)
		cfg.Auth.JWTSecret = "secret"
		return cfg
	}

	cfg := base()
	require.NoError(t, cfg.Validate())

	cfg = base()
	cfg.Auth.JWTSecret = ""
	require.Error(t, cfg.Validate())

	cfg = base()
	cfg.Server.Port = -1
	require.Error(t, cfg.Validate())

	cfg = base()
	cfg.Cache.Type = "tape"
	require.Error(t, cfg.Validate())

	cfg = base()
	cfg.Auth.LoginLatency = -time.Second
	require.Error(t, cfg.Validate())
}
