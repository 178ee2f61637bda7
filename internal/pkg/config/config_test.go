package config

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFrom_Defaults(t *testing.T) {
	cfg, err := LoadFrom(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET": "s3cret",
	}))
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, time.Hour, cfg.TokenTTL)
	assert.Equal(t, 10, cfg.BcryptCost)
	assert.Equal(t, 10240, cfg.MaxContentLength)
	assert.Equal(t, DriverPostgres, cfg.Store.Driver)
	assert.Equal(t, 5*time.Second, cfg.Store.Timeout)
	assert.Empty(t, cfg.Redis.Addr)
	assert.Empty(t, cfg.AI.APIKey)
	assert.False(t, cfg.Production())
}

func TestLoadFrom_Overrides(t *testing.T) {
	cfg, err := LoadFrom(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET":         "s3cret",
		"ENV":                "production",
		"STORE_DRIVER":       "memory",
		"TOKEN_TTL":          "15m",
		"MAX_CONTENT_LENGTH": "500",
		"CORS_ORIGINS":       "https://a.example,https://b.example",
		"REDIS_ADDR":         "localhost:6379",
	}))
	require.NoError(t, err)

	assert.True(t, cfg.Production())
	assert.Equal(t, DriverMemory, cfg.Store.Driver)
	assert.Equal(t, 15*time.Minute, cfg.TokenTTL)
	assert.Equal(t, 500, cfg.MaxContentLength)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
}

func TestLoadFrom_MissingSecret(t *testing.T) {
	_, err := LoadFrom(context.Background(), envconfig.MapLookuper(map[string]string{}))
	require.Error(t, err)
}

func TestLoadFrom_Invalid(t *testing.T) {
	tests := map[string]map[string]string{
		"unknown driver":   {"STORE_DRIVER": "sqlite"},
		"zero max content": {"MAX_CONTENT_LENGTH": "0"},
		"bcrypt too low":   {"BCRYPT_COST": "2"},
		"negative ttl":     {"TOKEN_TTL": "-1m"},
	}
	for name, env := range tests {
		t.Run(name, func(t *testing.T) {
			env["JWT_SECRET"] = "s3cret"
			_, err := LoadFrom(context.Background(), envconfig.MapLookuper(env))
			require.Error(t, err)
		})
	}
}

func TestValidate_CollectsAllErrors(t *testing.T) {
	cfg := &Config{JWTSecret: " ", Store: StoreConfig{Driver: "x"}}
	err := cfg.Validate()
	require.Error(t, err)
	for _, want := range []string{"STORE_DRIVER", "JWT_SECRET", "TOKEN_TTL", "MAX_CONTENT_LENGTH"} {
		assert.True(t, strings.Contains(err.Error(), want), "missing %s in %v", want, err)
	}
}
