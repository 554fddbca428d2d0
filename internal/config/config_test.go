package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("OPENAI_API_KEY_ENV_VAR", "")
	t.Setenv("STORAGE_DRIVER", "memory")
	t.Setenv("DEFAULT_LOCATION", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DefaultLocation, cfg.Chat.DefaultLocation)
	assert.False(t, cfg.OpenAI.Enabled, "missing API key must disable the model client")
	assert.Equal(t, 20, cfg.Search.DefaultLimit)
	assert.Equal(t, "memory", cfg.Storage.Driver)
}

func TestLoad_APIKeyEnablesClient(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "memory")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("OPENAI_API_BASE", "http://localhost:9999/v1/")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.OpenAI.Enabled)
	assert.Equal(t, "http://localhost:9999/v1", cfg.OpenAI.APIBase)
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "unknown driver", env: map[string]string{"STORAGE_DRIVER": "mongo"}},
		{name: "max below default", env: map[string]string{"STORAGE_DRIVER": "memory", "SEARCH_MAX_LIMIT": "5"}},
		{name: "zero default limit", env: map[string]string{"STORAGE_DRIVER": "memory", "SEARCH_DEFAULT_LIMIT": "0"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestGetEnvHelpers_FallBackOnGarbage(t *testing.T) {
	t.Setenv("X_INT", "abc")
	t.Setenv("X_FLOAT", "1.2.3")
	t.Setenv("X_BOOL", "maybe")

	assert.Equal(t, 7, getEnvAsInt("X_INT", 7))
	assert.Equal(t, 0.5, getEnvAsFloat("X_FLOAT", 0.5))
	assert.True(t, getEnvAsBool("X_BOOL", true))
}

func TestGetPostgreSQLDSN(t *testing.T) {
	cfg := &Config{PostgreSQL: PostgreSQLConfig{
		Host: "db", Port: 5433, User: "u", Password: "p", Database: "d", SSLMode: "disable",
	}}
	assert.Equal(t, "host=db port=5433 user=u password=p dbname=d sslmode=disable", cfg.GetPostgreSQLDSN())

	cfg.PostgreSQL.DSN = "postgres://x"
	assert.Equal(t, "postgres://x", cfg.GetPostgreSQLDSN())
}
