package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() Config {
	return Config{
		HTTP:     HTTPConfig{Port: 8080},
		Database: DatabaseConfig{Addrs: []string{"localhost:6379"}},
	}
}

func TestValidate_Valid(t *testing.T) {
	cfg := validConfig()
	cfg.ApplyDefaults()
	require.NoError(t, cfg.Validate())
}

func TestValidate_InvalidPort(t *testing.T) {
	cfg := validConfig()
	cfg.HTTP.Port = 0
	assert.Error(t, cfg.Validate())
}

func TestValidate_MissingAddrs(t *testing.T) {
	cfg := validConfig()
	cfg.Database.Addrs = nil
	assert.Error(t, cfg.Validate())
}

func TestValidate_PageSizeOrdering(t *testing.T) {
	cfg := validConfig()
	cfg.Search.DefaultPageSize = 200
	cfg.Search.MaxPageSize = 100
	assert.Error(t, cfg.Validate())
}

func TestValidate_SuggestRequiresModel(t *testing.T) {
	cfg := validConfig()
	cfg.ApplyDefaults()
	cfg.Suggest.APIKey = "key"
	cfg.Suggest.Model = ""
	assert.Error(t, cfg.Validate())

	cfg.Suggest.Model = "text-embedding-3-small"
	assert.NoError(t, cfg.Validate())
}

func TestApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	assert.Equal(t, 10, cfg.HTTP.ReadTimeoutSec)
	assert.Equal(t, 10, cfg.HTTP.WriteTimeoutSec)
	assert.Equal(t, 10, cfg.HTTP.ShutdownSec)
	assert.Equal(t, 10, cfg.Database.ReadinessTimeout)
	assert.Equal(t, 20, cfg.Search.DefaultPageSize)
	assert.Equal(t, 100, cfg.Search.MaxPageSize)
	assert.Equal(t, 5000, cfg.Search.MaxScan)
	assert.Equal(t, 300, cfg.Sessions.DebounceMs)
	assert.Equal(t, 30, cfg.Sessions.TTLMin)
	assert.Equal(t, 60, cfg.Sessions.SweepIntervalSec)
	assert.Equal(t, 24, cfg.Suggest.CacheTTLHr)
	assert.Equal(t, 1000, cfg.Suggest.MaxTerms)
	assert.Equal(t, "searchdeck:", cfg.Storage.KeyPrefix)
}

func TestApplyDefaults_NoOverride(t *testing.T) {
	cfg := Config{
		HTTP:     HTTPConfig{ReadTimeoutSec: 30, WriteTimeoutSec: 60, ShutdownSec: 5},
		Database: DatabaseConfig{ReadinessTimeout: 15},
		Search:   SearchConfig{DefaultPageSize: 50, MaxPageSize: 500, MaxScan: 100},
		Sessions: SessionsConfig{DebounceMs: 150, TTLMin: 5, SweepIntervalSec: 10},
		Storage:  StorageConfig{KeyPrefix: "custom:"},
	}
	cfg.ApplyDefaults()

	assert.Equal(t, 30, cfg.HTTP.ReadTimeoutSec)
	assert.Equal(t, 60, cfg.HTTP.WriteTimeoutSec)
	assert.Equal(t, 50, cfg.Search.DefaultPageSize)
	assert.Equal(t, 150, cfg.Sessions.DebounceMs)
	assert.Equal(t, "custom:", cfg.Storage.KeyPrefix)
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("SD_TEST_PASSWORD", "hunter2")

	in := []byte("password: ${SD_TEST_PASSWORD}\nport: ${SD_TEST_PORT:-8080}\n")
	out := string(expandEnvVars(in))

	assert.Equal(t, "password: hunter2\nport: 8080\n", out)
}

func TestExpandEnvVars_EnvWinsOverDefault(t *testing.T) {
	t.Setenv("SD_TEST_PORT", "9090")

	out := string(expandEnvVars([]byte("port: ${SD_TEST_PORT:-8080}")))
	assert.Equal(t, "port: 9090", out)
}
