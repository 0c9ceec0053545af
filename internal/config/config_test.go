package config

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("DATABASE_URL", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "0.0.0.0:8080", cfg.Addr())
	assert.Equal(t, []string{"*"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, 20, cfg.Search.DefaultLimit)
	assert.Equal(t, 100*time.Millisecond, cfg.Places.RequestGap)
	assert.Equal(t, 5000, cfg.Places.RadiusMeters)
	assert.False(t, cfg.OpenAI.Enabled)
	assert.False(t, cfg.UsePostgres())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("DATABASE_URL", "postgres://localhost/openkey")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://localhost:3000,https://openkey.ae")
	t.Setenv("OPENAI_TIMEOUT", "5s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.OpenAI.Enabled)
	assert.True(t, cfg.UsePostgres())
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, []string{"http://localhost:3000", "https://openkey.ae"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, 5*time.Second, cfg.OpenAI.Timeout)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"non-numeric port", "SERVER_PORT", "http"},
		{"default above max", "SEARCH_DEFAULT_LIMIT", "500"},
		{"unknown log format", "LOG_FORMAT", "xml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.val)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(LoggingConfig{Level: "debug", Format: "json"}, &buf)

	logger.WithField("project_id", "p1").Debug("scored")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "p1", entry["project_id"])
	assert.Equal(t, "scored", entry["msg"])
}

func TestNewLogger_BadLevel(t *testing.T) {
	logger := newLogger(LoggingConfig{Level: "loud", Format: "text"}, &bytes.Buffer{})
	assert.Equal(t, logrus.InfoLevel, logger.GetLevel())
	assert.IsType(t, &logrus.TextFormatter{}, logger.Formatter)
}
