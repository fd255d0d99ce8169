package config

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setProduction skips .env loading so tests only see what they set.
func setProduction(t *testing.T) {
	t.Setenv("GO_ENV", "production")
	t.Setenv("JWT_SECRET", "secret")
}

func TestLoad_Defaults(t *testing.T) {
	setProduction(t)
	for _, key := range []string{"DATABASE_URL", "PORT", "SLOT_SWAP_MODE", "REQUEST_TIMEOUT", "REGIONS", "EMAIL_PROVIDER",
		"AUTOFILL_LOOKAHEAD", "AUTOFILL_CONCURRENCY", "STORAGE_MAX_IMAGE_WIDTH", "STORAGE_USE_PATH_STYLE",
		"EMAIL_SES_INSECURE_SKIP_VERIFY", "STORAGE_REGION", "EMAIL_SES_REGION"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Contains(t, cfg.DBUrl, "networkingbude")
	assert.Equal(t, SwapModeSentinel, cfg.SwapMode)
	assert.False(t, cfg.AtomicSwaps())
	assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 14*24*time.Hour, cfg.AutoFill.Lookahead)
	assert.Equal(t, 4, cfg.AutoFill.Concurrency)
	assert.Equal(t, "noop", cfg.Email.Provider)
	assert.Empty(t, cfg.Regions)
}

func TestLoad_FromEnv(t *testing.T) {
	setProduction(t)
	t.Setenv("PORT", "9000")
	t.Setenv("REGIONS", "grand-rapids, detroit,,")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example,https://b.example")
	t.Setenv("SLOT_SWAP_MODE", "Transactional")
	t.Setenv("REQUEST_TIMEOUT", "3s")
	t.Setenv("STORAGE_BUCKET", "slots")
	t.Setenv("STORAGE_REGION", "us-east-2")
	t.Setenv("STORAGE_USE_PATH_STYLE", "true")
	t.Setenv("EMAIL_SES_REGION", "")
	t.Setenv("AUTOFILL_CONCURRENCY", "8")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, []string{"grand-rapids", "detroit"}, cfg.Regions)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
	assert.True(t, cfg.AtomicSwaps())
	assert.Equal(t, 3*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "slots", cfg.Storage.Bucket)
	assert.True(t, cfg.Storage.UsePathStyle)
	assert.Equal(t, "us-east-2", cfg.Email.SESRegion)
	assert.Equal(t, 8, cfg.AutoFill.Concurrency)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"swap mode", "SLOT_SWAP_MODE", "optimistic"},
		{"timeout", "REQUEST_TIMEOUT", "soon"},
		{"negative timeout", "REQUEST_TIMEOUT", "-1s"},
		{"concurrency", "AUTOFILL_CONCURRENCY", "many"},
		{"path style", "STORAGE_USE_PATH_STYLE", "sometimes"},
		{"missing secret", "JWT_SECRET", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setProduction(t)
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.key)
		})
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, "production", "warn")
	logger.Info("hidden")
	logger.Warn("shown", "k", "v")
	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.True(t, strings.HasPrefix(out, "{"))
	assert.Contains(t, out, `"k":"v"`)

	buf.Reset()
	logger = newLogger(&buf, "development", "")
	assert.False(t, logger.Enabled(context.Background(), slog.LevelDebug))
	logger.Info("text", "k", "v")
	assert.Contains(t, buf.String(), "k=v")
}
