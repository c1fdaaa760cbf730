package config

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raphaelgruber/ideascope/internal/recovery"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("IDEASCOPE_CONFIG", "")
	t.Setenv("IDEASCOPE_LLM_PROVIDER", "")
	t.Setenv("IDEASCOPE_LLM_MODEL", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ProviderOllama, cfg.LLMProvider)
	assert.Equal(t, "llama3.2", cfg.LLMModel)
	assert.Equal(t, 45*time.Second, cfg.CompletionTimeout)
	assert.InDelta(t, 0.2, cfg.Temperature, 1e-9)
	assert.Equal(t, recovery.AllowFallback, cfg.SnapshotPolicy)
	assert.Equal(t, 8*time.Second, cfg.ProviderTimeout)
	assert.Equal(t, 3, cfg.ProviderConcurrency)
	assert.Equal(t, ":8484", cfg.HTTPAddr)
	assert.Equal(t, 2*time.Minute, cfg.ClientTimeout)
	assert.False(t, cfg.DBEnabled)
}

func TestLoadEnvironment(t *testing.T) {
	t.Setenv("IDEASCOPE_CONFIG", "")
	t.Setenv("IDEASCOPE_LLM_PROVIDER", "Anthropic")
	t.Setenv("IDEASCOPE_STAGE2_FALLBACK", "strict")
	t.Setenv("IDEASCOPE_PROVIDER_TIMEOUT", "3s")
	t.Setenv("IDEASCOPE_ARXIV_ENABLED", "true")
	t.Setenv("IDEASCOPE_SERVER_URL", "http://ideas.example/")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ProviderAnthropic, cfg.LLMProvider)
	assert.Equal(t, "claude-3-5-haiku-latest", cfg.LLMModel)
	assert.Equal(t, recovery.Strict, cfg.Policy("stage2"))
	assert.Equal(t, recovery.AllowFallback, cfg.Policy("stage1"))
	assert.Equal(t, 3*time.Second, cfg.ProviderTimeout)
	assert.True(t, cfg.ArxivEnabled)
	assert.Equal(t, "http://ideas.example", cfg.ServerURL)
}

func TestLoadFileWithEnvironmentOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ideascope.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
IDEASCOPE_LLM_PROVIDER: openai
IDEASCOPE_LLM_MODEL: gpt-4o
IDEASCOPE_CACHE_SIZE: "64"
IDEASCOPE_HTTP_ADDR: ":9000"
`), 0o644))

	t.Setenv("IDEASCOPE_CONFIG", path)
	t.Setenv("IDEASCOPE_LLM_PROVIDER", "")
	t.Setenv("IDEASCOPE_LLM_MODEL", "")
	t.Setenv("IDEASCOPE_HTTP_ADDR", ":7000")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ProviderOpenAI, cfg.LLMProvider)
	assert.Equal(t, "gpt-4o", cfg.LLMModel)
	assert.Equal(t, 64, cfg.CacheSize)
	assert.Equal(t, ":7000", cfg.HTTPAddr, "environment wins over file")
}

func TestLoadErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		t.Setenv("IDEASCOPE_CONFIG", filepath.Join(t.TempDir(), "nope.yaml"))
		_, err := Load()
		assert.ErrorContains(t, err, "read config file")
	})

	t.Run("bad values", func(t *testing.T) {
		t.Setenv("IDEASCOPE_CONFIG", "")
		t.Setenv("IDEASCOPE_LLM_PROVIDER", "")
		t.Setenv("IDEASCOPE_PROVIDER_TIMEOUT", "soon")
		t.Setenv("IDEASCOPE_STAGE1_FALLBACK", "maybe")
		_, err := Load()
		require.Error(t, err)
		assert.ErrorContains(t, err, "IDEASCOPE_PROVIDER_TIMEOUT")
		assert.ErrorContains(t, err, "IDEASCOPE_STAGE1_FALLBACK")
	})

	t.Run("unknown provider", func(t *testing.T) {
		t.Setenv("IDEASCOPE_CONFIG", "")
		t.Setenv("IDEASCOPE_LLM_PROVIDER", "gemini")
		_, err := Load()
		assert.ErrorContains(t, err, "unsupported provider")
	})
}

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseLogLevel("debug"))
	assert.Equal(t, slog.LevelWarn, parseLogLevel("WARNING"))
	assert.Equal(t, slog.LevelError, parseLogLevel("ERROR"))
	assert.Equal(t, slog.LevelInfo, parseLogLevel("loud"))
}

func TestSetupLoggerWithWriters(t *testing.T) {
	var stderr, file bytes.Buffer
	logger := SetupLoggerWithWriters(&stderr, &file, LogOutput{Level: slog.LevelInfo})

	logger.Debug("hidden")
	logger.Info("evidence collected", "count", 3)

	assert.Contains(t, stderr.String(), "msg=\"evidence collected\" count=3")
	assert.Contains(t, file.String(), `"msg":"evidence collected","count":3`)
	assert.NotContains(t, file.String(), "hidden")
}

func TestSetupLoggerQuietTerminal(t *testing.T) {
	var stderr, file bytes.Buffer
	logger := SetupLoggerWithWriters(&stderr, &file, LogOutput{Level: slog.LevelDebug, Terminal: slog.LevelWarn})

	logger.Debug("prompt built", "stage", "stage1")
	logger.Warn("provider failed", "provider", "openalex")

	assert.NotContains(t, stderr.String(), "prompt built")
	assert.Contains(t, stderr.String(), "provider failed")
	assert.Contains(t, file.String(), "prompt built")
	assert.Contains(t, file.String(), "provider failed")
}

func TestConfigOutput(t *testing.T) {
	cfg := Config{LogFile: "/tmp/ideascope.log", LogLevel: slog.LevelDebug}
	assert.Equal(t, LogOutput{File: "/tmp/ideascope.log", Level: slog.LevelDebug, Terminal: slog.LevelDebug}, cfg.Output())
}

func TestSetupLoggerFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ideascope.log")
	logger, cleanup := SetupLogger(LogOutput{File: path, Level: slog.LevelInfo})
	logger.Info("server started")
	require.NoError(t, cleanup())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "server started")
}
