package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shouni/scripic-kit/pkg/gateway"
	"github.com/shouni/scripic-kit/pkg/studio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearCredentialEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"SCRIPIC_GEMINI_API_KEY", "GEMINI_API_KEY", "API_KEY"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	clearCredentialEnv(t)

	cfg, err := Load("")

	require.NoError(t, err)
	assert.Empty(t, cfg.Gemini.APIKey)
	assert.Equal(t, gateway.DefaultEndpoint, cfg.Gemini.Endpoint)
	assert.Equal(t, studio.DefaultImageModel, cfg.Gemini.ImageModel)
	assert.Equal(t, studio.DefaultTextModel, cfg.Gemini.TextModel)
	assert.Equal(t, TransportSDK, cfg.Gemini.Transport)
	assert.Equal(t, 120*time.Second, cfg.Gemini.HTTPTimeout)
	assert.False(t, cfg.Gemini.SkipNetworkValidation)
	assert.Equal(t, "0.0.0.0:8080", cfg.Server.Addr())
	assert.Equal(t, []string{"*"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, time.Hour, cfg.Assets.CacheTTL)
	assert.Equal(t, 75, cfg.Assets.Quality)
	assert.Equal(t, slog.LevelInfo, cfg.Log.SlogLevel())
}

func TestLoad_Environment(t *testing.T) {
	t.Run("プレフィックス付きの環境変数で上書きできる", func(t *testing.T) {
		clearCredentialEnv(t)
		t.Setenv("SCRIPIC_SERVER_PORT", "9090")
		t.Setenv("SCRIPIC_GEMINI_TRANSPORT", "HTTP")
		t.Setenv("SCRIPIC_LOG_LEVEL", "debug")
		t.Setenv("SCRIPIC_GEMINI_SKIP_NETWORK_VALIDATION", "true")

		cfg, err := Load("")

		require.NoError(t, err)
		assert.True(t, cfg.Gemini.SkipNetworkValidation)
		assert.Equal(t, 9090, cfg.Server.Port)
		assert.Equal(t, TransportHTTP, cfg.Gemini.Transport)
		assert.Equal(t, slog.LevelDebug, cfg.Log.SlogLevel())
	})

	t.Run("API_KEY からも認証情報を読み込む", func(t *testing.T) {
		clearCredentialEnv(t)
		t.Setenv("API_KEY", "legacy-key")

		cfg, err := Load("")

		require.NoError(t, err)
		assert.Equal(t, "legacy-key", cfg.Credentials().APIKey)
		assert.NoError(t, cfg.Credentials().Validate())
	})

	t.Run("GEMINI_API_KEY は API_KEY より優先される", func(t *testing.T) {
		clearCredentialEnv(t)
		t.Setenv("GEMINI_API_KEY", "gemini-key")
		t.Setenv("API_KEY", "legacy-key")

		cfg, err := Load("")

		require.NoError(t, err)
		assert.Equal(t, "gemini-key", cfg.StudioConfig().Credentials.APIKey)
	})
}

func TestLoad_File(t *testing.T) {
	t.Run("プレースホルダーを展開して読み込む", func(t *testing.T) {
		clearCredentialEnv(t)
		t.Setenv("SCRIPIC_TEST_MODEL", "gemini-custom")
		path := writeConfig(t, `
gemini:
  text_model: ${SCRIPIC_TEST_MODEL}
  image_model: ${SCRIPIC_TEST_UNSET:gemini-image-default}
server:
  port: 7000
  allowed_origins:
    - https://app.example.com
assets:
  cache_ttl: 5m
log:
  format: json
`)

		cfg, err := Load(path)

		require.NoError(t, err)
		assert.Equal(t, "gemini-custom", cfg.Gemini.TextModel)
		assert.Equal(t, "gemini-image-default", cfg.Gemini.ImageModel)
		assert.Equal(t, 7000, cfg.Server.Port)
		assert.Equal(t, []string{"https://app.example.com"}, cfg.Server.AllowedOrigins)
		assert.Equal(t, 5*time.Minute, cfg.Assets.CacheTTL)
		assert.Equal(t, "json", cfg.Log.Format)
	})

	t.Run("環境変数はファイルより優先される", func(t *testing.T) {
		clearCredentialEnv(t)
		t.Setenv("SCRIPIC_SERVER_PORT", "7100")
		path := writeConfig(t, "server:\n  port: 7000\n")

		cfg, err := Load(path)

		require.NoError(t, err)
		assert.Equal(t, 7100, cfg.Server.Port)
	})

	t.Run("存在しないファイルはエラー", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
		assert.Error(t, err)
	})

	t.Run("不正な transport はエラー", func(t *testing.T) {
		clearCredentialEnv(t)
		path := writeConfig(t, "gemini:\n  transport: grpc\n")

		_, err := Load(path)
		assert.ErrorContains(t, err, "gemini.transport")
	})
}

func TestExpandEnv(t *testing.T) {
	t.Setenv("SCRIPIC_EXPAND_A", "valor")

	assert.Equal(t, "x: valor", expandEnv("x: ${SCRIPIC_EXPAND_A}"))
	assert.Equal(t, "x: def", expandEnv("x: ${SCRIPIC_EXPAND_MISSING:def}"))
	assert.Equal(t, "x: ", expandEnv("x: ${SCRIPIC_EXPAND_MISSING:}"))
	assert.Equal(t, "x: ${SCRIPIC_EXPAND_MISSING}", expandEnv("x: ${SCRIPIC_EXPAND_MISSING}"))
}

func TestLogConfig_SlogLevel(t *testing.T) {
	assert.Equal(t, slog.LevelWarn, LogConfig{Level: "warn"}.SlogLevel())
	assert.Equal(t, slog.LevelError, LogConfig{Level: "ERROR"}.SlogLevel())
	assert.Equal(t, slog.LevelInfo, LogConfig{Level: "verbose"}.SlogLevel())
}
