// Package config はアプリケーション設定を viper で読み込みます。
package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/shouni/scripic-kit/pkg/gateway"
	"github.com/shouni/scripic-kit/pkg/studio"
)

// Transport の種類
const (
	TransportSDK  = "sdk"
	TransportHTTP = "http"
)

// Config は設定のルートです。
type Config struct {
	Gemini GeminiConfig `yaml:"gemini" mapstructure:"gemini"`
	Server ServerConfig `yaml:"server" mapstructure:"server"`
	Assets AssetsConfig `yaml:"assets" mapstructure:"assets"`
	Log    LogConfig    `yaml:"log" mapstructure:"log"`
}

// GeminiConfig はモデル呼び出しの設定です。
type GeminiConfig struct {
	APIKey     string `yaml:"api_key" mapstructure:"api_key"`
	Endpoint   string `yaml:"endpoint" mapstructure:"endpoint"`
	ImageModel string `yaml:"image_model" mapstructure:"image_model"`
	TextModel  string `yaml:"text_model" mapstructure:"text_model"`
	// Transport は "sdk"（genai クライアント）または "http"（REST 直接呼び出し）です。
	Transport   string        `yaml:"transport" mapstructure:"transport"`
	HTTPTimeout time.Duration `yaml:"http_timeout" mapstructure:"http_timeout"`
	// SkipNetworkValidation はプライベートネットワーク上のプロキシを endpoint にする場合に有効にします。
	SkipNetworkValidation bool `yaml:"skip_network_validation" mapstructure:"skip_network_validation"`
}

// ServerConfig は HTTP API サーバーの設定です。
type ServerConfig struct {
	Host            string        `yaml:"host" mapstructure:"host"`
	Port            int           `yaml:"port" mapstructure:"port"`
	AllowedOrigins  []string      `yaml:"allowed_origins" mapstructure:"allowed_origins"`
	ReadTimeout     time.Duration `yaml:"read_timeout" mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout" mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" mapstructure:"shutdown_timeout"`
}

// Addr は listen するアドレスを返します。
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// AssetsConfig は参照画像の取得設定です。
type AssetsConfig struct {
	Enabled     bool          `yaml:"enabled" mapstructure:"enabled"`
	CacheSize   int           `yaml:"cache_size" mapstructure:"cache_size"`
	CacheTTL    time.Duration `yaml:"cache_ttl" mapstructure:"cache_ttl"`
	Compression bool          `yaml:"compression" mapstructure:"compression"`
	Quality     int           `yaml:"quality" mapstructure:"quality"`
}

// LogConfig はロガーの設定です。
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// SlogLevel は Level を slog.Level に変換します。不明な値は Info になります。
func (l LogConfig) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return slog.LevelInfo
	}
	return level
}

// Credentials は Gateway に渡す認証情報を返します。
func (c *Config) Credentials() gateway.Credentials {
	return gateway.Credentials{APIKey: c.Gemini.APIKey, Endpoint: c.Gemini.Endpoint}
}

// StudioConfig は studio.New に渡す設定を返します。
func (c *Config) StudioConfig() studio.Config {
	return studio.Config{
		Credentials: c.Credentials(),
		ImageModel:  c.Gemini.ImageModel,
		TextModel:   c.Gemini.TextModel,
	}
}

// Validate は値の組み合わせを検証します。API キーの有無はワークフロー実行時に確認します。
func (c *Config) Validate() error {
	switch strings.ToLower(c.Gemini.Transport) {
	case TransportSDK, TransportHTTP:
	default:
		return fmt.Errorf("gemini.transport は %q または %q を指定してください: %q", TransportSDK, TransportHTTP, c.Gemini.Transport)
	}
	if strings.TrimSpace(c.Gemini.Endpoint) == "" {
		return fmt.Errorf("gemini.endpoint が空です")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port が範囲外です: %d", c.Server.Port)
	}
	if c.Assets.Quality < 1 || c.Assets.Quality > 100 {
		return fmt.Errorf("assets.quality は 1〜100 で指定してください: %d", c.Assets.Quality)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("log.format は text または json を指定してください: %q", c.Log.Format)
	}
	return nil
}
