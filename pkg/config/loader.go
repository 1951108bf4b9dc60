package config

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/shouni/scripic-kit/pkg/gateway"
	"github.com/shouni/scripic-kit/pkg/imgutil"
	"github.com/shouni/scripic-kit/pkg/studio"
	"github.com/spf13/viper"
)

// EnvPrefix は環境変数のプレフィックスです（例: SCRIPIC_SERVER_PORT）。
const EnvPrefix = "SCRIPIC"

var placeholder = regexp.MustCompile(`\${(\w+)(:([^}]*))?}`)

// Load は設定を読み込みます。
// 優先順位は 既定値 -> 設定ファイル（path が空なら省略） -> 環境変数 です。
// API キーは SCRIPIC_GEMINI_API_KEY のほか GEMINI_API_KEY と API_KEY も参照します。
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	if path != "" {
		if err := loadConfigFile(v, path); err != nil {
			return nil, err
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("gemini.api_key", EnvPrefix+"_GEMINI_API_KEY", "GEMINI_API_KEY", "API_KEY"); err != nil {
		return nil, fmt.Errorf("環境変数のバインドに失敗しました: %w", err)
	}

	setDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("設定の解析に失敗しました: %w", err)
	}
	cfg.Gemini.Transport = strings.ToLower(cfg.Gemini.Transport)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// loadConfigFile はファイルを読み込み、${VAR:default} を展開してから viper に渡します。
func loadConfigFile(v *viper.Viper, path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("設定ファイル %s の読み込みに失敗しました: %w", path, err)
	}
	if err := v.ReadConfig(strings.NewReader(expandEnv(string(content)))); err != nil {
		return fmt.Errorf("設定ファイル %s の解析に失敗しました: %w", path, err)
	}
	v.SetConfigFile(path)
	return nil
}

// expandEnv は ${VAR} と ${VAR:default} を環境変数の値に置き換えます。
// 未定義で既定値もない場合はそのまま残します。
func expandEnv(s string) string {
	return placeholder.ReplaceAllStringFunc(s, func(match string) string {
		sub := placeholder.FindStringSubmatch(match)
		if val, ok := os.LookupEnv(sub[1]); ok {
			return val
		}
		if sub[2] != "" {
			return sub[3]
		}
		return match
	})
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("gemini.api_key", "")
	v.SetDefault("gemini.endpoint", gateway.DefaultEndpoint)
	v.SetDefault("gemini.image_model", studio.DefaultImageModel)
	v.SetDefault("gemini.text_model", studio.DefaultTextModel)
	v.SetDefault("gemini.transport", TransportSDK)
	v.SetDefault("gemini.http_timeout", "120s")
	v.SetDefault("gemini.skip_network_validation", false)

	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.allowed_origins", []string{"*"})
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "180s")
	v.SetDefault("server.shutdown_timeout", "10s")

	v.SetDefault("assets.enabled", true)
	v.SetDefault("assets.cache_size", 128)
	v.SetDefault("assets.cache_ttl", "1h")
	v.SetDefault("assets.compression", true)
	v.SetDefault("assets.quality", imgutil.DefaultQuality)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
}
