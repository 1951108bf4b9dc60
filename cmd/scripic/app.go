package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/shouni/go-http-kit/pkg/httpkit"
	"github.com/shouni/scripic-kit/pkg/asset"
	"github.com/shouni/scripic-kit/pkg/config"
	"github.com/shouni/scripic-kit/pkg/gateway"
	"github.com/shouni/scripic-kit/pkg/logging"
	"github.com/shouni/scripic-kit/pkg/studio"
)

// app はコマンド間で共有する設定と依存関係です。
type app struct {
	configPath string
	cfg        *config.Config
	logger     *slog.Logger

	// newGateway はテストで差し替えます。
	newGateway func(ctx context.Context, cfg *config.Config) (gateway.Gateway, error)
}

func newApp() *app {
	return &app{newGateway: defaultGateway}
}

// load は設定を読み込み、既定ロガーを設定します。
func (a *app) load(logOut io.Writer) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = logging.Setup(logOut, cfg.Log.SlogLevel(), cfg.Log.Format)
	return nil
}

// defaultGateway は設定の transport に応じた Gateway を返します。
// 実際のクライアント生成は最初の呼び出しまで遅延します。
func defaultGateway(ctx context.Context, cfg *config.Config) (gateway.Gateway, error) {
	creds := cfg.Credentials()
	switch cfg.Gemini.Transport {
	case config.TransportHTTP:
		client := httpkit.New(cfg.Gemini.HTTPTimeout,
			httpkit.WithSkipNetworkValidation(cfg.Gemini.SkipNetworkValidation))
		return gateway.NewLazy(func(ctx context.Context) (gateway.Gateway, error) {
			return gateway.NewHTTPGateway(client, creds)
		}), nil
	case config.TransportSDK:
		return gateway.NewLazy(func(ctx context.Context) (gateway.Gateway, error) {
			return gateway.NewGenAIGateway(ctx, creds)
		}), nil
	default:
		return nil, fmt.Errorf("未対応の transport です: %s", cfg.Gemini.Transport)
	}
}

// buildStudio は設定から Studio を組み立てます。
func (a *app) buildStudio(ctx context.Context) (*studio.Studio, error) {
	gw, err := a.newGateway(ctx, a.cfg)
	if err != nil {
		return nil, err
	}

	var opts []studio.Option
	if a.cfg.Assets.Enabled {
		loader, err := a.buildAssetLoader()
		if err != nil {
			return nil, err
		}
		opts = append(opts, studio.WithAssetLoader(loader))
	}
	return studio.New(a.cfg.StudioConfig(), gw, opts...)
}

// buildAssetLoader は参照画像の Loader を組み立てます。
func (a *app) buildAssetLoader() (*asset.Loader, error) {
	cache, err := asset.NewLRUCache(a.cfg.Assets.CacheSize)
	if err != nil {
		return nil, err
	}
	return asset.NewLoader(
		httpkit.New(a.cfg.Gemini.HTTPTimeout),
		nil,
		cache,
		a.cfg.Assets.CacheTTL,
		asset.WithCompression(a.cfg.Assets.Compression, a.cfg.Assets.Quality),
	)
}
