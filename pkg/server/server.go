// Package server はワークフローを HTTP API (POST /api/gemini) として公開します。
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shouni/scripic-kit/pkg/domain"
	"github.com/shouni/scripic-kit/pkg/gateway"
)

// APIPath はワークフロー実行のエンドポイントです。
const APIPath = "/api/gemini"

// Runner はワークフローを実行します。studio.Studio が満たします。
type Runner interface {
	Run(ctx context.Context, req domain.Request) (domain.Result, error)
}

// Options はサーバーの設定です。
type Options struct {
	Credentials    gateway.Credentials
	AllowedOrigins []string
	// Registry が nil の場合は新しいレジストリを作成します。
	Registry *prometheus.Registry
}

// Server は gin のルーターとワークフローの実行系をまとめたものです。
type Server struct {
	engine      *gin.Engine
	runner      Runner
	credentials gateway.Credentials
	metrics     *Metrics
}

// New はルーティングとミドルウェアを設定した Server を作成します。
func New(runner Runner, opts Options) (*Server, error) {
	if runner == nil {
		return nil, fmt.Errorf("runner is required")
	}
	reg := opts.Registry
	if reg == nil {
		reg = prometheus.NewRegistry()
	}

	engine := gin.New()
	engine.HandleMethodNotAllowed = true

	s := &Server{
		engine:      engine,
		runner:      runner,
		credentials: opts.Credentials,
		metrics:     NewMetrics(reg),
	}

	engine.Use(recovery(), requestID(), corsMiddleware(opts.AllowedOrigins))
	engine.NoMethod(func(c *gin.Context) {
		c.AbortWithStatusJSON(http.StatusMethodNotAllowed, errorBody{
			Error: "Método no permitido.",
			Kind:  domain.KindConfiguration.String(),
		})
	})

	engine.POST(APIPath, s.handleGemini)
	// Origin のない OPTIONS は CORS ミドルウェアを素通りするため、ここで 200 を返す。
	engine.OPTIONS(APIPath, func(c *gin.Context) { c.Status(http.StatusOK) })
	engine.GET("/healthz", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))
	return s, nil
}

// Handler は http.Handler として Server を返します。
func (s *Server) Handler() http.Handler {
	return s.engine
}

// ListenAndServe は addr で待ち受け、ctx がキャンセルされると shutdownTimeout 以内に停止します。
func (s *Server) ListenAndServe(ctx context.Context, addr string, readTimeout, writeTimeout, shutdownTimeout time.Duration) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.engine,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.InfoContext(ctx, "HTTP サーバーを起動します", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("HTTP サーバーの起動に失敗しました: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	slog.InfoContext(ctx, "HTTP サーバーを停止します")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("HTTP サーバーの停止に失敗しました: %w", err)
	}
	return nil
}
