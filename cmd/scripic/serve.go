package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/shouni/scripic-kit/pkg/server"
	"github.com/spf13/cobra"
)

func newServeCmd(a *app) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "HTTP API サーバーを起動します",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			st, err := a.buildStudio(ctx)
			if err != nil {
				return err
			}

			if a.cfg.Log.Level != "debug" {
				gin.SetMode(gin.ReleaseMode)
			}
			reg := prometheus.NewRegistry()
			reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

			srv, err := server.New(st, server.Options{
				Credentials:    a.cfg.Credentials(),
				AllowedOrigins: a.cfg.Server.AllowedOrigins,
				Registry:       reg,
			})
			if err != nil {
				return err
			}

			if addr == "" {
				addr = a.cfg.Server.Addr()
			}
			sc := a.cfg.Server
			return srv.ListenAndServe(ctx, addr, sc.ReadTimeout, sc.WriteTimeout, sc.ShutdownTimeout)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "待ち受けアドレス（省略時は設定の server.host:server.port）")
	return cmd
}
