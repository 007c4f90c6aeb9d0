package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/opyruso/nw-leaderboard-sub000/server"
)

func newServeCmd(configPath *string) *cobra.Command {
	var listenAddr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve graph sessions over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, client, err := setup(*configPath, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			slog.SetDefault(logger)
			if listenAddr != "" {
				cfg.Server.ListenAddr = listenAddr
			}

			if lvl, _ := cfg.Log.SlogLevel(); lvl <= slog.LevelDebug {
				gin.SetMode(gin.DebugMode)
			} else {
				gin.SetMode(gin.ReleaseMode)
			}

			srv := server.New(client,
				server.WithLogger(logger),
				server.WithServiceName(cfg.Server.ServiceName),
				server.WithIdleTimeout(cfg.Server.SessionIdleTimeout),
			)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			logger.Info("starting nwgraph",
				"version", version,
				"backend", cfg.Backend.URL,
				"listen_addr", cfg.Server.ListenAddr,
			)

			return srv.Run(ctx, cfg.Server.ListenAddr)
		},
	}
	cmd.Flags().StringVar(&listenAddr, "listen", "", "Listen address (overrides server.listen_addr)")

	return cmd
}
