package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"taskfront/internal/api"
	"taskfront/internal/config"
	"taskfront/internal/server"
)

func newServeCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:     "serve",
		Aliases: []string{"srv"},
		Short:   "Run the taskfront web server",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg == nil {
				return fmt.Errorf("config not initialized")
			}
			if cfg.APIURL == "" {
				return fmt.Errorf("api url is required")
			}

			logger := slog.Default().With("component", "server")

			addr, err := server.ListenAddr(cfg.ListenAddr)
			if err != nil {
				return err
			}

			opts := server.Options{
				UpstreamURL:   cfg.APIURL,
				ShutdownDelay: cfg.ShutdownDelay.Duration,
			}
			if cfg.UseTLS() {
				opts.TLSCertFile = cfg.TLS.CertFile
				opts.TLSKeyFile = cfg.TLS.KeyFile
			} else if cfg.TLS.Enabled() {
				logger.Warn("tls files configured outside development; serving plain http", "env", cfg.Env)
			}

			logger.Info("using upstream task api", "url", cfg.APIURL, "env", cfg.Env)
			upstream := api.NewClient(cfg.APIURL).WithLogger(slog.Default().With("component", "upstream"))
			srv, err := server.New(addr, upstream, logger, opts)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(serveContext(cmd), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return srv.ListenAndServe(ctx)
		},
	}
}

func serveContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
