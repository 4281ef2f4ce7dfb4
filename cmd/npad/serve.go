package main

import (
	"github.com/novetrasys/npad/internal/server"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func serveCmd(a *app) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the calculator as a JSON HTTP API",
		Long: `Serve the calculator over HTTP until interrupted.

Routes (under /api/v1): GET healthz, GET version, GET presets,
GET presets/{name}, POST evaluate, POST sensitivity.

The listen address, timeouts and body limit come from the settings file or
NPAD_SERVER_* environment variables; --addr overrides the address.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings := a.settings.Server
			if addr != "" {
				settings.Address = addr
			}

			api := server.NewWebAPI(a.logger, server.Config{
				Addr:            settings.Address,
				ShutdownTimeout: settings.ShutdownTimeout,
				ReadTimeout:     settings.ReadTimeout,
				WriteTimeout:    settings.WriteTimeout,
				MaxBodyBytes:    settings.MaxBodyBytes,
				Build:           server.BuildInfo{Version: version, Commit: commit, Date: date},
				Dependencies: server.Dependencies{
					Engine:  a.engine(),
					Presets: a.presets,
					Policy:  a.settings.ReviewPolicy.Policy(),
				},
			})

			a.logger.Info("serving calculator API",
				zap.String("addr", settings.Address),
				zap.String("version", version))
			return api.Start(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address, e.g. :8080 (defaults to the settings address)")
	return cmd
}
