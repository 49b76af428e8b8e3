package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/chengchew0204/Sunique-Assemble-Display/internal/config"
	"github.com/chengchew0204/Sunique-Assemble-Display/internal/graph"
	"github.com/chengchew0204/Sunique-Assemble-Display/internal/schedule"
	"github.com/chengchew0204/Sunique-Assemble-Display/internal/server"
)

var flagPort int

// newServeCmd builds the serve command, the service's main mode.
func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the schedule HTTP service",
		RunE:  runServe,
	}

	cmd.Flags().IntVar(&flagPort, "port", config.DefaultPort, "listen port")

	return cmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	logger := buildLogger(cfg)
	slog.SetDefault(logger)

	httpClient := newHTTPClient(cfg)

	creds := graph.NewCredentialProvider(
		graph.TokenURL(cfg.TenantID), cfg.ClientID, cfg.ClientSecret, httpClient, logger)
	pipeline := schedule.New(cfg, creds, httpClient, logger)
	srv := server.New(cfg, pipeline, logger)

	ctx := shutdownContext(cmd.Context(), logger)

	return srv.Run(ctx)
}
