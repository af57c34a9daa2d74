package cli

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/babylonlabs-io/staking-reward-distributor/internal/api"
	"github.com/babylonlabs-io/staking-reward-distributor/internal/observability/metrics"
	"github.com/babylonlabs-io/staking-reward-distributor/internal/observability/tracing"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 15 * time.Second

func StartServerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "start-server",
		Short: "Starts the reward distributor API server and claim poller",
		Args:  cobra.ExactArgs(0),
		RunE:  startServer,
	}

	return cmd
}

func startServer(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ctx = tracing.InjectTraceID(ctx)
	log := log.Ctx(ctx)

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// initialize metrics with the metrics port from config
	metrics.Init(cfg.Metrics.GetMetricsPort())

	c, err := newComponents(ctx, cfg)
	if err != nil {
		return err
	}

	c.service.StartClaimPoller(ctx)

	server := api.New(&cfg.Server, c.service)
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	select {
	case <-ctx.Done():
		log.Info().Msg("shutdown signal received")
	case err = <-errCh:
		if err != nil {
			log.Error().Err(err).Msg("API server stopped")
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if shutdownErr := server.Shutdown(shutdownCtx); shutdownErr != nil {
		log.Warn().Err(shutdownErr).Msg("error while shutting down API server")
	}
	c.close(shutdownCtx)

	return err
}
