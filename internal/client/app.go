package client

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/go-spend-keeper/internal/adapter"
	"github.com/MKhiriev/go-spend-keeper/internal/config"
	"github.com/MKhiriev/go-spend-keeper/internal/logger"
	"github.com/MKhiriev/go-spend-keeper/internal/service"
	"github.com/MKhiriev/go-spend-keeper/internal/store"
)

// App is the client agent. It keeps the durable queue draining towards the
// server for as long as the process runs.
type App struct {
	services *service.ClientServices
	cfg      *config.ClientConfig
	logger   *logger.Logger
}

func NewApp(cfg *config.ClientConfig, logger *logger.Logger) (*App, error) {
	storages, err := store.NewClientStorages(cfg.Storage, logger)
	if err != nil {
		return nil, fmt.Errorf("create client storages: %w", err)
	}

	serverAdapter, err := adapter.NewHTTPServerAdapter(cfg.Adapter, logger)
	if err != nil {
		return nil, fmt.Errorf("create server adapter: %w", err)
	}

	svcs := service.NewClientServices(storages, serverAdapter, logger)

	return &App{services: svcs, cfg: cfg, logger: logger}, nil
}

// Run starts the connectivity probe and the periodic drain, then blocks
// until the process receives a stop signal.
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGQUIT,
	)
	defer stop()

	a.services.Monitor.Start(ctx, a.cfg.Workers.ProbeInterval)
	defer a.services.Monitor.Stop()

	a.services.SyncJob.Start(ctx, a.cfg.Workers.SyncInterval)
	defer a.services.SyncJob.Stop()

	if pending, err := a.services.QueueService.Pending(ctx); err == nil && pending > 0 {
		a.logger.Info().Int("pending", pending).Msg("queued writes waiting from a previous run")
	}

	// SIGHUP is the user-initiated refresh: push pending writes, rebuild
	// the server cache, pull the listing back
	refresh := make(chan os.Signal, 1)
	signal.Notify(refresh, syscall.SIGHUP)
	defer signal.Stop(refresh)

	for {
		select {
		case <-refresh:
			resp, err := a.services.RefreshService.Refresh(ctx)
			if err != nil {
				a.logger.Warn().Err(err).Msg("refresh failed")
				continue
			}
			a.logger.Info().Int("records", resp.Total).Msg("refreshed from server")
		case <-ctx.Done():
			a.logger.Info().Msg("client agent shutting down")
			return nil
		}
	}
}
