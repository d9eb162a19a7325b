// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"

	"github.com/MKhiriev/go-spend-keeper/internal/adapter"
	"github.com/MKhiriev/go-spend-keeper/internal/logger"
	"github.com/MKhiriev/go-spend-keeper/internal/store"
)

// ClientServices aggregates the client-side service layer.
type ClientServices struct {
	QueueService   ClientQueueService
	SyncService    ClientSyncService
	RefreshService ClientRefreshService
	SyncJob        ClientSyncJob
	Monitor        ConnectivityMonitor
}

// NewClientServices wires the client service layer around the local queue and
// the server adapter. The connectivity monitor is registered to kick off an
// immediate drain whenever the client transitions back online, so captured
// writes replay without waiting for the next sync tick.
func NewClientServices(storages *store.ClientStorages, serverAdapter adapter.ServerAdapter, logger *logger.Logger) *ClientServices {
	monitor := NewConnectivityMonitor(serverAdapter, logger)
	queueService := NewClientQueueService(storages.QueueRepository, serverAdapter, monitor, logger)
	syncService := NewClientSyncService(storages.QueueRepository, serverAdapter, monitor, logger)
	refreshService := NewClientRefreshService(syncService, serverAdapter, monitor, logger)
	syncJob := NewClientSyncJob(syncService)

	monitor.OnOnline(func() {
		go func() {
			// ErrDrainInProgress means a running drain already picked up the
			// rerun request, nothing to report.
			if _, err := syncService.Drain(context.Background()); err != nil && !errors.Is(err, ErrDrainInProgress) {
				logger.Warn().Str("func", "NewClientServices").Err(err).Msg("drain after reconnect failed")
			}
		}()
	})

	return &ClientServices{
		QueueService:   queueService,
		SyncService:    syncService,
		RefreshService: refreshService,
		SyncJob:        syncJob,
		Monitor:        monitor,
	}
}
