// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-spend-keeper/internal/adapter"
	"github.com/MKhiriev/go-spend-keeper/internal/logger"
	"github.com/MKhiriev/go-spend-keeper/models"
)

type clientRefreshService struct {
	sync    ClientSyncService
	adapter adapter.ServerAdapter
	monitor ConnectivityMonitor

	logger *logger.Logger
}

func NewClientRefreshService(sync ClientSyncService, serverAdapter adapter.ServerAdapter, monitor ConnectivityMonitor, logger *logger.Logger) ClientRefreshService {
	return &clientRefreshService{
		sync:    sync,
		adapter: serverAdapter,
		monitor: monitor,
		logger:  logger,
	}
}

// Refresh implements [ClientRefreshService]. Pending writes are pushed first
// so the listing that comes back includes them; a failed drain downgrades to
// a warning because a refresh of whatever the server has is still useful.
func (s *clientRefreshService) Refresh(ctx context.Context) (models.RecordsResponse, error) {
	log := logger.FromContext(ctx)

	if !s.monitor.Check(ctx) {
		return models.RecordsResponse{}, ErrClientOffline
	}

	if _, err := s.sync.Drain(ctx); err != nil && !errors.Is(err, ErrDrainInProgress) {
		log.Warn().
			Err(err).
			Str("func", "clientRefreshService.Refresh").
			Msg("drain before refresh failed, refreshing anyway")
	}

	if err := s.adapter.RequestHydration(ctx); err != nil {
		return models.RecordsResponse{}, fmt.Errorf("request hydration: %w", err)
	}

	resp, err := s.adapter.GetRecords(ctx, models.RecordQuery{})
	if err != nil {
		return models.RecordsResponse{}, fmt.Errorf("fetch refreshed records: %w", err)
	}

	log.Info().
		Str("func", "clientRefreshService.Refresh").
		Int("records", resp.Total).
		Msg("refresh complete")

	return resp, nil
}
