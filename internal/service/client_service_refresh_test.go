// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"testing"

	"github.com/MKhiriev/go-spend-keeper/internal/logger"
	"github.com/MKhiriev/go-spend-keeper/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSyncService struct {
	drainFn func(ctx context.Context) (models.DrainReport, error)
}

func (s *stubSyncService) Drain(ctx context.Context) (models.DrainReport, error) {
	return s.drainFn(ctx)
}

func TestRefresh_DrainsThenHydratesThenFetches(t *testing.T) {
	var steps []string

	sync := &stubSyncService{
		drainFn: func(_ context.Context) (models.DrainReport, error) {
			steps = append(steps, "drain")
			return models.DrainReport{}, nil
		},
	}
	serverAdapter := &stubServerAdapter{
		hydrateFn: func(_ context.Context) error {
			steps = append(steps, "hydrate")
			return nil
		},
		recordsFn: func(_ context.Context, _ models.RecordQuery) (models.RecordsResponse, error) {
			steps = append(steps, "records")
			return models.RecordsResponse{Total: 7}, nil
		},
	}

	svc := NewClientRefreshService(sync, serverAdapter, &stubMonitor{online: true}, logger.Nop())

	resp, err := svc.Refresh(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"drain", "hydrate", "records"}, steps)
	assert.Equal(t, 7, resp.Total)
}

func TestRefresh_OfflineShortCircuits(t *testing.T) {
	sync := &stubSyncService{
		drainFn: func(_ context.Context) (models.DrainReport, error) {
			t.Fatal("an offline refresh must not drain")
			return models.DrainReport{}, nil
		},
	}

	svc := NewClientRefreshService(sync, &stubServerAdapter{}, &stubMonitor{}, logger.Nop())

	_, err := svc.Refresh(context.Background())
	require.ErrorIs(t, err, ErrClientOffline)
}

// A failed drain is a warning, not a blocker: the server's current state is
// still worth fetching.
func TestRefresh_DrainFailureStillRefreshes(t *testing.T) {
	sync := &stubSyncService{
		drainFn: func(_ context.Context) (models.DrainReport, error) {
			return models.DrainReport{}, errors.New("queue unreadable")
		},
	}
	serverAdapter := &stubServerAdapter{
		hydrateFn: func(_ context.Context) error { return nil },
		recordsFn: func(_ context.Context, _ models.RecordQuery) (models.RecordsResponse, error) {
			return models.RecordsResponse{Total: 2}, nil
		},
	}

	svc := NewClientRefreshService(sync, serverAdapter, &stubMonitor{online: true}, logger.Nop())

	resp, err := svc.Refresh(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Total)
}

func TestRefresh_HydrationFailure(t *testing.T) {
	sync := &stubSyncService{
		drainFn: func(_ context.Context) (models.DrainReport, error) { return models.DrainReport{}, nil },
	}
	serverAdapter := &stubServerAdapter{
		hydrateFn: func(_ context.Context) error { return errors.New("server error") },
	}

	svc := NewClientRefreshService(sync, serverAdapter, &stubMonitor{online: true}, logger.Nop())

	_, err := svc.Refresh(context.Background())
	require.Error(t, err)
}

func TestRefresh_RecordsFetchFailure(t *testing.T) {
	sync := &stubSyncService{
		drainFn: func(_ context.Context) (models.DrainReport, error) { return models.DrainReport{}, nil },
	}
	serverAdapter := &stubServerAdapter{
		hydrateFn: func(_ context.Context) error { return nil },
		recordsFn: func(_ context.Context, _ models.RecordQuery) (models.RecordsResponse, error) {
			return models.RecordsResponse{}, errors.New("listing unavailable")
		},
	}

	svc := NewClientRefreshService(sync, serverAdapter, &stubMonitor{online: true}, logger.Nop())

	_, err := svc.Refresh(context.Background())
	require.Error(t, err)
}
