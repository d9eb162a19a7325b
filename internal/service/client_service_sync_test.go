// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/MKhiriev/go-spend-keeper/internal/adapter"
	"github.com/MKhiriev/go-spend-keeper/internal/logger"
	"github.com/MKhiriev/go-spend-keeper/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func queuedWrites(ids ...string) []models.QueuedWrite {
	base := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	writes := make([]models.QueuedWrite, 0, len(ids))
	for i, id := range ids {
		writes = append(writes, models.QueuedWrite{
			LocalID:    id,
			EntityKind: models.KindExpense,
			Payload:    []byte(`{"amount":"10"}`),
			EnqueuedAt: base.Add(time.Duration(i) * time.Second),
		})
	}
	return writes
}

func TestDrain_DeliversOldestFirst(t *testing.T) {
	queue := &memQueueRepo{writes: queuedWrites("w-1", "w-2", "w-3")}
	monitor := &stubMonitor{online: true}

	var delivered []string
	serverAdapter := &stubServerAdapter{
		submitFn: func(_ context.Context, write models.QueuedWrite) (models.CacheRecord, error) {
			delivered = append(delivered, write.LocalID)
			return models.CacheRecord{RecordID: int64(len(delivered))}, nil
		},
	}

	svc := NewClientSyncService(queue, serverAdapter, monitor, logger.Nop())

	report, err := svc.Drain(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"w-1", "w-2", "w-3"}, delivered)
	assert.Equal(t, []string{"w-1", "w-2", "w-3"}, report.Synced)
	assert.Empty(t, report.Discarded)
	assert.Empty(t, report.Stopped)
	assert.Empty(t, queue.pendingIDs())
}

// Going offline mid-pass aborts the remaining items: the write in flight
// finishes, everything behind it waits for the next online transition.
func TestDrain_OfflineMidPassStopsRemainingItems(t *testing.T) {
	queue := &memQueueRepo{writes: queuedWrites("w-1", "w-2", "w-3")}
	monitor := &stubMonitor{online: true}

	var attempted []string
	serverAdapter := &stubServerAdapter{
		submitFn: func(_ context.Context, write models.QueuedWrite) (models.CacheRecord, error) {
			attempted = append(attempted, write.LocalID)
			monitor.MarkOffline()
			return models.CacheRecord{RecordID: 1}, nil
		},
	}

	svc := NewClientSyncService(queue, serverAdapter, monitor, logger.Nop())

	report, err := svc.Drain(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"w-1"}, attempted)
	assert.Equal(t, []string{"w-1"}, report.Synced)
	assert.Equal(t, "offline", report.Stopped)
	assert.Equal(t, []string{"w-2", "w-3"}, queue.pendingIDs())
}

// A transient failure stops the pass: nothing behind the failed write may be
// delivered ahead of it.
func TestDrain_StopsAtFirstTransientFailure(t *testing.T) {
	queue := &memQueueRepo{writes: queuedWrites("w-1", "w-2", "w-3")}
	monitor := &stubMonitor{online: true}

	serverAdapter := &stubServerAdapter{
		submitFn: func(_ context.Context, write models.QueuedWrite) (models.CacheRecord, error) {
			if write.LocalID == "w-2" {
				return models.CacheRecord{}, fmt.Errorf("%w: gateway timeout", adapter.ErrRetryable)
			}
			return models.CacheRecord{}, nil
		},
	}

	svc := NewClientSyncService(queue, serverAdapter, monitor, logger.Nop())

	report, err := svc.Drain(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"w-1"}, report.Synced)
	assert.Equal(t, "w-2", report.Stopped)
	assert.Equal(t, []string{"w-2", "w-3"}, queue.pendingIDs())
	assert.False(t, monitor.Online())

	// the failed write's attempt count was bumped
	pending, listErr := queue.ListPending(context.Background())
	require.NoError(t, listErr)
	assert.Equal(t, 1, pending[0].AttemptCount)
	assert.Zero(t, pending[1].AttemptCount)
}

func TestDrain_RejectedWriteDiscardedPassContinues(t *testing.T) {
	queue := &memQueueRepo{writes: queuedWrites("w-1", "w-2", "w-3")}
	monitor := &stubMonitor{online: true}

	serverAdapter := &stubServerAdapter{
		submitFn: func(_ context.Context, write models.QueuedWrite) (models.CacheRecord, error) {
			if write.LocalID == "w-2" {
				return models.CacheRecord{}, fmt.Errorf("%w: unknown category", adapter.ErrRejected)
			}
			return models.CacheRecord{}, nil
		},
	}

	svc := NewClientSyncService(queue, serverAdapter, monitor, logger.Nop())

	report, err := svc.Drain(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"w-1", "w-3"}, report.Synced)
	require.Len(t, report.Discarded, 1)
	assert.Equal(t, "w-2", report.Discarded[0].Write.LocalID)
	assert.Contains(t, report.Discarded[0].Reason, "unknown category")
	assert.Empty(t, queue.pendingIDs())
	assert.True(t, monitor.Online(), "a rejection says nothing about connectivity")
}

func TestDrain_OfflineShortCircuits(t *testing.T) {
	queue := &memQueueRepo{writes: queuedWrites("w-1")}
	monitor := &stubMonitor{online: false}
	serverAdapter := &stubServerAdapter{
		submitFn: func(_ context.Context, _ models.QueuedWrite) (models.CacheRecord, error) {
			t.Fatal("an offline drain must not touch the network")
			return models.CacheRecord{}, nil
		},
	}

	svc := NewClientSyncService(queue, serverAdapter, monitor, logger.Nop())

	report, err := svc.Drain(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "offline", report.Stopped)
	assert.Equal(t, []string{"w-1"}, queue.pendingIDs())
}

// A second Drain arriving mid-pass gets ErrDrainInProgress and the running
// pass loops exactly once more instead.
func TestDrain_ConcurrentCallsCoalesce(t *testing.T) {
	queue := &memQueueRepo{writes: queuedWrites("w-1")}
	monitor := &stubMonitor{online: true}

	firstSubmit := make(chan struct{})
	release := make(chan struct{})
	var once sync.Once

	serverAdapter := &stubServerAdapter{
		submitFn: func(_ context.Context, _ models.QueuedWrite) (models.CacheRecord, error) {
			once.Do(func() {
				close(firstSubmit)
				<-release
			})
			return models.CacheRecord{}, nil
		},
	}

	svc := NewClientSyncService(queue, serverAdapter, monitor, logger.Nop())

	type result struct {
		report models.DrainReport
		err    error
	}
	done := make(chan result, 1)
	go func() {
		report, err := svc.Drain(context.Background())
		done <- result{report: report, err: err}
	}()

	<-firstSubmit

	_, err := svc.Drain(context.Background())
	require.ErrorIs(t, err, ErrDrainInProgress)

	close(release)
	first := <-done
	require.NoError(t, first.err)
	assert.Equal(t, []string{"w-1"}, first.report.Synced)

	// the coalesced rerun already ran inside the first call; a fresh Drain
	// now starts its own pass over an empty queue
	report, err := svc.Drain(context.Background())
	require.NoError(t, err)
	assert.Empty(t, report.Synced)
}

func TestDrain_CancelledContext(t *testing.T) {
	queue := &memQueueRepo{writes: queuedWrites("w-1", "w-2")}
	monitor := &stubMonitor{online: true}

	ctx, cancel := context.WithCancel(context.Background())
	serverAdapter := &stubServerAdapter{
		submitFn: func(_ context.Context, _ models.QueuedWrite) (models.CacheRecord, error) {
			cancel()
			return models.CacheRecord{}, nil
		},
	}

	svc := NewClientSyncService(queue, serverAdapter, monitor, logger.Nop())

	report, err := svc.Drain(ctx)
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, "cancelled", report.Stopped)
	assert.Equal(t, []string{"w-1"}, report.Synced)
	assert.Equal(t, []string{"w-2"}, queue.pendingIDs())
}
