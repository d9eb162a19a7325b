// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/MKhiriev/go-spend-keeper/internal/adapter"
	"github.com/MKhiriev/go-spend-keeper/internal/logger"
	"github.com/MKhiriev/go-spend-keeper/internal/store"
	"github.com/MKhiriev/go-spend-keeper/models"
)

type clientSyncService struct {
	queue   store.QueueRepository
	adapter adapter.ServerAdapter
	monitor ConnectivityMonitor

	mu       sync.Mutex
	draining bool
	rerun    bool

	logger *logger.Logger
}

// NewClientSyncService constructs the queue drain engine.
func NewClientSyncService(queue store.QueueRepository, serverAdapter adapter.ServerAdapter, monitor ConnectivityMonitor, logger *logger.Logger) ClientSyncService {
	return &clientSyncService{
		queue:   queue,
		adapter: serverAdapter,
		monitor: monitor,
		logger:  logger,
	}
}

// Drain implements [ClientSyncService]. At most one pass runs at a time; a
// call that finds a pass in flight flags a rerun and returns, and the running
// pass loops once more when it finishes. That keeps "came online", "ticker
// fired" and "user asked" from racing each other over the same queue.
func (s *clientSyncService) Drain(ctx context.Context) (models.DrainReport, error) {
	s.mu.Lock()
	if s.draining {
		s.rerun = true
		s.mu.Unlock()
		return models.DrainReport{}, ErrDrainInProgress
	}
	s.draining = true
	s.mu.Unlock()

	var (
		report models.DrainReport
		err    error
	)
	for {
		report, err = s.drainOnce(ctx)

		s.mu.Lock()
		if s.rerun && err == nil && ctx.Err() == nil {
			s.rerun = false
			s.mu.Unlock()
			continue
		}
		s.rerun = false
		s.draining = false
		s.mu.Unlock()
		break
	}

	return report, err
}

// drainOnce replays the queue oldest first.
//
// Outcome handling per write:
//   - acknowledged: removed from the queue, reported in Synced
//   - rejected:     removed from the queue, reported in Discarded
//   - retryable:    attempt count bumped, pass stops (order must hold)
func (s *clientSyncService) drainOnce(ctx context.Context) (models.DrainReport, error) {
	log := logger.FromContext(ctx)

	var report models.DrainReport

	if !s.monitor.Online() {
		report.Stopped = "offline"
		return report, nil
	}

	pending, err := s.queue.ListPending(ctx)
	if err != nil {
		return report, fmt.Errorf("list pending writes: %w", err)
	}

	for _, write := range pending {
		if ctx.Err() != nil {
			report.Stopped = "cancelled"
			return report, ctx.Err()
		}

		// a MarkOffline from a concurrent submit or a platform hook
		// aborts the rest of the pass, in-flight items already finished
		if !s.monitor.Online() {
			report.Stopped = "offline"
			return report, nil
		}

		record, submitErr := s.adapter.SubmitWrite(ctx, write)
		if submitErr == nil {
			if removeErr := s.queue.Remove(ctx, write.LocalID); removeErr != nil {
				// the server holds the write; the idempotency marker
				// makes the inevitable replay harmless
				log.Err(removeErr).
					Str("func", "clientSyncService.drainOnce").
					Str("local_id", write.LocalID).
					Msg("acknowledged write could not be removed from queue")
				return report, fmt.Errorf("remove acknowledged write: %w", removeErr)
			}

			log.Debug().
				Str("func", "clientSyncService.drainOnce").
				Str("local_id", write.LocalID).
				Int64("record_id", record.RecordID).
				Msg("queued write delivered")
			report.Synced = append(report.Synced, write.LocalID)
			continue
		}

		if errors.Is(submitErr, adapter.ErrRejected) {
			if removeErr := s.queue.Remove(ctx, write.LocalID); removeErr != nil {
				return report, fmt.Errorf("remove rejected write: %w", removeErr)
			}

			log.Warn().
				Err(submitErr).
				Str("func", "clientSyncService.drainOnce").
				Str("local_id", write.LocalID).
				Msg("queued write rejected by server, discarding")
			report.Discarded = append(report.Discarded, models.DiscardedWrite{
				Write:  write,
				Reason: submitErr.Error(),
			})
			continue
		}

		// transient failure or expired token: keep the write and
		// everything behind it, try again next pass
		if incErr := s.queue.IncrementAttempt(ctx, write.LocalID); incErr != nil {
			log.Err(incErr).
				Str("func", "clientSyncService.drainOnce").
				Str("local_id", write.LocalID).
				Msg("failed to bump attempt count")
		}

		if errors.Is(submitErr, adapter.ErrRetryable) {
			s.monitor.MarkOffline()
		}

		log.Warn().
			Err(submitErr).
			Str("func", "clientSyncService.drainOnce").
			Str("local_id", write.LocalID).
			Int("attempts", write.AttemptCount+1).
			Msg("drain pass stopped")
		report.Stopped = write.LocalID
		break
	}

	return report, nil
}
