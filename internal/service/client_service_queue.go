// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-spend-keeper/internal/adapter"
	"github.com/MKhiriev/go-spend-keeper/internal/logger"
	"github.com/MKhiriev/go-spend-keeper/internal/store"
	"github.com/MKhiriev/go-spend-keeper/internal/utils"
	"github.com/MKhiriev/go-spend-keeper/internal/validators"
	"github.com/MKhiriev/go-spend-keeper/models"
)

type clientQueueService struct {
	queue     store.QueueRepository
	adapter   adapter.ServerAdapter
	monitor   ConnectivityMonitor
	validator validators.Validator
	uuid      *utils.UUIDGenerator

	logger *logger.Logger
}

// NewClientQueueService constructs the client's write entry point.
func NewClientQueueService(queue store.QueueRepository, serverAdapter adapter.ServerAdapter, monitor ConnectivityMonitor, logger *logger.Logger) ClientQueueService {
	return &clientQueueService{
		queue:     queue,
		adapter:   serverAdapter,
		monitor:   monitor,
		validator: validators.NewWriteValidator(),
		uuid:      utils.NewUUIDGenerator(),
		logger:    logger,
	}
}

// Submit implements [ClientQueueService].
//
// Submission never loses a write and never blocks on a dead network: a
// transient failure downgrades to an enqueue, a rejection is surfaced
// immediately, and a success returns the server's record.
func (s *clientQueueService) Submit(ctx context.Context, kind models.EntityKind, payload json.RawMessage) (models.SubmitResult, error) {
	log := logger.FromContext(ctx)

	write := models.QueuedWrite{
		LocalID:    s.uuid.Generate(),
		EntityKind: kind,
		Payload:    payload,
		EnqueuedAt: time.Now(),
	}

	// local validation catches what the server would reject anyway,
	// before the write can occupy the queue
	if err := s.validator.Validate(ctx, write); err != nil {
		return models.SubmitResult{}, fmt.Errorf("%w: %w", ErrInvalidWrite, err)
	}

	if !s.monitor.Online() {
		return s.capture(ctx, write)
	}

	record, err := s.adapter.SubmitWrite(ctx, write)
	if err == nil {
		log.Debug().
			Str("func", "clientQueueService.Submit").
			Str("local_id", write.LocalID).
			Int64("record_id", record.RecordID).
			Msg("write applied synchronously")
		return models.SubmitResult{Record: &record, LocalID: write.LocalID}, nil
	}

	if errors.Is(err, adapter.ErrRetryable) {
		s.monitor.MarkOffline()
		log.Warn().
			Err(err).
			Str("func", "clientQueueService.Submit").
			Str("local_id", write.LocalID).
			Msg("synchronous delivery failed, capturing write locally")
		return s.capture(ctx, write)
	}

	// rejections and auth failures surface immediately, nothing is queued
	return models.SubmitResult{LocalID: write.LocalID}, err
}

// Pending implements [ClientQueueService].
func (s *clientQueueService) Pending(ctx context.Context) (int, error) {
	return s.queue.Count(ctx)
}

func (s *clientQueueService) capture(ctx context.Context, write models.QueuedWrite) (models.SubmitResult, error) {
	if err := s.queue.Enqueue(ctx, write); err != nil {
		return models.SubmitResult{}, fmt.Errorf("capture write locally: %w", err)
	}

	return models.SubmitResult{Queued: true, LocalID: write.LocalID}, nil
}
