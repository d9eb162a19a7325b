// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-spend-keeper/internal/adapter"
	"github.com/MKhiriev/go-spend-keeper/internal/logger"
	"github.com/MKhiriev/go-spend-keeper/internal/store"
	"github.com/MKhiriev/go-spend-keeper/internal/validators"
	"github.com/MKhiriev/go-spend-keeper/models"
)

type recordService struct {
	cache     store.CacheRepository
	sheets    adapter.SheetStore
	validator validators.Validator
	locks     *UserLocks

	logger *logger.Logger
}

// NewRecordService constructs the server write and read path. The locks
// registry must be the same instance the hydration service uses, otherwise
// hydration and writes for one user could interleave.
func NewRecordService(cache store.CacheRepository, sheets adapter.SheetStore, locks *UserLocks, logger *logger.Logger) RecordService {
	return &recordService{
		cache:     cache,
		sheets:    sheets,
		validator: validators.NewWriteValidator(),
		locks:     locks,
		logger:    logger,
	}
}

// Apply implements [RecordService].
//
// The cache is written before the authoritative store. If forwarding fails
// the cache keeps a provisional record; a retried submission with the same
// client write ID collapses onto it and completes the forward, so the two
// stores converge without a background reconciler.
func (s *recordService) Apply(ctx context.Context, sc models.SyncContext, kind models.EntityKind, req models.WriteRequest) (models.CacheRecord, error) {
	log := logger.FromContext(ctx)

	write := models.QueuedWrite{
		LocalID:    req.ClientWriteID,
		EntityKind: kind,
		Payload:    req.Payload,
	}
	if err := s.validator.Validate(ctx, write); err != nil {
		log.Warn().
			Err(err).
			Str("func", "recordService.Apply").
			Str("client_write_id", req.ClientWriteID).
			Msg("write failed validation")
		return models.CacheRecord{}, fmt.Errorf("%w: %w", ErrInvalidWrite, err)
	}

	unlock := s.locks.Lock(sc.UserID)
	defer unlock()

	// reserve the record under the idempotency marker
	record, err := s.cache.UpsertWrite(ctx, models.CacheRecord{
		UserID:        sc.UserID,
		EntityKind:    kind,
		Fields:        req.Payload,
		ClientWriteID: req.ClientWriteID,
	})
	if err != nil {
		return models.CacheRecord{}, fmt.Errorf("reserve cache record: %w", err)
	}

	// a confirmed record means this is a replay of a completed write
	if !record.Provisional() {
		log.Debug().
			Str("func", "recordService.Apply").
			Str("client_write_id", req.ClientWriteID).
			Int64("record_id", record.RecordID).
			Msg("replayed write collapsed onto confirmed record")
		return record, nil
	}

	// forward to the authoritative sheet
	saved, err := s.sheets.Append(ctx, sc.SheetFor(kind), models.SheetRow{
		Kind:          kind,
		Fields:        record.Fields,
		ClientWriteID: req.ClientWriteID,
	})
	if err != nil {
		// the write is accepted anyway: the cache holds it, the caller
		// gets a success, and a replay of the same client write ID
		// completes the forward later
		log.Err(err).
			Str("func", "recordService.Apply").
			Str("user_id", sc.UserID).
			Int64("record_id", record.RecordID).
			Bool("reconciliation_debt", true).
			Msg("authoritative append failed, cache record left provisional")
		return record, nil
	}

	if err := s.cache.Confirm(ctx, record.RecordID, saved.Ref, saved.Revision); err != nil {
		// the sheet holds the row; the next hydration restores the link
		log.Err(err).
			Str("func", "recordService.Apply").
			Int64("record_id", record.RecordID).
			Bool("reconciliation_debt", true).
			Msg("failed to confirm cache record after successful append")
		return record, nil
	}

	record.SheetRef = saved.Ref
	record.VersionToken = saved.Revision

	return record, nil
}

// List implements [RecordService]. Reads never consult the authoritative
// store; staleness is bounded by the last hydration or confirmed write.
func (s *recordService) List(ctx context.Context, sc models.SyncContext, query models.RecordQuery) (models.RecordsResponse, error) {
	records, total, err := s.cache.List(ctx, sc.UserID, query)
	if err != nil {
		return models.RecordsResponse{}, fmt.Errorf("list cache records: %w", err)
	}

	return models.RecordsResponse{
		Records: records,
		Total:   total,
		Limit:   query.Limit,
		Offset:  query.Offset,
	}, nil
}
