// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-spend-keeper/internal/logger"
	"github.com/MKhiriev/go-spend-keeper/models"
)

// cacheRepository is the PostgreSQL-backed implementation of
// [CacheRepository]. The cache mirrors the authoritative sheets and is
// rebuildable at any time; nothing in this table is the system of record.
type cacheRepository struct {
	*DB
	logger *logger.Logger
}

// NewCacheRepository constructs a [CacheRepository] backed by the provided
// database connection and logger.
func NewCacheRepository(db *DB, logger *logger.Logger) CacheRepository {
	logger.Debug().Msg("creating cache repository")
	return &cacheRepository{
		DB:     db,
		logger: logger,
	}
}

// UpsertWrite inserts the record keyed by (user_id, client_write_id). When a
// write is replayed the insert collapses onto the existing row and that row
// is returned, so the caller cannot tell a replay from a first application
// except by the unchanged record_id.
func (r *cacheRepository) UpsertWrite(ctx context.Context, record models.CacheRecord) (models.CacheRecord, error) {
	log := logger.FromContext(ctx)

	row := r.DB.QueryRowContext(ctx, upsertCacheRecord,
		record.UserID,
		record.EntityKind,
		record.Fields,
		record.VersionToken,
		record.SheetRef,
		record.ClientWriteID,
	)
	if err := row.Err(); err != nil {
		log.Err(err).
			Str("func", "*cacheRepository.UpsertWrite").
			Str("user_id", record.UserID).
			Str("client_write_id", record.ClientWriteID).
			Msg("failed to execute upsert for cache record")
		return models.CacheRecord{}, fmt.Errorf("failed to upsert cache record: %w", err)
	}

	var saved models.CacheRecord
	if err := row.Scan(
		&saved.RecordID,
		&saved.UserID,
		&saved.EntityKind,
		&saved.Fields,
		&saved.VersionToken,
		&saved.SheetRef,
		&saved.ClientWriteID,
		&saved.CreatedAt,
		&saved.UpdatedAt,
	); err != nil {
		log.Err(err).Str("func", "*cacheRepository.UpsertWrite").Msg("failed to scan upserted cache record")
		return models.CacheRecord{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return saved, nil
}

// Confirm stamps the record with its authoritative row reference and
// revision once the upstream append has succeeded.
func (r *cacheRepository) Confirm(ctx context.Context, recordID int64, sheetRef string, versionToken string) error {
	log := logger.FromContext(ctx)

	result, err := r.DB.ExecContext(ctx, confirmCacheRecord, sheetRef, versionToken, recordID)
	if err != nil {
		log.Err(err).
			Str("func", "*cacheRepository.Confirm").
			Int64("record_id", recordID).
			Msg("failed to confirm cache record")
		return fmt.Errorf("failed to confirm cache record: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		log.Error().Str("func", "*cacheRepository.Confirm").Int64("record_id", recordID).Msg("cache record to confirm was not found")
		return ErrRecordNotFound
	}

	return nil
}

// List returns the user's cached records matching the query, ordered by
// record_id, plus the total match count ignoring limit and offset.
func (r *cacheRepository) List(ctx context.Context, userID string, query models.RecordQuery) ([]models.CacheRecord, int, error) {
	log := logger.FromContext(ctx)

	listSQL, listArgs, err := buildListRecordsQuery(ctx, userID, query)
	if err != nil {
		log.Err(err).Str("func", "*cacheRepository.List").Msg("failed to build list query")
		return nil, 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.DB.QueryContext(ctx, listSQL, listArgs...)
	if err != nil {
		log.Err(err).
			Str("func", "*cacheRepository.List").
			Str("user_id", userID).
			Msg("failed to execute query for listing cache records")
		return nil, 0, fmt.Errorf("failed to query cache records: %w", err)
	}
	defer rows.Close()

	var records []models.CacheRecord
	for rows.Next() {
		var record models.CacheRecord
		if scanErr := rows.Scan(
			&record.RecordID,
			&record.UserID,
			&record.EntityKind,
			&record.Fields,
			&record.VersionToken,
			&record.SheetRef,
			&record.ClientWriteID,
			&record.CreatedAt,
			&record.UpdatedAt,
		); scanErr != nil {
			log.Err(scanErr).Str("func", "*cacheRepository.List").Msg("failed to scan cache record row")
			return nil, 0, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed iterating cache record rows: %w", err)
	}

	countSQL, countArgs, err := buildCountRecordsQuery(ctx, userID, query)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var total int
	if err := r.DB.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		log.Err(err).Str("func", "*cacheRepository.List").Msg("failed to count cache records")
		return nil, 0, fmt.Errorf("failed to count cache records: %w", err)
	}

	return records, total, nil
}

// ReplaceAll swaps the user's entire cache contents for the given rows in
// one transaction. A reader sees either the old cache or the new one, never
// a mix.
func (r *cacheRepository) ReplaceAll(ctx context.Context, userID string, records []models.CacheRecord) error {
	log := logger.FromContext(ctx)

	// begin transaction
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "*cacheRepository.ReplaceAll").Msg("error during opening transaction")
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, deleteAllUserRecords, userID); err != nil {
		log.Err(err).
			Str("func", "*cacheRepository.ReplaceAll").
			Str("user_id", userID).
			Msg("failed to clear user cache records")
		return fmt.Errorf("failed to clear user cache records: %w", err)
	}

	// prepare statement
	stmt, err := tx.PrepareContext(ctx, insertHydratedRecord)
	if err != nil {
		log.Err(err).Str("func", "*cacheRepository.ReplaceAll").Msg("error during preparing statement")
		return fmt.Errorf("%w: %w", ErrPreparingStatement, err)
	}
	defer stmt.Close()

	// for each hydrated record
	for idx, record := range records {
		log.Debug().
			Str("func", "*cacheRepository.ReplaceAll").
			Int("iteration", idx).
			Str("sheet_ref", record.SheetRef).
			Msg("inserting hydrated cache record")

		if _, execErr := stmt.ExecContext(ctx,
			userID,
			record.EntityKind,
			record.Fields,
			record.VersionToken,
			record.SheetRef,
			record.ClientWriteID,
		); execErr != nil {
			log.Err(execErr).Str("func", "*cacheRepository.ReplaceAll").Msg("error executing prepared insert for hydrated record")
			return execErr
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return nil
}
