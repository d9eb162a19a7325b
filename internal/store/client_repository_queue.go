package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-spend-keeper/internal/logger"
	"github.com/MKhiriev/go-spend-keeper/models"
)

type localQueueRepository struct {
	*DB
	logger *logger.Logger
}

// NewLocalQueueRepository constructs a [QueueRepository] backed by the local
// SQLite database.
func NewLocalQueueRepository(db *DB, logger *logger.Logger) QueueRepository {
	return &localQueueRepository{
		DB:     db,
		logger: logger,
	}
}

func (l *localQueueRepository) Enqueue(ctx context.Context, write models.QueuedWrite) error {
	log := logger.FromContext(ctx)

	_, err := l.DB.ExecContext(ctx, enqueueWrite,
		write.LocalID,
		write.EntityKind,
		string(write.Payload),
		write.EnqueuedAt,
		write.AttemptCount,
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return ErrDuplicateWrite
		}
		log.Err(err).
			Str("func", "localQueueRepository.Enqueue").
			Str("local_id", write.LocalID).
			Msg("failed to enqueue write")
		return fmt.Errorf("%w: enqueue write (local_id=%s): %w", ErrStorageUnavailable, write.LocalID, err)
	}

	return nil
}

func (l *localQueueRepository) ListPending(ctx context.Context) ([]models.QueuedWrite, error) {
	log := logger.FromContext(ctx)

	rows, err := l.DB.QueryContext(ctx, listPendingWrites)
	if err != nil {
		log.Err(err).
			Str("func", "localQueueRepository.ListPending").
			Msg("failed to execute query for listing pending writes")
		return nil, fmt.Errorf("failed to query pending writes: %w", err)
	}
	defer rows.Close()

	var writes []models.QueuedWrite
	for rows.Next() {
		var write models.QueuedWrite
		var payload string

		scanErr := rows.Scan(
			&write.LocalID,
			&write.EntityKind,
			&payload,
			&write.EnqueuedAt,
			&write.AttemptCount,
		)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "localQueueRepository.ListPending").
				Msg("failed to scan queued write row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}

		write.Payload = []byte(payload)
		writes = append(writes, write)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed iterating queued write rows: %w", err)
	}

	return writes, nil
}

func (l *localQueueRepository) Remove(ctx context.Context, localID string) error {
	log := logger.FromContext(ctx)

	result, err := l.DB.ExecContext(ctx, removeQueuedWrite, localID)
	if err != nil {
		log.Err(err).
			Str("func", "localQueueRepository.Remove").
			Str("local_id", localID).
			Msg("failed to remove queued write")
		return fmt.Errorf("failed to remove queued write (local_id=%s): %w", localID, err)
	}

	// removing an id that is not queued is a no-op, a crash between the
	// server ack and the local delete may replay the removal
	if rowsAffected, _ := result.RowsAffected(); rowsAffected == 0 {
		log.Debug().
			Str("func", "localQueueRepository.Remove").
			Str("local_id", localID).
			Msg("queued write already removed")
	}

	return nil
}

func (l *localQueueRepository) IncrementAttempt(ctx context.Context, localID string) error {
	log := logger.FromContext(ctx)

	result, err := l.DB.ExecContext(ctx, incrementAttemptCount, localID)
	if err != nil {
		log.Err(err).
			Str("func", "localQueueRepository.IncrementAttempt").
			Str("local_id", localID).
			Msg("failed to increment attempt count")
		return fmt.Errorf("failed to increment attempt count (local_id=%s): %w", localID, err)
	}

	// a write removed under our feet has nothing to count against
	if rowsAffected, _ := result.RowsAffected(); rowsAffected == 0 {
		log.Debug().
			Str("func", "localQueueRepository.IncrementAttempt").
			Str("local_id", localID).
			Msg("queued write no longer present")
	}

	return nil
}

func (l *localQueueRepository) Count(ctx context.Context) (int, error) {
	log := logger.FromContext(ctx)

	var count int
	if err := l.DB.QueryRowContext(ctx, countQueuedWrites).Scan(&count); err != nil {
		log.Err(err).
			Str("func", "localQueueRepository.Count").
			Msg("failed to count queued writes")
		return 0, fmt.Errorf("failed to count queued writes: %w", err)
	}

	return count, nil
}

// isUniqueConstraintError matches the sqlite3 primary key violation without
// binding the repository to the driver's error type.
func isUniqueConstraintError(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
