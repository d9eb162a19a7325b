// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

const (
	enqueueWrite = `
		INSERT INTO queued_writes (
			local_id,
			entity_kind,
			payload,
			enqueued_at,
			attempt_count
		) VALUES ($1, $2, $3, $4, $5);`

	// oldest first: drains must preserve per-device submission order
	listPendingWrites = `
		SELECT
			local_id,
			entity_kind,
			payload,
			enqueued_at,
			attempt_count
		FROM queued_writes
		ORDER BY enqueued_at ASC, local_id ASC;`

	removeQueuedWrite = `
		DELETE FROM queued_writes
		WHERE local_id = $1;`

	incrementAttemptCount = `
		UPDATE queued_writes
		SET attempt_count = attempt_count + 1
		WHERE local_id = $1;`

	countQueuedWrites = `
		SELECT COUNT(*)
		FROM queued_writes;`
)
