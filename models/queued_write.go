// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"encoding/json"
	"time"
)

// QueuedWrite is a pending mutation captured on the client while the server
// could not confirm it synchronously.
//
// A QueuedWrite lives from the moment a write fails to reach the server until
// either the server acknowledges it (matched by LocalID) or the user discards
// it after a non-retryable rejection. It is never silently dropped.
type QueuedWrite struct {
	// LocalID is the client-generated UUIDv7 of the write. Unique per
	// device, never reused, and forwarded to the server as the idempotency
	// marker so a crash mid-drain cannot produce a duplicate record.
	LocalID string `json:"local_id"`

	// EntityKind tells the server which record class Payload carries.
	EntityKind EntityKind `json:"entity_kind"`

	// Payload is the full record to create or update, serialized as JSON.
	Payload json.RawMessage `json:"payload"`

	// EnqueuedAt orders the queue. Drains always run oldest first.
	EnqueuedAt time.Time `json:"enqueued_at"`

	// AttemptCount is incremented after every failed delivery attempt.
	// There is no upper bound: connectivity, not attempt count, limits
	// retries.
	AttemptCount int `json:"attempt_count"`
}
