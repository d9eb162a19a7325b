package models

import (
	"encoding/json"
	"time"
)

// WriteRequest is the body of every POST write endpoint. ClientWriteID is the
// client-side LocalID of the originating queued write and doubles as the
// idempotency marker.
type WriteRequest struct {
	ClientWriteID string          `json:"client_write_id"`
	Payload       json.RawMessage `json:"payload"`
}

// WriteResponse is returned by the write endpoints on success.
type WriteResponse struct {
	Record CacheRecord `json:"record"`
}

// RecordsResponse is returned by the cache read endpoint.
type RecordsResponse struct {
	Records []CacheRecord `json:"records"`
	Total   int           `json:"total"`
	Limit   uint64        `json:"limit"`
	Offset  uint64        `json:"offset"`
}

// RecordQuery narrows a cache read. A zero Kind means all kinds; Limit of
// zero means no limit; zero From/To leave the date range open on that end.
// Soft-deleted records are excluded unless IncludeDeleted is set.
type RecordQuery struct {
	Kind           EntityKind `json:"kind,omitempty"`
	From           time.Time  `json:"from,omitempty"`
	To             time.Time  `json:"to,omitempty"`
	Limit          uint64     `json:"limit,omitempty"`
	Offset         uint64     `json:"offset,omitempty"`
	IncludeDeleted bool       `json:"include_deleted,omitempty"`
}

// APIError is the structured error body. Retryable distinguishes transient
// failures (the client keeps the write queued) from rejections (the client
// discards the write and surfaces it to the user).
type APIError struct {
	Error     string `json:"error"`
	Retryable bool   `json:"retryable"`
}
