package models

import (
	"encoding/json"
	"time"
)

// CacheRecord is the server's fast-read mirror of one authoritative row,
// scoped to a user. The cache is advisory and fully rebuildable; the
// authoritative sheet remains the system of record.
type CacheRecord struct {
	// RecordID is the server-assigned stable identifier of the cached row.
	RecordID int64 `json:"record_id"`

	// UserID scopes the record. No operation may cross user boundaries.
	UserID string `json:"user_id"`

	// EntityKind is the record class (expense, category, ...).
	EntityKind EntityKind `json:"entity_kind"`

	// Fields holds the entity-specific payload as stored in the cache.
	Fields json.RawMessage `json:"fields"`

	// VersionToken is the opaque marker of the last known authoritative
	// state (the remote row revision). Empty while the record is
	// provisional, i.e. accepted into the cache but not yet confirmed
	// written upstream.
	VersionToken string `json:"version_token,omitempty"`

	// SheetRef is the authoritative row reference assigned by the remote
	// store. Empty for provisional records.
	SheetRef string `json:"sheet_ref,omitempty"`

	// ClientWriteID is the idempotency marker carried over from the
	// originating QueuedWrite.LocalID. Unique per user; a duplicate
	// submission collapses into the existing record.
	ClientWriteID string `json:"client_write_id"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Provisional reports whether the record has been accepted into the cache but
// not yet confirmed in the authoritative store.
func (r CacheRecord) Provisional() bool {
	return r.SheetRef == ""
}
