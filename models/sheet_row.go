package models

import "encoding/json"

// SheetRow is one row of a user's authoritative sheet as seen through the
// store adapter. The remote service's wire format is its own concern; this
// struct is the narrow shape the sync engine works with.
type SheetRow struct {
	// Ref is the row reference assigned by the authoritative store when the
	// row was appended. Stable for the lifetime of the row.
	Ref string `json:"ref,omitempty"`

	// Revision is an opaque marker of the row's last known state. It is
	// carried into CacheRecord.VersionToken verbatim.
	Revision string `json:"revision,omitempty"`

	// Kind is the record class the row holds.
	Kind EntityKind `json:"kind"`

	// Fields is the entity payload exactly as it round-trips through the
	// remote store.
	Fields json.RawMessage `json:"fields"`

	// ClientWriteID is the idempotency marker persisted alongside the row
	// so hydration can re-link cache records to their originating writes.
	ClientWriteID string `json:"client_write_id,omitempty"`
}
