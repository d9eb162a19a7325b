// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides transport-layer abstractions for the two remote
// boundaries of go-spend-keeper.
//
// [ServerAdapter] is the client's view of the go-spend-keeper server. It
// decouples the client service layer from the wire protocol and maps every
// transport failure into the package's three sentinel errors, so the sync
// engine can decide between "keep queued" ([ErrRetryable]) and "surface and
// discard" ([ErrRejected]) with a single [errors.Is] check.
//
// [SheetStore] is the server's view of the remote authoritative store, a
// spreadsheet-like service holding one workbook of three sheets per user.
// Row references and revisions returned by the service are treated as opaque.
package adapter

import (
	"context"

	"github.com/MKhiriev/go-spend-keeper/models"
)

// ServerAdapter defines transport-agnostic communication with the
// go-spend-keeper server. Implementations are responsible for serialisation,
// authentication header management, and mapping transport-level errors to the
// sentinel values defined in this package.
type ServerAdapter interface {
	// SetToken stores the bearer token that will be attached to all
	// subsequent authenticated requests.
	SetToken(token string)

	// Token returns the bearer token currently stored in the adapter, or an
	// empty string if no token has been set yet.
	Token() string

	// Health probes the server's liveness endpoint. A nil return means the
	// server answered; any error means it is to be treated as unreachable.
	Health(ctx context.Context) error

	// SubmitWrite delivers one pending write to the server's endpoint for
	// its entity kind. The request carries the write's local ID as the
	// idempotency marker, so resubmitting after a lost response is safe.
	// Returns the server's resulting cache record on success.
	SubmitWrite(ctx context.Context, write models.QueuedWrite) (models.CacheRecord, error)

	// GetRecords fetches the user's cached records from the server.
	GetRecords(ctx context.Context, query models.RecordQuery) (models.RecordsResponse, error)

	// RequestHydration asks the server to rebuild the caller's cache from
	// the authoritative store.
	RequestHydration(ctx context.Context) error
}

// SheetStore is the server's boundary to the remote authoritative store.
// Every method addresses one sheet by its opaque handle; no method crosses
// user boundaries because sheet handles are already user-scoped.
type SheetStore interface {
	// ReadAll returns every row of the sheet in stored order. Rows the
	// implementation cannot decode are skipped, not fatal.
	ReadAll(ctx context.Context, sheetID string) ([]models.SheetRow, error)

	// Append adds a row to the end of the sheet and returns it with the
	// service-assigned Ref and Revision populated.
	Append(ctx context.Context, sheetID string, row models.SheetRow) (models.SheetRow, error)

	// Update rewrites an existing row in place, matching by row.Ref.
	Update(ctx context.Context, sheetID string, row models.SheetRow) (models.SheetRow, error)

	// Provision creates a fresh workbook for the user (categories, expenses
	// and cashflows sheets) and returns the resulting sheet mapping.
	Provision(ctx context.Context, userID string) (models.User, error)
}
