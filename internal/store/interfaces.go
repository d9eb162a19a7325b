package store

import (
	"context"

	"github.com/MKhiriev/go-spend-keeper/models"
)

// UserRepository manages the user-to-sheets mapping table.
type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindUserByID(ctx context.Context, userID string) (models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
}

// CacheRepository manages the server's rebuildable mirror of the
// authoritative sheets. All operations are scoped to a single user.
type CacheRepository interface {

	// UpsertWrite inserts a record keyed by its client write ID. A replay
	// of an already-applied write collapses onto the existing row, which
	// is returned unchanged apart from updated_at.
	UpsertWrite(ctx context.Context, record models.CacheRecord) (models.CacheRecord, error)

	// Confirm stamps a provisional record with the authoritative row
	// reference and revision after the upstream append succeeded.
	Confirm(ctx context.Context, recordID int64, sheetRef string, versionToken string) error

	// List returns the user's cached records matching the query plus the
	// total match count ignoring limit and offset.
	List(ctx context.Context, userID string, query models.RecordQuery) ([]models.CacheRecord, int, error)

	// ReplaceAll atomically swaps the user's entire cache contents for the
	// given rows. Used by hydration; readers never observe a half-replaced
	// cache.
	ReplaceAll(ctx context.Context, userID string, records []models.CacheRecord) error
}
