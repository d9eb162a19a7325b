package service

import (
	"context"

	"github.com/MKhiriev/go-spend-keeper/models"
)

// RecordService is the server's write and read path over the cache.
type RecordService interface {
	// Apply runs the dual-write: validate, reserve the record in the cache
	// under the write's idempotency marker, forward it to the authoritative
	// sheet, and confirm the cache entry with the sheet's row reference.
	// A replayed write returns the record it created the first time.
	Apply(ctx context.Context, sc models.SyncContext, kind models.EntityKind, req models.WriteRequest) (models.CacheRecord, error)

	// List serves reads from the cache only; it never touches the
	// authoritative store.
	List(ctx context.Context, sc models.SyncContext, query models.RecordQuery) (models.RecordsResponse, error)
}

// HydrationService rebuilds a user's cache from the authoritative sheets.
type HydrationService interface {
	// Hydrate reads every row of the user's sheets and atomically replaces
	// the user's cache contents. Bounded by the configured hydration
	// timeout; rows that cannot be interpreted are skipped with a log line,
	// never fatal.
	Hydrate(ctx context.Context, sc models.SyncContext) error

	// HydrateAll rebuilds every known user's cache, best effort. One
	// user's failure never blocks the others. Run once at server start.
	HydrateAll(ctx context.Context) error
}

// SeedService populates a fresh workbook with the default category taxonomy.
type SeedService interface {
	// Seed appends the default categories and subcategories to the user's
	// categories sheet and returns how many rows were written. A sheet that
	// already holds categories is left untouched.
	Seed(ctx context.Context, sc models.SyncContext) (int, error)
}

// UserService resolves authenticated user IDs to their sheet mappings.
type UserService interface {
	// EnsureUser returns the user's sheet mapping, provisioning a workbook
	// and persisting the mapping on first contact.
	EnsureUser(ctx context.Context, userID string) (models.User, error)
}
