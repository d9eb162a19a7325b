// Package utils provides general-purpose helper utilities
// used across different parts of the application.
// Includes tools for working with context, type-safe keys,
// HTTP response writing, HTTP client initialization, JWT token validation,
// and UUID generation.
package utils

import (
	"context"

	"github.com/MKhiriev/go-spend-keeper/models"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
// Implements the fmt.Stringer interface.
func (c contextKey) String() string {
	return string(c)
}

// SyncContextCtxKey is the key used to store the request's [models.SyncContext]
// in the context. The auth middleware resolves the caller's identity and sheet
// handles once and stores the assembled SyncContext here so that downstream
// handlers never touch globals.
var SyncContextCtxKey = contextKey("syncContext")

// GetSyncContext retrieves the per-user sync context from ctx.
//
// Returns the SyncContext and an ok flag:
//   - ok == true  — value is found and has the correct type
//   - ok == false — value is missing or has an unexpected type
func GetSyncContext(ctx context.Context) (models.SyncContext, bool) {
	sc, ok := ctx.Value(SyncContextCtxKey).(models.SyncContext)
	return sc, ok
}
