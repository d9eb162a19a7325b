package store

import (
	"context"

	"github.com/MKhiriev/go-spend-keeper/models"
)

// QueueRepository is the low-level durable write queue on the client. Entries
// survive process restarts; a write leaves the queue only when the server
// acknowledges it or the user discards it after a rejection.
type QueueRepository interface {
	Enqueue(ctx context.Context, write models.QueuedWrite) error
	ListPending(ctx context.Context) ([]models.QueuedWrite, error)
	Remove(ctx context.Context, localID string) error
	IncrementAttempt(ctx context.Context, localID string) error
	Count(ctx context.Context) (int, error)
}
