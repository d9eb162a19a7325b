package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/MKhiriev/go-spend-keeper/models"
)

// ClientQueueService is the client's single entry point for mutations. Every
// write goes through Submit; callers never talk to the transport or the
// queue directly.
type ClientQueueService interface {
	// Submit attempts synchronous delivery when the connection is believed
	// healthy, and otherwise captures the write in the durable local queue.
	// A rejection is returned as an error and nothing is queued; retrying a
	// payload the server has refused can never succeed.
	Submit(ctx context.Context, kind models.EntityKind, payload json.RawMessage) (models.SubmitResult, error)

	// Pending reports how many writes are waiting in the local queue.
	Pending(ctx context.Context) (int, error)
}

// ClientSyncService drains the durable queue towards the server.
type ClientSyncService interface {
	// Drain replays pending writes oldest first. The pass stops at the
	// first transient failure (order must hold, so nothing later may jump
	// the queue), removes and reports writes the server rejected, and
	// keeps everything else for the next pass. Concurrent calls coalesce:
	// a request arriving mid-pass schedules exactly one follow-up pass.
	Drain(ctx context.Context) (models.DrainReport, error)
}

// ClientRefreshService is the user-triggered refresh flow: push what is
// pending, have the server rebuild its cache from the authoritative store,
// then pull the refreshed listing back.
type ClientRefreshService interface {
	// Refresh drains the local queue best effort, requests a server-side
	// hydration for the caller's user, and returns the refreshed records.
	// Returns ErrClientOffline without touching the network when the link
	// is down.
	Refresh(ctx context.Context) (models.RecordsResponse, error)
}

// ConnectivityMonitor tracks the client's two-state view of the server link.
// Transitions are driven by request outcomes and, while offline, by periodic
// probes of the server's health endpoint.
type ConnectivityMonitor interface {
	// Online reports the current belief about the link.
	Online() bool

	// MarkOffline records a failed delivery. Idempotent.
	MarkOffline()

	// Check probes the health endpoint once and updates the state. Returns
	// the resulting belief.
	Check(ctx context.Context) bool

	// OnOnline registers the callback fired on every offline-to-online
	// transition. Must be called before Start.
	OnOnline(fn func())

	// Start launches the background probe loop: an immediate startup check
	// followed by periodic probes while offline.
	Start(ctx context.Context, probeInterval time.Duration)

	// Stop terminates the probe loop and blocks until it has exited.
	Stop()
}

// ClientSyncJob periodically triggers a drain as a safety net: the primary
// drain trigger is the connectivity monitor's offline-to-online transition,
// the ticker only covers writes that slipped past it.
type ClientSyncJob interface {
	// Start launches the background drain goroutine. Any previously
	// running job is stopped before the new one begins.
	Start(ctx context.Context, interval time.Duration)

	// Stop signals the background goroutine to exit and blocks until it
	// has fully terminated.
	Stop()
}
