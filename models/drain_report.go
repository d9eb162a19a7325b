package models

// DiscardedWrite describes a queued write the server rejected as invalid.
// It is removed from the queue and reported so the user can correct and
// resubmit; retrying a rejected payload verbatim would never succeed.
type DiscardedWrite struct {
	Write  QueuedWrite `json:"write"`
	Reason string      `json:"reason"`
}

// DrainReport summarizes one drain pass over the local queue.
type DrainReport struct {
	// Synced lists the LocalIDs acknowledged by the server this pass,
	// in delivery order.
	Synced []string `json:"synced"`

	// Discarded lists writes removed after a non-retryable rejection.
	Discarded []DiscardedWrite `json:"discarded"`

	// Stopped is set when the pass ended early on a systemic failure
	// (network loss, server unavailable) with items still pending.
	Stopped string `json:"stopped,omitempty"`
}
