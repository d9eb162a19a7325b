package models

// SubmitResult is the outcome of a single client write submission.
// Exactly one of the two shapes occurs: the server applied the write and
// Record is populated, or the write was captured locally and Queued is true.
type SubmitResult struct {
	// Record is the server's cache record when the write was applied
	// synchronously. Nil when the write was queued instead.
	Record *CacheRecord `json:"record,omitempty"`

	// Queued reports that the write is waiting in the durable local queue.
	Queued bool `json:"queued"`

	// LocalID is the write's identifier on this device, assigned at
	// submission time regardless of outcome.
	LocalID string `json:"local_id"`
}
