package adapter

import "errors"

var (
	// ErrRetryable marks a transient delivery failure: the server was
	// unreachable, overloaded, or answered with a 5xx. The originating
	// write stays queued and will be retried on the next drain.
	ErrRetryable = errors.New("transient transport failure")

	// ErrRejected marks a definitive refusal: the server understood the
	// request and will never accept it. Retrying cannot help; the write
	// must be surfaced to the user and discarded.
	ErrRejected = errors.New("write rejected by server")

	// ErrUnauthorized is returned on HTTP 401. The token must be renewed
	// before any further request can succeed.
	ErrUnauthorized = errors.New("client unauthorized")
)
