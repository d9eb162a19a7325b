// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Sentinel errors used by the authentication middleware when parsing the
// "Authorization" HTTP header. Callers can match against them with [errors.Is].
var (
	// ErrEmptyAuthorizationHeader is returned by the auth middleware when the
	// incoming request does not include an "Authorization" header at all.
	ErrEmptyAuthorizationHeader = errors.New("empty `Authorization` header")

	// ErrInvalidJSONBody is returned when a request body cannot be decoded
	// into the expected JSON shape.
	ErrInvalidJSONBody = errors.New("invalid JSON body")

	// ErrMissingClientWriteID is returned when a write request carries no
	// idempotency marker. Accepting such a write would make replays after a
	// lost response unsafe.
	ErrMissingClientWriteID = errors.New("missing client_write_id")

	// ErrInvalidRecordQuery is returned when the records listing query
	// parameters cannot be interpreted.
	ErrInvalidRecordQuery = errors.New("invalid records query")
)
