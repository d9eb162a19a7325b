package service

import "errors"

var (
	// ErrInvalidWrite wraps a validation failure on the write path. It is a
	// rejection: the payload can never be accepted as submitted.
	ErrInvalidWrite = errors.New("invalid write provided")

	// ErrUserNotProvisioned is returned when an operation requires a sheet
	// mapping that does not exist and cannot be created.
	ErrUserNotProvisioned = errors.New("user has no provisioned workbook")

	// ErrHydrationUnreachable is returned when the authoritative store
	// cannot be read during a cache rebuild. The previous cache contents
	// stay in place and the server keeps serving them.
	ErrHydrationUnreachable = errors.New("authoritative store unreachable, cache not rebuilt")

	// ErrDrainInProgress is informational: a drain request arrived while a
	// pass was already running and was coalesced into it.
	ErrDrainInProgress = errors.New("drain already in progress")

	// ErrClientOffline is returned when an operation needs the server and
	// the link is down. The caller retries after the next online transition.
	ErrClientOffline = errors.New("server unreachable")
)
