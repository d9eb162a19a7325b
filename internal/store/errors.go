package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrUserAlreadyExists is returned when an attempt to register a sheet
	// mapping fails because a row for the same user ID already exists.
	ErrUserAlreadyExists = errors.New("user already exists")

	// ErrUserNotFound is returned when a query expected to match a user's
	// sheet mapping produces an empty result set.
	ErrUserNotFound = errors.New("user was not found")

	// ErrRecordNotSaved is returned when an INSERT or UPDATE against the
	// cache completes without error but the number of affected rows is
	// zero, indicating that nothing was actually persisted.
	ErrRecordNotSaved = errors.New("cache record was not saved")

	// ErrRecordNotFound is returned when an operation targets a cache
	// record that does not exist.
	ErrRecordNotFound = errors.New("cache record was not found")

	// ErrStorageUnavailable is returned when the client's local durable
	// storage cannot be opened or written. A write failing with it is lost
	// and must be surfaced immediately, never silently dropped.
	ErrStorageUnavailable = errors.New("local storage unavailable")

	// ErrDuplicateWrite is returned by Enqueue when a queued write with the
	// same local ID is already present. The queue never holds two copies of
	// one write.
	ErrDuplicateWrite = errors.New("write is already queued")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrBeginningTransaction is returned when the database driver cannot
	// start a new transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing an open transaction
	// fails. The transaction is considered rolled back at this point.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrPreparingStatement is returned when a SQL statement cannot be
	// prepared.
	ErrPreparingStatement = errors.New("failed to prepare statement")

	// ErrScanningRow is returned when scanning column values from a result
	// row into a destination struct fails.
	ErrScanningRow = errors.New("failed to scan row")
)
