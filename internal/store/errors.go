package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrAlreadyExists is returned when an INSERT violates one of the unique
	// indexes on username or email. The storage-layer constraint is the
	// authoritative guard; application-level pre-checks only produce a
	// friendlier error earlier.
	ErrAlreadyExists = errors.New("username or email already exists")

	// ErrUserNotFound is returned when a query expected to match exactly one
	// user record produces an empty result set. Default lookups exclude
	// soft-deleted rows, so a deleted account also yields this error unless
	// the include-deleted variant is used.
	ErrUserNotFound = errors.New("user was not found")

	// ErrAdminNotFound is returned when a query expected to match exactly
	// one admin record produces an empty result set.
	ErrAdminNotFound = errors.New("admin was not found")

	// ErrNoFieldsToUpdate is returned when a partial update is invoked with
	// an empty field set.
	ErrNoFieldsToUpdate = errors.New("no fields to update")

	// ErrStorageUnavailable wraps driver failures the error classifier deems
	// transient (lost connections, serialization failures, deadlocks). The
	// operation may succeed if the caller retries.
	ErrStorageUnavailable = errors.New("storage temporarily unavailable")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails (e.g. invalid argument count or unsupported type).
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT or similar
	// read-only query against the database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrScanningRow is returned when scanning column values from a single
	// result row into a destination struct fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when scanning column values during
	// multi-row iteration fails, typically mid-result-set.
	ErrScanningRows = errors.New("failed to scan rows")
)
