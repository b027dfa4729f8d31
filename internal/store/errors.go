package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrNotFound is returned when a query expected to match exactly one row
	// produces an empty result set, or when a DELETE/UPDATE touches no rows.
	ErrNotFound = errors.New("record not found")

	// ErrAlreadyExists is returned on a unique constraint violation: a
	// duplicate username or email, a repeated like, subscription or playlist
	// entry.
	ErrAlreadyExists = errors.New("record already exists")

	// ErrReferenceNotFound is returned on a foreign key violation, e.g. a
	// comment for a video that was deleted concurrently.
	ErrReferenceNotFound = errors.New("referenced record does not exist")

	// ErrConstraintViolation is returned on a check constraint violation.
	ErrConstraintViolation = errors.New("check constraint violated")

	// ErrRefreshTokenMismatch is returned by the conditional rotation-token
	// update when the stored digest no longer equals the expected one.
	ErrRefreshTokenMismatch = errors.New("stored refresh token does not match")

	// ErrUnavailable is returned when the database could not answer in time
	// or failed with a transient error class.
	ErrUnavailable = errors.New("database unavailable")
)

// Low-level database operation errors.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a query against the
	// database fails with a non-transient error.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrBeginningTransaction is returned when the database driver cannot
	// start a new transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing an open transaction
	// fails. The transaction is considered rolled back at this point.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrScanningRows is returned when scanning column values during
	// multi-row iteration fails.
	ErrScanningRows = errors.New("failed to scan rows")
)
