package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrUserAlreadyExists is returned when an attempt to create a new user
	// fails because a user with the same username or email already exists
	// (case-insensitively) in the database.
	ErrUserAlreadyExists = errors.New("username or email already exists")

	// ErrNoUserWasFound is returned when a query expected to match at least
	// one user record produces an empty result set.
	ErrNoUserWasFound = errors.New("no user was found")

	// ErrRoomNotFound is returned when a read, rename, or delete targets a
	// room slug that does not exist.
	ErrRoomNotFound = errors.New("room was not found")

	// ErrRoomAlreadyExists is returned when creating a room whose slug is
	// already taken.
	ErrRoomAlreadyExists = errors.New("room already exists")

	// ErrExpenseNotFound is returned when an update or delete targets an
	// expense id that does not exist.
	ErrExpenseNotFound = errors.New("expense was not found")
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

	// ErrBeginningTransaction is returned when the database driver cannot
	// start a new transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing an open transaction
	// fails. The transaction is considered rolled back at this point.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, UPDATE, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to execute statement")

	// ErrScanningRow is returned when scanning column values from a single
	// result row into a destination struct fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when scanning column values during
	// multi-row iteration fails, typically mid-result-set.
	ErrScanningRows = errors.New("failed to scan rows")

	// ErrEncodingDocument is returned when a JSONB document column cannot be
	// marshalled before a write.
	ErrEncodingDocument = errors.New("failed to encode document column")

	// ErrDecodingDocument is returned when a JSONB document column read from
	// the database cannot be unmarshalled into its model type.
	ErrDecodingDocument = errors.New("failed to decode document column")
)
