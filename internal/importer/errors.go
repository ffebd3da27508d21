package importer

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// ErrorKind classifies why a source row was rejected. Row-level kinds are
// always recovered locally: the row is counted and logged, the stage goes
// on. Stage-level failures (overflow, failed commits) travel up as plain
// errors instead.
type ErrorKind string

const (
	// ErrMissingField marks rows whose required key columns are null after
	// cleaning. They are dropped before any write is attempted.
	ErrMissingField ErrorKind = "missing_required_field"

	// ErrUnresolvedParent marks rows whose parent natural code has no entry
	// in the mapping built by an earlier stage.
	ErrUnresolvedParent ErrorKind = "unresolved_parent"

	// ErrForeignKey, ErrUniqueness and ErrOther subdivide integrity
	// violations raised by the store at write time.
	ErrForeignKey ErrorKind = "foreign_key_violation"
	ErrUniqueness ErrorKind = "uniqueness_violation"
	ErrOther      ErrorKind = "other"

	// ErrDataFormat marks values that failed type coercion.
	ErrDataFormat ErrorKind = "data_format"
)

// SQLSTATE classes for integrity violations.
const (
	pgForeignKeyViolation = "23503"
	pgUniqueViolation     = "23505"
	pgNotNullViolation    = "23502"
)

// classifyWriteError buckets a write-time error into the taxonomy. Postgres
// errors are matched on SQLSTATE; anything else falls back to message text
// so the sqlite-backed tests classify the same way.
func classifyWriteError(err error) ErrorKind {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgForeignKeyViolation:
			return ErrForeignKey
		case pgUniqueViolation, pgNotNullViolation:
			return ErrUniqueness
		default:
			return ErrOther
		}
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "foreign key constraint"):
		return ErrForeignKey
	case strings.Contains(msg, "unique constraint"), strings.Contains(msg, "not null constraint"):
		return ErrUniqueness
	case strings.Contains(msg, "invalid input syntax"), strings.Contains(msg, "datatype mismatch"):
		return ErrDataFormat
	default:
		return ErrOther
	}
}
