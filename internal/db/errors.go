package db

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// PostgreSQL error codes the repositories react to.
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
)

var (
	// ErrNotFound is returned when a lookup matched no row.
	ErrNotFound = errors.New("row not found")

	// ErrDuplicateKey is returned when a write hits a unique constraint, such as
	// channels_name_key or videos_channel_name_key.
	ErrDuplicateKey = errors.New("duplicate key violation")

	// ErrForeignKeyViolation is returned when a video references a channel row that is gone.
	ErrForeignKeyViolation = errors.New("foreign key violation")
)

// StoreError is a classified storage failure.
//
//nolint:govet // fieldalignment: Accept minor memory overhead for better readability
type StoreError struct {
	Op         string
	Kind       error
	Constraint string
	Err        error
}

func (e *StoreError) Error() string {
	if e.Constraint != "" {
		return fmt.Sprintf("%s: %v (constraint: %s)", e.Op, e.Kind, e.Constraint)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Kind)
}

func (e *StoreError) Unwrap() []error {
	return []error{e.Kind, e.Err}
}

// WrapError annotates err with the operation and classifies it as one of the
// sentinel errors when possible. Unclassified errors are wrapped unchanged.
func WrapError(err error, operation string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return &StoreError{Op: operation, Kind: ErrNotFound, Err: err}
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case codeUniqueViolation:
			return &StoreError{Op: operation, Kind: ErrDuplicateKey, Constraint: pgErr.ConstraintName, Err: err}
		case codeForeignKeyViolation:
			return &StoreError{Op: operation, Kind: ErrForeignKeyViolation, Constraint: pgErr.ConstraintName, Err: err}
		default:
			return fmt.Errorf("%s: database error [%s]: %w", operation, pgErr.Code, err)
		}
	}

	return fmt.Errorf("%s: %w", operation, err)
}

// ConstraintOf returns the name of the constraint behind err, or "".
func ConstraintOf(err error) string {
	var storeErr *StoreError
	if errors.As(err, &storeErr) {
		return storeErr.Constraint
	}
	return ""
}

// IsNotFound returns true if the error is an ErrNotFound error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsDuplicateKey returns true if the error is an ErrDuplicateKey error.
func IsDuplicateKey(err error) bool {
	return errors.Is(err, ErrDuplicateKey)
}

// IsForeignKeyViolation returns true if the error is an ErrForeignKeyViolation error.
func IsForeignKeyViolation(err error) bool {
	return errors.Is(err, ErrForeignKeyViolation)
}
