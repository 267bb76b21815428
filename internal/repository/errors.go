package repository

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Store-level errors returned by every repository. Callers match them with errors.Is.
var (
	ErrNotFound         = errors.New("record not found")
	ErrConflict         = errors.New("record already exists")
	ErrReferenceMissing = errors.New("referenced record does not exist")
	ErrInvalidValue     = errors.New("invalid column value")
)

// PostgreSQL SQLSTATE codes we translate.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgNotNullViolation    = "23502"
	pgCheckViolation      = "23514"
	pgInvalidTextRepr     = "22P02"
	pgStringTooLong       = "22001"
	pgInvalidDatetime     = "22007"
)

// translate maps driver errors onto the sentinel errors above, keeping the
// original error reachable through the chain.
func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case pgUniqueViolation:
		return fmt.Errorf("%w: %w", ErrConflict, err)
	case pgForeignKeyViolation:
		return fmt.Errorf("%w: %w", ErrReferenceMissing, err)
	case pgNotNullViolation, pgCheckViolation, pgInvalidTextRepr, pgStringTooLong, pgInvalidDatetime:
		return fmt.Errorf("%w: %w", ErrInvalidValue, err)
	default:
		return err
	}
}

// rowScanner is satisfied by both pgx.Row and pgx.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}
