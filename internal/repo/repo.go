// Package repo contains all database access logic for the batch directory.
// Each resource has its own file with an interface and a Postgres implementation.
// No business logic lives here, only SQL and type mapping.
package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/nextSaimon/students-details/internal/domain"
)

// Postgres SQLSTATE codes the repos translate into domain errors.
const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Accepting this interface instead of *pgxpool.Pool directly allows integration
// tests to pass a transaction that is rolled back after each test, giving free
// per-test isolation without any manual cleanup.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// scanner is satisfied by both pgx.Row and pgx.Rows, allowing the scan
// helpers to be reused for both QueryRow and Query calls.
type scanner interface {
	Scan(dest ...any) error
}

// wrap tags err with the calling operation and classifies it:
// sentinel domain errors pass through, unique violations become
// domain.ErrConflict (domain.ErrLinkTaken for the batch link), a section insert racing its batch's removal becomes
// domain.ErrNotFound and everything else becomes domain.ErrStorage.
func wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	if isDomainErr(err) {
		return fmt.Errorf("%s: %w", op, err)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case uniqueViolation:
			if pgErr.ConstraintName == "batches_link_key" {
				return fmt.Errorf("%s: %w", op, domain.ErrLinkTaken)
			}
			return fmt.Errorf("%s: %w: %s", op, domain.ErrConflict, conflictMessage(pgErr.ConstraintName))
		case foreignKeyViolation:
			// Deleting a referenced batch reports the batches table; inserting
			// a section under a missing batch reports the sections table.
			if pgErr.TableName == "batches" {
				return fmt.Errorf("%s: %w: batch still has sections", op, domain.ErrConflict)
			}
			return fmt.Errorf("%s: %w", op, domain.ErrNotFound)
		}
	}
	return fmt.Errorf("%s: %w: %w", op, domain.ErrStorage, err)
}

// conflictMessage maps a unique constraint name to the message shown to users.
func conflictMessage(constraint string) string {
	switch constraint {
	case "batches_name_key":
		return "batch name already exists"
	case "sections_batch_id_name_key":
		return "section name already exists in this batch"
	default:
		return "duplicate value"
	}
}

// isDomainErr reports whether err already carries one of the domain sentinels.
func isDomainErr(err error) bool {
	return errors.Is(err, domain.ErrNotFound) ||
		errors.Is(err, domain.ErrConflict) ||
		errors.Is(err, domain.ErrValidation) ||
		errors.Is(err, domain.ErrStorage)
}
