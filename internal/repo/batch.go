package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/nextSaimon/students-details/internal/domain"
)

// BatchRepo defines the persistence operations for Batches.
// The service layer depends on this interface, not the concrete Postgres implementation,
// which allows the service to be unit-tested with a mock.
type BatchRepo interface {
	// Create inserts a new batch and returns the persisted record (with DB-generated
	// id, created_at, and updated_at populated).
	// Returns domain.ErrConflict if the name is already taken and
	// domain.ErrLinkTaken (also an ErrConflict) if only the link is.
	Create(ctx context.Context, batch domain.Batch) (domain.Batch, error)

	// GetByID retrieves a single batch by its UUID primary key.
	// Returns domain.ErrNotFound if no batch with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Batch, error)

	// GetByName retrieves the batch with exactly this name (case-sensitive).
	// Returns domain.ErrNotFound if there is none.
	GetByName(ctx context.Context, name string) (domain.Batch, error)

	// GetByLink retrieves the batch with the given link.
	// Returns domain.ErrNotFound if there is none.
	GetByLink(ctx context.Context, link string) (domain.Batch, error)

	// List returns all batches ordered by created_at ascending.
	List(ctx context.Context) ([]domain.Batch, error)

	// Update overwrites name and session of an existing batch and returns the
	// updated record. Year and link are left untouched.
	// Returns domain.ErrNotFound if no batch with that ID exists.
	Update(ctx context.Context, batch domain.Batch) (domain.Batch, error)

	// Delete removes a batch by ID. Returns domain.ErrNotFound if it does not exist.
	// Sections must be removed first; the foreign key rejects the delete otherwise.
	Delete(ctx context.Context, id uuid.UUID) error
}

// pgBatchRepo is the Postgres implementation of BatchRepo.
type pgBatchRepo struct {
	db db
}

// NewBatchRepo constructs a BatchRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewBatchRepo(db db) BatchRepo {
	return &pgBatchRepo{db: db}
}

const batchColumns = `id, name, session, year, link, created_at, updated_at`

// Create inserts a new batch row and returns the full persisted record.
func (r *pgBatchRepo) Create(ctx context.Context, batch domain.Batch) (domain.Batch, error) {
	const q = `
		INSERT INTO batches (name, session, year, link)
		VALUES (@name, @session, @year, @link)
		RETURNING ` + batchColumns

	args := pgx.NamedArgs{
		"name":    batch.Name,
		"session": batch.Session,
		"year":    batch.Year,
		"link":    batch.Link,
	}

	result, err := scanBatch(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Batch{}, wrap("repo.BatchRepo.Create", err)
	}
	return result, nil
}

// GetByID retrieves a batch by primary key.
func (r *pgBatchRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Batch, error) {
	const q = `SELECT ` + batchColumns + ` FROM batches WHERE id = @id`

	result, err := scanBatch(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.Batch{}, wrap("repo.BatchRepo.GetByID", err)
	}
	return result, nil
}

// GetByName retrieves a batch by its exact name.
func (r *pgBatchRepo) GetByName(ctx context.Context, name string) (domain.Batch, error) {
	const q = `SELECT ` + batchColumns + ` FROM batches WHERE name = @name`

	result, err := scanBatch(r.db.QueryRow(ctx, q, pgx.NamedArgs{"name": name}))
	if err != nil {
		return domain.Batch{}, wrap("repo.BatchRepo.GetByName", err)
	}
	return result, nil
}

// GetByLink retrieves a batch by its derived link.
func (r *pgBatchRepo) GetByLink(ctx context.Context, link string) (domain.Batch, error) {
	const q = `SELECT ` + batchColumns + ` FROM batches WHERE link = @link`

	result, err := scanBatch(r.db.QueryRow(ctx, q, pgx.NamedArgs{"link": link}))
	if err != nil {
		return domain.Batch{}, wrap("repo.BatchRepo.GetByLink", err)
	}
	return result, nil
}

// List returns all batches, oldest first.
func (r *pgBatchRepo) List(ctx context.Context) ([]domain.Batch, error) {
	const q = `SELECT ` + batchColumns + ` FROM batches ORDER BY created_at, id`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, wrap("repo.BatchRepo.List", err)
	}
	defer rows.Close()

	batches := []domain.Batch{}
	for rows.Next() {
		b, err := scanBatch(rows)
		if err != nil {
			return nil, wrap("repo.BatchRepo.List: scan", err)
		}
		batches = append(batches, b)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap("repo.BatchRepo.List: rows", err)
	}
	return batches, nil
}

// Update overwrites the mutable fields of a batch and returns the updated record.
func (r *pgBatchRepo) Update(ctx context.Context, batch domain.Batch) (domain.Batch, error) {
	const q = `
		UPDATE batches
		SET name       = @name,
		    session    = @session,
		    updated_at = now()
		WHERE id = @id
		RETURNING ` + batchColumns

	args := pgx.NamedArgs{
		"id":      batch.ID,
		"name":    batch.Name,
		"session": batch.Session,
	}

	result, err := scanBatch(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Batch{}, wrap("repo.BatchRepo.Update", err)
	}
	return result, nil
}

// Delete removes a batch by primary key.
func (r *pgBatchRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM batches WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return wrap("repo.BatchRepo.Delete", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.BatchRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// scanBatch maps a single database row into a domain.Batch.
func scanBatch(s scanner) (domain.Batch, error) {
	var (
		b  domain.Batch
		id pgtype.UUID
	)

	err := s.Scan(&id, &b.Name, &b.Session, &b.Year, &b.Link, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Batch{}, domain.ErrNotFound
		}
		return domain.Batch{}, err
	}

	b.ID = uuid.UUID(id.Bytes)
	return b, nil
}
