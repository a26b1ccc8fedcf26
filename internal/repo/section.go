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

// SectionRepo defines the persistence operations for Sections.
type SectionRepo interface {
	// Create inserts a new section and returns the persisted record.
	// Returns domain.ErrConflict if the batch already has a section with that name.
	Create(ctx context.Context, section domain.Section) (domain.Section, error)

	// GetByID retrieves a single section by its UUID.
	// Returns domain.ErrNotFound if no section with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Section, error)

	// GetByName retrieves the section named name under batchID.
	// Returns domain.ErrNotFound if there is none.
	GetByName(ctx context.Context, batchID uuid.UUID, name string) (domain.Section, error)

	// ListByBatchID returns all sections of a batch ordered by created_at ascending.
	ListByBatchID(ctx context.Context, batchID uuid.UUID) ([]domain.Section, error)

	// Update overwrites the name of a section and returns the updated record.
	// Returns domain.ErrNotFound if no section with that ID exists.
	Update(ctx context.Context, section domain.Section) (domain.Section, error)

	// Delete removes a section by ID.
	// Returns domain.ErrNotFound if no section with that ID exists.
	Delete(ctx context.Context, id uuid.UUID) error

	// DeleteByBatchID removes every section of a batch and returns how many
	// rows were removed. Removing zero rows is not an error.
	DeleteByBatchID(ctx context.Context, batchID uuid.UUID) (int64, error)
}

// pgSectionRepo is the Postgres implementation of SectionRepo.
type pgSectionRepo struct {
	db db
}

// NewSectionRepo constructs a SectionRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewSectionRepo(db db) SectionRepo {
	return &pgSectionRepo{db: db}
}

const sectionColumns = `id, batch_id, name, created_at, updated_at`

func (r *pgSectionRepo) Create(ctx context.Context, section domain.Section) (domain.Section, error) {
	const q = `
		INSERT INTO sections (batch_id, name)
		VALUES (@batch_id, @name)
		RETURNING ` + sectionColumns

	args := pgx.NamedArgs{
		"batch_id": section.BatchID,
		"name":     section.Name,
	}

	result, err := scanSection(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Section{}, wrap("repo.SectionRepo.Create", err)
	}
	return result, nil
}

func (r *pgSectionRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Section, error) {
	const q = `SELECT ` + sectionColumns + ` FROM sections WHERE id = @id`

	result, err := scanSection(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.Section{}, wrap("repo.SectionRepo.GetByID", err)
	}
	return result, nil
}

func (r *pgSectionRepo) GetByName(ctx context.Context, batchID uuid.UUID, name string) (domain.Section, error) {
	const q = `
		SELECT ` + sectionColumns + `
		FROM sections
		WHERE batch_id = @batch_id AND name = @name`

	result, err := scanSection(r.db.QueryRow(ctx, q, pgx.NamedArgs{"batch_id": batchID, "name": name}))
	if err != nil {
		return domain.Section{}, wrap("repo.SectionRepo.GetByName", err)
	}
	return result, nil
}

func (r *pgSectionRepo) ListByBatchID(ctx context.Context, batchID uuid.UUID) ([]domain.Section, error) {
	const q = `
		SELECT ` + sectionColumns + `
		FROM sections
		WHERE batch_id = @batch_id
		ORDER BY created_at, id`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"batch_id": batchID})
	if err != nil {
		return nil, wrap("repo.SectionRepo.ListByBatchID", err)
	}
	defer rows.Close()

	sections := []domain.Section{}
	for rows.Next() {
		s, err := scanSection(rows)
		if err != nil {
			return nil, wrap("repo.SectionRepo.ListByBatchID: scan", err)
		}
		sections = append(sections, s)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap("repo.SectionRepo.ListByBatchID: rows", err)
	}
	return sections, nil
}

func (r *pgSectionRepo) Update(ctx context.Context, section domain.Section) (domain.Section, error) {
	const q = `
		UPDATE sections
		SET name       = @name,
		    updated_at = now()
		WHERE id = @id
		RETURNING ` + sectionColumns

	result, err := scanSection(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": section.ID, "name": section.Name}))
	if err != nil {
		return domain.Section{}, wrap("repo.SectionRepo.Update", err)
	}
	return result, nil
}

func (r *pgSectionRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM sections WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return wrap("repo.SectionRepo.Delete", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.SectionRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

func (r *pgSectionRepo) DeleteByBatchID(ctx context.Context, batchID uuid.UUID) (int64, error) {
	const q = `DELETE FROM sections WHERE batch_id = @batch_id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"batch_id": batchID})
	if err != nil {
		return 0, wrap("repo.SectionRepo.DeleteByBatchID", err)
	}
	return tag.RowsAffected(), nil
}

// scanSection maps a single database row into a domain.Section.
func scanSection(s scanner) (domain.Section, error) {
	var (
		sec     domain.Section
		id      pgtype.UUID
		batchID pgtype.UUID
	)
	err := s.Scan(&id, &batchID, &sec.Name, &sec.CreatedAt, &sec.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Section{}, domain.ErrNotFound
		}
		return domain.Section{}, err
	}
	sec.ID = uuid.UUID(id.Bytes)
	sec.BatchID = uuid.UUID(batchID.Bytes)
	return sec, nil
}
