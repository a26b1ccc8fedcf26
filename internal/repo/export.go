package repo

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/nextSaimon/students-details/internal/domain"
)

// ExportRepo reads the flat batch/section table used by the export.
type ExportRepo interface {
	// Rows returns one row per section, plus one row with empty section
	// fields for each batch that has none. Rows are ordered by batch, then
	// section, oldest first. The result comes from a single statement, so it
	// is one consistent snapshot even while batches are being deleted.
	Rows(ctx context.Context) ([]domain.ExportRow, error)
}

type pgExportRepo struct {
	db db
}

// NewExportRepo constructs an ExportRepo backed by the provided db connection.
func NewExportRepo(db db) ExportRepo {
	return &pgExportRepo{db: db}
}

func (r *pgExportRepo) Rows(ctx context.Context) ([]domain.ExportRow, error) {
	const q = `
		SELECT b.id, b.name, b.session, b.link, s.id, s.name
		FROM batches b
		LEFT JOIN sections s ON s.batch_id = b.id
		ORDER BY b.created_at, b.id, s.created_at, s.id`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, wrap("repo.ExportRepo.Rows", err)
	}
	defer rows.Close()

	out := []domain.ExportRow{}
	for rows.Next() {
		var (
			row         domain.ExportRow
			batchID     pgtype.UUID
			sectionID   pgtype.UUID
			sectionName pgtype.Text
		)
		if err := rows.Scan(&batchID, &row.BatchName, &row.BatchSession, &row.BatchLink, &sectionID, &sectionName); err != nil {
			return nil, wrap("repo.ExportRepo.Rows: scan", err)
		}
		row.BatchID = uuid.UUID(batchID.Bytes).String()
		if sectionID.Valid {
			row.SectionID = uuid.UUID(sectionID.Bytes).String()
			row.SectionName = sectionName.String
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap("repo.ExportRepo.Rows: rows", err)
	}
	return out, nil
}
