package service

import (
	"context"
	"fmt"

	"github.com/nextSaimon/students-details/internal/domain"
	"github.com/nextSaimon/students-details/internal/repo"
)

// ExportService assembles a full flat export of all batches and sections.
type ExportService struct {
	rows repo.ExportRepo
}

// NewExportService constructs an ExportService backed by the provided repo.
func NewExportService(rows repo.ExportRepo) *ExportService {
	return &ExportService{rows: rows}
}

// Export returns one ExportRow per section across all batches.
// Batches with no sections contribute one row with empty section fields.
// Always returns a non-nil slice.
func (s *ExportService) Export(ctx context.Context) ([]domain.ExportRow, error) {
	rows, err := s.rows.Rows(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.ExportService.Export: %w", err)
	}
	if rows == nil {
		return []domain.ExportRow{}, nil
	}
	return rows, nil
}
