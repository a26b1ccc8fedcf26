package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/nextSaimon/students-details/internal/domain"
	"github.com/nextSaimon/students-details/internal/repo"
)

const msgSectionNameTaken = "section name already exists in this batch"

// SectionService implements business logic for Section operations.
// It holds the batches repo because creating a section requires verifying
// the parent batch exists.
type SectionService struct {
	batches  repo.BatchRepo
	sections repo.SectionRepo
}

// NewSectionService constructs a SectionService backed by the provided repos.
func NewSectionService(batches repo.BatchRepo, sections repo.SectionRepo) *SectionService {
	return &SectionService{batches: batches, sections: sections}
}

// ListForBatch returns all sections of a batch.
// Always returns a non-nil slice so callers can safely range over it; an
// unknown batch simply has no sections.
func (s *SectionService) ListForBatch(ctx context.Context, batchID uuid.UUID) ([]domain.Section, error) {
	sections, err := s.sections.ListByBatchID(ctx, batchID)
	if err != nil {
		return nil, fmt.Errorf("service.SectionService.ListForBatch: %w", err)
	}
	if sections == nil {
		return []domain.Section{}, nil
	}
	return sections, nil
}

// ListForBatchLink returns all sections of the batch with the given link.
// Unlike ListForBatch, an unknown link is domain.ErrNotFound.
func (s *SectionService) ListForBatchLink(ctx context.Context, link string) ([]domain.Section, error) {
	b, err := s.batches.GetByLink(ctx, link)
	if err != nil {
		return nil, fmt.Errorf("service.SectionService.ListForBatchLink: %w", err)
	}
	sections, err := s.ListForBatch(ctx, b.ID)
	if err != nil {
		return nil, fmt.Errorf("service.SectionService.ListForBatchLink: %w", err)
	}
	return sections, nil
}

// GetByID returns a single section.
// Returns domain.ErrNotFound if it does not exist.
func (s *SectionService) GetByID(ctx context.Context, id uuid.UUID) (domain.Section, error) {
	sec, err := s.sections.GetByID(ctx, id)
	if err != nil {
		return domain.Section{}, fmt.Errorf("service.SectionService.GetByID: %w", err)
	}
	return sec, nil
}

// Create validates the section, verifies the parent batch exists, rejects
// a name already used under that batch, then persists.
// Returns domain.ErrValidation, domain.ErrNotFound (no such batch), or
// domain.ErrConflict.
func (s *SectionService) Create(ctx context.Context, section domain.Section) (domain.Section, error) {
	name, err := requireText("name", section.Name)
	if err != nil {
		return domain.Section{}, fmt.Errorf("service.SectionService.Create: %w", err)
	}
	section.Name = name

	if _, err := s.batches.GetByID(ctx, section.BatchID); err != nil {
		return domain.Section{}, fmt.Errorf("service.SectionService.Create: %w", err)
	}

	if err := s.nameFree(ctx, section.BatchID, name, uuid.Nil); err != nil {
		return domain.Section{}, fmt.Errorf("service.SectionService.Create: %w", err)
	}

	created, err := s.sections.Create(ctx, section)
	if err != nil {
		return domain.Section{}, fmt.Errorf("service.SectionService.Create: %w", err)
	}
	return created, nil
}

// Update renames a section. The parent batch cannot change.
// Returns domain.ErrNotFound if the section does not exist and
// domain.ErrConflict if a sibling already has the new name.
func (s *SectionService) Update(ctx context.Context, section domain.Section) (domain.Section, error) {
	name, err := requireText("name", section.Name)
	if err != nil {
		return domain.Section{}, fmt.Errorf("service.SectionService.Update: %w", err)
	}

	current, err := s.sections.GetByID(ctx, section.ID)
	if err != nil {
		return domain.Section{}, fmt.Errorf("service.SectionService.Update: %w", err)
	}

	if err := s.nameFree(ctx, current.BatchID, name, current.ID); err != nil {
		return domain.Section{}, fmt.Errorf("service.SectionService.Update: %w", err)
	}

	current.Name = name
	updated, err := s.sections.Update(ctx, current)
	if err != nil {
		return domain.Section{}, fmt.Errorf("service.SectionService.Update: %w", err)
	}
	return updated, nil
}

// Delete removes a single section.
// Returns domain.ErrNotFound if it does not exist.
func (s *SectionService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.sections.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.SectionService.Delete: %w", err)
	}
	return nil
}

// DeleteAllForBatch removes every section of a batch and returns how many
// were removed. It is idempotent: a batch with no sections yields 0, nil.
// BatchService.Delete calls it as the first half of the cascade.
func (s *SectionService) DeleteAllForBatch(ctx context.Context, batchID uuid.UUID) (int64, error) {
	n, err := s.sections.DeleteByBatchID(ctx, batchID)
	if err != nil {
		return 0, fmt.Errorf("service.SectionService.DeleteAllForBatch: %w", err)
	}
	return n, nil
}

// nameFree fails with domain.ErrConflict when a section other than self
// already uses name under batchID.
func (s *SectionService) nameFree(ctx context.Context, batchID uuid.UUID, name string, self uuid.UUID) error {
	return checkUnique(ctx,
		func(ctx context.Context) (domain.Section, error) { return s.sections.GetByName(ctx, batchID, name) },
		func(sec domain.Section) bool { return sec.ID != self },
		msgSectionNameTaken,
	)
}
