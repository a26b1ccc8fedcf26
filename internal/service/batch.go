// Package service contains the business logic for the batch directory.
// Services validate inputs, enforce uniqueness rules, and orchestrate repo calls.
// No SQL lives here; services depend on repo interfaces, not implementations.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/nextSaimon/students-details/internal/domain"
	"github.com/nextSaimon/students-details/internal/repo"
)

const (
	msgBatchNameTaken = "batch name already exists"

	// maxLinkAttempts bounds the search for a free link; past the numbered
	// suffixes every candidate carries a random id, so exhausting it means
	// something other than ordinary collisions is wrong.
	maxLinkAttempts = 25
)

// BatchService is the sole owner of Batch records. It enforces batch-name
// uniqueness and cascades deletion to the batch's sections.
type BatchService struct {
	batches repo.BatchRepo
	tx      repo.Transactor
	log     *slog.Logger
}

// NewBatchService constructs a BatchService. tx is used for the cascade
// delete so sections and their batch disappear together or not at all.
// A nil log falls back to slog.Default().
func NewBatchService(batches repo.BatchRepo, tx repo.Transactor, log *slog.Logger) *BatchService {
	if log == nil {
		log = slog.Default()
	}
	return &BatchService{batches: batches, tx: tx, log: log}
}

// List returns all batches. Always returns a non-nil slice.
func (s *BatchService) List(ctx context.Context) ([]domain.Batch, error) {
	batches, err := s.batches.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.BatchService.List: %w", err)
	}
	if batches == nil {
		return []domain.Batch{}, nil
	}
	return batches, nil
}

// GetByID returns a single batch.
// Returns domain.ErrNotFound if it does not exist.
func (s *BatchService) GetByID(ctx context.Context, id uuid.UUID) (domain.Batch, error) {
	b, err := s.batches.GetByID(ctx, id)
	if err != nil {
		return domain.Batch{}, fmt.Errorf("service.BatchService.GetByID: %w", err)
	}
	return b, nil
}

// GetByLink returns the batch whose link matches.
// Returns domain.ErrNotFound if none does.
func (s *BatchService) GetByLink(ctx context.Context, link string) (domain.Batch, error) {
	b, err := s.batches.GetByLink(ctx, link)
	if err != nil {
		return domain.Batch{}, fmt.Errorf("service.BatchService.GetByLink: %w", err)
	}
	return b, nil
}

// Create validates the batch, rejects duplicate names, derives a free link,
// and persists it.
// Returns domain.ErrValidation for missing fields and domain.ErrConflict
// when the name is already taken. A derived link that is already in use is
// not an error: the next candidate ("hsc-2024-2", ...) is tried instead.
func (s *BatchService) Create(ctx context.Context, batch domain.Batch) (domain.Batch, error) {
	in, err := validateBatch(batch)
	if err != nil {
		return domain.Batch{}, fmt.Errorf("service.BatchService.Create: %w", err)
	}
	in.Year = strings.TrimSpace(in.Year)

	if err := s.nameFree(ctx, in.Name, uuid.Nil); err != nil {
		return domain.Batch{}, fmt.Errorf("service.BatchService.Create: %w", err)
	}

	base := domain.DeriveLink(in.Name, in.Year)
	for attempt := 1; attempt <= maxLinkAttempts; attempt++ {
		in.Link = domain.LinkCandidate(base, attempt)

		free, err := s.linkFree(ctx, in.Link)
		if err != nil {
			return domain.Batch{}, fmt.Errorf("service.BatchService.Create: %w", err)
		}
		if !free {
			continue
		}

		created, err := s.batches.Create(ctx, in)
		if errors.Is(err, domain.ErrLinkTaken) {
			// Another request took the link between the check and the insert.
			continue
		}
		if err != nil {
			return domain.Batch{}, fmt.Errorf("service.BatchService.Create: %w", err)
		}
		return created, nil
	}
	return domain.Batch{}, fmt.Errorf("service.BatchService.Create: %w", domain.ErrLinkTaken)
}

// Update renames a batch and/or changes its session. The link is not
// re-derived.
// Returns domain.ErrNotFound if the batch does not exist and
// domain.ErrConflict if another batch already has the new name.
func (s *BatchService) Update(ctx context.Context, batch domain.Batch) (domain.Batch, error) {
	in, err := validateBatch(batch)
	if err != nil {
		return domain.Batch{}, fmt.Errorf("service.BatchService.Update: %w", err)
	}

	if _, err := s.batches.GetByID(ctx, in.ID); err != nil {
		return domain.Batch{}, fmt.Errorf("service.BatchService.Update: %w", err)
	}

	if err := s.nameFree(ctx, in.Name, in.ID); err != nil {
		return domain.Batch{}, fmt.Errorf("service.BatchService.Update: %w", err)
	}

	updated, err := s.batches.Update(ctx, in)
	if err != nil {
		return domain.Batch{}, fmt.Errorf("service.BatchService.Update: %w", err)
	}
	return updated, nil
}

// Delete removes a batch and every section under it in one transaction.
// If removing the sections fails, the batch is left in place.
// Returns domain.ErrNotFound if the batch does not exist.
func (s *BatchService) Delete(ctx context.Context, id uuid.UUID) error {
	var removed int64
	err := s.tx.InTx(ctx, func(r repo.Repos) error {
		if _, err := r.Batches.GetByID(ctx, id); err != nil {
			return err
		}

		n, err := NewSectionService(r.Batches, r.Sections).DeleteAllForBatch(ctx, id)
		if err != nil {
			return err
		}
		removed = n

		return r.Batches.Delete(ctx, id)
	})
	if err != nil {
		return fmt.Errorf("service.BatchService.Delete: %w", err)
	}

	s.log.InfoContext(ctx, "batch deleted", "batch_id", id, "sections_removed", removed)
	return nil
}

// nameFree fails with domain.ErrConflict when a batch other than self
// already uses name. Pass uuid.Nil for self on create.
func (s *BatchService) nameFree(ctx context.Context, name string, self uuid.UUID) error {
	return checkUnique(ctx,
		func(ctx context.Context) (domain.Batch, error) { return s.batches.GetByName(ctx, name) },
		func(b domain.Batch) bool { return b.ID != self },
		msgBatchNameTaken,
	)
}

// linkFree reports whether no batch uses link yet.
func (s *BatchService) linkFree(ctx context.Context, link string) (bool, error) {
	_, err := s.batches.GetByLink(ctx, link)
	switch {
	case err == nil:
		return false, nil
	case errors.Is(err, domain.ErrNotFound):
		return true, nil
	default:
		return false, err
	}
}

// validateBatch enforces business rules common to both Create and Update
// and returns the batch with trimmed fields.
//   - Name must be non-empty (whitespace-only names are rejected).
//   - Session must be non-empty.
func validateBatch(b domain.Batch) (domain.Batch, error) {
	name, err := requireText("name", b.Name)
	if err != nil {
		return domain.Batch{}, err
	}
	session, err := requireText("session", b.Session)
	if err != nil {
		return domain.Batch{}, err
	}
	b.Name = name
	b.Session = session
	return b, nil
}
