package service_test

import (
	"context"
	"maps"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/nextSaimon/students-details/internal/domain"
	"github.com/nextSaimon/students-details/internal/repo"
)

// memStore is an in-memory stand-in for the batches and sections tables.
// It enforces the same unique keys as the migrations so property tests can
// run the real services end to end without Postgres.
type memStore struct {
	batches  map[uuid.UUID]domain.Batch
	sections map[uuid.UUID]domain.Section
	seq      int

	// failDeleteByBatch, when set, is returned by DeleteByBatchID after the
	// rows have been removed, simulating a failure mid-cascade.
	failDeleteByBatch error
}

func newMemStore() *memStore {
	return &memStore{
		batches:  map[uuid.UUID]domain.Batch{},
		sections: map[uuid.UUID]domain.Section{},
	}
}

func (m *memStore) now() time.Time {
	m.seq++
	return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(m.seq) * time.Second)
}

func (m *memStore) batchRepo() repo.BatchRepo     { return &memBatchRepo{m} }
func (m *memStore) sectionRepo() repo.SectionRepo { return &memSectionRepo{m} }
func (m *memStore) transactor() repo.Transactor   { return &memTransactor{m} }
func (m *memStore) exportRepo() repo.ExportRepo   { return &memExportRepo{m} }

// ---- batches ---------------------------------------------------------------

type memBatchRepo struct{ m *memStore }

var _ repo.BatchRepo = (*memBatchRepo)(nil)

func (r *memBatchRepo) Create(_ context.Context, b domain.Batch) (domain.Batch, error) {
	for _, existing := range r.m.batches {
		if existing.Name == b.Name {
			return domain.Batch{}, domain.ErrConflict
		}
		if existing.Link == b.Link {
			return domain.Batch{}, domain.ErrLinkTaken
		}
	}
	b.ID = uuid.New()
	b.CreatedAt = r.m.now()
	b.UpdatedAt = b.CreatedAt
	r.m.batches[b.ID] = b
	return b, nil
}

func (r *memBatchRepo) GetByID(_ context.Context, id uuid.UUID) (domain.Batch, error) {
	b, ok := r.m.batches[id]
	if !ok {
		return domain.Batch{}, domain.ErrNotFound
	}
	return b, nil
}

func (r *memBatchRepo) GetByName(_ context.Context, name string) (domain.Batch, error) {
	for _, b := range r.m.batches {
		if b.Name == name {
			return b, nil
		}
	}
	return domain.Batch{}, domain.ErrNotFound
}

func (r *memBatchRepo) GetByLink(_ context.Context, link string) (domain.Batch, error) {
	for _, b := range r.m.batches {
		if b.Link == link {
			return b, nil
		}
	}
	return domain.Batch{}, domain.ErrNotFound
}

func (r *memBatchRepo) List(_ context.Context) ([]domain.Batch, error) {
	out := []domain.Batch{}
	for _, b := range r.m.batches {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *memBatchRepo) Update(_ context.Context, b domain.Batch) (domain.Batch, error) {
	current, ok := r.m.batches[b.ID]
	if !ok {
		return domain.Batch{}, domain.ErrNotFound
	}
	current.Name = b.Name
	current.Session = b.Session
	current.UpdatedAt = r.m.now()
	r.m.batches[b.ID] = current
	return current, nil
}

func (r *memBatchRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.m.batches[id]; !ok {
		return domain.ErrNotFound
	}
	for _, s := range r.m.sections {
		if s.BatchID == id {
			// Mirrors the ON DELETE RESTRICT foreign key.
			return domain.ErrStorage
		}
	}
	delete(r.m.batches, id)
	return nil
}

// ---- sections --------------------------------------------------------------

type memSectionRepo struct{ m *memStore }

var _ repo.SectionRepo = (*memSectionRepo)(nil)

func (r *memSectionRepo) Create(_ context.Context, s domain.Section) (domain.Section, error) {
	for _, existing := range r.m.sections {
		if existing.BatchID == s.BatchID && existing.Name == s.Name {
			return domain.Section{}, domain.ErrConflict
		}
	}
	s.ID = uuid.New()
	s.CreatedAt = r.m.now()
	s.UpdatedAt = s.CreatedAt
	r.m.sections[s.ID] = s
	return s, nil
}

func (r *memSectionRepo) GetByID(_ context.Context, id uuid.UUID) (domain.Section, error) {
	s, ok := r.m.sections[id]
	if !ok {
		return domain.Section{}, domain.ErrNotFound
	}
	return s, nil
}

func (r *memSectionRepo) GetByName(_ context.Context, batchID uuid.UUID, name string) (domain.Section, error) {
	for _, s := range r.m.sections {
		if s.BatchID == batchID && s.Name == name {
			return s, nil
		}
	}
	return domain.Section{}, domain.ErrNotFound
}

func (r *memSectionRepo) ListByBatchID(_ context.Context, batchID uuid.UUID) ([]domain.Section, error) {
	out := []domain.Section{}
	for _, s := range r.m.sections {
		if s.BatchID == batchID {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *memSectionRepo) Update(_ context.Context, s domain.Section) (domain.Section, error) {
	current, ok := r.m.sections[s.ID]
	if !ok {
		return domain.Section{}, domain.ErrNotFound
	}
	current.Name = s.Name
	current.UpdatedAt = r.m.now()
	r.m.sections[s.ID] = current
	return current, nil
}

func (r *memSectionRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.m.sections[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.m.sections, id)
	return nil
}

func (r *memSectionRepo) DeleteByBatchID(_ context.Context, batchID uuid.UUID) (int64, error) {
	var n int64
	for id, s := range r.m.sections {
		if s.BatchID == batchID {
			delete(r.m.sections, id)
			n++
		}
	}
	if r.m.failDeleteByBatch != nil {
		return 0, r.m.failDeleteByBatch
	}
	return n, nil
}

// ---- export ----------------------------------------------------------------

// memExportRepo mirrors the LEFT JOIN of the Postgres export query.
type memExportRepo struct{ m *memStore }

var _ repo.ExportRepo = (*memExportRepo)(nil)

func (r *memExportRepo) Rows(ctx context.Context) ([]domain.ExportRow, error) {
	batches, _ := r.m.batchRepo().List(ctx)
	out := []domain.ExportRow{}
	for _, b := range batches {
		base := domain.ExportRow{
			BatchID:      b.ID.String(),
			BatchName:    b.Name,
			BatchSession: b.Session,
			BatchLink:    b.Link,
		}
		sections, _ := r.m.sectionRepo().ListByBatchID(ctx, b.ID)
		if len(sections) == 0 {
			out = append(out, base)
			continue
		}
		for _, sec := range sections {
			row := base
			row.SectionID = sec.ID.String()
			row.SectionName = sec.Name
			out = append(out, row)
		}
	}
	return out, nil
}

// ---- transactions ----------------------------------------------------------

// memTransactor snapshots both tables and restores them if fn fails.
type memTransactor struct{ m *memStore }

var _ repo.Transactor = (*memTransactor)(nil)

func (t *memTransactor) InTx(_ context.Context, fn func(r repo.Repos) error) error {
	batches := maps.Clone(t.m.batches)
	sections := maps.Clone(t.m.sections)

	if err := fn(repo.Repos{Batches: t.m.batchRepo(), Sections: t.m.sectionRepo()}); err != nil {
		t.m.batches = batches
		t.m.sections = sections
		return err
	}
	return nil
}
