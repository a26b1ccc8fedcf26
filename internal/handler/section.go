package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/nextSaimon/students-details/internal/domain"
)

const msgSectionNotFound = "section not found"

// SectionRequest is the body of POST /batches/{batchId}/sections and
// PUT /sections/{sectionId}.
type SectionRequest struct {
	Name string `json:"name" validate:"required,max=200"`
}

// Section is the JSON representation of a section.
type Section struct {
	ID        uuid.UUID `json:"id"`
	BatchID   uuid.UUID `json:"batch_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ListSections handles GET /batches/{batchId}/sections.
// An unknown batch yields an empty list, not a 404.
func (s *Server) ListSections(w http.ResponseWriter, r *http.Request) {
	batchID, ok := pathUUID(w, r, "batchId")
	if !ok {
		return
	}

	sections, err := s.sections.ListForBatch(r.Context(), batchID)
	if err != nil {
		s.respondErr(w, r, err, msgBatchNotFound)
		return
	}

	resp := make([]Section, len(sections))
	for i, sec := range sections {
		resp[i] = sectionToResponse(sec)
	}
	writeJSON(w, http.StatusOK, resp)
}

// ListSectionsByLink handles GET /batches/by-link/{link}/sections.
// Unlike ListSections, an unknown link is a 404.
func (s *Server) ListSectionsByLink(w http.ResponseWriter, r *http.Request) {
	sections, err := s.sections.ListForBatchLink(r.Context(), chi.URLParam(r, "link"))
	if err != nil {
		s.respondErr(w, r, err, msgBatchNotFound)
		return
	}

	resp := make([]Section, len(sections))
	for i, sec := range sections {
		resp[i] = sectionToResponse(sec)
	}
	writeJSON(w, http.StatusOK, resp)
}

// CreateSection handles POST /batches/{batchId}/sections.
func (s *Server) CreateSection(w http.ResponseWriter, r *http.Request) {
	batchID, ok := pathUUID(w, r, "batchId")
	if !ok {
		return
	}
	var body SectionRequest
	if !decodeBody(w, r, &body) {
		return
	}

	created, err := s.sections.Create(r.Context(), domain.Section{BatchID: batchID, Name: body.Name})
	if err != nil {
		// The only lookup that can miss on create is the parent batch.
		s.respondErr(w, r, err, msgBatchNotFound)
		return
	}

	writeJSON(w, http.StatusCreated, sectionToResponse(created))
}

// GetSection handles GET /sections/{sectionId}.
func (s *Server) GetSection(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "sectionId")
	if !ok {
		return
	}

	sec, err := s.sections.GetByID(r.Context(), id)
	if err != nil {
		s.respondErr(w, r, err, msgSectionNotFound)
		return
	}

	writeJSON(w, http.StatusOK, sectionToResponse(sec))
}

// UpdateSection handles PUT /sections/{sectionId}.
func (s *Server) UpdateSection(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "sectionId")
	if !ok {
		return
	}
	var body SectionRequest
	if !decodeBody(w, r, &body) {
		return
	}

	updated, err := s.sections.Update(r.Context(), domain.Section{ID: id, Name: body.Name})
	if err != nil {
		s.respondErr(w, r, err, msgSectionNotFound)
		return
	}

	writeJSON(w, http.StatusOK, sectionToResponse(updated))
}

// DeleteSection handles DELETE /sections/{sectionId}.
func (s *Server) DeleteSection(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "sectionId")
	if !ok {
		return
	}

	if err := s.sections.Delete(r.Context(), id); err != nil {
		s.respondErr(w, r, err, msgSectionNotFound)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// sectionToResponse converts a domain.Section to its JSON representation.
func sectionToResponse(sec domain.Section) Section {
	return Section{
		ID:        sec.ID,
		BatchID:   sec.BatchID,
		Name:      sec.Name,
		CreatedAt: sec.CreatedAt,
		UpdatedAt: sec.UpdatedAt,
	}
}
