package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/nextSaimon/students-details/internal/domain"
)

const msgBatchNotFound = "batch not found"

// CreateBatchRequest is the body of POST /batches.
// Year is optional; when present the link is derived from it.
type CreateBatchRequest struct {
	Name    string `json:"name" validate:"required,max=200"`
	Session string `json:"session" validate:"required,max=200"`
	Year    string `json:"year,omitempty" validate:"omitempty,max=32"`
}

// UpdateBatchRequest is the body of PUT /batches/{batchId}.
type UpdateBatchRequest struct {
	Name    string `json:"name" validate:"required,max=200"`
	Session string `json:"session" validate:"required,max=200"`
}

// Batch is the JSON representation of a batch.
type Batch struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Session   string    `json:"session"`
	Year      *string   `json:"year,omitempty"`
	Link      string    `json:"link"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ListBatches handles GET /batches.
func (s *Server) ListBatches(w http.ResponseWriter, r *http.Request) {
	batches, err := s.batches.List(r.Context())
	if err != nil {
		s.respondErr(w, r, err, msgBatchNotFound)
		return
	}

	resp := make([]Batch, len(batches))
	for i, b := range batches {
		resp[i] = batchToResponse(b)
	}
	writeJSON(w, http.StatusOK, resp)
}

// CreateBatch handles POST /batches.
func (s *Server) CreateBatch(w http.ResponseWriter, r *http.Request) {
	var body CreateBatchRequest
	if !decodeBody(w, r, &body) {
		return
	}

	created, err := s.batches.Create(r.Context(), domain.Batch{
		Name:    body.Name,
		Session: body.Session,
		Year:    body.Year,
	})
	if err != nil {
		s.respondErr(w, r, err, msgBatchNotFound)
		return
	}

	writeJSON(w, http.StatusCreated, batchToResponse(created))
}

// GetBatch handles GET /batches/{batchId}.
func (s *Server) GetBatch(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "batchId")
	if !ok {
		return
	}

	batch, err := s.batches.GetByID(r.Context(), id)
	if err != nil {
		s.respondErr(w, r, err, msgBatchNotFound)
		return
	}

	writeJSON(w, http.StatusOK, batchToResponse(batch))
}

// GetBatchByLink handles GET /batches/by-link/{link}.
func (s *Server) GetBatchByLink(w http.ResponseWriter, r *http.Request) {
	batch, err := s.batches.GetByLink(r.Context(), chi.URLParam(r, "link"))
	if err != nil {
		s.respondErr(w, r, err, msgBatchNotFound)
		return
	}

	writeJSON(w, http.StatusOK, batchToResponse(batch))
}

// UpdateBatch handles PUT /batches/{batchId}.
func (s *Server) UpdateBatch(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "batchId")
	if !ok {
		return
	}
	var body UpdateBatchRequest
	if !decodeBody(w, r, &body) {
		return
	}

	updated, err := s.batches.Update(r.Context(), domain.Batch{
		ID:      id,
		Name:    body.Name,
		Session: body.Session,
	})
	if err != nil {
		s.respondErr(w, r, err, msgBatchNotFound)
		return
	}

	writeJSON(w, http.StatusOK, batchToResponse(updated))
}

// DeleteBatch handles DELETE /batches/{batchId}.
// The batch's sections are removed with it.
func (s *Server) DeleteBatch(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "batchId")
	if !ok {
		return
	}

	if err := s.batches.Delete(r.Context(), id); err != nil {
		s.respondErr(w, r, err, msgBatchNotFound)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// batchToResponse converts a domain.Batch into its JSON representation.
func batchToResponse(b domain.Batch) Batch {
	return Batch{
		ID:        b.ID,
		Name:      b.Name,
		Session:   b.Session,
		Year:      nilIfEmpty(b.Year),
		Link:      b.Link,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

// nilIfEmpty converts an empty string to a nil pointer.
// Used when mapping domain strings to optional API response fields.
func nilIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
