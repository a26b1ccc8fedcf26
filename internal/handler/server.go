// Package handler implements the HTTP handlers for the batch directory API.
// All handlers are methods on Server. Methods are split into domain-specific
// files (health.go, batch.go, section.go, export.go) but all share the same
// Server struct so they can access its dependencies.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/nextSaimon/students-details/internal/domain"
)

// BatchServicer defines the business operations the batch handlers depend on.
// Defining the interface here (in the consumer package) follows the Go
// convention: "accept interfaces, return concrete types". It lets handler
// tests inject a mock without touching the database or service layer.
type BatchServicer interface {
	List(ctx context.Context) ([]domain.Batch, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Batch, error)
	GetByLink(ctx context.Context, link string) (domain.Batch, error)
	Create(ctx context.Context, batch domain.Batch) (domain.Batch, error)
	Update(ctx context.Context, batch domain.Batch) (domain.Batch, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// SectionServicer defines the business operations the section handlers depend on.
type SectionServicer interface {
	ListForBatch(ctx context.Context, batchID uuid.UUID) ([]domain.Section, error)
	ListForBatchLink(ctx context.Context, link string) ([]domain.Section, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Section, error)
	Create(ctx context.Context, section domain.Section) (domain.Section, error)
	Update(ctx context.Context, section domain.Section) (domain.Section, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// ExportServicer defines the export operation used by GET /export.
type ExportServicer interface {
	Export(ctx context.Context) ([]domain.ExportRow, error)
}

// Server holds the services every handler needs.
// Wire it in main.go by mounting Server.Routes on the outer router.
type Server struct {
	batches  BatchServicer
	sections SectionServicer
	export   ExportServicer
	log      *slog.Logger
}

// NewServer constructs the Server with all its dependencies.
// A nil log falls back to slog.Default().
func NewServer(batches BatchServicer, sections SectionServicer, export ExportServicer, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{batches: batches, sections: sections, export: export, log: log}
}

// NewHealthHandler returns a Server for health-check-only use.
func NewHealthHandler() *Server {
	return NewServer(nil, nil, nil, nil)
}

// Routes returns a chi router with every endpoint registered.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, codeNotFound, "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, codeValidation, "method not allowed")
	})

	r.Get("/healthz", s.GetHealth)
	r.Get("/openapi.yaml", s.GetOpenAPI)
	r.Get("/export", s.GetExport)

	r.Route("/batches", func(r chi.Router) {
		r.Get("/", s.ListBatches)
		r.Post("/", s.CreateBatch)
		r.Get("/by-link/{link}", s.GetBatchByLink)
		r.Get("/by-link/{link}/sections", s.ListSectionsByLink)

		r.Route("/{batchId}", func(r chi.Router) {
			r.Get("/", s.GetBatch)
			r.Put("/", s.UpdateBatch)
			r.Delete("/", s.DeleteBatch)

			r.Get("/sections", s.ListSections)
			r.Post("/sections", s.CreateSection)
		})
	})

	r.Route("/sections/{sectionId}", func(r chi.Router) {
		r.Get("/", s.GetSection)
		r.Put("/", s.UpdateSection)
		r.Delete("/", s.DeleteSection)
	})

	return r
}
