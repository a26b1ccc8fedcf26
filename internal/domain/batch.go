// Package domain contains the core data types for the batch directory.
// This package has no dependency on any other internal package and is
// imported by every other internal package (repo, service, handler).
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Batch is a cohort of students, e.g. "HSC-2024".
// A batch is the top-level aggregate; sections belong to a batch.
//
// Link is derived from Name or Year once, at creation, and is not
// recomputed when the batch is renamed.
type Batch struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Session   string    `json:"session"`
	Year      string    `json:"year,omitempty"`
	Link      string    `json:"link"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
