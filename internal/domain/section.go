package domain

import (
	"time"

	"github.com/google/uuid"
)

// Section is a named subdivision of a batch (e.g. "Science").
// BatchID is fixed at creation; a section never moves between batches.
type Section struct {
	ID        uuid.UUID
	BatchID   uuid.UUID
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
