package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by repo and service functions when the requested
// batch or section does not exist in the database.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. missing name, name with no letters or digits).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrConflict is returned when a write would break a uniqueness rule:
// two batches with the same name or link, or two sections with the same
// name under one batch.
// Handlers should map this to HTTP 409 Conflict.
var ErrConflict = errors.New("conflict")

// ErrStorage wraps infrastructure failures from the database (connectivity,
// timeouts, unexpected driver errors). It is never retried.
// Handlers should map this to HTTP 500.
var ErrStorage = errors.New("storage error")

// ErrLinkTaken is the ErrConflict raised when only the batch link collides.
// BatchService.Create treats it as a signal to try the next link candidate;
// errors.Is(ErrLinkTaken, ErrConflict) holds for every other caller.
var ErrLinkTaken = fmt.Errorf("%w: batch link already exists", ErrConflict)
