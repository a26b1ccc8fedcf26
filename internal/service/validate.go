package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/nextSaimon/students-details/internal/domain"
)

// requireText trims value and rejects it when nothing is left.
// field is the JSON name reported back to the client.
func requireText(field, value string) (string, error) {
	v := strings.TrimSpace(value)
	if v == "" {
		return "", fmt.Errorf("%w: %s is required", domain.ErrValidation, field)
	}
	return v, nil
}

// checkUnique runs a by-name lookup and turns a hit into domain.ErrConflict.
// taken reports whether the found record belongs to someone other than the
// caller (an update may keep its own name). A miss is not an error.
func checkUnique[T any](
	ctx context.Context,
	lookup func(ctx context.Context) (T, error),
	taken func(T) bool,
	message string,
) error {
	found, err := lookup(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil
		}
		return err
	}
	if taken(found) {
		return fmt.Errorf("%w: %s", domain.ErrConflict, message)
	}
	return nil
}
