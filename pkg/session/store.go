package session

import (
	"context"
	"time"
)

// Store persists session data for IDStorage. A zero expires means the data
// does not expire.
type Store interface {
	// Create stores data under a new id and returns the id.
	Create(ctx context.Context, data map[string]any, expires time.Time) (string, error)

	// Read returns the data stored under id, or ErrSessionNotFound when it is
	// missing or expired.
	Read(ctx context.Context, id string) (map[string]any, error)

	// Update replaces the data stored under id, creating it when missing.
	Update(ctx context.Context, id string, data map[string]any, expires time.Time) error

	// Delete removes id. Deleting a missing id is not an error.
	Delete(ctx context.Context, id string) error
}
