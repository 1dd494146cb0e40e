package cache

import (
	"context"
	"time"
)

// Repo defines persistence operations for cached analyses.
type Repo interface {
	// Find returns the first live (unexpired as of now) record for the
	// fingerprint, or ErrNotFound.
	Find(ctx context.Context, fingerprint string, now time.Time) (Record, error)
	// Insert stores a new record. Duplicate fingerprints are allowed.
	Insert(ctx context.Context, rec Record) error
}
