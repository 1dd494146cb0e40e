package cache

import (
	"context"
	"sync"
	"time"
)

// MemoryRepo stores cache records in memory and is safe for concurrent use.
type MemoryRepo struct {
	mu      sync.RWMutex
	records []Record
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{}
}

// Find returns the oldest live record for the fingerprint.
func (r *MemoryRepo) Find(ctx context.Context, fingerprint string, now time.Time) (Record, error) {
	if err := ctx.Err(); err != nil {
		return Record{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, rec := range r.records {
		if rec.Fingerprint == fingerprint && rec.ExpiresAt.After(now) {
			return rec, nil
		}
	}
	return Record{}, ErrNotFound
}

// Insert stores a new record. Duplicate fingerprints are allowed.
func (r *MemoryRepo) Insert(ctx context.Context, rec Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	rec.Payload = append([]byte(nil), rec.Payload...)
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, rec)
	return nil
}

// Len reports the number of stored records.
func (r *MemoryRepo) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.records)
}

var _ Repo = (*MemoryRepo)(nil)
