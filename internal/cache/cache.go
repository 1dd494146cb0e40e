// Package cache provides the content-addressed analysis cache: a
// deterministic fingerprint over the analysis inputs mapped to a stored
// result with a TTL. Store-side failures never reach the caller; a
// broken cache degrades to recomputing analyses, not to errors.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"resumelens-backend/internal/shared/metrics"
	"resumelens-backend/internal/shared/telemetry"
)

// Cache wraps a Repo with the degrade-to-miss and best-effort-store
// semantics of the analysis pipeline.
type Cache struct {
	Repo Repo
	TTL  time.Duration

	now func() time.Time
}

// New constructs a Cache with the default TTL.
func New(repo Repo) *Cache {
	return &Cache{Repo: repo, TTL: DefaultTTL, now: time.Now}
}

// Lookup returns the cached payload for the fingerprint, if any. Store
// errors are logged and reported as a miss.
func (c *Cache) Lookup(ctx context.Context, fingerprint string) (json.RawMessage, bool) {
	if c == nil || c.Repo == nil {
		return nil, false
	}
	rec, err := c.Repo.Find(ctx, fingerprint, c.clock()())
	if err != nil {
		if err != ErrNotFound {
			telemetry.Warn("cache.lookup_failed", map[string]any{
				"fingerprint": fingerprint,
				"error":       err.Error(),
			})
		}
		metrics.IncCacheMiss()
		return nil, false
	}
	metrics.IncCacheHit()
	return rec.Payload, true
}

// Store inserts a new record for the fingerprint. Failures are swallowed;
// a cache write must never block the critical path.
func (c *Cache) Store(ctx context.Context, fingerprint string, payload json.RawMessage, owner string) {
	if c == nil || c.Repo == nil {
		return
	}
	ttl := c.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	now := c.clock()()
	rec := Record{
		ID:          uuid.NewString(),
		Fingerprint: fingerprint,
		Payload:     payload,
		Owner:       owner,
		CreatedAt:   now,
		ExpiresAt:   now.Add(ttl),
	}
	if err := c.Repo.Insert(ctx, rec); err != nil {
		telemetry.Warn("cache.store_failed", map[string]any{
			"fingerprint": fingerprint,
			"error":       err.Error(),
		})
	}
}

func (c *Cache) clock() func() time.Time {
	if c.now != nil {
		return c.now
	}
	return time.Now
}
