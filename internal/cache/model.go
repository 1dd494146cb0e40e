package cache

import (
	"encoding/json"
	"errors"
	"time"
)

// DefaultTTL is how long a cached analysis stays servable.
const DefaultTTL = 7 * 24 * time.Hour

// ErrNotFound is returned by repos when no live record matches.
var ErrNotFound = errors.New("not found")

// Record is one cached analysis result. Records are insert-only: a new
// analysis for the same fingerprint creates a new row, never an update.
type Record struct {
	ID          string          `json:"id"`
	Fingerprint string          `json:"fingerprint"`
	Payload     json.RawMessage `json:"payload"`
	Owner       string          `json:"owner,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
	ExpiresAt   time.Time       `json:"expiresAt"`
}
