package cache

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Find returns the oldest live record for the fingerprint. Concurrent
// writers may have inserted more than one row; lookups take the first.
func (r *PGRepo) Find(ctx context.Context, fingerprint string, now time.Time) (Record, error) {
	const query = `
SELECT id, fingerprint, result, owner_id, created_at, expires_at
FROM analysis_cache
WHERE fingerprint = $1 AND expires_at > $2
ORDER BY created_at
LIMIT 1`

	var rec Record
	var owner sql.NullString
	err := r.DB.QueryRowContext(ctx, query, fingerprint, now).Scan(
		&rec.ID,
		&rec.Fingerprint,
		&rec.Payload,
		&owner,
		&rec.CreatedAt,
		&rec.ExpiresAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, ErrNotFound
	}
	if err != nil {
		return Record{}, err
	}
	if owner.Valid {
		rec.Owner = owner.String
	}
	return rec, nil
}

// Insert stores a new cache record.
func (r *PGRepo) Insert(ctx context.Context, rec Record) error {
	const query = `
INSERT INTO analysis_cache (id, fingerprint, result, owner_id, created_at, expires_at)
VALUES ($1, $2, $3, $4, $5, $6)`

	var owner any
	if rec.Owner != "" {
		owner = rec.Owner
	}
	_, err := r.DB.ExecContext(ctx, query,
		rec.ID,
		rec.Fingerprint,
		[]byte(rec.Payload),
		owner,
		rec.CreatedAt,
		rec.ExpiresAt,
	)
	return err
}

var _ Repo = (*PGRepo)(nil)
