package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// StateRepository persists opaque JSON blobs keyed by name. The asset list
// and the goal set are each stored as a single blob, mirroring the single
// persisted client-side store this service replaced.
type StateRepository struct {
	pool *pgxpool.Pool
}

// NewStateRepository creates a new StateRepository
func NewStateRepository(pool *pgxpool.Pool) *StateRepository {
	return &StateRepository{pool: pool}
}

// Load retrieves a blob. The second return value reports whether the key exists.
func (r *StateRepository) Load(ctx context.Context, key string) ([]byte, bool, error) {
	query := `SELECT value FROM app_state WHERE key = $1`
	var blob []byte
	err := r.pool.QueryRow(ctx, query, key).Scan(&blob)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to load state %q: %w", key, err)
	}
	return blob, true, nil
}

// Save upserts a blob under a key
func (r *StateRepository) Save(ctx context.Context, key string, value []byte) error {
	query := `
		INSERT INTO app_state (key, value, updated)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated = NOW()
	`
	if _, err := r.pool.Exec(ctx, query, key, value); err != nil {
		return fmt.Errorf("failed to save state %q: %w", key, err)
	}
	return nil
}

// Delete removes a key. Deleting an absent key is not an error.
func (r *StateRepository) Delete(ctx context.Context, key string) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM app_state WHERE key = $1`, key); err != nil {
		return fmt.Errorf("failed to delete state %q: %w", key, err)
	}
	return nil
}
