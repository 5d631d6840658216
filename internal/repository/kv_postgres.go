package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type pgxPool interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

var _ pgxPool = (*pgxpool.Pool)(nil)

const (
	createKVTableSQL = `
        CREATE TABLE IF NOT EXISTS kv_store (
            key        TEXT PRIMARY KEY,
            value      JSONB NOT NULL,
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )
    `
	selectKVSQL = `SELECT value FROM kv_store WHERE key = $1`
	upsertKVSQL = `
        INSERT INTO kv_store (key, value, updated_at)
        VALUES ($1, $2::jsonb, NOW())
        ON CONFLICT (key) DO UPDATE SET
            value = EXCLUDED.value,
            updated_at = NOW()
    `
)

// PGXKeyValueStore keeps JSON values in a PostgreSQL table using pgx.
type PGXKeyValueStore struct {
	pool pgxPool
}

// NewPGXKeyValueStore wires a pgx backed key-value store.
func NewPGXKeyValueStore(pool *pgxpool.Pool) *PGXKeyValueStore {
	return &PGXKeyValueStore{pool: pool}
}

// EnsureSchema creates the backing table when it does not exist.
func (s *PGXKeyValueStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, createKVTableSQL); err != nil {
		return fmt.Errorf("create kv_store table: %w", err)
	}
	return nil
}

// Get implements KeyValueStore.
func (s *PGXKeyValueStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var value []byte
	if err := s.pool.QueryRow(ctx, selectKVSQL, key).Scan(&value); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("select kv %q: %w", key, err)
	}
	return value, true, nil
}

// Set implements KeyValueStore. The value must be valid JSON.
func (s *PGXKeyValueStore) Set(ctx context.Context, key string, value []byte) error {
	if _, err := s.pool.Exec(ctx, upsertKVSQL, key, string(value)); err != nil {
		return fmt.Errorf("upsert kv %q: %w", key, err)
	}
	return nil
}

var _ KeyValueStore = (*PGXKeyValueStore)(nil)
