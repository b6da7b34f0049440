package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/lib/pq"

	"github.com/wichananm65/ride-shop-client/internal/domain/repository"
)

// KVStore keeps the agent's JSON blobs in the agent_kv table, one row per
// key with the value as text and the time of the last write.
type KVStore struct {
	db *sql.DB
}

var _ repository.KeyValueStore = (*KVStore)(nil)

const (
	createKVTableQuery = `CREATE TABLE IF NOT EXISTS agent_kv (
        key TEXT PRIMARY KEY,
        value TEXT NOT NULL,
        updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
    )`
	getKVQuery    = `SELECT value FROM agent_kv WHERE key = $1`
	upsertKVQuery = `
        INSERT INTO agent_kv (key, value, updated_at)
        VALUES ($1, $2, $3)
        ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at
    `
	deleteKVQuery = `DELETE FROM agent_kv WHERE key = ANY($1::text[])`
)

func NewKVStore(db *sql.DB) *KVStore {
	return &KVStore{db: db}
}

// Open connects with the pgx driver, tunes the pool and pings the server.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(time.Hour)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("db ping failed: %w", err)
	}
	return db, nil
}

// EnsureSchema creates the backing table when missing.
func (s *KVStore) EnsureSchema(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, createKVTableQuery)
	return err
}

func (s *KVStore) Get(ctx context.Context, key string) (string, error) {
	var value string
	if err := s.db.QueryRowContext(ctx, getKVQuery, key).Scan(&value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", repository.ErrKeyNotFound
		}
		return "", err
	}
	return value, nil
}

func (s *KVStore) Set(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx, upsertKVQuery, key, value, time.Now().UTC())
	return err
}

func (s *KVStore) Remove(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	_, err := s.db.ExecContext(ctx, deleteKVQuery, pq.Array(keys))
	return err
}
