package kvstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/RishabJha134/habitforge-engine/internal/core/store"
)

var _ store.Substrate = (*Postgres)(nil)

// Postgres maps the flat key space onto a single two-column table. Each
// logical partition stays one JSON document, exactly as the stores wrote it.
type Postgres struct {
	db *sqlx.DB
}

func NewPostgres(db *sqlx.DB) *Postgres {
	return &Postgres{db: db}
}

// EnsureSchema creates the backing table if it does not exist yet.
func (p *Postgres) EnsureSchema(ctx context.Context) error {
	query := `
        CREATE TABLE IF NOT EXISTS kv_entries (
            key   TEXT PRIMARY KEY,
            value TEXT NOT NULL
        )`

	if _, err := p.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("%w: failed to ensure kv schema: %v", store.ErrStorageUnavailable, err)
	}
	return nil
}

func (p *Postgres) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := p.db.QueryRowContext(ctx, `SELECT value FROM kv_entries WHERE key = $1`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", store.ErrKeyNotFound
	}
	if err != nil {
		return "", fmt.Errorf("%w: kv select: %v", store.ErrStorageUnavailable, err)
	}
	return value, nil
}

func (p *Postgres) Set(ctx context.Context, key, value string) error {
	query := `
        INSERT INTO kv_entries (key, value) VALUES ($1, $2)
        ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value`

	if _, err := p.db.ExecContext(ctx, query, key, value); err != nil {
		return fmt.Errorf("%w: kv upsert: %v", store.ErrStorageUnavailable, err)
	}
	return nil
}

func (p *Postgres) Remove(ctx context.Context, key string) error {
	if _, err := p.db.ExecContext(ctx, `DELETE FROM kv_entries WHERE key = $1`, key); err != nil {
		return fmt.Errorf("%w: kv delete: %v", store.ErrStorageUnavailable, err)
	}
	return nil
}

func (p *Postgres) Clear(ctx context.Context) error {
	if _, err := p.db.ExecContext(ctx, `DELETE FROM kv_entries`); err != nil {
		return fmt.Errorf("%w: kv clear: %v", store.ErrStorageUnavailable, err)
	}
	return nil
}
