package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/spec-kit/ticket-store/internal/config"
)

// PostgresStorage persists snapshots in a single key/value table. The
// store's persistence contract is whole-snapshot load/save, so there is
// deliberately no per-entity schema here.
type PostgresStorage struct {
	pool *pgxpool.Pool
}

// NewPostgresStorage establishes a connection pool and ensures the
// snapshots table exists.
func NewPostgresStorage(ctx context.Context, cfg config.PostgresConfig, logger *zap.Logger) (*PostgresStorage, error) {
	if cfg.DSN == "" {
		return nil, errors.New("POSTGRES_DSN is required for the postgres backend")
	}

	poolCfg, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, err
	}
	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}
	if cfg.MinConns > 0 {
		poolCfg.MinConns = cfg.MinConns
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	const ddl = `
        CREATE TABLE IF NOT EXISTS snapshots (
            key        TEXT PRIMARY KEY,
            data       BYTEA NOT NULL,
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`
	if _, err := pool.Exec(ctx, ddl); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ensure snapshots table: %w", err)
	}

	logger.Info("connected to postgres")
	return &PostgresStorage{pool: pool}, nil
}

// Load fetches the snapshot blob stored under key.
func (p *PostgresStorage) Load(ctx context.Context, key string) ([]byte, error) {
	const query = `SELECT data FROM snapshots WHERE key=$1`
	var data []byte
	err := p.pool.QueryRow(ctx, query, key).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}
	return data, nil
}

// Save upserts the snapshot blob under key.
func (p *PostgresStorage) Save(ctx context.Context, key string, data []byte) error {
	const query = `
        INSERT INTO snapshots (key, data, updated_at) VALUES ($1, $2, NOW())
        ON CONFLICT (key) DO UPDATE SET data=EXCLUDED.data, updated_at=NOW()`
	if _, err := p.pool.Exec(ctx, query, key, data); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

// Close releases pool resources.
func (p *PostgresStorage) Close() error {
	p.pool.Close()
	return nil
}
