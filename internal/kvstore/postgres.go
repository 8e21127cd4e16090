package kvstore

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"taskboard/internal/logger"
)

// PostgresStore is a durable key-value store over a single kv table.
// Values are whole documents replaced on every write and stored as
// opaque text, so reads return exactly the bytes written and the
// semantics match the file store.
type PostgresStore struct {
	pool *pgxpool.Pool
}

const schema = `CREATE TABLE IF NOT EXISTS kv (
	key        TEXT PRIMARY KEY,
	value      TEXT NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

func NewPostgresStore(ctx context.Context, connString string) (*PostgresStore, error) {
	config, err := pgxpool.ParseConfig(connString)
	if err != nil {
		logger.Error("Storage: failed to parse connection string", err)
		return nil, fmt.Errorf("parsing connection string: %w", err)
	}

	config.MaxConns = 10
	config.MinConns = 2
	config.MaxConnIdleTime = time.Minute * 5

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		logger.Error("Storage: failed to create pool", err)
		return nil, fmt.Errorf("creating pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		logger.Error("Storage: ping failed", err)
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	if _, err := pool.Exec(ctx, schema); err != nil {
		pool.Close()
		logger.Error("Storage: failed to ensure schema", err)
		return nil, fmt.Errorf("ensuring schema: %w", err)
	}

	logger.Info("Storage: connected to PostgreSQL")
	return &PostgresStore{pool: pool}, nil
}

func (s *PostgresStore) Close() {
	s.pool.Close()
	logger.Info("Storage: closed PostgreSQL connections")
}

func (s *PostgresStore) HealthCheck(ctx context.Context) error {
	if err := s.pool.Ping(ctx); err != nil {
		logger.Error("Storage: ping failed", err)
		return fmt.Errorf("pinging database: %w", err)
	}
	return nil
}

func (s *PostgresStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	start := time.Now()

	var value []byte
	err := s.pool.QueryRow(ctx, `SELECT value FROM kv WHERE key = $1`, key).Scan(&value)
	if err == pgx.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		logger.Error("Storage: read failed", err, zap.String("key", key))
		return nil, false, fmt.Errorf("reading key %s: %w", key, err)
	}

	s.warnIfSlow("get", start)
	return value, true, nil
}

func (s *PostgresStore) Set(ctx context.Context, key string, value []byte) error {
	start := time.Now()

	query := `INSERT INTO kv (key, value, updated_at)
			VALUES ($1, $2, NOW())
			ON CONFLICT (key) DO UPDATE
			SET value = EXCLUDED.value,
				updated_at = NOW()`

	if _, err := s.pool.Exec(ctx, query, key, value); err != nil {
		logger.Error("Storage: write failed", err, zap.String("key", key))
		return fmt.Errorf("writing key %s: %w", key, err)
	}

	s.warnIfSlow("set", start)
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, key string) error {
	start := time.Now()

	if _, err := s.pool.Exec(ctx, `DELETE FROM kv WHERE key = $1`, key); err != nil {
		logger.Error("Storage: delete failed", err, zap.String("key", key))
		return fmt.Errorf("deleting key %s: %w", key, err)
	}

	s.warnIfSlow("delete", start)
	return nil
}

func (s *PostgresStore) warnIfSlow(op string, start time.Time) {
	if time.Since(start) > time.Millisecond*100 {
		logger.Warn("Storage: slow operation",
			zap.String("op", op),
			zap.Duration("ms", time.Since(start)))
	}
}
