package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nodefoundry/depinmarket/internal/domain/repository"
)

// Pool is the subset of pgxpool.Pool the storage relies on; tests
// substitute a pgxmock pool.
type Pool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

// Storage acts as repository facade backed by PostgreSQL.
type Storage struct {
	pool   Pool
	logger *slog.Logger
}

type userRepository struct {
	storage *Storage
}

type orderRepository struct {
	storage *Storage
}

type resourceRepository struct {
	storage *Storage
}

type balanceRepository struct {
	storage *Storage
}

type treasuryRepository struct {
	storage *Storage
}

type reviewRepository struct {
	storage *Storage
}

type settingsRepository struct {
	storage *Storage
}

// newPgxPool is a seam for tests to substitute a mock pool.
var newPgxPool = func(ctx context.Context, cfg *pgxpool.Config) (Pool, error) {
	return pgxpool.NewWithConfig(ctx, cfg)
}

// New creates storage with schema initialization.
func New(ctx context.Context, dsn string, logger *slog.Logger) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	pool, err := newPgxPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	storage := &Storage{pool: pool, logger: logger}
	if err := storage.initSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return storage, nil
}

// Close releases database resources.
func (s *Storage) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Factory methods for domain repositories.
func (s *Storage) Users() repository.UserRepository {
	return &userRepository{storage: s}
}

func (s *Storage) Orders() repository.OrderRepository {
	return &orderRepository{storage: s}
}

func (s *Storage) Resources() repository.ResourceRepository {
	return &resourceRepository{storage: s}
}

func (s *Storage) Balances() repository.BalanceRepository {
	return &balanceRepository{storage: s}
}

func (s *Storage) Treasury() repository.TreasuryRepository {
	return &treasuryRepository{storage: s}
}

func (s *Storage) Reviews() repository.ReviewRepository {
	return &reviewRepository{storage: s}
}

func (s *Storage) Settings() repository.SettingsRepository {
	return &settingsRepository{storage: s}
}

func (s *Storage) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
            id SERIAL PRIMARY KEY,
            login TEXT UNIQUE NOT NULL,
            password_hash TEXT NOT NULL,
            total_spent BIGINT NOT NULL DEFAULT 0,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS balances (
            user_id BIGINT PRIMARY KEY REFERENCES users(id),
            current BIGINT NOT NULL DEFAULT 0
        )`,
		`CREATE TABLE IF NOT EXISTS resources (
            id TEXT PRIMARY KEY,
            name TEXT NOT NULL,
            description TEXT NOT NULL,
            active BOOLEAN NOT NULL DEFAULT TRUE,
            uptime INT NOT NULL DEFAULT 0,
            reliability INT NOT NULL DEFAULT 0,
            cost BIGINT NOT NULL DEFAULT 0,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS orders (
            id TEXT PRIMARY KEY,
            buyer_id BIGINT NOT NULL REFERENCES users(id),
            resource_id TEXT NOT NULL,
            service_type TEXT NOT NULL DEFAULT '',
            duration_units BIGINT NOT NULL,
            unit_price BIGINT NOT NULL,
            total_amount BIGINT NOT NULL,
            escrowed_amount BIGINT NOT NULL,
            status TEXT NOT NULL,
            external_reference TEXT,
            deployment_target TEXT NOT NULL DEFAULT '',
            service_params TEXT NOT NULL DEFAULT '',
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS escrow_state (
            id SMALLINT PRIMARY KEY CHECK (id = 1),
            total_escrowed BIGINT NOT NULL DEFAULT 0
        )`,
		`CREATE TABLE IF NOT EXISTS treasury (
            id SMALLINT PRIMARY KEY CHECK (id = 1),
            balance BIGINT NOT NULL DEFAULT 0,
            total_received BIGINT NOT NULL DEFAULT 0,
            total_withdrawn BIGINT NOT NULL DEFAULT 0
        )`,
		`CREATE TABLE IF NOT EXISTS sequences (
            name TEXT PRIMARY KEY,
            value BIGINT NOT NULL DEFAULT 0
        )`,
		`CREATE TABLE IF NOT EXISTS engine_settings (
            key TEXT PRIMARY KEY,
            value TEXT NOT NULL
        )`,
		`CREATE TABLE IF NOT EXISTS reviews (
            id SERIAL PRIMARY KEY,
            resource_id TEXT NOT NULL,
            user_id BIGINT NOT NULL REFERENCES users(id),
            rating INT NOT NULL,
            review TEXT NOT NULL DEFAULT '',
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            UNIQUE (resource_id, user_id)
        )`,
		`CREATE INDEX IF NOT EXISTS idx_orders_buyer ON orders(buyer_id, id)`,
		`CREATE INDEX IF NOT EXISTS idx_orders_resource ON orders(resource_id, id)`,
		`INSERT INTO escrow_state (id, total_escrowed) VALUES (1, 0) ON CONFLICT DO NOTHING`,
		`INSERT INTO treasury (id) VALUES (1) ON CONFLICT DO NOTHING`,
		`INSERT INTO sequences (name, value) VALUES ('orders', 0), ('resources', 0) ON CONFLICT DO NOTHING`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	return nil
}

// WithinTransaction executes function inside transaction boundary.
func (s *Storage) WithinTransaction(ctx context.Context, fn func(pgx.Tx) error) (err error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
		}
	}()

	err = fn(tx)
	return err
}

// nextSequenceTx increments and returns a named persisted counter.
func (s *Storage) nextSequenceTx(ctx context.Context, tx pgx.Tx, name string) (uint64, error) {
	const query = `UPDATE sequences SET value = value + 1 WHERE name=$1 RETURNING value`
	var value uint64
	if err := tx.QueryRow(ctx, query, name).Scan(&value); err != nil {
		return 0, err
	}
	return value, nil
}

// HealthCheck verifies database connectivity.
func (s *Storage) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.pool.Ping(ctx)
}

// Pool exposes raw connection pool for advanced use.
func (s *Storage) Pool() Pool {
	return s.pool
}

// Logger returns storage logger.
func (s *Storage) Logger() *slog.Logger {
	return s.logger
}
