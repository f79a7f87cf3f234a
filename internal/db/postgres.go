package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/abimath/internal/config"
	"github.com/yigit/abimath/internal/pkg/helpers"
	"github.com/yigit/abimath/internal/pkg/logger"
)

const (
	defaultTxTimeout   = 30 * time.Second
	defaultConnTimeout = 10 * time.Second
)

// PostgresDB wraps the pool shared by the class and student stores
type PostgresDB struct {
	Pool      *pgxpool.Pool
	txTimeout time.Duration
}

// NewPostgresDB opens the pool described by cfg.Database and checks it
// answers before returning.
func NewPostgresDB(ctx context.Context, cfg *config.Config) (*PostgresDB, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.GetPostgresConnectionString())
	if err != nil {
		return nil, fmt.Errorf("failed to parse pgxpool config: %w", err)
	}

	poolConfig.MaxConns = int32(cfg.Database.MaxOpenConns)
	poolConfig.MinConns = int32(cfg.Database.MaxIdleConns)
	poolConfig.MaxConnLifetime = helpers.ParseDuration(cfg.Database.ConnMaxLifetime, time.Hour)
	poolConfig.HealthCheckPeriod = time.Minute

	ctx, cancel := context.WithTimeout(ctx, defaultConnTimeout)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create database connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to reach %s:%s/%s: %w",
			cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName, err)
	}

	return &PostgresDB{
		Pool:      pool,
		txTimeout: helpers.ParseDuration(cfg.Database.TxTimeout, defaultTxTimeout),
	}, nil
}

// Close closes the pool
func (db *PostgresDB) Close() {
	if db.Pool != nil {
		db.Pool.Close()
	}
}

// TransactionFn is a function that executes within a transaction
type TransactionFn func(ctx context.Context, tx pgx.Tx) error

// WithTransaction runs fn within one transaction bounded by the configured
// transaction timeout.
func (db *PostgresDB) WithTransaction(ctx context.Context, fn TransactionFn) error {
	return runInTx(ctx, db.Pool, db.txTimeout, fn)
}

type txBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// runInTx commits when fn returns nil. Errors and panics roll back; when the
// rollback fails too, both errors stay matchable with errors.Is/As.
func runInTx(ctx context.Context, b txBeginner, timeout time.Duration, fn TransactionFn) error {
	if _, hasDeadline := ctx.Deadline(); !hasDeadline && timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	tx, err := b.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if r := recover(); r != nil {
			_ = tx.Rollback(ctx)
			panic(r)
		}
	}()

	if err := fn(ctx, tx); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			logger.Error().Err(rbErr).Msg("Failed to rollback transaction")
			return errors.Join(err, fmt.Errorf("rollback: %w", rbErr))
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
