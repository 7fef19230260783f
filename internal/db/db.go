// Package db provides PostgreSQL storage for cleaning runs and cleaned job records.
package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jonathan/jobclean/internal/logger"
	"github.com/jonathan/jobclean/internal/retry"
	"github.com/jonathan/jobclean/internal/types"
)

// DB wraps a PostgreSQL connection pool
type DB struct {
	pool   *pgxpool.Pool
	policy retry.Policy
	logger *slog.Logger
}

// Option configures a DB handle
type Option func(*DB)

// WithRetryPolicy sets the backoff used for connecting and writing
func WithRetryPolicy(p retry.Policy) Option {
	return func(db *DB) {
		db.policy = p
	}
}

// WithLogger sets the logger for retry warnings
func WithLogger(logger *slog.Logger) Option {
	return func(db *DB) {
		if logger != nil {
			db.logger = logger
		}
	}
}

// Connect establishes a connection pool to the database. Connecting and the
// initial ping are retried on transient failures.
func Connect(ctx context.Context, databaseURL string, opts ...Option) (*DB, error) {
	db := &DB{
		policy: retry.DefaultPolicy(),
		logger: logger.Discard(),
	}
	for _, opt := range opts {
		opt(db)
	}

	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}

	err = retry.Do(ctx, db.retryPolicy(), func(ctx context.Context) error {
		pool, err := pgxpool.NewWithConfig(ctx, cfg)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return fmt.Errorf("failed to ping database: %w", err)
		}
		db.pool = pool
		return nil
	})
	if err != nil {
		return nil, err
	}
	return db, nil
}

// Close closes the connection pool
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

func (db *DB) retryPolicy() retry.Policy {
	p := db.policy
	if p.Retryable == nil {
		p.Retryable = IsTransient
	}
	if p.Logger == nil {
		p.Logger = db.logger
	}
	return p
}

// IsTransient reports whether err is worth retrying: connection failures,
// serialization conflicts and resource exhaustion. Constraint, syntax and
// permission errors are permanent, as is a canceled context.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case len(pgErr.Code) < 2:
			return false
		case pgErr.Code[:2] == "08", // connection exception
			pgErr.Code[:2] == "40", // transaction rollback
			pgErr.Code[:2] == "53", // insufficient resources
			pgErr.Code == "57P01", pgErr.Code == "57P02", pgErr.Code == "57P03":
			return true
		default:
			return false
		}
	}
	return true
}

// EnsureSchema creates the tables used by jobclean when they are missing
func (db *DB) EnsureSchema(ctx context.Context) error {
	if _, err := db.pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}
	return nil
}

// CreateRun records the start of a cleaning run
func (db *DB) CreateRun(ctx context.Context, runID uuid.UUID, inputs []string) error {
	if inputs == nil {
		inputs = []string{}
	}
	err := retry.Do(ctx, db.retryPolicy(), func(ctx context.Context) error {
		_, err := db.pool.Exec(ctx,
			`INSERT INTO cleaning_runs (id, inputs, status)
			 VALUES ($1, $2, $3)`,
			runID, inputs, RunStatusRunning,
		)
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to create run: %w", err)
	}
	return nil
}

// CompleteRun marks a run as finished with the given status and statistics
func (db *DB) CompleteRun(ctx context.Context, runID uuid.UUID, status string, stats types.Stats) error {
	if !IsValidRunStatus(status) {
		return fmt.Errorf("invalid run status: %q", status)
	}

	statsJSON, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("failed to marshal stats: %w", err)
	}

	err = retry.Do(ctx, db.retryPolicy(), func(ctx context.Context) error {
		_, err := db.pool.Exec(ctx,
			`UPDATE cleaning_runs SET status = $1, stats = $2, completed_at = NOW() WHERE id = $3`,
			status, statsJSON, runID,
		)
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to complete run: %w", err)
	}
	return nil
}

// GetRun retrieves a cleaning run by ID. It returns nil when the run does not exist.
func (db *DB) GetRun(ctx context.Context, runID uuid.UUID) (*Run, error) {
	var run Run
	var statsJSON []byte
	err := db.pool.QueryRow(ctx,
		`SELECT id, inputs, status, stats, created_at, completed_at
		 FROM cleaning_runs WHERE id = $1`,
		runID,
	).Scan(&run.ID, &run.Inputs, &run.Status, &statsJSON, &run.CreatedAt, &run.CompletedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get run: %w", err)
	}

	if statsJSON != nil {
		var stats types.Stats
		if err := json.Unmarshal(statsJSON, &stats); err != nil {
			return nil, fmt.Errorf("failed to unmarshal run stats: %w", err)
		}
		run.Stats = &stats
	}
	return &run, nil
}

// GetRunStats returns the statistics stored for a run, or nil when the run
// does not exist or has not completed.
func (db *DB) GetRunStats(ctx context.Context, runID uuid.UUID) (*types.Stats, error) {
	run, err := db.GetRun(ctx, runID)
	if err != nil || run == nil {
		return nil, err
	}
	return run.Stats, nil
}
