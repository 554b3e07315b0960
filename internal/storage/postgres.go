package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrUnavailable marks failures to reach the database at startup.
var ErrUnavailable = errors.New("storage unavailable")

// DBTX is the subset of *pgxpool.Pool, pgx.Tx and *pgx.Conn used by storage.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Pinger reports whether the database answers.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Connect opens a pool for dsn and verifies it with a ping.
func Connect(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	op := "internal/storage/postgres.go Connect"

	if dsn == "" {
		return nil, fmt.Errorf("%s: empty dsn: %w", op, ErrUnavailable)
	}

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("%s: unable to connect to db: %w: %w", op, ErrUnavailable, err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("%s: unable to ping db: %w: %w", op, ErrUnavailable, err)
	}

	return pool, nil
}
