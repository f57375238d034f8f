package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// pgxPool is the slice of *pgxpool.Pool's method set this package needs.
// Accepting the interface (rather than the concrete pool type) lets tests
// substitute pgxmock.PgxPoolIface directly instead of re-implementing
// every method against a hand-rolled mock struct.
type pgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}
