// Package repository handles all interactions with the database.
//
// It contains raw SQL queries and methods to fetch or persist rows,
// abstracting SQL away from the service layer. Every method runs
// exactly one statement and returns driver failures normalized by
// sqlerr.Wrap, so callers can tell an empty result from a failed query.
package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX is the statement executor the repositories run against.
// *pgxpool.Pool satisfies it, as does the breaker-guarded executor
// built by the database package.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// DefaultLimit caps list queries when the caller passes a non-positive limit.
const DefaultLimit = 10

func normalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	return limit
}
