package database

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/deppfellow/lightbnb/internal/config"
	"github.com/deppfellow/lightbnb/internal/sqlerr"
)

type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Executor runs statements through a circuit breaker. Only connection
// failures count against the breaker; constraint violations and other
// rejected statements pass through without tripping it. While the breaker
// is open every call fails fast with gobreaker.ErrOpenState, which sqlerr
// classifies as a connection error.
type Executor struct {
	db querier
	cb *gobreaker.CircuitBreaker[any]
}

// NewExecutor wraps db with a breaker configured by cfg.
func NewExecutor(db querier, cfg config.BreakerConfig, logger *zerolog.Logger) *Executor {
	threshold := cfg.FailureThreshold
	if threshold == 0 {
		threshold = 5
	}

	timeout := cfg.OpenTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	settings := gobreaker.Settings{
		Name:        "postgres",
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		IsSuccessful: func(err error) bool {
			return err == nil || !sqlerr.IsConnection(sqlerr.Wrap(err, ""))
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("database circuit breaker state changed")
		},
	}

	return &Executor{
		db: db,
		cb: gobreaker.NewCircuitBreaker[any](settings),
	}
}

func (e *Executor) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	result, err := e.cb.Execute(func() (any, error) {
		return e.db.Exec(ctx, sql, args...)
	})
	if err != nil {
		return pgconn.CommandTag{}, err
	}
	return result.(pgconn.CommandTag), nil
}

func (e *Executor) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	result, err := e.cb.Execute(func() (any, error) {
		return e.db.Query(ctx, sql, args...)
	})
	if err != nil {
		return nil, err
	}
	return result.(pgx.Rows), nil
}

// QueryRow defers its error to Scan, so it cannot report to the breaker;
// it only honours an already open breaker.
func (e *Executor) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if e.cb.State() == gobreaker.StateOpen {
		return errRow{err: gobreaker.ErrOpenState}
	}
	return e.db.QueryRow(ctx, sql, args...)
}

// State reports the breaker state for health checks.
func (e *Executor) State() string {
	return e.cb.State().String()
}

type errRow struct {
	err error
}

func (r errRow) Scan(...any) error {
	return r.err
}
