package database

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/lightbnb/internal/config"
)

func newTestExecutor(t *testing.T, threshold uint32) (*Executor, pgxmock.PgxPoolIface) {
	t.Helper()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	logger := zerolog.Nop()
	executor := NewExecutor(mock, config.BreakerConfig{
		FailureThreshold: threshold,
		OpenTimeout:      time.Minute,
	}, &logger)

	return executor, mock
}

func dialError() error {
	return &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")}
}

func TestExecutor_TripsOnConnectionFailures(t *testing.T) {
	executor, mock := newTestExecutor(t, 2)

	mock.ExpectQuery("SELECT 1").WillReturnError(dialError())
	mock.ExpectQuery("SELECT 1").WillReturnError(dialError())

	for range 2 {
		_, err := executor.Query(context.Background(), "SELECT 1")
		require.Error(t, err)
	}
	assert.Equal(t, "open", executor.State())

	_, err := executor.Query(context.Background(), "SELECT 1")
	require.ErrorIs(t, err, gobreaker.ErrOpenState)

	err = executor.QueryRow(context.Background(), "SELECT 1").Scan()
	require.ErrorIs(t, err, gobreaker.ErrOpenState)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExecutor_IgnoresRejectedStatements(t *testing.T) {
	executor, mock := newTestExecutor(t, 1)

	violation := &pgconn.PgError{Code: "23505", Message: "duplicate key value"}
	mock.ExpectExec("INSERT INTO users").WillReturnError(violation)
	mock.ExpectExec("INSERT INTO users").WillReturnError(violation)

	for range 2 {
		_, err := executor.Exec(context.Background(), "INSERT INTO users (name) VALUES ('a')")
		var pgErr *pgconn.PgError
		require.ErrorAs(t, err, &pgErr)
		assert.Equal(t, "23505", pgErr.Code)
	}

	assert.Equal(t, "closed", executor.State())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExecutor_PassesResultsThrough(t *testing.T) {
	executor, mock := newTestExecutor(t, 0)

	mock.ExpectExec("DELETE FROM reservations").
		WillReturnResult(pgxmock.NewResult("DELETE", 3))

	tag, err := executor.Exec(context.Background(), "DELETE FROM reservations")
	require.NoError(t, err)
	assert.Equal(t, int64(3), tag.RowsAffected())
	assert.Equal(t, "closed", executor.State())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStatementOperation(t *testing.T) {
	tests := map[string]string{
		"SELECT * FROM users":                  "select",
		"\n\tinsert INTO users VALUES ($1)":    "insert",
		"UPDATE properties SET active = true":  "update",
		"DELETE FROM reservations":             "delete",
		"WITH x AS (SELECT 1) SELECT * FROM x": "with",
		"BEGIN":                                "other",
		"   ":                                  "unknown",
	}

	for sql, want := range tests {
		assert.Equal(t, want, statementOperation(sql), sql)
	}
}
