package sqlerr

import (
	"context"
	"database/sql"
	"errors"
	"net"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/puddle/v2"
	gobreaker "github.com/sony/gobreaker/v2"
)

// Wrap normalizes a driver error returned while operating on table.
//
// Result by input:
//   - nil: nil
//   - already *Error: returned unchanged
//   - *pgconn.PgError: Code mapped from SQLSTATE
//   - pgx.ErrNoRows / sql.ErrNoRows: NotFound with TableName set
//   - dial failures, closed pool, deadlines, open breaker: ConnectionFailure
//   - anything else: Other
func Wrap(err error, table string) error {
	if err == nil {
		return nil
	}

	var sqlErr *Error
	if errors.As(err, &sqlErr) {
		return err
	}

	var pgerr *pgconn.PgError
	if errors.As(err, &pgerr) {
		converted := ConvertPgError(pgerr)
		if converted.TableName == "" {
			converted.TableName = table
		}
		return converted
	}

	if errors.Is(err, pgx.ErrNoRows) || errors.Is(err, sql.ErrNoRows) {
		return &Error{
			Code:      NotFound,
			Severity:  SeverityError,
			Message:   "no rows in result set",
			TableName: table,
			driverErr: err,
		}
	}

	if isConnectionError(err) {
		return &Error{
			Code:      ConnectionFailure,
			Severity:  SeverityFatal,
			Message:   err.Error(),
			TableName: table,
			driverErr: err,
		}
	}

	return &Error{
		Code:      Other,
		Severity:  SeverityError,
		Message:   err.Error(),
		TableName: table,
		driverErr: err,
	}
}

func isConnectionError(err error) bool {
	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}

	return errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, puddle.ErrClosedPool) ||
		errors.Is(err, gobreaker.ErrOpenState) ||
		errors.Is(err, gobreaker.ErrTooManyRequests) ||
		pgconn.SafeToRetry(err)
}

// KindOf reports the Kind of err, treating unrecognized errors as KindQuery.
func KindOf(err error) Kind {
	var sqlErr *Error
	if errors.As(err, &sqlErr) {
		return sqlErr.Kind()
	}
	return KindQuery
}

// IsNotFound reports whether err is a NotFound failure.
func IsNotFound(err error) bool {
	var sqlErr *Error
	return errors.As(err, &sqlErr) && sqlErr.Kind() == KindNotFound
}

// IsConnection reports whether err is a ConnectionError.
func IsConnection(err error) bool {
	var sqlErr *Error
	return errors.As(err, &sqlErr) && sqlErr.Kind() == KindConnection
}
