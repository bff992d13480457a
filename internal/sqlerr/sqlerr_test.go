package sqlerr

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/puddle/v2"
	gobreaker "github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/lightbnb/internal/errs"
)

func TestWrap(t *testing.T) {
	t.Run("nil stays nil", func(t *testing.T) {
		assert.NoError(t, Wrap(nil, "users"))
	})

	t.Run("no rows becomes not found", func(t *testing.T) {
		err := Wrap(fmt.Errorf("collect: %w", pgx.ErrNoRows), "users")
		assert.True(t, IsNotFound(err))
		assert.False(t, IsConnection(err))
		assert.ErrorIs(t, err, pgx.ErrNoRows)

		var sqlErr *Error
		require.ErrorAs(t, err, &sqlErr)
		assert.Equal(t, "users", sqlErr.TableName)
	})

	t.Run("already wrapped is returned unchanged", func(t *testing.T) {
		first := Wrap(pgx.ErrNoRows, "users")
		assert.Same(t, first, Wrap(first, "properties"))
	})

	t.Run("server error keeps its own table", func(t *testing.T) {
		pgErr := &pgconn.PgError{Code: "23503", Severity: "ERROR", TableName: "reservations"}
		err := Wrap(pgErr, "properties")

		var sqlErr *Error
		require.ErrorAs(t, err, &sqlErr)
		assert.Equal(t, ForeignKeyViolation, sqlErr.Code)
		assert.Equal(t, "reservations", sqlErr.TableName)
		assert.Equal(t, "23503", sqlErr.DatabaseCode)
		assert.Equal(t, KindQuery, KindOf(err))
		assert.ErrorIs(t, err, pgErr)
	})

	t.Run("server error without table takes the caller's", func(t *testing.T) {
		err := Wrap(&pgconn.PgError{Code: "42703"}, "properties")

		var sqlErr *Error
		require.ErrorAs(t, err, &sqlErr)
		assert.Equal(t, UndefinedColumn, sqlErr.Code)
		assert.Equal(t, "properties", sqlErr.TableName)
	})

	t.Run("connection failures", func(t *testing.T) {
		for _, cause := range []error{
			context.DeadlineExceeded,
			gobreaker.ErrOpenState,
			gobreaker.ErrTooManyRequests,
			puddle.ErrClosedPool,
			fmt.Errorf("acquire: %w", puddle.ErrClosedPool),
			&pgconn.PgError{Code: "08006"},
			&pgconn.PgError{Code: "53300"},
		} {
			err := Wrap(cause, "users")
			assert.True(t, IsConnection(err), "%v", cause)
			assert.Equal(t, KindConnection, KindOf(err))
		}
	})

	t.Run("anything else is a query error", func(t *testing.T) {
		err := Wrap(errors.New("boom"), "users")
		assert.Equal(t, Other, ErrCode(err))
		assert.Equal(t, KindQuery, KindOf(err))
		assert.False(t, IsNotFound(err))
		assert.False(t, IsConnection(err))
	})
}

func TestMapCode(t *testing.T) {
	tests := map[string]Code{
		"23503": ForeignKeyViolation,
		"23505": UniqueViolation,
		"23502": NotNullViolation,
		"23514": CheckViolation,
		"22P02": InvalidText,
		"42601": SyntaxError,
		"42P01": UndefinedTable,
		"57014": QueryCanceled,
		"53300": TooManyConnections,
		"08001": ConnectionFailure,
		"57P01": ConnectionFailure,
		"XX000": Other,
		"":      Other,
	}

	for state, want := range tests {
		assert.Equal(t, want, MapCode(state), state)
	}
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "query", KindQuery.String())
	assert.Equal(t, "connection", KindConnection.String())
	assert.Equal(t, "not_found", KindNotFound.String())
}

func TestExtractColumnForUniqueViolation(t *testing.T) {
	assert.Equal(t, "email", extractColumnForUniqueViolation("unique_users_email"))
	assert.Equal(t, "email", extractColumnForUniqueViolation("users_email_key"))
	assert.Equal(t, "", extractColumnForUniqueViolation("users_pkey"))
	assert.Equal(t, "", extractColumnForUniqueViolation(""))
}

func TestHandleError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		code    string
		message string
	}{
		{
			name:    "not found",
			err:     Wrap(pgx.ErrNoRows, "users"),
			status:  http.StatusNotFound,
			code:    "USER_NOT_FOUND",
			message: "User not found",
		},
		{
			name: "unique violation names the column",
			err: Wrap(&pgconn.PgError{
				Code:           "23505",
				TableName:      "users",
				ConstraintName: "users_email_key",
			}, "users"),
			status:  http.StatusBadRequest,
			code:    "USER_ALREADY_EXISTS",
			message: "A User with this Email already exists",
		},
		{
			name: "foreign key violation names the referenced entity",
			err: Wrap(&pgconn.PgError{
				Code:       "23503",
				TableName:  "properties",
				ColumnName: "owner_id",
			}, "properties"),
			status:  http.StatusBadRequest,
			code:    "PROPERTY_NOT_FOUND",
			message: "The referenced Owner does not exist",
		},
		{
			name:    "connection failure",
			err:     Wrap(context.DeadlineExceeded, "properties"),
			status:  http.StatusServiceUnavailable,
			code:    "SERVICE_UNAVAILABLE",
			message: "Service Unavailable",
		},
		{
			name:    "closed pool",
			err:     Wrap(puddle.ErrClosedPool, "properties"),
			status:  http.StatusServiceUnavailable,
			code:    "SERVICE_UNAVAILABLE",
			message: "Service Unavailable",
		},
		{
			name:    "unclassified",
			err:     errors.New("boom"),
			status:  http.StatusInternalServerError,
			code:    "INTERNAL_SERVER_ERROR",
			message: "Internal Server Error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var httpErr *errs.HTTPError
			require.ErrorAs(t, HandleError(tt.err), &httpErr)
			assert.Equal(t, tt.status, httpErr.Status)
			assert.Equal(t, tt.code, httpErr.Code)
			assert.Equal(t, tt.message, httpErr.Message)
		})
	}
}

func TestHandleError_NotNullViolationListsField(t *testing.T) {
	err := HandleError(Wrap(&pgconn.PgError{
		Code:       "23502",
		TableName:  "properties",
		ColumnName: "title",
	}, "properties"))

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, "The Title is required", httpErr.Message)
	assert.Equal(t, []errs.FieldError{{Field: "title", Error: "is required"}}, httpErr.Errors)
}

func TestHandleError_PassesHTTPErrorsThrough(t *testing.T) {
	original := errs.NewUnauthorizedError("nope", true)
	assert.Same(t, original, HandleError(original))
}
