package sqlerr

import "fmt"

// Code is a driver-independent category of a database failure.
type Code string

const (
	Other               Code = "OTHER"
	NotFound            Code = "NOT_FOUND"
	ConnectionFailure   Code = "CONNECTION_FAILURE"
	ForeignKeyViolation Code = "FOREIGN_KEY_VIOLATION"
	UniqueViolation     Code = "UNIQUE_VIOLATION"
	NotNullViolation    Code = "NOT_NULL_VIOLATION"
	CheckViolation      Code = "CHECK_VIOLATION"
	InvalidText         Code = "INVALID_TEXT_REPRESENTATION"
	SyntaxError         Code = "SYNTAX_ERROR"
	UndefinedTable      Code = "UNDEFINED_TABLE"
	UndefinedColumn     Code = "UNDEFINED_COLUMN"
	QueryCanceled       Code = "QUERY_CANCELED"
	TooManyConnections  Code = "TOO_MANY_CONNECTIONS"
)

// Severity mirrors the severity field Postgres attaches to server errors.
type Severity string

const (
	SeverityError   Severity = "ERROR"
	SeverityFatal   Severity = "FATAL"
	SeverityPanic   Severity = "PANIC"
	SeverityWarning Severity = "WARNING"
	SeverityNotice  Severity = "NOTICE"
	SeverityDebug   Severity = "DEBUG"
	SeverityInfo    Severity = "INFO"
	SeverityLog     Severity = "LOG"
)

// Kind is the failure taxonomy exposed to repository callers.
type Kind int

const (
	// KindQuery covers statements the server rejected: constraint
	// violations, syntax and type errors, anything unclassified.
	KindQuery Kind = iota
	// KindConnection covers failures to reach the database at all.
	KindConnection
	// KindNotFound is zero rows where exactly one was expected.
	KindNotFound
)

func (k Kind) String() string {
	switch k {
	case KindConnection:
		return "connection"
	case KindNotFound:
		return "not_found"
	default:
		return "query"
	}
}

// Error is the normalized form of every error the data layer returns.
type Error struct {
	Code           Code
	Severity       Severity
	DatabaseCode   string
	Message        string
	SchemaName     string
	TableName      string
	ColumnName     string
	DataTypeName   string
	ConstraintName string
	driverErr      error
}

func (e *Error) Error() string {
	if e.TableName != "" {
		return fmt.Sprintf("%s (table %s): %s", e.Code, e.TableName, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.driverErr
}

// Kind reports which branch of the taxonomy the error belongs to.
func (e *Error) Kind() Kind {
	switch e.Code {
	case NotFound:
		return KindNotFound
	case ConnectionFailure, TooManyConnections:
		return KindConnection
	default:
		return KindQuery
	}
}

// MapCode maps a Postgres SQLSTATE to a Code.
func MapCode(sqlState string) Code {
	switch sqlState {
	case "23503":
		return ForeignKeyViolation
	case "23505":
		return UniqueViolation
	case "23502":
		return NotNullViolation
	case "23514":
		return CheckViolation
	case "22P02":
		return InvalidText
	case "42601":
		return SyntaxError
	case "42P01":
		return UndefinedTable
	case "42703":
		return UndefinedColumn
	case "57014":
		return QueryCanceled
	case "53300":
		return TooManyConnections
	}

	// Class 08: connection exceptions.
	// Class 57P: operator intervention (admin shutdown, crash shutdown, cannot connect now).
	if len(sqlState) == 5 && (sqlState[:2] == "08" || sqlState[:3] == "57P") {
		return ConnectionFailure
	}

	return Other
}

// MapSeverity maps the Postgres severity string to a Severity.
func MapSeverity(severity string) Severity {
	switch Severity(severity) {
	case SeverityError, SeverityFatal, SeverityPanic, SeverityWarning,
		SeverityNotice, SeverityDebug, SeverityInfo, SeverityLog:
		return Severity(severity)
	default:
		return SeverityError
	}
}
