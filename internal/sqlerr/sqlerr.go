// Package sqlerr specifically handles database driver errors.
//
// It parses cryptic error codes from the database driver and
// sorts every failure into one of three kinds the callers can
// act on: the database could not be reached, the statement was
// rejected, or a single-row lookup found nothing. It also converts
// them into user-friendly messages (e.g., converting a "foreign key
// violation" into a "Bad Request" error).
package sqlerr
