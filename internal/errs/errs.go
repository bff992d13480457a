// Package errs defines the error shapes returned to API clients.
//
// Handlers and services return *HTTPError values; the global error
// handler serializes them as JSON with field-level details when the
// failure came from request validation.
package errs
