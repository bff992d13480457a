// Package validation binds and validates request payloads.
//
// Rules are declared with go-playground/validator struct tags; failures
// are converted into errs.FieldError values the client can act on.
package validation
