// Package handler is the HTTP entry point after the router.
//
// Handlers declare typed request structs, let the validation package bind
// and check them, call the service layer and return the response body.
// Errors are returned as-is and rendered by the global error handler.
package handler
