// Package api is the HTTP client for the todo server.
//
// # Overview
//
// Client wraps the /api/v1 endpoints: register, login, refresh-token and
// check-user for accounts, and create, list, update and delete for todos.
// It keeps the current token pair in memory, sends the access token as a
// Bearer header and, when the server answers token_expired, refreshes the
// pair once and retries the request.
//
// # Error Handling
//
// Non-2xx answers are returned as *Error, which unwraps to the matching
// sentinel from internal/common (ErrorValidation, ErrorConflict, ...), so
// callers match with errors.Is. Transport failures wrap ErrUnavailable.
package api
