// Package client is the CLI's transport to the libhub REST API.
//
// APIClient implements Client over net/http. Every response is expected in
// the {message, success, data} envelope; data is decoded into typed models.
// Non-2xx answers become *APIError, which matches ErrUnauthorized,
// ErrForbidden or ErrNotFound through errors.Is. Transport failures wrap
// ErrUnavailable.
//
// InitDatabase opens the local SQLite file the session is kept in.
package client
