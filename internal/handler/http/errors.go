package http

import "errors"

// Sentinel errors produced by the authorization middleware when resolving the
// caller-identifier header. Callers can match against them with [errors.Is].
var (
	// ErrUnauthenticated is returned when a gated endpoint is called without
	// an x-user-id header, or with one that resolves to no account.
	ErrUnauthenticated = errors.New("authentication required")

	// ErrForbidden is returned when the caller resolved to a valid account
	// that is deactivated or lacks the admin role required by the endpoint.
	ErrForbidden = errors.New("insufficient permissions")

	// ErrUnreadableBody is returned when a request body declares a content
	// encoding it does not actually carry.
	ErrUnreadableBody = errors.New("request body could not be read")
)
