// Package errs contains sentinel errors used across layers for stable error mapping.
package errs

import "errors"

// Common sentinels across gateway/repository layers.
var (
	// ErrMalformedToken indicates a token whose payload could not be decoded.
	// Always recovered locally: a bad token means an anonymous session.
	ErrMalformedToken = errors.New("malformed token")

	// ErrAuthRejected indicates the identity endpoint refused the request (non-2xx).
	ErrAuthRejected = errors.New("auth rejected")

	// ErrRefreshFailed indicates the token exchange refused the refresh token.
	// The caller must force a re-login.
	ErrRefreshFailed = errors.New("refresh failed")

	// ErrNetwork indicates a transport-level failure before any server verdict.
	ErrNetwork = errors.New("network error")

	// ErrWriteFailed indicates a non-2xx response on a create/update/delete.
	// Never swallowed; retry policy belongs to the caller.
	ErrWriteFailed = errors.New("write failed")
)
