// Package common defines shared sentinel errors used across the KaziFlow
// backend. Callers should use errors.Is to match these values; the HTTP
// layer maps them to status codes at the boundary.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound  = errors.New("not found")
	ErrorDuplicate = errors.New("already exists")

	// Service-level errors (generic/internal flow control).
	ErrorInternal = errors.New("internal error")

	// Credential verification failed. One undifferentiated value for
	// unknown identifier and wrong password alike.
	ErrorInvalidCredentials = errors.New("incorrect email or password")

	// Authorization errors. Unauthenticated covers missing, invalid and
	// expired tokens as well as tokens for accounts that no longer exist;
	// Forbidden means a valid identity with an insufficient role.
	ErrorUnauthenticated = errors.New("could not validate credentials")
	ErrorForbidden       = errors.New("not authorized")

	// Malformed input shape.
	ErrorValidation = errors.New("validation error")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")
)
