package http

import "errors"

// Sentinel errors raised by the authentication and authorization middleware.
// Callers can match against them with [errors.Is].
var (
	// ErrEmptyAuthorizationHeader is returned when the incoming request does
	// not include an "Authorization" header at all.
	ErrEmptyAuthorizationHeader = errors.New("empty `Authorization` header")

	// ErrForbidden is returned when the authenticated caller's role does not
	// grant access to the route.
	ErrForbidden = errors.New("insufficient permissions")

	// ErrWrongFamilyScope is returned when a family-scoped caller addresses
	// a family other than their own.
	ErrWrongFamilyScope = errors.New("access to a different family is not allowed")
)
