package store

import "errors"

// Sentinel errors returned by repository and client methods to signal
// well-known failure conditions. Callers should use [errors.Is] to match
// against these values.
var (
	// ErrNotFound is returned when a query expected to match exactly one
	// row produces an empty result set.
	ErrNotFound = errors.New("record not found")

	// ErrUniqueViolation is returned when the hosted store rejects an
	// insert because of a uniqueness constraint (e.g. family_name or a
	// user identifier). The pre-insert existence checks performed by the
	// services are not atomic, so this is their authoritative backstop.
	ErrUniqueViolation = errors.New("unique constraint violation")

	// ErrNoRowsUpdated is returned when a conditional update matches no
	// rows. For the onboarding approval path this means another reviewer
	// already flipped the request out of pending.
	ErrNoRowsUpdated = errors.New("no rows were updated")
)

// Auth-provider errors. The provider is opaque; only the conditions the
// services branch on get their own sentinel, everything else propagates
// wrapped.
var (
	// ErrEmailAlreadyRegistered is returned by CreateUser when the
	// provider reports that an identity with the same email already
	// exists. The onboarding workflow treats this as a signal to fall
	// back to a list-and-match lookup.
	ErrEmailAlreadyRegistered = errors.New("email already registered with auth provider")

	// ErrInvalidOTP is returned when the provider rejects a one-time
	// passcode as wrong or expired.
	ErrInvalidOTP = errors.New("invalid or expired one-time passcode")

	// ErrInvalidSession is returned when the provider rejects an access
	// or refresh token.
	ErrInvalidSession = errors.New("invalid or expired session")
)
