// Package utils provides general-purpose helper utilities used across
// different parts of the application: type-safe context keys, HTTP response
// writing, bearer-token parsing, HTTP client construction, and identifier
// generation.
package utils

import (
	"context"

	"github.com/apnaparivar/familytree-backend/models"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
// Implements the fmt.Stringer interface.
func (c contextKey) String() string {
	return string(c)
}

// ClaimsCtxKey is the key under which the authentication middleware stores
// the verified token claims of the current request.
var ClaimsCtxKey = contextKey("authClaims")

// WithClaims returns a copy of ctx carrying the given token claims.
func WithClaims(ctx context.Context, claims models.TokenClaims) context.Context {
	return context.WithValue(ctx, ClaimsCtxKey, claims)
}

// GetClaimsFromContext retrieves the verified token claims from the context.
//
// Returns the claims and an ok flag:
//   - ok == true  — claims are present (the request passed authentication)
//   - ok == false — the request was not authenticated
func GetClaimsFromContext(ctx context.Context) (models.TokenClaims, bool) {
	claims, ok := ctx.Value(ClaimsCtxKey).(models.TokenClaims)
	return claims, ok
}
