package service

import "errors"

var (
	// Onboarding workflow failures. Each precondition of the signup and
	// approval state machine gets its own sentinel so the handler layer can
	// map them to distinct statuses.
	ErrDuplicateFamilyName = errors.New("family name already exists")
	ErrDuplicateRequest    = errors.New("a pending request already exists for this email")
	ErrUserAlreadyExists   = errors.New("user already exists")
	ErrWeakFamilyPassword  = errors.New("family password must be at least 4 characters long")
	ErrAuthLookupFailed    = errors.New("email is already registered but the existing auth identity could not be resolved")
	ErrNotPending          = errors.New("request is not pending")

	ErrNotFound = errors.New("not found")

	// Login and token failures.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAdminPending       = errors.New("admin request is still pending approval")
	ErrAdminRejected      = errors.New("admin request has been rejected")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")

	ErrTokenCreationFailed = errors.New("token creation failed")
)
