package models

import "errors"

// Validation sentinels returned by the Validate methods on request schemas.
// The handler layer maps every one of these to HTTP 400.
var (
	ErrEmptyMemberName      = errors.New("member name must not be empty")
	ErrInvalidEmail         = errors.New("invalid email address")
	ErrMissingField         = errors.New("required field is missing")
	ErrPasswordMismatch     = errors.New("passwords do not match")
	ErrWeakAdminPassword    = errors.New("password must be at least 8 characters")
	ErrWeakFamilyPassword   = errors.New("family password must be at least 4 characters")
	ErrTooManyMembers       = errors.New("cannot create more than 100 members in a single request")
	ErrNoMembersProvided    = errors.New("at least one member is required")
	ErrInvalidAction        = errors.New("invalid action")
	ErrMissingReason        = errors.New("rejection_reason required for rejection")
	ErrMissingAdminPassword = errors.New("admin_password required for approval")
)
