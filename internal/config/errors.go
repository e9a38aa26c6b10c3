package config

import "errors"

// Validation errors returned by [StructuredConfig.validate] when required
// configuration groups are incomplete or invalid.
var (
	// ErrInvalidSupabaseConfigs indicates missing hosted-service settings
	// (URL or privileged service key).
	ErrInvalidSupabaseConfigs = errors.New("invalid supabase configuration")
	// ErrInvalidTokenConfigs indicates missing or nonsensical session-token
	// settings (empty sign key or non-positive duration).
	ErrInvalidTokenConfigs = errors.New("invalid token configuration")
	// ErrInvalidSuperAdminConfigs indicates an incomplete super-admin
	// credential pair.
	ErrInvalidSuperAdminConfigs = errors.New("invalid superadmin configuration")
)
