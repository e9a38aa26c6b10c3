package config

// validate checks that the final merged [StructuredConfig] satisfies the
// invariants the application needs at startup.
//
// Returns nil if the configuration is valid, or a descriptive error otherwise.
func (cfg *StructuredConfig) validate() error {
	if cfg.Supabase.URL == "" || cfg.Supabase.ServiceKey == "" {
		return ErrInvalidSupabaseConfigs
	}

	if cfg.App.TokenSignKey == "" || cfg.App.TokenDuration <= 0 {
		return ErrInvalidTokenConfigs
	}

	if cfg.App.SuperAdminUsername == "" || cfg.App.SuperAdminPassword == "" {
		return ErrInvalidSuperAdminConfigs
	}

	return nil
}
