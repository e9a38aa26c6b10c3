package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container for the
// family-tree backend. It aggregates all sub-configurations and is populated
// by merging values from environment variables, command-line flags, and an
// optional JSON file.
//
// Struct tags:
//   - envPrefix — prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       — direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds application-level settings: the hardcoded super-admin
	// credential pair and the session-token parameters.
	App App `envPrefix:"APP_"`

	// Supabase holds the connection settings for the hosted store and auth
	// provider.
	Supabase Supabase `envPrefix:"SUPABASE_"`

	// Server holds network address and timeout settings for the HTTP server.
	Server Server `envPrefix:"SERVER_"`

	// Mail holds the Amazon SES settings for onboarding notification
	// emails. An empty from-address disables the mailer.
	Mail Mail `envPrefix:"MAIL_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged on top of the values
	// already loaded from environment variables and flags.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values that control the
// super-admin identity and the session-token lifecycle.
type App struct {
	// SuperAdminUsername and SuperAdminPassword form the fixed credential
	// pair of the platform super-administrator. The super-admin has no
	// account row; it exists only in configuration.
	// Env: APP_SUPERADMIN_USERNAME / APP_SUPERADMIN_PASSWORD
	SuperAdminUsername string `env:"SUPERADMIN_USERNAME"`
	SuperAdminPassword string `env:"SUPERADMIN_PASSWORD"`

	// SuperAdminEmail is the email claim embedded in super-admin tokens.
	// Env: APP_SUPERADMIN_EMAIL
	SuperAdminEmail string `env:"SUPERADMIN_EMAIL"`

	// TokenSignKey is the secret key used to sign and verify session
	// tokens. Must be kept confidential.
	// Env: APP_TOKEN_SIGN_KEY
	TokenSignKey string `env:"TOKEN_SIGN_KEY"`

	// TokenIssuer is the "iss" claim embedded in every issued token.
	// Env: APP_TOKEN_ISSUER
	TokenIssuer string `env:"TOKEN_ISSUER"`

	// TokenDuration specifies how long a session token remains valid after
	// issuance (e.g. "24h").
	// Env: APP_TOKEN_DURATION
	TokenDuration time.Duration `env:"TOKEN_DURATION"`

	// MagicLinkRedirectURL is the address magic-link emails send users
	// back to after the one-time passcode is consumed.
	// Env: APP_MAGIC_LINK_REDIRECT_URL
	MagicLinkRedirectURL string `env:"MAGIC_LINK_REDIRECT_URL"`
}

// Supabase holds connection settings for the hosted backend-as-a-service.
type Supabase struct {
	// URL is the root of the hosted project
	// (e.g. "https://xyzcompany.supabase.co").
	// Env: SUPABASE_URL
	URL string `env:"URL"`

	// ServiceKey is the privileged server-side API key. Must be kept
	// confidential; it bypasses the hosted store's row-level security.
	// Env: SUPABASE_SERVICE_KEY
	ServiceKey string `env:"SERVICE_KEY"`

	// Timeout bounds every outbound call to the hosted service.
	// Env: SUPABASE_TIMEOUT
	Timeout time.Duration `env:"TIMEOUT"`
}

// Server holds network and timeout settings for the inbound HTTP layer.
type Server struct {
	// HTTPAddress is the TCP address on which the HTTP server listens,
	// in "host:port" format (e.g. "0.0.0.0:8080").
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout is the maximum duration allowed for a single inbound
	// request before the server cancels it (e.g. "30s").
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Mail holds Amazon SES settings for notification emails.
type Mail struct {
	// Region is the AWS region the SES client talks to.
	// Env: MAIL_REGION
	Region string `env:"REGION"`

	// FromAddress is the verified sender address. Empty disables the
	// mailer entirely; notification sends become logged no-ops.
	// Env: MAIL_FROM_ADDRESS
	FromAddress string `env:"FROM_ADDRESS"`

	// FromName is the optional display name used with FromAddress.
	// Env: MAIL_FROM_NAME
	FromName string `env:"FROM_NAME"`
}

// GetStructuredConfig loads, merges, and validates the application
// configuration from all available sources in the following priority order
// (last source wins for non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
//  4. Built-in defaults
//
// Returns a fully populated *StructuredConfig or an error if any source
// fails to load or the final config fails validation.
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		withDefaults().
		build()
}
