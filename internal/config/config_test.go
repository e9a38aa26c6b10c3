package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnv(t *testing.T) {
	t.Setenv("APP_SUPERADMIN_USERNAME", "superadmin")
	t.Setenv("APP_SUPERADMIN_PASSWORD", "SuperAdmin@123")
	t.Setenv("APP_TOKEN_SIGN_KEY", "sign-key")
	t.Setenv("APP_TOKEN_DURATION", "24h")
	t.Setenv("SUPABASE_URL", "https://project.supabase.co")
	t.Setenv("SUPABASE_SERVICE_KEY", "service-key")
	t.Setenv("SERVER_ADDRESS", "0.0.0.0:9000")
	t.Setenv("MAIL_FROM_ADDRESS", "noreply@apnaparivar.com")

	cfg := &StructuredConfig{}
	require.NoError(t, parseEnv(cfg))

	assert.Equal(t, "superadmin", cfg.App.SuperAdminUsername)
	assert.Equal(t, "SuperAdmin@123", cfg.App.SuperAdminPassword)
	assert.Equal(t, "sign-key", cfg.App.TokenSignKey)
	assert.Equal(t, 24*time.Hour, cfg.App.TokenDuration)
	assert.Equal(t, "https://project.supabase.co", cfg.Supabase.URL)
	assert.Equal(t, "service-key", cfg.Supabase.ServiceKey)
	assert.Equal(t, "0.0.0.0:9000", cfg.Server.HTTPAddress)
	assert.Equal(t, "noreply@apnaparivar.com", cfg.Mail.FromAddress)
}

func TestParseJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	payload := `{
		"app": {
			"superadmin_username": "superadmin",
			"token_sign_key": "json-key",
			"token_duration": "12h"
		},
		"supabase": {
			"url": "https://project.supabase.co",
			"service_key": "json-service-key",
			"timeout": "10s"
		},
		"server": {
			"http_address": "127.0.0.1:8081"
		}
	}`
	require.NoError(t, os.WriteFile(path, []byte(payload), 0o600))

	cfg, err := parseJSON(path)
	require.NoError(t, err)

	assert.Equal(t, "superadmin", cfg.App.SuperAdminUsername)
	assert.Equal(t, "json-key", cfg.App.TokenSignKey)
	assert.Equal(t, 12*time.Hour, cfg.App.TokenDuration)
	assert.Equal(t, "https://project.supabase.co", cfg.Supabase.URL)
	assert.Equal(t, 10*time.Second, cfg.Supabase.Timeout)
	assert.Equal(t, "127.0.0.1:8081", cfg.Server.HTTPAddress)
}

func TestParseJSONMissingFile(t *testing.T) {
	_, err := parseJSON(filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)
}

func TestBuilderDefaultsFillGaps(t *testing.T) {
	cfg, err := newConfigBuilder().
		withSource(&StructuredConfig{
			App: App{
				SuperAdminUsername: "superadmin",
				SuperAdminPassword: "SuperAdmin@123",
				TokenSignKey:       "sign-key",
			},
			Supabase: Supabase{
				URL:        "https://project.supabase.co",
				ServiceKey: "service-key",
			},
		}).
		withDefaults().
		build()
	require.NoError(t, err)

	assert.Equal(t, 24*time.Hour, cfg.App.TokenDuration)
	assert.Equal(t, "familytree-backend", cfg.App.TokenIssuer)
	assert.Equal(t, "0.0.0.0:8080", cfg.Server.HTTPAddress)
	assert.Equal(t, 15*time.Second, cfg.Supabase.Timeout)
}

func TestBuilderEarlierSourceWins(t *testing.T) {
	cfg, err := newConfigBuilder().
		withSource(&StructuredConfig{
			App: App{
				SuperAdminUsername: "superadmin",
				SuperAdminPassword: "SuperAdmin@123",
				TokenSignKey:       "sign-key",
				TokenDuration:      time.Hour,
			},
			Supabase: Supabase{
				URL:        "https://project.supabase.co",
				ServiceKey: "service-key",
			},
			Server: Server{HTTPAddress: "127.0.0.1:9999"},
		}).
		withDefaults().
		build()
	require.NoError(t, err)

	assert.Equal(t, time.Hour, cfg.App.TokenDuration)
	assert.Equal(t, "127.0.0.1:9999", cfg.Server.HTTPAddress)
}

func TestValidateRejectsIncompleteConfig(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(cfg *StructuredConfig)
		wantErr error
	}{
		{
			name:    "missing supabase url",
			mutate:  func(cfg *StructuredConfig) { cfg.Supabase.URL = "" },
			wantErr: ErrInvalidSupabaseConfigs,
		},
		{
			name:    "missing service key",
			mutate:  func(cfg *StructuredConfig) { cfg.Supabase.ServiceKey = "" },
			wantErr: ErrInvalidSupabaseConfigs,
		},
		{
			name:    "missing token sign key",
			mutate:  func(cfg *StructuredConfig) { cfg.App.TokenSignKey = "" },
			wantErr: ErrInvalidTokenConfigs,
		},
		{
			name:    "missing superadmin password",
			mutate:  func(cfg *StructuredConfig) { cfg.App.SuperAdminPassword = "" },
			wantErr: ErrInvalidSuperAdminConfigs,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &StructuredConfig{
				App: App{
					SuperAdminUsername: "superadmin",
					SuperAdminPassword: "SuperAdmin@123",
					TokenSignKey:       "sign-key",
					TokenDuration:      24 * time.Hour,
				},
				Supabase: Supabase{
					URL:        "https://project.supabase.co",
					ServiceKey: "service-key",
				},
			}
			tt.mutate(cfg)
			assert.ErrorIs(t, cfg.validate(), tt.wantErr)
		})
	}
}

func TestNetAddressSet(t *testing.T) {
	var addr NetAddress
	require.NoError(t, addr.Set("localhost:8080"))
	assert.Equal(t, "localhost:8080", addr.String())

	assert.Error(t, addr.Set("no-port"))
	assert.Error(t, addr.Set("localhost:zero"))
	assert.Error(t, addr.Set("localhost:-1"))
}
