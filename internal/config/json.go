package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors [StructuredConfig] with JSON-friendly field
// types; durations accept both "24h"-style strings and nanosecond numbers.
type StructuredJSONConfig struct {
	App struct {
		SuperAdminUsername   string   `json:"superadmin_username"`
		SuperAdminPassword   string   `json:"superadmin_password"`
		SuperAdminEmail      string   `json:"superadmin_email"`
		TokenSignKey         string   `json:"token_sign_key"`
		TokenIssuer          string   `json:"token_issuer"`
		TokenDuration        Duration `json:"token_duration"`
		MagicLinkRedirectURL string   `json:"magic_link_redirect_url"`
	} `json:"app,omitempty"`

	Supabase struct {
		URL        string   `json:"url"`
		ServiceKey string   `json:"service_key"`
		Timeout    Duration `json:"timeout"`
	} `json:"supabase,omitempty"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"server,omitempty"`

	Mail struct {
		Region      string `json:"region"`
		FromAddress string `json:"from_address"`
		FromName    string `json:"from_name"`
	} `json:"mail,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			SuperAdminUsername:   jsonCfg.App.SuperAdminUsername,
			SuperAdminPassword:   jsonCfg.App.SuperAdminPassword,
			SuperAdminEmail:      jsonCfg.App.SuperAdminEmail,
			TokenSignKey:         jsonCfg.App.TokenSignKey,
			TokenIssuer:          jsonCfg.App.TokenIssuer,
			TokenDuration:        time.Duration(jsonCfg.App.TokenDuration),
			MagicLinkRedirectURL: jsonCfg.App.MagicLinkRedirectURL,
		},
		Supabase: Supabase{
			URL:        jsonCfg.Supabase.URL,
			ServiceKey: jsonCfg.Supabase.ServiceKey,
			Timeout:    time.Duration(jsonCfg.Supabase.Timeout),
		},
		Server: Server{
			HTTPAddress:    jsonCfg.Server.HTTPAddress,
			RequestTimeout: time.Duration(jsonCfg.Server.RequestTimeout),
		},
		Mail: Mail{
			Region:      jsonCfg.Mail.Region,
			FromAddress: jsonCfg.Mail.FromAddress,
			FromName:    jsonCfg.Mail.FromName,
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
