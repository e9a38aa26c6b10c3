package store

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/apnaparivar/familytree-backend/internal/logger"
	"github.com/apnaparivar/familytree-backend/internal/utils"
	"github.com/go-resty/resty/v2"
)

// AuthUser is the normalized shape of an identity held by the hosted auth
// provider. The provider returns users in several shapes depending on the
// endpoint; everything is folded into this struct at the boundary.
type AuthUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Session is a provider-issued session token pair. It lives in a separate
// namespace from the tokens this service signs itself and is used only by
// the magic-link flow.
type Session struct {
	AccessToken  string   `json:"access_token"`
	RefreshToken string   `json:"refresh_token"`
	User         AuthUser `json:"user"`
}

// AuthClient is the boundary to the hosted auth provider's user
// administration and one-time-passcode APIs (rooted at /auth/v1).
//
// The provider offers no direct lookup-by-email primitive, which is why
// ListUsers exists: the onboarding workflow lists and matches on email when
// CreateUser reports the address as already registered.
type AuthClient interface {
	CreateUser(ctx context.Context, email, password string) (AuthUser, error)
	ListUsers(ctx context.Context) ([]AuthUser, error)
	SendOTP(ctx context.Context, email, redirectTo string) error
	VerifyOTP(ctx context.Context, email, token string) (Session, error)
	RefreshSession(ctx context.Context, refreshToken string) (Session, error)
	GetUser(ctx context.Context, accessToken string) (AuthUser, error)
	SignOut(ctx context.Context, accessToken string) error
}

type authClient struct {
	client     *utils.HTTPClient
	serviceKey string
	logger     *logger.Logger
}

// NewAuthClient constructs an AuthClient against the same hosted service as
// the table API, using the privileged service key for admin endpoints.
func NewAuthClient(cfg RestConfig, logger *logger.Logger) AuthClient {
	cli := utils.NewHTTPClient(cfg.BaseURL, cfg.Timeout)
	cli.SetHeader("apikey", cfg.ServiceKey)
	cli.SetHeader("Content-Type", "application/json")

	logger.Debug().Str("base_url", cfg.BaseURL).Msg("created hosted-auth client")
	return &authClient{client: cli, serviceKey: cfg.ServiceKey, logger: logger}
}

// CreateUser provisions a confirmed email/password identity via the admin
// API. Returns ErrEmailAlreadyRegistered when the provider reports the email
// as taken, so the caller can fall back to a list-and-match lookup.
func (a *authClient) CreateUser(ctx context.Context, email, password string) (AuthUser, error) {
	resp, err := a.admin(ctx).
		SetBody(map[string]any{
			"email":         email,
			"password":      password,
			"email_confirm": true,
		}).
		Post("/auth/v1/admin/users")
	if err != nil {
		return AuthUser{}, fmt.Errorf("create auth user: %w", err)
	}
	if err := a.mapError(resp); err != nil {
		return AuthUser{}, err
	}

	return decodeAuthUser(resp.Body())
}

// ListUsers returns every identity known to the provider. Used only as the
// fallback lookup by email.
func (a *authClient) ListUsers(ctx context.Context) ([]AuthUser, error) {
	resp, err := a.admin(ctx).Get("/auth/v1/admin/users")
	if err != nil {
		return nil, fmt.Errorf("list auth users: %w", err)
	}
	if err := a.mapError(resp); err != nil {
		return nil, err
	}

	// The provider has shipped two list shapes: a bare array and an
	// object wrapping it under "users". Accept both here so no caller
	// ever sees the difference.
	var wrapped struct {
		Users []AuthUser `json:"users"`
	}
	if err := json.Unmarshal(resp.Body(), &wrapped); err == nil && wrapped.Users != nil {
		return wrapped.Users, nil
	}

	var users []AuthUser
	if err := json.Unmarshal(resp.Body(), &users); err != nil {
		return nil, fmt.Errorf("decode auth user list: %w", err)
	}
	return users, nil
}

// SendOTP asks the provider to email a one-time passcode / magic link.
func (a *authClient) SendOTP(ctx context.Context, email, redirectTo string) error {
	body := map[string]any{"email": email}
	if redirectTo != "" {
		body["options"] = map[string]any{"email_redirect_to": redirectTo}
	}

	resp, err := a.anon(ctx).SetBody(body).Post("/auth/v1/otp")
	if err != nil {
		return fmt.Errorf("send otp: %w", err)
	}
	return a.mapError(resp)
}

// VerifyOTP exchanges an emailed passcode for a provider session.
func (a *authClient) VerifyOTP(ctx context.Context, email, token string) (Session, error) {
	resp, err := a.anon(ctx).
		SetBody(map[string]any{
			"email": email,
			"token": token,
			"type":  "email",
		}).
		Post("/auth/v1/verify")
	if err != nil {
		return Session{}, fmt.Errorf("verify otp: %w", err)
	}
	if resp.StatusCode() == http.StatusUnauthorized || resp.StatusCode() == http.StatusForbidden {
		return Session{}, ErrInvalidOTP
	}
	if err := a.mapError(resp); err != nil {
		return Session{}, err
	}

	return decodeSession(resp.Body())
}

// RefreshSession exchanges a refresh token for a fresh session pair.
func (a *authClient) RefreshSession(ctx context.Context, refreshToken string) (Session, error) {
	resp, err := a.anon(ctx).
		SetQueryParam("grant_type", "refresh_token").
		SetBody(map[string]any{"refresh_token": refreshToken}).
		Post("/auth/v1/token")
	if err != nil {
		return Session{}, fmt.Errorf("refresh session: %w", err)
	}
	if resp.StatusCode() == http.StatusUnauthorized || resp.StatusCode() == http.StatusBadRequest {
		return Session{}, ErrInvalidSession
	}
	if err := a.mapError(resp); err != nil {
		return Session{}, err
	}

	return decodeSession(resp.Body())
}

// GetUser resolves a provider access token back to its identity.
func (a *authClient) GetUser(ctx context.Context, accessToken string) (AuthUser, error) {
	resp, err := a.client.R().
		SetContext(ctx).
		SetHeader("Authorization", "Bearer "+accessToken).
		Get("/auth/v1/user")
	if err != nil {
		return AuthUser{}, fmt.Errorf("get auth user: %w", err)
	}
	if resp.StatusCode() == http.StatusUnauthorized || resp.StatusCode() == http.StatusForbidden {
		return AuthUser{}, ErrInvalidSession
	}
	if err := a.mapError(resp); err != nil {
		return AuthUser{}, err
	}

	return decodeAuthUser(resp.Body())
}

// SignOut revokes a provider session.
func (a *authClient) SignOut(ctx context.Context, accessToken string) error {
	resp, err := a.client.R().
		SetContext(ctx).
		SetHeader("Authorization", "Bearer "+accessToken).
		Post("/auth/v1/logout")
	if err != nil {
		return fmt.Errorf("sign out: %w", err)
	}
	return a.mapError(resp)
}

// admin builds a request authorized with the privileged service key.
func (a *authClient) admin(ctx context.Context) *resty.Request {
	return a.client.R().
		SetContext(ctx).
		SetHeader("Authorization", "Bearer "+a.serviceKey)
}

// anon builds a request for the provider's public endpoints (OTP, verify,
// refresh), which need only the apikey header already set on the client.
func (a *authClient) anon(ctx context.Context) *resty.Request {
	return a.client.R().SetContext(ctx)
}

// authError is the error body the provider returns on failure. Older
// versions use msg/error_description, newer ones message; accept all.
type authError struct {
	Message     string `json:"message"`
	Msg         string `json:"msg"`
	Description string `json:"error_description"`
}

func (e authError) text() string {
	switch {
	case e.Message != "":
		return e.Message
	case e.Msg != "":
		return e.Msg
	default:
		return e.Description
	}
}

func (a *authClient) mapError(resp *resty.Response) error {
	if resp.StatusCode() >= http.StatusOK && resp.StatusCode() < http.StatusMultipleChoices {
		return nil
	}

	var ae authError
	_ = json.Unmarshal(resp.Body(), &ae)
	message := ae.text()

	lower := strings.ToLower(message)
	if strings.Contains(lower, "already") && (strings.Contains(lower, "registered") || strings.Contains(lower, "exists")) {
		return fmt.Errorf("%w: %s", ErrEmailAlreadyRegistered, message)
	}

	if message == "" {
		message = http.StatusText(resp.StatusCode())
	}

	a.logger.Error().
		Int("status", resp.StatusCode()).
		Str("message", message).
		Msg("hosted auth request failed")

	return fmt.Errorf("auth provider request failed: http %d: %s", resp.StatusCode(), message)
}

// decodeAuthUser accepts both shapes the provider uses for a single user:
// the bare user object and an object wrapping it under "user".
func decodeAuthUser(body []byte) (AuthUser, error) {
	var wrapped struct {
		User *AuthUser `json:"user"`
	}
	if err := json.Unmarshal(body, &wrapped); err == nil && wrapped.User != nil && wrapped.User.ID != "" {
		return *wrapped.User, nil
	}

	var user AuthUser
	if err := json.Unmarshal(body, &user); err != nil {
		return AuthUser{}, fmt.Errorf("decode auth user: %w", err)
	}
	if user.ID == "" {
		return AuthUser{}, fmt.Errorf("decode auth user: response carried no id")
	}
	return user, nil
}

func decodeSession(body []byte) (Session, error) {
	var session Session
	if err := json.Unmarshal(body, &session); err != nil {
		return Session{}, fmt.Errorf("decode session: %w", err)
	}
	if session.AccessToken == "" {
		return Session{}, ErrInvalidSession
	}
	return session, nil
}
