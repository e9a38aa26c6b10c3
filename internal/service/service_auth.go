package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"

	"github.com/apnaparivar/familytree-backend/internal/config"
	"github.com/apnaparivar/familytree-backend/internal/crypto"
	"github.com/apnaparivar/familytree-backend/internal/logger"
	"github.com/apnaparivar/familytree-backend/internal/store"
	"github.com/apnaparivar/familytree-backend/models"
)

// authService implements every login flow. Password logins issue this
// service's own tokens; the magic-link flow passes the hosted provider's
// session tokens through instead.
type authService struct {
	users       store.UserRepository
	families    store.FamilyRepository
	members     store.FamilyMemberRepository
	auth        store.AuthClient
	credentials crypto.CredentialService
	tokens      TokenService

	superAdminUsername string
	superAdminPassword string
	superAdminEmail    string
	magicLinkRedirect  string

	logger *logger.Logger
}

// NewAuthService constructs an AuthService over the given storages, token
// service, and credential service.
func NewAuthService(
	storages *store.Storages,
	tokens TokenService,
	credentials crypto.CredentialService,
	cfg config.App,
	logger *logger.Logger,
) AuthService {
	return &authService{
		users:              storages.Users,
		families:           storages.Families,
		members:            storages.FamilyMembers,
		auth:               storages.Auth,
		credentials:        credentials,
		tokens:             tokens,
		superAdminUsername: cfg.SuperAdminUsername,
		superAdminPassword: cfg.SuperAdminPassword,
		superAdminEmail:    cfg.SuperAdminEmail,
		magicLinkRedirect:  cfg.MagicLinkRedirectURL,
		logger:             logger,
	}
}

// SuperAdminLogin checks the fixed credential pair from the configuration
// and issues a cross-family token under the hardcoded identity.
func (s *authService) SuperAdminLogin(ctx context.Context, request models.SuperAdminLoginRequest) (models.AuthResponse, error) {
	usernameOK := subtle.ConstantTimeCompare([]byte(request.Username), []byte(s.superAdminUsername)) == 1
	passwordOK := subtle.ConstantTimeCompare([]byte(request.Password), []byte(s.superAdminPassword)) == 1
	if !usernameOK || !passwordOK {
		logger.FromContext(ctx).Warn().Str("username", request.Username).Msg("superadmin login rejected")
		return models.AuthResponse{}, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(ctx, models.SuperAdminUserID, s.superAdminEmail, models.RoleSuperAdmin, nil)
	if err != nil {
		return models.AuthResponse{}, err
	}

	return models.AuthResponse{
		AccessToken: token.SignedString,
		TokenType:   "bearer",
		User: models.User{
			ID:    models.SuperAdminUserID,
			Email: s.superAdminEmail,
			Role:  models.RoleSuperAdmin,
		},
		Message: "SuperAdmin login successful",
	}, nil
}

// AdminLogin authenticates a family admin by email and password. An
// unapproved admin gets a distinct failure for each terminal state so the
// client can tell "wait for approval" apart from "rejected".
func (s *authService) AdminLogin(ctx context.Context, request models.LoginRequest) (models.AuthResponse, error) {
	log := logger.FromContext(ctx)

	user, err := s.users.FindByEmailAndRole(ctx, request.Email, models.RoleFamilyAdmin)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return models.AuthResponse{}, ErrInvalidCredentials
		}
		return models.AuthResponse{}, fmt.Errorf("admin lookup failed: %w", err)
	}

	switch user.ApprovalStatus {
	case models.StatusApproved:
	case models.StatusPending:
		return models.AuthResponse{}, ErrAdminPending
	default:
		return models.AuthResponse{}, ErrAdminRejected
	}

	if !s.credentials.VerifyPassword(request.Password, user.PasswordHash) {
		log.Warn().Str("email", request.Email).Msg("admin login with wrong password")
		return models.AuthResponse{}, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(ctx, user.ID, user.Email, user.Role, user.FamilyID)
	if err != nil {
		return models.AuthResponse{}, err
	}

	return models.AuthResponse{
		AccessToken: token.SignedString,
		TokenType:   "bearer",
		User:        user.Public(),
		Message:     "Login successful",
	}, nil
}

// MemberLogin authenticates a family member with the shared family
// credentials plus the member's email as recorded in the tree. All failure
// modes collapse into ErrInvalidCredentials so the response does not reveal
// whether the family, the password, or the member was wrong.
//
// A family row without a stored password hash rejects member login outright;
// there is no verification bypass for legacy rows.
func (s *authService) MemberLogin(ctx context.Context, request models.MemberLoginRequest) (models.AuthResponse, error) {
	log := logger.FromContext(ctx)

	family, err := s.families.FindByName(ctx, request.FamilyName)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return models.AuthResponse{}, ErrInvalidCredentials
		}
		return models.AuthResponse{}, fmt.Errorf("family lookup failed: %w", err)
	}

	if family.FamilyPasswordHash == "" {
		log.Warn().Str("family_id", family.ID).Msg("family has no stored password hash, member login rejected")
		return models.AuthResponse{}, ErrInvalidCredentials
	}
	if !s.credentials.VerifyPassword(request.FamilyPassword, family.FamilyPasswordHash) {
		return models.AuthResponse{}, ErrInvalidCredentials
	}

	members, err := s.members.ListByFamily(ctx, family.ID)
	if err != nil {
		return models.AuthResponse{}, fmt.Errorf("family member listing failed: %w", err)
	}

	var member models.FamilyMember
	found := false
	for _, candidate := range members {
		if candidate.Email() == request.Email {
			member = candidate
			found = true
			break
		}
	}
	if !found {
		return models.AuthResponse{}, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(ctx, member.ID, request.Email, models.RoleFamilyUser, &family.ID)
	if err != nil {
		return models.AuthResponse{}, err
	}

	return models.AuthResponse{
		AccessToken: token.SignedString,
		TokenType:   "bearer",
		User: models.User{
			ID:             member.ID,
			Email:          request.Email,
			FullName:       member.Name,
			Role:           models.RoleFamilyUser,
			ApprovalStatus: models.StatusApproved,
			FamilyID:       &family.ID,
		},
		Message: "Login successful",
	}, nil
}

// FamilyPassword recovers the plaintext shared family password for the
// admin identified by claims. The admin proves knowledge of their login
// password, which doubles as the decryption passphrase; a wrong password
// fails either the hash check or the decryption, both as credential errors.
func (s *authService) FamilyPassword(ctx context.Context, claims models.TokenClaims, adminPassword string) (models.FamilyPasswordResponse, error) {
	if claims.FamilyID == nil {
		return models.FamilyPasswordResponse{}, ErrInvalidCredentials
	}

	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return models.FamilyPasswordResponse{}, ErrInvalidCredentials
		}
		return models.FamilyPasswordResponse{}, fmt.Errorf("user lookup failed: %w", err)
	}
	if !s.credentials.VerifyPassword(adminPassword, user.PasswordHash) {
		return models.FamilyPasswordResponse{}, ErrInvalidCredentials
	}

	family, err := s.families.GetByID(ctx, *claims.FamilyID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return models.FamilyPasswordResponse{}, ErrNotFound
		}
		return models.FamilyPasswordResponse{}, fmt.Errorf("family lookup failed: %w", err)
	}

	plaintext, err := s.credentials.Decrypt(family.FamilyPasswordEncrypted, adminPassword)
	if err != nil {
		return models.FamilyPasswordResponse{}, err
	}

	return models.FamilyPasswordResponse{FamilyPassword: plaintext}, nil
}

// SendMagicLink asks the hosted auth provider to email a one-time passcode.
func (s *authService) SendMagicLink(ctx context.Context, email string) error {
	if err := s.auth.SendOTP(ctx, email, s.magicLinkRedirect); err != nil {
		return fmt.Errorf("magic link send failed: %w", err)
	}
	return nil
}

// VerifyMagicLink exchanges the emailed passcode for a provider session and
// provisions a default family_user account row for first-time users. The
// returned tokens are the provider's own, not this service's.
func (s *authService) VerifyMagicLink(ctx context.Context, email, token string) (models.AuthResponse, error) {
	log := logger.FromContext(ctx)

	session, err := s.auth.VerifyOTP(ctx, email, token)
	if err != nil {
		if errors.Is(err, store.ErrInvalidOTP) {
			return models.AuthResponse{}, ErrInvalidCredentials
		}
		return models.AuthResponse{}, fmt.Errorf("magic link verification failed: %w", err)
	}

	user, err := s.users.GetByID(ctx, session.User.ID)
	if errors.Is(err, store.ErrNotFound) {
		log.Info().Str("user_id", session.User.ID).Msg("provisioning account for first magic-link login")
		user, err = s.users.Create(ctx, models.User{
			ID:    session.User.ID,
			Email: session.User.Email,
			Role:  models.RoleFamilyUser,
		})
	}
	if err != nil {
		return models.AuthResponse{}, fmt.Errorf("user provisioning failed: %w", err)
	}

	return models.AuthResponse{
		AccessToken:  session.AccessToken,
		RefreshToken: session.RefreshToken,
		TokenType:    "bearer",
		User:         user.Public(),
		Message:      "Magic link verified successfully",
	}, nil
}

// RefreshSession exchanges a provider refresh token for a fresh session.
func (s *authService) RefreshSession(ctx context.Context, refreshToken string) (models.AuthResponse, error) {
	session, err := s.auth.RefreshSession(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, store.ErrInvalidSession) {
			return models.AuthResponse{}, ErrInvalidCredentials
		}
		return models.AuthResponse{}, fmt.Errorf("session refresh failed: %w", err)
	}

	return models.AuthResponse{
		AccessToken:  session.AccessToken,
		RefreshToken: session.RefreshToken,
		TokenType:    "bearer",
	}, nil
}

// CurrentUser resolves the account behind a verified token. The hardcoded
// super-administrator has no account row and is synthesized from config.
func (s *authService) CurrentUser(ctx context.Context, claims models.TokenClaims) (models.User, error) {
	if claims.UserID == models.SuperAdminUserID {
		return models.User{
			ID:    models.SuperAdminUserID,
			Email: s.superAdminEmail,
			Role:  models.RoleSuperAdmin,
		}, nil
	}

	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// Family members authenticate without a users row; echo the
			// token claims back as the profile.
			return models.User{
				ID:       claims.UserID,
				Email:    claims.Email,
				Role:     claims.Role,
				FamilyID: claims.FamilyID,
			}, nil
		}
		return models.User{}, fmt.Errorf("user lookup failed: %w", err)
	}

	return user.Public(), nil
}

// SessionUser asks the hosted provider whose session token this is, then
// resolves the identity to an account row. A magic-link user who has never
// been placed into a family has no enriched row yet; the provider identity
// is echoed back with the default role.
func (s *authService) SessionUser(ctx context.Context, accessToken string) (models.User, error) {
	identity, err := s.auth.GetUser(ctx, accessToken)
	if err != nil {
		if errors.Is(err, store.ErrInvalidSession) {
			return models.User{}, ErrTokenInvalid
		}
		return models.User{}, fmt.Errorf("session lookup failed: %w", err)
	}

	user, err := s.users.GetByID(ctx, identity.ID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return models.User{
				ID:    identity.ID,
				Email: identity.Email,
				Role:  models.RoleFamilyUser,
			}, nil
		}
		return models.User{}, fmt.Errorf("user lookup failed: %w", err)
	}

	return user.Public(), nil
}

// Logout revokes the provider session when one exists. Tokens signed by this
// service are stateless, so for them logout is a client-side discard and the
// provider call failing with an unknown session is not an error.
func (s *authService) Logout(ctx context.Context, accessToken string) error {
	if accessToken == "" {
		return nil
	}
	if err := s.auth.SignOut(ctx, accessToken); err != nil && !errors.Is(err, store.ErrInvalidSession) {
		logger.FromContext(ctx).Debug().Err(err).Msg("provider sign-out failed")
	}
	return nil
}
