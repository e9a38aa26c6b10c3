package service

import (
	"context"

	"github.com/apnaparivar/familytree-backend/models"
)

// TokenService issues and verifies the session tokens this backend signs
// itself. The hosted auth provider's session tokens are a separate namespace
// handled by AuthService's magic-link flow.
type TokenService interface {
	// Issue signs a token carrying the four identity claims. familyID is
	// nil for the super-administrator.
	Issue(ctx context.Context, userID, email string, role models.Role, familyID *string) (models.Token, error)

	// Verify parses and validates a compact token string, failing with
	// ErrTokenExpired or ErrTokenInvalid as distinguishable kinds.
	Verify(ctx context.Context, tokenString string) (models.TokenClaims, error)
}

// OnboardingService drives the family-admin signup state machine:
// pending, then exactly one transition to approved or rejected.
type OnboardingService interface {
	CreateRequest(ctx context.Context, request models.AdminRegisterRequest) (models.RegisterResponse, error)

	// ApproveRequest creates the family, activates the admin account, and
	// flips the request to approved. reviewerID equal to the hardcoded
	// super-admin identity is recorded as a null reviewer.
	ApproveRequest(ctx context.Context, requestID, adminPassword, reviewerID string) (models.DecisionResponse, error)

	RejectRequest(ctx context.Context, requestID, reason, reviewerID string) (models.DecisionResponse, error)
	GetStatus(ctx context.Context, requestID string) (models.RequestStatusResponse, error)
	ListPending(ctx context.Context) (models.PendingRequestsResponse, error)
}

// AuthService implements every login flow and the pass-through operations
// against the hosted auth provider.
type AuthService interface {
	SuperAdminLogin(ctx context.Context, request models.SuperAdminLoginRequest) (models.AuthResponse, error)
	AdminLogin(ctx context.Context, request models.LoginRequest) (models.AuthResponse, error)
	MemberLogin(ctx context.Context, request models.MemberLoginRequest) (models.AuthResponse, error)

	// FamilyPassword decrypts the shared family password for the admin
	// identified by claims, keyed by the admin's own login password.
	FamilyPassword(ctx context.Context, claims models.TokenClaims, adminPassword string) (models.FamilyPasswordResponse, error)

	SendMagicLink(ctx context.Context, email string) error
	VerifyMagicLink(ctx context.Context, email, token string) (models.AuthResponse, error)
	RefreshSession(ctx context.Context, refreshToken string) (models.AuthResponse, error)
	CurrentUser(ctx context.Context, claims models.TokenClaims) (models.User, error)

	// SessionUser resolves a hosted-provider session token to its account
	// row. Magic-link logins hold provider tokens that Verify rejects, so
	// profile reads fall back to this lookup.
	SessionUser(ctx context.Context, accessToken string) (models.User, error)

	Logout(ctx context.Context, accessToken string) error
}

// FamilyService is the directory service over family rows.
type FamilyService interface {
	Create(ctx context.Context, familyName string) (models.Family, error)
	Get(ctx context.Context, familyID string) (models.Family, error)
	List(ctx context.Context) ([]models.Family, error)
	Update(ctx context.Context, familyID string, fields map[string]any) (models.Family, error)
	Delete(ctx context.Context, familyID string) error
}

// FamilyMemberService is the directory service over family-member rows.
type FamilyMemberService interface {
	Create(ctx context.Context, familyID string, request models.CreateFamilyMemberRequest) (models.FamilyMember, error)

	// BulkCreate validates every entry before a single batched insert:
	// one invalid entry fails the whole batch and nothing is stored.
	BulkCreate(ctx context.Context, familyID string, request models.BulkCreateFamilyMembersRequest) (models.BulkCreateFamilyMembersResponse, error)

	Get(ctx context.Context, memberID string) (models.FamilyMember, error)
	ListByFamily(ctx context.Context, familyID string) ([]models.FamilyMember, error)
	Search(ctx context.Context, familyID, query string) ([]models.FamilyMember, error)
	Update(ctx context.Context, memberID string, request models.UpdateFamilyMemberRequest) (models.FamilyMember, error)
	Delete(ctx context.Context, memberID string) error
}

// UserService is the directory service over account rows.
type UserService interface {
	Create(ctx context.Context, request models.CreateUserRequest) (models.User, error)
	Get(ctx context.Context, userID string) (models.User, error)
	ListByFamily(ctx context.Context, familyID string) ([]models.User, error)
	Update(ctx context.Context, userID string, fields map[string]any) (models.User, error)
	Delete(ctx context.Context, userID string) error
}

// Mailer sends best-effort notification emails. Implementations must never
// fail a workflow: callers ignore the returned error beyond logging it.
type Mailer interface {
	SendApprovalNotice(ctx context.Context, to, familyName string) error
	SendRejectionNotice(ctx context.Context, to, familyName, reason string) error
}
