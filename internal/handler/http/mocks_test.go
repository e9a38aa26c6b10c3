package http

import (
	"context"

	"github.com/apnaparivar/familytree-backend/internal/logger"
	"github.com/apnaparivar/familytree-backend/internal/service"
	"github.com/apnaparivar/familytree-backend/models"
)

// ─────────────────────────────────────────────
// Mock service.TokenService
// ─────────────────────────────────────────────

type mockTokenService struct {
	issueFn  func(ctx context.Context, userID, email string, role models.Role, familyID *string) (models.Token, error)
	verifyFn func(ctx context.Context, tokenString string) (models.TokenClaims, error)
}

func (m *mockTokenService) Issue(ctx context.Context, userID, email string, role models.Role, familyID *string) (models.Token, error) {
	if m.issueFn != nil {
		return m.issueFn(ctx, userID, email, role, familyID)
	}
	return models.Token{SignedString: "signed.jwt.token"}, nil
}

func (m *mockTokenService) Verify(ctx context.Context, tokenString string) (models.TokenClaims, error) {
	if m.verifyFn != nil {
		return m.verifyFn(ctx, tokenString)
	}
	return models.TokenClaims{}, service.ErrTokenInvalid
}

// ─────────────────────────────────────────────
// Mock service.OnboardingService
// ─────────────────────────────────────────────

type mockOnboardingService struct {
	createRequestFn  func(ctx context.Context, request models.AdminRegisterRequest) (models.RegisterResponse, error)
	approveRequestFn func(ctx context.Context, requestID, adminPassword, reviewerID string) (models.DecisionResponse, error)
	rejectRequestFn  func(ctx context.Context, requestID, reason, reviewerID string) (models.DecisionResponse, error)
	getStatusFn      func(ctx context.Context, requestID string) (models.RequestStatusResponse, error)
	listPendingFn    func(ctx context.Context) (models.PendingRequestsResponse, error)
}

func (m *mockOnboardingService) CreateRequest(ctx context.Context, request models.AdminRegisterRequest) (models.RegisterResponse, error) {
	if m.createRequestFn != nil {
		return m.createRequestFn(ctx, request)
	}
	return models.RegisterResponse{RequestID: "req-1", Status: models.StatusPending}, nil
}

func (m *mockOnboardingService) ApproveRequest(ctx context.Context, requestID, adminPassword, reviewerID string) (models.DecisionResponse, error) {
	if m.approveRequestFn != nil {
		return m.approveRequestFn(ctx, requestID, adminPassword, reviewerID)
	}
	return models.DecisionResponse{Status: models.StatusApproved}, nil
}

func (m *mockOnboardingService) RejectRequest(ctx context.Context, requestID, reason, reviewerID string) (models.DecisionResponse, error) {
	if m.rejectRequestFn != nil {
		return m.rejectRequestFn(ctx, requestID, reason, reviewerID)
	}
	return models.DecisionResponse{Status: models.StatusRejected}, nil
}

func (m *mockOnboardingService) GetStatus(ctx context.Context, requestID string) (models.RequestStatusResponse, error) {
	if m.getStatusFn != nil {
		return m.getStatusFn(ctx, requestID)
	}
	return models.RequestStatusResponse{}, service.ErrNotFound
}

func (m *mockOnboardingService) ListPending(ctx context.Context) (models.PendingRequestsResponse, error) {
	if m.listPendingFn != nil {
		return m.listPendingFn(ctx)
	}
	return models.PendingRequestsResponse{}, nil
}

// ─────────────────────────────────────────────
// Mock service.AuthService
// ─────────────────────────────────────────────

type mockAuthService struct {
	superAdminLoginFn func(ctx context.Context, request models.SuperAdminLoginRequest) (models.AuthResponse, error)
	adminLoginFn      func(ctx context.Context, request models.LoginRequest) (models.AuthResponse, error)
	memberLoginFn     func(ctx context.Context, request models.MemberLoginRequest) (models.AuthResponse, error)
	familyPasswordFn  func(ctx context.Context, claims models.TokenClaims, adminPassword string) (models.FamilyPasswordResponse, error)
	sendMagicLinkFn   func(ctx context.Context, email string) error
	verifyMagicLinkFn func(ctx context.Context, email, token string) (models.AuthResponse, error)
	refreshSessionFn  func(ctx context.Context, refreshToken string) (models.AuthResponse, error)
	currentUserFn     func(ctx context.Context, claims models.TokenClaims) (models.User, error)
	sessionUserFn     func(ctx context.Context, accessToken string) (models.User, error)
	logoutFn          func(ctx context.Context, accessToken string) error
}

func (m *mockAuthService) SuperAdminLogin(ctx context.Context, request models.SuperAdminLoginRequest) (models.AuthResponse, error) {
	if m.superAdminLoginFn != nil {
		return m.superAdminLoginFn(ctx, request)
	}
	return models.AuthResponse{}, service.ErrInvalidCredentials
}

func (m *mockAuthService) AdminLogin(ctx context.Context, request models.LoginRequest) (models.AuthResponse, error) {
	if m.adminLoginFn != nil {
		return m.adminLoginFn(ctx, request)
	}
	return models.AuthResponse{}, service.ErrInvalidCredentials
}

func (m *mockAuthService) MemberLogin(ctx context.Context, request models.MemberLoginRequest) (models.AuthResponse, error) {
	if m.memberLoginFn != nil {
		return m.memberLoginFn(ctx, request)
	}
	return models.AuthResponse{}, service.ErrInvalidCredentials
}

func (m *mockAuthService) FamilyPassword(ctx context.Context, claims models.TokenClaims, adminPassword string) (models.FamilyPasswordResponse, error) {
	if m.familyPasswordFn != nil {
		return m.familyPasswordFn(ctx, claims, adminPassword)
	}
	return models.FamilyPasswordResponse{}, service.ErrInvalidCredentials
}

func (m *mockAuthService) SendMagicLink(ctx context.Context, email string) error {
	if m.sendMagicLinkFn != nil {
		return m.sendMagicLinkFn(ctx, email)
	}
	return nil
}

func (m *mockAuthService) VerifyMagicLink(ctx context.Context, email, token string) (models.AuthResponse, error) {
	if m.verifyMagicLinkFn != nil {
		return m.verifyMagicLinkFn(ctx, email, token)
	}
	return models.AuthResponse{}, service.ErrInvalidCredentials
}

func (m *mockAuthService) RefreshSession(ctx context.Context, refreshToken string) (models.AuthResponse, error) {
	if m.refreshSessionFn != nil {
		return m.refreshSessionFn(ctx, refreshToken)
	}
	return models.AuthResponse{}, service.ErrInvalidCredentials
}

func (m *mockAuthService) CurrentUser(ctx context.Context, claims models.TokenClaims) (models.User, error) {
	if m.currentUserFn != nil {
		return m.currentUserFn(ctx, claims)
	}
	return models.User{ID: claims.UserID, Email: claims.Email, Role: claims.Role, FamilyID: claims.FamilyID}, nil
}

func (m *mockAuthService) SessionUser(ctx context.Context, accessToken string) (models.User, error) {
	if m.sessionUserFn != nil {
		return m.sessionUserFn(ctx, accessToken)
	}
	return models.User{}, service.ErrTokenInvalid
}

func (m *mockAuthService) Logout(ctx context.Context, accessToken string) error {
	if m.logoutFn != nil {
		return m.logoutFn(ctx, accessToken)
	}
	return nil
}

// ─────────────────────────────────────────────
// Mock service.FamilyService
// ─────────────────────────────────────────────

type mockFamilyService struct {
	createFn func(ctx context.Context, familyName string) (models.Family, error)
	getFn    func(ctx context.Context, familyID string) (models.Family, error)
	listFn   func(ctx context.Context) ([]models.Family, error)
	updateFn func(ctx context.Context, familyID string, fields map[string]any) (models.Family, error)
	deleteFn func(ctx context.Context, familyID string) error
}

func (m *mockFamilyService) Create(ctx context.Context, familyName string) (models.Family, error) {
	if m.createFn != nil {
		return m.createFn(ctx, familyName)
	}
	return models.Family{ID: "fam-1", FamilyName: familyName}, nil
}

func (m *mockFamilyService) Get(ctx context.Context, familyID string) (models.Family, error) {
	if m.getFn != nil {
		return m.getFn(ctx, familyID)
	}
	return models.Family{ID: familyID}, nil
}

func (m *mockFamilyService) List(ctx context.Context) ([]models.Family, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return nil, nil
}

func (m *mockFamilyService) Update(ctx context.Context, familyID string, fields map[string]any) (models.Family, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, familyID, fields)
	}
	return models.Family{ID: familyID}, nil
}

func (m *mockFamilyService) Delete(ctx context.Context, familyID string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, familyID)
	}
	return nil
}

// ─────────────────────────────────────────────
// Mock service.FamilyMemberService
// ─────────────────────────────────────────────

type mockFamilyMemberService struct {
	createFn       func(ctx context.Context, familyID string, request models.CreateFamilyMemberRequest) (models.FamilyMember, error)
	bulkCreateFn   func(ctx context.Context, familyID string, request models.BulkCreateFamilyMembersRequest) (models.BulkCreateFamilyMembersResponse, error)
	getFn          func(ctx context.Context, memberID string) (models.FamilyMember, error)
	listByFamilyFn func(ctx context.Context, familyID string) ([]models.FamilyMember, error)
	searchFn       func(ctx context.Context, familyID, query string) ([]models.FamilyMember, error)
	updateFn       func(ctx context.Context, memberID string, request models.UpdateFamilyMemberRequest) (models.FamilyMember, error)
	deleteFn       func(ctx context.Context, memberID string) error
}

func (m *mockFamilyMemberService) Create(ctx context.Context, familyID string, request models.CreateFamilyMemberRequest) (models.FamilyMember, error) {
	if m.createFn != nil {
		return m.createFn(ctx, familyID, request)
	}
	return request.Member(familyID), nil
}

func (m *mockFamilyMemberService) BulkCreate(ctx context.Context, familyID string, request models.BulkCreateFamilyMembersRequest) (models.BulkCreateFamilyMembersResponse, error) {
	if m.bulkCreateFn != nil {
		return m.bulkCreateFn(ctx, familyID, request)
	}
	if err := request.Validate(); err != nil {
		return models.BulkCreateFamilyMembersResponse{}, err
	}
	return models.BulkCreateFamilyMembersResponse{Success: true, CreatedCount: len(request.Members)}, nil
}

func (m *mockFamilyMemberService) Get(ctx context.Context, memberID string) (models.FamilyMember, error) {
	if m.getFn != nil {
		return m.getFn(ctx, memberID)
	}
	return models.FamilyMember{}, service.ErrNotFound
}

func (m *mockFamilyMemberService) ListByFamily(ctx context.Context, familyID string) ([]models.FamilyMember, error) {
	if m.listByFamilyFn != nil {
		return m.listByFamilyFn(ctx, familyID)
	}
	return nil, nil
}

func (m *mockFamilyMemberService) Search(ctx context.Context, familyID, query string) ([]models.FamilyMember, error) {
	if m.searchFn != nil {
		return m.searchFn(ctx, familyID, query)
	}
	return nil, nil
}

func (m *mockFamilyMemberService) Update(ctx context.Context, memberID string, request models.UpdateFamilyMemberRequest) (models.FamilyMember, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, memberID, request)
	}
	return models.FamilyMember{ID: memberID}, nil
}

func (m *mockFamilyMemberService) Delete(ctx context.Context, memberID string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, memberID)
	}
	return nil
}

// ─────────────────────────────────────────────
// Mock service.UserService
// ─────────────────────────────────────────────

type mockUserService struct {
	createFn       func(ctx context.Context, request models.CreateUserRequest) (models.User, error)
	getFn          func(ctx context.Context, userID string) (models.User, error)
	listByFamilyFn func(ctx context.Context, familyID string) ([]models.User, error)
	updateFn       func(ctx context.Context, userID string, fields map[string]any) (models.User, error)
	deleteFn       func(ctx context.Context, userID string) error
}

func (m *mockUserService) Create(ctx context.Context, request models.CreateUserRequest) (models.User, error) {
	if m.createFn != nil {
		return m.createFn(ctx, request)
	}
	return models.User{ID: "user-1", Email: request.Email, Role: request.Role}, nil
}

func (m *mockUserService) Get(ctx context.Context, userID string) (models.User, error) {
	if m.getFn != nil {
		return m.getFn(ctx, userID)
	}
	return models.User{ID: userID}, nil
}

func (m *mockUserService) ListByFamily(ctx context.Context, familyID string) ([]models.User, error) {
	if m.listByFamilyFn != nil {
		return m.listByFamilyFn(ctx, familyID)
	}
	return nil, nil
}

func (m *mockUserService) Update(ctx context.Context, userID string, fields map[string]any) (models.User, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, userID, fields)
	}
	return models.User{ID: userID}, nil
}

func (m *mockUserService) Delete(ctx context.Context, userID string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, userID)
	}
	return nil
}

// ─────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────

// tokenVerifier builds a mock token service over a token-string-to-claims
// table: tests register a claims fixture under a token string and send
// "Bearer <string>" in requests.
func tokenVerifier(known map[string]models.TokenClaims) *mockTokenService {
	return &mockTokenService{
		verifyFn: func(ctx context.Context, tokenString string) (models.TokenClaims, error) {
			claims, ok := known[tokenString]
			if !ok {
				return models.TokenClaims{}, service.ErrTokenInvalid
			}
			return claims, nil
		},
	}
}

type testServices struct {
	tokens     *mockTokenService
	onboarding *mockOnboardingService
	auth       *mockAuthService
	families   *mockFamilyService
	members    *mockFamilyMemberService
	users      *mockUserService
}

func defaultTestServices() *testServices {
	familyID := "fam-1"
	otherFamilyID := "fam-2"
	return &testServices{
		tokens: tokenVerifier(map[string]models.TokenClaims{
			"superadmin-token": {UserID: models.SuperAdminUserID, Email: "admin@apnaparivar.com", Role: models.RoleSuperAdmin},
			"admin-token":      {UserID: "admin-1", Email: "admin@family.com", Role: models.RoleFamilyAdmin, FamilyID: &familyID},
			"coadmin-token":    {UserID: "coadmin-1", Email: "co@family.com", Role: models.RoleFamilyCoAdmin, FamilyID: &familyID},
			"member-token":     {UserID: "member-1", Email: "aunt@family.com", Role: models.RoleFamilyUser, FamilyID: &familyID},
			"stranger-token":   {UserID: "admin-2", Email: "admin@other.com", Role: models.RoleFamilyAdmin, FamilyID: &otherFamilyID},
		}),
		onboarding: &mockOnboardingService{},
		auth:       &mockAuthService{},
		families:   &mockFamilyService{},
		members:    &mockFamilyMemberService{},
		users:      &mockUserService{},
	}
}

func newTestHandler(svcs *testServices) *Handler {
	return NewHandler(&service.Services{
		TokenService:        svcs.tokens,
		OnboardingService:   svcs.onboarding,
		AuthService:         svcs.auth,
		FamilyService:       svcs.families,
		FamilyMemberService: svcs.members,
		UserService:         svcs.users,
	}, logger.Nop())
}
