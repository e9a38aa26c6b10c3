package service

import (
	"context"

	"github.com/apnaparivar/familytree-backend/internal/store"
	"github.com/apnaparivar/familytree-backend/models"
)

// ─────────────────────────────────────────────
// Mock: store.OnboardingRequestRepository
// ─────────────────────────────────────────────

type mockRequestRepository struct {
	createFn             func(ctx context.Context, request models.OnboardingRequest) (models.OnboardingRequest, error)
	getByIDFn            func(ctx context.Context, requestID string) (models.OnboardingRequest, error)
	findPendingByEmailFn func(ctx context.Context, email string) (models.OnboardingRequest, error)
	listPendingFn        func(ctx context.Context) ([]models.OnboardingRequest, error)
	decideFn             func(ctx context.Context, requestID string, decision store.RequestDecision) (models.OnboardingRequest, error)
}

func (m *mockRequestRepository) Create(ctx context.Context, request models.OnboardingRequest) (models.OnboardingRequest, error) {
	if m.createFn != nil {
		return m.createFn(ctx, request)
	}
	return request, nil
}

func (m *mockRequestRepository) GetByID(ctx context.Context, requestID string) (models.OnboardingRequest, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, requestID)
	}
	return models.OnboardingRequest{}, store.ErrNotFound
}

func (m *mockRequestRepository) FindPendingByEmail(ctx context.Context, email string) (models.OnboardingRequest, error) {
	if m.findPendingByEmailFn != nil {
		return m.findPendingByEmailFn(ctx, email)
	}
	return models.OnboardingRequest{}, store.ErrNotFound
}

func (m *mockRequestRepository) ListPending(ctx context.Context) ([]models.OnboardingRequest, error) {
	if m.listPendingFn != nil {
		return m.listPendingFn(ctx)
	}
	return nil, nil
}

func (m *mockRequestRepository) Decide(ctx context.Context, requestID string, decision store.RequestDecision) (models.OnboardingRequest, error) {
	if m.decideFn != nil {
		return m.decideFn(ctx, requestID, decision)
	}
	return models.OnboardingRequest{}, nil
}

// ─────────────────────────────────────────────
// Mock: store.UserRepository
// ─────────────────────────────────────────────

type mockUserRepository struct {
	createFn             func(ctx context.Context, user models.User) (models.User, error)
	getByIDFn            func(ctx context.Context, userID string) (models.User, error)
	findByEmailAndRoleFn func(ctx context.Context, email string, role models.Role) (models.User, error)
	listByFamilyFn       func(ctx context.Context, familyID string) ([]models.User, error)
	updateFn             func(ctx context.Context, userID string, fields map[string]any) (models.User, error)
	deleteFn             func(ctx context.Context, userID string) error
}

func (m *mockUserRepository) Create(ctx context.Context, user models.User) (models.User, error) {
	if m.createFn != nil {
		return m.createFn(ctx, user)
	}
	return user, nil
}

func (m *mockUserRepository) GetByID(ctx context.Context, userID string) (models.User, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, userID)
	}
	return models.User{}, store.ErrNotFound
}

func (m *mockUserRepository) FindByEmailAndRole(ctx context.Context, email string, role models.Role) (models.User, error) {
	if m.findByEmailAndRoleFn != nil {
		return m.findByEmailAndRoleFn(ctx, email, role)
	}
	return models.User{}, store.ErrNotFound
}

func (m *mockUserRepository) ListByFamily(ctx context.Context, familyID string) ([]models.User, error) {
	if m.listByFamilyFn != nil {
		return m.listByFamilyFn(ctx, familyID)
	}
	return nil, nil
}

func (m *mockUserRepository) Update(ctx context.Context, userID string, fields map[string]any) (models.User, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, userID, fields)
	}
	return models.User{}, nil
}

func (m *mockUserRepository) Delete(ctx context.Context, userID string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, userID)
	}
	return nil
}

// ─────────────────────────────────────────────
// Mock: store.FamilyRepository
// ─────────────────────────────────────────────

type mockFamilyRepository struct {
	createFn     func(ctx context.Context, family models.Family) (models.Family, error)
	getByIDFn    func(ctx context.Context, familyID string) (models.Family, error)
	findByNameFn func(ctx context.Context, familyName string) (models.Family, error)
	listFn       func(ctx context.Context) ([]models.Family, error)
	updateFn     func(ctx context.Context, familyID string, fields map[string]any) (models.Family, error)
	deleteFn     func(ctx context.Context, familyID string) error
}

func (m *mockFamilyRepository) Create(ctx context.Context, family models.Family) (models.Family, error) {
	if m.createFn != nil {
		return m.createFn(ctx, family)
	}
	return family, nil
}

func (m *mockFamilyRepository) GetByID(ctx context.Context, familyID string) (models.Family, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, familyID)
	}
	return models.Family{}, store.ErrNotFound
}

func (m *mockFamilyRepository) FindByName(ctx context.Context, familyName string) (models.Family, error) {
	if m.findByNameFn != nil {
		return m.findByNameFn(ctx, familyName)
	}
	return models.Family{}, store.ErrNotFound
}

func (m *mockFamilyRepository) List(ctx context.Context) ([]models.Family, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return nil, nil
}

func (m *mockFamilyRepository) Update(ctx context.Context, familyID string, fields map[string]any) (models.Family, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, familyID, fields)
	}
	return models.Family{}, nil
}

func (m *mockFamilyRepository) Delete(ctx context.Context, familyID string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, familyID)
	}
	return nil
}

// ─────────────────────────────────────────────
// Mock: store.FamilyMemberRepository
// ─────────────────────────────────────────────

type mockMemberRepository struct {
	createFn       func(ctx context.Context, member models.FamilyMember) (models.FamilyMember, error)
	createBatchFn  func(ctx context.Context, members []models.FamilyMember) ([]models.FamilyMember, error)
	getByIDFn      func(ctx context.Context, memberID string) (models.FamilyMember, error)
	listByFamilyFn func(ctx context.Context, familyID string) ([]models.FamilyMember, error)
	searchByNameFn func(ctx context.Context, familyID, query string) ([]models.FamilyMember, error)
	updateFn       func(ctx context.Context, memberID string, fields map[string]any) (models.FamilyMember, error)
	deleteFn       func(ctx context.Context, memberID string) error
}

func (m *mockMemberRepository) Create(ctx context.Context, member models.FamilyMember) (models.FamilyMember, error) {
	if m.createFn != nil {
		return m.createFn(ctx, member)
	}
	return member, nil
}

func (m *mockMemberRepository) CreateBatch(ctx context.Context, members []models.FamilyMember) ([]models.FamilyMember, error) {
	if m.createBatchFn != nil {
		return m.createBatchFn(ctx, members)
	}
	return members, nil
}

func (m *mockMemberRepository) GetByID(ctx context.Context, memberID string) (models.FamilyMember, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, memberID)
	}
	return models.FamilyMember{}, store.ErrNotFound
}

func (m *mockMemberRepository) ListByFamily(ctx context.Context, familyID string) ([]models.FamilyMember, error) {
	if m.listByFamilyFn != nil {
		return m.listByFamilyFn(ctx, familyID)
	}
	return nil, nil
}

func (m *mockMemberRepository) SearchByName(ctx context.Context, familyID, query string) ([]models.FamilyMember, error) {
	if m.searchByNameFn != nil {
		return m.searchByNameFn(ctx, familyID, query)
	}
	return nil, nil
}

func (m *mockMemberRepository) Update(ctx context.Context, memberID string, fields map[string]any) (models.FamilyMember, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, memberID, fields)
	}
	return models.FamilyMember{}, nil
}

func (m *mockMemberRepository) Delete(ctx context.Context, memberID string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, memberID)
	}
	return nil
}

// ─────────────────────────────────────────────
// Mock: store.AuthClient
// ─────────────────────────────────────────────

type mockAuthClient struct {
	createUserFn     func(ctx context.Context, email, password string) (store.AuthUser, error)
	listUsersFn      func(ctx context.Context) ([]store.AuthUser, error)
	sendOTPFn        func(ctx context.Context, email, redirectTo string) error
	verifyOTPFn      func(ctx context.Context, email, token string) (store.Session, error)
	refreshSessionFn func(ctx context.Context, refreshToken string) (store.Session, error)
	getUserFn        func(ctx context.Context, accessToken string) (store.AuthUser, error)
	signOutFn        func(ctx context.Context, accessToken string) error
}

func (m *mockAuthClient) CreateUser(ctx context.Context, email, password string) (store.AuthUser, error) {
	if m.createUserFn != nil {
		return m.createUserFn(ctx, email, password)
	}
	return store.AuthUser{ID: "auth-user-id", Email: email}, nil
}

func (m *mockAuthClient) ListUsers(ctx context.Context) ([]store.AuthUser, error) {
	if m.listUsersFn != nil {
		return m.listUsersFn(ctx)
	}
	return nil, nil
}

func (m *mockAuthClient) SendOTP(ctx context.Context, email, redirectTo string) error {
	if m.sendOTPFn != nil {
		return m.sendOTPFn(ctx, email, redirectTo)
	}
	return nil
}

func (m *mockAuthClient) VerifyOTP(ctx context.Context, email, token string) (store.Session, error) {
	if m.verifyOTPFn != nil {
		return m.verifyOTPFn(ctx, email, token)
	}
	return store.Session{}, store.ErrInvalidOTP
}

func (m *mockAuthClient) RefreshSession(ctx context.Context, refreshToken string) (store.Session, error) {
	if m.refreshSessionFn != nil {
		return m.refreshSessionFn(ctx, refreshToken)
	}
	return store.Session{}, store.ErrInvalidSession
}

func (m *mockAuthClient) GetUser(ctx context.Context, accessToken string) (store.AuthUser, error) {
	if m.getUserFn != nil {
		return m.getUserFn(ctx, accessToken)
	}
	return store.AuthUser{}, store.ErrInvalidSession
}

func (m *mockAuthClient) SignOut(ctx context.Context, accessToken string) error {
	if m.signOutFn != nil {
		return m.signOutFn(ctx, accessToken)
	}
	return nil
}

// ─────────────────────────────────────────────
// Mock: Mailer
// ─────────────────────────────────────────────

type mockMailer struct {
	approvalFn  func(ctx context.Context, to, familyName string) error
	rejectionFn func(ctx context.Context, to, familyName, reason string) error
}

func (m *mockMailer) SendApprovalNotice(ctx context.Context, to, familyName string) error {
	if m.approvalFn != nil {
		return m.approvalFn(ctx, to, familyName)
	}
	return nil
}

func (m *mockMailer) SendRejectionNotice(ctx context.Context, to, familyName, reason string) error {
	if m.rejectionFn != nil {
		return m.rejectionFn(ctx, to, familyName, reason)
	}
	return nil
}
