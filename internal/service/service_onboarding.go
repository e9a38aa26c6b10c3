package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/apnaparivar/familytree-backend/internal/crypto"
	"github.com/apnaparivar/familytree-backend/internal/logger"
	"github.com/apnaparivar/familytree-backend/internal/store"
	"github.com/apnaparivar/familytree-backend/internal/utils"
	"github.com/apnaparivar/familytree-backend/models"
)

// minFamilyPasswordLen is the weakest shared family password accepted at
// registration time.
const minFamilyPasswordLen = 4

// onboardingService implements the family-admin signup state machine over
// the hosted store and auth provider.
type onboardingService struct {
	requests    store.OnboardingRequestRepository
	users       store.UserRepository
	families    store.FamilyRepository
	auth        store.AuthClient
	credentials crypto.CredentialService
	mailer      Mailer
	uuid        *utils.UUIDGenerator
	logger      *logger.Logger
}

// NewOnboardingService constructs an OnboardingService over the given
// repositories and boundary clients.
func NewOnboardingService(
	storages *store.Storages,
	credentials crypto.CredentialService,
	mailer Mailer,
	logger *logger.Logger,
) OnboardingService {
	return &onboardingService{
		requests:    storages.OnboardingRequests,
		users:       storages.Users,
		families:    storages.Families,
		auth:        storages.Auth,
		credentials: credentials,
		mailer:      mailer,
		uuid:        utils.NewUUIDGenerator(),
		logger:      logger,
	}
}

// CreateRequest registers a prospective family admin and leaves the request
// pending for super-administrator review.
//
// Preconditions are checked in a fixed order, each with its own failure:
// unique family name, no pending request for the email, family password of
// at least minFamilyPasswordLen characters. The check-then-insert on
// family_name is not atomic, so a uniqueness violation reported later by the
// store is treated the same way as the pre-check failure.
func (s *onboardingService) CreateRequest(ctx context.Context, request models.AdminRegisterRequest) (models.RegisterResponse, error) {
	log := logger.FromContext(ctx)

	if _, err := s.families.FindByName(ctx, request.FamilyName); err == nil {
		return models.RegisterResponse{}, ErrDuplicateFamilyName
	} else if !errors.Is(err, store.ErrNotFound) {
		return models.RegisterResponse{}, fmt.Errorf("family name lookup failed: %w", err)
	}

	if _, err := s.requests.FindPendingByEmail(ctx, request.Email); err == nil {
		return models.RegisterResponse{}, ErrDuplicateRequest
	} else if !errors.Is(err, store.ErrNotFound) {
		return models.RegisterResponse{}, fmt.Errorf("pending request lookup failed: %w", err)
	}

	if len(request.FamilyPassword) < minFamilyPasswordLen {
		return models.RegisterResponse{}, ErrWeakFamilyPassword
	}

	// The family password is stored in both forms the workflow needs later:
	// encrypted under the admin's login password so only the admin can
	// recover the plaintext, and hashed so member logins can be verified
	// without recovering it.
	encryptedFamilyPassword, err := s.credentials.Encrypt(request.FamilyPassword, request.Password)
	if err != nil {
		return models.RegisterResponse{}, fmt.Errorf("family password encryption failed: %w", err)
	}
	familyPasswordHash, err := s.credentials.HashPassword(request.FamilyPassword)
	if err != nil {
		return models.RegisterResponse{}, fmt.Errorf("family password hashing failed: %w", err)
	}
	adminPasswordHash, err := s.credentials.HashPassword(request.Password)
	if err != nil {
		return models.RegisterResponse{}, fmt.Errorf("admin password hashing failed: %w", err)
	}

	userID, err := s.resolveAuthIdentity(ctx, request.Email, request.Password)
	if err != nil {
		return models.RegisterResponse{}, err
	}

	if _, err = s.users.GetByID(ctx, userID); err == nil {
		log.Warn().Str("user_id", userID).Str("email", request.Email).Msg("registration replay for existing account")
		return models.RegisterResponse{}, ErrUserAlreadyExists
	} else if !errors.Is(err, store.ErrNotFound) {
		return models.RegisterResponse{}, fmt.Errorf("user lookup failed: %w", err)
	}

	if _, err = s.users.Create(ctx, models.User{
		ID:             userID,
		Email:          request.Email,
		FullName:       request.FullName,
		Role:           models.RoleFamilyAdmin,
		ApprovalStatus: models.StatusPending,
		PasswordHash:   adminPasswordHash,
	}); err != nil {
		// Two racing registrations can resolve the same auth identity;
		// the loser hits the unique key here.
		if errors.Is(err, store.ErrUniqueViolation) {
			return models.RegisterResponse{}, ErrUserAlreadyExists
		}
		log.Err(err).Str("user_id", userID).Msg("user row creation failed after auth identity was provisioned")
		return models.RegisterResponse{}, fmt.Errorf("user creation failed: %w", err)
	}

	created, err := s.requests.Create(ctx, models.OnboardingRequest{
		Email:                   request.Email,
		FullName:                request.FullName,
		FamilyName:              request.FamilyName,
		FamilyPasswordEncrypted: encryptedFamilyPassword,
		FamilyPasswordHash:      familyPasswordHash,
		UserID:                  userID,
	})
	if err != nil {
		if errors.Is(err, store.ErrUniqueViolation) {
			return models.RegisterResponse{}, ErrDuplicateRequest
		}
		log.Err(err).Str("user_id", userID).Msg("request row creation failed after user row was written")
		return models.RegisterResponse{}, fmt.Errorf("onboarding request creation failed: %w", err)
	}

	log.Info().Str("request_id", created.ID).Str("family_name", created.FamilyName).Msg("onboarding request created")

	return models.RegisterResponse{
		RequestID: created.ID,
		Status:    models.StatusPending,
		Message:   "Admin onboarding request created. Awaiting SuperAdmin approval.",
	}, nil
}

// resolveAuthIdentity provisions an auth-provider identity for the email, or
// resolves the existing one when the provider reports the email as taken.
// The provider has no lookup-by-email primitive, so resolution lists all
// identities and matches on email.
func (s *onboardingService) resolveAuthIdentity(ctx context.Context, email, password string) (string, error) {
	log := logger.FromContext(ctx)

	created, err := s.auth.CreateUser(ctx, email, password)
	if err == nil {
		return created.ID, nil
	}
	if !errors.Is(err, store.ErrEmailAlreadyRegistered) {
		return "", fmt.Errorf("auth identity creation failed: %w", err)
	}

	log.Debug().Str("email", email).Msg("email already registered, resolving existing auth identity")

	users, err := s.auth.ListUsers(ctx)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrAuthLookupFailed, err)
	}
	for _, user := range users {
		if user.Email == email {
			return user.ID, nil
		}
	}

	return "", ErrAuthLookupFailed
}

// ApproveRequest performs the approval transition: create the family,
// activate the admin account, then flip the request row. The request flip is
// a conditional update on status=pending, so of two concurrent approvals
// only one observes success; the loser fails with ErrNotPending. A failure
// after earlier writes succeeded is surfaced, never reported as success.
func (s *onboardingService) ApproveRequest(ctx context.Context, requestID, adminPassword, reviewerID string) (models.DecisionResponse, error) {
	log := logger.FromContext(ctx)

	request, err := s.getPendingRequest(ctx, requestID)
	if err != nil {
		return models.DecisionResponse{}, err
	}

	user, err := s.users.GetByID(ctx, request.UserID)
	if err != nil {
		return models.DecisionResponse{}, fmt.Errorf("linked user %s lookup failed: %w", request.UserID, err)
	}
	if user.ApprovalStatus != models.StatusPending {
		return models.DecisionResponse{}, fmt.Errorf("%w: linked user is already %s", ErrNotPending, user.ApprovalStatus)
	}

	// Re-hash the supplied admin password so the stored hash stays valid
	// even if the password changed between registration and approval.
	adminPasswordHash, err := s.credentials.HashPassword(adminPassword)
	if err != nil {
		return models.DecisionResponse{}, fmt.Errorf("admin password hashing failed: %w", err)
	}

	familyID := s.uuid.Generate()
	family, err := s.families.Create(ctx, models.Family{
		ID:                      familyID,
		FamilyName:              request.FamilyName,
		AdminUserID:             request.UserID,
		FamilyPasswordEncrypted: request.FamilyPasswordEncrypted,
		FamilyPasswordHash:      request.FamilyPasswordHash,
	})
	if err != nil {
		if errors.Is(err, store.ErrUniqueViolation) {
			return models.DecisionResponse{}, ErrDuplicateFamilyName
		}
		return models.DecisionResponse{}, fmt.Errorf("family creation failed: %w", err)
	}

	if _, err = s.users.Update(ctx, request.UserID, map[string]any{
		"family_id":       family.ID,
		"role":            models.RoleFamilyAdmin,
		"approval_status": models.StatusApproved,
		"password_hash":   adminPasswordHash,
	}); err != nil {
		log.Err(err).Str("request_id", requestID).Msg("user activation failed after family was created")
		return models.DecisionResponse{}, fmt.Errorf("user activation failed: %w", err)
	}

	if _, err = s.requests.Decide(ctx, requestID, store.RequestDecision{
		Status:     models.StatusApproved,
		ReviewedBy: reviewerRef(reviewerID),
		ReviewedAt: time.Now().UTC(),
	}); err != nil {
		if errors.Is(err, store.ErrNoRowsUpdated) {
			return models.DecisionResponse{}, ErrNotPending
		}
		log.Err(err).Str("request_id", requestID).Msg("request status update failed after family and user were written")
		return models.DecisionResponse{}, fmt.Errorf("request status update failed: %w", err)
	}

	s.notify(ctx, func() error {
		return s.mailer.SendApprovalNotice(ctx, request.Email, request.FamilyName)
	})

	log.Info().Str("request_id", requestID).Str("family_id", family.ID).Msg("onboarding request approved")

	return models.DecisionResponse{
		Message:    "Admin request approved successfully",
		Status:     models.StatusApproved,
		UserID:     request.UserID,
		FamilyID:   family.ID,
		Email:      request.Email,
		FamilyName: request.FamilyName,
	}, nil
}

// RejectRequest flips a pending request to rejected. Only the request row is
// mutated; the linked user and the (nonexistent) family are untouched.
func (s *onboardingService) RejectRequest(ctx context.Context, requestID, reason, reviewerID string) (models.DecisionResponse, error) {
	log := logger.FromContext(ctx)

	request, err := s.getPendingRequest(ctx, requestID)
	if err != nil {
		return models.DecisionResponse{}, err
	}

	if _, err = s.requests.Decide(ctx, requestID, store.RequestDecision{
		Status:          models.StatusRejected,
		ReviewedBy:      reviewerRef(reviewerID),
		ReviewedAt:      time.Now().UTC(),
		RejectionReason: reason,
	}); err != nil {
		if errors.Is(err, store.ErrNoRowsUpdated) {
			return models.DecisionResponse{}, ErrNotPending
		}
		return models.DecisionResponse{}, fmt.Errorf("request status update failed: %w", err)
	}

	s.notify(ctx, func() error {
		return s.mailer.SendRejectionNotice(ctx, request.Email, request.FamilyName, reason)
	})

	log.Info().Str("request_id", requestID).Msg("onboarding request rejected")

	return models.DecisionResponse{
		Message:         "Admin request rejected",
		Status:          models.StatusRejected,
		RejectionReason: reason,
	}, nil
}

// GetStatus returns a read-only projection of one request, without either
// stored password field.
func (s *onboardingService) GetStatus(ctx context.Context, requestID string) (models.RequestStatusResponse, error) {
	request, err := s.requests.GetByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return models.RequestStatusResponse{}, ErrNotFound
		}
		return models.RequestStatusResponse{}, fmt.Errorf("request lookup failed: %w", err)
	}

	return models.RequestStatusResponse{
		RequestID:       request.ID,
		Status:          request.Status,
		Email:           request.Email,
		FamilyName:      request.FamilyName,
		RequestedAt:     request.RequestedAt,
		ReviewedAt:      request.ReviewedAt,
		RejectionReason: request.RejectionReason,
	}, nil
}

// ListPending returns every pending request, newest first, with credential
// material stripped from each entry.
func (s *onboardingService) ListPending(ctx context.Context) (models.PendingRequestsResponse, error) {
	pending, err := s.requests.ListPending(ctx)
	if err != nil {
		return models.PendingRequestsResponse{}, fmt.Errorf("pending request listing failed: %w", err)
	}

	requests := make([]models.OnboardingRequest, 0, len(pending))
	for _, request := range pending {
		requests = append(requests, request.Public())
	}

	return models.PendingRequestsResponse{
		Total:    len(requests),
		Requests: requests,
	}, nil
}

// getPendingRequest loads a request and verifies it is still pending.
func (s *onboardingService) getPendingRequest(ctx context.Context, requestID string) (models.OnboardingRequest, error) {
	request, err := s.requests.GetByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return models.OnboardingRequest{}, ErrNotFound
		}
		return models.OnboardingRequest{}, fmt.Errorf("request lookup failed: %w", err)
	}
	if request.Status != models.StatusPending {
		return models.OnboardingRequest{}, fmt.Errorf("%w: status is %s", ErrNotPending, request.Status)
	}

	return request, nil
}

// notify runs a best-effort email send. A failure is logged and otherwise
// ignored; notifications never fail the workflow.
func (s *onboardingService) notify(ctx context.Context, send func() error) {
	if s.mailer == nil {
		return
	}
	if err := send(); err != nil {
		logger.FromContext(ctx).Warn().Err(err).Msg("notification email failed")
	}
}

// reviewerRef converts a reviewer id into the nullable reference stored on
// the request row. The hardcoded super-administrator has no users row, so it
// is recorded as null to keep the foreign key satisfiable.
func reviewerRef(reviewerID string) *string {
	if reviewerID == "" || reviewerID == models.SuperAdminUserID {
		return nil
	}
	return &reviewerID
}
