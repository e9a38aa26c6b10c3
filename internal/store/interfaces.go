package store

import (
	"context"
	"time"

	"github.com/apnaparivar/familytree-backend/models"
)

// OnboardingRequestRepository persists family-admin signup requests.
type OnboardingRequestRepository interface {
	Create(ctx context.Context, request models.OnboardingRequest) (models.OnboardingRequest, error)
	GetByID(ctx context.Context, requestID string) (models.OnboardingRequest, error)

	// FindPendingByEmail returns the pending request for email, or
	// ErrNotFound when there is none.
	FindPendingByEmail(ctx context.Context, email string) (models.OnboardingRequest, error)

	// ListPending returns all pending requests, newest requested_at first.
	ListPending(ctx context.Context) ([]models.OnboardingRequest, error)

	// Decide flips the request identified by requestID from pending into
	// the given terminal status as a single conditional update: the write
	// applies only to a row whose status is still pending. Returns
	// ErrNoRowsUpdated when the request was already decided, which is how
	// a losing concurrent reviewer observes the race.
	Decide(ctx context.Context, requestID string, decision RequestDecision) (models.OnboardingRequest, error)
}

// RequestDecision carries the terminal state written by
// [OnboardingRequestRepository.Decide].
type RequestDecision struct {
	Status          models.ApprovalStatus
	ReviewedBy      *string
	ReviewedAt      time.Time
	RejectionReason string
}

// UserRepository persists account rows.
type UserRepository interface {
	Create(ctx context.Context, user models.User) (models.User, error)
	GetByID(ctx context.Context, userID string) (models.User, error)
	FindByEmailAndRole(ctx context.Context, email string, role models.Role) (models.User, error)
	ListByFamily(ctx context.Context, familyID string) ([]models.User, error)
	Update(ctx context.Context, userID string, fields map[string]any) (models.User, error)
	Delete(ctx context.Context, userID string) error
}

// FamilyRepository persists family (tenant) rows.
type FamilyRepository interface {
	Create(ctx context.Context, family models.Family) (models.Family, error)
	GetByID(ctx context.Context, familyID string) (models.Family, error)
	FindByName(ctx context.Context, familyName string) (models.Family, error)
	List(ctx context.Context) ([]models.Family, error)
	Update(ctx context.Context, familyID string, fields map[string]any) (models.Family, error)
	Delete(ctx context.Context, familyID string) error
}

// FamilyMemberRepository persists the people recorded in family trees.
type FamilyMemberRepository interface {
	Create(ctx context.Context, member models.FamilyMember) (models.FamilyMember, error)

	// CreateBatch inserts all members in a single call. The hosted store
	// applies the batch atomically: either every row is stored or none.
	CreateBatch(ctx context.Context, members []models.FamilyMember) ([]models.FamilyMember, error)

	GetByID(ctx context.Context, memberID string) (models.FamilyMember, error)
	ListByFamily(ctx context.Context, familyID string) ([]models.FamilyMember, error)
	SearchByName(ctx context.Context, familyID, query string) ([]models.FamilyMember, error)
	Update(ctx context.Context, memberID string, fields map[string]any) (models.FamilyMember, error)
	Delete(ctx context.Context, memberID string) error
}
