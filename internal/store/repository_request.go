package store

import (
	"context"
	"fmt"

	"github.com/apnaparivar/familytree-backend/internal/logger"
	"github.com/apnaparivar/familytree-backend/models"
)

// requestRepository is the hosted-store implementation of
// [OnboardingRequestRepository], backed by the admin_onboarding_requests
// table.
type requestRepository struct {
	client *RestClient
	logger *logger.Logger
}

// NewOnboardingRequestRepository constructs an [OnboardingRequestRepository]
// backed by the provided REST client.
func NewOnboardingRequestRepository(client *RestClient, logger *logger.Logger) OnboardingRequestRepository {
	logger.Debug().Msg("creating onboarding request repository")
	return &requestRepository{client: client, logger: logger}
}

func (r *requestRepository) table() string {
	return models.OnboardingRequest{}.TableName()
}

// Create inserts the request and returns the stored row with its
// server-assigned id and requested_at timestamp.
func (r *requestRepository) Create(ctx context.Context, request models.OnboardingRequest) (models.OnboardingRequest, error) {
	payload := map[string]any{
		"email":                     request.Email,
		"full_name":                 request.FullName,
		"family_name":               request.FamilyName,
		"family_password_encrypted": request.FamilyPasswordEncrypted,
		"family_password_hash":      request.FamilyPasswordHash,
		"user_id":                   request.UserID,
		"status":                    models.StatusPending,
	}

	var stored []models.OnboardingRequest
	if err := r.client.From(r.table()).Insert(ctx, payload, &stored); err != nil {
		return models.OnboardingRequest{}, err
	}
	if len(stored) == 0 {
		return models.OnboardingRequest{}, fmt.Errorf("insert into %s returned no rows", r.table())
	}

	return stored[0], nil
}

func (r *requestRepository) GetByID(ctx context.Context, requestID string) (models.OnboardingRequest, error) {
	var rows []models.OnboardingRequest
	err := r.client.From(r.table()).Eq("id", requestID).Select(ctx, &rows)
	if err != nil {
		return models.OnboardingRequest{}, err
	}
	if len(rows) == 0 {
		return models.OnboardingRequest{}, ErrNotFound
	}

	return rows[0], nil
}

func (r *requestRepository) FindPendingByEmail(ctx context.Context, email string) (models.OnboardingRequest, error) {
	var rows []models.OnboardingRequest
	err := r.client.From(r.table()).
		Eq("email", email).
		Eq("status", string(models.StatusPending)).
		Select(ctx, &rows)
	if err != nil {
		return models.OnboardingRequest{}, err
	}
	if len(rows) == 0 {
		return models.OnboardingRequest{}, ErrNotFound
	}

	return rows[0], nil
}

func (r *requestRepository) ListPending(ctx context.Context) ([]models.OnboardingRequest, error) {
	var rows []models.OnboardingRequest
	err := r.client.From(r.table()).
		Eq("status", string(models.StatusPending)).
		OrderDesc("requested_at").
		Select(ctx, &rows)
	if err != nil {
		return nil, err
	}

	return rows, nil
}

// Decide performs the conditional status flip. The status=eq.pending filter
// makes the update and the pending check one atomic store operation, so two
// concurrent reviewers cannot both succeed.
func (r *requestRepository) Decide(ctx context.Context, requestID string, decision RequestDecision) (models.OnboardingRequest, error) {
	log := logger.FromContext(ctx)

	values := map[string]any{
		"status":      decision.Status,
		"reviewed_by": decision.ReviewedBy,
		"reviewed_at": decision.ReviewedAt,
	}
	if decision.Status == models.StatusRejected {
		values["rejection_reason"] = decision.RejectionReason
	}

	var updated []models.OnboardingRequest
	err := r.client.From(r.table()).
		Eq("id", requestID).
		Eq("status", string(models.StatusPending)).
		Update(ctx, values, &updated)
	if err != nil {
		return models.OnboardingRequest{}, err
	}
	if len(updated) == 0 {
		log.Warn().Str("request_id", requestID).Msg("decision update matched no pending row")
		return models.OnboardingRequest{}, ErrNoRowsUpdated
	}

	return updated[0], nil
}
