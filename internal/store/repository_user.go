package store

import (
	"context"
	"fmt"

	"github.com/apnaparivar/familytree-backend/internal/logger"
	"github.com/apnaparivar/familytree-backend/models"
)

// userRepository is the hosted-store implementation of [UserRepository],
// backed by the users table. User ids come from the hosted auth provider,
// so Create sends the id explicitly instead of letting the store assign one.
type userRepository struct {
	client *RestClient
	logger *logger.Logger
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// REST client.
func NewUserRepository(client *RestClient, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{client: client, logger: logger}
}

func (r *userRepository) table() string {
	return models.User{}.TableName()
}

func (r *userRepository) Create(ctx context.Context, user models.User) (models.User, error) {
	payload := map[string]any{
		"id":        user.ID,
		"email":     user.Email,
		"full_name": user.FullName,
		"role":      user.Role,
		"family_id": user.FamilyID,
	}
	if user.ApprovalStatus != "" {
		payload["approval_status"] = user.ApprovalStatus
	}
	if user.PasswordHash != "" {
		payload["password_hash"] = user.PasswordHash
	}

	var stored []models.User
	if err := r.client.From(r.table()).Insert(ctx, payload, &stored); err != nil {
		return models.User{}, err
	}
	if len(stored) == 0 {
		return models.User{}, fmt.Errorf("insert into %s returned no rows", r.table())
	}

	return stored[0], nil
}

func (r *userRepository) GetByID(ctx context.Context, userID string) (models.User, error) {
	var rows []models.User
	if err := r.client.From(r.table()).Eq("id", userID).Select(ctx, &rows); err != nil {
		return models.User{}, err
	}
	if len(rows) == 0 {
		return models.User{}, ErrNotFound
	}

	return rows[0], nil
}

func (r *userRepository) FindByEmailAndRole(ctx context.Context, email string, role models.Role) (models.User, error) {
	var rows []models.User
	err := r.client.From(r.table()).
		Eq("email", email).
		Eq("role", string(role)).
		Select(ctx, &rows)
	if err != nil {
		return models.User{}, err
	}
	if len(rows) == 0 {
		return models.User{}, ErrNotFound
	}

	return rows[0], nil
}

func (r *userRepository) ListByFamily(ctx context.Context, familyID string) ([]models.User, error) {
	var rows []models.User
	if err := r.client.From(r.table()).Eq("family_id", familyID).Select(ctx, &rows); err != nil {
		return nil, err
	}

	return rows, nil
}

func (r *userRepository) Update(ctx context.Context, userID string, fields map[string]any) (models.User, error) {
	var updated []models.User
	err := r.client.From(r.table()).Eq("id", userID).Update(ctx, fields, &updated)
	if err != nil {
		return models.User{}, err
	}
	if len(updated) == 0 {
		return models.User{}, ErrNotFound
	}

	return updated[0], nil
}

func (r *userRepository) Delete(ctx context.Context, userID string) error {
	log := logger.FromContext(ctx)
	log.Debug().Str("user_id", userID).Msg("deleting user")

	return r.client.From(r.table()).Eq("id", userID).Delete(ctx)
}
