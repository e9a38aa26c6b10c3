package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/apnaparivar/familytree-backend/internal/logger"
	"github.com/apnaparivar/familytree-backend/internal/store"
	"github.com/apnaparivar/familytree-backend/internal/utils"
	"github.com/apnaparivar/familytree-backend/models"
)

// userService is the directory service over account rows.
type userService struct {
	users  store.UserRepository
	uuid   *utils.UUIDGenerator
	logger *logger.Logger
}

// NewUserService constructs a UserService over the given repository.
func NewUserService(users store.UserRepository, logger *logger.Logger) UserService {
	return &userService{
		users:  users,
		uuid:   utils.NewUUIDGenerator(),
		logger: logger,
	}
}

// Create inserts an account row directly, without an auth-provider identity
// or a password. Such accounts can only authenticate through the magic-link
// flow or as family members.
func (s *userService) Create(ctx context.Context, request models.CreateUserRequest) (models.User, error) {
	user, err := s.users.Create(ctx, models.User{
		ID:       s.uuid.Generate(),
		Email:    request.Email,
		Role:     request.Role,
		FamilyID: request.FamilyID,
	})
	if err != nil {
		if errors.Is(err, store.ErrUniqueViolation) {
			return models.User{}, ErrUserAlreadyExists
		}
		return models.User{}, fmt.Errorf("user creation failed: %w", err)
	}

	logger.FromContext(ctx).Info().Str("user_id", user.ID).Str("role", string(user.Role)).Msg("user created")
	return user.Public(), nil
}

func (s *userService) Get(ctx context.Context, userID string) (models.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return models.User{}, ErrNotFound
		}
		return models.User{}, fmt.Errorf("user lookup failed: %w", err)
	}

	return user.Public(), nil
}

func (s *userService) ListByFamily(ctx context.Context, familyID string) ([]models.User, error) {
	users, err := s.users.ListByFamily(ctx, familyID)
	if err != nil {
		return nil, fmt.Errorf("user listing failed: %w", err)
	}

	public := make([]models.User, 0, len(users))
	for _, user := range users {
		public = append(public, user.Public())
	}
	return public, nil
}

// Update applies a partial update. Identity, role, scope, and credential
// columns are never updatable through this route: role and family assignment
// happen through the onboarding workflow or the super-admin create route,
// and a self-update must not move the caller into another family.
func (s *userService) Update(ctx context.Context, userID string, fields map[string]any) (models.User, error) {
	delete(fields, "id")
	delete(fields, "password_hash")
	delete(fields, "role")
	delete(fields, "approval_status")
	delete(fields, "family_id")
	delete(fields, "created_at")
	if len(fields) == 0 {
		return s.Get(ctx, userID)
	}

	user, err := s.users.Update(ctx, userID, fields)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return models.User{}, ErrNotFound
		}
		return models.User{}, fmt.Errorf("user update failed: %w", err)
	}

	return user.Public(), nil
}

func (s *userService) Delete(ctx context.Context, userID string) error {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("user lookup failed: %w", err)
	}

	if err := s.users.Delete(ctx, userID); err != nil {
		return fmt.Errorf("user deletion failed: %w", err)
	}

	logger.FromContext(ctx).Info().Str("user_id", userID).Msg("user deleted")
	return nil
}
