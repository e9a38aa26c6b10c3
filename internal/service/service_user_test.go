package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apnaparivar/familytree-backend/internal/logger"
	"github.com/apnaparivar/familytree-backend/internal/store"
	"github.com/apnaparivar/familytree-backend/models"
)

func newTestUserService(t *testing.T) (UserService, *mockUserRepository) {
	t.Helper()

	users := &mockUserRepository{}
	return NewUserService(users, logger.Nop()), users
}

func TestUserCreateDuplicateEmail(t *testing.T) {
	svc, users := newTestUserService(t)

	users.createFn = func(ctx context.Context, user models.User) (models.User, error) {
		return models.User{}, store.ErrUniqueViolation
	}

	_, err := svc.Create(context.Background(), models.CreateUserRequest{
		Email: "admin@family.com",
		Role:  models.RoleFamilyUser,
	})
	assert.ErrorIs(t, err, ErrUserAlreadyExists)
}

func TestUserUpdateStripsProtectedColumns(t *testing.T) {
	svc, users := newTestUserService(t)

	var gotFields map[string]any
	users.updateFn = func(ctx context.Context, userID string, fields map[string]any) (models.User, error) {
		gotFields = fields
		return models.User{ID: userID, FullName: "New Name", PasswordHash: "stored-hash"}, nil
	}

	user, err := svc.Update(context.Background(), "user-1", map[string]any{
		"full_name":       "New Name",
		"id":              "other-id",
		"role":            "super_admin",
		"approval_status": "approved",
		"family_id":       "someone-elses-family",
		"password_hash":   "forged-hash",
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"full_name": "New Name"}, gotFields)
	assert.Empty(t, user.PasswordHash)
}

func TestUserUpdateOnlyProtectedColumnsReadsBack(t *testing.T) {
	svc, users := newTestUserService(t)

	users.updateFn = func(ctx context.Context, userID string, fields map[string]any) (models.User, error) {
		t.Fatal("update must not reach the store")
		return models.User{}, nil
	}
	users.getByIDFn = func(ctx context.Context, userID string) (models.User, error) {
		return models.User{ID: userID, Email: "admin@family.com", Role: models.RoleFamilyAdmin}, nil
	}

	user, err := svc.Update(context.Background(), "user-1", map[string]any{
		"role":      "super_admin",
		"family_id": "someone-elses-family",
	})
	require.NoError(t, err)
	assert.Equal(t, "user-1", user.ID)
	assert.Equal(t, models.RoleFamilyAdmin, user.Role)
}

func TestUserUpdateNotFound(t *testing.T) {
	svc, users := newTestUserService(t)

	users.updateFn = func(ctx context.Context, userID string, fields map[string]any) (models.User, error) {
		return models.User{}, store.ErrNotFound
	}

	_, err := svc.Update(context.Background(), "user-404", map[string]any{"full_name": "X"})
	assert.ErrorIs(t, err, ErrNotFound)
}
