package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apnaparivar/familytree-backend/internal/config"
	"github.com/apnaparivar/familytree-backend/internal/logger"
	"github.com/apnaparivar/familytree-backend/models"
)

func newTestTokenService(duration time.Duration) TokenService {
	return NewTokenService(config.App{
		TokenSignKey:  "test-sign-key",
		TokenIssuer:   "familytree-backend",
		TokenDuration: duration,
	}, logger.Nop())
}

func TestTokenServiceIssueAndVerify(t *testing.T) {
	svc := newTestTokenService(time.Hour)
	ctx := context.Background()

	familyID := "family-1"
	token, err := svc.Issue(ctx, "user-1", "admin@family.com", models.RoleFamilyAdmin, &familyID)
	require.NoError(t, err)
	require.NotEmpty(t, token.SignedString)

	claims, err := svc.Verify(ctx, token.SignedString)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "admin@family.com", claims.Email)
	assert.Equal(t, models.RoleFamilyAdmin, claims.Role)
	require.NotNil(t, claims.FamilyID)
	assert.Equal(t, "family-1", *claims.FamilyID)
}

func TestTokenServiceSuperAdminHasNoFamily(t *testing.T) {
	svc := newTestTokenService(time.Hour)

	token, err := svc.Issue(context.Background(), models.SuperAdminUserID, "admin@apnaparivar.com", models.RoleSuperAdmin, nil)
	require.NoError(t, err)

	claims, err := svc.Verify(context.Background(), token.SignedString)
	require.NoError(t, err)
	assert.Nil(t, claims.FamilyID)
	assert.Equal(t, models.RoleSuperAdmin, claims.Role)
}

func TestTokenServiceVerifyExpired(t *testing.T) {
	svc := newTestTokenService(-time.Minute)

	token, err := svc.Issue(context.Background(), "user-1", "a@b.c", models.RoleFamilyUser, nil)
	require.NoError(t, err)

	_, err = svc.Verify(context.Background(), token.SignedString)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestTokenServiceVerifyTampered(t *testing.T) {
	svc := newTestTokenService(time.Hour)

	token, err := svc.Issue(context.Background(), "user-1", "a@b.c", models.RoleFamilyUser, nil)
	require.NoError(t, err)

	tampered := token.SignedString[:len(token.SignedString)-2] + "xx"
	_, err = svc.Verify(context.Background(), tampered)
	assert.ErrorIs(t, err, ErrTokenInvalid)

	_, err = svc.Verify(context.Background(), "not-a-token")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestTokenServiceVerifyWrongKey(t *testing.T) {
	issued, err := newTestTokenService(time.Hour).Issue(context.Background(), "user-1", "a@b.c", models.RoleFamilyUser, nil)
	require.NoError(t, err)

	other := NewTokenService(config.App{
		TokenSignKey:  "different-key",
		TokenIssuer:   "familytree-backend",
		TokenDuration: time.Hour,
	}, logger.Nop())

	_, err = other.Verify(context.Background(), issued.SignedString)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}
