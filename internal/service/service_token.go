package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/apnaparivar/familytree-backend/internal/config"
	"github.com/apnaparivar/familytree-backend/internal/logger"
	"github.com/apnaparivar/familytree-backend/models"
)

// tokenService signs and verifies session tokens with HMAC-SHA256.
type tokenService struct {
	signKey  []byte
	issuer   string
	duration time.Duration
	logger   *logger.Logger
}

// NewTokenService constructs a TokenService from the application config.
// The returned service is safe for concurrent use; all state is read-only
// after construction.
func NewTokenService(cfg config.App, logger *logger.Logger) TokenService {
	return &tokenService{
		signKey:  []byte(cfg.TokenSignKey),
		issuer:   cfg.TokenIssuer,
		duration: cfg.TokenDuration,
		logger:   logger,
	}
}

// Issue signs a token for the given identity. The expiry is the configured
// token lifetime from now.
func (t *tokenService) Issue(ctx context.Context, userID, email string, role models.Role, familyID *string) (models.Token, error) {
	now := time.Now()
	claims := models.TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    t.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.duration)),
		},
		UserID:   userID,
		Email:    email,
		Role:     role,
		FamilyID: familyID,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.signKey)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("user_id", userID).Msg("token signing failed")
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return models.Token{Claims: claims, SignedString: signed}, nil
}

// Verify parses tokenString and returns its claims. Expired tokens fail with
// ErrTokenExpired; every other validation failure (bad signature, wrong
// issuer, garbage input) is normalised to ErrTokenInvalid.
func (t *tokenService) Verify(ctx context.Context, tokenString string) (models.TokenClaims, error) {
	var claims models.TokenClaims

	parsed, err := jwt.ParseWithClaims(tokenString, &claims,
		func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
			}
			return t.signKey, nil
		},
		jwt.WithIssuer(t.issuer),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return models.TokenClaims{}, ErrTokenExpired
		}
		return models.TokenClaims{}, ErrTokenInvalid
	}
	if !parsed.Valid {
		return models.TokenClaims{}, ErrTokenInvalid
	}

	return claims, nil
}
