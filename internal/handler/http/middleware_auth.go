// Package http implements the HTTP transport layer of the family-tree
// backend. It provides middleware, route handlers, and response utilities
// for the REST API. Authentication, role gating, tracing, and logging
// concerns are all handled at this layer before requests are forwarded to
// the service layer.
package http

import (
	"net/http"

	"github.com/apnaparivar/familytree-backend/internal/logger"
	"github.com/apnaparivar/familytree-backend/internal/utils"
	"github.com/apnaparivar/familytree-backend/models"
)

// auth is an HTTP middleware that enforces bearer-token authentication.
//
// It extracts the token from the "Authorization" header, verifies it via
// [service.TokenService.Verify], and on success stores the verified claims
// in the request context via [utils.WithClaims] so downstream handlers and
// role gates can read them without re-parsing the token.
//
// Requests are rejected with 401 when the header is missing or malformed,
// or when the token is expired or invalid.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			log.Warn().Err(ErrEmptyAuthorizationHeader).Send()
			utils.WriteError(w, ErrEmptyAuthorizationHeader.Error(), http.StatusUnauthorized)
			return
		}

		tokenString, err := utils.ParseBearerToken(authHeader)
		if err != nil {
			log.Warn().Err(err).Send()
			utils.WriteError(w, err.Error(), http.StatusUnauthorized)
			return
		}

		ctx := r.Context()
		claims, err := h.services.TokenService.Verify(ctx, tokenString)
		if err != nil {
			log.Warn().Err(err).Msg("token verification failed")
			writeServiceError(w, r, err)
			return
		}

		next.ServeHTTP(w, r.WithContext(utils.WithClaims(ctx, claims)))
	})
}

// requireRole gates a route to the given roles. It must run after auth.
func (h *Handler) requireRole(roles ...models.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := utils.GetClaimsFromContext(r.Context())
			if !ok {
				utils.WriteError(w, ErrEmptyAuthorizationHeader.Error(), http.StatusUnauthorized)
				return
			}

			for _, role := range roles {
				if claims.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}

			logger.FromRequest(r).Warn().
				Str("user_id", claims.UserID).
				Str("role", string(claims.Role)).
				Msg("route denied by role gate")
			utils.WriteError(w, ErrForbidden.Error(), http.StatusForbidden)
		})
	}
}

// familyScope verifies that the caller may touch the given family. The
// super-administrator is excluded from family-detail routes; family roles
// are confined to their own family.
func familyScope(claims models.TokenClaims, familyID string) error {
	if !claims.Role.FamilyScoped() {
		return ErrForbidden
	}
	if claims.FamilyID == nil || *claims.FamilyID != familyID {
		return ErrWrongFamilyScope
	}
	return nil
}

// familyWriteScope is familyScope restricted to the roles allowed to mutate
// the family's tree.
func familyWriteScope(claims models.TokenClaims, familyID string) error {
	if claims.Role != models.RoleFamilyAdmin && claims.Role != models.RoleFamilyCoAdmin {
		return ErrForbidden
	}
	return familyScope(claims, familyID)
}
