package http

import (
	"encoding/json"
	"net/http"

	"github.com/apnaparivar/familytree-backend/internal/logger"
	"github.com/apnaparivar/familytree-backend/internal/utils"
	"github.com/apnaparivar/familytree-backend/models"
)

func (h *Handler) superAdminLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var request models.SuperAdminLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Warn().Err(err).Msg("invalid JSON was passed")
		utils.WriteError(w, "invalid JSON was passed", http.StatusBadRequest)
		return
	}
	if err := request.Validate(); err != nil {
		writeServiceError(w, r, err)
		return
	}

	response, err := h.services.AuthService.SuperAdminLogin(ctx, request)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	_, _ = utils.WriteJSON(w, response, http.StatusOK)
}

func (h *Handler) adminLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var request models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Warn().Err(err).Msg("invalid JSON was passed")
		utils.WriteError(w, "invalid JSON was passed", http.StatusBadRequest)
		return
	}
	if err := request.Validate(); err != nil {
		writeServiceError(w, r, err)
		return
	}

	response, err := h.services.AuthService.AdminLogin(ctx, request)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	_, _ = utils.WriteJSON(w, response, http.StatusOK)
}

func (h *Handler) memberLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var request models.MemberLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Warn().Err(err).Msg("invalid JSON was passed")
		utils.WriteError(w, "invalid JSON was passed", http.StatusBadRequest)
		return
	}
	if err := request.Validate(); err != nil {
		writeServiceError(w, r, err)
		return
	}

	response, err := h.services.AuthService.MemberLogin(ctx, request)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	_, _ = utils.WriteJSON(w, response, http.StatusOK)
}

// familyPassword returns the decrypted shared family password to a family
// admin who re-supplies their own login password. Gated to family_admin by
// the route layer.
func (h *Handler) familyPassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	claims, ok := utils.GetClaimsFromContext(ctx)
	if !ok {
		utils.WriteError(w, ErrEmptyAuthorizationHeader.Error(), http.StatusUnauthorized)
		return
	}

	var request models.FamilyPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Warn().Err(err).Msg("invalid JSON was passed")
		utils.WriteError(w, "invalid JSON was passed", http.StatusBadRequest)
		return
	}
	if err := request.Validate(); err != nil {
		writeServiceError(w, r, err)
		return
	}

	response, err := h.services.AuthService.FamilyPassword(ctx, claims, request.AdminPassword)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	_, _ = utils.WriteJSON(w, response, http.StatusOK)
}

func (h *Handler) sendMagicLink(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var request models.EmailRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Warn().Err(err).Msg("invalid JSON was passed")
		utils.WriteError(w, "invalid JSON was passed", http.StatusBadRequest)
		return
	}
	if err := request.Validate(); err != nil {
		writeServiceError(w, r, err)
		return
	}

	if err := h.services.AuthService.SendMagicLink(ctx, request.Email); err != nil {
		writeServiceError(w, r, err)
		return
	}

	_, _ = utils.WriteJSON(w, models.MessageResponse{
		Message: "Magic link sent to " + request.Email,
	}, http.StatusOK)
}

func (h *Handler) verifyMagicLink(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var request models.MagicLinkVerifyRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Warn().Err(err).Msg("invalid JSON was passed")
		utils.WriteError(w, "invalid JSON was passed", http.StatusBadRequest)
		return
	}
	if err := request.Validate(); err != nil {
		writeServiceError(w, r, err)
		return
	}

	response, err := h.services.AuthService.VerifyMagicLink(ctx, request.Email, request.Token)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	_, _ = utils.WriteJSON(w, response, http.StatusOK)
}

func (h *Handler) refreshToken(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var request models.RefreshTokenRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Warn().Err(err).Msg("invalid JSON was passed")
		utils.WriteError(w, "invalid JSON was passed", http.StatusBadRequest)
		return
	}
	if err := request.Validate(); err != nil {
		writeServiceError(w, r, err)
		return
	}

	response, err := h.services.AuthService.RefreshSession(ctx, request.RefreshToken)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	_, _ = utils.WriteJSON(w, response, http.StatusOK)
}

// verifyToken validates the bearer token in the Authorization header and
// echoes its identity claims. It deliberately runs outside the auth
// middleware so clients can probe a token without tripping role gates.
func (h *Handler) verifyToken(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		utils.WriteError(w, ErrEmptyAuthorizationHeader.Error(), http.StatusUnauthorized)
		return
	}
	tokenString, err := utils.ParseBearerToken(authHeader)
	if err != nil {
		log.Warn().Err(err).Send()
		utils.WriteError(w, err.Error(), http.StatusUnauthorized)
		return
	}

	claims, err := h.services.TokenService.Verify(ctx, tokenString)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	_, _ = utils.WriteJSON(w, models.TokenVerifyResponse{
		UserID:   claims.UserID,
		Email:    claims.Email,
		Role:     claims.Role,
		FamilyID: claims.FamilyID,
	}, http.StatusOK)
}

// currentUser returns the profile behind the bearer token. It runs outside
// the auth middleware because two token namespaces reach this route: tokens
// signed by this backend and session tokens issued by the hosted provider
// to magic-link users. Local verification is tried first; on failure the
// token is resolved against the provider instead.
func (h *Handler) currentUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		utils.WriteError(w, ErrEmptyAuthorizationHeader.Error(), http.StatusUnauthorized)
		return
	}
	tokenString, err := utils.ParseBearerToken(authHeader)
	if err != nil {
		log.Warn().Err(err).Send()
		utils.WriteError(w, err.Error(), http.StatusUnauthorized)
		return
	}

	var user models.User
	if claims, err := h.services.TokenService.Verify(ctx, tokenString); err == nil {
		user, err = h.services.AuthService.CurrentUser(ctx, claims)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
	} else {
		user, err = h.services.AuthService.SessionUser(ctx, tokenString)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
	}

	_, _ = utils.WriteJSON(w, user, http.StatusOK)
}

// logout revokes the hosted provider's session when the bearer token belongs
// to one. Tokens signed by this backend are stateless, so logout always
// succeeds and the client simply discards the token.
func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var accessToken string
	if authHeader := r.Header.Get("Authorization"); authHeader != "" {
		if tokenString, err := utils.ParseBearerToken(authHeader); err == nil {
			accessToken = tokenString
		}
	}

	if err := h.services.AuthService.Logout(ctx, accessToken); err != nil {
		writeServiceError(w, r, err)
		return
	}

	_, _ = utils.WriteJSON(w, models.MessageResponse{Message: "Logged out successfully"}, http.StatusOK)
}
