package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/apnaparivar/familytree-backend/internal/logger"
	"github.com/apnaparivar/familytree-backend/internal/utils"
	"github.com/apnaparivar/familytree-backend/models"
)

func (h *Handler) createUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var request models.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Warn().Err(err).Msg("invalid JSON was passed")
		utils.WriteError(w, "invalid JSON was passed", http.StatusBadRequest)
		return
	}
	if err := request.Validate(); err != nil {
		writeServiceError(w, r, err)
		return
	}

	user, err := h.services.UserService.Create(ctx, request)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	_, _ = utils.WriteJSON(w, user, http.StatusCreated)
}

// getUser returns one account. Callers may read their own account; the
// super-administrator may read any.
func (h *Handler) getUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	claims, ok := utils.GetClaimsFromContext(ctx)
	if !ok {
		utils.WriteError(w, ErrEmptyAuthorizationHeader.Error(), http.StatusUnauthorized)
		return
	}

	userID := chi.URLParam(r, "userID")
	if claims.Role != models.RoleSuperAdmin && claims.UserID != userID {
		writeServiceError(w, r, ErrForbidden)
		return
	}

	user, err := h.services.UserService.Get(ctx, userID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	_, _ = utils.WriteJSON(w, user, http.StatusOK)
}

// listFamilyUsers lists the accounts of one family, given by the family_id
// query parameter. Family roles may only list their own family.
func (h *Handler) listFamilyUsers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	claims, ok := utils.GetClaimsFromContext(ctx)
	if !ok {
		utils.WriteError(w, ErrEmptyAuthorizationHeader.Error(), http.StatusUnauthorized)
		return
	}

	familyID := r.URL.Query().Get("family_id")
	if claims.Role != models.RoleSuperAdmin {
		if err := familyScope(claims, familyID); err != nil {
			writeServiceError(w, r, err)
			return
		}
	}

	users, err := h.services.UserService.ListByFamily(ctx, familyID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	_, _ = utils.WriteJSON(w, users, http.StatusOK)
}

func (h *Handler) updateUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	claims, ok := utils.GetClaimsFromContext(ctx)
	if !ok {
		utils.WriteError(w, ErrEmptyAuthorizationHeader.Error(), http.StatusUnauthorized)
		return
	}

	userID := chi.URLParam(r, "userID")
	if claims.Role != models.RoleSuperAdmin && claims.UserID != userID {
		writeServiceError(w, r, ErrForbidden)
		return
	}

	var fields map[string]any
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		log.Warn().Err(err).Msg("invalid JSON was passed")
		utils.WriteError(w, "invalid JSON was passed", http.StatusBadRequest)
		return
	}

	user, err := h.services.UserService.Update(ctx, userID, fields)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	_, _ = utils.WriteJSON(w, user, http.StatusOK)
}

func (h *Handler) deleteUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := h.services.UserService.Delete(ctx, chi.URLParam(r, "userID")); err != nil {
		writeServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
