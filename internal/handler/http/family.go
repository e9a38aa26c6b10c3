package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/apnaparivar/familytree-backend/internal/logger"
	"github.com/apnaparivar/familytree-backend/internal/utils"
)

// CreateFamilyRequest is the body of the direct family-creation route, which
// bypasses the onboarding workflow and is therefore super-admin only.
type CreateFamilyRequest struct {
	FamilyName string `json:"family_name"`
}

func (h *Handler) createFamily(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var request CreateFamilyRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Warn().Err(err).Msg("invalid JSON was passed")
		utils.WriteError(w, "invalid JSON was passed", http.StatusBadRequest)
		return
	}

	family, err := h.services.FamilyService.Create(ctx, request.FamilyName)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	_, _ = utils.WriteJSON(w, family, http.StatusCreated)
}

func (h *Handler) listFamilies(w http.ResponseWriter, r *http.Request) {
	families, err := h.services.FamilyService.List(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	_, _ = utils.WriteJSON(w, families, http.StatusOK)
}

func (h *Handler) getFamily(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	claims, ok := utils.GetClaimsFromContext(ctx)
	if !ok {
		utils.WriteError(w, ErrEmptyAuthorizationHeader.Error(), http.StatusUnauthorized)
		return
	}

	familyID := chi.URLParam(r, "familyID")
	if err := familyScope(claims, familyID); err != nil {
		writeServiceError(w, r, err)
		return
	}

	family, err := h.services.FamilyService.Get(ctx, familyID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	_, _ = utils.WriteJSON(w, family, http.StatusOK)
}

func (h *Handler) updateFamily(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	claims, ok := utils.GetClaimsFromContext(ctx)
	if !ok {
		utils.WriteError(w, ErrEmptyAuthorizationHeader.Error(), http.StatusUnauthorized)
		return
	}

	familyID := chi.URLParam(r, "familyID")
	if err := familyWriteScope(claims, familyID); err != nil {
		writeServiceError(w, r, err)
		return
	}

	var fields map[string]any
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		log.Warn().Err(err).Msg("invalid JSON was passed")
		utils.WriteError(w, "invalid JSON was passed", http.StatusBadRequest)
		return
	}

	family, err := h.services.FamilyService.Update(ctx, familyID, fields)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	_, _ = utils.WriteJSON(w, family, http.StatusOK)
}

func (h *Handler) deleteFamily(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	familyID := chi.URLParam(r, "familyID")
	if err := h.services.FamilyService.Delete(ctx, familyID); err != nil {
		writeServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
