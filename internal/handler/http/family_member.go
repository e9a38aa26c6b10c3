package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/apnaparivar/familytree-backend/internal/logger"
	"github.com/apnaparivar/familytree-backend/internal/utils"
	"github.com/apnaparivar/familytree-backend/models"
)

// createFamilyMember creates one member in the family given by the family_id
// query parameter. Writes require family_admin or family_co_admin of that
// family.
func (h *Handler) createFamilyMember(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	claims, ok := utils.GetClaimsFromContext(ctx)
	if !ok {
		utils.WriteError(w, ErrEmptyAuthorizationHeader.Error(), http.StatusUnauthorized)
		return
	}

	familyID := r.URL.Query().Get("family_id")
	if err := familyWriteScope(claims, familyID); err != nil {
		writeServiceError(w, r, err)
		return
	}

	var request models.CreateFamilyMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Warn().Err(err).Msg("invalid JSON was passed")
		utils.WriteError(w, "invalid JSON was passed", http.StatusBadRequest)
		return
	}

	member, err := h.services.FamilyMemberService.Create(ctx, familyID, request)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	_, _ = utils.WriteJSON(w, member, http.StatusCreated)
}

func (h *Handler) bulkCreateFamilyMembers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	claims, ok := utils.GetClaimsFromContext(ctx)
	if !ok {
		utils.WriteError(w, ErrEmptyAuthorizationHeader.Error(), http.StatusUnauthorized)
		return
	}

	familyID := r.URL.Query().Get("family_id")
	if err := familyWriteScope(claims, familyID); err != nil {
		writeServiceError(w, r, err)
		return
	}

	var request models.BulkCreateFamilyMembersRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Warn().Err(err).Msg("invalid JSON was passed")
		utils.WriteError(w, "invalid JSON was passed", http.StatusBadRequest)
		return
	}

	response, err := h.services.FamilyMemberService.BulkCreate(ctx, familyID, request)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	_, _ = utils.WriteJSON(w, response, http.StatusCreated)
}

func (h *Handler) searchFamilyMembers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	claims, ok := utils.GetClaimsFromContext(ctx)
	if !ok {
		utils.WriteError(w, ErrEmptyAuthorizationHeader.Error(), http.StatusUnauthorized)
		return
	}

	familyID := r.URL.Query().Get("family_id")
	if err := familyScope(claims, familyID); err != nil {
		writeServiceError(w, r, err)
		return
	}

	members, err := h.services.FamilyMemberService.Search(ctx, familyID, r.URL.Query().Get("query"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	_, _ = utils.WriteJSON(w, members, http.StatusOK)
}

func (h *Handler) listFamilyMembers(w http.ResponseWriter, r *http.Request) {
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

	members, err := h.services.FamilyMemberService.ListByFamily(ctx, familyID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	_, _ = utils.WriteJSON(w, members, http.StatusOK)
}

func (h *Handler) getFamilyMember(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	claims, ok := utils.GetClaimsFromContext(ctx)
	if !ok {
		utils.WriteError(w, ErrEmptyAuthorizationHeader.Error(), http.StatusUnauthorized)
		return
	}

	member, err := h.services.FamilyMemberService.Get(ctx, chi.URLParam(r, "memberID"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	// Scope is checked against the stored row: the member id alone does not
	// reveal which family it belongs to.
	if err := familyScope(claims, member.FamilyID); err != nil {
		writeServiceError(w, r, err)
		return
	}

	_, _ = utils.WriteJSON(w, member, http.StatusOK)
}

func (h *Handler) updateFamilyMember(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	claims, ok := utils.GetClaimsFromContext(ctx)
	if !ok {
		utils.WriteError(w, ErrEmptyAuthorizationHeader.Error(), http.StatusUnauthorized)
		return
	}

	memberID := chi.URLParam(r, "memberID")
	member, err := h.services.FamilyMemberService.Get(ctx, memberID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if err := familyWriteScope(claims, member.FamilyID); err != nil {
		writeServiceError(w, r, err)
		return
	}

	var request models.UpdateFamilyMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Warn().Err(err).Msg("invalid JSON was passed")
		utils.WriteError(w, "invalid JSON was passed", http.StatusBadRequest)
		return
	}

	updated, err := h.services.FamilyMemberService.Update(ctx, memberID, request)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	_, _ = utils.WriteJSON(w, updated, http.StatusOK)
}

func (h *Handler) deleteFamilyMember(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	claims, ok := utils.GetClaimsFromContext(ctx)
	if !ok {
		utils.WriteError(w, ErrEmptyAuthorizationHeader.Error(), http.StatusUnauthorized)
		return
	}

	memberID := chi.URLParam(r, "memberID")
	member, err := h.services.FamilyMemberService.Get(ctx, memberID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if err := familyWriteScope(claims, member.FamilyID); err != nil {
		writeServiceError(w, r, err)
		return
	}

	if err := h.services.FamilyMemberService.Delete(ctx, memberID); err != nil {
		writeServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
