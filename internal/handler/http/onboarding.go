package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/apnaparivar/familytree-backend/internal/logger"
	"github.com/apnaparivar/familytree-backend/internal/utils"
	"github.com/apnaparivar/familytree-backend/models"
)

func (h *Handler) adminRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var request models.AdminRegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Warn().Err(err).Msg("invalid JSON was passed")
		utils.WriteError(w, "invalid JSON was passed", http.StatusBadRequest)
		return
	}
	if err := request.Validate(); err != nil {
		writeServiceError(w, r, err)
		return
	}

	response, err := h.services.OnboardingService.CreateRequest(ctx, request)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	_, _ = utils.WriteJSON(w, response, http.StatusCreated)
}

func (h *Handler) requestStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	requestID := chi.URLParam(r, "requestID")

	response, err := h.services.OnboardingService.GetStatus(ctx, requestID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	_, _ = utils.WriteJSON(w, response, http.StatusOK)
}

func (h *Handler) pendingRequests(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	response, err := h.services.OnboardingService.ListPending(ctx)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	_, _ = utils.WriteJSON(w, response, http.StatusOK)
}

func (h *Handler) approveRequest(w http.ResponseWriter, r *http.Request) {
	h.decideRequest(w, r, models.ActionApprove)
}

func (h *Handler) rejectRequest(w http.ResponseWriter, r *http.Request) {
	h.decideRequest(w, r, models.ActionReject)
}

// decideRequest handles both decision routes. The route fixes the action, so
// a body whose action field disagrees with the route is rejected by
// validation rather than silently overridden.
func (h *Handler) decideRequest(w http.ResponseWriter, r *http.Request, action string) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	claims, ok := utils.GetClaimsFromContext(ctx)
	if !ok {
		utils.WriteError(w, ErrEmptyAuthorizationHeader.Error(), http.StatusUnauthorized)
		return
	}

	var request models.AdminDecisionRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Warn().Err(err).Msg("invalid JSON was passed")
		utils.WriteError(w, "invalid JSON was passed", http.StatusBadRequest)
		return
	}
	if request.Action == "" {
		request.Action = action
	}
	if err := request.Validate(); err != nil {
		writeServiceError(w, r, err)
		return
	}
	if request.Action != action {
		writeServiceError(w, r, models.ErrInvalidAction)
		return
	}

	var (
		response models.DecisionResponse
		err      error
	)
	switch action {
	case models.ActionApprove:
		response, err = h.services.OnboardingService.ApproveRequest(ctx, request.RequestID, request.AdminPassword, claims.UserID)
	case models.ActionReject:
		response, err = h.services.OnboardingService.RejectRequest(ctx, request.RequestID, request.RejectionReason, claims.UserID)
	}
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	_, _ = utils.WriteJSON(w, response, http.StatusOK)
}
