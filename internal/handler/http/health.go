package http

import (
	"net/http"

	"github.com/apnaparivar/familytree-backend/internal/utils"
	"github.com/apnaparivar/familytree-backend/models"
)

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	_, _ = utils.WriteJSON(w, models.MessageResponse{
		Status:  "healthy",
		Message: "family-tree backend is running",
	}, http.StatusOK)
}
