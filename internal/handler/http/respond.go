package http

import (
	"net/http"

	"github.com/apnaparivar/familytree-backend/internal/logger"
	"github.com/apnaparivar/familytree-backend/internal/utils"
)

// writeServiceError maps a service-layer error to its HTTP status and writes
// the uniform JSON error body. Unexpected failures (5xx) are logged with the
// full error but reported to the caller with the generic status text only,
// so raw provider errors never leak into responses.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromRequest(r)

	status := statusFromError(err)
	if status >= http.StatusInternalServerError {
		log.Err(err).Msg("request failed with an internal error")
		utils.WriteError(w, http.StatusText(status), status)
		return
	}

	log.Warn().Err(err).Int("status", status).Msg("request rejected")
	utils.WriteError(w, err.Error(), status)
}
