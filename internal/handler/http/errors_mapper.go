package http

import (
	"errors"
	"net/http"

	"github.com/apnaparivar/familytree-backend/internal/crypto"
	"github.com/apnaparivar/familytree-backend/internal/service"
	"github.com/apnaparivar/familytree-backend/models"
)

var errorStatusMap = map[error]int{
	models.ErrEmptyMemberName:      http.StatusBadRequest,
	models.ErrInvalidEmail:         http.StatusBadRequest,
	models.ErrMissingField:         http.StatusBadRequest,
	models.ErrPasswordMismatch:     http.StatusBadRequest,
	models.ErrWeakAdminPassword:    http.StatusBadRequest,
	models.ErrWeakFamilyPassword:   http.StatusBadRequest,
	models.ErrTooManyMembers:       http.StatusBadRequest,
	models.ErrNoMembersProvided:    http.StatusBadRequest,
	models.ErrInvalidAction:        http.StatusBadRequest,
	models.ErrMissingReason:        http.StatusBadRequest,
	models.ErrMissingAdminPassword: http.StatusBadRequest,

	service.ErrWeakFamilyPassword: http.StatusBadRequest,

	service.ErrInvalidCredentials: http.StatusUnauthorized,
	service.ErrTokenExpired:       http.StatusUnauthorized,
	service.ErrTokenInvalid:       http.StatusUnauthorized,
	crypto.ErrDecryptionFailed:    http.StatusUnauthorized,

	service.ErrAdminPending:  http.StatusForbidden,
	service.ErrAdminRejected: http.StatusForbidden,
	ErrForbidden:             http.StatusForbidden,
	ErrWrongFamilyScope:      http.StatusForbidden,

	service.ErrNotFound: http.StatusNotFound,

	service.ErrDuplicateFamilyName: http.StatusConflict,
	service.ErrDuplicateRequest:    http.StatusConflict,
	service.ErrUserAlreadyExists:   http.StatusConflict,
	service.ErrNotPending:          http.StatusConflict,

	service.ErrAuthLookupFailed:    http.StatusInternalServerError,
	service.ErrTokenCreationFailed: http.StatusInternalServerError,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}
