package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-identity/internal/logger"
	"github.com/MKhiriev/go-identity/internal/service"
	"github.com/MKhiriev/go-identity/internal/store"
)

var errorStatusMap = map[error]int{
	service.ErrInvalidDataProvided:  http.StatusBadRequest,
	service.ErrWrongCode:            http.StatusBadRequest,
	service.ErrCodeInvalidOrExpired: http.StatusBadRequest,

	service.ErrInvalidCredentials: http.StatusUnauthorized,
	service.ErrInvalidToken:       http.StatusUnauthorized,

	service.ErrAccountDeactivated: http.StatusForbidden,
	service.ErrForbidden:          http.StatusForbidden,

	service.ErrNotFound: http.StatusNotFound,

	service.ErrAlreadyExists:   http.StatusConflict,
	service.ErrAlreadyVerified: http.StatusConflict,

	service.ErrPreconditionFailed: http.StatusPreconditionFailed,

	service.ErrRateLimited: http.StatusTooManyRequests,

	service.ErrNotificationUnavailable: http.StatusServiceUnavailable,

	store.ErrStorageUnavailable: http.StatusServiceUnavailable,

	store.ErrAlreadyExists:    http.StatusConflict,
	store.ErrUserNotFound:     http.StatusNotFound,
	store.ErrAdminNotFound:    http.StatusNotFound,
	store.ErrNoFieldsToUpdate: http.StatusBadRequest,

	store.ErrBuildingSQLQuery: http.StatusInternalServerError,
	store.ErrExecutingQuery:   http.StatusInternalServerError,
	store.ErrScanningRow:      http.StatusInternalServerError,
	store.ErrScanningRows:     http.StatusInternalServerError,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

// respondError logs err and writes the mapped HTTP status. Server-side
// failures are masked with the generic status text so storage and dependency
// details never leak to the client.
func respondError(w http.ResponseWriter, log *logger.Logger, err error, msg string) {
	status := statusFromError(err)
	log.Err(err).Msg(msg)

	if status >= http.StatusInternalServerError {
		http.Error(w, http.StatusText(status), status)
		return
	}
	http.Error(w, err.Error(), status)
}
