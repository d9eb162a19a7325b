package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-spend-keeper/internal/adapter"
	"github.com/MKhiriev/go-spend-keeper/internal/service"
	"github.com/MKhiriev/go-spend-keeper/internal/store"
	"github.com/MKhiriev/go-spend-keeper/internal/utils"
	"github.com/MKhiriev/go-spend-keeper/models"
)

var errorStatusMap = map[error]int{
	service.ErrInvalidWrite:         http.StatusUnprocessableEntity,
	service.ErrUserNotProvisioned:   http.StatusBadGateway,
	service.ErrHydrationUnreachable: http.StatusServiceUnavailable,

	// the authoritative sheet service answered but refused the row
	adapter.ErrRejected: http.StatusBadGateway,
	// the sheet service is unreachable; the client should keep the write
	// queued and retry
	adapter.ErrRetryable: http.StatusServiceUnavailable,

	store.ErrUserNotFound:      http.StatusNotFound,
	store.ErrUserAlreadyExists: http.StatusConflict,
	store.ErrRecordNotFound:    http.StatusNotFound,
	store.ErrRecordNotSaved:    http.StatusInternalServerError,

	store.ErrBuildingSQLQuery:     http.StatusInternalServerError,
	store.ErrBeginningTransaction: http.StatusInternalServerError,
	store.ErrCommitingTransaction: http.StatusInternalServerError,
	store.ErrPreparingStatement:   http.StatusInternalServerError,
	store.ErrScanningRow:          http.StatusInternalServerError,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

// retryableStatus reports whether a status tells the client to keep its
// write queued and try again. Everything else is a rejection: the client
// removes the write and surfaces the error to the user.
func retryableStatus(status int) bool {
	switch status {
	case http.StatusRequestTimeout, http.StatusTooManyRequests:
		return true
	}
	return status >= http.StatusInternalServerError
}

// writeError maps err to an HTTP status and writes the structured
// [models.APIError] body.
func writeError(w http.ResponseWriter, err error) {
	status := statusFromError(err)
	_, _ = utils.WriteJSON(w, models.APIError{
		Error:     err.Error(),
		Retryable: retryableStatus(status),
	}, status)
}
