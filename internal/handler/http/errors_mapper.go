package http

import (
	"errors"
	"net/http"

	"remodel-portal/internal/logger"
	"remodel-portal/internal/service"
	"remodel-portal/internal/store"
	"remodel-portal/internal/utils"
)

// Error kinds of the portal's error envelope.
const (
	kindValidation      = "ValidationError"
	kindAuth            = "AuthError"
	kindUnauthenticated = "Unauthenticated"
	kindForbidden       = "Forbidden"
	kindNotFound        = "NotFound"
	kindConflict        = "ConflictError"
	kindStorage         = "StorageError"
)

var errorStatusMap = map[error]int{
	service.ErrInvalidDataProvided: http.StatusBadRequest,
	service.ErrWrongCredentials:    http.StatusUnauthorized,
	service.ErrUserDeactivated:     http.StatusForbidden,
	service.ErrProductNotFound:     http.StatusNotFound,
	service.ErrPhaseNotFound:       http.StatusNotFound,

	ErrUnauthenticated: http.StatusUnauthorized,
	ErrForbidden:       http.StatusForbidden,
	ErrUnreadableBody:  http.StatusBadRequest,

	store.ErrUserAlreadyExists: http.StatusConflict,
	store.ErrRoomAlreadyExists: http.StatusConflict,
	store.ErrNoUserWasFound:    http.StatusNotFound,
	store.ErrRoomNotFound:      http.StatusNotFound,
	store.ErrExpenseNotFound:   http.StatusNotFound,

	service.ErrProductMoveIncomplete: http.StatusInternalServerError,

	store.ErrBuildingSQLQuery:     http.StatusInternalServerError,
	store.ErrExecutingQuery:       http.StatusInternalServerError,
	store.ErrBeginningTransaction: http.StatusInternalServerError,
	store.ErrCommitingTransaction: http.StatusInternalServerError,
	store.ErrExecutingStatement:   http.StatusInternalServerError,
	store.ErrScanningRow:          http.StatusInternalServerError,
	store.ErrScanningRows:         http.StatusInternalServerError,
	store.ErrEncodingDocument:     http.StatusInternalServerError,
	store.ErrDecodingDocument:     http.StatusInternalServerError,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

// kindFromStatus maps a response status to the envelope error kind. Conflict
// and auth failures carry distinct kinds so the frontend can branch without
// parsing messages.
func kindFromStatus(status int, err error) string {
	switch status {
	case http.StatusBadRequest:
		return kindValidation
	case http.StatusUnauthorized:
		if errors.Is(err, service.ErrWrongCredentials) {
			return kindAuth
		}
		return kindUnauthenticated
	case http.StatusForbidden:
		return kindForbidden
	case http.StatusNotFound:
		return kindNotFound
	case http.StatusConflict:
		return kindConflict
	default:
		return kindStorage
	}
}

// writeError renders the error envelope for err. Client-caused failures
// surface their message verbatim; storage and unexpected errors are logged in
// detail and replaced with a generic message so internals never leak.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromRequest(r)

	status := statusFromError(err)
	kind := kindFromStatus(status, err)

	message := err.Error()
	if status >= http.StatusInternalServerError {
		log.Err(err).Msg("request failed")
		message = "internal storage error"
		// A half-done room move needs a client-visible description: the item
		// left the source room but never landed in the target.
		if errors.Is(err, service.ErrProductMoveIncomplete) {
			message = "product was removed from the source room but could not be added to the target room"
		}
	}

	writeErrorKind(w, status, kind, message)
}

// writeErrorKind renders the error envelope from its raw parts.
func writeErrorKind(w http.ResponseWriter, status int, kind string, message string) {
	utils.WriteJSON(w, map[string]any{
		"success": false,
		"error":   kind,
		"message": message,
	}, status)
}

// writeSuccess renders the success envelope with the given payload fields
// merged in at the top level.
func writeSuccess(w http.ResponseWriter, status int, payload map[string]any) {
	body := make(map[string]any, len(payload)+1)
	for k, v := range payload {
		body[k] = v
	}
	body["success"] = true

	utils.WriteJSON(w, body, status)
}

// writeInvalidJSON is the shared response for undecodable request bodies.
func writeInvalidJSON(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromRequest(r)
	log.Err(err).Msg("invalid JSON was passed")

	writeErrorKind(w, http.StatusBadRequest, kindValidation, "invalid JSON was passed")
}
