package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/tripplanner/backend/internal/domain"
)

// errBadRequest marks input rejected before reaching the service layer
// (malformed JSON, unparsable path or query parameter).
var errBadRequest = errors.New("bad request")

// errTooLarge marks a body cut off by the size limit.
var errTooLarge = errors.New("request body too large")

// errorBody builds an ErrorResponse.
func errorBody(code, message string) ErrorResponse {
	return ErrorResponse{Error: ErrorDetail{Code: code, Message: message}}
}

// notFoundBody returns an ErrorResponse for a missing resource.
// The caller supplies the human-readable message (e.g. "trip not found")
// because the handler is the layer that knows what was being looked up.
func notFoundBody(message string) ErrorResponse {
	return errorBody("not_found", message)
}

// writeError maps err to a status and error body. notFound is the message
// used for domain.ErrNotFound. Unknown errors are logged and reported as 500
// without leaking their text.
func writeError(w http.ResponseWriter, r *http.Request, err error, notFound string) {
	switch {
	case errors.Is(err, errTooLarge):
		writeJSON(w, http.StatusRequestEntityTooLarge, errorBody("payload_too_large", errTooLarge.Error()))
	case errors.Is(err, openapi_types.ErrValidationEmail):
		writeJSON(w, http.StatusUnprocessableEntity, errorBody("validation_error", "email: "+err.Error()))
	case errors.Is(err, errBadRequest):
		writeJSON(w, http.StatusBadRequest, errorBody("bad_request", unwrapMessage(err)))
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusNotFound, notFoundBody(notFound))
	case errors.Is(err, domain.ErrValidation):
		writeJSON(w, http.StatusUnprocessableEntity, errorBody("validation_error", unwrapMessage(err)))
	case errors.Is(err, domain.ErrInvalidWindow):
		writeJSON(w, http.StatusUnprocessableEntity, errorBody("invalid_window", unwrapMessage(err)))
	case errors.Is(err, domain.ErrOutOfWindow):
		writeJSON(w, http.StatusUnprocessableEntity, errorBody("out_of_window", unwrapMessage(err)))
	case errors.Is(err, domain.ErrDuplicateEmail):
		writeJSON(w, http.StatusUnprocessableEntity, errorBody("duplicate_email", unwrapMessage(err)))
	case errors.Is(err, domain.ErrAlreadyConfirmed):
		writeJSON(w, http.StatusConflict, errorBody("already_confirmed", "trip is already confirmed"))
	case errors.Is(err, domain.ErrUnavailable):
		slog.WarnContext(r.Context(), "dependency unavailable", "path", r.URL.Path, "error", err)
		writeJSON(w, http.StatusServiceUnavailable, errorBody("unavailable", "service temporarily unavailable"))
	default:
		slog.ErrorContext(r.Context(), "unhandled error", "path", r.URL.Path, "error", err)
		writeJSON(w, http.StatusInternalServerError, errorBody("internal_error", "internal server error"))
	}
}

// unwrapMessage extracts the human-readable part from a wrapped sentinel error
// by dropping the "pkg.Type.Method: " operation prefixes and the sentinel text.
// e.g. "service.TripService.Create: validation error: destination must be at
// least 4 characters" becomes "destination must be at least 4 characters".
func unwrapMessage(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	for {
		op, rest, ok := strings.Cut(msg, ": ")
		if !ok || !isOpName(op) {
			break
		}
		msg = rest
	}
	for _, sentinel := range []error{domain.ErrValidation, domain.ErrInvalidWindow, domain.ErrDuplicateEmail, errBadRequest} {
		if rest, ok := strings.CutPrefix(msg, sentinel.Error()+": "); ok {
			return rest
		}
	}
	return msg
}

// isOpName reports whether s looks like "service.TripService.Create".
func isOpName(s string) bool {
	return strings.Contains(s, ".") && !strings.ContainsAny(s, " \t")
}
