package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/nextSaimon/students-details/internal/domain"
)

// Error codes carried in ErrorDetail.Code.
const (
	codeNotFound        = "not_found"
	codeConflict        = "conflict"
	codeValidation      = "validation_error"
	codeTooLarge        = "payload_too_large"
	codeInternal        = "internal_error"
	msgInternal         = "internal server error"
	msgDefaultConflict  = "this name already exists"
	msgDefaultInvalid   = "invalid input"
	contentTypeJSONUTF8 = "application/json; charset=utf-8"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail carries a machine-readable code and a message safe to show
// to end users.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// writeJSON encodes v as the response body with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", contentTypeJSONUTF8)
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError writes an ErrorResponse.
func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{Error: ErrorDetail{Code: code, Message: message}})
}

// respondErr maps a service error onto an HTTP response.
// notFoundMsg is supplied by the caller because the handler is the layer
// that knows what was being looked up (e.g. "batch not found").
// Anything that is not a domain sentinel is logged and returned as a bare 500.
func (s *Server) respondErr(w http.ResponseWriter, r *http.Request, err error, notFoundMsg string) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, codeNotFound, notFoundMsg)
	case errors.Is(err, domain.ErrConflict):
		writeError(w, http.StatusConflict, codeConflict, unwrapMessage(err, domain.ErrConflict, msgDefaultConflict))
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusUnprocessableEntity, codeValidation, unwrapMessage(err, domain.ErrValidation, msgDefaultInvalid))
	default:
		s.log.ErrorContext(r.Context(), "request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err,
		)
		writeError(w, http.StatusInternalServerError, codeInternal, msgInternal)
	}
}

// unwrapMessage extracts the human-readable part that follows a wrapped sentinel.
// e.g. "service.BatchService.Create: conflict: batch name already exists" → "batch name already exists"
// When the sentinel carries no message, fallback is returned.
func unwrapMessage(err, sentinel error, fallback string) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	marker := sentinel.Error() + ": "
	if i := strings.LastIndex(msg, marker); i >= 0 {
		if rest := msg[i+len(marker):]; rest != "" {
			return rest
		}
	}
	return fallback
}
