package chi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/kailas-cloud/searchdeck/internal/domain"
	"github.com/kailas-cloud/searchdeck/internal/querystate"
)

// ErrorCode is a machine-readable error identifier for clients.
type ErrorCode string

const (
	CodeBadRequest       ErrorCode = "bad_request"
	CodeUnauthorized     ErrorCode = "unauthorized"
	CodeValidationFailed ErrorCode = "validation_failed"
	CodeSessionNotFound  ErrorCode = "session_not_found"
	CodeSessionClosed    ErrorCode = "session_closed"
	CodeInvoiceNotFound  ErrorCode = "invoice_not_found"
	CodeAlreadyExists    ErrorCode = "already_exists"
	CodeInvalidPage      ErrorCode = "invalid_page"
	CodeSuggestDisabled  ErrorCode = "suggest_disabled"
	CodeEmbeddingError   ErrorCode = "embedding_provider_error"
	CodeInternalError    ErrorCode = "internal_error"
)

// ErrorResponse is the JSON body of every non-2xx response.
type ErrorResponse struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code ErrorCode, message string) {
	writeJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrValidation,
		domain.ErrSessionNotFound,
		domain.ErrInvoiceNotFound,
		domain.ErrAlreadyExists,
		domain.ErrSuggestDisabled,
		domain.ErrEmbeddingProviderError,
		querystate.ErrInvalidPage,
		querystate.ErrClosed,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code ErrorCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}
