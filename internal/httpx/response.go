// Package httpx holds the JSON response helpers used by every handler.
package httpx

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/diewo77/gmao/internal/apperr"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

func JSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	var body []byte
	var err error
	if payload != nil {
		body, err = json.Marshal(payload)
		if err != nil {
			// best-effort error response; avoid writing partial JSON
			http.Error(w, `{"error":"encode_error"}`, http.StatusInternalServerError)
			return
		}
	} else {
		body = []byte("null")
	}
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		// nothing we can do at this point
		_ = err
	}
}

func JSONError(w http.ResponseWriter, status int, msg string, details any) {
	JSON(w, status, ErrorResponse{Error: msg, Details: details})
}

// StatusFor maps an application error to its HTTP status code.
func StatusFor(err error) int {
	switch apperr.KindOf(err) {
	case apperr.KindValidation:
		return http.StatusBadRequest
	case apperr.KindNotFound:
		return http.StatusNotFound
	case apperr.KindConflict:
		return http.StatusConflict
	case apperr.KindProvider:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// WriteError serializes err as { "error": ... } with the mapped status.
// Unclassified errors never leak their text.
func WriteError(w http.ResponseWriter, err error) {
	var e *apperr.Error
	if !errors.As(err, &e) {
		JSONError(w, http.StatusInternalServerError, "internal_error", nil)
		return
	}
	var details any
	if len(e.Fields) > 0 {
		details = e.Fields
	}
	JSONError(w, StatusFor(err), e.Error(), details)
}

// DecodeJSON decodes the request body into dst, reporting malformed bodies as validation errors.
func DecodeJSON(r *http.Request, dst any) error {
	if r.Body == nil {
		return apperr.Invalid("request body is required")
	}
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperr.Invalid("invalid_json")
	}
	return nil
}
