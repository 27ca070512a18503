package shared

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/fleetgrid/fleet-sdk/pkg/serrors"
)

type APIError struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

type apiErrorEnvelope struct {
	Error APIError `json:"error"`
}

func WriteJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// WriteAPIError renders any error as a coded JSON envelope. Coded domain
// errors keep their code; validation errors carry a field map; everything
// else collapses to INTERNAL.
func WriteAPIError(w http.ResponseWriter, status int, err error) {
	var base *serrors.Base
	if errors.As(err, &base) {
		WriteJSON(w, status, apiErrorEnvelope{Error: APIError{
			Code:    base.Code,
			Message: base.Message,
		}})
		return
	}

	var fields serrors.ValidationErrors
	if errors.As(err, &fields) {
		WriteJSON(w, status, apiErrorEnvelope{Error: APIError{
			Code:    "VALIDATION_FAILED",
			Message: "validation failed",
			Fields:  fields,
		}})
		return
	}

	WriteJSON(w, status, apiErrorEnvelope{Error: APIError{
		Code:    "INTERNAL",
		Message: err.Error(),
	}})
}

// WriteValidationErrors renders a field -> message map as a 400 response.
func WriteValidationErrors(w http.ResponseWriter, fields map[string]string) {
	WriteJSON(w, http.StatusBadRequest, apiErrorEnvelope{Error: APIError{
		Code:    "VALIDATION_FAILED",
		Message: "validation failed",
		Fields:  fields,
	}})
}
