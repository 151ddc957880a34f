package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	appErrors "github.com/sarahselama/SerhSalesLead/internal/errors"
)

type APIError struct {
	Error struct {
		Code      string `json:"code"`
		Message   string `json:"message"`
		RequestID string `json:"request_id,omitempty"`
	} `json:"error"`
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func WriteError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	var e APIError
	e.Error.Code = code
	e.Error.Message = message
	e.Error.RequestID = middleware.GetReqID(r.Context())
	WriteJSON(w, status, e)
}

// WriteAppError maps the typed errors to status codes. Anything untyped is a 500.
func WriteAppError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		missing *appErrors.MissingSourceError
		empty   *appErrors.EmptyInputError
		invalid *appErrors.InvalidFilterError
		store   *appErrors.StoreIOError
	)
	switch {
	case errors.As(err, &missing):
		WriteError(w, r, http.StatusNotFound, "missing_source", err.Error())
	case errors.As(err, &empty):
		WriteError(w, r, http.StatusUnprocessableEntity, "empty_input", err.Error())
	case errors.As(err, &invalid):
		WriteError(w, r, http.StatusBadRequest, "invalid_filter", err.Error())
	case errors.As(err, &store):
		WriteError(w, r, http.StatusInternalServerError, "store_io", err.Error())
	default:
		WriteError(w, r, http.StatusInternalServerError, "internal_error", err.Error())
	}
}
