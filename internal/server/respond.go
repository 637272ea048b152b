package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/tillpoint/tillpoint/internal/models"
)

// ErrorResponse is the JSON body returned for all error statuses.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, ErrorResponse{Error: message, Code: code})
}

// respondDomainError maps core errors onto HTTP statuses:
// not-found -> 404, validation failures -> 400, frozen transaction -> 409,
// anything else -> 500.
func respondDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrNotFound):
		respondError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, models.ErrInvalidItem),
		errors.Is(err, models.ErrInvalidLineItem),
		errors.Is(err, models.ErrInvalidPayment),
		errors.Is(err, models.ErrEmptyCart):
		respondError(w, http.StatusBadRequest, "invalid_request", err.Error())
	case errors.Is(err, models.ErrTransactionCompleted):
		respondError(w, http.StatusConflict, "transaction_completed", err.Error())
	default:
		slog.Error("Request failed", "error", err)
		respondError(w, http.StatusInternalServerError, "internal", "internal server error")
	}
}
