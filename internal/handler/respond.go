package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/kmandell/mechanic-shop/internal/models"
)

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.log.Errorf("Failed to encode response: %v", err)
	}
}

// writeRaw writes a pre-serialized JSON body, as stored in the response
// cache.
func (h *Handler) writeRaw(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		h.log.Errorf("Failed to write response: %v", err)
	}
}

// writeError maps domain errors to HTTP status codes. Nothing below this
// point propagates as an unhandled fault.
func (h *Handler) writeError(w http.ResponseWriter, err error) {
	var vErr *models.ValidationError
	switch {
	case errors.As(err, &vErr):
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": vErr.Message, "field": vErr.Field})
	case errors.Is(err, models.ErrNotFound):
		h.writeJSON(w, http.StatusNotFound, map[string]string{"error": "resource not found"})
	case errors.Is(err, models.ErrEmailTaken):
		h.writeJSON(w, http.StatusConflict, map[string]string{"error": "email already registered"})
	case errors.Is(err, models.ErrInvalidCredentials):
		h.writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid email or password"})
	case errors.Is(err, models.ErrUnauthorized):
		h.writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "authentication required"})
	case errors.Is(err, models.ErrForbidden):
		h.writeJSON(w, http.StatusForbidden, map[string]string{"error": "access denied"})
	case errors.Is(err, models.ErrAlreadyAssigned),
		errors.Is(err, models.ErrNotAssigned),
		errors.Is(err, models.ErrPartAlreadyAdded),
		errors.Is(err, models.ErrPartNotOnTicket):
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	default:
		h.log.Errorf("Unhandled error: %v", err)
		h.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
	}
}
