package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Dan9191/task-manager/internal/repository"
	"github.com/Dan9191/task-manager/internal/service"
)

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps the error taxonomy onto HTTP statuses. Store failures
// surface as a generic message; not-found never distinguishes foreign
// ownership from absence.
func writeError(w http.ResponseWriter, err error) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": verr.Message, "field": verr.Field})
	case errors.Is(err, service.ErrDuplicateEmail):
		writeJSON(w, http.StatusConflict, map[string]string{"error": "Email already taken by another user."})
	case errors.Is(err, service.ErrInvalidCredentials):
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Invalid email or password."})
	case errors.Is(err, repository.ErrNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "Not found."})
	default:
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Something went wrong. Please try again."})
	}
}
