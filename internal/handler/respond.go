package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/vaanihq/vaani-backend/internal/service"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError emits the uniform failure envelope.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]any{
		"success": false,
		"error":   msg,
	})
}

func readJSON(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}

// writeServiceError translates a service error kind into a transport
// status. Anything that isn't a *service.Error is an internal failure.
func writeServiceError(w http.ResponseWriter, err error) {
	var svcErr *service.Error
	if errors.As(err, &svcErr) {
		status := http.StatusInternalServerError
		if svcErr.Kind == service.KindValidation {
			status = http.StatusBadRequest
		}
		writeError(w, status, svcErr.Message)
		return
	}
	writeError(w, http.StatusInternalServerError, err.Error())
}
