package handler

import (
	"net/http"

	"github.com/vaanihq/vaani-backend/internal/store"
)

// HealthHandler reports initialization state without touching anything.
// The firebase/rasa keys are part of the public contract.
type HealthHandler struct {
	store   *store.Store
	rasaURL string
}

func NewHealthHandler(s *store.Store, rasaURL string) *HealthHandler {
	return &HealthHandler{store: s, rasaURL: rasaURL}
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	firebase := "Not initialized"
	if h.store.Connected() {
		firebase = "Initialized"
	}
	rasa := "Not configured"
	if h.rasaURL != "" {
		rasa = "Configured"
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"status":   "OK",
		"firebase": firebase,
		"rasa":     rasa,
	})
}
