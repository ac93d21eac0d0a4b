package handler

import (
	"log"
	"net"
	"net/http"
	"strconv"

	"github.com/vaanihq/vaani-backend/internal/service"
)

type FormHandler struct {
	svc *service.FormService
}

func NewFormHandler(svc *service.FormService) *FormHandler {
	return &FormHandler{svc: svc}
}

// Submit handles POST /submit-form.
func (h *FormHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var fields map[string]any
	if err := readJSON(r, &fields); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	id, err := h.svc.Submit(r.Context(), fields, clientIP(r), r.UserAgent())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	log.Printf("Form submitted with ID: %s", id)

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"id":      id,
		"message": "Form submitted successfully",
	})
}

// List handles GET /form-submissions.
func (h *FormHandler) List(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	subs, pagination, err := h.svc.List(r.Context(), page, limit)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":     true,
		"submissions": subs,
		"pagination":  pagination,
	})
}

// clientIP trusts RemoteAddr, which the RealIP middleware has already
// rewritten from X-Forwarded-For when present.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
