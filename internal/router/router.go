package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/vaanihq/vaani-backend/internal/config"
	"github.com/vaanihq/vaani-backend/internal/handler"
	mw "github.com/vaanihq/vaani-backend/internal/middleware"
)

func New(
	formH *handler.FormHandler,
	chatH *handler.ChatHandler,
	healthH *handler.HealthHandler,
) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimw.RealIP)
	r.Use(mw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
	}))
	r.Use(mw.JSONBodyLimit(config.MaxJSONBody))

	r.Post("/submit-form", formH.Submit)
	r.Get("/form-submissions", formH.List)
	r.Post("/api/chatbot", chatH.Chat)
	r.Post("/api/voice-chat", chatH.Voice)
	r.Get("/health", healthH.Health)

	return r
}
