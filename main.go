package main

import (
	"context"
	"io"
	"log"
	"net/http"
	"os"

	"github.com/vaanihq/vaani-backend/internal/config"
	"github.com/vaanihq/vaani-backend/internal/gelf"
	"github.com/vaanihq/vaani-backend/internal/handler"
	"github.com/vaanihq/vaani-backend/internal/rasa"
	"github.com/vaanihq/vaani-backend/internal/repository"
	"github.com/vaanihq/vaani-backend/internal/router"
	"github.com/vaanihq/vaani-backend/internal/service"
	"github.com/vaanihq/vaani-backend/internal/speech"
	"github.com/vaanihq/vaani-backend/internal/store"
)

func main() {
	cfg := config.Load()
	ctx := context.Background()

	// GELF UDP logging
	if cfg.GelfAddr != "" {
		gelfWriter, err := gelf.New(cfg.GelfAddr)
		if err != nil {
			log.Printf("Warning: GELF init failed: %v", err)
		} else {
			log.SetOutput(io.MultiWriter(os.Stderr, gelfWriter))
			log.Printf("GELF logging: enabled (%s)", cfg.GelfAddr)
		}
	}

	// Firestore. A failed first attempt is not fatal; Ensure retries on
	// the next request that needs the store.
	st := store.New(cfg.CredentialsFile, cfg.CredentialsJSON)
	if _, err := st.Ensure(ctx); err != nil {
		log.Printf("Warning: failed to initialize Firebase: %v", err)
	}
	defer st.Close()

	// Google Cloud speech services, best effort. Handlers degrade when
	// either client is missing.
	var stt service.Recognizer
	if client, err := speech.NewSTT(ctx); err != nil {
		log.Printf("Warning: speech-to-text init failed: %v", err)
	} else {
		stt = client
		defer client.Close()
	}
	var tts service.Synthesizer
	if client, err := speech.NewTTS(ctx); err != nil {
		log.Printf("Warning: text-to-speech init failed: %v", err)
	} else {
		tts = client
		defer client.Close()
	}

	bot := rasa.NewClient(cfg.RasaURL)

	// Repositories and services
	subRepo := repository.NewSubmissionRepo(st)
	formSvc := service.NewFormService(subRepo)
	chatSvc := service.NewChatService(bot, stt, tts)

	// Handlers
	formH := handler.NewFormHandler(formSvc)
	chatH := handler.NewChatHandler(chatSvc, cfg.UploadDir)
	healthH := handler.NewHealthHandler(st, cfg.RasaURL)

	r := router.New(formH, chatH, healthH)

	log.Printf("Server running at http://localhost%s", cfg.HTTPAddr)
	if err := http.ListenAndServe(cfg.HTTPAddr, r); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
