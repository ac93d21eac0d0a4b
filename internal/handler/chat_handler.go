package handler

import (
	"errors"
	"io"
	"io/fs"
	"log"
	"net/http"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/vaanihq/vaani-backend/internal/rasa"
	"github.com/vaanihq/vaani-backend/internal/service"
)

// maxUploadMemory is the in-memory threshold for multipart parsing;
// larger uploads spill to disk before we copy them to the upload dir.
const maxUploadMemory = 12 << 20

type ChatHandler struct {
	svc       *service.ChatService
	uploadDir string
}

func NewChatHandler(svc *service.ChatService, uploadDir string) *ChatHandler {
	return &ChatHandler{svc: svc, uploadDir: uploadDir}
}

type chatRequest struct {
	Message      string `json:"message"`
	Language     string `json:"language"`
	Sender       string `json:"sender"`
	IncludeAudio bool   `json:"includeAudio"`
}

type chatResponse struct {
	Success   bool              `json:"success"`
	Responses []rasa.BotMessage `json:"responses"`
	Audio     *string           `json:"audio"`
}

type voiceResponse struct {
	Success         bool              `json:"success"`
	TranscribedText string            `json:"transcribedText"`
	Responses       []rasa.BotMessage `json:"responses"`
	Audio           *string           `json:"audio"`
}

// Chat handles POST /api/chatbot.
func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Language == "" {
		req.Language = "en"
	}
	log.Printf("Received chat message in %s: %s", req.Language, req.Message)

	result, err := h.svc.Chat(r.Context(), req.Message, req.Language, req.Sender, req.IncludeAudio)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, chatResponse{
		Success:   true,
		Responses: result.Responses,
		Audio:     result.Audio,
	})
}

// Voice handles POST /api/voice-chat. The uploaded recording lives in the
// upload dir only for the duration of the request; every exit path below
// runs through the deferred remove, and eager removes along the way are
// tolerated by the existence check.
func (h *ChatHandler) Voice(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		writeError(w, http.StatusBadRequest, "Audio file is required")
		return
	}
	file, _, err := r.FormFile("audio")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Audio file is required")
		return
	}
	defer file.Close()

	language := r.FormValue("language")
	if language == "" {
		language = "en"
	}
	log.Printf("Received voice message in %s", language)

	path, err := h.saveUpload(file)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	defer removeIfExists(path)

	audio, err := os.ReadFile(path)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	removeIfExists(path)

	result, err := h.svc.VoiceChat(r.Context(), audio, language)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, voiceResponse{
		Success:         true,
		TranscribedText: result.TranscribedText,
		Responses:       result.Responses,
		Audio:           result.Audio,
	})
}

func (h *ChatHandler) saveUpload(src io.Reader) (string, error) {
	if err := os.MkdirAll(h.uploadDir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(h.uploadDir, uuid.NewString())
	dst, err := os.Create(path)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		removeIfExists(path)
		return "", err
	}
	return path, dst.Close()
}

// removeIfExists deletes the temp upload, tolerating an earlier delete on
// another branch of the same request.
func removeIfExists(path string) {
	if _, err := os.Stat(path); err != nil {
		return
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("Warning: failed to remove upload %s: %v", path, err)
	}
}
