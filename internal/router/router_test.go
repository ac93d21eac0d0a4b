package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vaanihq/vaani-backend/internal/handler"
	"github.com/vaanihq/vaani-backend/internal/rasa"
	"github.com/vaanihq/vaani-backend/internal/service"
	"github.com/vaanihq/vaani-backend/internal/store"
	"github.com/vaanihq/vaani-backend/internal/testutil"
)

func setup(t *testing.T, rasaURL string) http.Handler {
	t.Helper()
	st := store.New("", "")
	formH := handler.NewFormHandler(service.NewFormService(testutil.NewMockSubmissionStore()))
	chatH := handler.NewChatHandler(service.NewChatService(rasa.NewClient(rasaURL), nil, nil), t.TempDir())
	healthH := handler.NewHealthHandler(st, rasaURL)
	return New(formH, chatH, healthH)
}

func TestHealthEndpoint(t *testing.T) {
	r := setup(t, "http://localhost:5005")

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]string
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	require.Equal(t, "OK", body["status"])
	require.Equal(t, "Not initialized", body["firebase"])
	require.Equal(t, "Configured", body["rasa"])
}

func TestSubmitFormRoute(t *testing.T) {
	r := setup(t, "http://localhost:5005")

	req := httptest.NewRequest(http.MethodPost, "/submit-form",
		strings.NewReader(`{"username":"a","email":"a@b.com","password":"p"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	require.Equal(t, true, body["success"])
	require.NotEmpty(t, body["id"])
}

func TestChatbotRouteEndToEnd(t *testing.T) {
	engine := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/webhooks/rest/webhook", r.URL.Path)
		w.Write([]byte(`[{"recipient_id":"default","text":"hello"}]`))
	}))
	defer engine.Close()

	r := setup(t, engine.URL)

	req := httptest.NewRequest(http.MethodPost, "/api/chatbot", strings.NewReader(`{"message":"hi"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Success   bool             `json:"success"`
		Responses []map[string]any `json:"responses"`
		Audio     *string          `json:"audio"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	require.True(t, body.Success)
	require.Len(t, body.Responses, 1)
	require.Equal(t, "hello", body.Responses[0]["text"])
	require.Nil(t, body.Audio)
}

func TestCORSPreflight(t *testing.T) {
	r := setup(t, "http://localhost:5005")

	req := httptest.NewRequest(http.MethodOptions, "/api/chatbot", nil)
	req.Header.Set("Origin", "https://example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "Content-Type")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestJSONBodyLimit(t *testing.T) {
	r := setup(t, "http://localhost:5005")

	huge := strings.Repeat("x", 10<<20+1)
	req := httptest.NewRequest(http.MethodPost, "/submit-form",
		strings.NewReader(`{"username":"a","email":"a@b.com","password":"`+huge+`"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusBadRequest, w.Code)
}
