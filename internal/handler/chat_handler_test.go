package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vaanihq/vaani-backend/internal/rasa"
	"github.com/vaanihq/vaani-backend/internal/service"
)

type fakeDialogue struct {
	responses []rasa.BotMessage
	err       error
	sender    string
	message   string
}

func (f *fakeDialogue) SendMessage(_ context.Context, sender, message string) ([]rasa.BotMessage, error) {
	f.sender = sender
	f.message = message
	return f.responses, f.err
}

type fakeRecognizer struct {
	text string
	err  error
}

func (f *fakeRecognizer) Recognize(_ context.Context, _ []byte, _ string) (string, error) {
	return f.text, f.err
}

func newChatHandler(t *testing.T, bot service.Dialogue, stt service.Recognizer, tts service.Synthesizer) (*ChatHandler, string) {
	t.Helper()
	dir := t.TempDir()
	return NewChatHandler(service.NewChatService(bot, stt, tts), dir), dir
}

func requireEmptyDir(t *testing.T, dir string) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Empty(t, entries, "upload dir must not retain temp files")
}

func TestChatbot(t *testing.T) {
	bot := &fakeDialogue{responses: []rasa.BotMessage{{"text": "hello"}}}
	h, _ := newChatHandler(t, bot, nil, nil)

	w := postJSON(t, h.Chat, "/api/chatbot", `{"message":"hi"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var body chatResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	require.True(t, body.Success)
	require.Equal(t, []rasa.BotMessage{{"text": "hello"}}, body.Responses)
	require.Nil(t, body.Audio)
	require.Equal(t, "default", bot.sender)
	require.Equal(t, "hi", bot.message)
}

func TestChatbotAudioNullInJSON(t *testing.T) {
	h, _ := newChatHandler(t, &fakeDialogue{responses: []rasa.BotMessage{{"text": "hello"}}}, nil, nil)

	w := postJSON(t, h.Chat, "/api/chatbot", `{"message":"hi","includeAudio":true}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"audio":null`)
}

func TestChatbotMissingMessage(t *testing.T) {
	h, _ := newChatHandler(t, &fakeDialogue{}, nil, nil)

	w := postJSON(t, h.Chat, "/api/chatbot", `{"language":"ta"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	body := decode(t, w)
	require.Equal(t, false, body["success"])
	require.Equal(t, "Message is required", body["error"])
}

func TestChatbotEngineUnreachable(t *testing.T) {
	h, _ := newChatHandler(t, &fakeDialogue{err: errors.New("connection refused")}, nil, nil)

	w := postJSON(t, h.Chat, "/api/chatbot", `{"message":"hi"}`)
	require.Equal(t, http.StatusInternalServerError, w.Code)
	require.Equal(t, false, decode(t, w)["success"])
}

func voiceRequest(t *testing.T, withFile bool, language string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if withFile {
		part, err := mw.CreateFormFile("audio", "clip.raw")
		require.NoError(t, err)
		_, err = part.Write([]byte("pcm-bytes"))
		require.NoError(t, err)
	}
	if language != "" {
		require.NoError(t, mw.WriteField("language", language))
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/voice-chat", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestVoiceChat(t *testing.T) {
	bot := &fakeDialogue{responses: []rasa.BotMessage{{"text": "hello"}}}
	h, dir := newChatHandler(t, bot, &fakeRecognizer{text: "vanakkam"}, nil)

	w := httptest.NewRecorder()
	h.Voice(w, voiceRequest(t, true, "tamil"))
	require.Equal(t, http.StatusOK, w.Code)

	var body voiceResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	require.True(t, body.Success)
	require.Equal(t, "vanakkam", body.TranscribedText)
	require.Equal(t, []rasa.BotMessage{{"text": "hello"}}, body.Responses)
	require.Nil(t, body.Audio)
	require.Equal(t, service.VoiceSender, bot.sender)
	require.Equal(t, "vanakkam", bot.message)
	requireEmptyDir(t, dir)
}

func TestVoiceChatMissingFile(t *testing.T) {
	h, dir := newChatHandler(t, &fakeDialogue{}, &fakeRecognizer{}, nil)

	w := httptest.NewRecorder()
	h.Voice(w, voiceRequest(t, false, "en"))
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "Audio file is required", decode(t, w)["error"])
	requireEmptyDir(t, dir)
}

func TestVoiceChatNotMultipart(t *testing.T) {
	h, dir := newChatHandler(t, &fakeDialogue{}, &fakeRecognizer{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/voice-chat", strings.NewReader(`{"language":"en"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.Voice(w, req)
	require.Equal(t, http.StatusBadRequest, w.Code)
	requireEmptyDir(t, dir)
}

func TestVoiceChatRecognitionFailureCleansUp(t *testing.T) {
	h, dir := newChatHandler(t, &fakeDialogue{}, &fakeRecognizer{err: errors.New("bad audio")}, nil)

	w := httptest.NewRecorder()
	h.Voice(w, voiceRequest(t, true, "en"))
	require.Equal(t, http.StatusInternalServerError, w.Code)
	require.Equal(t, "Speech-to-text conversion failed", decode(t, w)["error"])
	requireEmptyDir(t, dir)
}

func TestVoiceChatNoRecognizerCleansUp(t *testing.T) {
	h, dir := newChatHandler(t, &fakeDialogue{}, nil, nil)

	w := httptest.NewRecorder()
	h.Voice(w, voiceRequest(t, true, "en"))
	require.Equal(t, http.StatusInternalServerError, w.Code)
	require.Equal(t, "Speech-to-text service not available", decode(t, w)["error"])
	requireEmptyDir(t, dir)
}

func TestRemoveIfExistsTolerateDoubleDelete(t *testing.T) {
	path := t.TempDir() + "/upload"
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o600))

	removeIfExists(path)
	require.NoFileExists(t, path)
	removeIfExists(path) // second delete is a no-op
}
