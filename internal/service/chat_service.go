package service

import (
	"context"
	"encoding/base64"
	"log"
	"strings"

	"github.com/vaanihq/vaani-backend/internal/rasa"
	"github.com/vaanihq/vaani-backend/internal/speech"
)

// VoiceSender is the fixed sender id for transcribed voice messages, so
// Rasa keeps a single conversation per deployment channel.
const VoiceSender = "voice-user"

const defaultSender = "default"

// Dialogue is the conversational engine the chat endpoints relay to.
type Dialogue interface {
	SendMessage(ctx context.Context, sender, message string) ([]rasa.BotMessage, error)
}

// Recognizer converts spoken audio to text.
type Recognizer interface {
	Recognize(ctx context.Context, audio []byte, languageCode string) (string, error)
}

// Synthesizer converts text to spoken audio.
type Synthesizer interface {
	Synthesize(ctx context.Context, text, languageCode string) ([]byte, error)
}

type ChatResult struct {
	Responses []rasa.BotMessage
	Audio     *string
}

type VoiceResult struct {
	TranscribedText string
	Responses       []rasa.BotMessage
	Audio           *string
}

// ChatService orchestrates the dialogue engine and the speech clients.
// Recognizer and Synthesizer may be nil when the cloud clients failed to
// initialize at startup; Chat degrades to text-only, VoiceChat refuses.
type ChatService struct {
	bot Dialogue
	stt Recognizer
	tts Synthesizer
}

func NewChatService(bot Dialogue, stt Recognizer, tts Synthesizer) *ChatService {
	return &ChatService{bot: bot, stt: stt, tts: tts}
}

// Chat relays one text message and optionally synthesizes the reply.
func (s *ChatService) Chat(ctx context.Context, message, language, sender string, includeAudio bool) (*ChatResult, error) {
	if message == "" {
		return nil, newError(KindValidation, "Message is required", nil)
	}
	if sender == "" {
		sender = defaultSender
	}

	responses, err := s.bot.SendMessage(ctx, sender, message)
	if err != nil {
		return nil, newError(KindUpstream, err.Error(), err)
	}

	result := &ChatResult{Responses: responses}
	if includeAudio {
		result.Audio = s.synthesize(ctx, responses, language)
	}
	return result, nil
}

// VoiceChat transcribes a recording, relays the transcript, and
// synthesizes the reply. Recognition problems are fatal; synthesis
// problems are not.
func (s *ChatService) VoiceChat(ctx context.Context, audio []byte, language string) (*VoiceResult, error) {
	if s.stt == nil {
		return nil, newError(KindUnavailable, "Speech-to-text service not available", nil)
	}

	text, err := s.stt.Recognize(ctx, audio, speech.LanguageCode(language))
	if err != nil {
		log.Printf("Speech-to-text conversion failed: %v", err)
		return nil, newError(KindUpstream, "Speech-to-text conversion failed", err)
	}
	log.Printf("Transcribed text: %s", text)

	responses, err := s.bot.SendMessage(ctx, VoiceSender, text)
	if err != nil {
		return nil, newError(KindUpstream, err.Error(), err)
	}

	return &VoiceResult{
		TranscribedText: text,
		Responses:       responses,
		Audio:           s.synthesize(ctx, responses, language),
	}, nil
}

// synthesize renders the joined fragment texts as base64 MP3 audio.
// Failures are logged and swallowed; a missing synthesizer or a broken
// synthesis never fails the request.
func (s *ChatService) synthesize(ctx context.Context, responses []rasa.BotMessage, language string) *string {
	if s.tts == nil {
		return nil
	}

	parts := make([]string, 0, len(responses))
	for _, r := range responses {
		if t := r.Text(); t != "" {
			parts = append(parts, t)
		}
	}
	text := strings.Join(parts, " ")

	audio, err := s.tts.Synthesize(ctx, text, speech.LanguageCode(language))
	if err != nil {
		log.Printf("Text-to-speech conversion failed: %v", err)
		return nil
	}
	encoded := base64.StdEncoding.EncodeToString(audio)
	return &encoded
}
