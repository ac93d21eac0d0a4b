package speech

import (
	"context"
	"fmt"

	texttospeech "cloud.google.com/go/texttospeech/apiv1"
	texttospeechpb "cloud.google.com/go/texttospeech/apiv1/texttospeechpb"
)

// TTS is the text-to-speech client.
type TTS struct {
	client *texttospeech.Client
}

// NewTTS creates a Google Cloud Text-to-Speech client using Application
// Default Credentials.
func NewTTS(ctx context.Context) (*TTS, error) {
	client, err := texttospeech.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create text-to-speech client: %w", err)
	}
	return &TTS{client: client}, nil
}

// Close cleans up the text-to-speech client connection.
func (t *TTS) Close() {
	if t.client != nil {
		t.client.Close()
	}
}

// Synthesize renders text as MP3 audio in the given locale's voice.
func (t *TTS) Synthesize(ctx context.Context, text, languageCode string) ([]byte, error) {
	resp, err := t.client.SynthesizeSpeech(ctx, &texttospeechpb.SynthesizeSpeechRequest{
		Input: &texttospeechpb.SynthesisInput{
			InputSource: &texttospeechpb.SynthesisInput_Text{Text: text},
		},
		Voice: &texttospeechpb.VoiceSelectionParams{
			LanguageCode: languageCode,
		},
		AudioConfig: &texttospeechpb.AudioConfig{
			AudioEncoding: texttospeechpb.AudioEncoding_MP3,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("synthesize speech: %w", err)
	}
	return resp.AudioContent, nil
}
