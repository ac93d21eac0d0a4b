package speech

import (
	"context"
	"fmt"
	"strings"

	speechapi "cloud.google.com/go/speech/apiv1"
	speechpb "cloud.google.com/go/speech/apiv1/speechpb"
)

// STT is the speech-to-text client.
type STT struct {
	client *speechapi.Client
}

// NewSTT creates a Google Cloud Speech client. It relies on Application
// Default Credentials for authentication.
func NewSTT(ctx context.Context) (*STT, error) {
	client, err := speechapi.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create speech client: %w", err)
	}
	return &STT{client: client}, nil
}

// Close cleans up the speech client connection.
func (s *STT) Close() {
	if s.client != nil {
		s.client.Close()
	}
}

// Recognize transcribes a 16 kHz linear PCM recording. Each result's first
// alternative is kept and results are joined with newlines.
func (s *STT) Recognize(ctx context.Context, audio []byte, languageCode string) (string, error) {
	resp, err := s.client.Recognize(ctx, &speechpb.RecognizeRequest{
		Config: &speechpb.RecognitionConfig{
			Encoding:        speechpb.RecognitionConfig_LINEAR16,
			SampleRateHertz: 16000,
			LanguageCode:    languageCode,
		},
		Audio: &speechpb.RecognitionAudio{
			AudioSource: &speechpb.RecognitionAudio_Content{Content: audio},
		},
	})
	if err != nil {
		return "", fmt.Errorf("recognize: %w", err)
	}

	var lines []string
	for _, result := range resp.Results {
		if len(result.Alternatives) > 0 {
			lines = append(lines, result.Alternatives[0].Transcript)
		}
	}
	return strings.Join(lines, "\n"), nil
}
