package rasa

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// BotMessage is one response fragment from the Rasa REST channel. Rasa
// may attach keys beyond text (image, buttons, custom), so fragments are
// kept as-is and returned to the caller verbatim.
type BotMessage map[string]any

// Text returns the fragment's text, or "" for non-text fragments.
func (m BotMessage) Text() string {
	s, _ := m["text"].(string)
	return s
}

// webhookRequest is the payload shape for the REST input channel.
type webhookRequest struct {
	Sender  string `json:"sender"`
	Message string `json:"message"`
}

// HTTPStatusError captures non-2xx upstream responses.
type HTTPStatusError struct {
	StatusCode int
	URL        string
	Body       string
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("rasa: unexpected status %d from %s: %s", e.StatusCode, e.URL, e.Body)
}

// Client talks to a Rasa server's REST webhook.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

type Option func(*Client)

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SendMessage forwards one user message and returns the ordered response
// fragments. The body must decode as a JSON array of objects; anything
// else is treated as an upstream failure rather than passed through.
func (c *Client) SendMessage(ctx context.Context, sender, message string) ([]BotMessage, error) {
	body, err := json.Marshal(webhookRequest{Sender: sender, Message: message})
	if err != nil {
		return nil, fmt.Errorf("rasa: marshal request: %w", err)
	}

	url := c.baseURL + "/webhooks/rest/webhook"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("rasa: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("rasa: request failed: %w", err)
	}
	defer func() { _ = res.Body.Close() }()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		buf, _ := io.ReadAll(io.LimitReader(res.Body, 4096))
		return nil, &HTTPStatusError{StatusCode: res.StatusCode, URL: url, Body: string(buf)}
	}

	raw, err := io.ReadAll(io.LimitReader(res.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("rasa: read response body: %w", err)
	}

	var messages []BotMessage
	if err := json.Unmarshal(raw, &messages); err != nil {
		return nil, fmt.Errorf("rasa: unexpected response shape: %w", err)
	}
	if messages == nil {
		messages = []BotMessage{}
	}
	return messages, nil
}
