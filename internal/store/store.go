package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"sync"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/option"
)

// requiredFields are the service-account keys that must be present before
// we hand the credentials to the Firestore client.
var requiredFields = []string{
	"type",
	"project_id",
	"private_key_id",
	"private_key",
	"client_email",
	"client_id",
}

// Store owns the single Firestore connection for the process. It is
// constructed once in main and injected into everything that persists
// data; Ensure connects lazily and caches the client on success, so a
// failed attempt is retried on the next request.
type Store struct {
	credFile string
	credJSON string

	mu     sync.Mutex
	client *firestore.Client
}

func New(credFile, credJSON string) *Store {
	return &Store{credFile: credFile, credJSON: credJSON}
}

// Ensure returns the cached Firestore client, connecting first if needed.
// Safe for concurrent use; only one connection attempt runs at a time.
func (s *Store) Ensure(ctx context.Context) (*firestore.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.client != nil {
		return s.client, nil
	}

	raw, err := s.loadCredentials()
	if err != nil {
		return nil, err
	}
	projectID, err := validateServiceAccount(raw)
	if err != nil {
		return nil, err
	}

	client, err := firestore.NewClient(ctx, projectID, option.WithCredentialsJSON(raw))
	if err != nil {
		return nil, fmt.Errorf("connect to Firestore: %w", err)
	}

	s.client = client
	log.Printf("Firebase initialized successfully (project %s)", projectID)
	return s.client, nil
}

// Connected reports whether a connection has been established, for the
// health endpoint. It never triggers a connection attempt.
func (s *Store) Connected() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.client != nil
}

func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.client != nil {
		s.client.Close()
		s.client = nil
	}
}

// loadCredentials reads the service-account JSON from the configured file
// path, falling back to the inline JSON string.
func (s *Store) loadCredentials() ([]byte, error) {
	if s.credFile != "" {
		raw, err := os.ReadFile(s.credFile)
		if err != nil {
			return nil, fmt.Errorf("service account file not found at: %s", s.credFile)
		}
		return raw, nil
	}
	if s.credJSON != "" {
		return []byte(s.credJSON), nil
	}
	return nil, fmt.Errorf("Firebase service account not provided. Set FIREBASE_SERVICE_ACCOUNT_FILE or FIREBASE_SERVICE_ACCOUNT")
}

// validateServiceAccount parses the credentials and checks the identity
// fields Firebase requires, returning the project id on success.
func validateServiceAccount(raw []byte) (string, error) {
	var account map[string]any
	if err := json.Unmarshal(raw, &account); err != nil {
		return "", fmt.Errorf("failed to parse service account JSON: %w", err)
	}
	for _, field := range requiredFields {
		v, ok := account[field].(string)
		if !ok || v == "" {
			return "", fmt.Errorf("service account missing required field: %s", field)
		}
	}
	return account["project_id"].(string), nil
}
