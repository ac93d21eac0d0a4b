package testutil

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/vaanihq/vaani-backend/internal/models"
)

// MockSubmissionStore is a thread-safe in-memory implementation of
// store.SubmissionStore for testing. Like the real store it assigns ids
// and the submittedAt timestamp on insert.
type MockSubmissionStore struct {
	mu sync.Mutex

	Docs []models.Submission

	InsertErr error
	ListErr   error

	InsertCalls int
	ListCalls   int
}

func NewMockSubmissionStore() *MockSubmissionStore {
	return &MockSubmissionStore{Docs: make([]models.Submission, 0)}
}

func (m *MockSubmissionStore) Insert(_ context.Context, doc map[string]any) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.InsertCalls++
	if m.InsertErr != nil {
		return "", m.InsertErr
	}

	stored := make(map[string]any, len(doc)+1)
	for k, v := range doc {
		stored[k] = v
	}
	stored["submittedAt"] = time.Now().UTC()

	id := fmt.Sprintf("sub-%d", len(m.Docs)+1)
	m.Docs = append(m.Docs, models.Submission{ID: id, Fields: stored})
	return id, nil
}

func (m *MockSubmissionStore) List(_ context.Context, offset, limit int) ([]models.Submission, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ListCalls++
	if m.ListErr != nil {
		return nil, 0, m.ListErr
	}

	total := len(m.Docs)
	if offset >= total {
		return []models.Submission{}, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}

	// Newest first, matching the repository's descending order.
	window := make([]models.Submission, 0, end-offset)
	for i := total - 1 - offset; i >= total-end; i-- {
		window = append(window, m.Docs[i])
	}
	return window, total, nil
}
