package store

import (
	"context"

	"github.com/vaanihq/vaani-backend/internal/models"
)

// SubmissionStore is the persistence surface the form service depends on.
// Implemented by repository.SubmissionRepo; mocked in internal/testutil.
type SubmissionStore interface {
	// Insert writes one submission document and returns the store-assigned id.
	Insert(ctx context.Context, doc map[string]any) (string, error)
	// List returns a window of submissions ordered by submission time
	// descending, plus the total count across the collection.
	List(ctx context.Context, offset, limit int) ([]models.Submission, int, error)
}
