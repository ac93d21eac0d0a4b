package repository

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	firestorepb "cloud.google.com/go/firestore/apiv1/firestorepb"
	"google.golang.org/api/iterator"

	"github.com/vaanihq/vaani-backend/internal/models"
	"github.com/vaanihq/vaani-backend/internal/store"
)

const SubmissionsCollection = "form_submissions"

// SubmissionRepo persists form submissions in Firestore. Every call goes
// through store.Ensure first, so the connection is established lazily and
// a broken configuration surfaces as a per-request error.
type SubmissionRepo struct {
	store *store.Store
}

func NewSubmissionRepo(s *store.Store) *SubmissionRepo {
	return &SubmissionRepo{store: s}
}

// Insert writes one submission. The submission timestamp is assigned by
// the store, so ordering is consistent across app instances.
func (r *SubmissionRepo) Insert(ctx context.Context, doc map[string]any) (string, error) {
	client, err := r.store.Ensure(ctx)
	if err != nil {
		return "", err
	}

	data := make(map[string]any, len(doc)+1)
	for k, v := range doc {
		data[k] = v
	}
	data["submittedAt"] = firestore.ServerTimestamp

	ref, _, err := client.Collection(SubmissionsCollection).Add(ctx, data)
	if err != nil {
		return "", fmt.Errorf("insert submission: %w", err)
	}
	return ref.ID, nil
}

// List returns one page of submissions ordered by submittedAt descending,
// plus the total collection count for pagination metadata.
func (r *SubmissionRepo) List(ctx context.Context, offset, limit int) ([]models.Submission, int, error) {
	client, err := r.store.Ensure(ctx)
	if err != nil {
		return nil, 0, err
	}
	col := client.Collection(SubmissionsCollection)

	total, err := r.count(ctx, col)
	if err != nil {
		return nil, 0, err
	}

	iter := col.OrderBy("submittedAt", firestore.Desc).
		Offset(offset).
		Limit(limit).
		Documents(ctx)
	defer iter.Stop()

	subs := make([]models.Submission, 0, limit)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, 0, fmt.Errorf("list submissions: %w", err)
		}
		subs = append(subs, models.Submission{ID: doc.Ref.ID, Fields: doc.Data()})
	}
	return subs, total, nil
}

func (r *SubmissionRepo) count(ctx context.Context, col *firestore.CollectionRef) (int, error) {
	results, err := col.Query.NewAggregationQuery().WithCount("total").Get(ctx)
	if err != nil {
		return 0, fmt.Errorf("count submissions: %w", err)
	}
	value, ok := results["total"].(*firestorepb.Value)
	if !ok {
		return 0, fmt.Errorf("count submissions: unexpected aggregation result %T", results["total"])
	}
	return int(value.GetIntegerValue()), nil
}
