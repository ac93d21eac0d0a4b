package service

import (
	"context"
	"regexp"

	"github.com/vaanihq/vaani-backend/internal/models"
	"github.com/vaanihq/vaani-backend/internal/store"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

const (
	defaultPage  = 1
	defaultLimit = 10
)

type FormService struct {
	subs store.SubmissionStore
}

func NewFormService(subs store.SubmissionStore) *FormService {
	return &FormService{subs: subs}
}

// Submit validates a signup payload, attaches the caller's address and
// user agent, and persists it. Arbitrary extra fields are stored as sent;
// duplicate submissions create duplicate documents.
func (s *FormService) Submit(ctx context.Context, fields map[string]any, ip, userAgent string) (string, error) {
	username, _ := fields["username"].(string)
	email, _ := fields["email"].(string)
	password, _ := fields["password"].(string)
	if username == "" || email == "" || password == "" {
		return "", newError(KindValidation, "Missing required fields: username, email, password", nil)
	}
	if !emailPattern.MatchString(email) {
		return "", newError(KindValidation, "Invalid email format", nil)
	}

	doc := make(map[string]any, len(fields)+2)
	for k, v := range fields {
		doc[k] = v
	}
	doc["ipAddress"] = ip
	doc["userAgent"] = userAgent

	id, err := s.subs.Insert(ctx, doc)
	if err != nil {
		return "", newError(KindUpstream, err.Error(), err)
	}
	return id, nil
}

// List returns one page of submissions, newest first. page below 1 is
// treated as 1 and limit below 1 as the default of 10, so a limit of 0
// can never blow up the total-pages calculation.
func (s *FormService) List(ctx context.Context, page, limit int) ([]models.Submission, models.Pagination, error) {
	if page < 1 {
		page = defaultPage
	}
	if limit < 1 {
		limit = defaultLimit
	}
	offset := (page - 1) * limit

	subs, total, err := s.subs.List(ctx, offset, limit)
	if err != nil {
		return nil, models.Pagination{}, newError(KindUpstream, err.Error(), err)
	}

	return subs, models.Pagination{
		TotalCount:  total,
		CurrentPage: page,
		TotalPages:  (total + limit - 1) / limit,
		Limit:       limit,
	}, nil
}
