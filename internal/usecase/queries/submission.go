package queries

import (
	"context"

	"github.com/google/uuid"
)

type SubmissionQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*SubmissionView, error)
	ListByClient(ctx context.Context, clientID uuid.UUID, limit int) ([]*SubmissionListItem, error)
}

type SubmissionViewRepo interface {
	FindByID(ctx context.Context, id uuid.UUID) (*SubmissionView, error)
	FindByClient(ctx context.Context, clientID uuid.UUID, limit int32) ([]*SubmissionListItem, error)
}

type submissionQueriesImpl struct {
	repo SubmissionViewRepo
}

func NewSubmissionQueries(repo SubmissionViewRepo) SubmissionQueries {
	return &submissionQueriesImpl{repo: repo}
}

func (q *submissionQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*SubmissionView, error) {
	return q.repo.FindByID(ctx, id)
}

func (q *submissionQueriesImpl) ListByClient(ctx context.Context, clientID uuid.UUID, limit int) ([]*SubmissionListItem, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	// #nosec G115 -- limit clamped above
	return q.repo.FindByClient(ctx, clientID, int32(limit))
}
