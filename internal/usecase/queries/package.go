package queries

import (
	"context"

	"github.com/google/uuid"
)

type PackageQueries interface {
	List(ctx context.Context, includeInactive bool) ([]*PackageView, error)
	GetByID(ctx context.Context, id uuid.UUID) (*PackageView, error)
}

type PackageViewRepo interface {
	FindAll(ctx context.Context, includeInactive bool) ([]*PackageView, error)
	FindByID(ctx context.Context, id uuid.UUID) (*PackageView, error)
}

type packageQueriesImpl struct {
	repo PackageViewRepo
}

func NewPackageQueries(repo PackageViewRepo) PackageQueries {
	return &packageQueriesImpl{repo: repo}
}

func (q *packageQueriesImpl) List(ctx context.Context, includeInactive bool) ([]*PackageView, error) {
	return q.repo.FindAll(ctx, includeInactive)
}

func (q *packageQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*PackageView, error) {
	return q.repo.FindByID(ctx, id)
}
