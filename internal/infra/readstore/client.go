package readstore

import (
	"context"

	"studio-ops/internal/infra"
	"studio-ops/internal/infra/db"
	"studio-ops/internal/pkg/pgconv"
	"studio-ops/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type ClientReadStore struct {
	db db.DBTX
}

func NewClientReadStore(dbtx db.DBTX) *ClientReadStore {
	return &ClientReadStore{db: dbtx}
}

func (r *ClientReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.ClientView, error) {
	var (
		v         queries.ClientView
		createdAt pgtype.Timestamptz
	)
	err := r.db.QueryRow(ctx, `
		SELECT id, name, email, created_at FROM clients WHERE id = $1`,
		id,
	).Scan(&v.ID, &v.Name, &v.Email, &createdAt)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("client not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find client by ID", err)
	}
	v.CreatedAt = pgconv.TimeFromPgtype(createdAt)
	return &v, nil
}
