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

type IdempotencyReadStore struct {
	db db.DBTX
}

func NewIdempotencyReadStore(dbtx db.DBTX) *IdempotencyReadStore {
	return &IdempotencyReadStore{db: dbtx}
}

func (r *IdempotencyReadStore) Get(ctx context.Context, key, userID uuid.UUID) (*queries.IdempotencyKeyView, error) {
	var (
		v                  queries.IdempotencyKeyView
		responseBodyHash   pgtype.Text
		resultSubmissionID pgtype.UUID
		expiresAt          pgtype.Timestamptz
		createdAt          pgtype.Timestamptz
		updatedAt          pgtype.Timestamptz
	)
	err := r.db.QueryRow(ctx, `
		SELECT key, user_id, endpoint, request_hash, response_body_hash,
		       status, result_submission_id, expires_at, created_at, updated_at
		FROM idempotency_keys
		WHERE key = $1 AND user_id = $2`,
		key, userID,
	).Scan(&v.Key, &v.UserID, &v.Endpoint, &v.RequestHash, &responseBodyHash,
		&v.Status, &resultSubmissionID, &expiresAt, &createdAt, &updatedAt)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("idempotency key not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find idempotency key", err)
	}
	v.ResponseBodyHash = pgconv.StringPtrFromPgtype(responseBodyHash)
	v.ResultSubmissionID = pgconv.UUIDPtrFromPgtype(resultSubmissionID)
	v.ExpiresAt = pgconv.TimeFromPgtype(expiresAt)
	v.CreatedAt = pgconv.TimeFromPgtype(createdAt)
	v.UpdatedAt = pgconv.TimeFromPgtype(updatedAt)
	return &v, nil
}
