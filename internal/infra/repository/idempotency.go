package repository

import (
	"context"
	"time"

	"studio-ops/internal/infra"
	"studio-ops/internal/infra/db"

	"github.com/google/uuid"
)

type IdempotencyRepository struct {
	db db.DBTX
}

func NewIdempotencyRepository(dbtx db.DBTX) *IdempotencyRepository {
	return &IdempotencyRepository{db: dbtx}
}

// TryInsert claims the key for this user. A concurrent or repeated request
// with the same key inserts zero rows; the caller then reads the existing
// record and decides whether to replay or reject.
func (r *IdempotencyRepository) TryInsert(ctx context.Context, key, userID uuid.UUID, endpoint, requestHash string, expiresAt time.Time) error {
	tag, err := r.db.Exec(ctx, `
		INSERT INTO idempotency_keys (key, user_id, endpoint, request_hash, status, expires_at)
		VALUES ($1, $2, $3, $4, 'processing', $5)
		ON CONFLICT (key, user_id) DO NOTHING`,
		key, userID, endpoint, requestHash, expiresAt,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to insert idempotency key", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("idempotency key already claimed", nil, infra.KindDuplicateKey)
	}
	return nil
}

func (r *IdempotencyRepository) UpdateStatusCompleted(ctx context.Context, key, userID uuid.UUID, resultHash string, submissionID uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE idempotency_keys
		SET status = 'completed',
		    response_body_hash = $3,
		    result_submission_id = $4,
		    updated_at = now()
		WHERE key = $1 AND user_id = $2`,
		key, userID, resultHash, submissionID,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to complete idempotency key", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("idempotency key not found", nil, infra.KindNotFound)
	}
	return nil
}
