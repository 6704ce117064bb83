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

type CreditStateReadStore struct {
	db db.DBTX
}

func NewCreditStateReadStore(dbtx db.DBTX) *CreditStateReadStore {
	return &CreditStateReadStore{db: dbtx}
}

// FindByClient returns (nil, nil) when no state row exists yet; a fresh
// client simply has no balance.
func (r *CreditStateReadStore) FindByClient(ctx context.Context, clientID uuid.UUID) (*queries.CreditStateView, error) {
	var (
		v               queries.CreditStateView
		remainingImages pgtype.Int4
		updatedAt       pgtype.Timestamptz
	)
	err := r.db.QueryRow(ctx, `
		SELECT client_id, remaining_servings, remaining_images,
		       consumed_images, reserved_images, updated_at
		FROM client_credit_states
		WHERE client_id = $1`,
		clientID,
	).Scan(&v.ClientID, &v.RemainingServings, &remainingImages,
		&v.ConsumedImages, &v.ReservedImages, &updatedAt)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, nil
		}
		return nil, infra.WrapRepoErr("failed to find credit state", err)
	}
	if remainingImages.Valid {
		v.RemainingImages = &remainingImages.Int32
	}
	v.UpdatedAt = pgconv.TimeFromPgtype(updatedAt)
	return &v, nil
}

// FindByClientWithLock reads the row together with its lock_no for the
// optimistic write path. Also (nil, nil) when absent.
func (r *CreditStateReadStore) FindByClientWithLock(ctx context.Context, clientID uuid.UUID) (*queries.CreditStateView, int64, error) {
	var (
		v               queries.CreditStateView
		remainingImages pgtype.Int4
		lockNo          int64
		updatedAt       pgtype.Timestamptz
	)
	err := r.db.QueryRow(ctx, `
		SELECT client_id, remaining_servings, remaining_images,
		       consumed_images, reserved_images, lock_no, updated_at
		FROM client_credit_states
		WHERE client_id = $1`,
		clientID,
	).Scan(&v.ClientID, &v.RemainingServings, &remainingImages,
		&v.ConsumedImages, &v.ReservedImages, &lockNo, &updatedAt)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, 0, nil
		}
		return nil, 0, infra.WrapRepoErr("failed to find credit state", err)
	}
	if remainingImages.Valid {
		v.RemainingImages = &remainingImages.Int32
	}
	v.UpdatedAt = pgconv.TimeFromPgtype(updatedAt)
	return &v, lockNo, nil
}
