package repository

import (
	"context"

	"studio-ops/internal/domain/credit"
	"studio-ops/internal/infra"
	"studio-ops/internal/infra/db"
	"studio-ops/internal/pkg/pgconv"
)

type CreditStateRepository struct {
	db db.DBTX
}

func NewCreditStateRepository(dbtx db.DBTX) *CreditStateRepository {
	return &CreditStateRepository{db: dbtx}
}

func (r *CreditStateRepository) Create(ctx context.Context, s *credit.State) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO client_credit_states (
			client_id, remaining_servings, remaining_images,
			consumed_images, reserved_images, lock_no
		) VALUES ($1, $2, $3, $4, $5, 0)`,
		s.ClientID(), s.RemainingServings(), pgconv.IntPtrToPgtype(s.RemainingImages()),
		s.ConsumedImages(), s.ReservedImages(),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return infra.WrapRepoErr("credit state already exists", err, infra.KindDuplicateKey)
		}
		return infra.WrapRepoErr("failed to create credit state", err)
	}
	return nil
}

// Update commits against the lock_no the aggregate was read with. Zero rows
// affected means another writer got there first; the caller re-reads and
// retries on the conflict kind.
func (r *CreditStateRepository) Update(ctx context.Context, s *credit.State) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE client_credit_states
		SET remaining_servings = $2,
		    remaining_images = $3,
		    consumed_images = $4,
		    reserved_images = $5,
		    lock_no = lock_no + 1,
		    updated_at = now()
		WHERE client_id = $1 AND lock_no = $6`,
		s.ClientID(), s.RemainingServings(), pgconv.IntPtrToPgtype(s.RemainingImages()),
		s.ConsumedImages(), s.ReservedImages(), s.LockNo(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update credit state", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("stale credit state write", nil, infra.KindConflict)
	}
	return nil
}
