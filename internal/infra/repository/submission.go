package repository

import (
	"context"

	domsub "studio-ops/internal/domain/submission"
	"studio-ops/internal/infra"
	"studio-ops/internal/infra/db"
	"studio-ops/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type SubmissionRepository struct {
	db db.DBTX
}

func NewSubmissionRepository(dbtx db.DBTX) *SubmissionRepository {
	return &SubmissionRepository{db: dbtx}
}

func (r *SubmissionRepository) Create(ctx context.Context, s *domsub.Submission) (uuid.UUID, error) {
	_, err := r.db.Exec(ctx, `
		INSERT INTO submissions (
			id, client_id, title, image_count, status,
			received_at, credit_override
		) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		s.ID(), s.ClientID(), s.Title(), s.ImageCount(), s.Status().String(),
		s.FirstEnteredAt(domsub.StatusReceived), s.CreditOverride(),
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return uuid.Nil, infra.WrapRepoErr("client does not exist", err, infra.KindForeignKeyViolated)
		}
		return uuid.Nil, infra.WrapRepoErr("failed to create submission", err)
	}
	return s.ID(), nil
}

func (r *SubmissionRepository) Update(ctx context.Context, s *domsub.Submission) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE submissions
		SET status = $2,
		    in_progress_at = $3,
		    ready_for_review_at = $4,
		    changes_requested_at = $5,
		    completed_at = $6,
		    edit_count = $7,
		    canceled_at = $8,
		    updated_at = now()
		WHERE id = $1`,
		s.ID(), s.Status().String(),
		pgconv.TimePtrToPgtype(s.FirstEnteredAt(domsub.StatusInProgress)),
		pgconv.TimePtrToPgtype(s.FirstEnteredAt(domsub.StatusReadyForReview)),
		pgconv.TimePtrToPgtype(s.FirstEnteredAt(domsub.StatusChangesRequested)),
		pgconv.TimePtrToPgtype(s.FirstEnteredAt(domsub.StatusCompleted)),
		s.EditCount(),
		pgconv.TimePtrToPgtype(s.CanceledAt()),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update submission", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("submission not found", nil, infra.KindNotFound)
	}
	return nil
}
