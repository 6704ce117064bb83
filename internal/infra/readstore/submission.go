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

type SubmissionReadStore struct {
	db db.DBTX
}

func NewSubmissionReadStore(dbtx db.DBTX) *SubmissionReadStore {
	return &SubmissionReadStore{db: dbtx}
}

func (r *SubmissionReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.SubmissionView, error) {
	row := r.db.QueryRow(ctx, `
		SELECT s.id, s.client_id, c.name, s.title, s.image_count, s.status,
		       s.received_at, s.in_progress_at, s.ready_for_review_at,
		       s.changes_requested_at, s.completed_at,
		       s.edit_count, s.credit_override, s.canceled_at,
		       s.created_at, s.updated_at
		FROM submissions s
		JOIN clients c ON c.id = s.client_id
		WHERE s.id = $1`, id)

	var (
		v                  queries.SubmissionView
		receivedAt         pgtype.Timestamptz
		inProgressAt       pgtype.Timestamptz
		readyForReviewAt   pgtype.Timestamptz
		changesRequestedAt pgtype.Timestamptz
		completedAt        pgtype.Timestamptz
		canceledAt         pgtype.Timestamptz
		createdAt          pgtype.Timestamptz
		updatedAt          pgtype.Timestamptz
	)
	err := row.Scan(
		&v.ID, &v.ClientID, &v.ClientName, &v.Title, &v.ImageCount, &v.Status,
		&receivedAt, &inProgressAt, &readyForReviewAt,
		&changesRequestedAt, &completedAt,
		&v.EditCount, &v.CreditOverride, &canceledAt,
		&createdAt, &updatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("submission not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find submission by ID", err)
	}
	v.ReceivedAt = pgconv.TimeFromPgtype(receivedAt)
	v.InProgressAt = pgconv.TimePtrFromPgtype(inProgressAt)
	v.ReadyForReviewAt = pgconv.TimePtrFromPgtype(readyForReviewAt)
	v.ChangesRequestedAt = pgconv.TimePtrFromPgtype(changesRequestedAt)
	v.CompletedAt = pgconv.TimePtrFromPgtype(completedAt)
	v.CanceledAt = pgconv.TimePtrFromPgtype(canceledAt)
	v.CreatedAt = pgconv.TimeFromPgtype(createdAt)
	v.UpdatedAt = pgconv.TimeFromPgtype(updatedAt)
	return &v, nil
}

func (r *SubmissionReadStore) FindByClient(ctx context.Context, clientID uuid.UUID, limit int32) ([]*queries.SubmissionListItem, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, title, image_count, status, received_at, canceled_at, created_at
		FROM submissions
		WHERE client_id = $1
		ORDER BY created_at DESC
		LIMIT $2`, clientID, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list submissions", err)
	}
	defer rows.Close()

	var result []*queries.SubmissionListItem
	for rows.Next() {
		var (
			item       queries.SubmissionListItem
			receivedAt pgtype.Timestamptz
			canceledAt pgtype.Timestamptz
			createdAt  pgtype.Timestamptz
		)
		if err := rows.Scan(
			&item.ID, &item.Title, &item.ImageCount, &item.Status,
			&receivedAt, &canceledAt, &createdAt,
		); err != nil {
			return nil, infra.WrapRepoErr("failed to scan submission", err)
		}
		item.ReceivedAt = pgconv.TimeFromPgtype(receivedAt)
		item.CanceledAt = pgconv.TimePtrFromPgtype(canceledAt)
		item.CreatedAt = pgconv.TimeFromPgtype(createdAt)
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to list submissions", err)
	}
	return result, nil
}
