package repository

import (
	"context"
	"time"

	"studio-ops/internal/domain/credit"
	"studio-ops/internal/infra"
	"studio-ops/internal/infra/db"
	"studio-ops/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type AssignmentRepository struct {
	db db.DBTX
}

func NewAssignmentRepository(dbtx db.DBTX) *AssignmentRepository {
	return &AssignmentRepository{db: dbtx}
}

func (r *AssignmentRepository) Supersede(ctx context.Context, clientID uuid.UUID, at time.Time) error {
	_, err := r.db.Exec(ctx, `
		UPDATE credit_assignments
		SET superseded_at = $2
		WHERE client_id = $1 AND superseded_at IS NULL`,
		clientID, at,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to supersede assignment", err)
	}
	return nil
}

func (r *AssignmentRepository) Create(ctx context.Context, a *credit.Assignment) (uuid.UUID, error) {
	triple := a.Triple()
	_, err := r.db.Exec(ctx, `
		INSERT INTO credit_assignments (
			id, client_id, package_template_id,
			granted_servings, consumed_at_assignment, remaining_servings,
			payment_status, expires_at, notes
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		a.ID(), a.ClientID(), pgconv.UUIDPtrToPgtype(a.PackageTemplateID()),
		pgconv.IntPtrToPgtype(triple.Granted), triple.ConsumedAtAssignment, triple.Remaining,
		a.PaymentStatus().String(), pgconv.TimePtrToPgtype(a.ExpiresAt()), a.Notes(),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return uuid.Nil, infra.WrapRepoErr("active assignment already exists", err, infra.KindDuplicateKey)
		}
		if isForeignKeyViolation(err) {
			return uuid.Nil, infra.WrapRepoErr("client or package does not exist", err, infra.KindForeignKeyViolated)
		}
		return uuid.Nil, infra.WrapRepoErr("failed to create assignment", err)
	}
	return a.ID(), nil
}
