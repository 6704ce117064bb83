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

type AssignmentReadStore struct {
	db db.DBTX
}

func NewAssignmentReadStore(dbtx db.DBTX) *AssignmentReadStore {
	return &AssignmentReadStore{db: dbtx}
}

const assignmentSelect = `
	SELECT a.id, a.client_id, a.package_template_id, p.name,
	       a.granted_servings, a.consumed_at_assignment, a.remaining_servings,
	       a.payment_status, a.expires_at, a.notes, a.superseded_at, a.created_at
	FROM credit_assignments a
	LEFT JOIN package_templates p ON p.id = a.package_template_id`

// FindActiveByClient returns (nil, nil) when the client has no active
// assignment; absence is a normal state on this query path.
func (r *AssignmentReadStore) FindActiveByClient(ctx context.Context, clientID uuid.UUID) (*queries.AssignmentView, error) {
	row := r.db.QueryRow(ctx, assignmentSelect+`
		WHERE a.client_id = $1 AND a.superseded_at IS NULL`, clientID)
	v, err := scanAssignmentView(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, nil
		}
		return nil, infra.WrapRepoErr("failed to find active assignment", err)
	}
	return v, nil
}

func (r *AssignmentReadStore) FindHistoryByClient(ctx context.Context, clientID uuid.UUID) ([]*queries.AssignmentView, error) {
	rows, err := r.db.Query(ctx, assignmentSelect+`
		WHERE a.client_id = $1
		ORDER BY a.created_at DESC`, clientID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list assignment history", err)
	}
	defer rows.Close()

	var result []*queries.AssignmentView
	for rows.Next() {
		v, err := scanAssignmentView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan assignment", err)
		}
		result = append(result, v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to list assignment history", err)
	}
	return result, nil
}

func scanAssignmentView(row rowScanner) (*queries.AssignmentView, error) {
	var (
		v               queries.AssignmentView
		packageID       pgtype.UUID
		packageName     pgtype.Text
		grantedServings pgtype.Int4
		expiresAt       pgtype.Timestamptz
		supersededAt    pgtype.Timestamptz
		createdAt       pgtype.Timestamptz
	)
	if err := row.Scan(
		&v.ID, &v.ClientID, &packageID, &packageName,
		&grantedServings, &v.ConsumedAtAssignment, &v.RemainingServings,
		&v.PaymentStatus, &expiresAt, &v.Notes, &supersededAt, &createdAt,
	); err != nil {
		return nil, err
	}
	v.PackageTemplateID = pgconv.UUIDPtrFromPgtype(packageID)
	v.PackageName = pgconv.StringPtrFromPgtype(packageName)
	if grantedServings.Valid {
		v.GrantedServings = &grantedServings.Int32
	}
	v.ExpiresAt = pgconv.TimePtrFromPgtype(expiresAt)
	v.SupersededAt = pgconv.TimePtrFromPgtype(supersededAt)
	v.CreatedAt = pgconv.TimeFromPgtype(createdAt)
	return &v, nil
}
