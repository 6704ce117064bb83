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

type PackageReadStore struct {
	db db.DBTX
}

func NewPackageReadStore(dbtx db.DBTX) *PackageReadStore {
	return &PackageReadStore{db: dbtx}
}

const packageColumns = `
	id, name, granted_servings, granted_images, price_cents, active, created_at, updated_at`

func (r *PackageReadStore) FindAll(ctx context.Context, includeInactive bool) ([]*queries.PackageView, error) {
	sql := `SELECT` + packageColumns + ` FROM package_templates`
	if !includeInactive {
		sql += ` WHERE active`
	}
	sql += ` ORDER BY price_cents, name`

	rows, err := r.db.Query(ctx, sql)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list packages", err)
	}
	defer rows.Close()

	var result []*queries.PackageView
	for rows.Next() {
		v, err := scanPackageView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan package", err)
		}
		result = append(result, v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to list packages", err)
	}
	return result, nil
}

func (r *PackageReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.PackageView, error) {
	row := r.db.QueryRow(ctx, `SELECT`+packageColumns+` FROM package_templates WHERE id = $1`, id)
	v, err := scanPackageView(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("package not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find package by ID", err)
	}
	return v, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPackageView(row rowScanner) (*queries.PackageView, error) {
	var (
		v             queries.PackageView
		grantedImages pgtype.Int4
		createdAt     pgtype.Timestamptz
		updatedAt     pgtype.Timestamptz
	)
	if err := row.Scan(
		&v.ID, &v.Name, &v.GrantedServings, &grantedImages,
		&v.PriceCents, &v.Active, &createdAt, &updatedAt,
	); err != nil {
		return nil, err
	}
	if grantedImages.Valid {
		v.GrantedImages = &grantedImages.Int32
	}
	v.CreatedAt = pgconv.TimeFromPgtype(createdAt)
	v.UpdatedAt = pgconv.TimeFromPgtype(updatedAt)
	return &v, nil
}
