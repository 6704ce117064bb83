package components

import (
	"studio-ops/internal/infra/db"
	"studio-ops/internal/infra/readstore"
	"studio-ops/internal/infra/repository"
	"studio-ops/internal/infra/uow"
	"studio-ops/internal/pkg/config"
	"studio-ops/internal/usecase"
	"studio-ops/internal/usecase/queries"
	"studio-ops/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	fx.Provide(
		NewDBTX,
		NewUnitOfWork,
		fx.Annotate(
			repository.NewUserRepository,
			fx.As(new(usecase.UserRepository)),
		),
		fx.Annotate(
			readstore.NewPackageReadStore,
			fx.As(new(queries.PackageViewRepo)),
		),
		fx.Annotate(
			readstore.NewClientReadStore,
			fx.As(new(queries.ClientViewRepo)),
		),
		fx.Annotate(
			readstore.NewAssignmentReadStore,
			fx.As(new(queries.AssignmentViewRepo)),
		),
		fx.Annotate(
			readstore.NewCreditStateReadStore,
			fx.As(new(queries.CreditStateViewRepo)),
		),
		fx.Annotate(
			readstore.NewSubmissionReadStore,
			fx.As(new(queries.SubmissionViewRepo)),
		),
	),
)

func NewDBTX(pool *pgxpool.Pool) db.DBTX {
	return pool
}

func NewUnitOfWork(pool *pgxpool.Pool, cfg config.Config) shared.UnitOfWork {
	return uow.NewPostgresUoW(pool, cfg.Ledger.ConflictRetries)
}
