package components

import (
	"studio-ops/internal/pkg/clock"
	"studio-ops/internal/pkg/config"
	"studio-ops/internal/usecase"
	"studio-ops/internal/usecase/commands"
	"studio-ops/internal/usecase/queries"
	"studio-ops/internal/usecase/shared"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	fx.Provide(
		clock.NewRealClock,
		usecase.NewAuthUseCase,
		usecase.NewTokenValidator,
		commands.NewAssignmentUseCase,
		NewSubmissionCommands,
		queries.NewPackageQueries,
		queries.NewCreditQueries,
		queries.NewSubmissionQueries,
	),
)

func NewSubmissionCommands(uow shared.UnitOfWork, cfg config.Config, clk clock.Clock) commands.SubmissionCommands {
	return commands.NewSubmissionUseCase(uow, cfg.Ledger, clk)
}
