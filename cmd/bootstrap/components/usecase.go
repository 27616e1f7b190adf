package components

import (
	"casaraiz-backend/internal/pkg/clock"
	"casaraiz-backend/internal/pkg/config"
	"casaraiz-backend/internal/usecase/commands"
	"casaraiz-backend/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseCommandsModule,
	usecaseQueriesModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	func(cfg config.Config) config.MercadoPagoConfig {
		return cfg.MercadoPago
	},
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewCheckoutUseCase,
		commands.NewWebhookUseCase,
		commands.NewRegistrationUseCase,
		commands.NewWaitlistUseCase,
		commands.NewOperatorUseCase,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewAvailabilityQueries,
		queries.NewRegistrationQueries,
		queries.NewPaymentQueries,
		queries.NewWaitlistQueries,
	),
)
