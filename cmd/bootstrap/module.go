package bootstrap

import (
	"casaraiz-backend/cmd/bootstrap/components"

	"go.uber.org/fx"
)

var Module = fx.Options(
	ConfigModule,
	DBModule,
	RedisModule,
	JWTModule,
	MercadoPagoModule,
	components.PersistenceModule,
	components.UseCaseModule,
	components.HandlerModule,
)
