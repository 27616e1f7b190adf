package components

import (
	"casaraiz-backend/internal/infra/db"
	"casaraiz-backend/internal/infra/readstore"
	redisinfra "casaraiz-backend/internal/infra/redis"
	"casaraiz-backend/internal/infra/uow"
	"casaraiz-backend/internal/pkg/config"
	"casaraiz-backend/internal/usecase/queries"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	baseOption,
	readstoreModule,
	uowModule,
)

var baseOption = fx.Provide(
	NewDBTX,
)

var readstoreModule = fx.Module("persistence/readstore",
	fx.Provide(
		// Availability reads go through a short-TTL advisory cache.
		readstore.NewAvailabilityReadStore,
		func(rdb *redis.Client, store *readstore.AvailabilityReadStore, cfg config.Config) queries.AvailabilityViewRepo {
			return redisinfra.NewCachedAvailabilityRepo(rdb, store, cfg.Redis.CacheTTL)
		},
		fx.Annotate(
			readstore.NewRegistrationReadStore,
			fx.As(new(queries.RegistrationViewRepo)),
		),
		fx.Annotate(
			readstore.NewPaymentReadStore,
			fx.As(new(queries.PaymentViewRepo)),
		),
		fx.Annotate(
			readstore.NewWaitlistReadStore,
			fx.As(new(queries.WaitlistViewRepo)),
		),
	),
)

var uowModule = fx.Module("persistence/uow",
	fx.Provide(
		uow.NewPostgresUoW,
	),
)

func NewDBTX(pool *pgxpool.Pool) db.DBTX {
	return pool
}
