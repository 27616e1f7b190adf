package bootstrap

import (
	"casaraiz-backend/internal/infra/mercadopago"
	"casaraiz-backend/internal/pkg/config"
	"casaraiz-backend/internal/usecase/commands"

	"go.uber.org/fx"
)

var MercadoPagoModule = fx.Module("mercadopago",
	fx.Provide(
		fx.Annotate(
			NewMercadoPagoClient,
			fx.As(new(commands.PaymentGateway)),
		),
	),
)

func NewMercadoPagoClient(cfg config.Config) *mercadopago.Client {
	return mercadopago.NewClient(cfg.MercadoPago, cfg.Server)
}
