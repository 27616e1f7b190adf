package components

import (
	"casaraiz-backend/internal/handler"
	"casaraiz-backend/internal/handler/api"
	"casaraiz-backend/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewCheckoutHandler,
		api.NewWebhookHandler,
		api.NewAvailabilityHandler,
		api.NewRegistrationHandler,
		api.NewWaitlistHandler,
		api.NewPaymentHandler,
		middleware.NewAuthMiddleware,
		NewHandlers,
	),
	fx.Invoke(handler.NewRouter),
)

func NewHandlers(
	checkout *api.CheckoutHandler,
	webhook *api.WebhookHandler,
	availability *api.AvailabilityHandler,
	registration *api.RegistrationHandler,
	waitlist *api.WaitlistHandler,
	payment *api.PaymentHandler,
) handler.Handlers {
	return handler.Handlers{
		Checkout:     checkout,
		Webhook:      webhook,
		Availability: availability,
		Registration: registration,
		Waitlist:     waitlist,
		Payment:      payment,
	}
}
