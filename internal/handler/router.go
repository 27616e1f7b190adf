package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"casaraiz-backend/internal/handler/api"
	"casaraiz-backend/internal/handler/middleware"
	redisinfra "casaraiz-backend/internal/infra/redis"
	"casaraiz-backend/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

type Handlers struct {
	Checkout     *api.CheckoutHandler
	Webhook      *api.WebhookHandler
	Availability *api.AvailabilityHandler
	Registration *api.RegistrationHandler
	Waitlist     *api.WaitlistHandler
	Payment      *api.PaymentHandler
}

func NewRouter(engine *gin.Engine, cfg config.Config, handlers Handlers, authMiddleware *middleware.AuthMiddleware, limiter *redisinfra.SlidingWindowLimiter) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, handlers, authMiddleware, limiter)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(nil, cfg.Log))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, h Handlers, authMiddleware *middleware.AuthMiddleware, limiter *redisinfra.SlidingWindowLimiter) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	rateLimited := middleware.RateLimit(limiter)

	apiGroup := engine.Group("/api")
	{
		// Processor callbacks carry no bearer token.
		webhooks := apiGroup.Group("/webhooks")
		webhooks.Use(rateLimited)
		addRoutes(webhooks, []route{
			{Method: http.MethodPost, Path: "/mercadopago", Handler: h.Webhook.HandleMercadoPago},
		})

		// Public availability reads.
		addRoutes(apiGroup, []route{
			{Method: http.MethodGet, Path: "/offerings/:id/availability", Handler: h.Availability.GetAvailability},
			{Method: http.MethodGet, Path: "/houses/:id/availability", Handler: h.Availability.ListHouseAvailability},
		})

		member := apiGroup.Group("")
		member.Use(authMiddleware.RequireAuth())
		{
			checkout := member.Group("/checkout")
			checkout.Use(rateLimited)
			addRoutes(checkout, []route{
				{Method: http.MethodPost, Path: "", Handler: h.Checkout.Checkout},
			})

			addRoutes(member, []route{
				{Method: http.MethodGet, Path: "/registrations", Handler: h.Registration.ListMyRegistrations},
				{Method: http.MethodGet, Path: "/registrations/:id", Handler: h.Registration.GetRegistration},
				{Method: http.MethodDelete, Path: "/registrations/:id", Handler: h.Registration.CancelRegistration},
				{Method: http.MethodPost, Path: "/waitlist", Handler: h.Waitlist.Join},
				{Method: http.MethodDelete, Path: "/waitlist/:id", Handler: h.Waitlist.Leave},
				{Method: http.MethodGet, Path: "/waitlist/:id/position", Handler: h.Waitlist.GetPosition},
			})
		}

		operator := apiGroup.Group("")
		operator.Use(authMiddleware.RequireAuth(), authMiddleware.RequireOperator())
		{
			addRoutes(operator, []route{
				{Method: http.MethodGet, Path: "/payments", Handler: h.Payment.ListPayments},
				{Method: http.MethodGet, Path: "/payments/:id", Handler: h.Payment.GetPayment},
				{Method: http.MethodPost, Path: "/payments/:id/resolve", Handler: h.Payment.ResolveUnfulfilled},
				{Method: http.MethodGet, Path: "/offerings/:id/registrations", Handler: h.Registration.ListOfferingRegistrations},
				{Method: http.MethodGet, Path: "/offerings/:id/waitlist", Handler: h.Waitlist.ListOfferingWaitlist},
			})
		}
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
