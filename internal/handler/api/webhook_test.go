//go:build unit

package api_test

import (
	"net/http"
	"testing"

	"casaraiz-backend/internal/handler/api"
	"casaraiz-backend/internal/pkg/errs"
	"casaraiz-backend/internal/usecase/commands"
	"casaraiz-backend/tests/common/httptest"
	commandsmock "casaraiz-backend/tests/mock/commands"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type WebhookHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockWebhookCommands
	handler      *api.WebhookHandler
}

func (s *WebhookHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockWebhookCommands(s.mockCtrl)
	s.handler = api.NewWebhookHandler(s.mockCommands)

	s.router.POST("/webhooks/mercadopago", s.handler.HandleMercadoPago)
}

func (s *WebhookHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestWebhookHandlerSuite(t *testing.T) {
	suite.Run(t, new(WebhookHandlerTestSuite))
}

func (s *WebhookHandlerTestSuite) TestHandleMercadoPago() {
	url := "/webhooks/mercadopago"

	s.Run("success: id and topic query params", func() {
		regID := uuid.New()
		s.mockCommands.EXPECT().
			ProcessNotification(gomock.Any(), "mp-pay-100").
			Return(&commands.WebhookResult{PaymentID: uuid.New(), RegistrationID: &regID, Outcome: "confirmed"}, nil).
			Times(1)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url+"?id=mp-pay-100&topic=payment", nil, "")

		var resp map[string]string
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &resp)
		s.Equal("confirmed", resp["status"])
	})

	s.Run("success: data.id query param with type", func() {
		s.mockCommands.EXPECT().
			ProcessNotification(gomock.Any(), "mp-pay-200").
			Return(&commands.WebhookResult{PaymentID: uuid.New(), Outcome: "short_circuit"}, nil).
			Times(1)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url+"?data.id=mp-pay-200&type=payment", nil, "")

		var resp map[string]string
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &resp)
		s.Equal("short_circuit", resp["status"])
	})

	s.Run("success: JSON body notification", func() {
		s.mockCommands.EXPECT().
			ProcessNotification(gomock.Any(), "mp-pay-300").
			Return(&commands.WebhookResult{PaymentID: uuid.New(), Outcome: "rejected"}, nil).
			Times(1)

		body := map[string]any{
			"type":   "payment",
			"action": "payment.updated",
			"data":   map[string]any{"id": "mp-pay-300"},
		}
		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, "")

		var resp map[string]string
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &resp)
		s.Equal("rejected", resp["status"])
	})

	s.Run("ignored: non-payment topic is acknowledged without processing", func() {
		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url+"?id=order-1&topic=merchant_order", nil, "")

		var resp map[string]string
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &resp)
		s.Equal("ignored", resp["status"])
	})

	s.Run("ignored: unknown payment reference is acknowledged", func() {
		s.mockCommands.EXPECT().
			ProcessNotification(gomock.Any(), "mp-pay-404").
			Return(nil, commands.ErrPaymentNotFound).Times(1)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url+"?id=mp-pay-404&topic=payment", nil, "")

		var resp map[string]string
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &resp)
		s.Equal("ignored", resp["status"])
	})

	s.Run("error: missing payment id returns 400", func() {
		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{"type": "payment"}, "")
		httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "missing payment id")
	})

	s.Run("error: gateway status lookup failure returns 502 for retry", func() {
		s.mockCommands.EXPECT().
			ProcessNotification(gomock.Any(), "mp-pay-500").
			Return(nil, commands.ErrGatewayStatusLookup).Times(1)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url+"?id=mp-pay-500&topic=payment", nil, "")
		httptest.AssertErrorResponse(s.T(), w, http.StatusBadGateway, "payment status lookup failed")
	})

	s.Run("error: malformed notification returns 400", func() {
		s.mockCommands.EXPECT().
			ProcessNotification(gomock.Any(), "  ").
			Return(nil, commands.ErrMalformedWebhook).Times(1)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url+"?id=++&topic=payment", nil, "")
		httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "malformed notification")
	})

	s.Run("error: unexpected processing failure returns 500", func() {
		s.mockCommands.EXPECT().
			ProcessNotification(gomock.Any(), "mp-pay-600").
			Return(nil, errs.New("connection reset")).Times(1)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url+"?id=mp-pay-600&topic=payment", nil, "")
		httptest.AssertErrorResponse(s.T(), w, http.StatusInternalServerError, "internal server error")
	})
}
