package api

import (
	"errors"
	"log/slog"
	"net/http"

	"casaraiz-backend/internal/handler/httperr"
	"casaraiz-backend/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

type WebhookHandler struct {
	webhookUseCase commands.WebhookCommands
}

func NewWebhookHandler(webhookUseCase commands.WebhookCommands) *WebhookHandler {
	return &WebhookHandler{
		webhookUseCase: webhookUseCase,
	}
}

// Mercado Pago posts either ?id=<payment>&topic=payment query params or a
// JSON body with {"type":"payment","data":{"id":"<payment>"}}.
type webhookBody struct {
	Type   string `json:"type"`
	Action string `json:"action"`
	Data   struct {
		ID string `json:"id"`
	} `json:"data"`
}

// @Summary Mercado Pago webhook
// @Description Receive payment status notifications from Mercado Pago
// @Tags webhooks
// @Accept json
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 400 {object} httperr.Response
// @Failure 502 {object} httperr.Response
// @Router /webhooks/mercadopago [post]
func (h *WebhookHandler) HandleMercadoPago(c *gin.Context) {
	externalPaymentID, topic := h.extractNotification(c)
	if topic != "" && topic != "payment" {
		// Other topics (merchant_order etc.) are acknowledged and dropped.
		c.JSON(http.StatusOK, gin.H{"status": "ignored"})
		return
	}
	if externalPaymentID == "" {
		httperr.AbortWithError(c, http.StatusBadRequest, nil, "missing payment id", nil)
		return
	}

	result, err := h.webhookUseCase.ProcessNotification(c.Request.Context(), externalPaymentID)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrPaymentNotFound):
			// Unknown reference. Acknowledge so the processor stops retrying.
			slog.Warn("webhook for unknown payment", "external_payment_id", externalPaymentID)
			c.JSON(http.StatusOK, gin.H{"status": "ignored"})
		case errors.Is(err, commands.ErrGatewayStatusLookup):
			// Transient: non-2xx makes the processor retry later.
			httperr.AbortWithError(c, http.StatusBadGateway, err, "payment status lookup failed", nil)
		case errors.Is(err, commands.ErrMalformedWebhook):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "malformed notification", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "internal server error", nil)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": result.Outcome})
}

func (h *WebhookHandler) extractNotification(c *gin.Context) (externalPaymentID, topic string) {
	if id := c.Query("id"); id != "" {
		return id, c.DefaultQuery("topic", c.Query("type"))
	}
	if id := c.Query("data.id"); id != "" {
		return id, c.Query("type")
	}

	var body webhookBody
	if err := c.ShouldBindJSON(&body); err != nil {
		return "", ""
	}
	return body.Data.ID, body.Type
}
