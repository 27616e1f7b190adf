package api

import (
	"errors"
	"net/http"

	reqdto "casaraiz-backend/internal/handler/dto/request"
	resdto "casaraiz-backend/internal/handler/dto/response"
	"casaraiz-backend/internal/handler/httperr"
	"casaraiz-backend/internal/handler/middleware"
	"casaraiz-backend/internal/usecase/commands"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CheckoutHandler struct {
	checkoutUseCase commands.CheckoutCommands
}

func NewCheckoutHandler(checkoutUseCase commands.CheckoutCommands) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutUseCase: checkoutUseCase,
	}
}

// @Summary Checkout an offering
// @Description Start a checkout for an offering with idempotency key
// @Tags checkout
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param Idempotency-Key header string true "Idempotency key for duplicate prevention"
// @Param request body reqdto.CheckoutRequest true "Checkout request"
// @Success 201 {object} resdto.CheckoutResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Failure 502 {object} httperr.Response
// @Router /checkout [post]
func (h *CheckoutHandler) Checkout(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, nil, "Internal server error", nil)
		return
	}

	idempotencyKey, err := h.getIdempotencyKey(c)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, err.Error(), nil)
		return
	}

	var req reqdto.CheckoutRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request format", nil)
		return
	}

	result, err := h.checkoutUseCase.Checkout(c.Request.Context(), req, userID, idempotencyKey)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrOfferingNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Offering not found", nil)
		case errors.Is(err, commands.ErrUserBlocked):
			httperr.AbortWithError(c, http.StatusForbidden, err, "You are not allowed to register for this offering", nil)
		case errors.Is(err, commands.ErrAlreadyRegistered):
			httperr.AbortWithError(c, http.StatusConflict, err, "An active registration for this offering already exists", nil)
		case errors.Is(err, commands.ErrSoldOut), errors.Is(err, commands.ErrInsufficientStock):
			httperr.AbortWithError(c, http.StatusConflict, err, "Offering is sold out", nil)
		case errors.Is(err, commands.ErrInvalidPaymentMethod), errors.Is(err, commands.ErrInvalidAmount):
			httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Invalid payment parameters", nil)
		case errors.Is(err, commands.ErrIdempotencyKeyReused):
			httperr.AbortWithError(c, http.StatusConflict, err, "Idempotency key reused with different parameters", nil)
		case errors.Is(err, commands.ErrIdempotencyInProgress):
			httperr.AbortWithError(c, http.StatusConflict, err, "Checkout request is currently being processed", nil)
		case errors.Is(err, commands.ErrPaymentGateway):
			httperr.AbortWithError(c, http.StatusBadGateway, err, "Payment processor unavailable", nil)
		case errors.Is(err, commands.ErrDomainValidation):
			httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Domain validation failed", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	status := http.StatusCreated
	if result.IsReplayed {
		status = http.StatusOK
	}
	c.JSON(status, resdto.FromCheckoutResult(result))
}

func (h *CheckoutHandler) getIdempotencyKey(c *gin.Context) (uuid.UUID, error) {
	keyStr := c.GetHeader("Idempotency-Key")
	if keyStr == "" {
		return uuid.Nil, errors.New("Idempotency-Key header is required")
	}

	key, err := uuid.Parse(keyStr)
	if err != nil {
		return uuid.Nil, errors.New("invalid idempotency key format")
	}

	return key, nil
}
