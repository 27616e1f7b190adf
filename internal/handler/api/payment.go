package api

import (
	"errors"
	"net/http"

	reqdto "casaraiz-backend/internal/handler/dto/request"
	resdto "casaraiz-backend/internal/handler/dto/response"
	"casaraiz-backend/internal/handler/httperr"
	"casaraiz-backend/internal/handler/middleware"
	"casaraiz-backend/internal/infra"
	"casaraiz-backend/internal/usecase/commands"
	"casaraiz-backend/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// PaymentHandler serves the operator-facing payment ledger. Every route is
// scoped to the operator's own house via the house_id claim.
type PaymentHandler struct {
	operatorUseCase commands.OperatorCommands
	paymentQueries  queries.PaymentQueries
}

func NewPaymentHandler(
	operatorUseCase commands.OperatorCommands,
	paymentQueries queries.PaymentQueries,
) *PaymentHandler {
	return &PaymentHandler{
		operatorUseCase: operatorUseCase,
		paymentQueries:  paymentQueries,
	}
}

// @Summary List house payments
// @Description List payments of the operator's house, newest first
// @Tags payments
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by status (pending, approved, rejected, expired, unfulfilled)"
// @Param after query string false "Opaque pagination cursor"
// @Param limit query int false "Page size (default 20, max 200)"
// @Success 200 {object} resdto.PaymentListResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Router /payments [get]
func (h *PaymentHandler) ListPayments(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok || identity.HouseID == nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, nil, "Internal server error", nil)
		return
	}

	after, limit, err := parsePageParams(c)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, err.Error(), nil)
		return
	}

	filter := queries.PaymentListFilter{Status: c.Query("status")}
	items, next, err := h.paymentQueries.ListByHouse(c.Request.Context(), *identity.HouseID, filter, after, limit)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid cursor", nil)
		return
	}

	resp, err := resdto.FromPaymentList(items, cursorString(next))
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary Get payment
// @Description Get one payment of the operator's house, split details included
// @Tags payments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Payment ID"
// @Success 200 {object} resdto.PaymentResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /payments/{id} [get]
func (h *PaymentHandler) GetPayment(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok || identity.HouseID == nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, nil, "Internal server error", nil)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid payment ID format", nil)
		return
	}

	view, err := h.paymentQueries.GetByID(c.Request.Context(), id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			httperr.AbortWithError(c, http.StatusNotFound, err, "Payment not found", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}

	if view.HouseID != *identity.HouseID {
		// Hide other houses' ledgers.
		httperr.AbortWithError(c, http.StatusNotFound, nil, "Payment not found", nil)
		return
	}

	resp, err := resdto.FromPaymentView(view)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary Resolve unfulfilled payment
// @Description Resolve an approved-but-unfulfilled payment by refund or reoffer
// @Tags payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Payment ID"
// @Param request body reqdto.ResolveUnfulfilledRequest true "Resolution action"
// @Success 204
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /payments/{id}/resolve [post]
func (h *PaymentHandler) ResolveUnfulfilled(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok || identity.HouseID == nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, nil, "Internal server error", nil)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid payment ID format", nil)
		return
	}

	var req reqdto.ResolveUnfulfilledRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request format", nil)
		return
	}

	err = h.operatorUseCase.ResolveUnfulfilled(c.Request.Context(), id, *identity.HouseID, commands.ResolutionAction(req.Action))
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrPaymentNotFound), errors.Is(err, commands.ErrNotHouseOperator):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Payment not found", nil)
		case errors.Is(err, commands.ErrPaymentNotUnfulfilled):
			httperr.AbortWithError(c, http.StatusConflict, err, "Payment is not in unfulfilled state", nil)
		case errors.Is(err, commands.ErrInvalidResolution):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid resolution action", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	c.Status(http.StatusNoContent)
}
