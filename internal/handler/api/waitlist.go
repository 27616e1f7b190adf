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

type WaitlistHandler struct {
	waitlistUseCase commands.WaitlistCommands
	waitlistQueries queries.WaitlistQueries
}

func NewWaitlistHandler(
	waitlistUseCase commands.WaitlistCommands,
	waitlistQueries queries.WaitlistQueries,
) *WaitlistHandler {
	return &WaitlistHandler{
		waitlistUseCase: waitlistUseCase,
		waitlistQueries: waitlistQueries,
	}
}

// @Summary Join waitlist
// @Description Join the FIFO waitlist of a sold-out offering
// @Tags waitlist
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.JoinWaitlistRequest true "Waitlist request"
// @Success 201 {object} map[string]string
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /waitlist [post]
func (h *WaitlistHandler) Join(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, nil, "Internal server error", nil)
		return
	}

	var req reqdto.JoinWaitlistRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request format", nil)
		return
	}

	err := h.waitlistUseCase.Join(c.Request.Context(), req.OfferingID, userID)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrOfferingNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Offering not found", nil)
		case errors.Is(err, commands.ErrNotSoldOut):
			httperr.AbortWithError(c, http.StatusConflict, err, "Offering is not sold out", nil)
		case errors.Is(err, commands.ErrAlreadyWaitlisted):
			httperr.AbortWithError(c, http.StatusConflict, err, "Already on the waitlist", nil)
		case errors.Is(err, commands.ErrAlreadyRegistered):
			httperr.AbortWithError(c, http.StatusConflict, err, "An active registration for this offering already exists", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"status": "waitlisted"})
}

// @Summary Leave waitlist
// @Description Leave the waitlist of an offering
// @Tags waitlist
// @Produce json
// @Security BearerAuth
// @Param id path string true "Offering ID"
// @Success 204
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /waitlist/{id} [delete]
func (h *WaitlistHandler) Leave(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, nil, "Internal server error", nil)
		return
	}

	offeringID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid offering ID format", nil)
		return
	}

	err = h.waitlistUseCase.Leave(c.Request.Context(), offeringID, userID)
	if err != nil {
		if errors.Is(err, commands.ErrNotWaitlisted) {
			httperr.AbortWithError(c, http.StatusNotFound, err, "Not on the waitlist", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary Get waitlist position
// @Description Get the current user's position on an offering waitlist
// @Tags waitlist
// @Produce json
// @Security BearerAuth
// @Param id path string true "Offering ID"
// @Success 200 {object} resdto.WaitlistPositionResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /waitlist/{id}/position [get]
func (h *WaitlistHandler) GetPosition(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, nil, "Internal server error", nil)
		return
	}

	offeringID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid offering ID format", nil)
		return
	}

	view, err := h.waitlistQueries.PositionFor(c.Request.Context(), offeringID, userID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			httperr.AbortWithError(c, http.StatusNotFound, err, "Not on the waitlist", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}

	c.JSON(http.StatusOK, resdto.FromWaitlistPositionView(view))
}

// @Summary List offering waitlist
// @Description List the waitlist of one of the operator's offerings, in promotion order
// @Tags waitlist
// @Produce json
// @Security BearerAuth
// @Param id path string true "Offering ID"
// @Success 200 {array} resdto.WaitlistPositionResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Router /offerings/{id}/waitlist [get]
func (h *WaitlistHandler) ListOfferingWaitlist(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok || identity.HouseID == nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, nil, "Internal server error", nil)
		return
	}

	offeringID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid offering ID format", nil)
		return
	}

	views, err := h.waitlistQueries.ListByOffering(c.Request.Context(), offeringID, *identity.HouseID)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}

	resp := make([]*resdto.WaitlistPositionResponse, 0, len(views))
	for _, view := range views {
		resp = append(resp, resdto.FromWaitlistPositionView(view))
	}
	c.JSON(http.StatusOK, resp)
}
