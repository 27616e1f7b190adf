package api

import (
	"net/http"

	resdto "casaraiz-backend/internal/handler/dto/response"
	"casaraiz-backend/internal/handler/httperr"
	"casaraiz-backend/internal/infra"
	"casaraiz-backend/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AvailabilityHandler struct {
	availabilityQueries queries.AvailabilityQueries
}

func NewAvailabilityHandler(availabilityQueries queries.AvailabilityQueries) *AvailabilityHandler {
	return &AvailabilityHandler{
		availabilityQueries: availabilityQueries,
	}
}

// @Summary Get offering availability
// @Description Get remaining capacity, sold-out state and waitlist length for an offering
// @Tags availability
// @Produce json
// @Param id path string true "Offering ID"
// @Success 200 {object} resdto.AvailabilityResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /offerings/{id}/availability [get]
func (h *AvailabilityHandler) GetAvailability(c *gin.Context) {
	offeringID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid offering ID format", nil)
		return
	}

	view, err := h.availabilityQueries.GetByOfferingID(c.Request.Context(), offeringID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			httperr.AbortWithError(c, http.StatusNotFound, err, "Offering not found", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}

	resp, err := resdto.FromAvailabilityView(view)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary List house availability
// @Description List availability for all published offerings of a house
// @Tags availability
// @Produce json
// @Param id path string true "House ID"
// @Success 200 {array} resdto.AvailabilityResponse
// @Failure 400 {object} httperr.Response
// @Router /houses/{id}/availability [get]
func (h *AvailabilityHandler) ListHouseAvailability(c *gin.Context) {
	houseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid house ID format", nil)
		return
	}

	views, err := h.availabilityQueries.ListByHouse(c.Request.Context(), houseID)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}

	resp := make([]*resdto.AvailabilityResponse, 0, len(views))
	for _, view := range views {
		item, convErr := resdto.FromAvailabilityView(view)
		if convErr != nil {
			httperr.AbortWithError(c, http.StatusInternalServerError, convErr, "Internal server error", nil)
			return
		}
		resp = append(resp, item)
	}
	c.JSON(http.StatusOK, resp)
}
