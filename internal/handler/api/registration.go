package api

import (
	"errors"
	"net/http"
	"strconv"

	resdto "casaraiz-backend/internal/handler/dto/response"
	"casaraiz-backend/internal/handler/httperr"
	"casaraiz-backend/internal/handler/middleware"
	"casaraiz-backend/internal/infra"
	"casaraiz-backend/internal/pkg/jwt"
	"casaraiz-backend/internal/usecase/commands"
	"casaraiz-backend/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type RegistrationHandler struct {
	registrationUseCase commands.RegistrationCommands
	registrationQueries queries.RegistrationQueries
}

func NewRegistrationHandler(
	registrationUseCase commands.RegistrationCommands,
	registrationQueries queries.RegistrationQueries,
) *RegistrationHandler {
	return &RegistrationHandler{
		registrationUseCase: registrationUseCase,
		registrationQueries: registrationQueries,
	}
}

// @Summary Get registration
// @Description Get registration by ID (owner or house operator)
// @Tags registrations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Registration ID"
// @Success 200 {object} resdto.RegistrationResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /registrations/{id} [get]
func (h *RegistrationHandler) GetRegistration(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, nil, "Internal server error", nil)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid registration ID format", nil)
		return
	}

	view, err := h.registrationQueries.GetByID(c.Request.Context(), id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			httperr.AbortWithError(c, http.StatusNotFound, err, "Registration not found", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}

	if !canSeeRegistration(identity, view) {
		// Hide existence from other members.
		httperr.AbortWithError(c, http.StatusNotFound, nil, "Registration not found", nil)
		return
	}

	resp, err := resdto.FromRegistrationView(view)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary List my registrations
// @Description List the current user's registrations, newest first
// @Tags registrations
// @Produce json
// @Security BearerAuth
// @Param after query string false "Opaque pagination cursor"
// @Param limit query int false "Page size (default 20, max 200)"
// @Success 200 {object} resdto.RegistrationListResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Router /registrations [get]
func (h *RegistrationHandler) ListMyRegistrations(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, nil, "Internal server error", nil)
		return
	}

	after, limit, err := parsePageParams(c)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, err.Error(), nil)
		return
	}

	items, next, err := h.registrationQueries.ListByUser(c.Request.Context(), userID, after, limit)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid cursor", nil)
		return
	}

	resp, err := resdto.FromRegistrationList(items, cursorString(next))
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary List offering registrations
// @Description List registrations for one of the operator's offerings, newest first
// @Tags registrations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Offering ID"
// @Param after query string false "Opaque pagination cursor"
// @Param limit query int false "Page size (default 20, max 200)"
// @Success 200 {object} resdto.RegistrationListResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Router /offerings/{id}/registrations [get]
func (h *RegistrationHandler) ListOfferingRegistrations(c *gin.Context) {
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

	after, limit, err := parsePageParams(c)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, err.Error(), nil)
		return
	}

	items, next, err := h.registrationQueries.ListByOffering(c.Request.Context(), offeringID, *identity.HouseID, after, limit)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid cursor", nil)
		return
	}

	resp, err := resdto.FromRegistrationList(items, cursorString(next))
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary Cancel registration
// @Description Cancel a confirmed registration; freed spots promote the waitlist
// @Tags registrations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Registration ID"
// @Success 204
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /registrations/{id} [delete]
func (h *RegistrationHandler) CancelRegistration(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, nil, "Internal server error", nil)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid registration ID format", nil)
		return
	}

	isOperator := identity.Role == jwt.RoleOperator
	err = h.registrationUseCase.Cancel(c.Request.Context(), id, identity.UserID, isOperator)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrRegistrationNotFound), errors.Is(err, commands.ErrNotRegistrationOwner):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Registration not found", nil)
		case errors.Is(err, commands.ErrNotCancellable):
			httperr.AbortWithError(c, http.StatusConflict, err, "Registration cannot be cancelled in its current state", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	c.Status(http.StatusNoContent)
}

func canSeeRegistration(identity *jwt.Identity, view *queries.RegistrationView) bool {
	if view.UserID == identity.UserID {
		return true
	}
	return identity.Role == jwt.RoleOperator && identity.HouseID != nil && *identity.HouseID == view.HouseID
}

func parsePageParams(c *gin.Context) (*queries.Cursor, int, error) {
	var after *queries.Cursor
	if raw := c.Query("after"); raw != "" {
		after = &queries.Cursor{After: raw}
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			return nil, 0, errors.New("invalid limit")
		}
		limit = parsed
	}
	return after, limit, nil
}

func cursorString(next *queries.Cursor) *string {
	if next == nil {
		return nil
	}
	return &next.After
}
