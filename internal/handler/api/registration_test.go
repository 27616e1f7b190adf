//go:build unit

package api_test

import (
	"net/http"
	"testing"
	"time"

	"casaraiz-backend/internal/handler/api"
	resdto "casaraiz-backend/internal/handler/dto/response"
	"casaraiz-backend/internal/infra"
	"casaraiz-backend/internal/pkg/errs"
	"casaraiz-backend/internal/pkg/jwt"
	"casaraiz-backend/internal/usecase/commands"
	"casaraiz-backend/internal/usecase/queries"
	"casaraiz-backend/tests/common/httptest"
	commandsmock "casaraiz-backend/tests/mock/commands"
	queriesmock "casaraiz-backend/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type RegistrationHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockRegistrationCommands
	mockQueries  *queriesmock.MockRegistrationQueries
	handler      *api.RegistrationHandler
	identity     *jwt.Identity
}

func (s *RegistrationHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockRegistrationCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockRegistrationQueries(s.mockCtrl)
	s.handler = api.NewRegistrationHandler(s.mockCommands, s.mockQueries)
	s.identity = &jwt.Identity{UserID: uuid.New(), Role: jwt.RoleMember}

	// Mock authentication middleware for testing
	authMiddleware := func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Access token required"})
			return
		}
		c.Set("identity", s.identity)
		c.Next()
	}

	s.router.GET("/registrations", authMiddleware, s.handler.ListMyRegistrations)
	s.router.GET("/registrations/:id", authMiddleware, s.handler.GetRegistration)
	s.router.DELETE("/registrations/:id", authMiddleware, s.handler.CancelRegistration)
	s.router.GET("/offerings/:id/registrations", authMiddleware, s.handler.ListOfferingRegistrations)
}

func (s *RegistrationHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestRegistrationHandlerSuite(t *testing.T) {
	suite.Run(t, new(RegistrationHandlerTestSuite))
}

func (s *RegistrationHandlerTestSuite) registrationView(userID uuid.UUID) *queries.RegistrationView {
	return &queries.RegistrationView{
		ID:            uuid.New(),
		OfferingID:    uuid.New(),
		OfferingTitle: "Ceremonia de Luna Nueva",
		HouseID:       uuid.New(),
		UserID:        userID,
		Kind:          "ceremony",
		Quantity:      2,
		Method:        "online",
		Status:        "confirmed",
		AmountCents:   100000,
		CreatedAt:     time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (s *RegistrationHandlerTestSuite) TestGetRegistration() {
	s.Run("success: owner sees own registration", func() {
		view := s.registrationView(s.identity.UserID)
		s.mockQueries.EXPECT().GetByID(gomock.Any(), view.ID).Return(view, nil).Times(1)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/registrations/"+view.ID.String(), nil, "bearer-token")

		var resp resdto.RegistrationResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &resp)
		s.Equal(view.ID, resp.ID)
		s.Equal("confirmed", resp.Status)
		s.Equal(int64(100000), resp.AmountCents)
	})

	s.Run("success: house operator sees member registration", func() {
		view := s.registrationView(uuid.New())
		s.identity = &jwt.Identity{UserID: uuid.New(), Role: jwt.RoleOperator, HouseID: &view.HouseID}
		s.mockQueries.EXPECT().GetByID(gomock.Any(), view.ID).Return(view, nil).Times(1)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/registrations/"+view.ID.String(), nil, "bearer-token")

		var resp resdto.RegistrationResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &resp)
		s.Equal(view.ID, resp.ID)
	})

	s.Run("masked: other member gets 404", func() {
		view := s.registrationView(uuid.New())
		s.identity = &jwt.Identity{UserID: uuid.New(), Role: jwt.RoleMember}
		s.mockQueries.EXPECT().GetByID(gomock.Any(), view.ID).Return(view, nil).Times(1)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/registrations/"+view.ID.String(), nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), w, http.StatusNotFound, "Registration not found")
	})

	s.Run("masked: operator of another house gets 404", func() {
		view := s.registrationView(uuid.New())
		otherHouse := uuid.New()
		s.identity = &jwt.Identity{UserID: uuid.New(), Role: jwt.RoleOperator, HouseID: &otherHouse}
		s.mockQueries.EXPECT().GetByID(gomock.Any(), view.ID).Return(view, nil).Times(1)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/registrations/"+view.ID.String(), nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), w, http.StatusNotFound, "Registration not found")
	})

	s.Run("error: unknown registration returns 404", func() {
		id := uuid.New()
		s.mockQueries.EXPECT().GetByID(gomock.Any(), id).
			Return(nil, infra.WrapRepoErr("registration not found", nil, infra.KindNotFound)).Times(1)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/registrations/"+id.String(), nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), w, http.StatusNotFound, "Registration not found")
	})

	s.Run("error: malformed id returns 400", func() {
		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/registrations/not-a-uuid", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "Invalid registration ID format")
	})
}

func (s *RegistrationHandlerTestSuite) TestListMyRegistrations() {
	s.Run("success: returns items with next cursor", func() {
		items := []*queries.RegistrationListItem{
			{ID: uuid.New(), OfferingID: uuid.New(), OfferingTitle: "Taller de Cacao", Kind: "course", Quantity: 1, Status: "confirmed", AmountCents: 30000, CreatedAt: time.Now().UTC()},
			{ID: uuid.New(), OfferingID: uuid.New(), OfferingTitle: "Ceremonia", Kind: "ceremony", Quantity: 2, Status: "pending", AmountCents: 100000, CreatedAt: time.Now().UTC()},
		}
		next := &queries.Cursor{After: "djE6MTc0MDAwMDAwMA"}
		s.mockQueries.EXPECT().
			ListByUser(gomock.Any(), s.identity.UserID, nil, 0).
			Return(items, next, nil).Times(1)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/registrations", nil, "bearer-token")

		var resp resdto.RegistrationListResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &resp)
		s.Len(resp.Items, 2)
		s.Require().NotNil(resp.NextCursor)
		s.Equal(next.After, *resp.NextCursor)
	})

	s.Run("success: forwards cursor and limit", func() {
		s.mockQueries.EXPECT().
			ListByUser(gomock.Any(), s.identity.UserID, &queries.Cursor{After: "abc"}, 50).
			Return([]*queries.RegistrationListItem{}, nil, nil).Times(1)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/registrations?after=abc&limit=50", nil, "bearer-token")

		var resp resdto.RegistrationListResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &resp)
		s.Empty(resp.Items)
		s.Nil(resp.NextCursor)
	})

	s.Run("error: non-numeric limit returns 400", func() {
		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/registrations?limit=abc", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "invalid limit")
	})

	s.Run("error: invalid cursor returns 400", func() {
		s.mockQueries.EXPECT().
			ListByUser(gomock.Any(), s.identity.UserID, &queries.Cursor{After: "garbage"}, 0).
			Return(nil, nil, errs.New("invalid cursor encoding")).Times(1)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/registrations?after=garbage", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "Invalid cursor")
	})
}

func (s *RegistrationHandlerTestSuite) TestListOfferingRegistrations() {
	houseID := uuid.New()
	offeringID := uuid.New()

	s.Run("success: operator lists registrations for own offering", func() {
		s.identity = &jwt.Identity{UserID: uuid.New(), Role: jwt.RoleOperator, HouseID: &houseID}
		items := []*queries.RegistrationListItem{
			{ID: uuid.New(), OfferingID: offeringID, OfferingTitle: "Retiro de Invierno", UserID: uuid.New(), Kind: "retreat", Quantity: 1, Status: "confirmed", AmountCents: 250000, CreatedAt: time.Now().UTC()},
			{ID: uuid.New(), OfferingID: offeringID, OfferingTitle: "Retiro de Invierno", UserID: uuid.New(), Kind: "retreat", Quantity: 2, Status: "pending", AmountCents: 500000, CreatedAt: time.Now().UTC()},
		}
		s.mockQueries.EXPECT().
			ListByOffering(gomock.Any(), offeringID, houseID, nil, 0).
			Return(items, nil, nil).Times(1)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/offerings/"+offeringID.String()+"/registrations", nil, "bearer-token")

		var resp resdto.RegistrationListResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &resp)
		s.Len(resp.Items, 2)
		s.Equal(items[0].UserID, resp.Items[0].UserID)
		s.Nil(resp.NextCursor)
	})

	s.Run("success: forwards cursor and limit", func() {
		s.identity = &jwt.Identity{UserID: uuid.New(), Role: jwt.RoleOperator, HouseID: &houseID}
		s.mockQueries.EXPECT().
			ListByOffering(gomock.Any(), offeringID, houseID, &queries.Cursor{After: "abc"}, 25).
			Return([]*queries.RegistrationListItem{}, nil, nil).Times(1)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/offerings/"+offeringID.String()+"/registrations?after=abc&limit=25", nil, "bearer-token")

		var resp resdto.RegistrationListResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &resp)
		s.Empty(resp.Items)
	})

	s.Run("error: identity without house returns 500", func() {
		s.identity = &jwt.Identity{UserID: uuid.New(), Role: jwt.RoleMember}

		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/offerings/"+offeringID.String()+"/registrations", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), w, http.StatusInternalServerError, "Internal server error")
	})

	s.Run("error: malformed offering id returns 400", func() {
		s.identity = &jwt.Identity{UserID: uuid.New(), Role: jwt.RoleOperator, HouseID: &houseID}

		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/offerings/not-a-uuid/registrations", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "Invalid offering ID format")
	})
}

func (s *RegistrationHandlerTestSuite) TestCancelRegistration() {
	s.Run("success: returns 204 No Content", func() {
		id := uuid.New()
		s.mockCommands.EXPECT().
			Cancel(gomock.Any(), id, s.identity.UserID, false).
			Return(nil).Times(1)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, "/registrations/"+id.String(), nil, "bearer-token")
		s.Equal(http.StatusNoContent, w.Code)
	})

	s.Run("success: operator flag is forwarded", func() {
		houseID := uuid.New()
		s.identity = &jwt.Identity{UserID: uuid.New(), Role: jwt.RoleOperator, HouseID: &houseID}
		id := uuid.New()
		s.mockCommands.EXPECT().
			Cancel(gomock.Any(), id, s.identity.UserID, true).
			Return(nil).Times(1)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, "/registrations/"+id.String(), nil, "bearer-token")
		s.Equal(http.StatusNoContent, w.Code)
	})

	s.Run("masked: cancelling another member's registration returns 404", func() {
		s.identity = &jwt.Identity{UserID: uuid.New(), Role: jwt.RoleMember}
		id := uuid.New()
		s.mockCommands.EXPECT().
			Cancel(gomock.Any(), id, s.identity.UserID, false).
			Return(commands.ErrNotRegistrationOwner).Times(1)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, "/registrations/"+id.String(), nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), w, http.StatusNotFound, "Registration not found")
	})

	s.Run("error: non-cancellable state returns 409", func() {
		id := uuid.New()
		s.mockCommands.EXPECT().
			Cancel(gomock.Any(), id, s.identity.UserID, false).
			Return(commands.ErrNotCancellable).Times(1)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, "/registrations/"+id.String(), nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), w, http.StatusConflict, "cannot be cancelled")
	})
}
