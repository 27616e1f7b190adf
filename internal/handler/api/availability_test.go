//go:build unit

package api_test

import (
	"net/http"
	"testing"
	"time"

	"casaraiz-backend/internal/handler/api"
	resdto "casaraiz-backend/internal/handler/dto/response"
	"casaraiz-backend/internal/infra"
	"casaraiz-backend/internal/usecase/queries"
	"casaraiz-backend/tests/common/httptest"
	queriesmock "casaraiz-backend/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type AvailabilityHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockCtrl    *gomock.Controller
	mockQueries *queriesmock.MockAvailabilityQueries
	handler     *api.AvailabilityHandler
}

func (s *AvailabilityHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockQueries = queriesmock.NewMockAvailabilityQueries(s.mockCtrl)
	s.handler = api.NewAvailabilityHandler(s.mockQueries)

	// Availability is public, no auth middleware
	s.router.GET("/offerings/:id/availability", s.handler.GetAvailability)
	s.router.GET("/houses/:id/availability", s.handler.ListHouseAvailability)
}

func (s *AvailabilityHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestAvailabilityHandlerSuite(t *testing.T) {
	suite.Run(t, new(AvailabilityHandlerTestSuite))
}

func (s *AvailabilityHandlerTestSuite) TestGetAvailability() {
	s.Run("success: capacity-bound offering", func() {
		capacity := int32(10)
		remaining := int32(4)
		startsAt := time.Date(2026, 3, 15, 19, 0, 0, 0, time.UTC)
		view := &queries.AvailabilityView{
			OfferingID:     uuid.New(),
			HouseID:        uuid.New(),
			Kind:           "ceremony",
			Title:          "Ceremonia de Luna Nueva",
			PriceCents:     50000,
			Capacity:       &capacity,
			ConfirmedUnits: 6,
			Remaining:      &remaining,
			WaitlistLen:    3,
			StartsAt:       &startsAt,
		}
		s.mockQueries.EXPECT().GetByOfferingID(gomock.Any(), view.OfferingID).Return(view, nil).Times(1)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/offerings/"+view.OfferingID.String()+"/availability", nil, "")

		var resp resdto.AvailabilityResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &resp)
		s.Equal(view.OfferingID, resp.OfferingID)
		s.Require().NotNil(resp.Remaining)
		s.Equal(int32(4), *resp.Remaining)
		s.False(resp.SoldOut)
		s.Equal(int32(3), resp.WaitlistLen)
	})

	s.Run("success: unlimited offering has no remaining", func() {
		view := &queries.AvailabilityView{
			OfferingID: uuid.New(),
			HouseID:    uuid.New(),
			Kind:       "course",
			Title:      "Taller abierto",
			IsFree:     true,
		}
		s.mockQueries.EXPECT().GetByOfferingID(gomock.Any(), view.OfferingID).Return(view, nil).Times(1)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/offerings/"+view.OfferingID.String()+"/availability", nil, "")

		var resp resdto.AvailabilityResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &resp)
		s.Nil(resp.Capacity)
		s.Nil(resp.Remaining)
		s.False(resp.SoldOut)
		s.True(resp.IsFree)
	})

	s.Run("error: unknown offering returns 404", func() {
		id := uuid.New()
		s.mockQueries.EXPECT().GetByOfferingID(gomock.Any(), id).
			Return(nil, infra.WrapRepoErr("offering not found", nil, infra.KindNotFound)).Times(1)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/offerings/"+id.String()+"/availability", nil, "")
		httptest.AssertErrorResponse(s.T(), w, http.StatusNotFound, "Offering not found")
	})

	s.Run("error: malformed id returns 400", func() {
		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/offerings/not-a-uuid/availability", nil, "")
		httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "Invalid offering ID format")
	})
}

func (s *AvailabilityHandlerTestSuite) TestListHouseAvailability() {
	s.Run("success: returns all house offerings", func() {
		houseID := uuid.New()
		views := []*queries.AvailabilityView{
			{OfferingID: uuid.New(), HouseID: houseID, Kind: "ceremony", Title: "Luna Nueva", SoldOut: true},
			{OfferingID: uuid.New(), HouseID: houseID, Kind: "product", Title: "Rapé"},
		}
		s.mockQueries.EXPECT().ListByHouse(gomock.Any(), houseID).Return(views, nil).Times(1)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/houses/"+houseID.String()+"/availability", nil, "")

		var resp []resdto.AvailabilityResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &resp)
		s.Len(resp, 2)
		s.True(resp[0].SoldOut)
	})

	s.Run("success: empty house returns empty list", func() {
		houseID := uuid.New()
		s.mockQueries.EXPECT().ListByHouse(gomock.Any(), houseID).Return([]*queries.AvailabilityView{}, nil).Times(1)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/houses/"+houseID.String()+"/availability", nil, "")

		var resp []resdto.AvailabilityResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &resp)
		s.Empty(resp)
	})
}
