//go:build unit

package api_test

import (
	"net/http"
	"testing"

	"court-booking-engine/internal/domain/discount"
	"court-booking-engine/internal/domain/pricing"
	"court-booking-engine/internal/domain/reservation"
	"court-booking-engine/internal/domain/resource"
	"court-booking-engine/internal/domain/tariff"
	"court-booking-engine/internal/domain/user"
	"court-booking-engine/internal/handler/api"
	reqdto "court-booking-engine/internal/handler/dto/request"
	resdto "court-booking-engine/internal/handler/dto/response"
	"court-booking-engine/internal/pkg/errs"
	"court-booking-engine/internal/usecase/queries"
	"court-booking-engine/internal/usecase/shared"
	"court-booking-engine/tests/common/authtest"
	"court-booking-engine/tests/common/builder"
	"court-booking-engine/tests/common/httptest"
	"court-booking-engine/tests/common/testutil"
	queriesmock "court-booking-engine/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type BookingHandlerTestSuite struct {
	suite.Suite
	router           *gin.Engine
	mockCtrl         *gomock.Controller
	mockPricing      *queriesmock.MockPricingQueries
	mockAvailability *queriesmock.MockAvailabilityQueries
	handler          *api.BookingHandler
	actor            user.Identity
}

func (s *BookingHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockPricing = queriesmock.NewMockPricingQueries(s.mockCtrl)
	s.mockAvailability = queriesmock.NewMockAvailabilityQueries(s.mockCtrl)
	s.handler = api.NewBookingHandler(s.mockPricing, s.mockAvailability, testPolicy(s.T()))
	s.actor = authtest.NewIdentity(user.RoleMember, user.TierVIP)

	auth := authAs(&s.actor)
	s.router.POST("/quotes", auth, s.handler.Quote)
	s.router.POST("/availability", auth, s.handler.Availability)
	s.router.POST("/availability/batch", auth, s.handler.BatchAvailability)
}

func (s *BookingHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestBookingHandlerSuite(t *testing.T) {
	suite.Run(t, new(BookingHandlerTestSuite))
}

// ================================================================================
// TestQuote
// ================================================================================

func (s *BookingHandlerTestSuite) TestQuote() {
	url := "/quotes"
	resourceID := uuid.New()
	reqBody := reqdto.QuoteRequest{
		ResourceIDs: []uuid.UUID{resourceID},
		Slot:        reqdto.SlotRequest{Date: "2030-06-05", Start: "18:00", End: "20:00"},
		RedeemCode:  " SPRING ",
	}
	slot := builder.Slot(builder.Date(2030, 6, 5), 18, 20)
	result := &queries.QuoteResult{
		PriceResult: shared.PriceResult{
			Quotes: []pricing.Quote{{
				ResourceID:   resourceID,
				ResourceType: resource.TypeCompetition,
				Slot:         slot,
				BasePrice:    1000,
				Breakdown: []pricing.Line{
					{Hour: 18, Segment: tariff.SegmentPeak, DayKind: tariff.DayKindWeekday, Points: 500},
					{Hour: 19, Segment: tariff.SegmentPeak, DayKind: tariff.DayKindWeekday, Points: 500},
				},
			}},
			Discount: discount.Result{Base: 1000, MembershipPercent: 20, MembershipDiscount: 200, CodeDiscount: 100, Code: "SPRING", Final: 700},
		},
		Available: []reservation.Availability{{Available: true}},
	}

	s.Run("success: returns the breakdown", func() {
		s.mockPricing.EXPECT().Quote(gomock.Any(), s.actor, gomock.Any()).
			DoAndReturn(func(_ any, _ user.Identity, in queries.QuoteInput) (*queries.QuoteResult, error) {
				s.Equal([]uuid.UUID{resourceID}, in.ResourceIDs)
				s.Equal("SPRING", in.RedeemCode)
				return result, nil
			}).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")

		var body resdto.QuoteResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)

		want := resdto.PriceBreakdownResponse{
			Base: 1000, MembershipPercent: 20, MembershipDiscount: 200, CodeDiscount: 100, Code: "SPRING", Final: 700,
		}
		if diff := cmp.Diff(want, body.Breakdown); diff != "" {
			s.T().Errorf("breakdown mismatch (-want +got):\n%s", diff)
		}
		s.Require().Len(body.Resources, 1)
		s.Equal("competition", body.Resources[0].ResourceType)
		s.Len(body.Resources[0].Hours, 2)
		s.Equal("peak", body.Resources[0].Hours[0].Segment)
		s.Equal([]resdto.AvailabilityResponse{{Available: true}}, body.Available)
	})

	s.Run("error: 400 Bad Request on validation errors", func() {
		cases := []struct {
			name   string
			mutate func(m map[string]any)
		}{
			{"missing resource_ids", testutil.Field("resource_ids", nil)},
			{"empty resource_ids", testutil.Field("resource_ids", []string{})},
			{"malformed resource id", testutil.Field("resource_ids", []string{"nope"})},
			{"bad clock", testutil.Field("slot.start", "25:00")},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				requestMap := testutil.DtoMap(s.T(), reqBody, tc.mutate)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, requestMap, "bearer-token")
				httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
			})
		}
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name           string
			queryError     error
			expectedStatus int
			expectedCode   string
		}{
			{"unknown resource", errs.ErrResourceNotFound, http.StatusNotFound, "resource_not_found"},
			{"unknown code", errs.Mark(errs.ErrRedeemCodeNotFound, errs.ErrRedeemCodeInvalid), http.StatusBadRequest, "redeem_code_invalid"},
			{"code for another type", errs.ErrRedeemCodeScopeMismatch, http.StatusBadRequest, "redeem_code_scope_mismatch"},
			{"missing rate", errs.ErrPricingConfig, http.StatusInternalServerError, "pricing_config"},
		}
		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockPricing.EXPECT().Quote(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, tc.queryError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")
				httptest.AssertErrorCode(s.T(), rec, tc.expectedStatus, tc.expectedCode)
			})
		}
	})
}

// ================================================================================
// TestAvailability
// ================================================================================

func (s *BookingHandlerTestSuite) TestAvailability() {
	resourceID := uuid.New()
	reqBody := reqdto.AvailabilityRequest{
		ResourceID: resourceID,
		Slot:       reqdto.SlotRequest{Date: "2030-06-05", Start: "09:30", End: "10:00"},
	}

	s.Run("success: reports the reason", func() {
		s.mockAvailability.EXPECT().IsAvailable(gomock.Any(), resourceID, gomock.Any()).
			Return(reservation.Availability{Reason: reservation.ReasonOccupied}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/availability", reqBody, "bearer-token")

		var body resdto.AvailabilityResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(resdto.AvailabilityResponse{Available: false, Reason: "occupied"}, body)
	})

	s.Run("error: 404 for an unknown resource", func() {
		s.mockAvailability.EXPECT().IsAvailable(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(reservation.Availability{}, errs.ErrResourceNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/availability", reqBody, "bearer-token")
		httptest.AssertErrorCode(s.T(), rec, http.StatusNotFound, "resource_not_found")
	})
}

func (s *BookingHandlerTestSuite) TestBatchAvailability() {
	resourceID := uuid.New()
	reqBody := reqdto.BatchAvailabilityRequest{
		ResourceID: resourceID,
		Slots: []reqdto.SlotRequest{
			{Date: "2030-06-05", Start: "10:00", End: "11:00"},
			{Date: "2030-06-05", Start: "10:30", End: "11:00"},
		},
	}

	s.Run("success: one item per slot in request order", func() {
		price := int64(400)
		s.mockAvailability.EXPECT().CheckBatch(gomock.Any(), resourceID, gomock.Len(2)).
			DoAndReturn(func(_ any, _ uuid.UUID, slots []reservation.TimeSlot) ([]queries.BatchItem, error) {
				return []queries.BatchItem{
					{Slot: slots[0], Availability: reservation.Availability{Available: true}, BasePrice: &price},
					{Slot: slots[1], Availability: reservation.Availability{Available: true}},
				}, nil
			}).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/availability/batch", reqBody, "bearer-token")

		var body []resdto.BatchItemResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Require().Len(body, 2)
		s.Equal("10:00", body[0].Slot.Start)
		s.Equal(&price, body[0].BasePrice)
		s.Equal("10:30", body[1].Slot.Start)
		s.Nil(body[1].BasePrice)
	})

	s.Run("error: 400 when too many intervals", func() {
		s.mockAvailability.EXPECT().CheckBatch(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, errs.Wrap(errs.ErrDomainValidation, "too many intervals")).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/availability/batch", reqBody, "bearer-token")
		httptest.AssertErrorCode(s.T(), rec, http.StatusBadRequest, "validation_failed")
	})

	s.Run("error: 400 without slots", func() {
		requestMap := testutil.DtoMap(s.T(), reqBody, testutil.Field("slots", []any{}))
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/availability/batch", requestMap, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
	})
}
