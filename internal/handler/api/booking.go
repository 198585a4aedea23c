package api

import (
	"net/http"

	reqdto "court-booking-engine/internal/handler/dto/request"
	resdto "court-booking-engine/internal/handler/dto/response"
	"court-booking-engine/internal/handler/httperr"
	"court-booking-engine/internal/usecase/queries"
	"court-booking-engine/internal/usecase/shared"

	"github.com/gin-gonic/gin"
)

// BookingHandler serves the read side used before booking: quotes and availability.
type BookingHandler struct {
	pricing      queries.PricingQueries
	availability queries.AvailabilityQueries
	policy       shared.BookingPolicy
}

func NewBookingHandler(pricing queries.PricingQueries, availability queries.AvailabilityQueries, policy shared.BookingPolicy) *BookingHandler {
	return &BookingHandler{pricing: pricing, availability: availability, policy: policy}
}

// @Summary Quote price
// @Description Price one or more resources for a slot with membership and redeem code discounts
// @Tags booking
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.QuoteRequest true "Quote request"
// @Success 200 {object} resdto.QuoteResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 429 {object} httperr.Response
// @Router /quotes [post]
func (h *BookingHandler) Quote(c *gin.Context) {
	actor, ok := mustIdentity(c)
	if !ok {
		return
	}
	var req reqdto.QuoteRequest
	if !bindJSON(c, &req) {
		return
	}
	in, err := req.ToInput(h.policy.Location)
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}
	result, err := h.pricing.Quote(c.Request.Context(), actor, in)
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}
	resp, err := resdto.FromQuote(result)
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary Check availability
// @Tags booking
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.AvailabilityRequest true "Availability request"
// @Success 200 {object} resdto.AvailabilityResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /availability [post]
func (h *BookingHandler) Availability(c *gin.Context) {
	var req reqdto.AvailabilityRequest
	if !bindJSON(c, &req) {
		return
	}
	slot, err := req.Slot.ToDomain(h.policy.Location)
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}
	result, err := h.availability.IsAvailable(c.Request.Context(), req.ResourceID, slot)
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromAvailability(result))
}

// @Summary Check availability in batch
// @Description Answer many intervals of one resource from a single snapshot
// @Tags booking
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.BatchAvailabilityRequest true "Batch availability request"
// @Success 200 {array} resdto.BatchItemResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /availability/batch [post]
func (h *BookingHandler) BatchAvailability(c *gin.Context) {
	var req reqdto.BatchAvailabilityRequest
	if !bindJSON(c, &req) {
		return
	}
	slots, err := req.ToDomain(h.policy.Location)
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}
	items, err := h.availability.CheckBatch(c.Request.Context(), req.ResourceID, slots)
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromBatch(items))
}
