package api

import (
	"net/http"

	"court-booking-engine/internal/domain/user"
	reqdto "court-booking-engine/internal/handler/dto/request"
	resdto "court-booking-engine/internal/handler/dto/response"
	"court-booking-engine/internal/handler/httperr"
	"court-booking-engine/internal/usecase/commands"
	"court-booking-engine/internal/usecase/queries"
	"court-booking-engine/internal/usecase/shared"

	"github.com/gin-gonic/gin"
)

type FullVenueHandler struct {
	cmds   commands.FullVenueCommands
	q      queries.ReservationQueries
	policy shared.BookingPolicy
}

func NewFullVenueHandler(cmds commands.FullVenueCommands, q queries.ReservationQueries, policy shared.BookingPolicy) *FullVenueHandler {
	return &FullVenueHandler{cmds: cmds, q: q, policy: policy}
}

// @Summary Reserve full venue
// @Description Reserve several resources for the same slot. Either every resource is booked or none is.
// @Tags full-venue
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param Idempotency-Key header string false "Request key for safe retries"
// @Param request body reqdto.FullVenueRequest true "Full venue request"
// @Success 201 {object} resdto.FullVenueReserveResponse
// @Failure 400 {object} httperr.Response
// @Failure 402 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /full-venue [post]
func (h *FullVenueHandler) Create(c *gin.Context) {
	actor, ok := mustIdentity(c)
	if !ok {
		return
	}
	key, ok := requestKey(c)
	if !ok {
		return
	}
	var req reqdto.FullVenueRequest
	if !bindJSON(c, &req) {
		return
	}
	in, err := req.ToInput(h.policy.Location, key)
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}
	h.reserve(c, actor, in)
}

// @Summary Reserve full venue as admin
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param Idempotency-Key header string false "Request key for safe retries"
// @Param request body reqdto.AdminFullVenueRequest true "Full venue request"
// @Success 201 {object} resdto.FullVenueReserveResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Router /admin/full-venue [post]
func (h *FullVenueHandler) AdminCreate(c *gin.Context) {
	actor, ok := mustIdentity(c)
	if !ok {
		return
	}
	key, ok := requestKey(c)
	if !ok {
		return
	}
	var req reqdto.AdminFullVenueRequest
	if !bindJSON(c, &req) {
		return
	}
	in, err := req.ToInput(h.policy.Location, key)
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}
	h.reserve(c, actor, in)
}

func (h *FullVenueHandler) reserve(c *gin.Context, actor user.Identity, in commands.FullVenueInput) {
	result, err := h.cmds.ReserveFullVenue(c.Request.Context(), actor, in)
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}
	resp, err := resdto.FromFullVenueResult(result)
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}
	status := http.StatusCreated
	if result.Replayed {
		status = http.StatusOK
	}
	c.Header("Location", "/api/full-venue/"+result.Transaction.ID().String())
	c.JSON(status, resp)
}

// @Summary Get full venue booking
// @Tags full-venue
// @Produce json
// @Security BearerAuth
// @Param id path string true "Full venue transaction ID"
// @Success 200 {object} resdto.FullVenueResponse
// @Failure 404 {object} httperr.Response
// @Router /full-venue/{id} [get]
func (h *FullVenueHandler) Get(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	actor, ok := mustIdentity(c)
	if !ok {
		return
	}
	view, err := h.q.GetFullVenue(c.Request.Context(), actor, id)
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromFullVenueView(view))
}

// @Summary Cancel full venue booking
// @Tags full-venue
// @Produce json
// @Security BearerAuth
// @Param id path string true "Full venue transaction ID"
// @Success 200 {object} resdto.CancelResponse
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /full-venue/{id}/cancel [post]
func (h *FullVenueHandler) Cancel(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	actor, ok := mustIdentity(c)
	if !ok {
		return
	}
	result, err := h.cmds.CancelFullVenue(c.Request.Context(), actor, id)
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromCancelFullVenueResult(result))
}
