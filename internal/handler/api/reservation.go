package api

import (
	"net/http"

	"court-booking-engine/internal/domain/reservation"
	"court-booking-engine/internal/domain/user"
	reqdto "court-booking-engine/internal/handler/dto/request"
	resdto "court-booking-engine/internal/handler/dto/response"
	"court-booking-engine/internal/handler/httperr"
	"court-booking-engine/internal/usecase/commands"
	"court-booking-engine/internal/usecase/queries"
	"court-booking-engine/internal/usecase/shared"

	"github.com/gin-gonic/gin"
)

type ReservationHandler struct {
	cmds   commands.ReservationCommands
	q      queries.ReservationQueries
	policy shared.BookingPolicy
}

func NewReservationHandler(cmds commands.ReservationCommands, q queries.ReservationQueries, policy shared.BookingPolicy) *ReservationHandler {
	return &ReservationHandler{cmds: cmds, q: q, policy: policy}
}

// @Summary Create reservation
// @Description Reserve a resource for a slot and pay with points. Repeating the Idempotency-Key replays the first result.
// @Tags reservations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param Idempotency-Key header string false "Request key for safe retries"
// @Param request body reqdto.CreateReservationRequest true "Reservation request"
// @Success 201 {object} resdto.ReserveResponse
// @Success 200 {object} resdto.ReserveResponse "Replayed"
// @Failure 400 {object} httperr.Response
// @Failure 402 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /reservations [post]
func (h *ReservationHandler) Create(c *gin.Context) {
	actor, ok := mustIdentity(c)
	if !ok {
		return
	}
	key, ok := requestKey(c)
	if !ok {
		return
	}
	var req reqdto.CreateReservationRequest
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

// @Summary Create reservation as admin
// @Description Reserve with an audited override, optionally for another member
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param Idempotency-Key header string false "Request key for safe retries"
// @Param request body reqdto.AdminReservationRequest true "Reservation request"
// @Success 201 {object} resdto.ReserveResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Router /admin/reservations [post]
func (h *ReservationHandler) AdminCreate(c *gin.Context) {
	actor, ok := mustIdentity(c)
	if !ok {
		return
	}
	key, ok := requestKey(c)
	if !ok {
		return
	}
	var req reqdto.AdminReservationRequest
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

func (h *ReservationHandler) reserve(c *gin.Context, actor user.Identity, in commands.ReserveInput) {
	result, err := h.cmds.Reserve(c.Request.Context(), actor, in)
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}
	resp, err := resdto.FromReserveResult(result)
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}
	status := http.StatusCreated
	if result.Replayed {
		status = http.StatusOK
	}
	c.Header("Location", "/api/reservations/"+result.Reservation.ID().String())
	c.JSON(status, resp)
}

// @Summary Get reservation
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Success 200 {object} resdto.ReservationResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /reservations/{id} [get]
func (h *ReservationHandler) Get(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	actor, ok := mustIdentity(c)
	if !ok {
		return
	}
	res, err := h.q.GetByID(c.Request.Context(), actor, id)
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromReservation(res))
}

// @Summary List my reservations
// @Description Newest first with keyset pagination
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Max items (default 20)"
// @Param after query string false "Cursor from a previous page"
// @Success 200 {object} resdto.ReservationPageResponse
// @Failure 400 {object} httperr.Response
// @Router /reservations [get]
func (h *ReservationHandler) ListMine(c *gin.Context) {
	actor, ok := mustIdentity(c)
	if !ok {
		return
	}
	after, limit := pageParams(c)
	page, err := h.q.ListMine(c.Request.Context(), actor, after, limit)
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}
	if page.NextCursor != "" {
		c.Header("X-Next-Cursor", page.NextCursor)
	}
	c.JSON(http.StatusOK, resdto.FromReservationPage(page))
}

// @Summary Cancel reservation
// @Description Cancel and refund. A full venue member cancels the whole booking.
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Success 200 {object} resdto.CancelResponse
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /reservations/{id}/cancel [post]
func (h *ReservationHandler) Cancel(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	actor, ok := mustIdentity(c)
	if !ok {
		return
	}
	result, err := h.cmds.Cancel(c.Request.Context(), actor, id)
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromCancelResult(result))
}

// @Summary List reservations of a resource on a day
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Resource ID"
// @Param date query string true "Date (YYYY-MM-DD)"
// @Success 200 {array} resdto.ReservationResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Router /admin/resources/{id}/reservations [get]
func (h *ReservationHandler) ListByResourceDate(c *gin.Context) {
	resourceID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	actor, ok := mustIdentity(c)
	if !ok {
		return
	}
	date, err := reservation.ParseDate(c.Query("date"), h.policy.Location)
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}
	items, err := h.q.ListByResourceDate(c.Request.Context(), actor, resourceID, date)
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromReservations(items))
}
