package api

import (
	"context"
	"net/http"
	"time"

	"court-booking-engine/internal/domain/reservation"
	"court-booking-engine/internal/domain/tariff"
	"court-booking-engine/internal/domain/user"
	reqdto "court-booking-engine/internal/handler/dto/request"
	resdto "court-booking-engine/internal/handler/dto/response"
	"court-booking-engine/internal/handler/httperr"
	"court-booking-engine/internal/usecase/commands"
	"court-booking-engine/internal/usecase/shared"

	"github.com/gin-gonic/gin"
)

// AdminHandler edits the catalog: resources, tariff and redeem codes. Every call is audited
// by the command layer.
type AdminHandler struct {
	cmds   commands.AdminCommands
	policy shared.BookingPolicy
}

func NewAdminHandler(cmds commands.AdminCommands, policy shared.BookingPolicy) *AdminHandler {
	return &AdminHandler{cmds: cmds, policy: policy}
}

// @Summary Create resource
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateResourceRequest true "Resource"
// @Success 201 {object} resdto.ResourceResponse
// @Failure 400 {object} httperr.Response
// @Router /admin/resources [post]
func (h *AdminHandler) CreateResource(c *gin.Context) {
	actor, ok := mustIdentity(c)
	if !ok {
		return
	}
	var req reqdto.CreateResourceRequest
	if !bindJSON(c, &req) {
		return
	}
	in, err := req.ToInput()
	if err != nil {
		abortInvalid(c, err)
		return
	}
	res, err := h.cmds.CreateResource(c.Request.Context(), actor, in)
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}
	c.Header("Location", "/api/resources/"+res.ID().String())
	c.JSON(http.StatusCreated, resdto.FromResource(res))
}

// @Summary Update resource
// @Description Rename, activate or deactivate a resource
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Resource ID"
// @Param request body reqdto.UpdateResourceRequest true "Changes"
// @Success 200 {object} resdto.ResourceResponse
// @Failure 404 {object} httperr.Response
// @Router /admin/resources/{id} [patch]
func (h *AdminHandler) UpdateResource(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	actor, ok := mustIdentity(c)
	if !ok {
		return
	}
	var req reqdto.UpdateResourceRequest
	if !bindJSON(c, &req) {
		return
	}
	res, err := h.cmds.UpdateResource(c.Request.Context(), actor, id, req.ToInput())
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromResource(res))
}

// @Summary Add holiday
// @Description Priced as a weekend day
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param date path string true "Date (YYYY-MM-DD)"
// @Param request body reqdto.HolidayRequest false "Reason"
// @Success 200 {object} resdto.TariffResponse
// @Router /admin/tariff/holidays/{date} [put]
func (h *AdminHandler) AddHoliday(c *gin.Context) {
	h.holiday(c, h.cmds.AddHoliday)
}

// @Summary Remove holiday
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param date path string true "Date (YYYY-MM-DD)"
// @Param request body reqdto.HolidayRequest false "Reason"
// @Success 200 {object} resdto.TariffResponse
// @Router /admin/tariff/holidays/{date} [delete]
func (h *AdminHandler) RemoveHoliday(c *gin.Context) {
	h.holiday(c, h.cmds.RemoveHoliday)
}

type holidayFunc func(ctx context.Context, actor user.Identity, date time.Time, reason string) (*tariff.Config, error)

func (h *AdminHandler) holiday(c *gin.Context, fn holidayFunc) {
	actor, ok := mustIdentity(c)
	if !ok {
		return
	}
	date, err := reservation.ParseDate(c.Param("date"), h.policy.Location)
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}
	var req reqdto.HolidayRequest
	if c.Request.ContentLength > 0 && !bindJSON(c, &req) {
		return
	}
	cfg, err := fn(c.Request.Context(), actor, date, req.Reason)
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromTariff(cfg))
}

// @Summary Set weekend policy
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.WeekendPolicyRequest true "Weekend policy"
// @Success 200 {object} resdto.TariffResponse
// @Router /admin/tariff/weekend [put]
func (h *AdminHandler) SetWeekendPolicy(c *gin.Context) {
	actor, ok := mustIdentity(c)
	if !ok {
		return
	}
	var req reqdto.WeekendPolicyRequest
	if !bindJSON(c, &req) {
		return
	}
	in, err := req.ToInput()
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}
	cfg, err := h.cmds.SetWeekendPolicy(c.Request.Context(), actor, in)
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromTariff(cfg))
}

// @Summary Set rate
// @Description Upsert points per hour for one resource type, day kind and segment
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.RateRequest true "Rate"
// @Success 200 {object} resdto.TariffResponse
// @Router /admin/tariff/rates [put]
func (h *AdminHandler) SetRate(c *gin.Context) {
	actor, ok := mustIdentity(c)
	if !ok {
		return
	}
	var req reqdto.RateRequest
	if !bindJSON(c, &req) {
		return
	}
	in, err := req.ToInput()
	if err != nil {
		abortInvalid(c, err)
		return
	}
	cfg, err := h.cmds.SetRate(c.Request.Context(), actor, in)
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromTariff(cfg))
}

// @Summary Create redeem code
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateRedeemCodeRequest true "Redeem code"
// @Success 201 {object} resdto.RedeemCodeResponse
// @Failure 409 {object} httperr.Response
// @Router /admin/redeem-codes [post]
func (h *AdminHandler) CreateRedeemCode(c *gin.Context) {
	actor, ok := mustIdentity(c)
	if !ok {
		return
	}
	var req reqdto.CreateRedeemCodeRequest
	if !bindJSON(c, &req) {
		return
	}
	params, err := req.ToDomain()
	if err != nil {
		abortInvalid(c, err)
		return
	}
	code, err := h.cmds.CreateRedeemCode(c.Request.Context(), actor, params)
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.FromRedeemCode(code))
}

// @Summary Deactivate redeem code
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param code path string true "Code"
// @Success 200 {object} resdto.RedeemCodeResponse
// @Failure 404 {object} httperr.Response
// @Router /admin/redeem-codes/{code} [delete]
func (h *AdminHandler) DeactivateRedeemCode(c *gin.Context) {
	actor, ok := mustIdentity(c)
	if !ok {
		return
	}
	code, err := h.cmds.DeactivateRedeemCode(c.Request.Context(), actor, c.Param("code"))
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromRedeemCode(code))
}
