package api

import (
	"net/http"

	resdto "court-booking-engine/internal/handler/dto/response"
	"court-booking-engine/internal/handler/httperr"
	"court-booking-engine/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type CatalogHandler struct {
	q queries.CatalogQueries
}

func NewCatalogHandler(q queries.CatalogQueries) *CatalogHandler {
	return &CatalogHandler{q: q}
}

// @Summary List resources
// @Description List all bookable resources, active or not
// @Tags catalog
// @Produce json
// @Security BearerAuth
// @Success 200 {array} resdto.ResourceResponse
// @Failure 401 {object} httperr.Response
// @Router /resources [get]
func (h *CatalogHandler) ListResources(c *gin.Context) {
	items, err := h.q.Resources(c.Request.Context())
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromResources(items))
}

// @Summary Get tariff
// @Description Current weekend policy, holidays, segments and rate tables
// @Tags catalog
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.TariffResponse
// @Router /tariff [get]
func (h *CatalogHandler) GetTariff(c *gin.Context) {
	cfg, err := h.q.Tariff(c.Request.Context())
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromTariff(cfg))
}

// @Summary List redeem codes
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} resdto.RedeemCodeResponse
// @Failure 403 {object} httperr.Response
// @Router /admin/redeem-codes [get]
func (h *CatalogHandler) ListRedeemCodes(c *gin.Context) {
	actor, ok := mustIdentity(c)
	if !ok {
		return
	}
	items, err := h.q.RedeemCodes(c.Request.Context(), actor)
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromRedeemCodes(items))
}
