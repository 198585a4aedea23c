package api

import (
	"context"
	"net/http"

	"court-booking-engine/internal/domain/user"
	reqdto "court-booking-engine/internal/handler/dto/request"
	resdto "court-booking-engine/internal/handler/dto/response"
	"court-booking-engine/internal/handler/httperr"
	"court-booking-engine/internal/usecase/commands"
	"court-booking-engine/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type LedgerHandler struct {
	cmds commands.LedgerCommands
	q    queries.LedgerQueries
}

func NewLedgerHandler(cmds commands.LedgerCommands, q queries.LedgerQueries) *LedgerHandler {
	return &LedgerHandler{cmds: cmds, q: q}
}

// @Summary My balance
// @Tags ledger
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.BalanceResponse
// @Router /ledger/balance [get]
func (h *LedgerHandler) MyBalance(c *gin.Context) {
	actor, ok := mustIdentity(c)
	if !ok {
		return
	}
	h.balance(c, actor, actor.UserID)
}

// @Summary User balance
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param userId path string true "User ID"
// @Success 200 {object} resdto.BalanceResponse
// @Failure 403 {object} httperr.Response
// @Router /admin/ledger/{userId}/balance [get]
func (h *LedgerHandler) UserBalance(c *gin.Context) {
	userID, ok := pathUUID(c, "userId")
	if !ok {
		return
	}
	actor, ok := mustIdentity(c)
	if !ok {
		return
	}
	h.balance(c, actor, userID)
}

func (h *LedgerHandler) balance(c *gin.Context, actor user.Identity, userID uuid.UUID) {
	view, err := h.q.Balance(c.Request.Context(), actor, userID)
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromBalance(view))
}

// @Summary My ledger history
// @Tags ledger
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Max items (default 20)"
// @Param after query string false "Cursor from a previous page"
// @Success 200 {object} resdto.LedgerPageResponse
// @Router /ledger/transactions [get]
func (h *LedgerHandler) MyHistory(c *gin.Context) {
	actor, ok := mustIdentity(c)
	if !ok {
		return
	}
	h.history(c, actor, actor.UserID)
}

// @Summary User ledger history
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param userId path string true "User ID"
// @Param limit query int false "Max items (default 20)"
// @Param after query string false "Cursor from a previous page"
// @Success 200 {object} resdto.LedgerPageResponse
// @Failure 403 {object} httperr.Response
// @Router /admin/ledger/{userId}/transactions [get]
func (h *LedgerHandler) UserHistory(c *gin.Context) {
	userID, ok := pathUUID(c, "userId")
	if !ok {
		return
	}
	actor, ok := mustIdentity(c)
	if !ok {
		return
	}
	h.history(c, actor, userID)
}

func (h *LedgerHandler) history(c *gin.Context, actor user.Identity, userID uuid.UUID) {
	after, limit := pageParams(c)
	page, err := h.q.History(c.Request.Context(), actor, userID, after, limit)
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromLedgerPage(page))
}

// @Summary Credit points
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.LedgerEntryRequest true "Credit request"
// @Success 201 {object} resdto.LedgerResultResponse
// @Router /admin/ledger/credits [post]
func (h *LedgerHandler) Credit(c *gin.Context) {
	h.entry(c, h.cmds.Credit)
}

// @Summary Debit points
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.LedgerEntryRequest true "Debit request"
// @Success 201 {object} resdto.LedgerResultResponse
// @Failure 402 {object} httperr.Response
// @Router /admin/ledger/debits [post]
func (h *LedgerHandler) Debit(c *gin.Context) {
	h.entry(c, h.cmds.Debit)
}

type entryFunc func(ctx context.Context, actor user.Identity, in commands.LedgerEntryInput) (*commands.LedgerResult, error)

func (h *LedgerHandler) entry(c *gin.Context, fn entryFunc) {
	actor, ok := mustIdentity(c)
	if !ok {
		return
	}
	var req reqdto.LedgerEntryRequest
	if !bindJSON(c, &req) {
		return
	}
	in, err := req.ToInput()
	if err != nil {
		abortInvalid(c, err)
		return
	}
	result, err := fn(c.Request.Context(), actor, in)
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}
	writeLedgerResult(c, result)
}

// @Summary Record recharge
// @Description Record a top-up. Pending recharges credit nothing until completed.
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.RechargeRequest true "Recharge request"
// @Success 201 {object} resdto.LedgerResultResponse
// @Router /admin/ledger/recharges [post]
func (h *LedgerHandler) Recharge(c *gin.Context) {
	actor, ok := mustIdentity(c)
	if !ok {
		return
	}
	var req reqdto.RechargeRequest
	if !bindJSON(c, &req) {
		return
	}
	in, err := req.ToInput()
	if err != nil {
		abortInvalid(c, err)
		return
	}
	result, err := h.cmds.Recharge(c.Request.Context(), actor, in)
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}
	writeLedgerResult(c, result)
}

// @Summary Change recharge status
// @Description Move a recharge between statuses. The balance follows the credited state exactly once.
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Ledger transaction ID"
// @Param request body reqdto.RechargeStatusRequest true "Status request"
// @Success 200 {object} resdto.LedgerResultResponse
// @Failure 402 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /admin/ledger/recharges/{id}/status [put]
func (h *LedgerHandler) SetRechargeStatus(c *gin.Context) {
	txID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	actor, ok := mustIdentity(c)
	if !ok {
		return
	}
	var req reqdto.RechargeStatusRequest
	if !bindJSON(c, &req) {
		return
	}
	in, err := req.ToInput(txID)
	if err != nil {
		abortInvalid(c, err)
		return
	}
	result, err := h.cmds.SetRechargeStatus(c.Request.Context(), actor, in)
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromLedgerResult(result))
}

// @Summary Adjust balance
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.AdjustRequest true "Adjustment request"
// @Success 201 {object} resdto.LedgerResultResponse
// @Failure 402 {object} httperr.Response
// @Router /admin/ledger/adjustments [post]
func (h *LedgerHandler) Adjust(c *gin.Context) {
	actor, ok := mustIdentity(c)
	if !ok {
		return
	}
	var req reqdto.AdjustRequest
	if !bindJSON(c, &req) {
		return
	}
	result, err := h.cmds.AdminAdjust(c.Request.Context(), actor, req.ToInput())
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}
	writeLedgerResult(c, result)
}

func writeLedgerResult(c *gin.Context, result *commands.LedgerResult) {
	status := http.StatusCreated
	if result.Replayed {
		status = http.StatusOK
	}
	c.JSON(status, resdto.FromLedgerResult(result))
}
