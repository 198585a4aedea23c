package httperr

import (
	"net/http"

	"court-booking-engine/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

type Response struct {
	Status int `json:"-"`
	Error  struct {
		Message string `json:"message"`
		Code    string `json:"code,omitempty"`
	} `json:"error"`
	Detail any `json:"detail,omitempty"`
}

// preserves original error for future monitoring
func AbortWithError(c *gin.Context, status int, err error, msg string, detail any) {
	resp := Response{Status: status, Detail: detail}
	resp.Error.Message = msg
	if err == nil {
		err = errs.New(msg)
	}
	abort(c, err, resp)
}

func abort(c *gin.Context, err error, resp Response) {
	_ = c.Error(gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(resp.Status, resp)
}

type mapping struct {
	sentinel error
	status   int
	code     string
	message  string
}

// First match wins. A partial failure also carries its member's cause, and an unknown
// redeem code is reported as invalid rather than missing.
var mappings = []mapping{
	{errs.ErrPartialFailure, http.StatusConflict, "partial_failure", "Full venue booking failed"},
	{errs.ErrSlotTaken, http.StatusConflict, "slot_taken", "Slot already taken"},
	{errs.ErrRedeemCodeExhausted, http.StatusConflict, "redeem_code_exhausted", "Redeem code usage limit reached"},
	{errs.ErrPricingChanged, http.StatusConflict, "pricing_changed", "Price changed since quote"},
	{errs.ErrAlreadyCancelled, http.StatusConflict, "already_cancelled", "Already cancelled"},
	{errs.ErrRedeemCodeExists, http.StatusConflict, "redeem_code_exists", "Redeem code already exists"},
	{errs.ErrInvalidStatusTransition, http.StatusConflict, "invalid_status_transition", "Invalid status transition"},
	{errs.ErrInsufficientBalance, http.StatusPaymentRequired, "insufficient_balance", "Insufficient balance"},
	{errs.ErrForbidden, http.StatusForbidden, "forbidden", "Forbidden"},
	{errs.ErrResourceInactive, http.StatusUnprocessableEntity, "resource_inactive", "Resource is inactive"},
	{errs.ErrInvalidInterval, http.StatusBadRequest, "invalid_interval", "Invalid interval"},
	{errs.ErrRedeemCodeScopeMismatch, http.StatusBadRequest, "redeem_code_scope_mismatch", "Redeem code not applicable"},
	{errs.ErrRedeemCodeInvalid, http.StatusBadRequest, "redeem_code_invalid", "Redeem code invalid"},
	{errs.ErrInvalidAmount, http.StatusBadRequest, "invalid_amount", "Amount must be positive"},
	{errs.ErrNotRechargeTransaction, http.StatusBadRequest, "not_recharge", "Transaction is not a recharge"},
	{errs.ErrResourceNotFound, http.StatusNotFound, "resource_not_found", "Resource not found"},
	{errs.ErrReservationNotFound, http.StatusNotFound, "reservation_not_found", "Reservation not found"},
	{errs.ErrFullVenueNotFound, http.StatusNotFound, "full_venue_not_found", "Full venue booking not found"},
	{errs.ErrLedgerTxNotFound, http.StatusNotFound, "ledger_transaction_not_found", "Ledger transaction not found"},
	{errs.ErrRedeemCodeNotFound, http.StatusNotFound, "redeem_code_not_found", "Redeem code not found"},
	{errs.ErrDomainValidation, http.StatusBadRequest, "validation_failed", "Invalid request"},
	{errs.ErrPricingConfig, http.StatusInternalServerError, "pricing_config", "Pricing configuration error"},
}

// Status returns the HTTP status, error code and public message for err.
func Status(err error) (int, string, string) {
	for _, m := range mappings {
		if errs.Is(err, m.sentinel) {
			return m.status, m.code, m.message
		}
	}
	return http.StatusInternalServerError, "internal", "Internal server error"
}

// FromError builds the public response for a usecase error. Client errors carry the error
// text as detail.
func FromError(err error) Response {
	status, code, msg := Status(err)
	resp := Response{Status: status}
	resp.Error.Message = msg
	resp.Error.Code = code
	if status < http.StatusInternalServerError {
		resp.Detail = err.Error()
	}
	return resp
}

// AbortWithDomainError maps a usecase error onto its status and code.
func AbortWithDomainError(c *gin.Context, err error) {
	abort(c, err, FromError(err))
}
