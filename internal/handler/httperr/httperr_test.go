//go:build unit

package httperr_test

import (
	"net/http"
	"testing"

	"court-booking-engine/internal/handler/httperr"
	"court-booking-engine/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
)

func TestStatus(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"invalid interval", errs.Wrap(errs.ErrInvalidInterval, "30 minutes"), http.StatusBadRequest, "invalid_interval"},
		{"redeem invalid", errs.ErrRedeemCodeInvalid, http.StatusBadRequest, "redeem_code_invalid"},
		{"scope mismatch", errs.ErrRedeemCodeScopeMismatch, http.StatusBadRequest, "redeem_code_scope_mismatch"},
		{"insufficient balance", errs.ErrInsufficientBalance, http.StatusPaymentRequired, "insufficient_balance"},
		{"forbidden", errs.ErrForbidden, http.StatusForbidden, "forbidden"},
		{"reservation not found", errs.ErrReservationNotFound, http.StatusNotFound, "reservation_not_found"},
		{"slot taken", errs.ErrSlotTaken, http.StatusConflict, "slot_taken"},
		{"exhausted", errs.ErrRedeemCodeExhausted, http.StatusConflict, "redeem_code_exhausted"},
		{"pricing changed", errs.ErrPricingChanged, http.StatusConflict, "pricing_changed"},
		{"already cancelled", errs.ErrAlreadyCancelled, http.StatusConflict, "already_cancelled"},
		{"resource inactive", errs.ErrResourceInactive, http.StatusUnprocessableEntity, "resource_inactive"},
		{"pricing config", errs.ErrPricingConfig, http.StatusInternalServerError, "pricing_config"},
		{"database", errs.Mark(errs.New("conn reset"), errs.ErrDatabaseOperationFailed), http.StatusInternalServerError, "internal"},
		{
			"partial failure wins over member cause",
			errs.Mark(errs.Wrap(errs.ErrSlotTaken, "resource x"), errs.ErrPartialFailure),
			http.StatusConflict, "partial_failure",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, code, _ := httperr.Status(tt.err)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.code, code)
		})
	}
}

func TestStatus_UnknownRedeemCodeIsInvalid(t *testing.T) {
	err := errs.Mark(errs.Wrap(errs.ErrRedeemCodeNotFound, "code NOPE"), errs.ErrRedeemCodeInvalid)

	status, code, _ := httperr.Status(err)

	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "redeem_code_invalid", code)
}

func TestFromError(t *testing.T) {
	t.Run("client errors expose the cause", func(t *testing.T) {
		resp := httperr.FromError(errs.Wrap(errs.ErrSlotTaken, "court 3 at 18:00"))
		assert.Equal(t, http.StatusConflict, resp.Status)
		assert.Equal(t, "slot_taken", resp.Error.Code)
		assert.Contains(t, resp.Detail, "court 3 at 18:00")
	})

	t.Run("server errors hide it", func(t *testing.T) {
		resp := httperr.FromError(errs.New("pool exhausted"))
		assert.Equal(t, http.StatusInternalServerError, resp.Status)
		assert.Equal(t, "internal", resp.Error.Code)
		assert.Nil(t, resp.Detail)
	})
}
