package errs

import "errors"

// Sentinel errors shared by the domain, usecase and handler layers
var (
	// Interval and pricing
	ErrInvalidInterval = errors.New("invalid interval")
	ErrPricingConfig   = errors.New("pricing configuration error")
	ErrPricingChanged  = errors.New("price changed since quote")

	// Resources
	ErrResourceNotFound = errors.New("resource not found")
	ErrResourceInactive = errors.New("resource is inactive")

	// Reservations
	ErrReservationNotFound     = errors.New("reservation not found")
	ErrSlotTaken               = errors.New("slot already taken")
	ErrAlreadyCancelled        = errors.New("reservation already cancelled")
	ErrInvalidStatusTransition = errors.New("invalid status transition")
	ErrPartialFailure          = errors.New("full venue booking failed for at least one resource")
	ErrFullVenueNotFound       = errors.New("full venue booking not found")

	// Redeem codes
	ErrRedeemCodeNotFound      = errors.New("redeem code not found")
	ErrRedeemCodeInvalid       = errors.New("redeem code invalid")
	ErrRedeemCodeExhausted     = errors.New("redeem code usage limit reached")
	ErrRedeemCodeScopeMismatch = errors.New("redeem code not applicable")
	ErrRedeemCodeExists        = errors.New("redeem code already exists")

	// Ledger
	ErrInsufficientBalance    = errors.New("insufficient balance")
	ErrLedgerTxNotFound       = errors.New("ledger transaction not found")
	ErrInvalidAmount          = errors.New("amount must be positive")
	ErrNotRechargeTransaction = errors.New("transaction is not a recharge")

	// Access
	ErrForbidden = errors.New("forbidden")

	// Validation errors
	ErrDomainValidation = errors.New("domain validation error")

	// Operation errors
	ErrDatabaseOperationFailed = errors.New("database operation failed")
)
