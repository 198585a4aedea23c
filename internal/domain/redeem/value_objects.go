package redeem

import (
	"errors"
	"regexp"
	"strings"
)

var (
	ErrInvalidCodeFormat      = errors.New("invalid redeem code format")
	ErrInvalidDiscountKind    = errors.New("discount kind must be fixed or percentage")
	ErrInvalidDiscountAmount  = errors.New("fixed discount must be positive")
	ErrInvalidDiscountPercent = errors.New("percentage discount must be between 1 and 100")
	ErrInvalidScope           = errors.New("invalid redeem code scope")
)

var codeRegex = regexp.MustCompile(`^[A-Z0-9_-]{3,32}$`)

func NormalizeCode(code string) (string, error) {
	code = strings.TrimSpace(strings.ToUpper(code))
	if !codeRegex.MatchString(code) {
		return "", ErrInvalidCodeFormat
	}
	return code, nil
}

type DiscountKind string

const (
	DiscountFixed      DiscountKind = "fixed"
	DiscountPercentage DiscountKind = "percentage"
)

type Discount struct {
	kind  DiscountKind
	value int64
}

func NewDiscount(kind DiscountKind, value int64) (Discount, error) {
	switch kind {
	case DiscountFixed:
		if value <= 0 {
			return Discount{}, ErrInvalidDiscountAmount
		}
	case DiscountPercentage:
		if value < 1 || value > 100 {
			return Discount{}, ErrInvalidDiscountPercent
		}
	default:
		return Discount{}, ErrInvalidDiscountKind
	}
	return Discount{kind: kind, value: value}, nil
}

func (d Discount) Kind() DiscountKind { return d.kind }
func (d Discount) Value() int64       { return d.value }

func (d Discount) IsPercentage() bool {
	return d.kind == DiscountPercentage
}

// Amount is the uncapped discount on price. Percentages round half away from zero.
func (d Discount) Amount(price int64) int64 {
	if d.IsPercentage() {
		return RoundPercent(price, d.value)
	}
	return d.value
}

// RoundPercent returns pct percent of amount rounded to the nearest point.
func RoundPercent(amount, pct int64) int64 {
	return (amount*pct + 50) / 100
}

type Scope string

const (
	ScopeBooking  Scope = "booking"
	ScopeRecharge Scope = "recharge"
	ScopeActivity Scope = "activity"
	ScopeAny      Scope = "any"
)

func NewScope(s string) (Scope, error) {
	scope := Scope(s)
	switch scope {
	case ScopeBooking, ScopeRecharge, ScopeActivity, ScopeAny:
		return scope, nil
	default:
		return "", ErrInvalidScope
	}
}

func (s Scope) Covers(target Scope) bool {
	return s == ScopeAny || s == target
}
