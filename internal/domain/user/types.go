package user

import (
	"errors"

	"github.com/google/uuid"
)

var (
	ErrInvalidRole = errors.New("invalid role")
	ErrInvalidTier = errors.New("invalid membership tier")
)

type Role string

const (
	RoleMember   Role = "member"
	RoleOperator Role = "operator"
	RoleAdmin    Role = "admin"
)

func (r Role) String() string {
	return string(r)
}

func (r Role) IsValid() bool {
	switch r {
	case RoleMember, RoleOperator, RoleAdmin:
		return true
	default:
		return false
	}
}

func NewRole(s string) (Role, error) {
	role := Role(s)
	if !role.IsValid() {
		return "", ErrInvalidRole
	}
	return role, nil
}

// IsStaff reports whether the role may read other users' bookings.
func (r Role) IsStaff() bool {
	return r == RoleOperator || r == RoleAdmin
}

type Tier string

const (
	TierRegular Tier = "regular"
	TierVIP     Tier = "vip"
)

func (t Tier) String() string {
	return string(t)
}

func (t Tier) IsValid() bool {
	switch t {
	case TierRegular, TierVIP:
		return true
	default:
		return false
	}
}

// NewTier defaults an empty value to the regular tier.
func NewTier(s string) (Tier, error) {
	if s == "" {
		return TierRegular, nil
	}
	tier := Tier(s)
	if !tier.IsValid() {
		return "", ErrInvalidTier
	}
	return tier, nil
}

// Identity is what the identity provider vouches for on each request.
type Identity struct {
	UserID uuid.UUID
	Role   Role
	Tier   Tier
}

func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}
