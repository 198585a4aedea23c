package usecase

import (
	"court-booking-engine/internal/domain/user"
	"court-booking-engine/internal/pkg/errs"
	"court-booking-engine/internal/pkg/jwt"

	"github.com/google/uuid"
)

// TokenValidator provides token validation for middleware
type TokenValidator interface {
	ValidateToken(tokenString string) (user.Identity, error)
}

type tokenValidatorImpl struct {
	jwtService *jwt.Service
}

func NewTokenValidator(jwtService *jwt.Service) TokenValidator {
	return &tokenValidatorImpl{
		jwtService: jwtService,
	}
}

func (t *tokenValidatorImpl) ValidateToken(tokenString string) (user.Identity, error) {
	claims, err := t.jwtService.ValidateToken(tokenString)
	if err != nil {
		return user.Identity{}, err
	}
	if claims.UserID == uuid.Nil {
		return user.Identity{}, errs.Wrap(jwt.ErrInvalidToken, "token has no subject")
	}

	role, err := user.NewRole(claims.Role)
	if err != nil {
		return user.Identity{}, errs.Wrap(err, "token role")
	}
	tier, err := user.NewTier(claims.Tier)
	if err != nil {
		return user.Identity{}, errs.Wrap(err, "token tier")
	}

	return user.Identity{UserID: claims.UserID, Role: role, Tier: tier}, nil
}
