//go:build unit

package jwt_test

import (
	"testing"
	"time"

	"court-booking-engine/internal/domain/user"
	"court-booking-engine/internal/pkg/jwt"
	"court-booking-engine/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	svc := jwt.NewService("secret", time.Hour)
	id := user.Identity{UserID: uuid.New(), Role: user.RoleAdmin, Tier: user.TierVIP}

	token, err := svc.GenerateToken(id)
	require.NoError(t, err)

	got, err := usecase.NewTokenValidator(svc).ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, id, got)
}

func TestValidateTokenRejects(t *testing.T) {
	svc := jwt.NewService("secret", time.Hour)
	id := user.Identity{UserID: uuid.New(), Role: user.RoleMember, Tier: user.TierRegular}

	t.Run("other secret", func(t *testing.T) {
		token, err := jwt.NewService("other", time.Hour).GenerateToken(id)
		require.NoError(t, err)
		_, err = svc.ValidateToken(token)
		assert.ErrorIs(t, err, jwt.ErrInvalidToken)
	})

	t.Run("expired", func(t *testing.T) {
		token, err := jwt.NewService("secret", -time.Minute).GenerateToken(id)
		require.NoError(t, err)
		_, err = svc.ValidateToken(token)
		assert.ErrorIs(t, err, jwt.ErrExpiredToken)
	})

	t.Run("unknown role", func(t *testing.T) {
		token, err := svc.GenerateToken(user.Identity{UserID: id.UserID, Role: "viewer"})
		require.NoError(t, err)
		_, err = usecase.NewTokenValidator(svc).ValidateToken(token)
		assert.ErrorIs(t, err, user.ErrInvalidRole)
	})

	t.Run("missing tier means regular", func(t *testing.T) {
		token, err := svc.GenerateToken(user.Identity{UserID: id.UserID, Role: user.RoleMember})
		require.NoError(t, err)
		got, err := usecase.NewTokenValidator(svc).ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, user.TierRegular, got.Tier)
	})
}

func TestIssuerAndAudience(t *testing.T) {
	id := user.Identity{UserID: uuid.New(), Role: user.RoleMember, Tier: user.TierRegular}
	svc := jwt.NewService("secret", time.Hour, jwt.WithIssuer("idp"), jwt.WithAudience("booking"))

	token, err := svc.GenerateToken(id)
	require.NoError(t, err)
	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, id.UserID.String(), claims.Subject)

	t.Run("wrong issuer", func(t *testing.T) {
		other, err := jwt.NewService("secret", time.Hour, jwt.WithIssuer("elsewhere"), jwt.WithAudience("booking")).GenerateToken(id)
		require.NoError(t, err)
		_, err = svc.ValidateToken(other)
		assert.ErrorIs(t, err, jwt.ErrInvalidToken)
	})

	t.Run("missing audience", func(t *testing.T) {
		other, err := jwt.NewService("secret", time.Hour, jwt.WithIssuer("idp")).GenerateToken(id)
		require.NoError(t, err)
		_, err = svc.ValidateToken(other)
		assert.ErrorIs(t, err, jwt.ErrInvalidToken)
	})
}

func TestLeewayToleratesSkew(t *testing.T) {
	id := user.Identity{UserID: uuid.New(), Role: user.RoleMember, Tier: user.TierRegular}
	token, err := jwt.NewService("secret", -10*time.Second).GenerateToken(id)
	require.NoError(t, err)

	_, err = jwt.NewService("secret", time.Hour, jwt.WithLeeway(time.Minute)).ValidateToken(token)
	assert.NoError(t, err)

	_, err = jwt.NewService("secret", time.Hour).ValidateToken(token)
	assert.ErrorIs(t, err, jwt.ErrExpiredToken)
}
