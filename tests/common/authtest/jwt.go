//go:build unit || e2e

package authtest

import (
	"testing"
	"time"

	"court-booking-engine/internal/domain/user"
	"court-booking-engine/internal/pkg/config"
	"court-booking-engine/internal/pkg/jwt"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type JWTHelper struct {
	cfg config.JWTConfig
}

func NewJWTHelper(cfg config.JWTConfig) *JWTHelper {
	return &JWTHelper{cfg: cfg}
}

// service mints tokens the app under test accepts: same secret, issuer and audience.
func (h *JWTHelper) service(duration time.Duration) *jwt.Service {
	var opts []jwt.Option
	if h.cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(h.cfg.Issuer))
	}
	if h.cfg.Audience != "" {
		opts = append(opts, jwt.WithAudience(h.cfg.Audience))
	}
	return jwt.NewService(h.cfg.Secret, duration, opts...)
}

func (h *JWTHelper) GenerateToken(t *testing.T, id user.Identity) string {
	t.Helper()
	duration, err := time.ParseDuration(h.cfg.Duration)
	require.NoError(t, err)
	token, err := h.service(duration).GenerateToken(id)
	require.NoError(t, err)
	return token
}

// CreateExpiredToken returns a token that expired an hour ago, well past any leeway.
func (h *JWTHelper) CreateExpiredToken(t *testing.T, id user.Identity) string {
	t.Helper()
	token, err := h.service(-time.Hour).GenerateToken(id)
	require.NoError(t, err)
	return token
}

// NewIdentity returns a fresh identity with the given role and tier.
func NewIdentity(role user.Role, tier user.Tier) user.Identity {
	return user.Identity{UserID: uuid.New(), Role: role, Tier: tier}
}
