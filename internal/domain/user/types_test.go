//go:build unit

package user_test

import (
	"testing"

	"court-booking-engine/internal/domain/user"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRole(t *testing.T) {
	cases := []struct {
		in    string
		errIs error
		staff bool
	}{
		{in: "member"},
		{in: "operator", staff: true},
		{in: "admin", staff: true},
		{in: "viewer", errIs: user.ErrInvalidRole},
		{in: "", errIs: user.ErrInvalidRole},
	}
	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			role, err := user.NewRole(c.in)
			if c.errIs != nil {
				require.ErrorIs(t, err, c.errIs)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, c.staff, role.IsStaff())
		})
	}
}

func TestTier(t *testing.T) {
	t.Run("empty defaults to regular", func(t *testing.T) {
		tier, err := user.NewTier("")
		require.NoError(t, err)
		assert.Equal(t, user.TierRegular, tier)
	})

	t.Run("vip", func(t *testing.T) {
		tier, err := user.NewTier("vip")
		require.NoError(t, err)
		assert.Equal(t, user.TierVIP, tier)
	})

	t.Run("unknown tier", func(t *testing.T) {
		_, err := user.NewTier("platinum")
		require.ErrorIs(t, err, user.ErrInvalidTier)
	})
}
