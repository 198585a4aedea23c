//go:build unit

package queries_test

import (
	"testing"
	"time"

	"court-booking-engine/internal/pkg/errs"
	"court-booking-engine/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCursor(t *testing.T) {
	t.Run("round trip keeps microseconds", func(t *testing.T) {
		at := time.Date(2030, time.June, 1, 12, 0, 0, 123456000, time.UTC)
		id := uuid.New()

		gotAt, gotID, err := queries.DecodeAfterCursor(queries.EncodeAfterCursor(at, id))
		require.NoError(t, err)
		assert.True(t, at.Equal(gotAt))
		assert.Equal(t, id, gotID)
	})

	t.Run("garbage is a validation error", func(t *testing.T) {
		for _, c := range []string{"!!!", "djE6", "djI6MTIzLWFiYw=="} {
			_, _, err := queries.DecodeAfterCursor(c)
			require.ErrorIs(t, err, errs.ErrDomainValidation, c)
		}
	})

	t.Run("limits", func(t *testing.T) {
		assert.Equal(t, queries.DefaultListLimit, queries.ValidateLimit(0))
		assert.Equal(t, queries.MaxListLimit, queries.ValidateLimit(10_000))
		assert.Equal(t, 7, queries.ValidateLimit(7))

		page, err := queries.PageFrom("", 7)
		require.NoError(t, err)
		assert.Equal(t, 8, page.Limit)
		assert.False(t, page.HasCursor())
	})
}
