//go:build unit

package infra_test

import (
	"testing"

	"court-booking-engine/internal/infra"
	"court-booking-engine/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
)

func TestWrapRepoErr(t *testing.T) {
	cause := errs.New("connection reset")

	t.Run("defaults to a database failure", func(t *testing.T) {
		err := infra.WrapRepoErr("save reservation", cause)
		assert.True(t, infra.IsKind(err, infra.KindDBFailure))
		assert.True(t, errs.Is(err, cause))
		assert.Contains(t, err.Error(), "DB_FAILURE: save reservation")
	})

	t.Run("keeps an explicit kind", func(t *testing.T) {
		err := infra.WrapRepoErr("insert redeem code", cause, infra.KindDuplicateKey)
		assert.True(t, infra.IsKind(err, infra.KindDuplicateKey))
		assert.False(t, infra.IsKind(err, infra.KindDBFailure))
	})

	t.Run("kind is visible through wrapping", func(t *testing.T) {
		err := errs.Mark(infra.NotFound("account"), errs.ErrDatabaseOperationFailed)
		assert.True(t, infra.IsKind(err, infra.KindNotFound))
		assert.Equal(t, "NOT_FOUND: account", infra.NotFound("account").Error())
	})
}
