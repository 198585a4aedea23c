//go:build unit

package api_test

import (
	"net/http"
	"testing"

	"court-booking-engine/internal/domain/user"
	"court-booking-engine/internal/handler/middleware"
	"court-booking-engine/internal/pkg/config"
	"court-booking-engine/internal/usecase/shared"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

// authAs stands in for the JWT middleware: any Authorization header authenticates as id.
func authAs(id *user.Identity) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": gin.H{"message": "Unauthorized"}})
			return
		}
		middleware.SetIdentity(c, *id)
		c.Next()
	}
}

func testPolicy(t *testing.T) shared.BookingPolicy {
	t.Helper()
	policy, err := shared.NewBookingPolicy(config.NewTestConfig().Booking)
	require.NoError(t, err)
	return policy
}
