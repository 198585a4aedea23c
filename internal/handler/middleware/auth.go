package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"court-booking-engine/internal/domain/user"
	"court-booking-engine/internal/handler/httperr"
	"court-booking-engine/internal/pkg/errs"
	"court-booking-engine/internal/usecase"

	"github.com/gin-gonic/gin"
)

type AuthMiddleware struct {
	tokenValidator usecase.TokenValidator
}

const ctxIdentityKey = "identity"

var (
	errTokenRequired     = errs.New("access token required")
	errInsufficientRoles = errs.New("insufficient permissions")
)

var roleHierarchy = map[user.Role]int{
	user.RoleMember:   1,
	user.RoleOperator: 2,
	user.RoleAdmin:    3,
}

func NewAuthMiddleware(tokenValidator usecase.TokenValidator) *AuthMiddleware {
	return &AuthMiddleware{
		tokenValidator: tokenValidator,
	}
}

func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimSpace(authHeader[len("Bearer "):])
	}
	return ""
}

func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			httperr.AbortWithError(c, http.StatusUnauthorized, errTokenRequired, "Access token required", nil)
			return
		}

		id, err := m.tokenValidator.ValidateToken(token)
		if err != nil {
			slog.Warn("Token validation failed in auth middleware", "error", err.Error())
			httperr.AbortWithError(c, http.StatusUnauthorized, err, "Invalid or expired token", nil)
			return
		}

		SetIdentity(c, id)
		c.Next()
	}
}

func hasMinimumRole(userRole, minRole user.Role) bool {
	userLevel, userExists := roleHierarchy[userRole]
	minLevel, minExists := roleHierarchy[minRole]
	return userExists && minExists && userLevel >= minLevel
}

// RequireRoleAtLeast must run after RequireAuth.
func (m *AuthMiddleware) RequireRoleAtLeast(minRole user.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := GetIdentity(c)
		if !ok {
			httperr.AbortWithError(c, http.StatusInternalServerError, errs.New("identity missing from context"), "Internal server error", nil)
			return
		}

		if !hasMinimumRole(id.Role, minRole) {
			httperr.AbortWithError(c, http.StatusForbidden, errInsufficientRoles, "Insufficient permissions", nil)
			return
		}

		c.Next()
	}
}

func SetIdentity(c *gin.Context, id user.Identity) {
	c.Set(ctxIdentityKey, id)
}

func GetIdentity(c *gin.Context) (user.Identity, bool) {
	v, exists := c.Get(ctxIdentityKey)
	if !exists {
		return user.Identity{}, false
	}
	id, ok := v.(user.Identity)
	return id, ok
}
