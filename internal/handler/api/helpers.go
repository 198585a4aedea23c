package api

import (
	"net/http"
	"strconv"
	"strings"

	"court-booking-engine/internal/domain/user"
	"court-booking-engine/internal/handler/httperr"
	"court-booking-engine/internal/handler/middleware"
	"court-booking-engine/internal/pkg/errs"
	"court-booking-engine/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	idempotencyHeader    = "Idempotency-Key"
	maxIdempotencyKeyLen = 128
)

var errIdempotencyKeyTooLong = errs.New("idempotency key too long")

func mustIdentity(c *gin.Context) (user.Identity, bool) {
	id, ok := middleware.GetIdentity(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, nil, "Unauthorized", nil)
		return user.Identity{}, false
	}
	return id, true
}

func pathUUID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid "+name, nil)
		return uuid.Nil, false
	}
	return id, true
}

// requestKey reads the optional Idempotency-Key header.
func requestKey(c *gin.Context) (string, bool) {
	key := strings.TrimSpace(c.GetHeader(idempotencyHeader))
	if len(key) > maxIdempotencyKeyLen {
		httperr.AbortWithError(c, http.StatusBadRequest, errIdempotencyKeyTooLong, "Invalid idempotency key", nil)
		return "", false
	}
	return key, true
}

func pageParams(c *gin.Context) (string, int) {
	limit := queries.DefaultListLimit
	if v := c.Query("limit"); v != "" {
		if iv, e := strconv.Atoi(v); e == nil {
			limit = queries.ValidateLimit(iv)
		}
	}
	return c.Query("after"), limit
}

func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", err.Error())
		return false
	}
	return true
}

func abortInvalid(c *gin.Context, err error) {
	httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", err.Error())
}
