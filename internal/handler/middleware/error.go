package middleware

import (
	"log/slog"
	"net/http"

	"court-booking-engine/internal/handler/httperr"
	"court-booking-engine/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

var errPanic = errs.New("panic")

// ErrorHandler writes a response for handlers that only recorded an error. A public error
// carries its own response; a private one is mapped like any usecase error.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() || len(c.Errors) == 0 {
			return
		}
		last := c.Errors.Last()
		if resp, ok := last.Meta.(httperr.Response); ok && last.IsType(gin.ErrorTypePublic) {
			c.JSON(resp.Status, resp)
			return
		}
		resp := httperr.FromError(last.Err)
		if resp.Status >= http.StatusInternalServerError {
			slog.Error("unhandled error",
				"path", c.FullPath(),
				"request_id", GetRequestID(c),
				"stack", errs.ExtractStackLines(last.Err, 12))
		}
		c.JSON(resp.Status, resp)
	}
}

// CustomRecovery turns a panic into a 500 with the internal error code. The booking in flight
// is rolled back by its unit of work.
func CustomRecovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				attrs := []any{"panic", r, "path", c.Request.URL.Path, "request_id", GetRequestID(c)}
				if id, ok := GetIdentity(c); ok {
					attrs = append(attrs, "user_id", id.UserID.String())
				}
				slog.Error("recovered from panic", attrs...)

				resp := httperr.FromError(errPanic)
				_ = c.Error(gin.Error{Err: errPanic, Type: gin.ErrorTypePrivate})
				c.AbortWithStatusJSON(http.StatusInternalServerError, resp)
			}
		}()
		c.Next()
	}
}
