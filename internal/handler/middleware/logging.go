package middleware

import (
	"context"
	"log/slog"
	"os"
	"strings"
	"time"

	"court-booking-engine/internal/handler/httperr"
	"court-booking-engine/internal/pkg/config"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	requestIDHeader    = "X-Request-ID"
	ctxRequestIDKey    = "request_id"
	maxInboundIDLength = 64
)

type Logger struct {
	logger   *slog.Logger
	timezone *time.Location
}

func NewLogger(cfg config.LogConfig) *Logger {
	var logLevel slog.Level
	switch strings.ToLower(cfg.Level) {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	timezone := time.FixedZone(cfg.TimeZone, cfg.TimeZoneOffset)

	opts := &slog.HandlerOptions{
		Level: logLevel,
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				if t, ok := a.Value.Any().(time.Time); ok {
					a.Value = slog.StringValue(t.In(timezone).Format(cfg.TimeFormat))
				}
			}
			return a
		},
	}

	var handler slog.Handler
	if gin.Mode() == gin.ReleaseMode {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return &Logger{logger: slog.New(handler), timezone: timezone}
}

func (l *Logger) Slog() *slog.Logger {
	return l.logger
}

// RequestLogger logs every request twice: on arrival and on completion. The completion line
// carries the caller's identity and the error code of a failed booking.
func RequestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		startTime := time.Now()
		requestID := inboundRequestID(c)
		c.Set(ctxRequestIDKey, requestID)
		c.Header(requestIDHeader, requestID)

		logAttrs := []slog.Attr{
			slog.String("request_id", requestID),
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.String("client_ip", c.ClientIP()),
		}
		if key := c.GetHeader("Idempotency-Key"); key != "" {
			logAttrs = append(logAttrs, slog.String("idempotency_key", key))
		}

		logger.LogAttrs(context.Background(), slog.LevelDebug, "Request started", logAttrs...)

		c.Next()

		statusCode := c.Writer.Status()
		attrs := append(logAttrs,
			slog.Int("status_code", statusCode),
			slog.Duration("duration", time.Since(startTime)),
		)
		if id, ok := GetIdentity(c); ok {
			attrs = append(attrs,
				slog.String("user_id", id.UserID.String()),
				slog.String("role", id.Role.String()),
				slog.String("tier", string(id.Tier)),
			)
		}
		if size := c.Writer.Size(); size > 0 {
			attrs = append(attrs, slog.Int("response_size", size))
		}
		if code := errorCode(c); code != "" {
			attrs = append(attrs, slog.String("error_code", code))
		}
		if len(c.Errors) > 0 {
			attrs = append(attrs, slog.String("errors", c.Errors.String()))
		}

		level := slog.LevelInfo
		switch {
		case statusCode >= 500:
			level = slog.LevelError
		case statusCode >= 400:
			level = slog.LevelWarn
		}
		logger.LogAttrs(context.Background(), level, "Request completed", attrs...)
	}
}

func GetRequestID(c *gin.Context) string {
	return c.GetString(ctxRequestIDKey)
}

func inboundRequestID(c *gin.Context) string {
	if id := strings.TrimSpace(c.GetHeader(requestIDHeader)); id != "" && len(id) <= maxInboundIDLength {
		return id
	}
	return uuid.NewString()
}

// errorCode returns the code of the last public error response, if any.
func errorCode(c *gin.Context) string {
	for i := len(c.Errors) - 1; i >= 0; i-- {
		if resp, ok := c.Errors[i].Meta.(httperr.Response); ok {
			return resp.Error.Code
		}
	}
	return ""
}
