package middleware

import (
	"log/slog"
	"net/http"
	"slices"

	"court-booking-engine/internal/pkg/config"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Headers the booking endpoints depend on. They are added to whatever the environment
// configures.
var (
	requiredAllowHeaders  = []string{"Authorization", "Content-Type", "Idempotency-Key", requestIDHeader}
	requiredExposeHeaders = []string{"Location", "X-Next-Cursor", "Retry-After", requestIDHeader}
)

func NewCORSMiddleware(cfg config.CORSConfig) gin.HandlerFunc {
	corsCfg := cors.Config{
		AllowOrigins:     cfg.AllowOrigins,
		AllowMethods:     cfg.AllowMethods,
		AllowHeaders:     mergeHeaders(cfg.AllowHeaders, requiredAllowHeaders),
		ExposeHeaders:    mergeHeaders(cfg.ExposeHeaders, requiredExposeHeaders),
		AllowCredentials: cfg.AllowCredentials,
		MaxAge:           cfg.MaxAge,
	}
	slog.Info("CORS middleware initialized",
		"allow_origins", corsCfg.AllowOrigins,
		"expose_headers", corsCfg.ExposeHeaders)
	return cors.New(corsCfg)
}

func mergeHeaders(configured, required []string) []string {
	out := make([]string, 0, len(configured)+len(required))
	seen := make(map[string]bool, cap(out))
	for _, h := range slices.Concat(configured, required) {
		key := http.CanonicalHeaderKey(h)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, key)
	}
	return out
}
