package handler

import (
	"log/slog"
	"net/http"

	"court-booking-engine/internal/domain/user"
	"court-booking-engine/internal/handler/api"
	"court-booking-engine/internal/handler/middleware"
	"court-booking-engine/internal/infra/metrics"
	"court-booking-engine/internal/pkg/config"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

type RouterParams struct {
	fx.In

	Engine      *gin.Engine
	Config      config.Config
	Logger      *slog.Logger
	Metrics     *metrics.BookingMetrics
	Gatherer    prometheus.Gatherer
	Auth        *middleware.AuthMiddleware
	RateLimiter *middleware.RateLimiter
	Catalog     *api.CatalogHandler
	Booking     *api.BookingHandler
	Reservation *api.ReservationHandler
	FullVenue   *api.FullVenueHandler
	Ledger      *api.LedgerHandler
	Admin       *api.AdminHandler
}

func NewRouter(p RouterParams) {
	setupMiddleware(p.Engine, p.Config, p.Logger, p.Metrics)
	setupRoutes(p)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config, logger *slog.Logger, m *metrics.BookingMetrics) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.HTTPMetrics(m))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(p RouterParams) {
	engine := p.Engine
	engine.GET("/health", healthCheck)
	engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(p.Gatherer, promhttp.HandlerOpts{})))

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	apiGroup.Use(p.Auth.RequireAuth())
	{
		limited := []gin.HandlerFunc{p.RateLimiter.Middleware()}
		addRoutes(apiGroup, []route{
			{Method: http.MethodGet, Path: "/resources", Handler: p.Catalog.ListResources},
			{Method: http.MethodGet, Path: "/tariff", Handler: p.Catalog.GetTariff},

			{Method: http.MethodPost, Path: "/quotes", Handler: p.Booking.Quote, Mw: limited},
			{Method: http.MethodPost, Path: "/availability", Handler: p.Booking.Availability, Mw: limited},
			{Method: http.MethodPost, Path: "/availability/batch", Handler: p.Booking.BatchAvailability, Mw: limited},

			{Method: http.MethodPost, Path: "/reservations", Handler: p.Reservation.Create},
			{Method: http.MethodGet, Path: "/reservations", Handler: p.Reservation.ListMine},
			{Method: http.MethodGet, Path: "/reservations/:id", Handler: p.Reservation.Get},
			{Method: http.MethodPost, Path: "/reservations/:id/cancel", Handler: p.Reservation.Cancel},

			{Method: http.MethodPost, Path: "/full-venue", Handler: p.FullVenue.Create},
			{Method: http.MethodGet, Path: "/full-venue/:id", Handler: p.FullVenue.Get},
			{Method: http.MethodPost, Path: "/full-venue/:id/cancel", Handler: p.FullVenue.Cancel},

			{Method: http.MethodGet, Path: "/ledger/balance", Handler: p.Ledger.MyBalance},
			{Method: http.MethodGet, Path: "/ledger/transactions", Handler: p.Ledger.MyHistory},
		})

		// Read-only staff views.
		staff := apiGroup.Group("/admin")
		staff.Use(p.Auth.RequireRoleAtLeast(user.RoleOperator))
		addRoutes(staff, []route{
			{Method: http.MethodGet, Path: "/resources/:id/reservations", Handler: p.Reservation.ListByResourceDate},
			{Method: http.MethodGet, Path: "/ledger/:userId/balance", Handler: p.Ledger.UserBalance},
			{Method: http.MethodGet, Path: "/ledger/:userId/transactions", Handler: p.Ledger.UserHistory},
			{Method: http.MethodGet, Path: "/redeem-codes", Handler: p.Catalog.ListRedeemCodes},
		})

		admin := apiGroup.Group("/admin")
		admin.Use(p.Auth.RequireRoleAtLeast(user.RoleAdmin))
		addRoutes(admin, []route{
			{Method: http.MethodPost, Path: "/reservations", Handler: p.Reservation.AdminCreate},
			{Method: http.MethodPost, Path: "/full-venue", Handler: p.FullVenue.AdminCreate},

			{Method: http.MethodPost, Path: "/resources", Handler: p.Admin.CreateResource},
			{Method: http.MethodPatch, Path: "/resources/:id", Handler: p.Admin.UpdateResource},

			{Method: http.MethodPut, Path: "/tariff/holidays/:date", Handler: p.Admin.AddHoliday},
			{Method: http.MethodDelete, Path: "/tariff/holidays/:date", Handler: p.Admin.RemoveHoliday},
			{Method: http.MethodPut, Path: "/tariff/weekend", Handler: p.Admin.SetWeekendPolicy},
			{Method: http.MethodPut, Path: "/tariff/rates", Handler: p.Admin.SetRate},

			{Method: http.MethodPost, Path: "/redeem-codes", Handler: p.Admin.CreateRedeemCode},
			{Method: http.MethodDelete, Path: "/redeem-codes/:code", Handler: p.Admin.DeactivateRedeemCode},

			{Method: http.MethodPost, Path: "/ledger/credits", Handler: p.Ledger.Credit},
			{Method: http.MethodPost, Path: "/ledger/debits", Handler: p.Ledger.Debit},
			{Method: http.MethodPost, Path: "/ledger/recharges", Handler: p.Ledger.Recharge},
			{Method: http.MethodPut, Path: "/ledger/recharges/:id/status", Handler: p.Ledger.SetRechargeStatus},
			{Method: http.MethodPost, Path: "/ledger/adjustments", Handler: p.Ledger.Adjust},
		})
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
