package api

import (
	"github.com/gin-gonic/gin"

	v1 "github.com/bohselecta/luvler-metering/internal/api/v1"
	"github.com/bohselecta/luvler-metering/internal/config"
	"github.com/bohselecta/luvler-metering/internal/logger"
	"github.com/bohselecta/luvler-metering/internal/rest/middleware"
)

type Handlers struct {
	Health   *v1.HealthHandler
	Tier     *v1.TierHandler
	Usage    *v1.UsageHandler
	Metering *v1.MeteringHandler
	Billing  *v1.BillingHandler
}

func NewRouter(handlers Handlers, cfg *config.Configuration, log *logger.Logger) *gin.Engine {
	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.RequestIDMiddleware,
		middleware.CORSMiddleware,
		middleware.ErrorHandler(),
	)

	router.GET("/health", handlers.Health.Health)

	// v1 routes
	v1Group := router.Group("/v1")
	registerV1Routes(v1Group, handlers, cfg, log)

	return router
}

func registerV1Routes(router *gin.RouterGroup, handlers Handlers, cfg *config.Configuration, log *logger.Logger) {
	// Public routes: authentication is optional, anonymous callers get the
	// unmetered demo path
	public := router.Group("", middleware.OptionalAuthMiddleware(cfg, log))
	{
		public.GET("/tiers", handlers.Tier.ListTiers)

		usage := public.Group("/usage")
		{
			usage.GET("", handlers.Usage.GetUsage)
			usage.GET("/history", handlers.Usage.GetUsageHistory)
		}

		metering := public.Group("/metering")
		{
			metering.POST("/check", handlers.Metering.Check)
			metering.POST("/record", handlers.Metering.Record)
		}
	}

	// Admin routes: guarded by the static admin key
	admin := router.Group("/admin", middleware.AdminAuthMiddleware(cfg, log))
	{
		admin.PUT("/users/:id/tier", handlers.Billing.SetUserTier)
		admin.GET("/users/:id/subscription", handlers.Billing.GetUserSubscription)
		admin.PUT("/orgs/:id/tier", handlers.Billing.SetOrgTier)
		admin.GET("/orgs/:id/subscription", handlers.Billing.GetOrgSubscription)
	}
}
