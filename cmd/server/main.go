package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/bohselecta/luvler-metering/internal/api"
	v1 "github.com/bohselecta/luvler-metering/internal/api/v1"
	"github.com/bohselecta/luvler-metering/internal/blob"
	"github.com/bohselecta/luvler-metering/internal/cache"
	"github.com/bohselecta/luvler-metering/internal/config"
	"github.com/bohselecta/luvler-metering/internal/logger"
	"github.com/bohselecta/luvler-metering/internal/repository"
	"github.com/bohselecta/luvler-metering/internal/sentry"
	"github.com/bohselecta/luvler-metering/internal/service"
	"github.com/bohselecta/luvler-metering/internal/types"
	"github.com/bohselecta/luvler-metering/internal/validator"
)

// @title Luvler Metering API
// @version 1.0
// @description Tiered usage metering and entitlement resolution service
// @BasePath /v1

func init() {
	// Set UTC timezone for the entire application
	time.Local = time.UTC
}

func main() {
	var opts []fx.Option

	// Core dependencies
	opts = append(opts,
		fx.Provide(
			// Validator
			validator.NewValidator,

			// Config
			config.NewConfig,

			// Logger
			logger.NewLogger,

			// Monitoring
			sentry.NewSentryService,

			// Cache
			cache.NewInMemoryCache,

			// Blob store
			blob.NewStore,

			// Repositories
			repository.NewUsageRepository,
			repository.NewBillingRepository,
		),
	)

	// Service layer
	opts = append(opts,
		fx.Provide(
			service.NewServiceParams,

			service.NewTierService,
			service.NewUsageService,
			service.NewBillingService,
			service.NewMeteringService,
		),
	)

	// API
	opts = append(opts,
		fx.Provide(
			provideHandlers,
			provideRouter,
		),
		fx.Invoke(
			sentry.RegisterHooks,
			startServer,
		),
	)

	app := fx.New(opts...)
	app.Run()
}

func provideHandlers(
	cfg *config.Configuration,
	logger *logger.Logger,
	tierService service.TierService,
	usageService service.UsageService,
	billingService service.BillingService,
	meteringService service.MeteringService,
) api.Handlers {
	return api.Handlers{
		Health:   v1.NewHealthHandler(logger),
		Tier:     v1.NewTierHandler(tierService, logger),
		Usage:    v1.NewUsageHandler(usageService, logger),
		Metering: v1.NewMeteringHandler(meteringService, logger),
		Billing:  v1.NewBillingHandler(billingService, logger),
	}
}

func provideRouter(handlers api.Handlers, cfg *config.Configuration, logger *logger.Logger) *gin.Engine {
	return api.NewRouter(handlers, cfg, logger)
}

func startServer(
	lc fx.Lifecycle,
	cfg *config.Configuration,
	r *gin.Engine,
	log *logger.Logger,
) {
	mode := cfg.Deployment.Mode
	if mode == "" {
		mode = types.ModeLocal
	}

	srv := &http.Server{
		Addr:    cfg.Server.Address,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Infow("starting API server",
				"address", cfg.Server.Address,
				"mode", mode,
			)
			go func() {
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Shutting down server...")
			return srv.Shutdown(ctx)
		},
	})
}
