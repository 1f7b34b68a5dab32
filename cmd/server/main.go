package main

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/learnhub/learnhub/internal/api"
	v1 "github.com/learnhub/learnhub/internal/api/v1"
	"github.com/learnhub/learnhub/internal/auth"
	"github.com/learnhub/learnhub/internal/cache"
	"github.com/learnhub/learnhub/internal/config"
	"github.com/learnhub/learnhub/internal/logger"
	"github.com/learnhub/learnhub/internal/postgres"
	"github.com/learnhub/learnhub/internal/repository"
	"github.com/learnhub/learnhub/internal/service"
	"github.com/learnhub/learnhub/internal/types"
	"github.com/learnhub/learnhub/internal/validator"
	"go.uber.org/fx"
)

// @title LearnHub Coupon API
// @version 1.0
// @description Coupon validation and redemption service for the LearnHub platform
// @BasePath /api
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Bearer token issued by the identity provider

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

			// Cache
			cache.Initialize,
			provideCache,

			// Postgres
			provideDBClient,

			// Auth provider
			auth.NewProvider,

			// Repositories
			repository.NewCouponRepository,
			repository.NewCouponUsageRepository,
			repository.NewCourseRepository,
			repository.NewUserRepository,
		),
		postgres.Module(),
	)

	// Service layer
	opts = append(opts,
		fx.Provide(
			service.NewServiceParams,

			service.NewCouponService,
			service.NewCouponValidationService,
			service.NewCourseService,
			service.NewUserService,
		),
	)

	// API
	opts = append(opts,
		fx.Provide(
			provideHandlers,
			provideRouter,
		),
		fx.Invoke(
			startServer,
		),
	)

	app := fx.New(opts...)
	app.Run()
}

func provideCache(c *cache.InMemoryCache) cache.Cache {
	return c
}

func provideDBClient(c *postgres.Client) postgres.IClient {
	return c
}

func provideHandlers(
	log *logger.Logger,
	couponService service.CouponService,
	validationService service.CouponValidationService,
	courseService service.CourseService,
) api.Handlers {
	return api.Handlers{
		Health: v1.NewHealthHandler(),
		Coupon: v1.NewCouponHandler(couponService, validationService, log),
		Course: v1.NewCourseHandler(courseService, log),
	}
}

func provideRouter(
	handlers api.Handlers,
	authProvider auth.Provider,
	userService service.UserService,
	log *logger.Logger,
) *gin.Engine {
	return api.NewRouter(handlers, authProvider, userService, log)
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

	switch mode {
	case types.ModeLocal, types.ModeAPI:
		startAPIServer(lc, r, cfg, log)
	default:
		log.Fatalf("Unknown deployment mode: %s", mode)
	}
}

func startAPIServer(
	lc fx.Lifecycle,
	r *gin.Engine,
	cfg *config.Configuration,
	log *logger.Logger,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Infow("Starting API server", "address", cfg.Server.Address)
			go func() {
				if err := r.Run(cfg.Server.Address); err != nil {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Shutting down server...")
			return nil
		},
	})
}
