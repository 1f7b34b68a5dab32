package api

import (
	"github.com/gin-gonic/gin"
	v1 "github.com/learnhub/learnhub/internal/api/v1"
	"github.com/learnhub/learnhub/internal/auth"
	"github.com/learnhub/learnhub/internal/logger"
	"github.com/learnhub/learnhub/internal/rest/middleware"
	"github.com/learnhub/learnhub/internal/service"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type Handlers struct {
	Health *v1.HealthHandler
	Coupon *v1.CouponHandler
	Course *v1.CourseHandler
}

func NewRouter(
	handlers Handlers,
	authProvider auth.Provider,
	userService service.UserService,
	log *logger.Logger,
) *gin.Engine {
	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.RequestIDMiddleware,
		middleware.CORSMiddleware,
		middleware.ErrorHandler(),
	)

	router.GET("/health", handlers.Health.Health)
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := router.Group("/api")
	registerAPIRoutes(api, handlers, authProvider, userService, log)

	return router
}

func registerAPIRoutes(
	router *gin.RouterGroup,
	handlers Handlers,
	authProvider auth.Provider,
	userService service.UserService,
	log *logger.Logger,
) {
	coupons := router.Group("/coupons")
	{
		coupons.GET("", handlers.Coupon.ListCoupons)
		coupons.POST("", handlers.Coupon.CreateCoupon)
		coupons.GET("/auto-apply", handlers.Coupon.GetAutoApplyCoupon)
		coupons.GET("/:id", handlers.Coupon.GetCoupon)
		coupons.PUT("/:id", handlers.Coupon.UpdateCoupon)
		coupons.DELETE("/:id", handlers.Coupon.DeleteCoupon)
		coupons.PATCH("/:id/toggle", handlers.Coupon.ToggleCouponStatus)
		coupons.GET("/:id/usage", handlers.Coupon.GetUsageHistory)

		// validate and use need an authenticated caller
		authenticated := coupons.Group("", middleware.AuthenticateMiddleware(authProvider, userService, log))
		{
			authenticated.POST("/validate", handlers.Coupon.ValidateCoupon)
			authenticated.POST("/use", handlers.Coupon.UseCoupon)
		}
	}

	courses := router.Group("/courses")
	{
		courses.GET("", handlers.Course.ListCourses)
		courses.GET("/:id", handlers.Course.GetCourse)
	}
}
