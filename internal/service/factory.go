package service

import (
	"github.com/learnhub/learnhub/internal/config"
	"github.com/learnhub/learnhub/internal/domain/coupon"
	"github.com/learnhub/learnhub/internal/domain/course"
	"github.com/learnhub/learnhub/internal/domain/user"
	"github.com/learnhub/learnhub/internal/logger"
	"github.com/learnhub/learnhub/internal/postgres"
)

// ServiceParams holds common dependencies for services
type ServiceParams struct {
	Logger *logger.Logger
	Config *config.Configuration
	DB     postgres.IClient

	// Repositories
	CouponRepo      coupon.Repository
	CouponUsageRepo coupon.UsageRepository
	CourseRepo      course.Repository
	UserRepo        user.Repository
}

// NewServiceParams bundles the common service dependencies
func NewServiceParams(
	logger *logger.Logger,
	config *config.Configuration,
	db postgres.IClient,
	couponRepo coupon.Repository,
	couponUsageRepo coupon.UsageRepository,
	courseRepo course.Repository,
	userRepo user.Repository,
) ServiceParams {
	return ServiceParams{
		Logger:          logger,
		Config:          config,
		DB:              db,
		CouponRepo:      couponRepo,
		CouponUsageRepo: couponUsageRepo,
		CourseRepo:      courseRepo,
		UserRepo:        userRepo,
	}
}
