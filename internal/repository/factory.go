package repository

import (
	"github.com/learnhub/learnhub/internal/cache"
	"github.com/learnhub/learnhub/internal/domain/coupon"
	"github.com/learnhub/learnhub/internal/domain/course"
	"github.com/learnhub/learnhub/internal/domain/user"
	"github.com/learnhub/learnhub/internal/logger"
	"github.com/learnhub/learnhub/internal/postgres"
	gormRepo "github.com/learnhub/learnhub/internal/repository/gorm"
)

func NewCouponRepository(client postgres.IClient, log *logger.Logger, c cache.Cache) coupon.Repository {
	return gormRepo.NewCouponRepository(client, log, c)
}

func NewCouponUsageRepository(client postgres.IClient, log *logger.Logger) coupon.UsageRepository {
	return gormRepo.NewCouponUsageRepository(client, log)
}

func NewCourseRepository(client postgres.IClient, log *logger.Logger, c cache.Cache) course.Repository {
	return gormRepo.NewCourseRepository(client, log, c)
}

func NewUserRepository(client postgres.IClient, log *logger.Logger) user.Repository {
	return gormRepo.NewUserRepository(client, log)
}
