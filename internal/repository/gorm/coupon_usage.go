package gorm

import (
	"context"
	"errors"

	domainCoupon "github.com/learnhub/learnhub/internal/domain/coupon"
	ierr "github.com/learnhub/learnhub/internal/errors"
	"github.com/learnhub/learnhub/internal/logger"
	"github.com/learnhub/learnhub/internal/postgres"
	"gorm.io/gorm"
)

type couponUsageRepository struct {
	client postgres.IClient
	log    *logger.Logger
}

func NewCouponUsageRepository(client postgres.IClient, log *logger.Logger) domainCoupon.UsageRepository {
	return &couponUsageRepository{
		client: client,
		log:    log,
	}
}

// Create appends a ledger entry. The unique index on (coupon_id, user_id)
// turns a concurrent double redemption into an already exists error.
func (r *couponUsageRepository) Create(ctx context.Context, usage *domainCoupon.Usage) error {
	r.log.Debugw("recording coupon usage",
		"coupon_id", usage.CouponID,
		"user_id", usage.UserID,
	)

	if err := r.client.Querier(ctx).Create(usage).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ierr.WithError(err).
				WithHint("You have already used this coupon").
				Mark(ierr.ErrAlreadyExists)
		}
		return ierr.WithError(err).
			WithHint("Failed to record coupon usage").
			Mark(ierr.ErrDatabase)
	}

	return nil
}

func (r *couponUsageRepository) Exists(ctx context.Context, couponID int, userID string) (bool, error) {
	var count int64
	err := r.client.Querier(ctx).
		Model(&domainCoupon.Usage{}).
		Where("coupon_id = ? AND user_id = ?", couponID, userID).
		Count(&count).Error
	if err != nil {
		return false, ierr.WithError(err).
			WithHint("Failed to check coupon usage").
			Mark(ierr.ErrDatabase)
	}

	return count > 0, nil
}

func (r *couponUsageRepository) ListByCoupon(ctx context.Context, couponID int) ([]*domainCoupon.Usage, error) {
	var usages []*domainCoupon.Usage
	err := r.client.Querier(ctx).
		Where("coupon_id = ?", couponID).
		Order("used_at DESC").
		Find(&usages).Error
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list coupon usage").
			Mark(ierr.ErrDatabase)
	}

	return usages, nil
}

func (r *couponUsageRepository) DeleteByCoupon(ctx context.Context, couponID int) error {
	err := r.client.Querier(ctx).
		Delete(&domainCoupon.Usage{}, "coupon_id = ?", couponID).Error
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to delete coupon usage records").
			Mark(ierr.ErrDatabase)
	}

	return nil
}
