package gorm

import (
	"context"
	"errors"
	"time"

	"github.com/learnhub/learnhub/internal/cache"
	domainCoupon "github.com/learnhub/learnhub/internal/domain/coupon"
	ierr "github.com/learnhub/learnhub/internal/errors"
	"github.com/learnhub/learnhub/internal/logger"
	"github.com/learnhub/learnhub/internal/postgres"
	"gorm.io/gorm"
)

type couponRepository struct {
	client postgres.IClient
	log    *logger.Logger
	cache  cache.Cache
}

func NewCouponRepository(client postgres.IClient, log *logger.Logger, c cache.Cache) domainCoupon.Repository {
	return &couponRepository{
		client: client,
		log:    log,
		cache:  c,
	}
}

func (r *couponRepository) Create(ctx context.Context, c *domainCoupon.Coupon) error {
	r.log.Debugw("creating coupon", "code", c.Code)

	if err := r.client.Querier(ctx).Create(c).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ierr.WithError(err).
				WithHintf("A coupon with code %s already exists", c.Code).
				Mark(ierr.ErrAlreadyExists)
		}
		return ierr.WithError(err).
			WithHint("Failed to create coupon").
			Mark(ierr.ErrDatabase)
	}

	return nil
}

func (r *couponRepository) Get(ctx context.Context, id int) (*domainCoupon.Coupon, error) {
	if cached, found := r.cache.Get(ctx, cache.GenerateKey(cache.PrefixCoupon, id)); found {
		if c, ok := cached.(*domainCoupon.Coupon); ok {
			return c, nil
		}
	}

	var c domainCoupon.Coupon
	err := r.client.Querier(ctx).First(&c, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ierr.NewError("coupon not found").
				WithHintf("Coupon with id %d was not found", id).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to get coupon").
			Mark(ierr.ErrDatabase)
	}

	r.cache.Set(ctx, cache.GenerateKey(cache.PrefixCoupon, id), &c, cache.DefaultExpiration)
	return &c, nil
}

func (r *couponRepository) GetByCode(ctx context.Context, code string) (*domainCoupon.Coupon, error) {
	var c domainCoupon.Coupon
	err := r.client.Querier(ctx).First(&c, "code = ?", code).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ierr.NewError("coupon not found").
				WithHint("Invalid coupon code").
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to get coupon by code").
			Mark(ierr.ErrDatabase)
	}

	return &c, nil
}

func (r *couponRepository) List(ctx context.Context) ([]*domainCoupon.Coupon, error) {
	var coupons []*domainCoupon.Coupon
	err := r.client.Querier(ctx).
		Order("created_at DESC").
		Find(&coupons).Error
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list coupons").
			Mark(ierr.ErrDatabase)
	}

	return coupons, nil
}

func (r *couponRepository) Update(ctx context.Context, c *domainCoupon.Coupon) error {
	r.log.Debugw("updating coupon", "coupon_id", c.ID)

	result := r.client.Querier(ctx).
		Model(&domainCoupon.Coupon{}).
		Where("id = ?", c.ID).
		Updates(map[string]interface{}{
			"description":     c.Description,
			"discount_amount": c.DiscountAmount,
			"start_date":      c.StartDate,
			"end_date":        c.EndDate,
			"is_active":       c.IsActive,
			"usage_limit":     c.UsageLimit,
			"is_auto_apply":   c.IsAutoApply,
			"course_id":       c.CourseID,
			"updated_at":      time.Now().UTC(),
		})
	if result.Error != nil {
		return ierr.WithError(result.Error).
			WithHint("Failed to update coupon").
			Mark(ierr.ErrDatabase)
	}
	if result.RowsAffected == 0 {
		return ierr.NewError("coupon not found").
			WithHintf("Coupon with id %d was not found", c.ID).
			Mark(ierr.ErrNotFound)
	}

	r.cache.Delete(ctx, cache.GenerateKey(cache.PrefixCoupon, c.ID))
	return nil
}

func (r *couponRepository) Delete(ctx context.Context, id int) error {
	r.log.Debugw("deleting coupon", "coupon_id", id)

	result := r.client.Querier(ctx).Delete(&domainCoupon.Coupon{}, "id = ?", id)
	if result.Error != nil {
		return ierr.WithError(result.Error).
			WithHint("Failed to delete coupon").
			Mark(ierr.ErrDatabase)
	}
	if result.RowsAffected == 0 {
		return ierr.NewError("coupon not found").
			WithHintf("Coupon with id %d was not found", id).
			Mark(ierr.ErrNotFound)
	}

	r.cache.Delete(ctx, cache.GenerateKey(cache.PrefixCoupon, id))
	return nil
}

func (r *couponRepository) GetActiveAutoApply(ctx context.Context, now time.Time) (*domainCoupon.Coupon, error) {
	var c domainCoupon.Coupon
	err := r.client.Querier(ctx).
		Where("is_active = ? AND is_auto_apply = ?", true, true).
		Where("start_date <= ? AND end_date >= ?", now, now).
		First(&c).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ierr.NewError("no active auto-apply coupon").
				WithHint("No auto-apply coupon is currently active").
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to get auto-apply coupon").
			Mark(ierr.ErrDatabase)
	}

	return &c, nil
}

// IncrementUsageCount performs a conditional increment so two concurrent
// redemptions cannot push the counter past the limit. The WHERE clause
// re-checks the limit inside the database.
func (r *couponRepository) IncrementUsageCount(ctx context.Context, id int) (bool, error) {
	result := r.client.Querier(ctx).
		Model(&domainCoupon.Coupon{}).
		Where("id = ? AND (usage_limit <= 0 OR usage_count < usage_limit)", id).
		Updates(map[string]interface{}{
			"usage_count": gorm.Expr("usage_count + 1"),
			"updated_at":  time.Now().UTC(),
		})
	if result.Error != nil {
		return false, ierr.WithError(result.Error).
			WithHint("Failed to increment coupon usage").
			Mark(ierr.ErrDatabase)
	}

	r.cache.Delete(ctx, cache.GenerateKey(cache.PrefixCoupon, id))
	return result.RowsAffected > 0, nil
}
