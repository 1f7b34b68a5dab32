package service

import (
	"context"
	"time"

	"github.com/learnhub/learnhub/internal/api/dto"
	"github.com/learnhub/learnhub/internal/domain/coupon"
	"github.com/learnhub/learnhub/internal/domain/user"
	ierr "github.com/learnhub/learnhub/internal/errors"
	"github.com/samber/lo"
)

// CouponService defines the interface for coupon management operations
type CouponService interface {
	CreateCoupon(ctx context.Context, req dto.CreateCouponRequest) (*dto.CouponResponse, error)
	GetCoupon(ctx context.Context, id int) (*dto.CouponResponse, error)
	ListCoupons(ctx context.Context) (*dto.ListCouponsResponse, error)
	UpdateCoupon(ctx context.Context, id int, req dto.UpdateCouponRequest) (*dto.CouponResponse, error)
	DeleteCoupon(ctx context.Context, id int) error
	ToggleCouponStatus(ctx context.Context, id int) (*dto.CouponResponse, error)
	GetUsageHistory(ctx context.Context, id int) (*dto.ListCouponUsageResponse, error)
	GetActiveAutoApplyCoupon(ctx context.Context) (*dto.CouponResponse, error)
}

type couponService struct {
	ServiceParams
}

// NewCouponService creates a new coupon service
func NewCouponService(params ServiceParams) CouponService {
	return &couponService{
		ServiceParams: params,
	}
}

func (s *couponService) CreateCoupon(ctx context.Context, req dto.CreateCouponRequest) (*dto.CouponResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if req.IsAutoApply {
		if err := s.checkAutoApplyConflict(ctx, 0); err != nil {
			return nil, err
		}
	}

	c := req.ToCoupon()
	if err := s.CouponRepo.Create(ctx, c); err != nil {
		return nil, err
	}

	s.Logger.Infow("created coupon",
		"coupon_id", c.ID,
		"code", c.Code,
	)

	return dto.NewCouponResponse(c), nil
}

func (s *couponService) GetCoupon(ctx context.Context, id int) (*dto.CouponResponse, error) {
	c, err := s.CouponRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.NewCouponResponse(c), nil
}

func (s *couponService) ListCoupons(ctx context.Context) (*dto.ListCouponsResponse, error) {
	coupons, err := s.CouponRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	items := lo.Map(coupons, func(c *coupon.Coupon, _ int) *dto.CouponResponse {
		return dto.NewCouponResponse(c)
	})

	return &dto.ListCouponsResponse{
		Items: items,
		Total: len(items),
	}, nil
}

func (s *couponService) UpdateCoupon(ctx context.Context, id int, req dto.UpdateCouponRequest) (*dto.CouponResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.CouponRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	// Only an update that newly turns auto apply on competes for the
	// sitewide slot.
	if req.IsAutoApply && !existing.IsAutoApply {
		if err := s.checkAutoApplyConflict(ctx, id); err != nil {
			return nil, err
		}
	}

	existing.Description = req.Description
	existing.DiscountAmount = req.DiscountAmount
	existing.StartDate = req.StartDate.UTC()
	existing.EndDate = req.EndDate.UTC()
	existing.IsActive = req.IsActive
	existing.UsageLimit = req.UsageLimit
	existing.IsAutoApply = req.IsAutoApply
	existing.CourseID = req.CourseID

	if err := s.CouponRepo.Update(ctx, existing); err != nil {
		return nil, err
	}

	s.Logger.Infow("updated coupon", "coupon_id", id)

	return dto.NewCouponResponse(existing), nil
}

// DeleteCoupon removes the coupon and its usage ledger entries in one
// transaction.
func (s *couponService) DeleteCoupon(ctx context.Context, id int) error {
	err := s.DB.WithTx(ctx, func(txCtx context.Context) error {
		if err := s.CouponUsageRepo.DeleteByCoupon(txCtx, id); err != nil {
			return err
		}
		return s.CouponRepo.Delete(txCtx, id)
	})
	if err != nil {
		return err
	}

	s.Logger.Infow("deleted coupon", "coupon_id", id)
	return nil
}

func (s *couponService) ToggleCouponStatus(ctx context.Context, id int) (*dto.CouponResponse, error) {
	existing, err := s.CouponRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	existing.IsActive = !existing.IsActive
	if err := s.CouponRepo.Update(ctx, existing); err != nil {
		return nil, err
	}

	s.Logger.Infow("toggled coupon status",
		"coupon_id", id,
		"is_active", existing.IsActive,
	)

	return dto.NewCouponResponse(existing), nil
}

func (s *couponService) GetUsageHistory(ctx context.Context, id int) (*dto.ListCouponUsageResponse, error) {
	if _, err := s.CouponRepo.Get(ctx, id); err != nil {
		return nil, err
	}

	usages, err := s.CouponUsageRepo.ListByCoupon(ctx, id)
	if err != nil {
		return nil, err
	}

	userIDs := lo.Uniq(lo.Map(usages, func(u *coupon.Usage, _ int) string {
		return u.UserID
	}))

	users, err := s.UserRepo.GetByIDs(ctx, userIDs)
	if err != nil {
		return nil, err
	}
	usersByID := lo.KeyBy(users, func(u *user.User) string {
		return u.ID
	})

	items := lo.Map(usages, func(u *coupon.Usage, _ int) *dto.CouponUsageResponse {
		item := &dto.CouponUsageResponse{
			ID:       u.ID,
			CouponID: u.CouponID,
			UserID:   u.UserID,
			UsedAt:   u.UsedAt,
		}
		if profile, ok := usersByID[u.UserID]; ok {
			item.UserName = profile.Name
			item.UserEmail = profile.Email
		}
		return item
	})

	return &dto.ListCouponUsageResponse{
		Items: items,
		Total: len(items),
	}, nil
}

func (s *couponService) GetActiveAutoApplyCoupon(ctx context.Context) (*dto.CouponResponse, error) {
	c, err := s.CouponRepo.GetActiveAutoApply(ctx, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	return dto.NewCouponResponse(c), nil
}

// checkAutoApplyConflict rejects a write that would produce a second active
// in-window auto apply coupon. Best effort, two concurrent writes can still
// race past it.
func (s *couponService) checkAutoApplyConflict(ctx context.Context, excludeID int) error {
	active, err := s.CouponRepo.GetActiveAutoApply(ctx, time.Now().UTC())
	if err != nil {
		if ierr.IsNotFound(err) {
			return nil
		}
		return err
	}

	if active.ID != excludeID {
		return ierr.NewError("auto-apply coupon already active").
			WithHintf("An auto-apply coupon (%s) is already active", active.Code).
			Mark(ierr.ErrInvalidOperation)
	}

	return nil
}
