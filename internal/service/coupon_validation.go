package service

import (
	"context"
	"errors"
	"time"

	"github.com/learnhub/learnhub/internal/api/dto"
	"github.com/learnhub/learnhub/internal/domain/coupon"
	ierr "github.com/learnhub/learnhub/internal/errors"
	"github.com/learnhub/learnhub/internal/types"
)

// CouponValidationService implements the coupon eligibility rules and the
// redemption flow
type CouponValidationService interface {
	// ValidateAndCalculateDiscount runs the eligibility checks in order and
	// computes the discounted price. Read only, never records usage.
	ValidateAndCalculateDiscount(ctx context.Context, code string, courseID int, userID string) (*dto.CouponValidationResult, error)

	// RedeemCoupon re-validates and, when eligible, atomically increments
	// the usage counter and appends the ledger entry.
	RedeemCoupon(ctx context.Context, code string, courseID int, userID string) (*dto.CouponValidationResult, error)
}

type couponValidationService struct {
	ServiceParams
}

// NewCouponValidationService creates a new coupon validation service
func NewCouponValidationService(params ServiceParams) CouponValidationService {
	return &couponValidationService{
		ServiceParams: params,
	}
}

// errRedeemDeclined aborts the redemption transaction when the conditional
// increment finds the limit already reached.
var errRedeemDeclined = errors.New("redemption declined")

func (s *couponValidationService) ValidateAndCalculateDiscount(ctx context.Context, code string, courseID int, userID string) (*dto.CouponValidationResult, error) {
	course, err := s.CourseRepo.Get(ctx, courseID)
	if err != nil {
		if ierr.IsNotFound(err) {
			return dto.NewFailedValidationResult(types.FailureCourseNotFound), nil
		}
		return nil, err
	}

	// Once the course is known every outcome carries its price.
	failed := func(code types.CouponFailureCode) *dto.CouponValidationResult {
		result := dto.NewFailedValidationResult(code)
		result.OriginalPrice = course.Price
		return result
	}

	c, err := s.CouponRepo.GetByCode(ctx, code)
	if err != nil {
		if ierr.IsNotFound(err) {
			return failed(types.FailureCouponNotFound), nil
		}
		return nil, err
	}

	now := time.Now().UTC()

	// The order of these checks is part of the API contract, each failure
	// reports its own reason and hides the later ones.
	if !c.IsWithinWindow(now) {
		return failed(types.FailureCouponExpired), nil
	}

	if !c.IsActive {
		return failed(types.FailureCouponDisabled), nil
	}

	if !c.HasRemainingUses() {
		return failed(types.FailureUsageLimitReached), nil
	}

	if !c.AppliesTo(courseID) {
		return failed(types.FailureWrongCourse), nil
	}

	used, err := s.CouponUsageRepo.Exists(ctx, c.ID, userID)
	if err != nil {
		return nil, err
	}
	if used {
		return failed(types.FailureAlreadyUsed), nil
	}

	return &dto.CouponValidationResult{
		IsValid:        true,
		Message:        "Coupon is valid",
		OriginalPrice:  course.Price,
		DiscountAmount: c.DiscountAmount,
		FinalPrice:     c.ApplyDiscount(course.Price),
		Coupon:         dto.NewCouponResponse(c),
	}, nil
}

func (s *couponValidationService) RedeemCoupon(ctx context.Context, code string, courseID int, userID string) (*dto.CouponValidationResult, error) {
	result, err := s.ValidateAndCalculateDiscount(ctx, code, courseID, userID)
	if err != nil {
		return nil, err
	}
	if !result.IsValid {
		return result, nil
	}

	couponID := result.Coupon.ID
	var declined *dto.CouponValidationResult

	// The ledger append and the counter increment commit together or not
	// at all. The unique ledger index closes the double redemption race,
	// the conditional increment closes the limit race.
	err = s.DB.WithTx(ctx, func(txCtx context.Context) error {
		if err := s.CouponUsageRepo.Create(txCtx, &coupon.Usage{
			CouponID: couponID,
			UserID:   userID,
			UsedAt:   time.Now().UTC(),
		}); err != nil {
			return err
		}

		ok, err := s.CouponRepo.IncrementUsageCount(txCtx, couponID)
		if err != nil {
			return err
		}
		if !ok {
			declined = dto.NewFailedValidationResult(types.FailureUsageLimitReached)
			declined.OriginalPrice = result.OriginalPrice
			return errRedeemDeclined
		}

		return nil
	})
	if err != nil {
		if errors.Is(err, errRedeemDeclined) {
			return declined, nil
		}
		if ierr.IsAlreadyExists(err) {
			// A concurrent redemption by the same user won the race.
			alreadyUsed := dto.NewFailedValidationResult(types.FailureAlreadyUsed)
			alreadyUsed.OriginalPrice = result.OriginalPrice
			return alreadyUsed, nil
		}
		return nil, err
	}

	s.Logger.Infow("redeemed coupon",
		"coupon_id", couponID,
		"code", code,
		"user_id", userID,
	)

	return result, nil
}
