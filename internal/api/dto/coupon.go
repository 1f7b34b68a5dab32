package dto

import (
	"time"

	"github.com/learnhub/learnhub/internal/domain/coupon"
	ierr "github.com/learnhub/learnhub/internal/errors"
	"github.com/learnhub/learnhub/internal/types"
	"github.com/learnhub/learnhub/internal/validator"
	"github.com/shopspring/decimal"
)

// CreateCouponRequest represents the request to create a new coupon
type CreateCouponRequest struct {
	Code           string          `json:"code" validate:"required,min=2,max=64"`
	Description    string          `json:"description" validate:"max=1024"`
	DiscountAmount decimal.Decimal `json:"discount_amount" validate:"required"`
	StartDate      time.Time       `json:"start_date" validate:"required"`
	EndDate        time.Time       `json:"end_date" validate:"required"`
	UsageLimit     int             `json:"usage_limit"`
	IsAutoApply    bool            `json:"is_auto_apply"`
	CourseID       *int            `json:"course_id"`
}

func (r *CreateCouponRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}

	if r.DiscountAmount.IsNegative() {
		return ierr.NewError("discount amount must not be negative").
			WithHint("Discount amount must be zero or positive").
			Mark(ierr.ErrValidation)
	}

	if r.EndDate.Before(r.StartDate) {
		return ierr.NewError("end date before start date").
			WithHint("End date must not be before start date").
			Mark(ierr.ErrValidation)
	}

	return nil
}

// ToCoupon converts the request to a domain coupon. New coupons always start
// active.
func (r *CreateCouponRequest) ToCoupon() *coupon.Coupon {
	now := time.Now().UTC()
	return &coupon.Coupon{
		Code:           r.Code,
		Description:    r.Description,
		DiscountAmount: r.DiscountAmount,
		StartDate:      r.StartDate.UTC(),
		EndDate:        r.EndDate.UTC(),
		IsActive:       true,
		UsageLimit:     r.UsageLimit,
		IsAutoApply:    r.IsAutoApply,
		CourseID:       r.CourseID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// UpdateCouponRequest represents the request to update an existing coupon.
// The code and the usage counter cannot be changed.
type UpdateCouponRequest struct {
	Description    string          `json:"description" validate:"max=1024"`
	DiscountAmount decimal.Decimal `json:"discount_amount" validate:"required"`
	StartDate      time.Time       `json:"start_date" validate:"required"`
	EndDate        time.Time       `json:"end_date" validate:"required"`
	UsageLimit     int             `json:"usage_limit"`
	IsActive       bool            `json:"is_active"`
	IsAutoApply    bool            `json:"is_auto_apply"`
	CourseID       *int            `json:"course_id"`
}

func (r *UpdateCouponRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}

	if r.DiscountAmount.IsNegative() {
		return ierr.NewError("discount amount must not be negative").
			WithHint("Discount amount must be zero or positive").
			Mark(ierr.ErrValidation)
	}

	if r.EndDate.Before(r.StartDate) {
		return ierr.NewError("end date before start date").
			WithHint("End date must not be before start date").
			Mark(ierr.ErrValidation)
	}

	return nil
}

// CouponResponse represents a coupon in API responses
type CouponResponse struct {
	*coupon.Coupon
}

// NewCouponResponse creates a new coupon response from a domain coupon
func NewCouponResponse(c *coupon.Coupon) *CouponResponse {
	return &CouponResponse{Coupon: c}
}

// ListCouponsResponse represents the paginated list of coupons
type ListCouponsResponse struct {
	Items []*CouponResponse `json:"items"`
	Total int               `json:"total"`
}

// ValidateCouponRequest represents the request to validate a coupon code
// against a course for the authenticated user
type ValidateCouponRequest struct {
	Code     string `json:"code" validate:"required"`
	CourseID int    `json:"course_id" validate:"required,gt=0"`
}

func (r *ValidateCouponRequest) Validate() error {
	return validator.ValidateRequest(r)
}

// RedeemCouponRequest represents the request to redeem a coupon
type RedeemCouponRequest struct {
	Code     string `json:"code" validate:"required"`
	CourseID int    `json:"course_id" validate:"required,gt=0"`
}

func (r *RedeemCouponRequest) Validate() error {
	return validator.ValidateRequest(r)
}

// CouponValidationResult reports whether a coupon can be applied and, when it
// can, the resulting prices. A failed validation is a business outcome, not
// an error.
type CouponValidationResult struct {
	IsValid        bool                    `json:"is_valid"`
	FailureCode    types.CouponFailureCode `json:"failure_code,omitempty"`
	Message        string                  `json:"message,omitempty"`
	OriginalPrice  decimal.Decimal         `json:"original_price"`
	DiscountAmount decimal.Decimal         `json:"discount_amount"`
	FinalPrice     decimal.Decimal         `json:"final_price"`
	Coupon         *CouponResponse         `json:"coupon,omitempty"`
}

// NewFailedValidationResult builds a declined validation result for the given
// failure code.
func NewFailedValidationResult(code types.CouponFailureCode) *CouponValidationResult {
	return &CouponValidationResult{
		IsValid:     false,
		FailureCode: code,
		Message:     types.FailureMessage(code),
	}
}

// RedeemCouponResponse represents a successful redemption
type RedeemCouponResponse struct {
	Message        string          `json:"message"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	FinalPrice     decimal.Decimal `json:"final_price"`
}

// CouponUsageResponse represents one ledger entry in the usage history,
// enriched with the redeeming user's profile when available
type CouponUsageResponse struct {
	ID        int       `json:"id"`
	CouponID  int       `json:"coupon_id"`
	UserID    string    `json:"user_id"`
	UserName  string    `json:"user_name,omitempty"`
	UserEmail string    `json:"user_email,omitempty"`
	UsedAt    time.Time `json:"used_at"`
}

// ListCouponUsageResponse represents the usage history of a coupon
type ListCouponUsageResponse struct {
	Items []*CouponUsageResponse `json:"items"`
	Total int                    `json:"total"`
}
