package coupon

import (
	"time"

	"github.com/shopspring/decimal"
)

// Coupon represents a time boxed discount rule, optionally scoped to a single
// course. A usage limit of zero or below means unlimited redemptions.
type Coupon struct {
	ID             int             `json:"id" gorm:"primaryKey;autoIncrement"`
	Code           string          `json:"code" gorm:"size:64;uniqueIndex;not null"`
	Description    string          `json:"description"`
	DiscountAmount decimal.Decimal `json:"discount_amount" gorm:"type:numeric(12,2)"`
	StartDate      time.Time       `json:"start_date"`
	EndDate        time.Time       `json:"end_date"`
	IsActive       bool            `json:"is_active"`
	UsageLimit     int             `json:"usage_limit"`
	UsageCount     int             `json:"usage_count"`
	IsAutoApply    bool            `json:"is_auto_apply"`
	CourseID       *int            `json:"course_id" gorm:"index"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// IsWithinWindow reports whether now falls inside the coupon's validity
// window. Both boundaries are inclusive.
func (c *Coupon) IsWithinWindow(now time.Time) bool {
	return !now.Before(c.StartDate) && !now.After(c.EndDate)
}

// HasRemainingUses reports whether the coupon can still be redeemed under its
// usage limit. A limit of zero or below never exhausts.
func (c *Coupon) HasRemainingUses() bool {
	if c.UsageLimit <= 0 {
		return true
	}
	return c.UsageCount < c.UsageLimit
}

// AppliesTo reports whether the coupon can be used for the given course. A
// coupon without a course scope applies to any course.
func (c *Coupon) AppliesTo(courseID int) bool {
	return c.CourseID == nil || *c.CourseID == courseID
}

// ApplyDiscount returns the final price after subtracting the discount,
// clamped at zero.
func (c *Coupon) ApplyDiscount(originalPrice decimal.Decimal) decimal.Decimal {
	finalPrice := originalPrice.Sub(c.DiscountAmount)
	if finalPrice.LessThan(decimal.Zero) {
		return decimal.Zero
	}
	return finalPrice
}

// Usage is an append-only ledger entry recording that a user redeemed a
// coupon. At most one entry may exist per (coupon, user) pair, enforced by a
// unique index.
type Usage struct {
	ID       int       `json:"id" gorm:"primaryKey;autoIncrement"`
	CouponID int       `json:"coupon_id" gorm:"uniqueIndex:idx_coupon_usages_coupon_user;not null"`
	UserID   string    `json:"user_id" gorm:"size:128;uniqueIndex:idx_coupon_usages_coupon_user;not null"`
	UsedAt   time.Time `json:"used_at"`
}

func (Usage) TableName() string {
	return "coupon_usages"
}
