package coupon

import (
	"context"
	"time"
)

// Repository defines the interface for coupon data access
type Repository interface {
	Create(ctx context.Context, coupon *Coupon) error
	Get(ctx context.Context, id int) (*Coupon, error)
	GetByCode(ctx context.Context, code string) (*Coupon, error)
	List(ctx context.Context) ([]*Coupon, error)
	Update(ctx context.Context, coupon *Coupon) error
	Delete(ctx context.Context, id int) error

	// GetActiveAutoApply returns the coupon that is active, marked auto
	// apply and inside its validity window at the given instant, or a not
	// found error when no such coupon exists.
	GetActiveAutoApply(ctx context.Context, now time.Time) (*Coupon, error)

	// IncrementUsageCount increments the usage counter only while the
	// coupon still has remaining uses. Returns false when the limit was
	// already reached.
	IncrementUsageCount(ctx context.Context, id int) (bool, error)
}

// UsageRepository defines the interface for the redemption ledger.
type UsageRepository interface {
	Create(ctx context.Context, usage *Usage) error
	Exists(ctx context.Context, couponID int, userID string) (bool, error)
	ListByCoupon(ctx context.Context, couponID int) ([]*Usage, error)
	DeleteByCoupon(ctx context.Context, couponID int) error
}
