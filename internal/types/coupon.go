package types

// CouponFailureCode classifies why a coupon could not be applied to a course
// purchase. Failure outcomes are business results, not errors, and are
// reported back to the caller inside the validation result.
type CouponFailureCode string

const (
	FailureCourseNotFound    CouponFailureCode = "COURSE_NOT_FOUND"
	FailureCouponNotFound    CouponFailureCode = "COUPON_NOT_FOUND"
	FailureCouponExpired     CouponFailureCode = "COUPON_EXPIRED"
	FailureCouponDisabled    CouponFailureCode = "COUPON_DISABLED"
	FailureUsageLimitReached CouponFailureCode = "USAGE_LIMIT_REACHED"
	FailureWrongCourse       CouponFailureCode = "WRONG_COURSE"
	FailureAlreadyUsed       CouponFailureCode = "ALREADY_USED"
)

// FailureMessage returns the user facing message for a failure code.
func FailureMessage(code CouponFailureCode) string {
	switch code {
	case FailureCourseNotFound:
		return "Course not found"
	case FailureCouponNotFound:
		return "Invalid coupon code"
	case FailureCouponExpired:
		return "Coupon is expired or not yet active"
	case FailureCouponDisabled:
		return "Coupon is not active"
	case FailureUsageLimitReached:
		return "Coupon usage limit reached"
	case FailureWrongCourse:
		return "Coupon is not valid for this course"
	case FailureAlreadyUsed:
		return "You have already used this coupon"
	default:
		return "Coupon cannot be applied"
	}
}
