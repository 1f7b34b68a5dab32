package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFailureMessage(t *testing.T) {
	// The exact strings are part of the API contract
	testCases := []struct {
		code    CouponFailureCode
		message string
	}{
		{FailureCourseNotFound, "Course not found"},
		{FailureCouponNotFound, "Invalid coupon code"},
		{FailureCouponExpired, "Coupon is expired or not yet active"},
		{FailureCouponDisabled, "Coupon is not active"},
		{FailureUsageLimitReached, "Coupon usage limit reached"},
		{FailureWrongCourse, "Coupon is not valid for this course"},
		{FailureAlreadyUsed, "You have already used this coupon"},
		{CouponFailureCode("UNKNOWN"), "Coupon cannot be applied"},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.message, FailureMessage(tc.code), string(tc.code))
	}
}
