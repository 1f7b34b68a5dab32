package coupon

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestIsWithinWindow(t *testing.T) {
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 6, 30, 23, 59, 59, 0, time.UTC)
	c := &Coupon{StartDate: start, EndDate: end}

	testCases := []struct {
		name string
		now  time.Time
		want bool
	}{
		{"before_start", start.Add(-time.Second), false},
		{"exactly_start", start, true},
		{"mid_window", start.Add(15 * 24 * time.Hour), true},
		{"exactly_end", end, true},
		{"after_end", end.Add(time.Second), false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, c.IsWithinWindow(tc.now))
		})
	}
}

func TestHasRemainingUses(t *testing.T) {
	testCases := []struct {
		name  string
		limit int
		count int
		want  bool
	}{
		{"unlimited_zero", 0, 1000, true},
		{"unlimited_negative", -1, 1000, true},
		{"under_limit", 5, 4, true},
		{"at_limit", 5, 5, false},
		{"over_limit", 5, 6, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c := &Coupon{UsageLimit: tc.limit, UsageCount: tc.count}
			assert.Equal(t, tc.want, c.HasRemainingUses())
		})
	}
}

func TestAppliesTo(t *testing.T) {
	courseID := 7

	unscoped := &Coupon{}
	assert.True(t, unscoped.AppliesTo(7))
	assert.True(t, unscoped.AppliesTo(42))

	scoped := &Coupon{CourseID: &courseID}
	assert.True(t, scoped.AppliesTo(7))
	assert.False(t, scoped.AppliesTo(42))
}

func TestApplyDiscount(t *testing.T) {
	c := &Coupon{DiscountAmount: decimal.NewFromInt(30)}

	assert.True(t, c.ApplyDiscount(decimal.NewFromInt(100)).Equal(decimal.NewFromInt(70)))
	assert.True(t, c.ApplyDiscount(decimal.NewFromInt(30)).Equal(decimal.Zero))
	// Discount larger than the price never yields a negative total
	assert.True(t, c.ApplyDiscount(decimal.NewFromInt(20)).Equal(decimal.Zero))
}
