package service

import (
	"sync"
	"testing"
	"time"

	"github.com/learnhub/learnhub/internal/api/dto"
	"github.com/learnhub/learnhub/internal/domain/coupon"
	"github.com/learnhub/learnhub/internal/domain/course"
	"github.com/learnhub/learnhub/internal/testutil"
	"github.com/learnhub/learnhub/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type CouponValidationSuite struct {
	testutil.BaseServiceTestSuite
	validationService CouponValidationService
	couponRepo        *testutil.InMemoryCouponStore
	usageRepo         *testutil.InMemoryCouponUsageStore
	courseRepo        *testutil.InMemoryCourseStore
}

func TestCouponValidationService(t *testing.T) {
	suite.Run(t, new(CouponValidationSuite))
}

func (s *CouponValidationSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.setupService()
	s.setupTestData()
}

func (s *CouponValidationSuite) setupService() {
	stores := s.GetStores()
	s.couponRepo = stores.CouponRepo.(*testutil.InMemoryCouponStore)
	s.usageRepo = stores.CouponUsageRepo.(*testutil.InMemoryCouponUsageStore)
	s.courseRepo = stores.CourseRepo.(*testutil.InMemoryCourseStore)

	s.validationService = NewCouponValidationService(ServiceParams{
		Logger:          s.GetLogger(),
		Config:          s.GetConfig(),
		DB:              s.GetDB(),
		CouponRepo:      stores.CouponRepo,
		CouponUsageRepo: stores.CouponUsageRepo,
		CourseRepo:      stores.CourseRepo,
		UserRepo:        stores.UserRepo,
	})
}

func (s *CouponValidationSuite) setupTestData() {
	s.courseRepo.Add(&course.Course{
		ID:    1,
		Name:  "Go Fundamentals",
		Price: decimal.NewFromInt(50),
	})
	s.courseRepo.Add(&course.Course{
		ID:    2,
		Name:  "Advanced SQL",
		Price: decimal.NewFromInt(80),
	})
}

func (s *CouponValidationSuite) newCoupon(c *coupon.Coupon) *coupon.Coupon {
	if c.StartDate.IsZero() {
		c.StartDate = s.GetNow().Add(-24 * time.Hour)
	}
	if c.EndDate.IsZero() {
		c.EndDate = s.GetNow().Add(24 * time.Hour)
	}
	s.NoError(s.couponRepo.Create(s.GetContext(), c))
	return c
}

func (s *CouponValidationSuite) TestValidationFailureOrder() {
	courseID := 1
	s.newCoupon(&coupon.Coupon{
		Code:           "ORDERED",
		DiscountAmount: decimal.NewFromInt(10),
		StartDate:      s.GetNow().Add(-48 * time.Hour),
		EndDate:        s.GetNow().Add(-24 * time.Hour),
		IsActive:       false,
		UsageLimit:     0,
		CourseID:       &courseID,
	})

	testCases := []struct {
		name         string
		code         string
		courseID     int
		expectedCode types.CouponFailureCode
	}{
		{
			name:         "missing_course_reported_before_missing_coupon",
			code:         "NO-SUCH-CODE",
			courseID:     999,
			expectedCode: types.FailureCourseNotFound,
		},
		{
			name:         "missing_coupon",
			code:         "NO-SUCH-CODE",
			courseID:     1,
			expectedCode: types.FailureCouponNotFound,
		},
		{
			name:         "window_reported_before_active_flag",
			code:         "ORDERED",
			courseID:     1,
			expectedCode: types.FailureCouponExpired,
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			result, err := s.validationService.ValidateAndCalculateDiscount(s.GetContext(), tc.code, tc.courseID, "user-1")
			s.NoError(err)
			s.False(result.IsValid)
			s.Equal(tc.expectedCode, result.FailureCode)
			s.Equal(types.FailureMessage(tc.expectedCode), result.Message)
		})
	}
}

func (s *CouponValidationSuite) TestDisabledCoupon() {
	s.newCoupon(&coupon.Coupon{
		Code:           "DISABLED",
		DiscountAmount: decimal.NewFromInt(5),
		IsActive:       false,
	})

	result, err := s.validationService.ValidateAndCalculateDiscount(s.GetContext(), "DISABLED", 1, "user-1")
	s.NoError(err)
	s.False(result.IsValid)
	s.Equal(types.FailureCouponDisabled, result.FailureCode)
}

func (s *CouponValidationSuite) TestTimeWindowBoundaries() {
	now := s.GetNow()

	testCases := []struct {
		name      string
		startDate time.Time
		endDate   time.Time
		valid     bool
	}{
		{
			name:      "valid_exactly_at_start",
			startDate: now,
			endDate:   now.Add(time.Hour),
			valid:     true,
		},
		{
			name:      "valid_exactly_at_end",
			startDate: now.Add(-time.Hour),
			endDate:   now,
			valid:     true,
		},
		{
			name:      "invalid_before_start",
			startDate: now.Add(time.Second),
			endDate:   now.Add(time.Hour),
			valid:     false,
		},
		{
			name:      "invalid_after_end",
			startDate: now.Add(-time.Hour),
			endDate:   now.Add(-time.Second),
			valid:     false,
		},
	}

	for i, tc := range testCases {
		s.Run(tc.name, func() {
			code := "WINDOW" + string(rune('A'+i))
			s.newCoupon(&coupon.Coupon{
				Code:           code,
				DiscountAmount: decimal.NewFromInt(5),
				StartDate:      tc.startDate,
				EndDate:        tc.endDate,
				IsActive:       true,
			})

			result, err := s.validationService.ValidateAndCalculateDiscount(s.GetContext(), code, 1, "user-1")
			s.NoError(err)
			s.Equal(tc.valid, result.IsValid)
			if !tc.valid {
				s.Equal(types.FailureCouponExpired, result.FailureCode)
			}
		})
	}
}

func (s *CouponValidationSuite) TestFailedResultCarriesCoursePrice() {
	courseID := 2
	s.newCoupon(&coupon.Coupon{
		Code:           "OTHERCOURSE",
		DiscountAmount: decimal.NewFromInt(10),
		IsActive:       true,
		CourseID:       &courseID,
	})

	// Any failure after the course lookup reports the course price
	result, err := s.validationService.ValidateAndCalculateDiscount(s.GetContext(), "NOSUCH", 1, "user-1")
	s.NoError(err)
	s.False(result.IsValid)
	s.True(result.OriginalPrice.Equal(decimal.NewFromInt(50)))

	result, err = s.validationService.ValidateAndCalculateDiscount(s.GetContext(), "OTHERCOURSE", 1, "user-1")
	s.NoError(err)
	s.Equal(types.FailureWrongCourse, result.FailureCode)
	s.True(result.OriginalPrice.Equal(decimal.NewFromInt(50)))

	// Without a course there is no price to report
	result, err = s.validationService.ValidateAndCalculateDiscount(s.GetContext(), "OTHERCOURSE", 999, "user-1")
	s.NoError(err)
	s.Equal(types.FailureCourseNotFound, result.FailureCode)
	s.True(result.OriginalPrice.IsZero())
}

func (s *CouponValidationSuite) TestCourseScoping() {
	courseID := 1
	s.newCoupon(&coupon.Coupon{
		Code:           "SCOPED",
		DiscountAmount: decimal.NewFromInt(10),
		IsActive:       true,
		CourseID:       &courseID,
	})
	s.newCoupon(&coupon.Coupon{
		Code:           "SITEWIDE",
		DiscountAmount: decimal.NewFromInt(10),
		IsActive:       true,
	})

	result, err := s.validationService.ValidateAndCalculateDiscount(s.GetContext(), "SCOPED", 2, "user-1")
	s.NoError(err)
	s.False(result.IsValid)
	s.Equal(types.FailureWrongCourse, result.FailureCode)

	result, err = s.validationService.ValidateAndCalculateDiscount(s.GetContext(), "SCOPED", 1, "user-1")
	s.NoError(err)
	s.True(result.IsValid)

	for _, courseID := range []int{1, 2} {
		result, err = s.validationService.ValidateAndCalculateDiscount(s.GetContext(), "SITEWIDE", courseID, "user-1")
		s.NoError(err)
		s.True(result.IsValid)
	}
}

func (s *CouponValidationSuite) TestDiscountNeverNegative() {
	s.newCoupon(&coupon.Coupon{
		Code:           "HUGE",
		DiscountAmount: decimal.NewFromInt(100),
		IsActive:       true,
	})

	result, err := s.validationService.ValidateAndCalculateDiscount(s.GetContext(), "HUGE", 1, "user-1")
	s.NoError(err)
	s.True(result.IsValid)
	s.True(result.FinalPrice.Equal(decimal.Zero), "final price should clamp at zero, got %s", result.FinalPrice)
	s.True(result.OriginalPrice.Equal(decimal.NewFromInt(50)))
}

func (s *CouponValidationSuite) TestValidationIsReadOnly() {
	c := s.newCoupon(&coupon.Coupon{
		Code:           "READONLY",
		DiscountAmount: decimal.NewFromInt(5),
		IsActive:       true,
		UsageLimit:     3,
	})

	for i := 0; i < 5; i++ {
		result, err := s.validationService.ValidateAndCalculateDiscount(s.GetContext(), "READONLY", 1, "user-1")
		s.NoError(err)
		s.True(result.IsValid)
	}

	stored, err := s.couponRepo.Get(s.GetContext(), c.ID)
	s.NoError(err)
	s.Equal(0, stored.UsageCount)
	s.Equal(0, s.usageRepo.Count())
}

func (s *CouponValidationSuite) TestRedeemCoupon() {
	c := s.newCoupon(&coupon.Coupon{
		Code:           "REDEEM",
		DiscountAmount: decimal.NewFromInt(10),
		IsActive:       true,
		UsageLimit:     2,
	})

	result, err := s.validationService.RedeemCoupon(s.GetContext(), "REDEEM", 1, "user-a")
	s.NoError(err)
	s.True(result.IsValid)
	s.True(result.FinalPrice.Equal(decimal.NewFromInt(40)))

	stored, err := s.couponRepo.Get(s.GetContext(), c.ID)
	s.NoError(err)
	s.Equal(1, stored.UsageCount)

	used, err := s.usageRepo.Exists(s.GetContext(), c.ID, "user-a")
	s.NoError(err)
	s.True(used)

	// The same user is now reported as already used
	result, err = s.validationService.ValidateAndCalculateDiscount(s.GetContext(), "REDEEM", 1, "user-a")
	s.NoError(err)
	s.False(result.IsValid)
	s.Equal(types.FailureAlreadyUsed, result.FailureCode)

	result, err = s.validationService.RedeemCoupon(s.GetContext(), "REDEEM", 1, "user-a")
	s.NoError(err)
	s.False(result.IsValid)
	s.Equal(types.FailureAlreadyUsed, result.FailureCode)

	stored, err = s.couponRepo.Get(s.GetContext(), c.ID)
	s.NoError(err)
	s.Equal(1, stored.UsageCount)
}

func (s *CouponValidationSuite) TestUsageLimitBoundary() {
	s.newCoupon(&coupon.Coupon{
		Code:           "ONCE",
		DiscountAmount: decimal.NewFromInt(5),
		IsActive:       true,
		UsageLimit:     1,
	})

	result, err := s.validationService.RedeemCoupon(s.GetContext(), "ONCE", 1, "user-a")
	s.NoError(err)
	s.True(result.IsValid)

	// A different user hits the limit
	result, err = s.validationService.RedeemCoupon(s.GetContext(), "ONCE", 1, "user-b")
	s.NoError(err)
	s.False(result.IsValid)
	s.Equal(types.FailureUsageLimitReached, result.FailureCode)
}

func (s *CouponValidationSuite) TestUnlimitedUsage() {
	s.newCoupon(&coupon.Coupon{
		Code:           "UNLIMITED",
		DiscountAmount: decimal.NewFromInt(5),
		IsActive:       true,
		UsageLimit:     0,
	})

	users := []string{"u1", "u2", "u3", "u4", "u5"}
	for _, u := range users {
		result, err := s.validationService.RedeemCoupon(s.GetContext(), "UNLIMITED", 1, u)
		s.NoError(err)
		s.True(result.IsValid)
	}
}

func (s *CouponValidationSuite) TestConcurrentDoubleRedemption() {
	c := s.newCoupon(&coupon.Coupon{
		Code:           "RACE",
		DiscountAmount: decimal.NewFromInt(5),
		IsActive:       true,
		UsageLimit:     0,
	})

	const attempts = 10
	var wg sync.WaitGroup
	successes := make(chan bool, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			result, err := s.validationService.RedeemCoupon(s.GetContext(), "RACE", 1, "same-user")
			s.NoError(err)
			successes <- result.IsValid
		}()
	}
	wg.Wait()
	close(successes)

	succeeded := 0
	for ok := range successes {
		if ok {
			succeeded++
		}
	}

	s.Equal(1, succeeded, "only one concurrent redemption may win")
	s.Equal(1, s.usageRepo.Count())

	stored, err := s.couponRepo.Get(s.GetContext(), c.ID)
	s.NoError(err)
	s.LessOrEqual(stored.UsageCount, 1)
}

func (s *CouponValidationSuite) TestConcurrentLimitNotOvershot() {
	const limit = 3
	c := s.newCoupon(&coupon.Coupon{
		Code:           "LIMITED",
		DiscountAmount: decimal.NewFromInt(5),
		IsActive:       true,
		UsageLimit:     limit,
	})

	const attempts = 10
	var wg sync.WaitGroup
	results := make(chan *dto.CouponValidationResult, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			userID := "user-" + string(rune('a'+n))
			result, err := s.validationService.RedeemCoupon(s.GetContext(), "LIMITED", 1, userID)
			s.NoError(err)
			results <- result
		}(i)
	}
	wg.Wait()
	close(results)

	succeeded := 0
	for result := range results {
		if result.IsValid {
			succeeded++
		} else {
			s.Equal(types.FailureUsageLimitReached, result.FailureCode)
		}
	}

	s.Equal(limit, succeeded)

	stored, err := s.couponRepo.Get(s.GetContext(), c.ID)
	s.NoError(err)
	s.Equal(limit, stored.UsageCount)

	// Declined redemptions leave no ledger rows behind
	s.Equal(limit, s.usageRepo.Count())
}

func (s *CouponValidationSuite) TestEndToEndScenario() {
	courseID := 1
	s.newCoupon(&coupon.Coupon{
		Code:           "SAVE10",
		DiscountAmount: decimal.NewFromInt(10),
		IsActive:       true,
		UsageLimit:     2,
		CourseID:       &courseID,
	})

	// user A validates and redeems
	result, err := s.validationService.ValidateAndCalculateDiscount(s.GetContext(), "SAVE10", 1, "user-a")
	s.NoError(err)
	s.True(result.IsValid)
	s.True(result.FinalPrice.Equal(decimal.NewFromInt(40)))

	result, err = s.validationService.RedeemCoupon(s.GetContext(), "SAVE10", 1, "user-a")
	s.NoError(err)
	s.True(result.IsValid)

	// user A can no longer validate
	result, err = s.validationService.ValidateAndCalculateDiscount(s.GetContext(), "SAVE10", 1, "user-a")
	s.NoError(err)
	s.False(result.IsValid)
	s.Equal(types.FailureAlreadyUsed, result.FailureCode)

	// user B still can
	result, err = s.validationService.ValidateAndCalculateDiscount(s.GetContext(), "SAVE10", 1, "user-b")
	s.NoError(err)
	s.True(result.IsValid)

	result, err = s.validationService.RedeemCoupon(s.GetContext(), "SAVE10", 1, "user-b")
	s.NoError(err)
	s.True(result.IsValid)

	// user C hits the limit
	result, err = s.validationService.ValidateAndCalculateDiscount(s.GetContext(), "SAVE10", 1, "user-c")
	s.NoError(err)
	s.False(result.IsValid)
	s.Equal(types.FailureUsageLimitReached, result.FailureCode)
}
