package dto

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func validCreate() CreateCouponRequest {
	now := time.Now().UTC()
	return CreateCouponRequest{
		Code:           "SAVE10",
		DiscountAmount: decimal.NewFromInt(10),
		StartDate:      now,
		EndDate:        now.Add(24 * time.Hour),
	}
}

func TestCreateCouponRequestValidate(t *testing.T) {
	req := validCreate()
	assert.NoError(t, req.Validate())

	req = validCreate()
	req.Code = "X"
	assert.Error(t, req.Validate(), "code shorter than two characters")

	req = validCreate()
	req.DiscountAmount = decimal.NewFromInt(-5)
	assert.Error(t, req.Validate())

	req = validCreate()
	req.EndDate = req.StartDate.Add(-time.Minute)
	assert.Error(t, req.Validate())
}

func TestCreateCouponRequestToCoupon(t *testing.T) {
	req := validCreate()
	c := req.ToCoupon()

	assert.True(t, c.IsActive)
	assert.Zero(t, c.UsageCount)
	assert.Equal(t, time.UTC, c.StartDate.Location())
	assert.Equal(t, time.UTC, c.EndDate.Location())
}

func TestUpdateCouponRequestValidate(t *testing.T) {
	now := time.Now().UTC()
	req := UpdateCouponRequest{
		DiscountAmount: decimal.NewFromInt(10),
		StartDate:      now,
		EndDate:        now.Add(time.Hour),
	}
	assert.NoError(t, req.Validate())

	req.EndDate = now.Add(-time.Hour)
	assert.Error(t, req.Validate())
}

func TestValidateCouponRequest(t *testing.T) {
	req := ValidateCouponRequest{Code: "SAVE10", CourseID: 1}
	assert.NoError(t, req.Validate())

	assert.Error(t, (&ValidateCouponRequest{CourseID: 1}).Validate())
	assert.Error(t, (&ValidateCouponRequest{Code: "SAVE10"}).Validate())
	assert.Error(t, (&ValidateCouponRequest{Code: "SAVE10", CourseID: -1}).Validate())
}
