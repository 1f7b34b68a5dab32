package testutil

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/learnhub/learnhub/internal/config"
	"github.com/learnhub/learnhub/internal/domain/coupon"
	"github.com/learnhub/learnhub/internal/logger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T) (*InMemoryCouponStore, *InMemoryCouponUsageStore, *MockPostgresClient) {
	t.Helper()

	log, err := logger.NewLogger(config.GetDefaultConfig())
	require.NoError(t, err)

	couponStore := NewInMemoryCouponStore()
	usageStore := NewInMemoryCouponUsageStore()
	client := NewMockPostgresClient(log, couponStore, usageStore).(*MockPostgresClient)
	return couponStore, usageStore, client
}

func seedCoupon(t *testing.T, store *InMemoryCouponStore) *coupon.Coupon {
	t.Helper()

	now := time.Now().UTC()
	c := &coupon.Coupon{
		Code:           "TX",
		DiscountAmount: decimal.NewFromInt(5),
		StartDate:      now.Add(-time.Hour),
		EndDate:        now.Add(time.Hour),
		IsActive:       true,
	}
	require.NoError(t, store.Create(context.Background(), c))
	return c
}

func TestWithTxCommitsOnSuccess(t *testing.T) {
	couponStore, usageStore, client := newTestClient(t)
	c := seedCoupon(t, couponStore)

	err := client.WithTx(context.Background(), func(ctx context.Context) error {
		if err := usageStore.Create(ctx, &coupon.Usage{
			CouponID: c.ID,
			UserID:   "user-a",
			UsedAt:   time.Now().UTC(),
		}); err != nil {
			return err
		}
		_, err := couponStore.IncrementUsageCount(ctx, c.ID)
		return err
	})
	require.NoError(t, err)

	assert.Equal(t, 1, usageStore.Count())
	stored, err := couponStore.Get(context.Background(), c.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, stored.UsageCount)
}

func TestWithTxRollsBackOnError(t *testing.T) {
	couponStore, usageStore, client := newTestClient(t)
	c := seedCoupon(t, couponStore)

	failure := errors.New("later write rejected")
	err := client.WithTx(context.Background(), func(ctx context.Context) error {
		if err := usageStore.Create(ctx, &coupon.Usage{
			CouponID: c.ID,
			UserID:   "user-a",
			UsedAt:   time.Now().UTC(),
		}); err != nil {
			return err
		}
		if _, err := couponStore.IncrementUsageCount(ctx, c.ID); err != nil {
			return err
		}
		return failure
	})
	require.ErrorIs(t, err, failure)

	// Both writes are gone
	assert.Equal(t, 0, usageStore.Count())
	stored, err := couponStore.Get(context.Background(), c.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, stored.UsageCount)
}
