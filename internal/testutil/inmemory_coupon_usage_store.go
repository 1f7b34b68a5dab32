package testutil

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/learnhub/learnhub/internal/domain/coupon"
	ierr "github.com/learnhub/learnhub/internal/errors"
)

// InMemoryCouponUsageStore is an in-memory implementation of
// coupon.UsageRepository. It enforces the same (coupon, user) uniqueness the
// real schema enforces with a unique index.
type InMemoryCouponUsageStore struct {
	mu     sync.RWMutex
	usages map[int]*coupon.Usage
	nextID int
}

func NewInMemoryCouponUsageStore() *InMemoryCouponUsageStore {
	return &InMemoryCouponUsageStore{
		usages: make(map[int]*coupon.Usage),
		nextID: 1,
	}
}

func (s *InMemoryCouponUsageStore) Create(ctx context.Context, usage *coupon.Usage) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.usages {
		if existing.CouponID == usage.CouponID && existing.UserID == usage.UserID {
			return ierr.NewError(fmt.Sprintf("usage already recorded for coupon %d user %s", usage.CouponID, usage.UserID)).
				WithHint("You have already used this coupon").
				Mark(ierr.ErrAlreadyExists)
		}
	}

	usage.ID = s.nextID
	s.nextID++

	copied := *usage
	s.usages[usage.ID] = &copied
	return nil
}

func (s *InMemoryCouponUsageStore) Exists(ctx context.Context, couponID int, userID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.usages {
		if u.CouponID == couponID && u.UserID == userID {
			return true, nil
		}
	}

	return false, nil
}

func (s *InMemoryCouponUsageStore) ListByCoupon(ctx context.Context, couponID int) ([]*coupon.Usage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*coupon.Usage
	for _, u := range s.usages {
		if u.CouponID == couponID {
			copied := *u
			result = append(result, &copied)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].UsedAt.After(result[j].UsedAt)
	})

	return result, nil
}

func (s *InMemoryCouponUsageStore) DeleteByCoupon(ctx context.Context, couponID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, u := range s.usages {
		if u.CouponID == couponID {
			delete(s.usages, id)
		}
	}

	return nil
}

type usageStoreState struct {
	usages map[int]*coupon.Usage
	nextID int
}

func (s *InMemoryCouponUsageStore) snapshot() interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	usages := make(map[int]*coupon.Usage, len(s.usages))
	for id, u := range s.usages {
		copied := *u
		usages[id] = &copied
	}
	return &usageStoreState{usages: usages, nextID: s.nextID}
}

func (s *InMemoryCouponUsageStore) restore(state interface{}) {
	st := state.(*usageStoreState)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.usages = st.usages
	s.nextID = st.nextID
}

// Count returns the total number of ledger entries
func (s *InMemoryCouponUsageStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.usages)
}

func (s *InMemoryCouponUsageStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.usages = make(map[int]*coupon.Usage)
	s.nextID = 1
}
