package testutil

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/learnhub/learnhub/internal/domain/coupon"
	ierr "github.com/learnhub/learnhub/internal/errors"
)

// InMemoryCouponStore is an in-memory implementation of coupon.Repository
type InMemoryCouponStore struct {
	mu      sync.RWMutex
	coupons map[int]*coupon.Coupon
	nextID  int
}

func NewInMemoryCouponStore() *InMemoryCouponStore {
	return &InMemoryCouponStore{
		coupons: make(map[int]*coupon.Coupon),
		nextID:  1,
	}
}

func (s *InMemoryCouponStore) Create(ctx context.Context, c *coupon.Coupon) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.coupons {
		if existing.Code == c.Code {
			return ierr.NewError("duplicate coupon code").
				WithHintf("A coupon with code %s already exists", c.Code).
				Mark(ierr.ErrAlreadyExists)
		}
	}

	c.ID = s.nextID
	s.nextID++

	copied := *c
	s.coupons[c.ID] = &copied
	return nil
}

func (s *InMemoryCouponStore) Get(ctx context.Context, id int) (*coupon.Coupon, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.coupons[id]
	if !ok {
		return nil, ierr.NewError("coupon not found").
			WithHintf("Coupon with id %d was not found", id).
			Mark(ierr.ErrNotFound)
	}

	copied := *c
	return &copied, nil
}

func (s *InMemoryCouponStore) GetByCode(ctx context.Context, code string) (*coupon.Coupon, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, c := range s.coupons {
		if c.Code == code {
			copied := *c
			return &copied, nil
		}
	}

	return nil, ierr.NewError("coupon not found").
		WithHint("Invalid coupon code").
		Mark(ierr.ErrNotFound)
}

func (s *InMemoryCouponStore) List(ctx context.Context) ([]*coupon.Coupon, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*coupon.Coupon, 0, len(s.coupons))
	for _, c := range s.coupons {
		copied := *c
		result = append(result, &copied)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})

	return result, nil
}

func (s *InMemoryCouponStore) Update(ctx context.Context, c *coupon.Coupon) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.coupons[c.ID]
	if !ok {
		return ierr.NewError("coupon not found").
			WithHintf("Coupon with id %d was not found", c.ID).
			Mark(ierr.ErrNotFound)
	}

	copied := *c
	copied.UsageCount = existing.UsageCount
	copied.UpdatedAt = time.Now().UTC()
	s.coupons[c.ID] = &copied
	return nil
}

func (s *InMemoryCouponStore) Delete(ctx context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.coupons[id]; !ok {
		return ierr.NewError("coupon not found").
			WithHintf("Coupon with id %d was not found", id).
			Mark(ierr.ErrNotFound)
	}

	delete(s.coupons, id)
	return nil
}

func (s *InMemoryCouponStore) GetActiveAutoApply(ctx context.Context, now time.Time) (*coupon.Coupon, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, c := range s.coupons {
		if c.IsActive && c.IsAutoApply && c.IsWithinWindow(now) {
			copied := *c
			return &copied, nil
		}
	}

	return nil, ierr.NewError("no active auto-apply coupon").
		WithHint("No auto-apply coupon is currently active").
		Mark(ierr.ErrNotFound)
}

func (s *InMemoryCouponStore) IncrementUsageCount(ctx context.Context, id int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.coupons[id]
	if !ok {
		return false, nil
	}

	if c.UsageLimit > 0 && c.UsageCount >= c.UsageLimit {
		return false, nil
	}

	c.UsageCount++
	c.UpdatedAt = time.Now().UTC()
	return true, nil
}

type couponStoreState struct {
	coupons map[int]*coupon.Coupon
	nextID  int
}

func (s *InMemoryCouponStore) snapshot() interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	coupons := make(map[int]*coupon.Coupon, len(s.coupons))
	for id, c := range s.coupons {
		copied := *c
		coupons[id] = &copied
	}
	return &couponStoreState{coupons: coupons, nextID: s.nextID}
}

func (s *InMemoryCouponStore) restore(state interface{}) {
	st := state.(*couponStoreState)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.coupons = st.coupons
	s.nextID = st.nextID
}

func (s *InMemoryCouponStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.coupons = make(map[int]*coupon.Coupon)
	s.nextID = 1
}
