package testutil

import (
	"context"
	"sync"

	"github.com/learnhub/learnhub/internal/domain/user"
	ierr "github.com/learnhub/learnhub/internal/errors"
)

// InMemoryUserStore is an in-memory implementation of user.Repository
type InMemoryUserStore struct {
	mu    sync.RWMutex
	users map[string]*user.User
}

func NewInMemoryUserStore() *InMemoryUserStore {
	return &InMemoryUserStore{
		users: make(map[string]*user.User),
	}
}

func (s *InMemoryUserStore) Get(ctx context.Context, id string) (*user.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, ierr.NewError("user not found").
			WithHintf("User %s was not found", id).
			Mark(ierr.ErrNotFound)
	}

	copied := *u
	return &copied, nil
}

func (s *InMemoryUserStore) GetByIDs(ctx context.Context, ids []string) ([]*user.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*user.User
	for _, id := range ids {
		if u, ok := s.users[id]; ok {
			copied := *u
			result = append(result, &copied)
		}
	}

	return result, nil
}

func (s *InMemoryUserStore) Upsert(ctx context.Context, u *user.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := *u
	if existing, ok := s.users[u.ID]; ok {
		copied.CreatedAt = existing.CreatedAt
	}
	s.users[u.ID] = &copied
	return nil
}

func (s *InMemoryUserStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = make(map[string]*user.User)
}
