package testutil

import (
	"context"
	"sort"
	"sync"

	"github.com/learnhub/learnhub/internal/domain/course"
	ierr "github.com/learnhub/learnhub/internal/errors"
)

// InMemoryCourseStore is an in-memory implementation of course.Repository
type InMemoryCourseStore struct {
	mu      sync.RWMutex
	courses map[int]*course.Course
}

func NewInMemoryCourseStore() *InMemoryCourseStore {
	return &InMemoryCourseStore{
		courses: make(map[int]*course.Course),
	}
}

// Add seeds a course. Courses are read-only through the repository interface.
func (s *InMemoryCourseStore) Add(c *course.Course) {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *c
	s.courses[c.ID] = &copied
}

func (s *InMemoryCourseStore) Get(ctx context.Context, id int) (*course.Course, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.courses[id]
	if !ok {
		return nil, ierr.NewError("course not found").
			WithHintf("Course with id %d was not found", id).
			Mark(ierr.ErrNotFound)
	}

	copied := *c
	return &copied, nil
}

func (s *InMemoryCourseStore) List(ctx context.Context) ([]*course.Course, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*course.Course, 0, len(s.courses))
	for _, c := range s.courses {
		copied := *c
		result = append(result, &copied)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})

	return result, nil
}

func (s *InMemoryCourseStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.courses = make(map[int]*course.Course)
}
