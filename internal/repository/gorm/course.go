package gorm

import (
	"context"
	"errors"

	"github.com/learnhub/learnhub/internal/cache"
	domainCourse "github.com/learnhub/learnhub/internal/domain/course"
	ierr "github.com/learnhub/learnhub/internal/errors"
	"github.com/learnhub/learnhub/internal/logger"
	"github.com/learnhub/learnhub/internal/postgres"
	"gorm.io/gorm"
)

type courseRepository struct {
	client postgres.IClient
	log    *logger.Logger
	cache  cache.Cache
}

func NewCourseRepository(client postgres.IClient, log *logger.Logger, c cache.Cache) domainCourse.Repository {
	return &courseRepository{
		client: client,
		log:    log,
		cache:  c,
	}
}

func (r *courseRepository) Get(ctx context.Context, id int) (*domainCourse.Course, error) {
	if cached, found := r.cache.Get(ctx, cache.GenerateKey(cache.PrefixCourse, id)); found {
		if c, ok := cached.(*domainCourse.Course); ok {
			return c, nil
		}
	}

	var c domainCourse.Course
	err := r.client.Querier(ctx).First(&c, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ierr.NewError("course not found").
				WithHintf("Course with id %d was not found", id).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to get course").
			Mark(ierr.ErrDatabase)
	}

	r.cache.Set(ctx, cache.GenerateKey(cache.PrefixCourse, id), &c, cache.DefaultExpiration)
	return &c, nil
}

func (r *courseRepository) List(ctx context.Context) ([]*domainCourse.Course, error) {
	var courses []*domainCourse.Course
	err := r.client.Querier(ctx).
		Order("name ASC").
		Find(&courses).Error
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list courses").
			Mark(ierr.ErrDatabase)
	}

	return courses, nil
}
