package service

import (
	"context"

	"github.com/learnhub/learnhub/internal/api/dto"
	"github.com/learnhub/learnhub/internal/domain/course"
	"github.com/samber/lo"
)

// CourseService exposes read access to the course catalog
type CourseService interface {
	GetCourse(ctx context.Context, id int) (*dto.CourseResponse, error)
	ListCourses(ctx context.Context) (*dto.ListCoursesResponse, error)
}

type courseService struct {
	ServiceParams
}

func NewCourseService(params ServiceParams) CourseService {
	return &courseService{
		ServiceParams: params,
	}
}

func (s *courseService) GetCourse(ctx context.Context, id int) (*dto.CourseResponse, error) {
	c, err := s.CourseRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.NewCourseResponse(c), nil
}

func (s *courseService) ListCourses(ctx context.Context) (*dto.ListCoursesResponse, error) {
	courses, err := s.CourseRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	items := lo.Map(courses, func(c *course.Course, _ int) *dto.CourseResponse {
		return dto.NewCourseResponse(c)
	})

	return &dto.ListCoursesResponse{
		Items: items,
		Total: len(items),
	}, nil
}
