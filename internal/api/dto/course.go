package dto

import (
	"github.com/learnhub/learnhub/internal/domain/course"
)

// CourseResponse represents a course in API responses
type CourseResponse struct {
	*course.Course
}

func NewCourseResponse(c *course.Course) *CourseResponse {
	return &CourseResponse{Course: c}
}

// ListCoursesResponse represents the course catalog listing
type ListCoursesResponse struct {
	Items []*CourseResponse `json:"items"`
	Total int               `json:"total"`
}
