package v1

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	ierr "github.com/learnhub/learnhub/internal/errors"
	"github.com/learnhub/learnhub/internal/logger"
	"github.com/learnhub/learnhub/internal/service"
)

type CourseHandler struct {
	courseService service.CourseService
	logger        *logger.Logger
}

func NewCourseHandler(courseService service.CourseService, logger *logger.Logger) *CourseHandler {
	return &CourseHandler{
		courseService: courseService,
		logger:        logger,
	}
}

// @Summary List courses
// @Description Lists the course catalog
// @Tags Courses
// @Produce json
// @Success 200 {object} dto.ListCoursesResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /courses [get]
func (h *CourseHandler) ListCourses(c *gin.Context) {
	response, err := h.courseService.ListCourses(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// @Summary Get a course by ID
// @Description Retrieves a course by ID
// @Tags Courses
// @Produce json
// @Param id path int true "Course ID"
// @Success 200 {object} dto.CourseResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /courses/{id} [get]
func (h *CourseHandler) GetCourse(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.Error(ierr.NewError("invalid course ID").
			WithHint("Course ID must be a positive integer").
			Mark(ierr.ErrValidation))
		return
	}

	response, err := h.courseService.GetCourse(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, response)
}
