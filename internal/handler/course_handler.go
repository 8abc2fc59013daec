package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"kanban-board-api/internal/dto"
	"kanban-board-api/internal/response"
	"kanban-board-api/internal/service"
)

type CourseHandler struct {
	courseService service.CourseService
	logger        *zap.Logger
}

func NewCourseHandler(courseService service.CourseService, logger *zap.Logger) *CourseHandler {
	return &CourseHandler{
		courseService: courseService,
		logger:        logger,
	}
}

// ListCourses godoc
// @Summary      List custom courses
// @Tags         courses
// @Produce      json
// @Success      200 {array} domain.CustomCourse
// @Router       /courses [get]
func (h *CourseHandler) ListCourses(c *gin.Context) {
	courses, err := h.courseService.ListCourses(c.Request.Context())
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, courses)
}

// CreateCourse godoc
// @Summary      Create custom course
// @Tags         courses
// @Accept       json
// @Produce      json
// @Param        request body dto.CreateCourseRequest true "Course"
// @Success      201 {object} domain.CustomCourse
// @Failure      400 {object} response.ErrorResponse
// @Router       /courses [post]
func (h *CourseHandler) CreateCourse(c *gin.Context) {
	var req dto.CreateCourseRequest
	if !bindJSON(c, &req) {
		return
	}

	course, err := h.courseService.CreateCourse(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}
	response.SendSuccess(c, http.StatusCreated, course)
}

// GetCourse godoc
// @Summary      Get custom course
// @Tags         courses
// @Produce      json
// @Param        id path string true "Course ID"
// @Success      200 {object} domain.CustomCourse
// @Failure      404 {object} response.ErrorResponse
// @Router       /courses/{id} [get]
func (h *CourseHandler) GetCourse(c *gin.Context) {
	course, err := h.courseService.GetCourse(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, course)
}

// UpdateCourse godoc
// @Summary      Update custom course
// @Tags         courses
// @Accept       json
// @Produce      json
// @Param        id path string true "Course ID"
// @Param        request body dto.UpdateCourseRequest true "Fields to change"
// @Success      200 {object} domain.CustomCourse
// @Failure      400 {object} response.ErrorResponse
// @Failure      404 {object} response.ErrorResponse
// @Router       /courses/{id} [put]
func (h *CourseHandler) UpdateCourse(c *gin.Context) {
	var req dto.UpdateCourseRequest
	if !bindJSON(c, &req) {
		return
	}

	course, err := h.courseService.UpdateCourse(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, course)
}

// DeleteCourse godoc
// @Summary      Delete custom course
// @Tags         courses
// @Produce      json
// @Param        id path string true "Course ID"
// @Success      200 {object} response.SuccessResponse
// @Failure      404 {object} response.ErrorResponse
// @Router       /courses/{id} [delete]
func (h *CourseHandler) DeleteCourse(c *gin.Context) {
	if err := h.courseService.DeleteCourse(c.Request.Context(), c.Param("id")); err != nil {
		handleServiceError(c, h.logger, err)
		return
	}
	response.SendOK(c, http.StatusOK)
}
