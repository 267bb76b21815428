package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/progressclasses/classes-backend/internal/model"
	"github.com/progressclasses/classes-backend/internal/response"
	"github.com/progressclasses/classes-backend/internal/service"
	"github.com/progressclasses/classes-backend/internal/validator"
)

// CourseHandler serves the public course catalogue and admin course CRUD.
type CourseHandler struct {
	courseService *service.CourseService
}

// NewCourseHandler creates a new CourseHandler.
func NewCourseHandler(courseService *service.CourseService) *CourseHandler {
	return &CourseHandler{courseService: courseService}
}

// ListPublic godoc
// GET /course
// Courses with their assigned faculty, by name then level.
func (h *CourseHandler) ListPublic(c *gin.Context) {
	courses, err := h.courseService.ListPublic(c.Request.Context())
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"courses": courses})
}

// ListAdmin godoc
// GET /admin/course
// Like ListPublic but also includes courses nobody teaches.
func (h *CourseHandler) ListAdmin(c *gin.Context) {
	courses, err := h.courseService.ListAdmin(c.Request.Context())
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"courses": courses})
}

// Get godoc
// GET /admin/course/:id
func (h *CourseHandler) Get(c *gin.Context) {
	id, ok := codeParam(c, "id")
	if !ok {
		return
	}

	course, err := h.courseService.GetByID(c.Request.Context(), id)
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"course": course})
}

// Create godoc
// POST /admin/course
func (h *CourseHandler) Create(c *gin.Context) {
	var req model.CreateCourseRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	course, err := h.courseService.Create(c.Request.Context(), &model.Course{
		ID:    req.ID,
		Name:  req.Name,
		Level: req.Level,
	})
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"course": course})
}

// Update godoc
// PATCH /admin/course/:id
func (h *CourseHandler) Update(c *gin.Context) {
	id, ok := codeParam(c, "id")
	if !ok {
		return
	}

	var req model.UpdateCourseRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	course, err := h.courseService.Update(c.Request.Context(), &model.Course{
		ID:    id,
		Name:  req.Name,
		Level: req.Level,
	})
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"course": course})
}

// Delete godoc
// DELETE /admin/course/:id
// Responds with the number of rows removed; 0 means no such course.
func (h *CourseHandler) Delete(c *gin.Context) {
	id, ok := codeParam(c, "id")
	if !ok {
		return
	}

	n, err := h.courseService.Delete(c.Request.Context(), id)
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Deleted(c, n)
}
