package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/progressclasses/classes-backend/internal/model"
	"github.com/progressclasses/classes-backend/internal/response"
	"github.com/progressclasses/classes-backend/internal/service"
	"github.com/progressclasses/classes-backend/internal/validator"
)

// FacultyHandler serves faculty listings, admin faculty CRUD and course assignment.
type FacultyHandler struct {
	facultyService *service.FacultyService
}

// NewFacultyHandler creates a new FacultyHandler.
func NewFacultyHandler(facultyService *service.FacultyService) *FacultyHandler {
	return &FacultyHandler{facultyService: facultyService}
}

// ListPublic godoc
// GET /faculty
func (h *FacultyHandler) ListPublic(c *gin.Context) {
	faculty, err := h.facultyService.ListPublic(c.Request.Context())
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"faculty": faculty})
}

// ListAdmin godoc
// GET /admin/faculty
func (h *FacultyHandler) ListAdmin(c *gin.Context) {
	faculty, err := h.facultyService.ListAdmin(c.Request.Context())
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"faculty": faculty})
}

// Get godoc
// GET /admin/faculty/:id
func (h *FacultyHandler) Get(c *gin.Context) {
	id, ok := intParam(c, "id")
	if !ok {
		return
	}

	f, err := h.facultyService.GetByID(c.Request.Context(), id)
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"faculty": f})
}

// Create godoc
// POST /admin/faculty
func (h *FacultyHandler) Create(c *gin.Context) {
	var req model.FacultyRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	f, err := h.facultyService.Create(c.Request.Context(), req)
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"faculty": f})
}

// Update godoc
// PATCH /admin/faculty/:id
func (h *FacultyHandler) Update(c *gin.Context) {
	id, ok := intParam(c, "id")
	if !ok {
		return
	}

	var req model.FacultyRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	f, err := h.facultyService.Update(c.Request.Context(), id, req)
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"faculty": f})
}

// Delete godoc
// DELETE /admin/faculty/:id
func (h *FacultyHandler) Delete(c *gin.Context) {
	id, ok := intParam(c, "id")
	if !ok {
		return
	}

	n, err := h.facultyService.Delete(c.Request.Context(), id)
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Deleted(c, n)
}

// AssignCourse godoc
// POST /admin/faculty_course
// 409 if the pair is already linked, 404 if the faculty or course is unknown.
func (h *FacultyHandler) AssignCourse(c *gin.Context) {
	var req model.CreateFacultyCourseRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	link, err := h.facultyService.AssignCourse(c.Request.Context(), model.FacultyCourse{
		FacultyID: req.FacultyID,
		CourseID:  req.CourseID,
	})
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"faculty_course": link})
}

// UnassignCourse godoc
// DELETE /admin/faculty/:id/courses/:courseId
// 404 if the pair was not linked.
func (h *FacultyHandler) UnassignCourse(c *gin.Context) {
	facultyID, ok := intParam(c, "id")
	if !ok {
		return
	}
	courseID, ok := codeParam(c, "courseId")
	if !ok {
		return
	}

	err := h.facultyService.UnassignCourse(c.Request.Context(), model.FacultyCourse{
		FacultyID: facultyID,
		CourseID:  courseID,
	})
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Deleted(c, 1)
}
