package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/progressclasses/classes-backend/internal/repository"
	"github.com/progressclasses/classes-backend/internal/response"
	"github.com/progressclasses/classes-backend/internal/service"
)

// failFromError maps a service or store error onto the response envelope.
// Unknown errors become 500 and are attached to the context for the access log.
func failFromError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
	case errors.Is(err, repository.ErrConflict):
		response.Fail(c, http.StatusConflict, response.ErrConflict)
	case errors.Is(err, repository.ErrReferenceMissing):
		response.Fail(c, http.StatusNotFound, response.ErrReferenceNotFound)
	case errors.Is(err, repository.ErrInvalidValue):
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidValue)
	case errors.Is(err, service.ErrAnswerRequired):
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, map[string]string{"answer": err.Error()})
	case errors.Is(err, service.ErrVisibilityRequired):
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, map[string]string{"is_visible": err.Error()})
	default:
		_ = c.Error(err)
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}

// intParam parses a positive integer path parameter, writing a 400 on failure.
func intParam(c *gin.Context, name string) (int, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id <= 0 {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return 0, false
	}
	return id, true
}

// codeParam reads a course code path parameter, writing a 400 when blank.
func codeParam(c *gin.Context, name string) (string, bool) {
	code := strings.TrimSpace(c.Param(name))
	if code == "" || len(code) > 32 {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return "", false
	}
	return code, true
}
