package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/progressclasses/classes-backend/internal/model"
	"github.com/progressclasses/classes-backend/internal/response"
	"github.com/progressclasses/classes-backend/internal/service"
	"github.com/progressclasses/classes-backend/internal/validator"
)

// AuthHandler handles admin login and password rotation.
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// AdminLogin godoc
// POST /admin/login
// Verifies the admin password and returns a token valid for two hours.
func (h *AuthHandler) AdminLogin(c *gin.Context) {
	var req model.AdminLoginRequest
	// An empty body is treated as a missing password, not a malformed request.
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, validator.TranslateErrors(err))
		return
	}

	login, err := h.authService.Login(c.Request.Context(), req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPasswordRequired):
			response.Fail(c, http.StatusUnauthorized, response.ErrPasswordRequired)
		case errors.Is(err, service.ErrInvalidCredentials):
			response.Fail(c, http.StatusUnauthorized, response.ErrInvalidCredentials)
		case errors.Is(err, service.ErrCredentialNotInitialized):
			response.Fail(c, http.StatusServiceUnavailable, response.ErrServiceUnavailable)
		default:
			failFromError(c, err)
		}
		return
	}

	response.Success(c, http.StatusOK, login)
}

// ChangePassword godoc
// PATCH /admin/password
// Replaces the admin password after checking the old one.
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req model.ChangePasswordRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	err := h.authService.RotatePassword(c.Request.Context(), req.OldPassword, req.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPasswordRequired):
			response.Fail(c, http.StatusBadRequest, response.ErrValidation)
		case errors.Is(err, service.ErrInvalidCredentials):
			response.Fail(c, http.StatusUnauthorized, response.ErrInvalidCredentials)
		case errors.Is(err, service.ErrCredentialNotInitialized):
			response.Fail(c, http.StatusServiceUnavailable, response.ErrServiceUnavailable)
		case errors.Is(err, service.ErrCredentialChanged):
			response.Fail(c, http.StatusConflict, response.ErrCredentialChanged)
		default:
			failFromError(c, err)
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "password updated successfully"})
}
