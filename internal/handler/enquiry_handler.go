package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/progressclasses/classes-backend/internal/model"
	"github.com/progressclasses/classes-backend/internal/response"
	"github.com/progressclasses/classes-backend/internal/service"
	"github.com/progressclasses/classes-backend/internal/validator"
)

// EnquiryHandler serves visitor enquiries and their admin moderation.
type EnquiryHandler struct {
	enquiryService *service.EnquiryService
}

// NewEnquiryHandler creates a new EnquiryHandler.
func NewEnquiryHandler(enquiryService *service.EnquiryService) *EnquiryHandler {
	return &EnquiryHandler{enquiryService: enquiryService}
}

// ListPublic godoc
// GET /enquiry
// Only answered and visible enquiries, oldest first.
func (h *EnquiryHandler) ListPublic(c *gin.Context) {
	enquiries, err := h.enquiryService.ListPublic(c.Request.Context())
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"enquiries": enquiries})
}

// Create godoc
// POST /enquiry
func (h *EnquiryHandler) Create(c *gin.Context) {
	var req model.CreateEnquiryRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	e, err := h.enquiryService.Create(c.Request.Context(), req)
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"enquiry": e})
}

// ListAdmin godoc
// GET /admin/enquiry
func (h *EnquiryHandler) ListAdmin(c *gin.Context) {
	enquiries, err := h.enquiryService.ListAdmin(c.Request.Context())
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"enquiries": enquiries})
}

// Get godoc
// GET /admin/enquiry/:id
func (h *EnquiryHandler) Get(c *gin.Context) {
	id, ok := intParam(c, "id")
	if !ok {
		return
	}

	e, err := h.enquiryService.GetByID(c.Request.Context(), id)
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"enquiry": e})
}

// Update godoc
// PATCH /admin/enquiry/:id
// With an "answer" key the enquiry is answered; without one it is reset to unanswered.
func (h *EnquiryHandler) Update(c *gin.Context) {
	id, ok := intParam(c, "id")
	if !ok {
		return
	}

	var req model.UpdateEnquiryRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	e, err := h.enquiryService.Update(c.Request.Context(), id, req)
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"enquiry": e})
}

// Delete godoc
// DELETE /admin/enquiry/:id
func (h *EnquiryHandler) Delete(c *gin.Context) {
	id, ok := intParam(c, "id")
	if !ok {
		return
	}

	n, err := h.enquiryService.Delete(c.Request.Context(), id)
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Deleted(c, n)
}
