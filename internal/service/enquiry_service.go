package service

import (
	"context"
	"strings"

	"github.com/progressclasses/classes-backend/internal/model"
	"github.com/rs/zerolog"
)

// EnquiryStore is implemented by repository.EnquiryRepository.
type EnquiryStore interface {
	ListPublic(ctx context.Context) ([]model.Enquiry, error)
	ListAdmin(ctx context.Context) ([]model.Enquiry, error)
	GetByID(ctx context.Context, id int) (*model.Enquiry, error)
	Create(ctx context.Context, name, question string) (*model.Enquiry, error)
	Answer(ctx context.Context, id int, answer string, visible bool) (*model.Enquiry, error)
	Unanswer(ctx context.Context, id int, visible bool) (*model.Enquiry, error)
	Delete(ctx context.Context, id int) (int64, error)
}

// EnquiryService handles visitor questions and admin answers.
type EnquiryService struct {
	enquiries EnquiryStore
	log       zerolog.Logger
}

// NewEnquiryService creates a new EnquiryService.
func NewEnquiryService(enquiries EnquiryStore, log zerolog.Logger) *EnquiryService {
	return &EnquiryService{
		enquiries: enquiries,
		log:       log.With().Str("component", "enquiry_service").Logger(),
	}
}

// ListPublic returns only answered and visible enquiries.
func (s *EnquiryService) ListPublic(ctx context.Context) ([]model.Enquiry, error) {
	list, err := s.enquiries.ListPublic(ctx)
	logStoreError(s.log, err, "failed to list public enquiries")
	return list, err
}

func (s *EnquiryService) ListAdmin(ctx context.Context) ([]model.Enquiry, error) {
	list, err := s.enquiries.ListAdmin(ctx)
	logStoreError(s.log, err, "failed to list enquiries")
	return list, err
}

func (s *EnquiryService) GetByID(ctx context.Context, id int) (*model.Enquiry, error) {
	e, err := s.enquiries.GetByID(ctx, id)
	logStoreError(s.log, err, "failed to get enquiry")
	return e, err
}

// Create records a visitor question. All other columns keep their defaults.
func (s *EnquiryService) Create(ctx context.Context, req model.CreateEnquiryRequest) (*model.Enquiry, error) {
	e, err := s.enquiries.Create(ctx, req.Name, req.Question)
	logStoreError(s.log, err, "failed to create enquiry")
	return e, err
}

// Update answers the enquiry when the request carried an answer key, and
// otherwise reverts it to unanswered. Visibility is set in both modes.
func (s *EnquiryService) Update(ctx context.Context, id int, req model.UpdateEnquiryRequest) (*model.Enquiry, error) {
	if req.IsVisible == nil {
		return nil, ErrVisibilityRequired
	}
	visible := *req.IsVisible

	var (
		e   *model.Enquiry
		err error
	)
	if req.HasAnswer {
		if req.Answer == nil || strings.TrimSpace(*req.Answer) == "" {
			return nil, ErrAnswerRequired
		}
		e, err = s.enquiries.Answer(ctx, id, *req.Answer, visible)
	} else {
		e, err = s.enquiries.Unanswer(ctx, id, visible)
	}
	logStoreError(s.log, err, "failed to update enquiry")
	return e, err
}

func (s *EnquiryService) Delete(ctx context.Context, id int) (int64, error) {
	n, err := s.enquiries.Delete(ctx, id)
	logStoreError(s.log, err, "failed to delete enquiry")
	return n, err
}
