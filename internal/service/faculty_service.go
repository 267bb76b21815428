package service

import (
	"context"
	"time"

	"github.com/progressclasses/classes-backend/internal/model"
	"github.com/rs/zerolog"
)

// FacultyStore is implemented by repository.FacultyRepository.
type FacultyStore interface {
	ListPublic(ctx context.Context) ([]model.FacultyListing, error)
	ListAdmin(ctx context.Context) ([]model.FacultyListing, error)
	GetByID(ctx context.Context, id int) (*model.Faculty, error)
	Create(ctx context.Context, f *model.Faculty, dateJoined *time.Time) (*model.Faculty, error)
	Update(ctx context.Context, f *model.Faculty, dateJoined *time.Time) (*model.Faculty, error)
	Delete(ctx context.Context, id int) (int64, error)
}

// FacultyAssignmentStore is implemented by repository.FacultyCourseRepository.
type FacultyAssignmentStore interface {
	Create(ctx context.Context, link model.FacultyCourse) (*model.FacultyCourse, error)
	Delete(ctx context.Context, link model.FacultyCourse) error
}

// FacultyService manages faculty records and their course assignments.
type FacultyService struct {
	faculty     FacultyStore
	assignments FacultyAssignmentStore
	log         zerolog.Logger
}

// NewFacultyService creates a new FacultyService.
func NewFacultyService(faculty FacultyStore, assignments FacultyAssignmentStore, log zerolog.Logger) *FacultyService {
	return &FacultyService{
		faculty:     faculty,
		assignments: assignments,
		log:         log.With().Str("component", "faculty_service").Logger(),
	}
}

func (s *FacultyService) ListPublic(ctx context.Context) ([]model.FacultyListing, error) {
	listings, err := s.faculty.ListPublic(ctx)
	logStoreError(s.log, err, "failed to list public faculty")
	return listings, err
}

func (s *FacultyService) ListAdmin(ctx context.Context) ([]model.FacultyListing, error) {
	listings, err := s.faculty.ListAdmin(ctx)
	logStoreError(s.log, err, "failed to list faculty")
	return listings, err
}

func (s *FacultyService) GetByID(ctx context.Context, id int) (*model.Faculty, error) {
	f, err := s.faculty.GetByID(ctx, id)
	logStoreError(s.log, err, "failed to get faculty")
	return f, err
}

// Create stores a faculty member from the request; date_joined defaults to today.
func (s *FacultyService) Create(ctx context.Context, req model.FacultyRequest) (*model.Faculty, error) {
	f := &model.Faculty{
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Qualification: req.Qualification,
	}
	created, err := s.faculty.Create(ctx, f, req.ParsedDateJoined())
	logStoreError(s.log, err, "failed to create faculty")
	return created, err
}

// Update overwrites a faculty member; an omitted date_joined is left unchanged.
func (s *FacultyService) Update(ctx context.Context, id int, req model.FacultyRequest) (*model.Faculty, error) {
	f := &model.Faculty{
		ID:            id,
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Qualification: req.Qualification,
	}
	updated, err := s.faculty.Update(ctx, f, req.ParsedDateJoined())
	logStoreError(s.log, err, "failed to update faculty")
	return updated, err
}

func (s *FacultyService) Delete(ctx context.Context, id int) (int64, error) {
	n, err := s.faculty.Delete(ctx, id)
	logStoreError(s.log, err, "failed to delete faculty")
	return n, err
}

// AssignCourse links a faculty member to a course. An existing link yields
// repository.ErrConflict and leaves the table unchanged.
func (s *FacultyService) AssignCourse(ctx context.Context, link model.FacultyCourse) (*model.FacultyCourse, error) {
	created, err := s.assignments.Create(ctx, link)
	logStoreError(s.log, err, "failed to assign course")
	if err == nil {
		s.log.Info().Int("faculty_id", link.FacultyID).Str("course_id", link.CourseID).Msg("course assigned")
	}
	return created, err
}

// UnassignCourse removes a link; a missing link yields repository.ErrNotFound.
func (s *FacultyService) UnassignCourse(ctx context.Context, link model.FacultyCourse) error {
	err := s.assignments.Delete(ctx, link)
	logStoreError(s.log, err, "failed to unassign course")
	return err
}
