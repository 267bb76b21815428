package service

import (
	"context"

	"github.com/progressclasses/classes-backend/internal/model"
	"github.com/rs/zerolog"
)

// CourseStore is implemented by repository.CourseRepository.
type CourseStore interface {
	ListPublic(ctx context.Context) ([]model.CourseListing, error)
	ListAdmin(ctx context.Context) ([]model.CourseListing, error)
	GetByID(ctx context.Context, id string) (*model.Course, error)
	Create(ctx context.Context, c *model.Course) (*model.Course, error)
	Update(ctx context.Context, c *model.Course) (*model.Course, error)
	Delete(ctx context.Context, id string) (int64, error)
}

type CourseService struct {
	courses CourseStore
	log     zerolog.Logger
}

func NewCourseService(courses CourseStore, log zerolog.Logger) *CourseService {
	return &CourseService{
		courses: courses,
		log:     log.With().Str("component", "course_service").Logger(),
	}
}

func (s *CourseService) ListPublic(ctx context.Context) ([]model.CourseListing, error) {
	listings, err := s.courses.ListPublic(ctx)
	logStoreError(s.log, err, "failed to list public courses")
	return listings, err
}

func (s *CourseService) ListAdmin(ctx context.Context) ([]model.CourseListing, error) {
	listings, err := s.courses.ListAdmin(ctx)
	logStoreError(s.log, err, "failed to list courses")
	return listings, err
}

func (s *CourseService) GetByID(ctx context.Context, id string) (*model.Course, error) {
	c, err := s.courses.GetByID(ctx, id)
	logStoreError(s.log, err, "failed to get course")
	return c, err
}

func (s *CourseService) Create(ctx context.Context, c *model.Course) (*model.Course, error) {
	created, err := s.courses.Create(ctx, c)
	logStoreError(s.log, err, "failed to create course")
	return created, err
}

func (s *CourseService) Update(ctx context.Context, c *model.Course) (*model.Course, error) {
	updated, err := s.courses.Update(ctx, c)
	logStoreError(s.log, err, "failed to update course")
	return updated, err
}

// Delete returns the number of courses removed; 0 means nothing matched.
func (s *CourseService) Delete(ctx context.Context, id string) (int64, error) {
	n, err := s.courses.Delete(ctx, id)
	logStoreError(s.log, err, "failed to delete course")
	return n, err
}
