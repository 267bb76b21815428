package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/progressclasses/classes-backend/internal/model"
)

const (
	createFacultyCourseQuery = `INSERT INTO faculty_course (faculty_id, course_id) VALUES ($1, $2)
		ON CONFLICT (faculty_id, course_id) DO NOTHING
		RETURNING faculty_id, course_id`
	deleteFacultyCourseQuery = `DELETE FROM faculty_course WHERE faculty_id = $1 AND course_id = $2`
)

// FacultyCourseRepository manages faculty-to-course assignments.
type FacultyCourseRepository struct {
	pool *pgxpool.Pool
}

// NewFacultyCourseRepository creates a new FacultyCourseRepository.
func NewFacultyCourseRepository(pool *pgxpool.Pool) *FacultyCourseRepository {
	return &FacultyCourseRepository{pool: pool}
}

// Create links a faculty member to a course.
// Returns ErrConflict when the pair already exists and ErrReferenceMissing
// when either side does not exist.
func (r *FacultyCourseRepository) Create(ctx context.Context, link model.FacultyCourse) (*model.FacultyCourse, error) {
	out := &model.FacultyCourse{}
	err := r.pool.QueryRow(ctx, createFacultyCourseQuery, link.FacultyID, link.CourseID).
		Scan(&out.FacultyID, &out.CourseID)
	if err != nil {
		err = translate(err)
		// DO NOTHING returns no row for an existing pair.
		if errors.Is(err, ErrNotFound) {
			return nil, ErrConflict
		}
		return nil, err
	}
	return out, nil
}

// Delete unlinks a faculty member from a course. Returns ErrNotFound if the
// pair was not linked.
func (r *FacultyCourseRepository) Delete(ctx context.Context, link model.FacultyCourse) error {
	tag, err := r.pool.Exec(ctx, deleteFacultyCourseQuery, link.FacultyID, link.CourseID)
	if err != nil {
		return translate(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
