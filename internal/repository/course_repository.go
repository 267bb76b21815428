package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/progressclasses/classes-backend/internal/model"
)

// levelRank sorts beginner < intermediate < advanced independent of enum declaration order.
const levelRank = `CASE c.level WHEN 'beginner' THEN 1 WHEN 'intermediate' THEN 2 WHEN 'advanced' THEN 3 ELSE 4 END`

const (
	listPublicCoursesQuery = `SELECT fc.course_id, c.name AS course_name, c.level::text, fc.faculty_id, f.first_name, f.last_name
		FROM faculty_course fc
		JOIN faculty f ON fc.faculty_id = f.id
		JOIN course c ON fc.course_id = c.id
		ORDER BY c.name ASC, ` + levelRank + ` ASC, c.id ASC, f.first_name ASC, f.last_name ASC`

	listAdminCoursesQuery = `SELECT c.id AS course_id, c.name AS course_name, c.level::text, fc.faculty_id, f.first_name, f.last_name
		FROM course c
		LEFT JOIN faculty_course fc ON c.id = fc.course_id
		LEFT JOIN faculty f ON fc.faculty_id = f.id
		ORDER BY c.name ASC, ` + levelRank + ` ASC, c.id ASC, f.first_name ASC NULLS FIRST, f.last_name ASC`

	getCourseQuery    = `SELECT id, name, level::text FROM course WHERE id = $1`
	createCourseQuery = `INSERT INTO course (id, name, level) VALUES ($1, $2, $3) RETURNING id, name, level::text`
	updateCourseQuery = `UPDATE course SET name = $1, level = $2 WHERE id = $3 RETURNING id, name, level::text`
	deleteCourseQuery = `DELETE FROM course WHERE id = $1`
)

// CourseRepository handles course data access.
type CourseRepository struct {
	pool *pgxpool.Pool
}

// NewCourseRepository creates a new CourseRepository.
func NewCourseRepository(pool *pgxpool.Pool) *CourseRepository {
	return &CourseRepository{pool: pool}
}

// ListPublic returns only courses that have at least one assigned faculty member.
func (r *CourseRepository) ListPublic(ctx context.Context) ([]model.CourseListing, error) {
	return r.list(ctx, listPublicCoursesQuery)
}

// ListAdmin returns every course, including ones nobody teaches yet.
func (r *CourseRepository) ListAdmin(ctx context.Context) ([]model.CourseListing, error) {
	return r.list(ctx, listAdminCoursesQuery)
}

func (r *CourseRepository) list(ctx context.Context, query string) ([]model.CourseListing, error) {
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	listings := []model.CourseListing{}
	for rows.Next() {
		var l model.CourseListing
		if err := rows.Scan(&l.CourseID, &l.CourseName, &l.Level, &l.FacultyID, &l.FirstName, &l.LastName); err != nil {
			return nil, err
		}
		listings = append(listings, l)
	}
	return listings, translate(rows.Err())
}

// GetByID retrieves a course by its code.
func (r *CourseRepository) GetByID(ctx context.Context, id string) (*model.Course, error) {
	return scanCourse(r.pool.QueryRow(ctx, getCourseQuery, id))
}

// Create inserts a new course and returns the stored row.
func (r *CourseRepository) Create(ctx context.Context, c *model.Course) (*model.Course, error) {
	return scanCourse(r.pool.QueryRow(ctx, createCourseQuery, c.ID, c.Name, string(c.Level)))
}

// Update overwrites name and level of an existing course.
func (r *CourseRepository) Update(ctx context.Context, c *model.Course) (*model.Course, error) {
	return scanCourse(r.pool.QueryRow(ctx, updateCourseQuery, c.Name, string(c.Level), c.ID))
}

// Delete removes a course and returns the number of rows deleted.
// Faculty assignments of the course are removed by cascade.
func (r *CourseRepository) Delete(ctx context.Context, id string) (int64, error) {
	tag, err := r.pool.Exec(ctx, deleteCourseQuery, id)
	if err != nil {
		return 0, translate(err)
	}
	return tag.RowsAffected(), nil
}

func scanCourse(row rowScanner) (*model.Course, error) {
	c := &model.Course{}
	if err := row.Scan(&c.ID, &c.Name, &c.Level); err != nil {
		return nil, translate(err)
	}
	return c, nil
}
