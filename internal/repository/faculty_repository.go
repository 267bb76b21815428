package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/progressclasses/classes-backend/internal/model"
)

const (
	listPublicFacultyQuery = `SELECT fc.faculty_id, f.first_name, f.last_name, f.qualification, f.date_joined, fc.course_id, c.name AS course_name, c.level::text
		FROM faculty_course fc
		JOIN faculty f ON fc.faculty_id = f.id
		JOIN course c ON fc.course_id = c.id
		ORDER BY f.first_name ASC, f.last_name ASC, f.id ASC, c.name ASC`

	listAdminFacultyQuery = `SELECT f.id AS faculty_id, f.first_name, f.last_name, f.qualification, f.date_joined, fc.course_id, c.name AS course_name, c.level::text
		FROM faculty f
		LEFT JOIN faculty_course fc ON f.id = fc.faculty_id
		LEFT JOIN course c ON fc.course_id = c.id
		ORDER BY f.first_name ASC, f.last_name ASC, f.id ASC, c.name ASC NULLS FIRST`

	facultyColumns = `id, first_name, last_name, qualification, date_joined`

	getFacultyQuery    = `SELECT ` + facultyColumns + ` FROM faculty WHERE id = $1`
	createFacultyQuery = `INSERT INTO faculty (first_name, last_name, qualification, date_joined)
		VALUES ($1, $2, $3, COALESCE($4::date, CURRENT_DATE))
		RETURNING ` + facultyColumns
	updateFacultyQuery = `UPDATE faculty
		SET first_name = $1, last_name = $2, qualification = $3, date_joined = COALESCE($4::date, date_joined)
		WHERE id = $5
		RETURNING ` + facultyColumns
	deleteFacultyQuery = `DELETE FROM faculty WHERE id = $1`
)

// FacultyRepository handles faculty data access.
type FacultyRepository struct {
	pool *pgxpool.Pool
}

// NewFacultyRepository creates a new FacultyRepository.
func NewFacultyRepository(pool *pgxpool.Pool) *FacultyRepository {
	return &FacultyRepository{pool: pool}
}

// ListPublic returns faculty members together with the courses they teach.
func (r *FacultyRepository) ListPublic(ctx context.Context) ([]model.FacultyListing, error) {
	return r.list(ctx, listPublicFacultyQuery)
}

// ListAdmin also includes faculty members without any assignment.
func (r *FacultyRepository) ListAdmin(ctx context.Context) ([]model.FacultyListing, error) {
	return r.list(ctx, listAdminFacultyQuery)
}

func (r *FacultyRepository) list(ctx context.Context, query string) ([]model.FacultyListing, error) {
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	listings := []model.FacultyListing{}
	for rows.Next() {
		var l model.FacultyListing
		if err := rows.Scan(
			&l.FacultyID, &l.FirstName, &l.LastName, &l.Qualification, &l.DateJoined.Time,
			&l.CourseID, &l.CourseName, &l.Level,
		); err != nil {
			return nil, err
		}
		listings = append(listings, l)
	}
	return listings, translate(rows.Err())
}

// GetByID retrieves a faculty member by ID.
func (r *FacultyRepository) GetByID(ctx context.Context, id int) (*model.Faculty, error) {
	return scanFaculty(r.pool.QueryRow(ctx, getFacultyQuery, id))
}

// Create inserts a faculty member. A nil dateJoined defaults to today.
func (r *FacultyRepository) Create(ctx context.Context, f *model.Faculty, dateJoined *time.Time) (*model.Faculty, error) {
	return scanFaculty(r.pool.QueryRow(ctx, createFacultyQuery, f.FirstName, f.LastName, f.Qualification, dateJoined))
}

// Update overwrites a faculty member. A nil dateJoined keeps the stored date.
func (r *FacultyRepository) Update(ctx context.Context, f *model.Faculty, dateJoined *time.Time) (*model.Faculty, error) {
	return scanFaculty(r.pool.QueryRow(ctx, updateFacultyQuery, f.FirstName, f.LastName, f.Qualification, dateJoined, f.ID))
}

// Delete removes a faculty member and returns the number of rows deleted.
func (r *FacultyRepository) Delete(ctx context.Context, id int) (int64, error) {
	tag, err := r.pool.Exec(ctx, deleteFacultyQuery, id)
	if err != nil {
		return 0, translate(err)
	}
	return tag.RowsAffected(), nil
}

func scanFaculty(row rowScanner) (*model.Faculty, error) {
	f := &model.Faculty{}
	if err := row.Scan(&f.ID, &f.FirstName, &f.LastName, &f.Qualification, &f.DateJoined.Time); err != nil {
		return nil, translate(err)
	}
	return f, nil
}
