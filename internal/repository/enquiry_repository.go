package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/progressclasses/classes-backend/internal/model"
)

const (
	enquiryColumns = `id, name, question, answer, is_answered, is_visible, created_at, answered_at`

	listPublicEnquiriesQuery = `SELECT ` + enquiryColumns + ` FROM enquiry
		WHERE is_answered AND is_visible
		ORDER BY created_at ASC, id ASC`
	listAdminEnquiriesQuery = `SELECT ` + enquiryColumns + ` FROM enquiry
		ORDER BY created_at ASC, id ASC`

	getEnquiryQuery    = `SELECT ` + enquiryColumns + ` FROM enquiry WHERE id = $1`
	createEnquiryQuery = `INSERT INTO enquiry (name, question) VALUES ($1, $2) RETURNING ` + enquiryColumns

	answerEnquiryQuery = `UPDATE enquiry
		SET answer = $1, is_answered = TRUE, answered_at = CURRENT_TIMESTAMP, is_visible = $2
		WHERE id = $3
		RETURNING ` + enquiryColumns
	unanswerEnquiryQuery = `UPDATE enquiry
		SET answer = NULL, is_answered = FALSE, answered_at = NULL, is_visible = $1
		WHERE id = $2
		RETURNING ` + enquiryColumns

	deleteEnquiryQuery = `DELETE FROM enquiry WHERE id = $1`
)

// EnquiryRepository handles enquiry data access.
type EnquiryRepository struct {
	pool *pgxpool.Pool
}

// NewEnquiryRepository creates a new EnquiryRepository.
func NewEnquiryRepository(pool *pgxpool.Pool) *EnquiryRepository {
	return &EnquiryRepository{pool: pool}
}

// ListPublic returns answered, visible enquiries oldest first.
func (r *EnquiryRepository) ListPublic(ctx context.Context) ([]model.Enquiry, error) {
	return r.list(ctx, listPublicEnquiriesQuery)
}

// ListAdmin returns every enquiry oldest first.
func (r *EnquiryRepository) ListAdmin(ctx context.Context) ([]model.Enquiry, error) {
	return r.list(ctx, listAdminEnquiriesQuery)
}

func (r *EnquiryRepository) list(ctx context.Context, query string) ([]model.Enquiry, error) {
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	enquiries := []model.Enquiry{}
	for rows.Next() {
		e, err := scanEnquiry(rows)
		if err != nil {
			return nil, err
		}
		enquiries = append(enquiries, *e)
	}
	return enquiries, translate(rows.Err())
}

// GetByID retrieves an enquiry by ID.
func (r *EnquiryRepository) GetByID(ctx context.Context, id int) (*model.Enquiry, error) {
	return scanEnquiry(r.pool.QueryRow(ctx, getEnquiryQuery, id))
}

// Create stores a new unanswered enquiry.
func (r *EnquiryRepository) Create(ctx context.Context, name, question string) (*model.Enquiry, error) {
	return scanEnquiry(r.pool.QueryRow(ctx, createEnquiryQuery, name, question))
}

// Answer sets the answer, marks the enquiry answered and stamps answered_at.
func (r *EnquiryRepository) Answer(ctx context.Context, id int, answer string, visible bool) (*model.Enquiry, error) {
	return scanEnquiry(r.pool.QueryRow(ctx, answerEnquiryQuery, answer, visible, id))
}

// Unanswer clears the answer and answered_at and marks the enquiry unanswered.
func (r *EnquiryRepository) Unanswer(ctx context.Context, id int, visible bool) (*model.Enquiry, error) {
	return scanEnquiry(r.pool.QueryRow(ctx, unanswerEnquiryQuery, visible, id))
}

// Delete removes an enquiry and returns the number of rows deleted.
func (r *EnquiryRepository) Delete(ctx context.Context, id int) (int64, error) {
	tag, err := r.pool.Exec(ctx, deleteEnquiryQuery, id)
	if err != nil {
		return 0, translate(err)
	}
	return tag.RowsAffected(), nil
}

func scanEnquiry(row rowScanner) (*model.Enquiry, error) {
	e := &model.Enquiry{}
	if err := row.Scan(
		&e.ID, &e.Name, &e.Question, &e.Answer, &e.IsAnswered,
		&e.IsVisible, &e.CreatedAt, &e.AnsweredAt,
	); err != nil {
		return nil, translate(err)
	}
	return e, nil
}
