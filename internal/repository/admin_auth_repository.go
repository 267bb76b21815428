package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/progressclasses/classes-backend/internal/model"
)

const (
	getAdminCredentialQuery = `SELECT password_hash, updated_at FROM admin_auth WHERE id`

	// Compare-and-swap on the old hash so two concurrent rotations cannot both win.
	replaceAdminPasswordQuery = `UPDATE admin_auth
		SET password_hash = $1, updated_at = CURRENT_TIMESTAMP
		WHERE id AND password_hash = $2`

	upsertAdminPasswordQuery = `INSERT INTO admin_auth (id, password_hash) VALUES (TRUE, $1)
		ON CONFLICT (id) DO UPDATE SET password_hash = EXCLUDED.password_hash, updated_at = CURRENT_TIMESTAMP`
)

// AdminAuthRepository reads and rotates the single admin credential row.
type AdminAuthRepository struct {
	pool *pgxpool.Pool
}

// NewAdminAuthRepository creates a new AdminAuthRepository.
func NewAdminAuthRepository(pool *pgxpool.Pool) *AdminAuthRepository {
	return &AdminAuthRepository{pool: pool}
}

// Get returns the stored credential, or ErrNotFound if it was never initialized.
func (r *AdminAuthRepository) Get(ctx context.Context) (*model.AdminCredential, error) {
	cred := &model.AdminCredential{}
	if err := r.pool.QueryRow(ctx, getAdminCredentialQuery).Scan(&cred.PasswordHash, &cred.UpdatedAt); err != nil {
		return nil, translate(err)
	}
	return cred, nil
}

// ReplacePasswordHash swaps oldHash for newHash. Returns ErrConflict if the
// stored hash is no longer oldHash.
func (r *AdminAuthRepository) ReplacePasswordHash(ctx context.Context, oldHash, newHash string) error {
	tag, err := r.pool.Exec(ctx, replaceAdminPasswordQuery, newHash, oldHash)
	if err != nil {
		return translate(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrConflict
	}
	return nil
}

// UpsertPasswordHash creates the credential row or overwrites it unconditionally.
// Used only by the bootstrap CLI.
func (r *AdminAuthRepository) UpsertPasswordHash(ctx context.Context, hash string) error {
	_, err := r.pool.Exec(ctx, upsertAdminPasswordQuery, hash)
	return translate(err)
}
