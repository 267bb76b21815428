package service

import (
	"errors"

	"github.com/progressclasses/classes-backend/internal/repository"
	"github.com/rs/zerolog"
)

// Validation errors raised before touching the store.
var (
	ErrAnswerRequired     = errors.New("answer must not be empty")
	ErrVisibilityRequired = errors.New("is_visible is required")
)

// logStoreError records store failures that are not ordinary outcomes like
// "not found" or "already exists".
func logStoreError(log zerolog.Logger, err error, msg string) {
	if err == nil ||
		errors.Is(err, repository.ErrNotFound) ||
		errors.Is(err, repository.ErrConflict) ||
		errors.Is(err, repository.ErrReferenceMissing) ||
		errors.Is(err, repository.ErrInvalidValue) {
		return
	}
	log.Error().Err(err).Msg(msg)
}
