package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/progressclasses/classes-backend/internal/config"
	"github.com/progressclasses/classes-backend/internal/model"
	"github.com/progressclasses/classes-backend/internal/repository"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

// Common auth errors.
var (
	ErrPasswordRequired         = errors.New("password is required")
	ErrInvalidCredentials       = errors.New("invalid credentials")
	ErrCredentialNotInitialized = errors.New("admin credential has not been initialized")
	ErrCredentialChanged        = errors.New("admin credential changed concurrently")
	ErrTokenInvalid             = errors.New("invalid token")
	ErrTokenExpired             = errors.New("token expired")
	ErrSigningKeyMissing        = errors.New("jwt signing secret is not configured")
)

// AdminCredentialStore is the persistence the auth flow needs.
type AdminCredentialStore interface {
	Get(ctx context.Context) (*model.AdminCredential, error)
	ReplacePasswordHash(ctx context.Context, oldHash, newHash string) error
}

// Claims extends JWT standard claims with the admin flag checked by the guard.
type Claims struct {
	jwt.RegisteredClaims
	Admin bool `json:"admin"`
}

// AuthService handles admin login, token issuance/validation and password rotation.
type AuthService struct {
	cfg   *config.Config
	creds AdminCredentialStore
	log   zerolog.Logger
	now   func() time.Time
}

// NewAuthService creates a new AuthService.
func NewAuthService(cfg *config.Config, creds AdminCredentialStore, log zerolog.Logger) *AuthService {
	return &AuthService{
		cfg:   cfg,
		creds: creds,
		log:   log.With().Str("component", "auth_service").Logger(),
		now:   time.Now,
	}
}

// HashPassword hashes a password with the configured bcrypt cost.
func (s *AuthService) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cfg.BcryptCost)
	return string(hash), err
}

// CheckPassword compares a plaintext password against a bcrypt hash.
func (s *AuthService) CheckPassword(hash, password string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}

// Login verifies the admin password and issues a signed admin token.
func (s *AuthService) Login(ctx context.Context, password string) (*model.AdminLoginResponse, error) {
	if password == "" {
		return nil, ErrPasswordRequired
	}

	cred, err := s.credential(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.CheckPassword(cred.PasswordHash, password); err != nil {
		s.log.Warn().Msg("admin login rejected: wrong password")
		return nil, err
	}

	token, expiresAt, err := s.GenerateAdminToken()
	if err != nil {
		return nil, err
	}

	s.log.Info().Time("expires_at", expiresAt).Msg("admin logged in")
	return &model.AdminLoginResponse{Token: token, ExpiresAt: expiresAt}, nil
}

// RotatePassword replaces the admin password after verifying the old one.
func (s *AuthService) RotatePassword(ctx context.Context, oldPassword, newPassword string) error {
	if oldPassword == "" || newPassword == "" {
		return ErrPasswordRequired
	}

	cred, err := s.credential(ctx)
	if err != nil {
		return err
	}

	if err := s.CheckPassword(cred.PasswordHash, oldPassword); err != nil {
		s.log.Warn().Msg("admin password rotation rejected: wrong old password")
		return err
	}

	newHash, err := s.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	if err := s.creds.ReplacePasswordHash(ctx, cred.PasswordHash, newHash); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return ErrCredentialChanged
		}
		s.log.Error().Err(err).Msg("failed to store rotated admin password")
		return fmt.Errorf("replace password hash: %w", err)
	}

	s.log.Info().Msg("admin password rotated")
	return nil
}

// GenerateAdminToken signs an admin token valid for the configured window.
func (s *AuthService) GenerateAdminToken() (string, time.Time, error) {
	if s.cfg.JWTSecret == "" {
		return "", time.Time{}, ErrSigningKeyMissing
	}
	now := s.now()
	expiresAt := now.Add(s.cfg.AdminTokenTTL)

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Subject:   "admin",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		Admin: true,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, expiresAt, nil
}

// ValidateToken parses and validates a JWT, returning the claims.
// It does not check the admin flag; that is the guard's decision.
func (s *AuthService) ValidateToken(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if s.cfg.JWTSecret == "" {
			return nil, ErrSigningKeyMissing
		}
		return []byte(s.cfg.JWTSecret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrTokenInvalid
	}

	return claims, nil
}

func (s *AuthService) credential(ctx context.Context) (*model.AdminCredential, error) {
	cred, err := s.creds.Get(ctx)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.log.Error().Msg("admin credential missing; run set-admin-password")
			return nil, ErrCredentialNotInitialized
		}
		s.log.Error().Err(err).Msg("failed to load admin credential")
		return nil, fmt.Errorf("load admin credential: %w", err)
	}
	return cred, nil
}
