package model

import "time"

// AdminCredential is the single stored admin password hash.
type AdminCredential struct {
	PasswordHash string    `json:"-"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// AdminLoginRequest is the payload for admin authentication.
// Password carries no binding tags: an absent or overlong password is an
// authentication failure, not a validation failure.
type AdminLoginRequest struct {
	Password string `json:"password"`
}

// AdminLoginResponse is returned after successful admin login.
type AdminLoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// ChangePasswordRequest rotates the admin password. Only the new password is
// length-checked; a wrong old password of any length is a credential mismatch.
type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,min=6,max=72"`
}
