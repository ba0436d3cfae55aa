package auth

import "eventbook/internal/users"

// SignUpRequest represents the registration request payload
type SignUpRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=100"`
	Phone    string `json:"phone" binding:"required,min=7,max=15"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Role     string `json:"role,omitempty" binding:"omitempty,oneof=USER ADMIN"`
}

// SignInRequest represents the login request payload. The phone number is
// the login key.
type SignInRequest struct {
	Phone    string `json:"phone" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// SignInResponse carries the sanitized user plus the issued bearer token.
type SignInResponse struct {
	User  *users.User `json:"user"`
	Token string      `json:"token"`
}

// UpdatePasswordRequest represents the password change payload
type UpdatePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required"`
}
