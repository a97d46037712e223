package request

import "github.com/sangkips/stockroom-api/internal/domain/enum"

// LoginRequest represents a login request
type LoginRequest struct {
	Username string    `json:"username" binding:"required,max=100"`
	Password string    `json:"password" binding:"required"`
	Role     enum.Role `json:"role" binding:"required"`
}

// ChangePasswordRequest represents a password change request
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8"`
	ConfirmPassword string `json:"confirm_password" binding:"required,eqfield=NewPassword"`
}
