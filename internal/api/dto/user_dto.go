package dto

import (
	"time"

	"github.com/spec-kit/gift-registry/internal/domain"
)

// UserResponse is the wire projection of an account; never carries the
// password hash.
type UserResponse struct {
	ID          int             `json:"id"`
	FirstName   string          `json:"firstName"`
	LastName    string          `json:"lastName"`
	PhoneNumber string          `json:"phoneNumber"`
	FullName    string          `json:"fullName"`
	Role        domain.UserRole `json:"role"`
	IsAdmin     bool            `json:"isAdmin"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// NewUserResponse shapes an account for the wire.
func NewUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:          user.ID,
		FirstName:   user.FirstName,
		LastName:    user.LastName,
		PhoneNumber: user.PhoneNumber,
		FullName:    user.FullName(),
		Role:        user.Role,
		IsAdmin:     user.Role == domain.RoleAdmin,
		CreatedAt:   user.CreatedAt,
	}
}

// RegisterRequest payload for new accounts.
type RegisterRequest struct {
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	PhoneNumber     string `json:"phoneNumber"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

// LoginRequest payload for login.
type LoginRequest struct {
	PhoneNumber string `json:"phoneNumber"`
	Password    string `json:"password"`
}

// UpdateUserRequest payload for partial account edits.
type UpdateUserRequest struct {
	FirstName *string          `json:"firstName"`
	LastName  *string          `json:"lastName"`
	Role      *domain.UserRole `json:"role"`
}

// ForgotPasswordRequest payload.
type ForgotPasswordRequest struct {
	PhoneNumber string `json:"phoneNumber"`
}

// ResetPasswordRequest payload.
type ResetPasswordRequest struct {
	PhoneNumber string `json:"phoneNumber"`
	NewPassword string `json:"newPassword"`
}
