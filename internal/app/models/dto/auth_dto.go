package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/apavel/studygate/internal/app/models"
)

// RegisterRequest represents a student account registration request
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email" example:"ana@example.com"`
	Password string `json:"password" binding:"required,min=8"`
}

// LoginRequest represents login credentials
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// TokenResponse represents JWT token information
type TokenResponse struct {
	AccessToken string `json:"accessToken"`
	TokenType   string `json:"tokenType" example:"Bearer"`
	ExpiresIn   int    `json:"expiresIn" example:"3600"`
}

// AuthResponse represents a successful authentication response
type AuthResponse struct {
	Token TokenResponse `json:"token"`
	User  UserResponse  `json:"user"`
}

// UserResponse represents basic account information
type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Role      string    `json:"role" example:"STUDENT" enums:"STUDENT,ADMIN"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewUserResponse maps an account to its response representation
func NewUserResponse(user *models.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		Role:      string(user.Role),
		CreatedAt: user.CreatedAt,
	}
}

// NewAuthResponse builds the register/login response payload
func NewAuthResponse(user *models.User, accessToken string, expiresIn int) AuthResponse {
	return AuthResponse{
		Token: TokenResponse{
			AccessToken: accessToken,
			TokenType:   "Bearer",
			ExpiresIn:   expiresIn,
		},
		User: NewUserResponse(user),
	}
}
