package dto

import "github.com/mindforge/mindforge-api/internal/app/models"

// LoginRequest represents login credentials
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"ada@mindforge.dev"`
	Password string `json:"password" binding:"required" example:"s3cretpass"`
}

// RegisterRequest represents a self-service registration. Admin accounts cannot be self-registered.
type RegisterRequest struct {
	Email     string          `json:"email" binding:"required,email" example:"ada@mindforge.dev"`
	Password  string          `json:"password" binding:"required,min=8" example:"s3cretpass"`
	FirstName string          `json:"firstName" binding:"required,max=100" example:"Ada"`
	LastName  string          `json:"lastName" binding:"required,max=100" example:"Lovelace"`
	Role      models.RoleType `json:"role" binding:"required,oneof=STUDENT PARENT FACILITATOR" example:"STUDENT"`

	// Student specific fields
	ParentEmail *string `json:"parentEmail,omitempty" binding:"omitempty,email"`
	GradeLevel  *int    `json:"gradeLevel,omitempty" binding:"omitempty,min=1,max=12"`
	// Parent specific fields
	Phone *string `json:"phone,omitempty" binding:"omitempty,max=32"`
	// Facilitator specific fields
	Bio            string `json:"bio,omitempty" binding:"omitempty,max=2000"`
	Specialization string `json:"specialization,omitempty" binding:"omitempty,max=200"`
}

// TokenResponse represents JWT token information
type TokenResponse struct {
	AccessToken string `json:"accessToken"`
	TokenType   string `json:"tokenType" example:"Bearer"`
	ExpiresIn   int64  `json:"expiresIn" example:"86400"`
}

// AuthResponse represents successful authentication response
type AuthResponse struct {
	Token TokenResponse `json:"token"`
	User  *models.User  `json:"user"`
}
