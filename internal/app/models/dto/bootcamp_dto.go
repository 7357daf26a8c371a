package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/mindforge/mindforge-api/internal/app/models"
)

// CreateBootcampRequest represents the body of POST /bootcamps.
// FacilitatorID is required when an admin creates a bootcamp on a facilitator's behalf.
type CreateBootcampRequest struct {
	Title         string                 `json:"title" binding:"required,max=200" example:"Intro to Robotics"`
	Description   string                 `json:"description" binding:"required" example:"Two weeks of hands-on robotics"`
	Subject       string                 `json:"subject" binding:"required,max=100" example:"STEM"`
	Format        models.BootcampFormat  `json:"format" binding:"required,oneof=ONLINE IN_PERSON HYBRID" example:"ONLINE"`
	Status        *models.BootcampStatus `json:"status,omitempty" binding:"omitempty,oneof=DRAFT PUBLISHED IN_PROGRESS COMPLETED CANCELLED"`
	Capacity      int                    `json:"capacity" binding:"required,min=1,max=10000" example:"20"`
	StartDate     *time.Time             `json:"startDate,omitempty"`
	EndDate       *time.Time             `json:"endDate,omitempty"`
	FacilitatorID *uuid.UUID             `json:"facilitatorId,omitempty"`
}

// UpdateBootcampRequest carries partial bootcamp changes
type UpdateBootcampRequest struct {
	Title       *string                `json:"title,omitempty" binding:"omitempty,min=1,max=200"`
	Description *string                `json:"description,omitempty"`
	Subject     *string                `json:"subject,omitempty" binding:"omitempty,min=1,max=100"`
	Format      *models.BootcampFormat `json:"format,omitempty" binding:"omitempty,oneof=ONLINE IN_PERSON HYBRID"`
	Status      *models.BootcampStatus `json:"status,omitempty" binding:"omitempty,oneof=DRAFT PUBLISHED IN_PROGRESS COMPLETED CANCELLED" example:"PUBLISHED"`
	Capacity    *int                   `json:"capacity,omitempty" binding:"omitempty,min=1,max=10000"`
	StartDate   *time.Time             `json:"startDate,omitempty"`
	EndDate     *time.Time             `json:"endDate,omitempty"`
}

// BootcampFilterRequest binds the listing query string
type BootcampFilterRequest struct {
	Status        string `form:"status" binding:"omitempty,oneof=DRAFT PUBLISHED IN_PROGRESS COMPLETED CANCELLED"`
	FacilitatorID string `form:"facilitatorId" binding:"omitempty,uuid"`
	Subject       string `form:"subject"`
	Format        string `form:"format" binding:"omitempty,oneof=ONLINE IN_PERSON HYBRID"`
}

// EnrollmentResponse is returned by a successful enrollment
type EnrollmentResponse struct {
	Enrollment *models.Enrollment `json:"enrollment"`
	Bootcamp   *models.Bootcamp   `json:"bootcamp"`
}
