package models

import (
	"time"

	"github.com/google/uuid"
)

// Bootcamp represents a facilitator-led cohort that students enroll in
type Bootcamp struct {
	ID              uuid.UUID      `json:"id" db:"id"`
	FacilitatorID   uuid.UUID      `json:"facilitatorId" db:"facilitator_id"`
	Title           string         `json:"title" db:"title"`
	Description     string         `json:"description" db:"description"`
	Subject         string         `json:"subject" db:"subject"`
	Format          BootcampFormat `json:"format" db:"format"`
	Status          BootcampStatus `json:"status" db:"status"`
	Capacity        int            `json:"capacity" db:"capacity"`
	EnrollmentCount int            `json:"enrollmentCount" db:"enrollment_count"`
	StartDate       *time.Time     `json:"startDate,omitempty" db:"start_date"`
	EndDate         *time.Time     `json:"endDate,omitempty" db:"end_date"`
	CreatedAt       time.Time      `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time      `json:"updatedAt" db:"updated_at"`
}

// IsOpen reports whether the bootcamp accepts enrollments right now
func (b *Bootcamp) IsOpen() bool {
	return b.Status == BootcampPublished
}

// IsFull reports whether every seat is taken
func (b *Bootcamp) IsFull() bool {
	return b.EnrollmentCount >= b.Capacity
}

// Enrollment links a student to a bootcamp. One per (student, bootcamp).
type Enrollment struct {
	ID         uuid.UUID        `json:"id" db:"id"`
	StudentID  uuid.UUID        `json:"studentId" db:"student_id"`
	BootcampID uuid.UUID        `json:"bootcampId" db:"bootcamp_id"`
	Status     EnrollmentStatus `json:"status" db:"status"`
	EnrolledAt time.Time        `json:"enrolledAt" db:"enrolled_at"`
}

// BootcampFilter narrows bootcamp listings. Zero values mean "any".
type BootcampFilter struct {
	Status        BootcampStatus
	FacilitatorID *uuid.UUID
	Subject       string
	Format        BootcampFormat
}
