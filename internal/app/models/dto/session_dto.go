package dto

import (
	"github.com/google/uuid"
	"github.com/mindforge/mindforge-api/internal/app/models"
)

// CreateSessionRequest represents the body of POST /bootcamps/:bootcampId/sessions
type CreateSessionRequest struct {
	Day         int    `json:"day" binding:"required,min=1" example:"1"`
	Title       string `json:"title" binding:"required,max=200" example:"Kickoff"`
	Description string `json:"description" example:"Meet the team"`
	StartTime   string `json:"startTime,omitempty" binding:"omitempty,clocktime" example:"09:00"`
	EndTime     string `json:"endTime,omitempty" binding:"omitempty,clocktime" example:"12:00"`
	Location    string `json:"location,omitempty" binding:"omitempty,max=200"`
}

// UpdateSessionRequest carries partial session changes
type UpdateSessionRequest struct {
	Day         *int    `json:"day,omitempty" binding:"omitempty,min=1"`
	Title       *string `json:"title,omitempty" binding:"omitempty,min=1,max=200"`
	Description *string `json:"description,omitempty"`
	StartTime   *string `json:"startTime,omitempty" binding:"omitempty,clocktime"`
	EndTime     *string `json:"endTime,omitempty" binding:"omitempty,clocktime"`
	Location    *string `json:"location,omitempty" binding:"omitempty,max=200"`
}

// CreateActivityRequest represents the body of POST /sessions/:id/activities
type CreateActivityRequest struct {
	Time            string `json:"time" binding:"required,clocktime" example:"10:30"`
	Title           string `json:"title" binding:"required,max=200" example:"Pair programming"`
	Description     string `json:"description"`
	DurationMinutes int    `json:"durationMinutes" binding:"omitempty,min=1,max=1440" example:"45"`
}

// UpdateActivityRequest carries partial activity changes
type UpdateActivityRequest struct {
	Time            *string `json:"time,omitempty" binding:"omitempty,clocktime"`
	Title           *string `json:"title,omitempty" binding:"omitempty,min=1,max=200"`
	Description     *string `json:"description,omitempty"`
	DurationMinutes *int    `json:"durationMinutes,omitempty" binding:"omitempty,min=1,max=1440"`
}

// RecordAttendanceRequest represents the body of POST /sessions/:id/attendance
type RecordAttendanceRequest struct {
	StudentID uuid.UUID               `json:"studentId" binding:"required"`
	Status    models.AttendanceStatus `json:"status" binding:"required,oneof=PRESENT ABSENT LATE EXCUSED" example:"PRESENT"`
	Notes     string                  `json:"notes,omitempty" binding:"omitempty,max=1000"`
}

// UpdateAttendanceRequest represents the body of PUT /sessions/:id/attendance/:studentId
type UpdateAttendanceRequest struct {
	Status *models.AttendanceStatus `json:"status,omitempty" binding:"omitempty,oneof=PRESENT ABSENT LATE EXCUSED"`
	Notes  *string                  `json:"notes,omitempty" binding:"omitempty,max=1000"`
}
