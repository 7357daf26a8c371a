package models

import (
	"time"

	"github.com/google/uuid"
)

// Session is one day of a bootcamp. Day numbers are unique within a bootcamp.
type Session struct {
	ID          uuid.UUID `json:"id" db:"id"`
	BootcampID  uuid.UUID `json:"bootcampId" db:"bootcamp_id"`
	Day         int       `json:"day" db:"day"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description" db:"description"`
	StartTime   string    `json:"startTime,omitempty" db:"start_time"`
	EndTime     string    `json:"endTime,omitempty" db:"end_time"`
	Location    string    `json:"location,omitempty" db:"location"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`

	// Related entities
	Activities []*SessionActivity `json:"activities,omitempty"`
}

// SessionActivity is a timed block within a session, keyed by its "HH:MM" start
type SessionActivity struct {
	ID              uuid.UUID `json:"id" db:"id"`
	SessionID       uuid.UUID `json:"sessionId" db:"session_id"`
	Time            string    `json:"time" db:"time"`
	Title           string    `json:"title" db:"title"`
	Description     string    `json:"description" db:"description"`
	DurationMinutes int       `json:"durationMinutes" db:"duration_minutes"`
	CreatedAt       time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time `json:"updatedAt" db:"updated_at"`
}

// AttendanceRecord stores one student's attendance for one session
type AttendanceRecord struct {
	ID         uuid.UUID        `json:"id" db:"id"`
	SessionID  uuid.UUID        `json:"sessionId" db:"session_id"`
	StudentID  uuid.UUID        `json:"studentId" db:"student_id"`
	Status     AttendanceStatus `json:"status" db:"status"`
	Notes      string           `json:"notes,omitempty" db:"notes"`
	RecordedBy uuid.UUID        `json:"recordedBy" db:"recorded_by"`
	RecordedAt time.Time        `json:"recordedAt" db:"recorded_at"`
}
