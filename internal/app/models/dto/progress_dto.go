package dto

import (
	"time"

	"github.com/google/uuid"
)

// CreateProgressRequest represents the body of POST /progress.
// FacilitatorID names the assessor and is required when the caller is an admin.
type CreateProgressRequest struct {
	StudentID     uuid.UUID  `json:"studentId" binding:"required"`
	FacilitatorID *uuid.UUID `json:"facilitatorId,omitempty"`
	BootcampID    *uuid.UUID `json:"bootcampId,omitempty"`
	SessionID     *uuid.UUID `json:"sessionId,omitempty"`
	Skill         string     `json:"skill" binding:"required,max=100" example:"collaboration"`
	Level         int        `json:"level" binding:"required,min=1,max=4" example:"3"`
	Notes         string     `json:"notes,omitempty" binding:"omitempty,max=2000"`
	AssessedAt    *time.Time `json:"assessedAt,omitempty"`
}

// CreateKnowledgeStreamRequest represents the body of POST /knowledge-streams
type CreateKnowledgeStreamRequest struct {
	Name        string `json:"name" binding:"required,max=150" example:"Creative Coding"`
	Description string `json:"description" binding:"omitempty,max=2000"`
}

// AssignKnowledgeStreamRequest represents the body of POST /students/:studentId/knowledge-streams
type AssignKnowledgeStreamRequest struct {
	KnowledgeStreamID uuid.UUID `json:"knowledgeStreamId" binding:"required"`
}
