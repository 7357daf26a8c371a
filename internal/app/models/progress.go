package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	MinRubricLevel = 1
	MaxRubricLevel = 4
)

// RubricLevel describes what one proficiency level of a skill looks like
type RubricLevel struct {
	Level      int    `json:"level"`
	Label      string `json:"label"`
	Descriptor string `json:"descriptor"`
}

// Rubric is the assessment scale for one skill
type Rubric struct {
	ID          uuid.UUID     `json:"id" db:"id"`
	Skill       string        `json:"skill" db:"skill"`
	Description string        `json:"description" db:"description"`
	Levels      []RubricLevel `json:"levels" db:"levels"`
	CreatedAt   time.Time     `json:"createdAt" db:"created_at"`
}

// ProgressRecord is one assessment of a student against a rubric skill
type ProgressRecord struct {
	ID            uuid.UUID  `json:"id" db:"id"`
	StudentID     uuid.UUID  `json:"studentId" db:"student_id"`
	FacilitatorID uuid.UUID  `json:"facilitatorId" db:"facilitator_id"`
	BootcampID    *uuid.UUID `json:"bootcampId,omitempty" db:"bootcamp_id"`
	SessionID     *uuid.UUID `json:"sessionId,omitempty" db:"session_id"`
	Skill         string     `json:"skill" db:"skill"`
	Level         int        `json:"level" db:"level"`
	Notes         string     `json:"notes,omitempty" db:"notes"`
	AssessedAt    time.Time  `json:"assessedAt" db:"assessed_at"`
}

// KnowledgeStream is a named learning track students can be assigned to
type KnowledgeStream struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description" db:"description"`
	CreatedBy   uuid.UUID `json:"createdBy" db:"created_by"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}

// StudentKnowledgeStream assigns a student to a knowledge stream
type StudentKnowledgeStream struct {
	ID                uuid.UUID `json:"id" db:"id"`
	StudentID         uuid.UUID `json:"studentId" db:"student_id"`
	KnowledgeStreamID uuid.UUID `json:"knowledgeStreamId" db:"knowledge_stream_id"`
	AssignedAt        time.Time `json:"assignedAt" db:"assigned_at"`

	// Related entities
	KnowledgeStream *KnowledgeStream `json:"knowledgeStream,omitempty"`
}

// HasLevel reports whether level is one of the rubric's defined levels.
// A rubric without levels accepts the full 1..4 scale.
func (r *Rubric) HasLevel(level int) bool {
	if level < MinRubricLevel || level > MaxRubricLevel {
		return false
	}
	if len(r.Levels) == 0 {
		return true
	}
	for _, l := range r.Levels {
		if l.Level == level {
			return true
		}
	}
	return false
}
