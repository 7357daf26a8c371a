package models

import (
	"time"

	"github.com/google/uuid"
)

// DiscussionTopic is the daily discussion prompt set of a bootcamp
type DiscussionTopic struct {
	ID          uuid.UUID `json:"id" db:"id"`
	BootcampID  uuid.UUID `json:"bootcampId" db:"bootcamp_id"`
	Day         int       `json:"day" db:"day"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description" db:"description"`
	Prompts     []string  `json:"prompts" db:"prompts"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}
