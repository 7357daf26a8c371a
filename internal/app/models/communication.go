package models

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

// Communication is an internal message from one user to one or more recipients
type Communication struct {
	ID           uuid.UUID           `json:"id" db:"id"`
	SenderID     uuid.UUID           `json:"senderId" db:"sender_id"`
	Subject      string              `json:"subject" db:"subject"`
	Content      string              `json:"content" db:"content"`
	Type         CommunicationType   `json:"type" db:"type"`
	Status       CommunicationStatus `json:"status" db:"status"`
	ScheduledFor *time.Time          `json:"scheduledFor,omitempty" db:"scheduled_for"`
	SentAt       *time.Time          `json:"sentAt,omitempty" db:"sent_at"`
	RecipientIDs []uuid.UUID         `json:"recipientIds" db:"recipient_ids"`
	CreatedAt    time.Time           `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time           `json:"updatedAt" db:"updated_at"`
}

// IsSent reports whether the communication reached its terminal state
func (c *Communication) IsSent() bool {
	return c.Status == CommunicationSent
}

// HasRecipient reports whether userID is among the recipients
func (c *Communication) HasRecipient(userID uuid.UUID) bool {
	return slices.Contains(c.RecipientIDs, userID)
}

// ReadReceipt records the first time a recipient read a communication
type ReadReceipt struct {
	ID              uuid.UUID `json:"id" db:"id"`
	CommunicationID uuid.UUID `json:"communicationId" db:"communication_id"`
	UserID          uuid.UUID `json:"userId" db:"user_id"`
	ReadAt          time.Time `json:"readAt" db:"read_at"`
}

// InboxItem is a received communication with the caller's read state
type InboxItem struct {
	*Communication
	IsRead bool `json:"isRead"`
}
