package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/mindforge/mindforge-api/internal/app/models"
)

// CreateCommunicationRequest represents the body of POST /communications
type CreateCommunicationRequest struct {
	Subject      string                      `json:"subject" binding:"required,max=200" example:"Welcome"`
	Content      string                      `json:"content" binding:"required" example:"See you on day one"`
	Type         models.CommunicationType    `json:"type" binding:"omitempty,oneof=ANNOUNCEMENT MESSAGE REMINDER" example:"MESSAGE"`
	Status       *models.CommunicationStatus `json:"status,omitempty" binding:"omitempty,oneof=DRAFT SCHEDULED SENT" example:"DRAFT"`
	ScheduledFor *time.Time                  `json:"scheduledFor,omitempty"`
	RecipientIDs []uuid.UUID                 `json:"recipientIds" binding:"required,min=1,dive,required"`
}

// UpdateCommunicationRequest carries partial communication changes
type UpdateCommunicationRequest struct {
	Subject      *string                     `json:"subject,omitempty" binding:"omitempty,min=1,max=200"`
	Content      *string                     `json:"content,omitempty" binding:"omitempty,min=1"`
	Type         *models.CommunicationType   `json:"type,omitempty" binding:"omitempty,oneof=ANNOUNCEMENT MESSAGE REMINDER"`
	Status       *models.CommunicationStatus `json:"status,omitempty" binding:"omitempty,oneof=DRAFT SCHEDULED SENT"`
	ScheduledFor *time.Time                  `json:"scheduledFor,omitempty"`
	RecipientIDs []uuid.UUID                 `json:"recipientIds,omitempty" binding:"omitempty,min=1,dive,required"`
}

// ReadReceiptResponse is returned by POST /communications/:id/read
type ReadReceiptResponse struct {
	Receipt     *models.ReadReceipt `json:"receipt"`
	AlreadyRead bool                `json:"alreadyRead"`
}

// UnreadResponse lists the caller's unread communications
type UnreadResponse struct {
	Communications []*models.Communication `json:"communications"`
	Count          int                     `json:"count"`
}
