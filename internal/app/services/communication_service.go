package services

import (
	"context"
	"errors"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mindforge/mindforge-api/internal/app/models"
	"github.com/mindforge/mindforge-api/internal/app/models/dto"
	"github.com/mindforge/mindforge-api/internal/app/repositories"
	"github.com/mindforge/mindforge-api/internal/pkg/apperrors"
	"github.com/mindforge/mindforge-api/internal/pkg/helpers"
	"github.com/mindforge/mindforge-api/internal/pkg/observability"
	"github.com/rs/zerolog"
)

// Communication messages
const (
	MsgCommunicationNotFound   = "Communication not found"
	MsgCommunicationNoAccess   = "You do not have access to this communication"
	MsgCommunicationSenderOnly = "Only the sender can modify this communication"
	MsgCommunicationSent       = "Cannot update a communication that has already been sent"
	MsgRecipientsOnly          = "Only recipients can mark a communication as read"
	MsgUnknownRecipients       = "One or more recipients do not exist"
	MsgScheduleInFuture        = "scheduledFor must be in the future"
	MsgMarkedAsRead            = "Communication marked as read"
	MsgAlreadyMarkedAsRead     = "Communication already marked as read"
)

// CommunicationService defines the interface for internal messaging
type CommunicationService interface {
	Create(ctx context.Context, principal models.Principal, req *dto.CreateCommunicationRequest) (*models.Communication, error)
	Inbox(ctx context.Context, principal models.Principal, page helpers.Pagination) ([]*models.InboxItem, int64, error)
	Outbox(ctx context.Context, principal models.Principal, page helpers.Pagination) ([]*models.Communication, int64, error)
	Get(ctx context.Context, principal models.Principal, id uuid.UUID) (*models.Communication, error)
	Update(ctx context.Context, principal models.Principal, id uuid.UUID, req *dto.UpdateCommunicationRequest) (*models.Communication, error)
	Delete(ctx context.Context, principal models.Principal, id uuid.UUID) error
	MarkRead(ctx context.Context, principal models.Principal, id uuid.UUID) (*models.ReadReceipt, bool, error)
	Unread(ctx context.Context, principal models.Principal) (*dto.UnreadResponse, error)
}

type communicationServiceImpl struct {
	userRepo repositories.IUserRepository
	commRepo repositories.ICommunicationRepository
	notifier CommunicationNotifier
	now      func() time.Time
	logger   zerolog.Logger
}

// NewCommunicationService creates a new communication service instance
func NewCommunicationService(repos *repositories.Repositories, notifier CommunicationNotifier, now func() time.Time, logger zerolog.Logger) CommunicationService {
	return &communicationServiceImpl{
		userRepo: repos.UserRepository,
		commRepo: repos.CommunicationRepository,
		notifier: notifier,
		now:      now,
		logger:   logger,
	}
}

func (s *communicationServiceImpl) Create(ctx context.Context, principal models.Principal, req *dto.CreateCommunicationRequest) (*models.Communication, error) {
	comm := &models.Communication{
		SenderID:     principal.UserID,
		Subject:      req.Subject,
		Content:      req.Content,
		Type:         models.CommunicationMessage,
		Status:       models.CommunicationDraft,
		ScheduledFor: req.ScheduledFor,
	}
	if req.Type != "" {
		comm.Type = req.Type
	}
	if req.Status != nil {
		comm.Status = *req.Status
	}

	recipients, err := s.recipients(ctx, req.RecipientIDs)
	if err != nil {
		return nil, err
	}
	comm.RecipientIDs = recipients
	if err := s.checkSchedule(comm); err != nil {
		return nil, err
	}
	if comm.IsSent() {
		s.stampSent(comm)
	}

	if err := s.commRepo.Create(ctx, comm); err != nil {
		if errors.Is(err, repositories.ErrUnknownReference) {
			return nil, unknownRecipients()
		}
		return nil, storageFailure(s.logger, err, "Error creating communication")
	}
	if comm.IsSent() {
		s.delivered(comm)
	}
	return comm, nil
}

func (s *communicationServiceImpl) Inbox(ctx context.Context, principal models.Principal, page helpers.Pagination) ([]*models.InboxItem, int64, error) {
	items, total, err := s.commRepo.ListInbox(ctx, principal.UserID, page.Limit, page.Skip)
	if err != nil {
		return nil, 0, storageFailure(s.logger, err, "Error listing inbox")
	}
	return items, total, nil
}

func (s *communicationServiceImpl) Outbox(ctx context.Context, principal models.Principal, page helpers.Pagination) ([]*models.Communication, int64, error) {
	comms, total, err := s.commRepo.ListSent(ctx, principal.UserID, page.Limit, page.Skip)
	if err != nil {
		return nil, 0, storageFailure(s.logger, err, "Error listing sent communications")
	}
	return comms, total, nil
}

// Get allows the sender, and recipients once the communication is SENT
func (s *communicationServiceImpl) Get(ctx context.Context, principal models.Principal, id uuid.UUID) (*models.Communication, error) {
	comm, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	switch {
	case comm.SenderID == principal.UserID:
		return comm, nil
	case comm.HasRecipient(principal.UserID):
		if !comm.IsSent() {
			return nil, apperrors.NotFound(MsgCommunicationNotFound)
		}
		return comm, nil
	}
	return nil, apperrors.Forbidden(MsgCommunicationNoAccess)
}

func (s *communicationServiceImpl) Update(ctx context.Context, principal models.Principal, id uuid.UUID, req *dto.UpdateCommunicationRequest) (*models.Communication, error) {
	comm, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if comm.SenderID != principal.UserID {
		return nil, apperrors.Forbidden(MsgCommunicationSenderOnly)
	}
	if comm.IsSent() {
		return nil, apperrors.Conflict(MsgCommunicationSent)
	}

	if req.Subject != nil {
		comm.Subject = *req.Subject
	}
	if req.Content != nil {
		comm.Content = *req.Content
	}
	if req.Type != nil {
		comm.Type = *req.Type
	}
	if req.Status != nil {
		comm.Status = *req.Status
	}
	if req.ScheduledFor != nil {
		comm.ScheduledFor = req.ScheduledFor
	}
	if req.RecipientIDs != nil {
		recipients, err := s.recipients(ctx, req.RecipientIDs)
		if err != nil {
			return nil, err
		}
		comm.RecipientIDs = recipients
	}
	if err := s.checkSchedule(comm); err != nil {
		return nil, err
	}
	if comm.IsSent() {
		s.stampSent(comm)
	}

	if err := s.commRepo.Update(ctx, comm); err != nil {
		switch {
		case errors.Is(err, repositories.ErrAlreadySent):
			return nil, apperrors.Conflict(MsgCommunicationSent)
		case errors.Is(err, repositories.ErrNotFound):
			return nil, apperrors.NotFound(MsgCommunicationNotFound)
		case errors.Is(err, repositories.ErrUnknownReference):
			return nil, unknownRecipients()
		}
		return nil, storageFailure(s.logger, err, "Error updating communication")
	}
	if comm.IsSent() {
		s.delivered(comm)
	}
	return comm, nil
}

// Delete is allowed for the sender and for admins
func (s *communicationServiceImpl) Delete(ctx context.Context, principal models.Principal, id uuid.UUID) error {
	comm, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if comm.SenderID != principal.UserID && !principal.Is(models.RoleAdmin) {
		return apperrors.Forbidden(MsgCommunicationSenderOnly)
	}
	if err := s.commRepo.Delete(ctx, id); err != nil {
		return lookupErr(s.logger, err, MsgCommunicationNotFound)
	}
	return nil
}

// MarkRead returns the caller's receipt and whether this call created it
func (s *communicationServiceImpl) MarkRead(ctx context.Context, principal models.Principal, id uuid.UUID) (*models.ReadReceipt, bool, error) {
	comm, err := s.load(ctx, id)
	if err != nil {
		return nil, false, err
	}
	if !comm.HasRecipient(principal.UserID) {
		return nil, false, apperrors.Forbidden(MsgRecipientsOnly)
	}
	if !comm.IsSent() {
		return nil, false, apperrors.NotFound(MsgCommunicationNotFound)
	}

	receipt, created, err := s.commRepo.MarkRead(ctx, id, principal.UserID)
	if err != nil {
		return nil, false, lookupErr(s.logger, err, MsgCommunicationNotFound)
	}
	return receipt, created, nil
}

func (s *communicationServiceImpl) Unread(ctx context.Context, principal models.Principal) (*dto.UnreadResponse, error) {
	comms, err := s.commRepo.ListUnread(ctx, principal.UserID)
	if err != nil {
		return nil, storageFailure(s.logger, err, "Error listing unread communications")
	}
	return &dto.UnreadResponse{Communications: comms, Count: len(comms)}, nil
}

func (s *communicationServiceImpl) load(ctx context.Context, id uuid.UUID) (*models.Communication, error) {
	comm, err := s.commRepo.GetByID(ctx, id)
	if err != nil {
		return nil, lookupErr(s.logger, err, MsgCommunicationNotFound)
	}
	return comm, nil
}

// recipients de-duplicates ids, keeping first-seen order, and checks that every one exists
func (s *communicationServiceImpl) recipients(ctx context.Context, ids []uuid.UUID) ([]uuid.UUID, error) {
	unique := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if !slices.Contains(unique, id) {
			unique = append(unique, id)
		}
	}
	if len(unique) == 0 {
		return nil, apperrors.Validation("Validation failed", apperrors.FieldError{Field: "recipientIds", Message: "recipientIds must contain at least 1 item"})
	}

	missing, err := s.userRepo.MissingIDs(ctx, unique)
	if err != nil {
		return nil, storageFailure(s.logger, err, "Error checking recipients")
	}
	if len(missing) > 0 {
		s.logger.Debug().Int("missing", len(missing)).Msg("Communication addressed to unknown users")
		return nil, unknownRecipients(missing...)
	}
	return unique, nil
}

func (s *communicationServiceImpl) checkSchedule(comm *models.Communication) error {
	if comm.Status != models.CommunicationScheduled {
		return nil
	}
	if comm.ScheduledFor == nil || !comm.ScheduledFor.After(s.now()) {
		return apperrors.Validation("Validation failed", apperrors.FieldError{Field: "scheduledFor", Message: MsgScheduleInFuture})
	}
	return nil
}

func (s *communicationServiceImpl) stampSent(comm *models.Communication) {
	if comm.SentAt == nil {
		now := s.now()
		comm.SentAt = &now
	}
}

func (s *communicationServiceImpl) delivered(comm *models.Communication) {
	observability.CommunicationsSent.Inc()
	s.notifier.CommunicationSent(comm)
	s.logger.Info().
		Str("communicationID", comm.ID.String()).
		Int("recipients", len(comm.RecipientIDs)).
		Msg("Communication sent")
}

// unknownRecipients lists the offending ids when they are known. A foreign key race only tells us some id vanished.
func unknownRecipients(missing ...uuid.UUID) error {
	message := MsgUnknownRecipients
	if len(missing) > 0 {
		ids := make([]string, len(missing))
		for i, id := range missing {
			ids[i] = id.String()
		}
		message = "unknown user ids: " + strings.Join(ids, ", ")
	}
	return apperrors.Validation(MsgUnknownRecipients, apperrors.FieldError{Field: "recipientIds", Message: message})
}
