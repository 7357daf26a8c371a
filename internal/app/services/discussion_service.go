package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/mindforge/mindforge-api/internal/app/auth"
	"github.com/mindforge/mindforge-api/internal/app/models"
	"github.com/mindforge/mindforge-api/internal/app/models/dto"
	"github.com/mindforge/mindforge-api/internal/app/repositories"
	"github.com/mindforge/mindforge-api/internal/pkg/apperrors"
	"github.com/mindforge/mindforge-api/internal/pkg/helpers"
	"github.com/rs/zerolog"
)

// MsgDiscussionDayExists is returned when the bootcamp already has a topic for that day
const MsgDiscussionDayExists = "A discussion topic for this day already exists"

// DiscussionService defines the interface for discussion topic operations
type DiscussionService interface {
	ListByBootcamp(ctx context.Context, bootcampID uuid.UUID, page helpers.Pagination) ([]*models.DiscussionTopic, int64, error)
	Get(ctx context.Context, id uuid.UUID) (*models.DiscussionTopic, error)
	Create(ctx context.Context, principal models.Principal, bootcampID uuid.UUID, req *dto.CreateDiscussionRequest) (*models.DiscussionTopic, error)
	Update(ctx context.Context, principal models.Principal, id uuid.UUID, req *dto.UpdateDiscussionRequest) (*models.DiscussionTopic, error)
	Delete(ctx context.Context, principal models.Principal, id uuid.UUID) error
}

type discussionServiceImpl struct {
	bootcampRepo   repositories.IBootcampRepository
	discussionRepo repositories.IDiscussionRepository
	authz          *auth.AuthorizationService
	logger         zerolog.Logger
}

// NewDiscussionService creates a new discussion service instance
func NewDiscussionService(repos *repositories.Repositories, authz *auth.AuthorizationService, logger zerolog.Logger) DiscussionService {
	return &discussionServiceImpl{
		bootcampRepo:   repos.BootcampRepository,
		discussionRepo: repos.DiscussionRepository,
		authz:          authz,
		logger:         logger,
	}
}

func (s *discussionServiceImpl) ListByBootcamp(ctx context.Context, bootcampID uuid.UUID, page helpers.Pagination) ([]*models.DiscussionTopic, int64, error) {
	if err := requireBootcamp(ctx, s.bootcampRepo, s.logger, bootcampID); err != nil {
		return nil, 0, err
	}
	topics, total, err := s.discussionRepo.ListByBootcamp(ctx, bootcampID, page.Limit, page.Skip)
	if err != nil {
		return nil, 0, storageFailure(s.logger, err, "Error listing discussion topics")
	}
	return topics, total, nil
}

func (s *discussionServiceImpl) Get(ctx context.Context, id uuid.UUID) (*models.DiscussionTopic, error) {
	topic, err := s.discussionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, lookupErr(s.logger, err, auth.MsgDiscussionNotFound)
	}
	return topic, nil
}

func (s *discussionServiceImpl) Create(ctx context.Context, principal models.Principal, bootcampID uuid.UUID, req *dto.CreateDiscussionRequest) (*models.DiscussionTopic, error) {
	if err := requireBootcamp(ctx, s.bootcampRepo, s.logger, bootcampID); err != nil {
		return nil, err
	}
	if _, err := s.authz.VerifyBootcampOwnership(ctx, principal.UserID, bootcampID); err != nil {
		return nil, err
	}
	if err := s.dayAvailable(ctx, bootcampID, req.Day, uuid.Nil); err != nil {
		return nil, err
	}

	topic := &models.DiscussionTopic{
		BootcampID:  bootcampID,
		Day:         req.Day,
		Title:       req.Title,
		Description: req.Description,
		Prompts:     req.Prompts,
	}
	if topic.Prompts == nil {
		topic.Prompts = []string{}
	}
	if err := s.discussionRepo.Create(ctx, topic); err != nil {
		return nil, s.writeErr(err)
	}
	return topic, nil
}

func (s *discussionServiceImpl) Update(ctx context.Context, principal models.Principal, id uuid.UUID, req *dto.UpdateDiscussionRequest) (*models.DiscussionTopic, error) {
	topic, err := s.authz.VerifyDiscussionOwnership(ctx, principal.UserID, id)
	if err != nil {
		return nil, err
	}

	if req.Day != nil && *req.Day != topic.Day {
		if err := s.dayAvailable(ctx, topic.BootcampID, *req.Day, topic.ID); err != nil {
			return nil, err
		}
		topic.Day = *req.Day
	}
	if req.Title != nil {
		topic.Title = *req.Title
	}
	if req.Description != nil {
		topic.Description = *req.Description
	}
	if req.Prompts != nil {
		topic.Prompts = req.Prompts
	}

	if err := s.discussionRepo.Update(ctx, topic); err != nil {
		return nil, s.writeErr(err)
	}
	return topic, nil
}

func (s *discussionServiceImpl) Delete(ctx context.Context, principal models.Principal, id uuid.UUID) error {
	if _, err := s.authz.VerifyDiscussionOwnership(ctx, principal.UserID, id); err != nil {
		return err
	}
	if err := s.discussionRepo.Delete(ctx, id); err != nil {
		return lookupErr(s.logger, err, auth.MsgDiscussionNotFound)
	}
	return nil
}

func (s *discussionServiceImpl) dayAvailable(ctx context.Context, bootcampID uuid.UUID, day int, self uuid.UUID) error {
	existing, err := s.discussionRepo.GetByDay(ctx, bootcampID, day)
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		return nil
	case err != nil:
		return storageFailure(s.logger, err, "Error checking discussion day")
	case existing.ID != self:
		return apperrors.Conflict(MsgDiscussionDayExists)
	}
	return nil
}

func (s *discussionServiceImpl) writeErr(err error) error {
	switch {
	case errors.Is(err, repositories.ErrDuplicateDay):
		return apperrors.Conflict(MsgDiscussionDayExists)
	case errors.Is(err, repositories.ErrNotFound):
		return apperrors.NotFound(auth.MsgDiscussionNotFound)
	case errors.Is(err, repositories.ErrUnknownReference):
		return apperrors.NotFound(auth.MsgBootcampNotFound)
	}
	return storageFailure(s.logger, err, "Error saving discussion topic")
}
