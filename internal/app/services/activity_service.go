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
	"github.com/rs/zerolog"
)

// MsgActivityTimeExists is returned when a session already has an activity at that start time
const MsgActivityTimeExists = "An activity at this time already exists"

// ActivityService defines the interface for session activity operations
type ActivityService interface {
	ListBySession(ctx context.Context, sessionID uuid.UUID) ([]*models.SessionActivity, error)
	Create(ctx context.Context, principal models.Principal, sessionID uuid.UUID, req *dto.CreateActivityRequest) (*models.SessionActivity, error)
	Update(ctx context.Context, principal models.Principal, sessionID, activityID uuid.UUID, req *dto.UpdateActivityRequest) (*models.SessionActivity, error)
	Delete(ctx context.Context, principal models.Principal, sessionID, activityID uuid.UUID) error
}

type activityServiceImpl struct {
	sessionRepo  repositories.ISessionRepository
	activityRepo repositories.IActivityRepository
	authz        *auth.AuthorizationService
	logger       zerolog.Logger
}

// NewActivityService creates a new activity service instance
func NewActivityService(repos *repositories.Repositories, authz *auth.AuthorizationService, logger zerolog.Logger) ActivityService {
	return &activityServiceImpl{
		sessionRepo:  repos.SessionRepository,
		activityRepo: repos.ActivityRepository,
		authz:        authz,
		logger:       logger,
	}
}

func (s *activityServiceImpl) ListBySession(ctx context.Context, sessionID uuid.UUID) ([]*models.SessionActivity, error) {
	if _, err := s.sessionRepo.GetByID(ctx, sessionID); err != nil {
		return nil, lookupErr(s.logger, err, auth.MsgSessionNotFound)
	}
	activities, err := s.activityRepo.ListBySession(ctx, sessionID)
	if err != nil {
		return nil, storageFailure(s.logger, err, "Error listing activities")
	}
	return activities, nil
}

func (s *activityServiceImpl) Create(ctx context.Context, principal models.Principal, sessionID uuid.UUID, req *dto.CreateActivityRequest) (*models.SessionActivity, error) {
	if _, err := s.authz.VerifySessionOwnership(ctx, principal.UserID, sessionID); err != nil {
		return nil, err
	}
	if err := s.timeAvailable(ctx, sessionID, req.Time, uuid.Nil); err != nil {
		return nil, err
	}

	activity := &models.SessionActivity{
		SessionID:       sessionID,
		Time:            req.Time,
		Title:           req.Title,
		Description:     req.Description,
		DurationMinutes: req.DurationMinutes,
	}
	if err := s.activityRepo.Create(ctx, activity); err != nil {
		return nil, s.writeErr(err)
	}
	return activity, nil
}

// owned verifies ownership and that the activity belongs to sessionID
func (s *activityServiceImpl) owned(ctx context.Context, principal models.Principal, sessionID, activityID uuid.UUID) (*models.SessionActivity, error) {
	activity, err := s.authz.VerifyActivityOwnership(ctx, principal.UserID, activityID)
	if err != nil {
		return nil, err
	}
	if activity.SessionID != sessionID {
		return nil, apperrors.NotFound(auth.MsgActivityNotFound)
	}
	return activity, nil
}

func (s *activityServiceImpl) Update(ctx context.Context, principal models.Principal, sessionID, activityID uuid.UUID, req *dto.UpdateActivityRequest) (*models.SessionActivity, error) {
	activity, err := s.owned(ctx, principal, sessionID, activityID)
	if err != nil {
		return nil, err
	}

	if req.Time != nil && *req.Time != activity.Time {
		if err := s.timeAvailable(ctx, sessionID, *req.Time, activity.ID); err != nil {
			return nil, err
		}
		activity.Time = *req.Time
	}
	if req.Title != nil {
		activity.Title = *req.Title
	}
	if req.Description != nil {
		activity.Description = *req.Description
	}
	if req.DurationMinutes != nil {
		activity.DurationMinutes = *req.DurationMinutes
	}

	if err := s.activityRepo.Update(ctx, activity); err != nil {
		return nil, s.writeErr(err)
	}
	return activity, nil
}

func (s *activityServiceImpl) Delete(ctx context.Context, principal models.Principal, sessionID, activityID uuid.UUID) error {
	if _, err := s.owned(ctx, principal, sessionID, activityID); err != nil {
		return err
	}
	if err := s.activityRepo.Delete(ctx, activityID); err != nil {
		return lookupErr(s.logger, err, auth.MsgActivityNotFound)
	}
	return nil
}

func (s *activityServiceImpl) timeAvailable(ctx context.Context, sessionID uuid.UUID, at string, self uuid.UUID) error {
	existing, err := s.activityRepo.GetByTime(ctx, sessionID, at)
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		return nil
	case err != nil:
		return storageFailure(s.logger, err, "Error checking activity time")
	case existing.ID != self:
		return apperrors.Conflict(MsgActivityTimeExists)
	}
	return nil
}

func (s *activityServiceImpl) writeErr(err error) error {
	switch {
	case errors.Is(err, repositories.ErrDuplicateTime):
		return apperrors.Conflict(MsgActivityTimeExists)
	case errors.Is(err, repositories.ErrNotFound):
		return apperrors.NotFound(auth.MsgActivityNotFound)
	case errors.Is(err, repositories.ErrUnknownReference):
		return apperrors.NotFound(auth.MsgSessionNotFound)
	}
	return storageFailure(s.logger, err, "Error saving activity")
}
