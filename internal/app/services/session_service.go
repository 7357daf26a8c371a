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

// Session messages
const (
	MsgSessionDayExists = "A session for this day already exists"
	MsgTimeOrder        = "endTime must be after startTime"
)

// SessionService defines the interface for session operations
type SessionService interface {
	ListByBootcamp(ctx context.Context, bootcampID uuid.UUID) ([]*models.Session, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Session, error)
	Create(ctx context.Context, principal models.Principal, bootcampID uuid.UUID, req *dto.CreateSessionRequest) (*models.Session, error)
	Update(ctx context.Context, principal models.Principal, id uuid.UUID, req *dto.UpdateSessionRequest) (*models.Session, error)
	Delete(ctx context.Context, principal models.Principal, id uuid.UUID) error
}

type sessionServiceImpl struct {
	bootcampRepo repositories.IBootcampRepository
	sessionRepo  repositories.ISessionRepository
	activityRepo repositories.IActivityRepository
	authz        *auth.AuthorizationService
	logger       zerolog.Logger
}

// NewSessionService creates a new session service instance
func NewSessionService(repos *repositories.Repositories, authz *auth.AuthorizationService, logger zerolog.Logger) SessionService {
	return &sessionServiceImpl{
		bootcampRepo: repos.BootcampRepository,
		sessionRepo:  repos.SessionRepository,
		activityRepo: repos.ActivityRepository,
		authz:        authz,
		logger:       logger,
	}
}

// requireBootcamp returns 404 for a missing bootcamp, so admins cannot attach children to nothing
func requireBootcamp(ctx context.Context, repo repositories.IBootcampRepository, log zerolog.Logger, id uuid.UUID) error {
	if _, err := repo.GetByID(ctx, id); err != nil {
		return lookupErr(log, err, auth.MsgBootcampNotFound)
	}
	return nil
}

// validTimeRange compares "HH:MM" strings, which order lexically
func validTimeRange(start, end string) error {
	if start != "" && end != "" && end <= start {
		return apperrors.Validation("Validation failed", apperrors.FieldError{Field: "endTime", Message: MsgTimeOrder})
	}
	return nil
}

func (s *sessionServiceImpl) ListByBootcamp(ctx context.Context, bootcampID uuid.UUID) ([]*models.Session, error) {
	if err := requireBootcamp(ctx, s.bootcampRepo, s.logger, bootcampID); err != nil {
		return nil, err
	}
	sessions, err := s.sessionRepo.ListByBootcamp(ctx, bootcampID)
	if err != nil {
		return nil, storageFailure(s.logger, err, "Error listing sessions")
	}
	return sessions, nil
}

// Get returns the session with its activities
func (s *sessionServiceImpl) Get(ctx context.Context, id uuid.UUID) (*models.Session, error) {
	session, err := s.sessionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, lookupErr(s.logger, err, auth.MsgSessionNotFound)
	}
	activities, err := s.activityRepo.ListBySession(ctx, id)
	if err != nil {
		return nil, storageFailure(s.logger, err, "Error listing activities")
	}
	session.Activities = activities
	return session, nil
}

func (s *sessionServiceImpl) Create(ctx context.Context, principal models.Principal, bootcampID uuid.UUID, req *dto.CreateSessionRequest) (*models.Session, error) {
	if err := requireBootcamp(ctx, s.bootcampRepo, s.logger, bootcampID); err != nil {
		return nil, err
	}
	if _, err := s.authz.VerifyBootcampOwnership(ctx, principal.UserID, bootcampID); err != nil {
		return nil, err
	}
	if err := validTimeRange(req.StartTime, req.EndTime); err != nil {
		return nil, err
	}
	if err := s.dayAvailable(ctx, bootcampID, req.Day, uuid.Nil); err != nil {
		return nil, err
	}

	session := &models.Session{
		BootcampID:  bootcampID,
		Day:         req.Day,
		Title:       req.Title,
		Description: req.Description,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Location:    req.Location,
	}
	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, s.writeErr(err)
	}
	return session, nil
}

func (s *sessionServiceImpl) Update(ctx context.Context, principal models.Principal, id uuid.UUID, req *dto.UpdateSessionRequest) (*models.Session, error) {
	session, err := s.authz.VerifySessionOwnership(ctx, principal.UserID, id)
	if err != nil {
		return nil, err
	}

	if req.Day != nil && *req.Day != session.Day {
		if err := s.dayAvailable(ctx, session.BootcampID, *req.Day, session.ID); err != nil {
			return nil, err
		}
		session.Day = *req.Day
	}
	if req.Title != nil {
		session.Title = *req.Title
	}
	if req.Description != nil {
		session.Description = *req.Description
	}
	if req.StartTime != nil {
		session.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		session.EndTime = *req.EndTime
	}
	if req.Location != nil {
		session.Location = *req.Location
	}
	if err := validTimeRange(session.StartTime, session.EndTime); err != nil {
		return nil, err
	}

	if err := s.sessionRepo.Update(ctx, session); err != nil {
		return nil, s.writeErr(err)
	}
	return session, nil
}

func (s *sessionServiceImpl) Delete(ctx context.Context, principal models.Principal, id uuid.UUID) error {
	if _, err := s.authz.VerifySessionOwnership(ctx, principal.UserID, id); err != nil {
		return err
	}
	if err := s.sessionRepo.Delete(ctx, id); err != nil {
		return lookupErr(s.logger, err, auth.MsgSessionNotFound)
	}
	return nil
}

func (s *sessionServiceImpl) dayAvailable(ctx context.Context, bootcampID uuid.UUID, day int, self uuid.UUID) error {
	existing, err := s.sessionRepo.GetByDay(ctx, bootcampID, day)
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		return nil
	case err != nil:
		return storageFailure(s.logger, err, "Error checking session day")
	case existing.ID != self:
		return apperrors.Conflict(MsgSessionDayExists)
	}
	return nil
}

func (s *sessionServiceImpl) writeErr(err error) error {
	switch {
	case errors.Is(err, repositories.ErrDuplicateDay):
		return apperrors.Conflict(MsgSessionDayExists)
	case errors.Is(err, repositories.ErrNotFound):
		return apperrors.NotFound(auth.MsgSessionNotFound)
	case errors.Is(err, repositories.ErrUnknownReference):
		return apperrors.NotFound(auth.MsgBootcampNotFound)
	}
	return storageFailure(s.logger, err, "Error saving session")
}
