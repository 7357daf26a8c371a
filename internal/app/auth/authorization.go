package auth

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/mindforge/mindforge-api/internal/app/models"
	"github.com/mindforge/mindforge-api/internal/app/repositories"
	"github.com/mindforge/mindforge-api/internal/pkg/apperrors"
	"github.com/mindforge/mindforge-api/internal/pkg/logger"
)

// Client-facing authorization messages
const (
	MsgFacilitatorOrAdmin  = "Only facilitators and admins may perform this action"
	MsgNotBootcampOwner    = "You can only manage your own bootcamps"
	MsgBootcampNotFound    = "Bootcamp not found"
	MsgSessionNotFound     = "Session not found"
	MsgActivityNotFound    = "Activity not found"
	MsgDiscussionNotFound  = "Discussion topic not found"
	MsgStudentNotFound     = "Student not found"
	MsgOwnRecordsOnly      = "You can only view your own records"
	MsgChildrenRecordsOnly = "You can only view your children's records"
	msgStorageUnavailable  = "Service temporarily unavailable"
)

// Capabilities is what a user may do regardless of any particular resource
type Capabilities struct {
	Facilitator *models.FacilitatorProfile
	IsAdmin     bool
	HasAccess   bool
}

// AuthorizationService resolves roles and verifies bootcamp ownership
type AuthorizationService struct {
	users       repositories.IUserRepository
	bootcamps   repositories.IBootcampRepository
	sessions    repositories.ISessionRepository
	activities  repositories.IActivityRepository
	discussions repositories.IDiscussionRepository
}

// NewAuthorizationService creates a new AuthorizationService
func NewAuthorizationService(repos *repositories.Repositories) *AuthorizationService {
	return &AuthorizationService{
		users:       repos.UserRepository,
		bootcamps:   repos.BootcampRepository,
		sessions:    repos.SessionRepository,
		activities:  repos.ActivityRepository,
		discussions: repos.DiscussionRepository,
	}
}

func unavailable(err error) error {
	return apperrors.ServiceUnavailable(msgStorageUnavailable, err)
}

// ResolveCapabilities looks up the facilitator and admin profiles of userID
func (s *AuthorizationService) ResolveCapabilities(ctx context.Context, userID uuid.UUID) (*Capabilities, error) {
	caps := &Capabilities{}

	facilitator, err := s.users.GetFacilitatorByUserID(ctx, userID)
	switch {
	case err == nil:
		caps.Facilitator = facilitator
	case !errors.Is(err, repositories.ErrNotFound):
		logger.Error().Err(err).Str("userID", userID.String()).Msg("Error getting facilitator profile")
		return nil, unavailable(err)
	}

	_, err = s.users.GetAdminByUserID(ctx, userID)
	switch {
	case err == nil:
		caps.IsAdmin = true
	case !errors.Is(err, repositories.ErrNotFound):
		logger.Error().Err(err).Str("userID", userID.String()).Msg("Error getting admin profile")
		return nil, unavailable(err)
	}

	caps.HasAccess = caps.Facilitator != nil || caps.IsAdmin
	return caps, nil
}

// VerifyBootcampOwnership passes for admins and for the facilitator who owns the bootcamp
func (s *AuthorizationService) VerifyBootcampOwnership(ctx context.Context, userID, bootcampID uuid.UUID) (*Capabilities, error) {
	caps, err := s.ResolveCapabilities(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !caps.HasAccess {
		return nil, apperrors.Forbidden(MsgFacilitatorOrAdmin)
	}
	if caps.IsAdmin {
		return caps, nil
	}

	bootcamp, err := s.bootcamps.GetByID(ctx, bootcampID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.NotFound(MsgBootcampNotFound)
		}
		logger.Error().Err(err).Str("bootcampID", bootcampID.String()).Msg("Error getting bootcamp for ownership check")
		return nil, unavailable(err)
	}
	if bootcamp.FacilitatorID != caps.Facilitator.ID {
		return nil, apperrors.Forbidden(MsgNotBootcampOwner)
	}
	return caps, nil
}

// VerifySessionOwnership loads the session and verifies ownership of its bootcamp
func (s *AuthorizationService) VerifySessionOwnership(ctx context.Context, userID, sessionID uuid.UUID) (*models.Session, error) {
	session, err := s.sessions.GetByID(ctx, sessionID)
	if err != nil {
		return nil, notFoundOr(err, MsgSessionNotFound)
	}
	if _, err := s.VerifyBootcampOwnership(ctx, userID, session.BootcampID); err != nil {
		return nil, err
	}
	return session, nil
}

// VerifyActivityOwnership resolves activity -> session -> bootcamp and verifies ownership
func (s *AuthorizationService) VerifyActivityOwnership(ctx context.Context, userID, activityID uuid.UUID) (*models.SessionActivity, error) {
	activity, err := s.activities.GetByID(ctx, activityID)
	if err != nil {
		return nil, notFoundOr(err, MsgActivityNotFound)
	}
	if _, err := s.VerifySessionOwnership(ctx, userID, activity.SessionID); err != nil {
		return nil, err
	}
	return activity, nil
}

// VerifyDiscussionOwnership loads the topic and verifies ownership of its bootcamp
func (s *AuthorizationService) VerifyDiscussionOwnership(ctx context.Context, userID, discussionID uuid.UUID) (*models.DiscussionTopic, error) {
	topic, err := s.discussions.GetByID(ctx, discussionID)
	if err != nil {
		return nil, notFoundOr(err, MsgDiscussionNotFound)
	}
	if _, err := s.VerifyBootcampOwnership(ctx, userID, topic.BootcampID); err != nil {
		return nil, err
	}
	return topic, nil
}

// VerifyStudentAccess applies the student record read rule: students see their own,
// parents their children's, facilitators and admins everyone's.
func (s *AuthorizationService) VerifyStudentAccess(ctx context.Context, userID uuid.UUID, role models.RoleType, studentID uuid.UUID) error {
	student, err := s.users.GetStudentByID(ctx, studentID)
	if err != nil {
		return notFoundOr(err, MsgStudentNotFound)
	}

	switch role {
	case models.RoleFacilitator, models.RoleAdmin:
		return nil
	case models.RoleStudent:
		if student.UserID != userID {
			return apperrors.Forbidden(MsgOwnRecordsOnly)
		}
		return nil
	case models.RoleParent:
		parent, err := s.users.GetParentByUserID(ctx, userID)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return apperrors.Forbidden(MsgChildrenRecordsOnly)
			}
			return unavailable(err)
		}
		if student.ParentID == nil || *student.ParentID != parent.ID {
			return apperrors.Forbidden(MsgChildrenRecordsOnly)
		}
		return nil
	}
	return apperrors.Forbidden(MsgOwnRecordsOnly)
}

func notFoundOr(err error, message string) error {
	if errors.Is(err, repositories.ErrNotFound) {
		return apperrors.NotFound(message)
	}
	logger.Error().Err(err).Msg("Storage error during authorization")
	return unavailable(err)
}
