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

// Progress messages
const (
	MsgRubricNotFound         = "Rubric not found"
	MsgAssessorRequired       = "facilitatorId is required when an admin records progress"
	MsgSessionOutsideBootcamp = "Session does not belong to the given bootcamp"
	MsgRubricLevelOutOfBounds = "level is not defined by this rubric"
)

// ProgressService defines the interface for rubric and progress operations
type ProgressService interface {
	Create(ctx context.Context, principal models.Principal, req *dto.CreateProgressRequest) (*models.ProgressRecord, error)
	ListByStudent(ctx context.Context, principal models.Principal, studentID uuid.UUID, page helpers.Pagination) ([]*models.ProgressRecord, int64, error)
	ListByBootcamp(ctx context.Context, principal models.Principal, bootcampID uuid.UUID, page helpers.Pagination) ([]*models.ProgressRecord, int64, error)
	ListRubrics(ctx context.Context) ([]*models.Rubric, error)
	GetRubric(ctx context.Context, skill string) (*models.Rubric, error)
}

type progressServiceImpl struct {
	bootcampRepo repositories.IBootcampRepository
	userRepo     repositories.IUserRepository
	rubricRepo   repositories.IRubricRepository
	progressRepo repositories.IProgressRepository
	authz        *auth.AuthorizationService
	logger       zerolog.Logger
}

// NewProgressService creates a new progress service instance
func NewProgressService(repos *repositories.Repositories, authz *auth.AuthorizationService, logger zerolog.Logger) ProgressService {
	return &progressServiceImpl{
		bootcampRepo: repos.BootcampRepository,
		userRepo:     repos.UserRepository,
		rubricRepo:   repos.RubricRepository,
		progressRepo: repos.ProgressRepository,
		authz:        authz,
		logger:       logger,
	}
}

func (s *progressServiceImpl) Create(ctx context.Context, principal models.Principal, req *dto.CreateProgressRequest) (*models.ProgressRecord, error) {
	caps, err := s.authz.ResolveCapabilities(ctx, principal.UserID)
	if err != nil {
		return nil, err
	}
	if !caps.HasAccess {
		return nil, apperrors.Forbidden(auth.MsgFacilitatorOrAdmin)
	}

	assessorID, err := s.assessor(ctx, caps, req.FacilitatorID)
	if err != nil {
		return nil, err
	}
	if _, err := s.userRepo.GetStudentByID(ctx, req.StudentID); err != nil {
		return nil, lookupErr(s.logger, err, auth.MsgStudentNotFound)
	}

	rubric, err := s.GetRubric(ctx, req.Skill)
	if err != nil {
		return nil, err
	}
	if !rubric.HasLevel(req.Level) {
		return nil, apperrors.Validation("Validation failed", apperrors.FieldError{Field: "level", Message: MsgRubricLevelOutOfBounds})
	}

	bootcampID, err := s.scope(ctx, principal, req.BootcampID, req.SessionID)
	if err != nil {
		return nil, err
	}

	record := &models.ProgressRecord{
		StudentID:     req.StudentID,
		FacilitatorID: assessorID,
		BootcampID:    bootcampID,
		SessionID:     req.SessionID,
		Skill:         rubric.Skill,
		Level:         req.Level,
		Notes:         req.Notes,
	}
	if req.AssessedAt != nil {
		record.AssessedAt = *req.AssessedAt
	}
	if err := s.progressRepo.Create(ctx, record); err != nil {
		if errors.Is(err, repositories.ErrUnknownReference) {
			return nil, apperrors.NotFound(auth.MsgStudentNotFound)
		}
		return nil, storageFailure(s.logger, err, "Error recording progress")
	}
	s.logger.Info().
		Str("studentID", record.StudentID.String()).
		Str("skill", record.Skill).
		Int("level", record.Level).
		Msg("Progress recorded")
	return record, nil
}

// assessor is the caller's facilitator profile; admins name one explicitly
func (s *progressServiceImpl) assessor(ctx context.Context, caps *auth.Capabilities, requested *uuid.UUID) (uuid.UUID, error) {
	if caps.Facilitator != nil {
		return caps.Facilitator.ID, nil
	}
	if requested == nil {
		return uuid.Nil, apperrors.Validation(MsgAssessorRequired, apperrors.FieldError{Field: "facilitatorId", Message: MsgAssessorRequired})
	}
	facilitator, err := s.userRepo.GetFacilitatorByID(ctx, *requested)
	if err != nil {
		return uuid.Nil, lookupErr(s.logger, err, MsgFacilitatorNotFound)
	}
	return facilitator.ID, nil
}

// scope verifies ownership of the optional bootcamp/session and returns the effective bootcamp id
func (s *progressServiceImpl) scope(ctx context.Context, principal models.Principal, bootcampID, sessionID *uuid.UUID) (*uuid.UUID, error) {
	if sessionID != nil {
		session, err := s.authz.VerifySessionOwnership(ctx, principal.UserID, *sessionID)
		if err != nil {
			return nil, err
		}
		if bootcampID != nil && *bootcampID != session.BootcampID {
			return nil, apperrors.Validation(MsgSessionOutsideBootcamp, apperrors.FieldError{Field: "sessionId", Message: MsgSessionOutsideBootcamp})
		}
		return &session.BootcampID, nil
	}
	if bootcampID == nil {
		return nil, nil
	}
	if err := requireBootcamp(ctx, s.bootcampRepo, s.logger, *bootcampID); err != nil {
		return nil, err
	}
	if _, err := s.authz.VerifyBootcampOwnership(ctx, principal.UserID, *bootcampID); err != nil {
		return nil, err
	}
	return bootcampID, nil
}

func (s *progressServiceImpl) ListByStudent(ctx context.Context, principal models.Principal, studentID uuid.UUID, page helpers.Pagination) ([]*models.ProgressRecord, int64, error) {
	if err := s.authz.VerifyStudentAccess(ctx, principal.UserID, principal.Role, studentID); err != nil {
		return nil, 0, err
	}
	records, total, err := s.progressRepo.ListByStudent(ctx, studentID, page.Limit, page.Skip)
	if err != nil {
		return nil, 0, storageFailure(s.logger, err, "Error listing student progress")
	}
	return records, total, nil
}

func (s *progressServiceImpl) ListByBootcamp(ctx context.Context, principal models.Principal, bootcampID uuid.UUID, page helpers.Pagination) ([]*models.ProgressRecord, int64, error) {
	if err := requireBootcamp(ctx, s.bootcampRepo, s.logger, bootcampID); err != nil {
		return nil, 0, err
	}
	if _, err := s.authz.VerifyBootcampOwnership(ctx, principal.UserID, bootcampID); err != nil {
		return nil, 0, err
	}
	records, total, err := s.progressRepo.ListByBootcamp(ctx, bootcampID, page.Limit, page.Skip)
	if err != nil {
		return nil, 0, storageFailure(s.logger, err, "Error listing bootcamp progress")
	}
	return records, total, nil
}

func (s *progressServiceImpl) ListRubrics(ctx context.Context) ([]*models.Rubric, error) {
	rubrics, err := s.rubricRepo.List(ctx)
	if err != nil {
		return nil, storageFailure(s.logger, err, "Error listing rubrics")
	}
	return rubrics, nil
}

func (s *progressServiceImpl) GetRubric(ctx context.Context, skill string) (*models.Rubric, error) {
	rubric, err := s.rubricRepo.GetBySkill(ctx, skill)
	if err != nil {
		return nil, lookupErr(s.logger, err, MsgRubricNotFound)
	}
	return rubric, nil
}
