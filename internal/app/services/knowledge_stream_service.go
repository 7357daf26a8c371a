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

// Knowledge stream messages
const (
	MsgKnowledgeStreamNotFound = "Knowledge stream not found"
	MsgKnowledgeStreamExists   = "A knowledge stream with this name already exists"
	MsgStreamAlreadyAssigned   = "Student is already assigned to this knowledge stream"
)

// KnowledgeStreamService defines the interface for knowledge stream operations
type KnowledgeStreamService interface {
	List(ctx context.Context, page helpers.Pagination) ([]*models.KnowledgeStream, int64, error)
	Get(ctx context.Context, id uuid.UUID) (*models.KnowledgeStream, error)
	Create(ctx context.Context, principal models.Principal, req *dto.CreateKnowledgeStreamRequest) (*models.KnowledgeStream, error)
	Assign(ctx context.Context, principal models.Principal, studentID uuid.UUID, req *dto.AssignKnowledgeStreamRequest) (*models.StudentKnowledgeStream, error)
	ListForStudent(ctx context.Context, principal models.Principal, studentID uuid.UUID) ([]*models.StudentKnowledgeStream, error)
}

type knowledgeStreamServiceImpl struct {
	userRepo   repositories.IUserRepository
	streamRepo repositories.IKnowledgeStreamRepository
	authz      *auth.AuthorizationService
	logger     zerolog.Logger
}

// NewKnowledgeStreamService creates a new knowledge stream service instance
func NewKnowledgeStreamService(repos *repositories.Repositories, authz *auth.AuthorizationService, logger zerolog.Logger) KnowledgeStreamService {
	return &knowledgeStreamServiceImpl{
		userRepo:   repos.UserRepository,
		streamRepo: repos.KnowledgeStreamRepository,
		authz:      authz,
		logger:     logger,
	}
}

func (s *knowledgeStreamServiceImpl) List(ctx context.Context, page helpers.Pagination) ([]*models.KnowledgeStream, int64, error) {
	streams, total, err := s.streamRepo.List(ctx, page.Limit, page.Skip)
	if err != nil {
		return nil, 0, storageFailure(s.logger, err, "Error listing knowledge streams")
	}
	return streams, total, nil
}

func (s *knowledgeStreamServiceImpl) Get(ctx context.Context, id uuid.UUID) (*models.KnowledgeStream, error) {
	stream, err := s.streamRepo.GetByID(ctx, id)
	if err != nil {
		return nil, lookupErr(s.logger, err, MsgKnowledgeStreamNotFound)
	}
	return stream, nil
}

func (s *knowledgeStreamServiceImpl) Create(ctx context.Context, principal models.Principal, req *dto.CreateKnowledgeStreamRequest) (*models.KnowledgeStream, error) {
	stream := &models.KnowledgeStream{
		Name:        req.Name,
		Description: req.Description,
		CreatedBy:   principal.UserID,
	}
	if err := s.streamRepo.Create(ctx, stream); err != nil {
		if errors.Is(err, repositories.ErrDuplicateName) {
			return nil, apperrors.Conflict(MsgKnowledgeStreamExists)
		}
		return nil, storageFailure(s.logger, err, "Error creating knowledge stream")
	}
	return stream, nil
}

func (s *knowledgeStreamServiceImpl) Assign(ctx context.Context, principal models.Principal, studentID uuid.UUID, req *dto.AssignKnowledgeStreamRequest) (*models.StudentKnowledgeStream, error) {
	if _, err := s.userRepo.GetStudentByID(ctx, studentID); err != nil {
		return nil, lookupErr(s.logger, err, auth.MsgStudentNotFound)
	}
	stream, err := s.Get(ctx, req.KnowledgeStreamID)
	if err != nil {
		return nil, err
	}

	assignment := &models.StudentKnowledgeStream{StudentID: studentID, KnowledgeStreamID: stream.ID}
	if err := s.streamRepo.Assign(ctx, assignment); err != nil {
		switch {
		case errors.Is(err, repositories.ErrAlreadyAssigned):
			return nil, apperrors.Conflict(MsgStreamAlreadyAssigned)
		case errors.Is(err, repositories.ErrUnknownReference):
			return nil, apperrors.NotFound(MsgKnowledgeStreamNotFound)
		}
		return nil, storageFailure(s.logger, err, "Error assigning knowledge stream")
	}
	assignment.KnowledgeStream = stream
	s.logger.Info().
		Str("studentID", studentID.String()).
		Str("knowledgeStreamID", stream.ID.String()).
		Str("assignedBy", principal.UserID.String()).
		Msg("Knowledge stream assigned")
	return assignment, nil
}

func (s *knowledgeStreamServiceImpl) ListForStudent(ctx context.Context, principal models.Principal, studentID uuid.UUID) ([]*models.StudentKnowledgeStream, error) {
	if err := s.authz.VerifyStudentAccess(ctx, principal.UserID, principal.Role, studentID); err != nil {
		return nil, err
	}
	assignments, err := s.streamRepo.ListForStudent(ctx, studentID)
	if err != nil {
		return nil, storageFailure(s.logger, err, "Error listing student knowledge streams")
	}
	return assignments, nil
}
