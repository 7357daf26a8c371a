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
	"github.com/mindforge/mindforge-api/internal/pkg/observability"
	"github.com/rs/zerolog"
)

// Bootcamp messages
const (
	MsgAlreadyEnrolled      = "Already enrolled in this bootcamp"
	MsgBootcampNotAvailable = "Bootcamp is not available for enrollment"
	MsgBootcampFull         = "Bootcamp is full"
	MsgCapacityTooLow       = "Capacity cannot be lower than the current enrollment count"
	MsgFacilitatorRequired  = "facilitatorId is required when an admin creates a bootcamp"
	MsgFacilitatorNotFound  = "Facilitator not found"
	MsgStudentsOnly         = "Only students can enroll in bootcamps"
)

// BootcampService defines the interface for bootcamp and enrollment operations
type BootcampService interface {
	List(ctx context.Context, filter models.BootcampFilter, page helpers.Pagination) ([]*models.Bootcamp, int64, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Bootcamp, error)
	Create(ctx context.Context, principal models.Principal, req *dto.CreateBootcampRequest) (*models.Bootcamp, error)
	Update(ctx context.Context, principal models.Principal, id uuid.UUID, req *dto.UpdateBootcampRequest) (*models.Bootcamp, error)
	Delete(ctx context.Context, principal models.Principal, id uuid.UUID) error
	Enroll(ctx context.Context, principal models.Principal, bootcampID uuid.UUID) (*dto.EnrollmentResponse, error)
	ListEnrollments(ctx context.Context, principal models.Principal, bootcampID uuid.UUID) ([]*models.Enrollment, error)
}

type bootcampServiceImpl struct {
	bootcampRepo repositories.IBootcampRepository
	userRepo     repositories.IUserRepository
	authz        *auth.AuthorizationService
	logger       zerolog.Logger
}

// NewBootcampService creates a new bootcamp service instance
func NewBootcampService(repos *repositories.Repositories, authz *auth.AuthorizationService, logger zerolog.Logger) BootcampService {
	return &bootcampServiceImpl{
		bootcampRepo: repos.BootcampRepository,
		userRepo:     repos.UserRepository,
		authz:        authz,
		logger:       logger,
	}
}

func (s *bootcampServiceImpl) List(ctx context.Context, filter models.BootcampFilter, page helpers.Pagination) ([]*models.Bootcamp, int64, error) {
	bootcamps, total, err := s.bootcampRepo.List(ctx, filter, page.Limit, page.Skip)
	if err != nil {
		return nil, 0, storageFailure(s.logger, err, "Error listing bootcamps")
	}
	return bootcamps, total, nil
}

func (s *bootcampServiceImpl) Get(ctx context.Context, id uuid.UUID) (*models.Bootcamp, error) {
	bootcamp, err := s.bootcampRepo.GetByID(ctx, id)
	if err != nil {
		return nil, lookupErr(s.logger, err, auth.MsgBootcampNotFound)
	}
	return bootcamp, nil
}

func (s *bootcampServiceImpl) Create(ctx context.Context, principal models.Principal, req *dto.CreateBootcampRequest) (*models.Bootcamp, error) {
	caps, err := s.authz.ResolveCapabilities(ctx, principal.UserID)
	if err != nil {
		return nil, err
	}
	if !caps.HasAccess {
		return nil, apperrors.Forbidden(auth.MsgFacilitatorOrAdmin)
	}

	var facilitatorID uuid.UUID
	switch {
	case caps.Facilitator != nil:
		facilitatorID = caps.Facilitator.ID
	case req.FacilitatorID == nil:
		return nil, apperrors.Validation(MsgFacilitatorRequired, apperrors.FieldError{Field: "facilitatorId", Message: MsgFacilitatorRequired})
	default:
		facilitator, err := s.userRepo.GetFacilitatorByID(ctx, *req.FacilitatorID)
		if err != nil {
			return nil, lookupErr(s.logger, err, MsgFacilitatorNotFound)
		}
		facilitatorID = facilitator.ID
	}

	if err := validDateRange(req.StartDate, req.EndDate); err != nil {
		return nil, err
	}

	bootcamp := &models.Bootcamp{
		FacilitatorID: facilitatorID,
		Title:         req.Title,
		Description:   req.Description,
		Subject:       req.Subject,
		Format:        req.Format,
		Status:        models.BootcampDraft,
		Capacity:      req.Capacity,
		StartDate:     req.StartDate,
		EndDate:       req.EndDate,
	}
	if req.Status != nil {
		bootcamp.Status = *req.Status
	}

	if err := s.bootcampRepo.Create(ctx, bootcamp); err != nil {
		if errors.Is(err, repositories.ErrUnknownReference) {
			return nil, apperrors.NotFound(MsgFacilitatorNotFound)
		}
		return nil, storageFailure(s.logger, err, "Error creating bootcamp")
	}
	s.logger.Info().Str("bootcampID", bootcamp.ID.String()).Str("facilitatorID", facilitatorID.String()).Msg("Bootcamp created")
	return bootcamp, nil
}

func (s *bootcampServiceImpl) Update(ctx context.Context, principal models.Principal, id uuid.UUID, req *dto.UpdateBootcampRequest) (*models.Bootcamp, error) {
	bootcamp, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := s.authz.VerifyBootcampOwnership(ctx, principal.UserID, id); err != nil {
		return nil, err
	}

	if req.Title != nil {
		bootcamp.Title = *req.Title
	}
	if req.Description != nil {
		bootcamp.Description = *req.Description
	}
	if req.Subject != nil {
		bootcamp.Subject = *req.Subject
	}
	if req.Format != nil {
		bootcamp.Format = *req.Format
	}
	if req.Status != nil {
		bootcamp.Status = *req.Status
	}
	if req.Capacity != nil {
		if *req.Capacity < bootcamp.EnrollmentCount {
			return nil, apperrors.Conflict(MsgCapacityTooLow)
		}
		bootcamp.Capacity = *req.Capacity
	}
	if req.StartDate != nil {
		bootcamp.StartDate = req.StartDate
	}
	if req.EndDate != nil {
		bootcamp.EndDate = req.EndDate
	}
	if err := validDateRange(bootcamp.StartDate, bootcamp.EndDate); err != nil {
		return nil, err
	}

	if err := s.bootcampRepo.Update(ctx, bootcamp); err != nil {
		switch {
		case errors.Is(err, repositories.ErrNotFound):
			return nil, apperrors.NotFound(auth.MsgBootcampNotFound)
		case errors.Is(err, repositories.ErrCapacityTooLow):
			return nil, apperrors.Conflict(MsgCapacityTooLow)
		}
		return nil, storageFailure(s.logger, err, "Error updating bootcamp")
	}
	return bootcamp, nil
}

func (s *bootcampServiceImpl) Delete(ctx context.Context, principal models.Principal, id uuid.UUID) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if _, err := s.authz.VerifyBootcampOwnership(ctx, principal.UserID, id); err != nil {
		return err
	}
	if err := s.bootcampRepo.Delete(ctx, id); err != nil {
		return lookupErr(s.logger, err, auth.MsgBootcampNotFound)
	}
	s.logger.Info().Str("bootcampID", id.String()).Msg("Bootcamp deleted")
	return nil
}

// Enroll pre-checks for friendly messages; the repository closes the race on the last seat
func (s *bootcampServiceImpl) Enroll(ctx context.Context, principal models.Principal, bootcampID uuid.UUID) (*dto.EnrollmentResponse, error) {
	student, err := s.userRepo.GetStudentByUserID(ctx, principal.UserID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.Forbidden(MsgStudentsOnly)
		}
		return nil, storageFailure(s.logger, err, "Error getting student profile")
	}

	bootcamp, err := s.Get(ctx, bootcampID)
	if err != nil {
		return nil, err
	}
	enrolled, err := s.bootcampRepo.IsEnrolled(ctx, student.ID, bootcampID)
	if err != nil {
		return nil, storageFailure(s.logger, err, "Error checking enrollment")
	}
	switch {
	case enrolled:
		observability.ObserveEnrollment(observability.EnrollmentDuplicate)
		return nil, apperrors.Conflict(MsgAlreadyEnrolled)
	case !bootcamp.IsOpen():
		observability.ObserveEnrollment(observability.EnrollmentUnavailable)
		return nil, apperrors.Conflict(MsgBootcampNotAvailable)
	case bootcamp.IsFull():
		observability.ObserveEnrollment(observability.EnrollmentFull)
		return nil, apperrors.Conflict(MsgBootcampFull)
	}

	enrollment := &models.Enrollment{StudentID: student.ID, BootcampID: bootcampID, Status: models.EnrollmentActive}
	updated, err := s.bootcampRepo.Enroll(ctx, enrollment)
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrAlreadyEnrolled):
			observability.ObserveEnrollment(observability.EnrollmentDuplicate)
			return nil, apperrors.Conflict(MsgAlreadyEnrolled)
		case errors.Is(err, repositories.ErrBootcampNotOpen):
			observability.ObserveEnrollment(observability.EnrollmentUnavailable)
			return nil, apperrors.Conflict(MsgBootcampNotAvailable)
		case errors.Is(err, repositories.ErrBootcampFull):
			observability.ObserveEnrollment(observability.EnrollmentFull)
			return nil, apperrors.Conflict(MsgBootcampFull)
		case errors.Is(err, repositories.ErrNotFound):
			return nil, apperrors.NotFound(auth.MsgBootcampNotFound)
		}
		return nil, storageFailure(s.logger, err, "Error enrolling student")
	}

	observability.ObserveEnrollment(observability.EnrollmentSucceeded)
	s.logger.Info().
		Str("studentID", student.ID.String()).
		Str("bootcampID", bootcampID.String()).
		Int("enrollmentCount", updated.EnrollmentCount).
		Msg("Student enrolled")
	return &dto.EnrollmentResponse{Enrollment: enrollment, Bootcamp: updated}, nil
}

func (s *bootcampServiceImpl) ListEnrollments(ctx context.Context, principal models.Principal, bootcampID uuid.UUID) ([]*models.Enrollment, error) {
	if _, err := s.Get(ctx, bootcampID); err != nil {
		return nil, err
	}
	if _, err := s.authz.VerifyBootcampOwnership(ctx, principal.UserID, bootcampID); err != nil {
		return nil, err
	}
	enrollments, err := s.bootcampRepo.ListEnrollments(ctx, bootcampID)
	if err != nil {
		return nil, storageFailure(s.logger, err, "Error listing enrollments")
	}
	return enrollments, nil
}
