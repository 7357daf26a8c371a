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

// Attendance messages
const (
	MsgNotEnrolled        = "Student is not enrolled in this bootcamp"
	MsgAttendanceRecorded = "Attendance already recorded for this student"
	MsgAttendanceNotFound = "Attendance record not found"
)

// AttendanceService defines the interface for attendance operations
type AttendanceService interface {
	List(ctx context.Context, principal models.Principal, sessionID uuid.UUID) ([]*models.AttendanceRecord, error)
	Record(ctx context.Context, principal models.Principal, sessionID uuid.UUID, req *dto.RecordAttendanceRequest) (*models.AttendanceRecord, error)
	Update(ctx context.Context, principal models.Principal, sessionID, studentID uuid.UUID, req *dto.UpdateAttendanceRequest) (*models.AttendanceRecord, error)
}

type attendanceServiceImpl struct {
	bootcampRepo   repositories.IBootcampRepository
	userRepo       repositories.IUserRepository
	attendanceRepo repositories.IAttendanceRepository
	authz          *auth.AuthorizationService
	logger         zerolog.Logger
}

// NewAttendanceService creates a new attendance service instance
func NewAttendanceService(repos *repositories.Repositories, authz *auth.AuthorizationService, logger zerolog.Logger) AttendanceService {
	return &attendanceServiceImpl{
		bootcampRepo:   repos.BootcampRepository,
		userRepo:       repos.UserRepository,
		attendanceRepo: repos.AttendanceRepository,
		authz:          authz,
		logger:         logger,
	}
}

func (s *attendanceServiceImpl) List(ctx context.Context, principal models.Principal, sessionID uuid.UUID) ([]*models.AttendanceRecord, error) {
	if _, err := s.authz.VerifySessionOwnership(ctx, principal.UserID, sessionID); err != nil {
		return nil, err
	}
	records, err := s.attendanceRepo.ListBySession(ctx, sessionID)
	if err != nil {
		return nil, storageFailure(s.logger, err, "Error listing attendance")
	}
	return records, nil
}

func (s *attendanceServiceImpl) Record(ctx context.Context, principal models.Principal, sessionID uuid.UUID, req *dto.RecordAttendanceRequest) (*models.AttendanceRecord, error) {
	session, err := s.authz.VerifySessionOwnership(ctx, principal.UserID, sessionID)
	if err != nil {
		return nil, err
	}
	if _, err := s.userRepo.GetStudentByID(ctx, req.StudentID); err != nil {
		return nil, lookupErr(s.logger, err, auth.MsgStudentNotFound)
	}

	enrolled, err := s.bootcampRepo.IsEnrolled(ctx, req.StudentID, session.BootcampID)
	if err != nil {
		return nil, storageFailure(s.logger, err, "Error checking enrollment")
	}
	if !enrolled {
		return nil, apperrors.Conflict(MsgNotEnrolled)
	}

	_, err = s.attendanceRepo.Get(ctx, sessionID, req.StudentID)
	switch {
	case err == nil:
		return nil, apperrors.Conflict(MsgAttendanceRecorded)
	case !errors.Is(err, repositories.ErrNotFound):
		return nil, storageFailure(s.logger, err, "Error checking attendance")
	}

	record := &models.AttendanceRecord{
		SessionID:  sessionID,
		StudentID:  req.StudentID,
		Status:     req.Status,
		Notes:      req.Notes,
		RecordedBy: principal.UserID,
	}
	if err := s.attendanceRepo.Create(ctx, record); err != nil {
		switch {
		case errors.Is(err, repositories.ErrDuplicateRecord):
			return nil, apperrors.Conflict(MsgAttendanceRecorded)
		case errors.Is(err, repositories.ErrUnknownReference):
			return nil, apperrors.NotFound(auth.MsgSessionNotFound)
		}
		return nil, storageFailure(s.logger, err, "Error recording attendance")
	}
	return record, nil
}

func (s *attendanceServiceImpl) Update(ctx context.Context, principal models.Principal, sessionID, studentID uuid.UUID, req *dto.UpdateAttendanceRequest) (*models.AttendanceRecord, error) {
	if _, err := s.authz.VerifySessionOwnership(ctx, principal.UserID, sessionID); err != nil {
		return nil, err
	}
	record, err := s.attendanceRepo.Get(ctx, sessionID, studentID)
	if err != nil {
		return nil, lookupErr(s.logger, err, MsgAttendanceNotFound)
	}

	if req.Status != nil {
		record.Status = *req.Status
	}
	if req.Notes != nil {
		record.Notes = *req.Notes
	}
	record.RecordedBy = principal.UserID

	if err := s.attendanceRepo.Update(ctx, record); err != nil {
		return nil, lookupErr(s.logger, err, MsgAttendanceNotFound)
	}
	return record, nil
}
