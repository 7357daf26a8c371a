package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/mindforge/mindforge-api/internal/app/models"
	"github.com/mindforge/mindforge-api/internal/app/models/dto"
	"github.com/mindforge/mindforge-api/internal/app/repositories"
	"github.com/mindforge/mindforge-api/internal/pkg/apperrors"
	"github.com/mindforge/mindforge-api/internal/pkg/auth"
	"github.com/rs/zerolog"
)

// Auth messages
const (
	MsgEmailRegistered     = "Email already registered"
	MsgInvalidCredentials  = "Invalid email or password"
	MsgAdminSelfRegister   = "Admin accounts cannot be self-registered"
	MsgParentAccountAbsent = "No parent account exists for this email"
	MsgUserNotFound        = "User not found"
)

// AuthService handles authentication operations
type AuthService struct {
	userRepo   repositories.IUserRepository
	jwtService *auth.JWTService
	hasher     *auth.PasswordHasher
	logger     zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(
	userRepo repositories.IUserRepository,
	jwtService *auth.JWTService,
	hasher *auth.PasswordHasher,
	logger zerolog.Logger,
) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		jwtService: jwtService,
		hasher:     hasher,
		logger:     logger,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates the user and its role profile and signs them in
func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	if req.Role == models.RoleAdmin {
		return nil, apperrors.Validation(MsgAdminSelfRegister, apperrors.FieldError{Field: "role", Message: MsgAdminSelfRegister})
	}

	profile, err := models.NewProfile(req.Role)
	if err != nil {
		return nil, apperrors.Validation("Validation failed", apperrors.FieldError{Field: "role", Message: err.Error()})
	}

	switch p := profile.(type) {
	case *models.StudentProfile:
		p.GradeLevel = req.GradeLevel
		if req.ParentEmail != nil {
			parentID, err := s.parentProfileID(ctx, normalizeEmail(*req.ParentEmail))
			if err != nil {
				return nil, err
			}
			p.ParentID = &parentID
		}
	case *models.ParentProfile:
		p.Phone = req.Phone
	case *models.FacilitatorProfile:
		p.Bio = req.Bio
		p.Specialization = req.Specialization
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		s.logger.Error().Err(err).Msg("Error hashing password")
		return nil, err
	}

	user, err := models.NewUser(normalizeEmail(req.Email), hash, strings.TrimSpace(req.FirstName), strings.TrimSpace(req.LastName), profile)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		switch {
		case errors.Is(err, repositories.ErrEmailTaken):
			return nil, apperrors.Conflict(MsgEmailRegistered)
		case errors.Is(err, repositories.ErrUnknownReference):
			return nil, apperrors.Validation(MsgParentAccountAbsent, apperrors.FieldError{Field: "parentEmail", Message: MsgParentAccountAbsent})
		}
		return nil, storageFailure(s.logger, err, "Error creating user")
	}

	s.logger.Info().Str("userID", user.ID.String()).Str("role", string(user.RoleType)).Msg("User registered")
	return s.authResponse(user)
}

func (s *AuthService) parentProfileID(ctx context.Context, email string) (uuid.UUID, error) {
	parent, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil && !errors.Is(err, repositories.ErrNotFound) {
		return uuid.Nil, storageFailure(s.logger, err, "Error looking up parent account")
	}
	if err != nil {
		return uuid.Nil, apperrors.Validation(MsgParentAccountAbsent, apperrors.FieldError{Field: "parentEmail", Message: MsgParentAccountAbsent})
	}
	p, ok := parent.Parent()
	if !ok {
		return uuid.Nil, apperrors.Validation(MsgParentAccountAbsent, apperrors.FieldError{Field: "parentEmail", Message: MsgParentAccountAbsent})
	}
	return p.ID, nil
}

// Login verifies credentials and issues an access token
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.Unauthenticated(MsgInvalidCredentials)
		}
		return nil, storageFailure(s.logger, err, "Error getting user by email")
	}

	if !user.IsActive || !s.hasher.Check(user.PasswordHash, req.Password) {
		s.logger.Warn().Str("userID", user.ID.String()).Msg("Failed login attempt")
		return nil, apperrors.Unauthenticated(MsgInvalidCredentials)
	}

	return s.authResponse(user)
}

// Me returns the caller's user with its profile
func (s *AuthService) Me(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, lookupErr(s.logger, err, MsgUserNotFound)
	}
	return user, nil
}

func (s *AuthService) authResponse(user *models.User) (*dto.AuthResponse, error) {
	token, expiresIn, err := s.jwtService.GenerateAccessToken(user)
	if err != nil {
		s.logger.Error().Err(err).Msg("Error generating access token")
		return nil, err
	}
	return &dto.AuthResponse{
		Token: dto.TokenResponse{AccessToken: token, TokenType: "Bearer", ExpiresIn: expiresIn},
		User:  user,
	}, nil
}
