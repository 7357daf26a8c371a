package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/mindforge/mindforge-api/internal/app/models"
	"github.com/mindforge/mindforge-api/internal/app/repositories"
	"github.com/mindforge/mindforge-api/internal/pkg/helpers"
	"github.com/rs/zerolog"
)

// UserService defines the interface for user queries
type UserService interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	List(ctx context.Context, role models.RoleType, page helpers.Pagination) ([]*models.User, int64, error)
}

type userServiceImpl struct {
	userRepo repositories.IUserRepository
	logger   zerolog.Logger
}

// NewUserService creates a new user service instance
func NewUserService(userRepo repositories.IUserRepository, logger zerolog.Logger) UserService {
	return &userServiceImpl{userRepo: userRepo, logger: logger}
}

func (s *userServiceImpl) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, lookupErr(s.logger, err, MsgUserNotFound)
	}
	return user, nil
}

func (s *userServiceImpl) List(ctx context.Context, role models.RoleType, page helpers.Pagination) ([]*models.User, int64, error) {
	users, total, err := s.userRepo.List(ctx, role, page.Limit, page.Skip)
	if err != nil {
		return nil, 0, storageFailure(s.logger, err, "Error listing users")
	}
	return users, total, nil
}
