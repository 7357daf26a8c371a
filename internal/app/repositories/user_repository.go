package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mindforge/mindforge-api/internal/app/models"
	"github.com/mindforge/mindforge-api/internal/app/repositories/user"
	"github.com/mindforge/mindforge-api/internal/db"
)

// IUserRepository defines the interface for user-related database operations
type IUserRepository interface {
	// Create inserts the user and its profile atomically
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context, role models.RoleType, limit, offset int) ([]*models.User, int64, error)
	MissingIDs(ctx context.Context, ids []uuid.UUID) ([]uuid.UUID, error)

	// Profiles
	GetFacilitatorByUserID(ctx context.Context, userID uuid.UUID) (*models.FacilitatorProfile, error)
	GetFacilitatorByID(ctx context.Context, id uuid.UUID) (*models.FacilitatorProfile, error)
	GetAdminByUserID(ctx context.Context, userID uuid.UUID) (*models.AdminProfile, error)
	GetStudentByID(ctx context.Context, id uuid.UUID) (*models.StudentProfile, error)
	GetStudentByUserID(ctx context.Context, userID uuid.UUID) (*models.StudentProfile, error)
	GetParentByUserID(ctx context.Context, userID uuid.UUID) (*models.ParentProfile, error)
}

// UserRepository combines all user-related repositories
type UserRepository struct {
	pool        *pgxpool.Pool
	common      *user.Repository
	student     *user.StudentRepository
	facilitator *user.FacilitatorRepository
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{
		pool:        pool,
		common:      user.NewRepository(pool),
		student:     user.NewStudentRepository(pool),
		facilitator: user.NewFacilitatorRepository(pool),
	}
}

// Create writes the users row and the role profile in one transaction
func (r *UserRepository) Create(ctx context.Context, u *models.User) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return db.WithTransaction(ctx, r.pool, func(ctx context.Context, tx pgx.Tx) error {
		if err := r.common.WithTx(tx).CreateUser(ctx, u); err != nil {
			return translateUserErr(err)
		}
		return r.createProfile(ctx, tx, u)
	})
}

func (r *UserRepository) createProfile(ctx context.Context, tx pgx.Tx, u *models.User) error {
	switch p := u.Profile.(type) {
	case *models.StudentProfile:
		p.ID, p.UserID = newID(p.ID), u.ID
		return r.student.WithTx(tx).CreateStudent(ctx, p)
	case *models.ParentProfile:
		p.ID, p.UserID = newID(p.ID), u.ID
		return r.student.WithTx(tx).CreateParent(ctx, p)
	case *models.FacilitatorProfile:
		p.ID, p.UserID = newID(p.ID), u.ID
		return r.facilitator.WithTx(tx).CreateFacilitator(ctx, p)
	case *models.AdminProfile:
		p.ID, p.UserID = newID(p.ID), u.ID
		return r.facilitator.WithTx(tx).CreateAdmin(ctx, p)
	}
	return errors.New("user has no profile")
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	u, err := r.common.GetUserByID(ctx, id)
	return u, translateUserErr(err)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	u, err := r.common.GetUserByEmail(ctx, email)
	return u, translateUserErr(err)
}

func (r *UserRepository) List(ctx context.Context, role models.RoleType, limit, offset int) ([]*models.User, int64, error) {
	return r.common.ListUsers(ctx, role, limit, offset)
}

func (r *UserRepository) MissingIDs(ctx context.Context, ids []uuid.UUID) ([]uuid.UUID, error) {
	return r.common.MissingUserIDs(ctx, ids)
}

func (r *UserRepository) GetFacilitatorByUserID(ctx context.Context, userID uuid.UUID) (*models.FacilitatorProfile, error) {
	p, err := r.facilitator.GetFacilitatorByUserID(ctx, userID)
	return p, translateUserErr(err)
}

func (r *UserRepository) GetFacilitatorByID(ctx context.Context, id uuid.UUID) (*models.FacilitatorProfile, error) {
	p, err := r.facilitator.GetFacilitatorByID(ctx, id)
	return p, translateUserErr(err)
}

func (r *UserRepository) GetAdminByUserID(ctx context.Context, userID uuid.UUID) (*models.AdminProfile, error) {
	p, err := r.facilitator.GetAdminByUserID(ctx, userID)
	return p, translateUserErr(err)
}

func (r *UserRepository) GetStudentByID(ctx context.Context, id uuid.UUID) (*models.StudentProfile, error) {
	p, err := r.student.GetStudentByID(ctx, id)
	return p, translateUserErr(err)
}

func (r *UserRepository) GetStudentByUserID(ctx context.Context, userID uuid.UUID) (*models.StudentProfile, error) {
	p, err := r.student.GetStudentByUserID(ctx, userID)
	return p, translateUserErr(err)
}

func (r *UserRepository) GetParentByUserID(ctx context.Context, userID uuid.UUID) (*models.ParentProfile, error) {
	p, err := r.student.GetParentByUserID(ctx, userID)
	return p, translateUserErr(err)
}

func translateUserErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, user.ErrUserNotFound), errors.Is(err, user.ErrProfileNotFound):
		return ErrNotFound
	case errors.Is(err, user.ErrEmailAlreadyExists):
		return ErrEmailTaken
	}
	return err
}

func newID(id uuid.UUID) uuid.UUID {
	if id == uuid.Nil {
		return uuid.New()
	}
	return id
}
