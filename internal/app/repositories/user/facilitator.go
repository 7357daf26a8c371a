package user

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/mindforge/mindforge-api/internal/app/models"
	"github.com/mindforge/mindforge-api/internal/db"
	"github.com/mindforge/mindforge-api/internal/pkg/dberrors"
)

// FacilitatorRepository handles facilitator and admin profile rows
type FacilitatorRepository struct {
	db db.DBTX
}

// NewFacilitatorRepository creates a new FacilitatorRepository
func NewFacilitatorRepository(q db.DBTX) *FacilitatorRepository {
	return &FacilitatorRepository{db: q}
}

// WithTx returns a copy bound to tx
func (r *FacilitatorRepository) WithTx(tx pgx.Tx) *FacilitatorRepository {
	return &FacilitatorRepository{db: tx}
}

// CreateFacilitator inserts a facilitator profile
func (r *FacilitatorRepository) CreateFacilitator(ctx context.Context, f *models.FacilitatorProfile) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO facilitators (id, user_id, bio, specialization)
		VALUES ($1, $2, $3, $4)`,
		f.ID, f.UserID, f.Bio, f.Specialization)
	if err != nil {
		return fmt.Errorf("error creating facilitator profile: %w", err)
	}
	return nil
}

// CreateAdmin inserts an admin profile
func (r *FacilitatorRepository) CreateAdmin(ctx context.Context, a *models.AdminProfile) error {
	_, err := r.db.Exec(ctx, `INSERT INTO admins (id, user_id) VALUES ($1, $2)`, a.ID, a.UserID)
	if err != nil {
		return fmt.Errorf("error creating admin profile: %w", err)
	}
	return nil
}

// GetFacilitatorByUserID retrieves the facilitator profile of a user
func (r *FacilitatorRepository) GetFacilitatorByUserID(ctx context.Context, userID uuid.UUID) (*models.FacilitatorProfile, error) {
	return r.getFacilitator(ctx, "user_id", userID)
}

// GetFacilitatorByID retrieves a facilitator profile by its own id
func (r *FacilitatorRepository) GetFacilitatorByID(ctx context.Context, id uuid.UUID) (*models.FacilitatorProfile, error) {
	return r.getFacilitator(ctx, "id", id)
}

func (r *FacilitatorRepository) getFacilitator(ctx context.Context, column string, value uuid.UUID) (*models.FacilitatorProfile, error) {
	var f models.FacilitatorProfile
	err := r.db.QueryRow(ctx,
		"SELECT id, user_id, bio, specialization FROM facilitators WHERE "+column+" = $1", value,
	).Scan(&f.ID, &f.UserID, &f.Bio, &f.Specialization)
	if err != nil {
		if dberrors.IsNotFound(err) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("error retrieving facilitator profile: %w", err)
	}
	return &f, nil
}

// GetAdminByUserID retrieves the admin profile of a user
func (r *FacilitatorRepository) GetAdminByUserID(ctx context.Context, userID uuid.UUID) (*models.AdminProfile, error) {
	var a models.AdminProfile
	err := r.db.QueryRow(ctx, "SELECT id, user_id FROM admins WHERE user_id = $1", userID).Scan(&a.ID, &a.UserID)
	if err != nil {
		if dberrors.IsNotFound(err) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("error retrieving admin profile: %w", err)
	}
	return &a, nil
}
