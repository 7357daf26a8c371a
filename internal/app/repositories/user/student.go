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

// StudentRepository handles student and parent profile rows
type StudentRepository struct {
	db db.DBTX
}

// NewStudentRepository creates a new StudentRepository
func NewStudentRepository(q db.DBTX) *StudentRepository {
	return &StudentRepository{db: q}
}

// WithTx returns a copy bound to tx
func (r *StudentRepository) WithTx(tx pgx.Tx) *StudentRepository {
	return &StudentRepository{db: tx}
}

// CreateStudent inserts a student profile
func (r *StudentRepository) CreateStudent(ctx context.Context, student *models.StudentProfile) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO students (id, user_id, parent_id, grade_level)
		VALUES ($1, $2, $3, $4)`,
		student.ID, student.UserID, student.ParentID, student.GradeLevel)
	if err != nil {
		return fmt.Errorf("error creating student profile: %w", err)
	}
	return nil
}

// CreateParent inserts a parent profile
func (r *StudentRepository) CreateParent(ctx context.Context, parent *models.ParentProfile) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO parents (id, user_id, phone)
		VALUES ($1, $2, $3)`,
		parent.ID, parent.UserID, parent.Phone)
	if err != nil {
		return fmt.Errorf("error creating parent profile: %w", err)
	}
	return nil
}

// GetStudentByID retrieves a student profile by its own id
func (r *StudentRepository) GetStudentByID(ctx context.Context, id uuid.UUID) (*models.StudentProfile, error) {
	return r.getStudent(ctx, "id", id)
}

// GetStudentByUserID retrieves the student profile of a user
func (r *StudentRepository) GetStudentByUserID(ctx context.Context, userID uuid.UUID) (*models.StudentProfile, error) {
	return r.getStudent(ctx, "user_id", userID)
}

func (r *StudentRepository) getStudent(ctx context.Context, column string, value uuid.UUID) (*models.StudentProfile, error) {
	var s models.StudentProfile
	err := r.db.QueryRow(ctx,
		"SELECT id, user_id, parent_id, grade_level FROM students WHERE "+column+" = $1", value,
	).Scan(&s.ID, &s.UserID, &s.ParentID, &s.GradeLevel)
	if err != nil {
		if dberrors.IsNotFound(err) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("error retrieving student profile: %w", err)
	}
	return &s, nil
}

// GetParentByUserID retrieves the parent profile of a user
func (r *StudentRepository) GetParentByUserID(ctx context.Context, userID uuid.UUID) (*models.ParentProfile, error) {
	var p models.ParentProfile
	err := r.db.QueryRow(ctx,
		"SELECT id, user_id, phone FROM parents WHERE user_id = $1", userID,
	).Scan(&p.ID, &p.UserID, &p.Phone)
	if err != nil {
		if dberrors.IsNotFound(err) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("error retrieving parent profile: %w", err)
	}
	return &p, nil
}
