package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/mindforge/mindforge-api/internal/app/models"
	"github.com/mindforge/mindforge-api/internal/db"
	"github.com/mindforge/mindforge-api/internal/pkg/dberrors"
)

// Common errors
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrProfileNotFound    = errors.New("profile not found")
	ErrEmailAlreadyExists = errors.New("email already in use")
)

var sb = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// userColumns selects a user joined with every profile table; at most one profile side is non-null
var userColumns = []string{
	"u.id", "u.email", "u.password_hash", "u.first_name", "u.last_name", "u.role", "u.is_active",
	"u.created_at", "u.updated_at",
	"s.id", "s.parent_id", "s.grade_level",
	"p.id", "p.phone",
	"f.id", "f.bio", "f.specialization",
	"a.id",
}

func selectUsers() squirrel.SelectBuilder {
	return sb.Select(userColumns...).
		From("users u").
		LeftJoin("students s ON s.user_id = u.id").
		LeftJoin("parents p ON p.user_id = u.id").
		LeftJoin("facilitators f ON f.user_id = u.id").
		LeftJoin("admins a ON a.user_id = u.id")
}

// Repository handles common user database operations
type Repository struct {
	db db.DBTX
}

// NewRepository creates a new Repository
func NewRepository(q db.DBTX) *Repository {
	return &Repository{db: q}
}

// WithTx returns a copy bound to tx
func (r *Repository) WithTx(tx pgx.Tx) *Repository {
	return &Repository{db: tx}
}

// CreateUser inserts the users row. The profile row is written by the role repository.
func (r *Repository) CreateUser(ctx context.Context, user *models.User) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO users (id, email, password_hash, first_name, last_name, role, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at`,
		user.ID, user.Email, user.PasswordHash, user.FirstName, user.LastName, user.RoleType, user.IsActive,
	).Scan(&user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "users_email_key") {
			return ErrEmailAlreadyExists
		}
		return fmt.Errorf("error creating user: %w", err)
	}
	return nil
}

// GetUserByEmail retrieves a user and its profile by email
func (r *Repository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.getOne(ctx, squirrel.Eq{"u.email": email})
}

// GetUserByID retrieves a user and its profile by ID
func (r *Repository) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return r.getOne(ctx, squirrel.Eq{"u.id": id})
}

func (r *Repository) getOne(ctx context.Context, where squirrel.Sqlizer) (*models.User, error) {
	query, args, err := selectUsers().Where(where).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build user query: %w", err)
	}
	user, err := scanUser(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if dberrors.IsNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("error retrieving user: %w", err)
	}
	return user, nil
}

// ListUsers returns one page of users, optionally filtered by role, newest first
func (r *Repository) ListUsers(ctx context.Context, role models.RoleType, limit, offset int) ([]*models.User, int64, error) {
	where := squirrel.And{}
	if role != "" {
		where = append(where, squirrel.Eq{"u.role": role})
	}

	countSQL, countArgs, err := sb.Select("COUNT(*)").From("users u").Where(where).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count users query: %w", err)
	}
	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}
	if total == 0 {
		return []*models.User{}, 0, nil
	}

	query, args, err := selectUsers().Where(where).
		OrderBy("u.created_at DESC", "u.id").
		Limit(uint64(limit)).Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list users query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	users := make([]*models.User, 0, limit)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

// MissingUserIDs returns the ids in ids that have no users row
func (r *Repository) MissingUserIDs(ctx context.Context, ids []uuid.UUID) ([]uuid.UUID, error) {
	rows, err := r.db.Query(ctx, `
		SELECT wanted.id
		FROM UNNEST($1::uuid[]) AS wanted(id)
		LEFT JOIN users u ON u.id = wanted.id
		WHERE u.id IS NULL`, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to check user ids: %w", err)
	}
	return pgx.CollectRows(rows, pgx.RowTo[uuid.UUID])
}

// scanUser rebuilds the role/profile union from the joined row
func scanUser(row pgx.Row) (*models.User, error) {
	var (
		u               models.User
		studentID       *uuid.UUID
		studentParentID *uuid.UUID
		gradeLevel      *int
		parentProfileID *uuid.UUID
		phone           *string
		facilitatorID   *uuid.UUID
		bio             *string
		specialization  *string
		adminID         *uuid.UUID
	)
	if err := row.Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName, &u.RoleType, &u.IsActive,
		&u.CreatedAt, &u.UpdatedAt,
		&studentID, &studentParentID, &gradeLevel,
		&parentProfileID, &phone,
		&facilitatorID, &bio, &specialization,
		&adminID,
	); err != nil {
		return nil, err
	}

	switch u.RoleType {
	case models.RoleStudent:
		if studentID != nil {
			u.Profile = &models.StudentProfile{ID: *studentID, UserID: u.ID, ParentID: studentParentID, GradeLevel: gradeLevel}
		}
	case models.RoleParent:
		if parentProfileID != nil {
			u.Profile = &models.ParentProfile{ID: *parentProfileID, UserID: u.ID, Phone: phone}
		}
	case models.RoleFacilitator:
		if facilitatorID != nil {
			u.Profile = &models.FacilitatorProfile{ID: *facilitatorID, UserID: u.ID, Bio: deref(bio), Specialization: deref(specialization)}
		}
	case models.RoleAdmin:
		if adminID != nil {
			u.Profile = &models.AdminProfile{ID: *adminID, UserID: u.ID}
		}
	}
	if u.Profile == nil {
		return nil, fmt.Errorf("user %s has role %s but no matching profile", u.ID, u.RoleType)
	}
	return &u, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
