package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mindforge/mindforge-api/internal/app/models"
	"github.com/mindforge/mindforge-api/internal/pkg/dberrors"
)

// IActivityRepository defines session activity storage. Start times are unique per session.
type IActivityRepository interface {
	Create(ctx context.Context, a *models.SessionActivity) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.SessionActivity, error)
	GetByTime(ctx context.Context, sessionID uuid.UUID, at string) (*models.SessionActivity, error)
	ListBySession(ctx context.Context, sessionID uuid.UUID) ([]*models.SessionActivity, error)
	Update(ctx context.Context, a *models.SessionActivity) error
	Delete(ctx context.Context, id uuid.UUID) error
}

var activityColumns = []string{
	"id", "session_id", "time", "title", "description", "duration_minutes", "created_at", "updated_at",
}

// ActivityRepository handles database operations for session activities
type ActivityRepository struct {
	db *pgxpool.Pool
}

// NewActivityRepository creates a new activity repository
func NewActivityRepository(db *pgxpool.Pool) *ActivityRepository {
	return &ActivityRepository{db: db}
}

func scanActivity(row pgx.Row) (*models.SessionActivity, error) {
	var a models.SessionActivity
	if err := row.Scan(&a.ID, &a.SessionID, &a.Time, &a.Title, &a.Description,
		&a.DurationMinutes, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return nil, err
	}
	return &a, nil
}

// Create creates a new activity
func (r *ActivityRepository) Create(ctx context.Context, a *models.SessionActivity) error {
	a.ID = newID(a.ID)
	query, args, err := sb.Insert("session_activities").
		Columns("id", "session_id", "time", "title", "description", "duration_minutes").
		Values(a.ID, a.SessionID, a.Time, a.Title, a.Description, a.DurationMinutes).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build insert activity query: %w", err)
	}
	if err := r.db.QueryRow(ctx, query, args...).Scan(&a.CreatedAt, &a.UpdatedAt); err != nil {
		return activityWriteErr(err)
	}
	return nil
}

// GetByID retrieves an activity by ID
func (r *ActivityRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.SessionActivity, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id})
}

// GetByTime retrieves the activity starting at "HH:MM" in a session
func (r *ActivityRepository) GetByTime(ctx context.Context, sessionID uuid.UUID, at string) (*models.SessionActivity, error) {
	return r.getOne(ctx, squirrel.Eq{"session_id": sessionID, "time": at})
}

func (r *ActivityRepository) getOne(ctx context.Context, where squirrel.Sqlizer) (*models.SessionActivity, error) {
	query, args, err := sb.Select(activityColumns...).From("session_activities").Where(where).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get activity query: %w", err)
	}
	a, err := scanActivity(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if dberrors.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error retrieving activity: %w", err)
	}
	return a, nil
}

// ListBySession lists the activities of a session in time order
func (r *ActivityRepository) ListBySession(ctx context.Context, sessionID uuid.UUID) ([]*models.SessionActivity, error) {
	query, args, err := sb.Select(activityColumns...).From("session_activities").
		Where(squirrel.Eq{"session_id": sessionID}).
		OrderBy("time").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list activities query: %w", err)
	}
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list activities: %w", err)
	}
	defer rows.Close()

	activities := []*models.SessionActivity{}
	for rows.Next() {
		a, err := scanActivity(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan activity: %w", err)
		}
		activities = append(activities, a)
	}
	return activities, rows.Err()
}

// Update updates an existing activity
func (r *ActivityRepository) Update(ctx context.Context, a *models.SessionActivity) error {
	query, args, err := sb.Update("session_activities").
		SetMap(map[string]interface{}{
			"time":             a.Time,
			"title":            a.Title,
			"description":      a.Description,
			"duration_minutes": a.DurationMinutes,
			"updated_at":       squirrel.Expr("NOW()"),
		}).
		Where(squirrel.Eq{"id": a.ID}).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update activity query: %w", err)
	}
	if err := r.db.QueryRow(ctx, query, args...).Scan(&a.UpdatedAt); err != nil {
		if dberrors.IsNotFound(err) {
			return ErrNotFound
		}
		return activityWriteErr(err)
	}
	return nil
}

// Delete removes an activity
func (r *ActivityRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(ctx, r.db, "session_activities", id)
}

func activityWriteErr(err error) error {
	switch {
	case dberrors.IsDuplicateConstraintError(err, constraintActivityTime):
		return ErrDuplicateTime
	case dberrors.IsForeignKeyError(err):
		return ErrUnknownReference
	}
	return fmt.Errorf("failed to write activity: %w", err)
}
