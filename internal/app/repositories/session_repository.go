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

// ISessionRepository defines session storage. Day numbers are unique per bootcamp.
type ISessionRepository interface {
	Create(ctx context.Context, s *models.Session) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Session, error)
	GetByDay(ctx context.Context, bootcampID uuid.UUID, day int) (*models.Session, error)
	ListByBootcamp(ctx context.Context, bootcampID uuid.UUID) ([]*models.Session, error)
	Update(ctx context.Context, s *models.Session) error
	Delete(ctx context.Context, id uuid.UUID) error
}

var sessionColumns = []string{
	"id", "bootcamp_id", "day", "title", "description", "start_time", "end_time", "location", "created_at", "updated_at",
}

// SessionRepository handles database operations for sessions
type SessionRepository struct {
	db *pgxpool.Pool
}

// NewSessionRepository creates a new session repository
func NewSessionRepository(db *pgxpool.Pool) *SessionRepository {
	return &SessionRepository{db: db}
}

func scanSession(row pgx.Row) (*models.Session, error) {
	var s models.Session
	if err := row.Scan(&s.ID, &s.BootcampID, &s.Day, &s.Title, &s.Description,
		&s.StartTime, &s.EndTime, &s.Location, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, err
	}
	return &s, nil
}

// Create creates a new session
func (r *SessionRepository) Create(ctx context.Context, s *models.Session) error {
	s.ID = newID(s.ID)
	query, args, err := sb.Insert("sessions").
		Columns("id", "bootcamp_id", "day", "title", "description", "start_time", "end_time", "location").
		Values(s.ID, s.BootcampID, s.Day, s.Title, s.Description, s.StartTime, s.EndTime, s.Location).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build insert session query: %w", err)
	}
	if err := r.db.QueryRow(ctx, query, args...).Scan(&s.CreatedAt, &s.UpdatedAt); err != nil {
		return sessionWriteErr(err)
	}
	return nil
}

// GetByID retrieves a session by ID
func (r *SessionRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Session, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id})
}

// GetByDay retrieves the session scheduled on day of a bootcamp
func (r *SessionRepository) GetByDay(ctx context.Context, bootcampID uuid.UUID, day int) (*models.Session, error) {
	return r.getOne(ctx, squirrel.Eq{"bootcamp_id": bootcampID, "day": day})
}

func (r *SessionRepository) getOne(ctx context.Context, where squirrel.Sqlizer) (*models.Session, error) {
	query, args, err := sb.Select(sessionColumns...).From("sessions").Where(where).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get session query: %w", err)
	}
	s, err := scanSession(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if dberrors.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error retrieving session: %w", err)
	}
	return s, nil
}

// ListByBootcamp lists the sessions of a bootcamp ordered by day
func (r *SessionRepository) ListByBootcamp(ctx context.Context, bootcampID uuid.UUID) ([]*models.Session, error) {
	query, args, err := sb.Select(sessionColumns...).From("sessions").
		Where(squirrel.Eq{"bootcamp_id": bootcampID}).
		OrderBy("day").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list sessions query: %w", err)
	}
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer rows.Close()

	sessions := []*models.Session{}
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}

// Update updates an existing session
func (r *SessionRepository) Update(ctx context.Context, s *models.Session) error {
	query, args, err := sb.Update("sessions").
		SetMap(map[string]interface{}{
			"day":         s.Day,
			"title":       s.Title,
			"description": s.Description,
			"start_time":  s.StartTime,
			"end_time":    s.EndTime,
			"location":    s.Location,
			"updated_at":  squirrel.Expr("NOW()"),
		}).
		Where(squirrel.Eq{"id": s.ID}).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update session query: %w", err)
	}
	if err := r.db.QueryRow(ctx, query, args...).Scan(&s.UpdatedAt); err != nil {
		if dberrors.IsNotFound(err) {
			return ErrNotFound
		}
		return sessionWriteErr(err)
	}
	return nil
}

// Delete removes a session with its activities and attendance
func (r *SessionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(ctx, r.db, "sessions", id)
}

func sessionWriteErr(err error) error {
	switch {
	case dberrors.IsDuplicateConstraintError(err, constraintSessionDay):
		return ErrDuplicateDay
	case dberrors.IsForeignKeyError(err):
		return ErrUnknownReference
	}
	return fmt.Errorf("failed to write session: %w", err)
}
