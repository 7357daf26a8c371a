package repositories

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mindforge/mindforge-api/internal/app/models"
	"github.com/mindforge/mindforge-api/internal/pkg/dberrors"
)

// IAttendanceRepository defines attendance storage. One record per (session, student).
type IAttendanceRepository interface {
	Create(ctx context.Context, a *models.AttendanceRecord) error
	Get(ctx context.Context, sessionID, studentID uuid.UUID) (*models.AttendanceRecord, error)
	ListBySession(ctx context.Context, sessionID uuid.UUID) ([]*models.AttendanceRecord, error)
	Update(ctx context.Context, a *models.AttendanceRecord) error
}

// AttendanceRepository handles database operations for attendance records
type AttendanceRepository struct {
	db *pgxpool.Pool
}

// NewAttendanceRepository creates a new attendance repository
func NewAttendanceRepository(db *pgxpool.Pool) *AttendanceRepository {
	return &AttendanceRepository{db: db}
}

// Create records attendance
func (r *AttendanceRepository) Create(ctx context.Context, a *models.AttendanceRecord) error {
	a.ID = newID(a.ID)
	err := r.db.QueryRow(ctx, `
		INSERT INTO attendance_records (id, session_id, student_id, status, notes, recorded_by)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING recorded_at`,
		a.ID, a.SessionID, a.StudentID, a.Status, a.Notes, a.RecordedBy,
	).Scan(&a.RecordedAt)
	if err != nil {
		switch {
		case dberrors.IsDuplicateConstraintError(err, constraintAttendanceUnique):
			return ErrDuplicateRecord
		case dberrors.IsForeignKeyError(err):
			return ErrUnknownReference
		}
		return fmt.Errorf("failed to record attendance: %w", err)
	}
	return nil
}

// Get retrieves the attendance of one student for one session
func (r *AttendanceRepository) Get(ctx context.Context, sessionID, studentID uuid.UUID) (*models.AttendanceRecord, error) {
	var a models.AttendanceRecord
	err := r.db.QueryRow(ctx, `
		SELECT id, session_id, student_id, status, notes, recorded_by, recorded_at
		FROM attendance_records
		WHERE session_id = $1 AND student_id = $2`, sessionID, studentID,
	).Scan(&a.ID, &a.SessionID, &a.StudentID, &a.Status, &a.Notes, &a.RecordedBy, &a.RecordedAt)
	if err != nil {
		if dberrors.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error retrieving attendance: %w", err)
	}
	return &a, nil
}

// ListBySession lists every attendance record of a session
func (r *AttendanceRepository) ListBySession(ctx context.Context, sessionID uuid.UUID) ([]*models.AttendanceRecord, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, session_id, student_id, status, notes, recorded_by, recorded_at
		FROM attendance_records
		WHERE session_id = $1
		ORDER BY recorded_at, id`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}
	defer rows.Close()

	records := []*models.AttendanceRecord{}
	for rows.Next() {
		var a models.AttendanceRecord
		if err := rows.Scan(&a.ID, &a.SessionID, &a.StudentID, &a.Status, &a.Notes, &a.RecordedBy, &a.RecordedAt); err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		records = append(records, &a)
	}
	return records, rows.Err()
}

// Update rewrites status and notes and re-stamps the recorder
func (r *AttendanceRepository) Update(ctx context.Context, a *models.AttendanceRecord) error {
	err := r.db.QueryRow(ctx, `
		UPDATE attendance_records
		SET status = $1, notes = $2, recorded_by = $3, recorded_at = NOW()
		WHERE id = $4
		RETURNING recorded_at`,
		a.Status, a.Notes, a.RecordedBy, a.ID,
	).Scan(&a.RecordedAt)
	if err != nil {
		if dberrors.IsNotFound(err) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to update attendance: %w", err)
	}
	return nil
}
