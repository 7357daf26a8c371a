package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mindforge/mindforge-api/internal/app/models"
	"github.com/mindforge/mindforge-api/internal/db"
	"github.com/mindforge/mindforge-api/internal/pkg/dberrors"
)

// IBootcampRepository defines bootcamp and enrollment storage
type IBootcampRepository interface {
	Create(ctx context.Context, b *models.Bootcamp) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Bootcamp, error)
	List(ctx context.Context, filter models.BootcampFilter, limit, offset int) ([]*models.Bootcamp, int64, error)
	// Update persists the mutable fields. ErrCapacityTooLow when capacity would drop below enrollmentCount.
	Update(ctx context.Context, b *models.Bootcamp) error
	Delete(ctx context.Context, id uuid.UUID) error

	// Enroll inserts the enrollment and takes one seat atomically, returning the updated bootcamp.
	// Errors: ErrNotFound, ErrAlreadyEnrolled, ErrBootcampNotOpen, ErrBootcampFull.
	Enroll(ctx context.Context, e *models.Enrollment) (*models.Bootcamp, error)
	ListEnrollments(ctx context.Context, bootcampID uuid.UUID) ([]*models.Enrollment, error)
	IsEnrolled(ctx context.Context, studentID, bootcampID uuid.UUID) (bool, error)
}

var bootcampColumns = []string{
	"id", "facilitator_id", "title", "description", "subject", "format", "status",
	"capacity", "enrollment_count", "start_date", "end_date", "created_at", "updated_at",
}

// BootcampRepository handles database operations for bootcamps
type BootcampRepository struct {
	db *pgxpool.Pool
}

// NewBootcampRepository creates a new bootcamp repository
func NewBootcampRepository(db *pgxpool.Pool) *BootcampRepository {
	return &BootcampRepository{db: db}
}

func scanBootcamp(row pgx.Row) (*models.Bootcamp, error) {
	var b models.Bootcamp
	err := row.Scan(
		&b.ID, &b.FacilitatorID, &b.Title, &b.Description, &b.Subject, &b.Format, &b.Status,
		&b.Capacity, &b.EnrollmentCount, &b.StartDate, &b.EndDate, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// Create creates a new bootcamp
func (r *BootcampRepository) Create(ctx context.Context, b *models.Bootcamp) error {
	b.ID = newID(b.ID)
	query, args, err := sb.Insert("bootcamps").
		Columns("id", "facilitator_id", "title", "description", "subject", "format", "status", "capacity", "start_date", "end_date").
		Values(b.ID, b.FacilitatorID, b.Title, b.Description, b.Subject, b.Format, b.Status, b.Capacity, b.StartDate, b.EndDate).
		Suffix("RETURNING enrollment_count, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build insert bootcamp query: %w", err)
	}
	if err := r.db.QueryRow(ctx, query, args...).Scan(&b.EnrollmentCount, &b.CreatedAt, &b.UpdatedAt); err != nil {
		if dberrors.IsForeignKeyError(err) {
			return ErrUnknownReference
		}
		return fmt.Errorf("failed to create bootcamp: %w", err)
	}
	return nil
}

// GetByID retrieves a bootcamp by ID
func (r *BootcampRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Bootcamp, error) {
	return getBootcamp(ctx, r.db, id)
}

func getBootcamp(ctx context.Context, q db.DBTX, id uuid.UUID) (*models.Bootcamp, error) {
	query, args, err := sb.Select(bootcampColumns...).From("bootcamps").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get bootcamp query: %w", err)
	}
	b, err := scanBootcamp(q.QueryRow(ctx, query, args...))
	if err != nil {
		if dberrors.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error retrieving bootcamp: %w", err)
	}
	return b, nil
}

// List returns one page of bootcamps matching filter, newest first
func (r *BootcampRepository) List(ctx context.Context, filter models.BootcampFilter, limit, offset int) ([]*models.Bootcamp, int64, error) {
	where := squirrel.And{}
	if filter.Status != "" {
		where = append(where, squirrel.Eq{"status": filter.Status})
	}
	if filter.FacilitatorID != nil {
		where = append(where, squirrel.Eq{"facilitator_id": *filter.FacilitatorID})
	}
	if filter.Subject != "" {
		where = append(where, squirrel.ILike{"subject": "%" + strings.TrimSpace(filter.Subject) + "%"})
	}
	if filter.Format != "" {
		where = append(where, squirrel.Eq{"format": filter.Format})
	}

	countSQL, countArgs, err := sb.Select("COUNT(*)").From("bootcamps").Where(where).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count bootcamps query: %w", err)
	}
	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count bootcamps: %w", err)
	}
	if total == 0 {
		return []*models.Bootcamp{}, 0, nil
	}

	query, args, err := sb.Select(bootcampColumns...).From("bootcamps").Where(where).
		OrderBy("created_at DESC", "id").
		Limit(uint64(limit)).Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list bootcamps query: %w", err)
	}
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list bootcamps: %w", err)
	}
	defer rows.Close()

	bootcamps := make([]*models.Bootcamp, 0, limit)
	for rows.Next() {
		b, err := scanBootcamp(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan bootcamp: %w", err)
		}
		bootcamps = append(bootcamps, b)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return bootcamps, total, nil
}

// Update updates an existing bootcamp
func (r *BootcampRepository) Update(ctx context.Context, b *models.Bootcamp) error {
	query, args, err := sb.Update("bootcamps").
		SetMap(map[string]interface{}{
			"title":       b.Title,
			"description": b.Description,
			"subject":     b.Subject,
			"format":      b.Format,
			"status":      b.Status,
			"capacity":    b.Capacity,
			"start_date":  b.StartDate,
			"end_date":    b.EndDate,
			"updated_at":  squirrel.Expr("NOW()"),
		}).
		Where(squirrel.Eq{"id": b.ID}).
		Suffix("RETURNING enrollment_count, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update bootcamp query: %w", err)
	}
	if err := r.db.QueryRow(ctx, query, args...).Scan(&b.EnrollmentCount, &b.UpdatedAt); err != nil {
		switch {
		case dberrors.IsNotFound(err):
			return ErrNotFound
		case dberrors.IsCheckViolation(err, constraintBootcampEnrollmentCk):
			return ErrCapacityTooLow
		}
		return fmt.Errorf("failed to update bootcamp: %w", err)
	}
	return nil
}

// Delete removes a bootcamp; sessions, discussions and enrollments cascade
func (r *BootcampRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(ctx, r.db, "bootcamps", id)
}

// Enroll runs insert + bounded increment in one transaction
func (r *BootcampRepository) Enroll(ctx context.Context, e *models.Enrollment) (*models.Bootcamp, error) {
	e.ID = newID(e.ID)
	if e.Status == "" {
		e.Status = models.EnrollmentActive
	}

	var bootcamp *models.Bootcamp
	err := db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		err := tx.QueryRow(ctx, `
			INSERT INTO enrollments (id, student_id, bootcamp_id, status)
			VALUES ($1, $2, $3, $4)
			RETURNING enrolled_at`,
			e.ID, e.StudentID, e.BootcampID, e.Status,
		).Scan(&e.EnrolledAt)
		if err != nil {
			switch {
			case dberrors.IsDuplicateConstraintError(err, constraintEnrollmentUnique):
				return ErrAlreadyEnrolled
			case dberrors.IsForeignKeyError(err):
				return ErrNotFound
			}
			return fmt.Errorf("failed to insert enrollment: %w", err)
		}

		_, err = incrementBounded(ctx, tx, bootcampSeats, e.BootcampID, squirrel.Eq{"status": models.BootcampPublished})
		if errors.Is(err, ErrBoundReached) {
			// Re-read only to pick the failure message.
			current, getErr := getBootcamp(ctx, tx, e.BootcampID)
			if getErr != nil {
				return getErr
			}
			if !current.IsOpen() {
				return ErrBootcampNotOpen
			}
			return ErrBootcampFull
		}
		if err != nil {
			return err
		}

		bootcamp, err = getBootcamp(ctx, tx, e.BootcampID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return bootcamp, nil
}

// ListEnrollments lists every enrollment of a bootcamp, oldest first
func (r *BootcampRepository) ListEnrollments(ctx context.Context, bootcampID uuid.UUID) ([]*models.Enrollment, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, student_id, bootcamp_id, status, enrolled_at
		FROM enrollments
		WHERE bootcamp_id = $1
		ORDER BY enrolled_at, id`, bootcampID)
	if err != nil {
		return nil, fmt.Errorf("failed to list enrollments: %w", err)
	}
	defer rows.Close()

	enrollments := []*models.Enrollment{}
	for rows.Next() {
		var e models.Enrollment
		if err := rows.Scan(&e.ID, &e.StudentID, &e.BootcampID, &e.Status, &e.EnrolledAt); err != nil {
			return nil, fmt.Errorf("failed to scan enrollment: %w", err)
		}
		enrollments = append(enrollments, &e)
	}
	return enrollments, rows.Err()
}

// IsEnrolled reports an ACTIVE or COMPLETED enrollment of the student
func (r *BootcampRepository) IsEnrolled(ctx context.Context, studentID, bootcampID uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM enrollments
			WHERE student_id = $1 AND bootcamp_id = $2 AND status <> $3
		)`, studentID, bootcampID, models.EnrollmentDropped).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check enrollment: %w", err)
	}
	return exists, nil
}

// deleteByID removes one row and maps "nothing deleted" to ErrNotFound
func deleteByID(ctx context.Context, q db.DBTX, table string, id uuid.UUID) error {
	query, args, err := sb.Delete(table).Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete %s query: %w", table, err)
	}
	tag, err := q.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to delete from %s: %w", table, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
