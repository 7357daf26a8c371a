package repositories

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mindforge/mindforge-api/internal/app/models"
	"github.com/mindforge/mindforge-api/internal/pkg/dberrors"
)

// IRubricRepository defines rubric storage, keyed by skill
type IRubricRepository interface {
	List(ctx context.Context) ([]*models.Rubric, error)
	GetBySkill(ctx context.Context, skill string) (*models.Rubric, error)
	Upsert(ctx context.Context, r *models.Rubric) error
}

// IProgressRepository defines progress record storage
type IProgressRepository interface {
	Create(ctx context.Context, p *models.ProgressRecord) error
	ListByStudent(ctx context.Context, studentID uuid.UUID, limit, offset int) ([]*models.ProgressRecord, int64, error)
	ListByBootcamp(ctx context.Context, bootcampID uuid.UUID, limit, offset int) ([]*models.ProgressRecord, int64, error)
}

// RubricRepository handles database operations for rubrics
type RubricRepository struct {
	db *pgxpool.Pool
}

// NewRubricRepository creates a new rubric repository
func NewRubricRepository(db *pgxpool.Pool) *RubricRepository {
	return &RubricRepository{db: db}
}

func scanRubric(row pgx.Row) (*models.Rubric, error) {
	var (
		r      models.Rubric
		levels []byte
	)
	if err := row.Scan(&r.ID, &r.Skill, &r.Description, &levels, &r.CreatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(levels, &r.Levels); err != nil {
		return nil, fmt.Errorf("decode levels of rubric %s: %w", r.Skill, err)
	}
	return &r, nil
}

// List returns every rubric ordered by skill
func (r *RubricRepository) List(ctx context.Context) ([]*models.Rubric, error) {
	rows, err := r.db.Query(ctx, `SELECT id, skill, description, levels, created_at FROM rubrics ORDER BY skill`)
	if err != nil {
		return nil, fmt.Errorf("failed to list rubrics: %w", err)
	}
	defer rows.Close()

	rubrics := []*models.Rubric{}
	for rows.Next() {
		rb, err := scanRubric(rows)
		if err != nil {
			return nil, err
		}
		rubrics = append(rubrics, rb)
	}
	return rubrics, rows.Err()
}

// GetBySkill retrieves the rubric for skill
func (r *RubricRepository) GetBySkill(ctx context.Context, skill string) (*models.Rubric, error) {
	rb, err := scanRubric(r.db.QueryRow(ctx,
		`SELECT id, skill, description, levels, created_at FROM rubrics WHERE skill = $1`, skill))
	if err != nil {
		if dberrors.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error retrieving rubric: %w", err)
	}
	return rb, nil
}

// Upsert inserts a rubric or replaces the description and levels of an existing skill
func (r *RubricRepository) Upsert(ctx context.Context, rb *models.Rubric) error {
	rb.ID = newID(rb.ID)
	levels, err := json.Marshal(rb.Levels)
	if err != nil {
		return fmt.Errorf("encode rubric levels: %w", err)
	}
	err = r.db.QueryRow(ctx, `
		INSERT INTO rubrics (id, skill, description, levels)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT ON CONSTRAINT `+constraintRubricSkill+`
		DO UPDATE SET description = EXCLUDED.description, levels = EXCLUDED.levels
		RETURNING id, created_at`,
		rb.ID, rb.Skill, rb.Description, levels,
	).Scan(&rb.ID, &rb.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert rubric: %w", err)
	}
	return nil
}

var progressColumns = []string{
	"id", "student_id", "facilitator_id", "bootcamp_id", "session_id", "skill", "level", "notes", "assessed_at",
}

// ProgressRepository handles database operations for progress records
type ProgressRepository struct {
	db *pgxpool.Pool
}

// NewProgressRepository creates a new progress repository
func NewProgressRepository(db *pgxpool.Pool) *ProgressRepository {
	return &ProgressRepository{db: db}
}

// Create stores a progress record. A zero AssessedAt means now.
func (r *ProgressRepository) Create(ctx context.Context, p *models.ProgressRecord) error {
	p.ID = newID(p.ID)
	var assessedAt interface{} = squirrel.Expr("NOW()")
	if !p.AssessedAt.IsZero() {
		assessedAt = p.AssessedAt
	}
	query, args, err := sb.Insert("progress_records").
		Columns("id", "student_id", "facilitator_id", "bootcamp_id", "session_id", "skill", "level", "notes", "assessed_at").
		Values(p.ID, p.StudentID, p.FacilitatorID, p.BootcampID, p.SessionID, p.Skill, p.Level, p.Notes, assessedAt).
		Suffix("RETURNING assessed_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build insert progress query: %w", err)
	}
	if err := r.db.QueryRow(ctx, query, args...).Scan(&p.AssessedAt); err != nil {
		if dberrors.IsForeignKeyError(err) {
			return ErrUnknownReference
		}
		return fmt.Errorf("failed to create progress record: %w", err)
	}
	return nil
}

// ListByStudent pages a student's records, newest first
func (r *ProgressRepository) ListByStudent(ctx context.Context, studentID uuid.UUID, limit, offset int) ([]*models.ProgressRecord, int64, error) {
	return r.list(ctx, squirrel.Eq{"student_id": studentID}, limit, offset)
}

// ListByBootcamp pages the records attached to a bootcamp, newest first
func (r *ProgressRepository) ListByBootcamp(ctx context.Context, bootcampID uuid.UUID, limit, offset int) ([]*models.ProgressRecord, int64, error) {
	return r.list(ctx, squirrel.Eq{"bootcamp_id": bootcampID}, limit, offset)
}

func (r *ProgressRepository) list(ctx context.Context, where squirrel.Sqlizer, limit, offset int) ([]*models.ProgressRecord, int64, error) {
	countQuery, countArgs, err := sb.Select("COUNT(*)").From("progress_records").Where(where).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count progress query: %w", err)
	}
	var total int64
	if err := r.db.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count progress records: %w", err)
	}

	query, args, err := sb.Select(progressColumns...).From("progress_records").
		Where(where).
		OrderBy("assessed_at DESC", "id").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list progress query: %w", err)
	}
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list progress records: %w", err)
	}
	defer rows.Close()

	records := []*models.ProgressRecord{}
	for rows.Next() {
		var p models.ProgressRecord
		if err := rows.Scan(&p.ID, &p.StudentID, &p.FacilitatorID, &p.BootcampID, &p.SessionID,
			&p.Skill, &p.Level, &p.Notes, &p.AssessedAt); err != nil {
			return nil, 0, fmt.Errorf("failed to scan progress record: %w", err)
		}
		records = append(records, &p)
	}
	return records, total, rows.Err()
}
