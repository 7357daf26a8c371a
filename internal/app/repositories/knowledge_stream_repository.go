package repositories

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mindforge/mindforge-api/internal/app/models"
	"github.com/mindforge/mindforge-api/internal/pkg/dberrors"
)

// IKnowledgeStreamRepository defines knowledge stream storage and student assignment
type IKnowledgeStreamRepository interface {
	Create(ctx context.Context, k *models.KnowledgeStream) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.KnowledgeStream, error)
	List(ctx context.Context, limit, offset int) ([]*models.KnowledgeStream, int64, error)
	Assign(ctx context.Context, a *models.StudentKnowledgeStream) error
	ListForStudent(ctx context.Context, studentID uuid.UUID) ([]*models.StudentKnowledgeStream, error)
}

// KnowledgeStreamRepository handles database operations for knowledge streams
type KnowledgeStreamRepository struct {
	db *pgxpool.Pool
}

// NewKnowledgeStreamRepository creates a new knowledge stream repository
func NewKnowledgeStreamRepository(db *pgxpool.Pool) *KnowledgeStreamRepository {
	return &KnowledgeStreamRepository{db: db}
}

// Create creates a stream. Names are unique.
func (r *KnowledgeStreamRepository) Create(ctx context.Context, k *models.KnowledgeStream) error {
	k.ID = newID(k.ID)
	err := r.db.QueryRow(ctx, `
		INSERT INTO knowledge_streams (id, name, description, created_by)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at`,
		k.ID, k.Name, k.Description, k.CreatedBy,
	).Scan(&k.CreatedAt)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, constraintKnowledgeStreamName) {
			return ErrDuplicateName
		}
		return fmt.Errorf("failed to create knowledge stream: %w", err)
	}
	return nil
}

// GetByID retrieves a stream by ID
func (r *KnowledgeStreamRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.KnowledgeStream, error) {
	var k models.KnowledgeStream
	err := r.db.QueryRow(ctx, `
		SELECT id, name, description, created_by, created_at
		FROM knowledge_streams WHERE id = $1`, id,
	).Scan(&k.ID, &k.Name, &k.Description, &k.CreatedBy, &k.CreatedAt)
	if err != nil {
		if dberrors.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error retrieving knowledge stream: %w", err)
	}
	return &k, nil
}

// List returns one page of streams ordered by name, plus the total count
func (r *KnowledgeStreamRepository) List(ctx context.Context, limit, offset int) ([]*models.KnowledgeStream, int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM knowledge_streams`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count knowledge streams: %w", err)
	}

	rows, err := r.db.Query(ctx, `
		SELECT id, name, description, created_by, created_at
		FROM knowledge_streams
		ORDER BY name
		LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list knowledge streams: %w", err)
	}
	defer rows.Close()

	streams := []*models.KnowledgeStream{}
	for rows.Next() {
		var k models.KnowledgeStream
		if err := rows.Scan(&k.ID, &k.Name, &k.Description, &k.CreatedBy, &k.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("failed to scan knowledge stream: %w", err)
		}
		streams = append(streams, &k)
	}
	return streams, total, rows.Err()
}

// Assign links a student to a stream, once
func (r *KnowledgeStreamRepository) Assign(ctx context.Context, a *models.StudentKnowledgeStream) error {
	a.ID = newID(a.ID)
	err := r.db.QueryRow(ctx, `
		INSERT INTO student_knowledge_streams (id, student_id, knowledge_stream_id)
		VALUES ($1, $2, $3)
		RETURNING assigned_at`,
		a.ID, a.StudentID, a.KnowledgeStreamID,
	).Scan(&a.AssignedAt)
	if err != nil {
		switch {
		case dberrors.IsDuplicateConstraintError(err, constraintStudentStreamUnique):
			return ErrAlreadyAssigned
		case dberrors.IsForeignKeyError(err):
			return ErrUnknownReference
		}
		return fmt.Errorf("failed to assign knowledge stream: %w", err)
	}
	return nil
}

// ListForStudent lists a student's assignments with their streams, oldest first
func (r *KnowledgeStreamRepository) ListForStudent(ctx context.Context, studentID uuid.UUID) ([]*models.StudentKnowledgeStream, error) {
	rows, err := r.db.Query(ctx, `
		SELECT sks.id, sks.student_id, sks.knowledge_stream_id, sks.assigned_at,
		       ks.id, ks.name, ks.description, ks.created_by, ks.created_at
		FROM student_knowledge_streams sks
		JOIN knowledge_streams ks ON ks.id = sks.knowledge_stream_id
		WHERE sks.student_id = $1
		ORDER BY sks.assigned_at, sks.id`, studentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list student knowledge streams: %w", err)
	}
	defer rows.Close()

	assignments := []*models.StudentKnowledgeStream{}
	for rows.Next() {
		var (
			a models.StudentKnowledgeStream
			k models.KnowledgeStream
		)
		if err := rows.Scan(&a.ID, &a.StudentID, &a.KnowledgeStreamID, &a.AssignedAt,
			&k.ID, &k.Name, &k.Description, &k.CreatedBy, &k.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan student knowledge stream: %w", err)
		}
		a.KnowledgeStream = &k
		assignments = append(assignments, &a)
	}
	return assignments, rows.Err()
}
