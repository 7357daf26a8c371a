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

// IDiscussionRepository defines discussion topic storage. One topic per bootcamp day.
type IDiscussionRepository interface {
	Create(ctx context.Context, d *models.DiscussionTopic) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.DiscussionTopic, error)
	GetByDay(ctx context.Context, bootcampID uuid.UUID, day int) (*models.DiscussionTopic, error)
	ListByBootcamp(ctx context.Context, bootcampID uuid.UUID, limit, offset int) ([]*models.DiscussionTopic, int64, error)
	Update(ctx context.Context, d *models.DiscussionTopic) error
	Delete(ctx context.Context, id uuid.UUID) error
}

var discussionColumns = []string{
	"id", "bootcamp_id", "day", "title", "description", "prompts", "created_at", "updated_at",
}

// DiscussionRepository handles database operations for discussion topics
type DiscussionRepository struct {
	db *pgxpool.Pool
}

// NewDiscussionRepository creates a new discussion repository
func NewDiscussionRepository(db *pgxpool.Pool) *DiscussionRepository {
	return &DiscussionRepository{db: db}
}

func scanDiscussion(row pgx.Row) (*models.DiscussionTopic, error) {
	var d models.DiscussionTopic
	if err := row.Scan(&d.ID, &d.BootcampID, &d.Day, &d.Title, &d.Description,
		&d.Prompts, &d.CreatedAt, &d.UpdatedAt); err != nil {
		return nil, err
	}
	if d.Prompts == nil {
		d.Prompts = []string{}
	}
	return &d, nil
}

// Create creates a new discussion topic
func (r *DiscussionRepository) Create(ctx context.Context, d *models.DiscussionTopic) error {
	d.ID = newID(d.ID)
	if d.Prompts == nil {
		d.Prompts = []string{}
	}
	query, args, err := sb.Insert("discussion_topics").
		Columns("id", "bootcamp_id", "day", "title", "description", "prompts").
		Values(d.ID, d.BootcampID, d.Day, d.Title, d.Description, d.Prompts).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build insert discussion query: %w", err)
	}
	if err := r.db.QueryRow(ctx, query, args...).Scan(&d.CreatedAt, &d.UpdatedAt); err != nil {
		return discussionWriteErr(err)
	}
	return nil
}

// GetByID retrieves a discussion topic by ID
func (r *DiscussionRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.DiscussionTopic, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id})
}

// GetByDay retrieves the topic of a bootcamp day
func (r *DiscussionRepository) GetByDay(ctx context.Context, bootcampID uuid.UUID, day int) (*models.DiscussionTopic, error) {
	return r.getOne(ctx, squirrel.Eq{"bootcamp_id": bootcampID, "day": day})
}

func (r *DiscussionRepository) getOne(ctx context.Context, where squirrel.Sqlizer) (*models.DiscussionTopic, error) {
	query, args, err := sb.Select(discussionColumns...).From("discussion_topics").Where(where).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get discussion query: %w", err)
	}
	d, err := scanDiscussion(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if dberrors.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error retrieving discussion: %w", err)
	}
	return d, nil
}

// ListByBootcamp returns one page of topics ordered by day, plus the total count
func (r *DiscussionRepository) ListByBootcamp(ctx context.Context, bootcampID uuid.UUID, limit, offset int) ([]*models.DiscussionTopic, int64, error) {
	where := squirrel.Eq{"bootcamp_id": bootcampID}

	countQuery, countArgs, err := sb.Select("COUNT(*)").From("discussion_topics").Where(where).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count discussions query: %w", err)
	}
	var total int64
	if err := r.db.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count discussions: %w", err)
	}

	query, args, err := sb.Select(discussionColumns...).From("discussion_topics").
		Where(where).
		OrderBy("day").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list discussions query: %w", err)
	}
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list discussions: %w", err)
	}
	defer rows.Close()

	topics := []*models.DiscussionTopic{}
	for rows.Next() {
		d, err := scanDiscussion(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan discussion: %w", err)
		}
		topics = append(topics, d)
	}
	return topics, total, rows.Err()
}

// Update updates an existing topic
func (r *DiscussionRepository) Update(ctx context.Context, d *models.DiscussionTopic) error {
	if d.Prompts == nil {
		d.Prompts = []string{}
	}
	query, args, err := sb.Update("discussion_topics").
		SetMap(map[string]interface{}{
			"day":         d.Day,
			"title":       d.Title,
			"description": d.Description,
			"prompts":     d.Prompts,
			"updated_at":  squirrel.Expr("NOW()"),
		}).
		Where(squirrel.Eq{"id": d.ID}).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update discussion query: %w", err)
	}
	if err := r.db.QueryRow(ctx, query, args...).Scan(&d.UpdatedAt); err != nil {
		if dberrors.IsNotFound(err) {
			return ErrNotFound
		}
		return discussionWriteErr(err)
	}
	return nil
}

// Delete removes a topic
func (r *DiscussionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(ctx, r.db, "discussion_topics", id)
}

func discussionWriteErr(err error) error {
	switch {
	case dberrors.IsDuplicateConstraintError(err, constraintDiscussionDay):
		return ErrDuplicateDay
	case dberrors.IsForeignKeyError(err):
		return ErrUnknownReference
	}
	return fmt.Errorf("failed to write discussion: %w", err)
}
