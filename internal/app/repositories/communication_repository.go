package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mindforge/mindforge-api/internal/app/models"
	"github.com/mindforge/mindforge-api/internal/db"
	"github.com/mindforge/mindforge-api/internal/pkg/dberrors"
)

// ICommunicationRepository defines communication, recipient and read receipt storage
type ICommunicationRepository interface {
	// Create stores the communication and its recipients in one transaction
	Create(ctx context.Context, c *models.Communication) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Communication, error)
	// Update rewrites the communication and replaces its recipients. ErrAlreadySent once the stored row is SENT.
	Update(ctx context.Context, c *models.Communication) error
	Delete(ctx context.Context, id uuid.UUID) error

	ListSent(ctx context.Context, senderID uuid.UUID, limit, offset int) ([]*models.Communication, int64, error)
	ListInbox(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*models.InboxItem, int64, error)
	ListUnread(ctx context.Context, userID uuid.UUID) ([]*models.Communication, error)

	// MarkRead returns the receipt of (communication, user), creating it on first call.
	// The boolean reports whether this call created it.
	MarkRead(ctx context.Context, communicationID, userID uuid.UUID) (*models.ReadReceipt, bool, error)
}

var communicationColumns = []string{
	"c.id", "c.sender_id", "c.subject", "c.content", "c.type", "c.status",
	"c.scheduled_for", "c.sent_at", "c.created_at", "c.updated_at",
	"ARRAY(SELECT cr.user_id FROM communication_recipients cr WHERE cr.communication_id = c.id ORDER BY cr.position) AS recipient_ids",
}

// CommunicationRepository handles database operations for communications
type CommunicationRepository struct {
	db *pgxpool.Pool
}

// NewCommunicationRepository creates a new communication repository
func NewCommunicationRepository(db *pgxpool.Pool) *CommunicationRepository {
	return &CommunicationRepository{db: db}
}

func scanCommunication(row pgx.Row, extra ...any) (*models.Communication, error) {
	var c models.Communication
	dest := []any{
		&c.ID, &c.SenderID, &c.Subject, &c.Content, &c.Type, &c.Status,
		&c.ScheduledFor, &c.SentAt, &c.CreatedAt, &c.UpdatedAt, &c.RecipientIDs,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	if c.RecipientIDs == nil {
		c.RecipientIDs = []uuid.UUID{}
	}
	return &c, nil
}

// Create creates a communication with its recipients
func (r *CommunicationRepository) Create(ctx context.Context, c *models.Communication) error {
	c.ID = newID(c.ID)
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		query, args, err := sb.Insert("communications").
			Columns("id", "sender_id", "subject", "content", "type", "status", "scheduled_for", "sent_at").
			Values(c.ID, c.SenderID, c.Subject, c.Content, c.Type, c.Status, c.ScheduledFor, c.SentAt).
			Suffix("RETURNING created_at, updated_at").
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build insert communication query: %w", err)
		}
		if err := tx.QueryRow(ctx, query, args...).Scan(&c.CreatedAt, &c.UpdatedAt); err != nil {
			if dberrors.IsForeignKeyError(err) {
				return ErrUnknownReference
			}
			return fmt.Errorf("failed to create communication: %w", err)
		}
		return insertRecipients(ctx, tx, c.ID, c.RecipientIDs)
	})
}

func insertRecipients(ctx context.Context, q db.DBTX, communicationID uuid.UUID, recipients []uuid.UUID) error {
	if len(recipients) == 0 {
		return nil
	}
	insert := sb.Insert("communication_recipients").Columns("communication_id", "user_id", "position")
	for i, id := range recipients {
		insert = insert.Values(communicationID, id, i)
	}
	query, args, err := insert.Suffix("ON CONFLICT DO NOTHING").ToSql()
	if err != nil {
		return fmt.Errorf("failed to build insert recipients query: %w", err)
	}
	if _, err := q.Exec(ctx, query, args...); err != nil {
		if dberrors.IsForeignKeyError(err) {
			return ErrUnknownReference
		}
		return fmt.Errorf("failed to insert recipients: %w", err)
	}
	return nil
}

// GetByID retrieves a communication with its recipient ids
func (r *CommunicationRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Communication, error) {
	return getCommunication(ctx, r.db, id)
}

func getCommunication(ctx context.Context, q db.DBTX, id uuid.UUID) (*models.Communication, error) {
	query, args, err := sb.Select(communicationColumns...).
		From("communications c").
		Where(squirrel.Eq{"c.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get communication query: %w", err)
	}
	c, err := scanCommunication(q.QueryRow(ctx, query, args...))
	if err != nil {
		if dberrors.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error retrieving communication: %w", err)
	}
	return c, nil
}

// Update rewrites an unsent communication
func (r *CommunicationRepository) Update(ctx context.Context, c *models.Communication) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		query, args, err := sb.Update("communications").
			SetMap(map[string]interface{}{
				"subject":       c.Subject,
				"content":       c.Content,
				"type":          c.Type,
				"status":        c.Status,
				"scheduled_for": c.ScheduledFor,
				"sent_at":       c.SentAt,
				"updated_at":    squirrel.Expr("NOW()"),
			}).
			Where(squirrel.Eq{"id": c.ID}).
			Where(squirrel.NotEq{"status": models.CommunicationSent}).
			Suffix("RETURNING updated_at").
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build update communication query: %w", err)
		}
		if err := tx.QueryRow(ctx, query, args...).Scan(&c.UpdatedAt); err != nil {
			if !dberrors.IsNotFound(err) {
				return fmt.Errorf("failed to update communication: %w", err)
			}
			if _, getErr := getCommunication(ctx, tx, c.ID); getErr != nil {
				return getErr
			}
			return ErrAlreadySent
		}

		if _, err := tx.Exec(ctx, `DELETE FROM communication_recipients WHERE communication_id = $1`, c.ID); err != nil {
			return fmt.Errorf("failed to clear recipients: %w", err)
		}
		return insertRecipients(ctx, tx, c.ID, c.RecipientIDs)
	})
}

// Delete removes a communication with its recipients and receipts
func (r *CommunicationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(ctx, r.db, "communications", id)
}

// ListSent pages the communications authored by senderID, newest first
func (r *CommunicationRepository) ListSent(ctx context.Context, senderID uuid.UUID, limit, offset int) ([]*models.Communication, int64, error) {
	where := squirrel.Eq{"c.sender_id": senderID}

	var total int64
	countQuery, countArgs, err := sb.Select("COUNT(*)").From("communications c").Where(where).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count communications query: %w", err)
	}
	if err := r.db.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count communications: %w", err)
	}

	query, args, err := sb.Select(communicationColumns...).
		From("communications c").
		Where(where).
		OrderBy("c.created_at DESC", "c.id").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list communications query: %w", err)
	}
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list communications: %w", err)
	}
	defer rows.Close()

	comms := []*models.Communication{}
	for rows.Next() {
		c, err := scanCommunication(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan communication: %w", err)
		}
		comms = append(comms, c)
	}
	return comms, total, rows.Err()
}

// received selects SENT communications addressed to userID
func received(userID uuid.UUID) squirrel.Sqlizer {
	return squirrel.And{
		squirrel.Eq{"c.status": models.CommunicationSent},
		squirrel.Expr("EXISTS (SELECT 1 FROM communication_recipients cr WHERE cr.communication_id = c.id AND cr.user_id = ?)", userID),
	}
}

// ListInbox pages the communications received by userID with their read state, newest first
func (r *CommunicationRepository) ListInbox(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*models.InboxItem, int64, error) {
	where := received(userID)

	var total int64
	countQuery, countArgs, err := sb.Select("COUNT(*)").From("communications c").Where(where).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count inbox query: %w", err)
	}
	if err := r.db.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count inbox: %w", err)
	}

	query, args, err := sb.Select(communicationColumns...).
		Column(squirrel.Expr("EXISTS (SELECT 1 FROM read_receipts rr WHERE rr.communication_id = c.id AND rr.user_id = ?) AS is_read", userID)).
		From("communications c").
		Where(where).
		OrderBy("c.sent_at DESC", "c.id").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build inbox query: %w", err)
	}
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list inbox: %w", err)
	}
	defer rows.Close()

	items := []*models.InboxItem{}
	for rows.Next() {
		var isRead bool
		c, err := scanCommunication(rows, &isRead)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan inbox item: %w", err)
		}
		items = append(items, &models.InboxItem{Communication: c, IsRead: isRead})
	}
	return items, total, rows.Err()
}

// ListUnread lists received communications without a read receipt, newest first
func (r *CommunicationRepository) ListUnread(ctx context.Context, userID uuid.UUID) ([]*models.Communication, error) {
	query, args, err := sb.Select(communicationColumns...).
		From("communications c").
		Where(received(userID)).
		Where("NOT EXISTS (SELECT 1 FROM read_receipts rr WHERE rr.communication_id = c.id AND rr.user_id = ?)", userID).
		OrderBy("c.sent_at DESC", "c.id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build unread query: %w", err)
	}
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list unread: %w", err)
	}
	defer rows.Close()

	comms := []*models.Communication{}
	for rows.Next() {
		c, err := scanCommunication(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan communication: %w", err)
		}
		comms = append(comms, c)
	}
	return comms, rows.Err()
}

// MarkRead is get-or-create on the (communication, user) receipt
func (r *CommunicationRepository) MarkRead(ctx context.Context, communicationID, userID uuid.UUID) (*models.ReadReceipt, bool, error) {
	var rr models.ReadReceipt
	err := r.db.QueryRow(ctx, `
		INSERT INTO read_receipts (id, communication_id, user_id)
		VALUES ($1, $2, $3)
		ON CONFLICT ON CONSTRAINT read_receipts_communication_user_key DO NOTHING
		RETURNING id, communication_id, user_id, read_at`,
		uuid.New(), communicationID, userID,
	).Scan(&rr.ID, &rr.CommunicationID, &rr.UserID, &rr.ReadAt)
	if err == nil {
		return &rr, true, nil
	}
	if !dberrors.IsNotFound(err) {
		if dberrors.IsForeignKeyError(err) {
			return nil, false, ErrNotFound
		}
		return nil, false, fmt.Errorf("failed to create read receipt: %w", err)
	}

	err = r.db.QueryRow(ctx, `
		SELECT id, communication_id, user_id, read_at
		FROM read_receipts
		WHERE communication_id = $1 AND user_id = $2`, communicationID, userID,
	).Scan(&rr.ID, &rr.CommunicationID, &rr.UserID, &rr.ReadAt)
	if err != nil {
		return nil, false, fmt.Errorf("failed to load read receipt: %w", err)
	}
	return &rr, false, nil
}
