package inmem

import (
	"context"
	"slices"

	"github.com/google/uuid"
	"github.com/mindforge/mindforge-api/internal/app/models"
	"github.com/mindforge/mindforge-api/internal/app/repositories"
)

// CommunicationRepository is the in-memory ICommunicationRepository
type CommunicationRepository struct {
	s *store
}

var _ repositories.ICommunicationRepository = (*CommunicationRepository)(nil)

func cloneCommunication(c *models.Communication) *models.Communication {
	out := *c
	out.RecipientIDs = slices.Clone(c.RecipientIDs)
	if out.RecipientIDs == nil {
		out.RecipientIDs = []uuid.UUID{}
	}
	if c.ScheduledFor != nil {
		t := *c.ScheduledFor
		out.ScheduledFor = &t
	}
	if c.SentAt != nil {
		t := *c.SentAt
		out.SentAt = &t
	}
	return &out
}

// usersExist reports whether sender and every recipient exist. Caller holds the lock.
func (r *CommunicationRepository) usersExist(c *models.Communication) bool {
	if _, ok := r.s.users.get(c.SenderID); !ok {
		return false
	}
	for _, id := range c.RecipientIDs {
		if _, ok := r.s.users.get(id); !ok {
			return false
		}
	}
	return true
}

func dedupe(ids []uuid.UUID) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if !slices.Contains(out, id) {
			out = append(out, id)
		}
	}
	return out
}

func (r *CommunicationRepository) Create(_ context.Context, c *models.Communication) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if !r.usersExist(c) {
		return repositories.ErrUnknownReference
	}
	c.ID = newID(c.ID)
	c.RecipientIDs = dedupe(c.RecipientIDs)
	now := r.s.now()
	c.CreatedAt, c.UpdatedAt = now, now
	r.s.comms.put(c.ID, cloneCommunication(c))
	return nil
}

func (r *CommunicationRepository) GetByID(_ context.Context, id uuid.UUID) (*models.Communication, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	c, ok := r.s.comms.get(id)
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return cloneCommunication(c), nil
}

func (r *CommunicationRepository) Update(_ context.Context, c *models.Communication) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	current, ok := r.s.comms.get(c.ID)
	if !ok {
		return repositories.ErrNotFound
	}
	if current.IsSent() {
		return repositories.ErrAlreadySent
	}
	c.SenderID = current.SenderID
	if !r.usersExist(c) {
		return repositories.ErrUnknownReference
	}
	c.RecipientIDs = dedupe(c.RecipientIDs)
	c.CreatedAt = current.CreatedAt
	c.UpdatedAt = r.s.now()
	r.s.comms.put(c.ID, cloneCommunication(c))
	return nil
}

func (r *CommunicationRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if !r.s.comms.remove(id) {
		return repositories.ErrNotFound
	}
	r.s.readReceipts.removeWhere(func(rr *models.ReadReceipt) bool { return rr.CommunicationID == id })
	return nil
}

func (r *CommunicationRepository) ListSent(_ context.Context, senderID uuid.UUID, limit, offset int) ([]*models.Communication, int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	rows := newest(r.s.comms.filter(func(c *models.Communication) bool { return c.SenderID == senderID }))
	out := []*models.Communication{}
	for _, c := range page(rows, limit, offset) {
		out = append(out, cloneCommunication(c))
	}
	return out, int64(len(rows)), nil
}

// received lists SENT communications addressed to userID, newest sent first. Caller holds the lock.
func (r *CommunicationRepository) received(userID uuid.UUID) []*models.Communication {
	rows := newest(r.s.comms.filter(func(c *models.Communication) bool {
		return c.IsSent() && c.HasRecipient(userID)
	}))
	slices.SortStableFunc(rows, func(a, b *models.Communication) int { return b.SentAt.Compare(*a.SentAt) })
	return rows
}

func (r *CommunicationRepository) hasReceipt(communicationID, userID uuid.UUID) bool {
	_, ok := r.s.readReceipts.find(func(rr *models.ReadReceipt) bool {
		return rr.CommunicationID == communicationID && rr.UserID == userID
	})
	return ok
}

func (r *CommunicationRepository) ListInbox(_ context.Context, userID uuid.UUID, limit, offset int) ([]*models.InboxItem, int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	rows := r.received(userID)
	out := []*models.InboxItem{}
	for _, c := range page(rows, limit, offset) {
		out = append(out, &models.InboxItem{Communication: cloneCommunication(c), IsRead: r.hasReceipt(c.ID, userID)})
	}
	return out, int64(len(rows)), nil
}

func (r *CommunicationRepository) ListUnread(_ context.Context, userID uuid.UUID) ([]*models.Communication, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := []*models.Communication{}
	for _, c := range r.received(userID) {
		if !r.hasReceipt(c.ID, userID) {
			out = append(out, cloneCommunication(c))
		}
	}
	return out, nil
}

func (r *CommunicationRepository) MarkRead(_ context.Context, communicationID, userID uuid.UUID) (*models.ReadReceipt, bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.comms.get(communicationID); !ok {
		return nil, false, repositories.ErrNotFound
	}
	if existing, ok := r.s.readReceipts.find(func(rr *models.ReadReceipt) bool {
		return rr.CommunicationID == communicationID && rr.UserID == userID
	}); ok {
		c := *existing
		return &c, false, nil
	}
	rr := &models.ReadReceipt{ID: uuid.New(), CommunicationID: communicationID, UserID: userID, ReadAt: r.s.now()}
	r.s.readReceipts.put(rr.ID, rr)
	c := *rr
	return &c, true, nil
}
