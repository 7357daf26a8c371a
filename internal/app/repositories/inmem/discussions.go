package inmem

import (
	"context"
	"slices"

	"github.com/google/uuid"
	"github.com/mindforge/mindforge-api/internal/app/models"
	"github.com/mindforge/mindforge-api/internal/app/repositories"
)

// DiscussionRepository is the in-memory IDiscussionRepository
type DiscussionRepository struct {
	s *store
}

var _ repositories.IDiscussionRepository = (*DiscussionRepository)(nil)

func cloneDiscussion(d *models.DiscussionTopic) *models.DiscussionTopic {
	c := *d
	c.Prompts = slices.Clone(d.Prompts)
	if c.Prompts == nil {
		c.Prompts = []string{}
	}
	return &c
}

func (r *DiscussionRepository) dayTaken(d *models.DiscussionTopic) bool {
	_, taken := r.s.discussions.find(func(o *models.DiscussionTopic) bool {
		return o.ID != d.ID && o.BootcampID == d.BootcampID && o.Day == d.Day
	})
	return taken
}

func (r *DiscussionRepository) Create(_ context.Context, d *models.DiscussionTopic) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.bootcamps.get(d.BootcampID); !ok {
		return repositories.ErrUnknownReference
	}
	d.ID = newID(d.ID)
	if r.dayTaken(d) {
		return repositories.ErrDuplicateDay
	}
	if d.Prompts == nil {
		d.Prompts = []string{}
	}
	now := r.s.now()
	d.CreatedAt, d.UpdatedAt = now, now
	r.s.discussions.put(d.ID, cloneDiscussion(d))
	return nil
}

func (r *DiscussionRepository) GetByID(_ context.Context, id uuid.UUID) (*models.DiscussionTopic, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	d, ok := r.s.discussions.get(id)
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return cloneDiscussion(d), nil
}

func (r *DiscussionRepository) GetByDay(_ context.Context, bootcampID uuid.UUID, day int) (*models.DiscussionTopic, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	d, ok := r.s.discussions.find(func(o *models.DiscussionTopic) bool { return o.BootcampID == bootcampID && o.Day == day })
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return cloneDiscussion(d), nil
}

func (r *DiscussionRepository) ListByBootcamp(_ context.Context, bootcampID uuid.UUID, limit, offset int) ([]*models.DiscussionTopic, int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	rows := r.s.discussions.filter(func(o *models.DiscussionTopic) bool { return o.BootcampID == bootcampID })
	sortBy(rows, func(o *models.DiscussionTopic) int { return o.Day })
	out := []*models.DiscussionTopic{}
	for _, d := range page(rows, limit, offset) {
		out = append(out, cloneDiscussion(d))
	}
	return out, int64(len(rows)), nil
}

func (r *DiscussionRepository) Update(_ context.Context, d *models.DiscussionTopic) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	current, ok := r.s.discussions.get(d.ID)
	if !ok {
		return repositories.ErrNotFound
	}
	d.BootcampID = current.BootcampID
	if r.dayTaken(d) {
		return repositories.ErrDuplicateDay
	}
	d.CreatedAt = current.CreatedAt
	d.UpdatedAt = r.s.now()
	r.s.discussions.put(d.ID, cloneDiscussion(d))
	return nil
}

func (r *DiscussionRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if !r.s.discussions.remove(id) {
		return repositories.ErrNotFound
	}
	return nil
}
