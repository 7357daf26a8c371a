package inmem

import (
	"context"
	"slices"

	"github.com/google/uuid"
	"github.com/mindforge/mindforge-api/internal/app/models"
	"github.com/mindforge/mindforge-api/internal/app/repositories"
)

// RubricRepository is the in-memory IRubricRepository
type RubricRepository struct {
	s *store
}

var _ repositories.IRubricRepository = (*RubricRepository)(nil)

func cloneRubric(rb *models.Rubric) *models.Rubric {
	c := *rb
	c.Levels = slices.Clone(rb.Levels)
	return &c
}

func (r *RubricRepository) List(_ context.Context) ([]*models.Rubric, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	rows := r.s.rubrics.filter(nil)
	sortBy(rows, func(rb *models.Rubric) string { return rb.Skill })
	out := []*models.Rubric{}
	for _, rb := range rows {
		out = append(out, cloneRubric(rb))
	}
	return out, nil
}

func (r *RubricRepository) GetBySkill(_ context.Context, skill string) (*models.Rubric, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	rb, ok := r.s.rubrics.find(func(o *models.Rubric) bool { return o.Skill == skill })
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return cloneRubric(rb), nil
}

func (r *RubricRepository) Upsert(_ context.Context, rb *models.Rubric) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if current, ok := r.s.rubrics.find(func(o *models.Rubric) bool { return o.Skill == rb.Skill }); ok {
		current.Description = rb.Description
		current.Levels = slices.Clone(rb.Levels)
		rb.ID, rb.CreatedAt = current.ID, current.CreatedAt
		return nil
	}
	rb.ID = newID(rb.ID)
	rb.CreatedAt = r.s.now()
	r.s.rubrics.put(rb.ID, cloneRubric(rb))
	return nil
}

// ProgressRepository is the in-memory IProgressRepository
type ProgressRepository struct {
	s *store
}

var _ repositories.IProgressRepository = (*ProgressRepository)(nil)

func (r *ProgressRepository) Create(_ context.Context, p *models.ProgressRecord) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.rubrics.find(func(o *models.Rubric) bool { return o.Skill == p.Skill }); !ok {
		return repositories.ErrUnknownReference
	}
	if !profileExists[*models.StudentProfile](r.s, p.StudentID) || !profileExists[*models.FacilitatorProfile](r.s, p.FacilitatorID) {
		return repositories.ErrUnknownReference
	}
	if p.BootcampID != nil {
		if _, ok := r.s.bootcamps.get(*p.BootcampID); !ok {
			return repositories.ErrUnknownReference
		}
	}
	if p.SessionID != nil {
		if _, ok := r.s.sessions.get(*p.SessionID); !ok {
			return repositories.ErrUnknownReference
		}
	}
	p.ID = newID(p.ID)
	if p.AssessedAt.IsZero() {
		p.AssessedAt = r.s.now()
	}
	c := *p
	r.s.progress.put(p.ID, &c)
	return nil
}

func (r *ProgressRepository) ListByStudent(_ context.Context, studentID uuid.UUID, limit, offset int) ([]*models.ProgressRecord, int64, error) {
	return r.list(func(p *models.ProgressRecord) bool { return p.StudentID == studentID }, limit, offset)
}

func (r *ProgressRepository) ListByBootcamp(_ context.Context, bootcampID uuid.UUID, limit, offset int) ([]*models.ProgressRecord, int64, error) {
	return r.list(func(p *models.ProgressRecord) bool { return p.BootcampID != nil && *p.BootcampID == bootcampID }, limit, offset)
}

func (r *ProgressRepository) list(pred func(*models.ProgressRecord) bool, limit, offset int) ([]*models.ProgressRecord, int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	rows := newest(r.s.progress.filter(pred))
	slices.SortStableFunc(rows, func(a, b *models.ProgressRecord) int { return b.AssessedAt.Compare(a.AssessedAt) })
	out := []*models.ProgressRecord{}
	for _, p := range page(rows, limit, offset) {
		c := *p
		out = append(out, &c)
	}
	return out, int64(len(rows)), nil
}

// KnowledgeStreamRepository is the in-memory IKnowledgeStreamRepository
type KnowledgeStreamRepository struct {
	s *store
}

var _ repositories.IKnowledgeStreamRepository = (*KnowledgeStreamRepository)(nil)

func (r *KnowledgeStreamRepository) Create(_ context.Context, k *models.KnowledgeStream) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, dup := r.s.streams.find(func(o *models.KnowledgeStream) bool { return o.Name == k.Name }); dup {
		return repositories.ErrDuplicateName
	}
	k.ID = newID(k.ID)
	k.CreatedAt = r.s.now()
	c := *k
	r.s.streams.put(k.ID, &c)
	return nil
}

func (r *KnowledgeStreamRepository) GetByID(_ context.Context, id uuid.UUID) (*models.KnowledgeStream, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	k, ok := r.s.streams.get(id)
	if !ok {
		return nil, repositories.ErrNotFound
	}
	c := *k
	return &c, nil
}

func (r *KnowledgeStreamRepository) List(_ context.Context, limit, offset int) ([]*models.KnowledgeStream, int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	rows := r.s.streams.filter(nil)
	sortBy(rows, func(k *models.KnowledgeStream) string { return k.Name })
	out := []*models.KnowledgeStream{}
	for _, k := range page(rows, limit, offset) {
		c := *k
		out = append(out, &c)
	}
	return out, int64(len(rows)), nil
}

func (r *KnowledgeStreamRepository) Assign(_ context.Context, a *models.StudentKnowledgeStream) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.streams.get(a.KnowledgeStreamID); !ok || !profileExists[*models.StudentProfile](r.s, a.StudentID) {
		return repositories.ErrUnknownReference
	}
	if _, dup := r.s.assignments.find(func(o *models.StudentKnowledgeStream) bool {
		return o.StudentID == a.StudentID && o.KnowledgeStreamID == a.KnowledgeStreamID
	}); dup {
		return repositories.ErrAlreadyAssigned
	}
	a.ID = newID(a.ID)
	a.AssignedAt = r.s.now()
	c := *a
	c.KnowledgeStream = nil
	r.s.assignments.put(a.ID, &c)
	return nil
}

func (r *KnowledgeStreamRepository) ListForStudent(_ context.Context, studentID uuid.UUID) ([]*models.StudentKnowledgeStream, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := []*models.StudentKnowledgeStream{}
	for _, a := range r.s.assignments.filter(func(o *models.StudentKnowledgeStream) bool { return o.StudentID == studentID }) {
		c := *a
		if k, ok := r.s.streams.get(a.KnowledgeStreamID); ok {
			kc := *k
			c.KnowledgeStream = &kc
		}
		out = append(out, &c)
	}
	return out, nil
}
