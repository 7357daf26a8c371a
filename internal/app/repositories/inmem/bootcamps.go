package inmem

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/mindforge/mindforge-api/internal/app/models"
	"github.com/mindforge/mindforge-api/internal/app/repositories"
)

// BootcampRepository is the in-memory IBootcampRepository
type BootcampRepository struct {
	s *store
}

var _ repositories.IBootcampRepository = (*BootcampRepository)(nil)

func cloneBootcamp(b *models.Bootcamp) *models.Bootcamp {
	c := *b
	return &c
}

func (r *BootcampRepository) Create(_ context.Context, b *models.Bootcamp) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if !profileExists[*models.FacilitatorProfile](r.s, b.FacilitatorID) {
		return repositories.ErrUnknownReference
	}
	b.ID = newID(b.ID)
	b.EnrollmentCount = 0
	now := r.s.now()
	b.CreatedAt, b.UpdatedAt = now, now
	r.s.bootcamps.put(b.ID, cloneBootcamp(b))
	return nil
}

func (r *BootcampRepository) GetByID(_ context.Context, id uuid.UUID) (*models.Bootcamp, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	b, ok := r.s.bootcamps.get(id)
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return cloneBootcamp(b), nil
}

func (r *BootcampRepository) List(_ context.Context, filter models.BootcampFilter, limit, offset int) ([]*models.Bootcamp, int64, error) {
	subject := strings.ToLower(strings.TrimSpace(filter.Subject))
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	rows := newest(r.s.bootcamps.filter(func(b *models.Bootcamp) bool {
		switch {
		case filter.Status != "" && b.Status != filter.Status:
			return false
		case filter.FacilitatorID != nil && b.FacilitatorID != *filter.FacilitatorID:
			return false
		case subject != "" && !strings.Contains(strings.ToLower(b.Subject), subject):
			return false
		case filter.Format != "" && b.Format != filter.Format:
			return false
		}
		return true
	}))
	out := []*models.Bootcamp{}
	for _, b := range page(rows, limit, offset) {
		out = append(out, cloneBootcamp(b))
	}
	return out, int64(len(rows)), nil
}

func (r *BootcampRepository) Update(_ context.Context, b *models.Bootcamp) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	current, ok := r.s.bootcamps.get(b.ID)
	if !ok {
		return repositories.ErrNotFound
	}
	if b.Capacity < current.EnrollmentCount {
		return repositories.ErrCapacityTooLow
	}
	b.FacilitatorID = current.FacilitatorID
	b.EnrollmentCount = current.EnrollmentCount
	b.CreatedAt = current.CreatedAt
	b.UpdatedAt = r.s.now()
	r.s.bootcamps.put(b.ID, cloneBootcamp(b))
	return nil
}

func (r *BootcampRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if !r.s.bootcamps.remove(id) {
		return repositories.ErrNotFound
	}
	r.s.cascadeBootcamp(id)
	return nil
}

// Enroll checks uniqueness, status and capacity and takes the seat under one write lock
func (r *BootcampRepository) Enroll(_ context.Context, e *models.Enrollment) (*models.Bootcamp, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	b, ok := r.s.bootcamps.get(e.BootcampID)
	if !ok {
		return nil, repositories.ErrNotFound
	}
	if _, dup := r.s.enrollments.find(func(x *models.Enrollment) bool {
		return x.StudentID == e.StudentID && x.BootcampID == e.BootcampID
	}); dup {
		return nil, repositories.ErrAlreadyEnrolled
	}
	if !b.IsOpen() {
		return nil, repositories.ErrBootcampNotOpen
	}
	if b.IsFull() {
		return nil, repositories.ErrBootcampFull
	}

	e.ID = newID(e.ID)
	if e.Status == "" {
		e.Status = models.EnrollmentActive
	}
	e.EnrolledAt = r.s.now()
	stored := *e
	r.s.enrollments.put(e.ID, &stored)

	b.EnrollmentCount++
	b.UpdatedAt = e.EnrolledAt
	return cloneBootcamp(b), nil
}

func (r *BootcampRepository) ListEnrollments(_ context.Context, bootcampID uuid.UUID) ([]*models.Enrollment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := []*models.Enrollment{}
	for _, e := range r.s.enrollments.filter(func(e *models.Enrollment) bool { return e.BootcampID == bootcampID }) {
		c := *e
		out = append(out, &c)
	}
	return out, nil
}

func (r *BootcampRepository) IsEnrolled(_ context.Context, studentID, bootcampID uuid.UUID) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	_, ok := r.s.enrollments.find(func(e *models.Enrollment) bool {
		return e.StudentID == studentID && e.BootcampID == bootcampID && e.Status != models.EnrollmentDropped
	})
	return ok, nil
}
