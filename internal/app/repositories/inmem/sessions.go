package inmem

import (
	"context"

	"github.com/google/uuid"
	"github.com/mindforge/mindforge-api/internal/app/models"
	"github.com/mindforge/mindforge-api/internal/app/repositories"
)

// SessionRepository is the in-memory ISessionRepository
type SessionRepository struct {
	s *store
}

var _ repositories.ISessionRepository = (*SessionRepository)(nil)

func cloneSession(x *models.Session) *models.Session {
	c := *x
	c.Activities = nil
	return &c
}

func (r *SessionRepository) dayTaken(x *models.Session) bool {
	_, taken := r.s.sessions.find(func(o *models.Session) bool {
		return o.ID != x.ID && o.BootcampID == x.BootcampID && o.Day == x.Day
	})
	return taken
}

func (r *SessionRepository) Create(_ context.Context, x *models.Session) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.bootcamps.get(x.BootcampID); !ok {
		return repositories.ErrUnknownReference
	}
	x.ID = newID(x.ID)
	if r.dayTaken(x) {
		return repositories.ErrDuplicateDay
	}
	now := r.s.now()
	x.CreatedAt, x.UpdatedAt = now, now
	r.s.sessions.put(x.ID, cloneSession(x))
	return nil
}

func (r *SessionRepository) GetByID(_ context.Context, id uuid.UUID) (*models.Session, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	x, ok := r.s.sessions.get(id)
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return cloneSession(x), nil
}

func (r *SessionRepository) GetByDay(_ context.Context, bootcampID uuid.UUID, day int) (*models.Session, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	x, ok := r.s.sessions.find(func(o *models.Session) bool { return o.BootcampID == bootcampID && o.Day == day })
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return cloneSession(x), nil
}

func (r *SessionRepository) ListByBootcamp(_ context.Context, bootcampID uuid.UUID) ([]*models.Session, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	rows := r.s.sessions.filter(func(o *models.Session) bool { return o.BootcampID == bootcampID })
	sortBy(rows, func(o *models.Session) int { return o.Day })
	out := []*models.Session{}
	for _, x := range rows {
		out = append(out, cloneSession(x))
	}
	return out, nil
}

func (r *SessionRepository) Update(_ context.Context, x *models.Session) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	current, ok := r.s.sessions.get(x.ID)
	if !ok {
		return repositories.ErrNotFound
	}
	x.BootcampID = current.BootcampID
	if r.dayTaken(x) {
		return repositories.ErrDuplicateDay
	}
	x.CreatedAt = current.CreatedAt
	x.UpdatedAt = r.s.now()
	r.s.sessions.put(x.ID, cloneSession(x))
	return nil
}

func (r *SessionRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if !r.s.sessions.remove(id) {
		return repositories.ErrNotFound
	}
	r.s.cascadeSession(id)
	return nil
}

// ActivityRepository is the in-memory IActivityRepository
type ActivityRepository struct {
	s *store
}

var _ repositories.IActivityRepository = (*ActivityRepository)(nil)

func (r *ActivityRepository) timeTaken(a *models.SessionActivity) bool {
	_, taken := r.s.activities.find(func(o *models.SessionActivity) bool {
		return o.ID != a.ID && o.SessionID == a.SessionID && o.Time == a.Time
	})
	return taken
}

func (r *ActivityRepository) Create(_ context.Context, a *models.SessionActivity) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.sessions.get(a.SessionID); !ok {
		return repositories.ErrUnknownReference
	}
	a.ID = newID(a.ID)
	if r.timeTaken(a) {
		return repositories.ErrDuplicateTime
	}
	now := r.s.now()
	a.CreatedAt, a.UpdatedAt = now, now
	c := *a
	r.s.activities.put(a.ID, &c)
	return nil
}

func (r *ActivityRepository) GetByID(_ context.Context, id uuid.UUID) (*models.SessionActivity, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	a, ok := r.s.activities.get(id)
	if !ok {
		return nil, repositories.ErrNotFound
	}
	c := *a
	return &c, nil
}

func (r *ActivityRepository) GetByTime(_ context.Context, sessionID uuid.UUID, at string) (*models.SessionActivity, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	a, ok := r.s.activities.find(func(o *models.SessionActivity) bool { return o.SessionID == sessionID && o.Time == at })
	if !ok {
		return nil, repositories.ErrNotFound
	}
	c := *a
	return &c, nil
}

func (r *ActivityRepository) ListBySession(_ context.Context, sessionID uuid.UUID) ([]*models.SessionActivity, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	rows := r.s.activities.filter(func(o *models.SessionActivity) bool { return o.SessionID == sessionID })
	sortBy(rows, func(o *models.SessionActivity) string { return o.Time })
	out := []*models.SessionActivity{}
	for _, a := range rows {
		c := *a
		out = append(out, &c)
	}
	return out, nil
}

func (r *ActivityRepository) Update(_ context.Context, a *models.SessionActivity) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	current, ok := r.s.activities.get(a.ID)
	if !ok {
		return repositories.ErrNotFound
	}
	a.SessionID = current.SessionID
	if r.timeTaken(a) {
		return repositories.ErrDuplicateTime
	}
	a.CreatedAt = current.CreatedAt
	a.UpdatedAt = r.s.now()
	c := *a
	r.s.activities.put(a.ID, &c)
	return nil
}

func (r *ActivityRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if !r.s.activities.remove(id) {
		return repositories.ErrNotFound
	}
	return nil
}

// AttendanceRepository is the in-memory IAttendanceRepository
type AttendanceRepository struct {
	s *store
}

var _ repositories.IAttendanceRepository = (*AttendanceRepository)(nil)

func (r *AttendanceRepository) Create(_ context.Context, a *models.AttendanceRecord) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.sessions.get(a.SessionID); !ok || !profileExists[*models.StudentProfile](r.s, a.StudentID) {
		return repositories.ErrUnknownReference
	}
	if _, dup := r.s.attendance.find(func(o *models.AttendanceRecord) bool {
		return o.SessionID == a.SessionID && o.StudentID == a.StudentID
	}); dup {
		return repositories.ErrDuplicateRecord
	}
	a.ID = newID(a.ID)
	a.RecordedAt = r.s.now()
	c := *a
	r.s.attendance.put(a.ID, &c)
	return nil
}

func (r *AttendanceRepository) Get(_ context.Context, sessionID, studentID uuid.UUID) (*models.AttendanceRecord, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	a, ok := r.s.attendance.find(func(o *models.AttendanceRecord) bool {
		return o.SessionID == sessionID && o.StudentID == studentID
	})
	if !ok {
		return nil, repositories.ErrNotFound
	}
	c := *a
	return &c, nil
}

func (r *AttendanceRepository) ListBySession(_ context.Context, sessionID uuid.UUID) ([]*models.AttendanceRecord, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := []*models.AttendanceRecord{}
	for _, a := range r.s.attendance.filter(func(o *models.AttendanceRecord) bool { return o.SessionID == sessionID }) {
		c := *a
		out = append(out, &c)
	}
	return out, nil
}

func (r *AttendanceRepository) Update(_ context.Context, a *models.AttendanceRecord) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	current, ok := r.s.attendance.get(a.ID)
	if !ok {
		return repositories.ErrNotFound
	}
	current.Status = a.Status
	current.Notes = a.Notes
	current.RecordedBy = a.RecordedBy
	current.RecordedAt = r.s.now()
	a.RecordedAt = current.RecordedAt
	return nil
}
