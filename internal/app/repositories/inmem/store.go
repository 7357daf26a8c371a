// Package inmem provides mutex-guarded in-memory implementations of every repository interface.
// It mirrors the Postgres semantics (unique keys, cascades, bounded enrollment) for tests and local runs.
package inmem

import (
	"cmp"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/mindforge/mindforge-api/internal/app/models"
	"github.com/mindforge/mindforge-api/internal/app/repositories"
)

// table keeps rows in insertion order
type table[T any] struct {
	rows  map[uuid.UUID]*T
	order []uuid.UUID
}

func newTable[T any]() *table[T] {
	return &table[T]{rows: make(map[uuid.UUID]*T)}
}

func (t *table[T]) get(id uuid.UUID) (*T, bool) {
	row, ok := t.rows[id]
	return row, ok
}

func (t *table[T]) put(id uuid.UUID, row *T) {
	if _, exists := t.rows[id]; !exists {
		t.order = append(t.order, id)
	}
	t.rows[id] = row
}

func (t *table[T]) remove(id uuid.UUID) bool {
	if _, ok := t.rows[id]; !ok {
		return false
	}
	delete(t.rows, id)
	t.order = slices.DeleteFunc(t.order, func(o uuid.UUID) bool { return o == id })
	return true
}

// removeWhere deletes every row matching pred and returns the removed ids
func (t *table[T]) removeWhere(pred func(*T) bool) []uuid.UUID {
	var removed []uuid.UUID
	for _, id := range t.order {
		if pred(t.rows[id]) {
			removed = append(removed, id)
		}
	}
	for _, id := range removed {
		t.remove(id)
	}
	return removed
}

func (t *table[T]) filter(pred func(*T) bool) []*T {
	out := []*T{}
	for _, id := range t.order {
		if row := t.rows[id]; pred == nil || pred(row) {
			out = append(out, row)
		}
	}
	return out
}

func (t *table[T]) find(pred func(*T) bool) (*T, bool) {
	for _, id := range t.order {
		if row := t.rows[id]; pred(row) {
			return row, true
		}
	}
	return nil, false
}

// newest returns rows in reverse insertion order
func newest[T any](rows []*T) []*T {
	slices.Reverse(rows)
	return rows
}

// sortBy orders rows by key, keeping insertion order for ties
func sortBy[T any, K cmp.Ordered](rows []*T, key func(*T) K) {
	slices.SortStableFunc(rows, func(a, b *T) int { return cmp.Compare(key(a), key(b)) })
}

func page[T any](rows []T, limit, offset int) []T {
	if offset >= len(rows) {
		return []T{}
	}
	end := len(rows)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return rows[offset:end]
}

func newID(id uuid.UUID) uuid.UUID {
	if id == uuid.Nil {
		return uuid.New()
	}
	return id
}

// store is the shared state behind every repository of one NewRepositories call
type store struct {
	mu  sync.RWMutex
	now func() time.Time

	users        *table[models.User]
	bootcamps    *table[models.Bootcamp]
	enrollments  *table[models.Enrollment]
	sessions     *table[models.Session]
	activities   *table[models.SessionActivity]
	attendance   *table[models.AttendanceRecord]
	discussions  *table[models.DiscussionTopic]
	rubrics      *table[models.Rubric]
	progress     *table[models.ProgressRecord]
	streams      *table[models.KnowledgeStream]
	assignments  *table[models.StudentKnowledgeStream]
	comms        *table[models.Communication]
	readReceipts *table[models.ReadReceipt]
}

func newStore() *store {
	return &store{
		now:          func() time.Time { return time.Now().UTC() },
		users:        newTable[models.User](),
		bootcamps:    newTable[models.Bootcamp](),
		enrollments:  newTable[models.Enrollment](),
		sessions:     newTable[models.Session](),
		activities:   newTable[models.SessionActivity](),
		attendance:   newTable[models.AttendanceRecord](),
		discussions:  newTable[models.DiscussionTopic](),
		rubrics:      newTable[models.Rubric](),
		progress:     newTable[models.ProgressRecord](),
		streams:      newTable[models.KnowledgeStream](),
		assignments:  newTable[models.StudentKnowledgeStream](),
		comms:        newTable[models.Communication](),
		readReceipts: newTable[models.ReadReceipt](),
	}
}

// NewRepositories returns a full repository set sharing one in-memory store
func NewRepositories() *repositories.Repositories {
	s := newStore()
	return &repositories.Repositories{
		UserRepository:            &UserRepository{s: s},
		BootcampRepository:        &BootcampRepository{s: s},
		SessionRepository:         &SessionRepository{s: s},
		ActivityRepository:        &ActivityRepository{s: s},
		AttendanceRepository:      &AttendanceRepository{s: s},
		DiscussionRepository:      &DiscussionRepository{s: s},
		RubricRepository:          &RubricRepository{s: s},
		ProgressRepository:        &ProgressRepository{s: s},
		KnowledgeStreamRepository: &KnowledgeStreamRepository{s: s},
		CommunicationRepository:   &CommunicationRepository{s: s},
	}
}

// cascadeSession removes a session's children. Caller holds the write lock.
func (s *store) cascadeSession(sessionID uuid.UUID) {
	s.activities.removeWhere(func(a *models.SessionActivity) bool { return a.SessionID == sessionID })
	s.attendance.removeWhere(func(a *models.AttendanceRecord) bool { return a.SessionID == sessionID })
	s.progress.removeWhere(func(p *models.ProgressRecord) bool {
		return p.SessionID != nil && *p.SessionID == sessionID
	})
}

// cascadeBootcamp removes a bootcamp's children. Caller holds the write lock.
func (s *store) cascadeBootcamp(bootcampID uuid.UUID) {
	for _, id := range s.sessions.removeWhere(func(x *models.Session) bool { return x.BootcampID == bootcampID }) {
		s.cascadeSession(id)
	}
	s.discussions.removeWhere(func(d *models.DiscussionTopic) bool { return d.BootcampID == bootcampID })
	s.enrollments.removeWhere(func(e *models.Enrollment) bool { return e.BootcampID == bootcampID })
	s.progress.removeWhere(func(p *models.ProgressRecord) bool {
		return p.BootcampID != nil && *p.BootcampID == bootcampID
	})
}
