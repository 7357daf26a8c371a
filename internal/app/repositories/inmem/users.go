package inmem

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/mindforge/mindforge-api/internal/app/models"
	"github.com/mindforge/mindforge-api/internal/app/repositories"
)

// UserRepository is the in-memory IUserRepository
type UserRepository struct {
	s *store
}

var _ repositories.IUserRepository = (*UserRepository)(nil)

func cloneProfile(p models.Profile) models.Profile {
	switch v := p.(type) {
	case *models.StudentProfile:
		c := *v
		return &c
	case *models.ParentProfile:
		c := *v
		return &c
	case *models.FacilitatorProfile:
		c := *v
		return &c
	case *models.AdminProfile:
		c := *v
		return &c
	}
	return nil
}

func cloneUser(u *models.User) *models.User {
	c := *u
	c.Profile = cloneProfile(u.Profile)
	return &c
}

// Create stores the user and assigns ids to it and its profile
func (r *UserRepository) Create(_ context.Context, u *models.User) error {
	if u.Profile == nil {
		return errors.New("user has no profile")
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, taken := r.s.users.find(func(x *models.User) bool { return strings.EqualFold(x.Email, u.Email) }); taken {
		return repositories.ErrEmailTaken
	}
	if sp, ok := u.Profile.(*models.StudentProfile); ok && sp.ParentID != nil {
		if !profileExists[*models.ParentProfile](r.s, *sp.ParentID) {
			return repositories.ErrUnknownReference
		}
	}

	u.ID = newID(u.ID)
	switch p := u.Profile.(type) {
	case *models.StudentProfile:
		p.ID, p.UserID = newID(p.ID), u.ID
	case *models.ParentProfile:
		p.ID, p.UserID = newID(p.ID), u.ID
	case *models.FacilitatorProfile:
		p.ID, p.UserID = newID(p.ID), u.ID
	case *models.AdminProfile:
		p.ID, p.UserID = newID(p.ID), u.ID
	}
	now := r.s.now()
	u.CreatedAt, u.UpdatedAt = now, now
	r.s.users.put(u.ID, cloneUser(u))
	return nil
}

func (r *UserRepository) GetByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.users.get(id)
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return cloneUser(u), nil
}

func (r *UserRepository) GetByEmail(_ context.Context, email string) (*models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.users.find(func(x *models.User) bool { return x.Email == email })
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return cloneUser(u), nil
}

func (r *UserRepository) List(_ context.Context, role models.RoleType, limit, offset int) ([]*models.User, int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	rows := newest(r.s.users.filter(func(u *models.User) bool { return role == "" || u.RoleType == role }))
	out := []*models.User{}
	for _, u := range page(rows, limit, offset) {
		out = append(out, cloneUser(u))
	}
	return out, int64(len(rows)), nil
}

func (r *UserRepository) MissingIDs(_ context.Context, ids []uuid.UUID) ([]uuid.UUID, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	missing := []uuid.UUID{}
	for _, id := range ids {
		if _, ok := r.s.users.get(id); !ok {
			missing = append(missing, id)
		}
	}
	return missing, nil
}

// profile returns a copy of the first profile of type P matching pred
func profile[P models.Profile](s *store, pred func(P) bool) (P, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var zero P
	for _, u := range s.users.filter(nil) {
		if p, ok := u.Profile.(P); ok && pred(p) {
			return cloneProfile(p).(P), nil
		}
	}
	return zero, repositories.ErrNotFound
}

func (r *UserRepository) GetFacilitatorByUserID(_ context.Context, userID uuid.UUID) (*models.FacilitatorProfile, error) {
	return profile(r.s, func(p *models.FacilitatorProfile) bool { return p.UserID == userID })
}

func (r *UserRepository) GetFacilitatorByID(_ context.Context, id uuid.UUID) (*models.FacilitatorProfile, error) {
	return profile(r.s, func(p *models.FacilitatorProfile) bool { return p.ID == id })
}

func (r *UserRepository) GetAdminByUserID(_ context.Context, userID uuid.UUID) (*models.AdminProfile, error) {
	return profile(r.s, func(p *models.AdminProfile) bool { return p.UserID == userID })
}

func (r *UserRepository) GetStudentByID(_ context.Context, id uuid.UUID) (*models.StudentProfile, error) {
	return profile(r.s, func(p *models.StudentProfile) bool { return p.ID == id })
}

func (r *UserRepository) GetStudentByUserID(_ context.Context, userID uuid.UUID) (*models.StudentProfile, error) {
	return profile(r.s, func(p *models.StudentProfile) bool { return p.UserID == userID })
}

func (r *UserRepository) GetParentByUserID(_ context.Context, userID uuid.UUID) (*models.ParentProfile, error) {
	return profile(r.s, func(p *models.ParentProfile) bool { return p.UserID == userID })
}

// profileExists reports whether a profile of type P has the given id. Caller holds the lock.
func profileExists[P models.Profile](s *store, id uuid.UUID) bool {
	for _, u := range s.users.filter(nil) {
		if p, ok := u.Profile.(P); ok && p.ProfileID() == id {
			return true
		}
	}
	return false
}
