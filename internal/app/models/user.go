package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// User defines the user model based on the 'users' table.
// Exactly one role profile is attached and its kind always matches RoleType.
type User struct {
	ID           uuid.UUID `json:"id" example:"3f1c7a0e-8f0a-4b8e-9a55-0c8d1f1e2b3c"`
	Email        string    `json:"email" example:"ada@mindforge.dev"`
	PasswordHash string    `json:"-"`
	FirstName    string    `json:"firstName" example:"Ada"`
	LastName     string    `json:"lastName" example:"Lovelace"`
	RoleType     RoleType  `json:"role" example:"FACILITATOR"`
	IsActive     bool      `json:"isActive" example:"true"`
	Profile      Profile   `json:"profile"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Profile is the role-specific record owned by a user
type Profile interface {
	Role() RoleType
	ProfileID() uuid.UUID
}

// StudentProfile defines the student model based on the 'students' table
type StudentProfile struct {
	ID         uuid.UUID  `json:"id"`
	UserID     uuid.UUID  `json:"userId"`
	ParentID   *uuid.UUID `json:"parentId,omitempty"`
	GradeLevel *int       `json:"gradeLevel,omitempty"`
}

// ParentProfile defines the parent model based on the 'parents' table
type ParentProfile struct {
	ID     uuid.UUID `json:"id"`
	UserID uuid.UUID `json:"userId"`
	Phone  *string   `json:"phone,omitempty"`
}

// FacilitatorProfile defines the facilitator model based on the 'facilitators' table
type FacilitatorProfile struct {
	ID             uuid.UUID `json:"id"`
	UserID         uuid.UUID `json:"userId"`
	Bio            string    `json:"bio"`
	Specialization string    `json:"specialization"`
}

// AdminProfile defines the admin model based on the 'admins' table. It carries no ownership scope.
type AdminProfile struct {
	ID     uuid.UUID `json:"id"`
	UserID uuid.UUID `json:"userId"`
}

func (p *StudentProfile) Role() RoleType     { return RoleStudent }
func (p *ParentProfile) Role() RoleType      { return RoleParent }
func (p *FacilitatorProfile) Role() RoleType { return RoleFacilitator }
func (p *AdminProfile) Role() RoleType       { return RoleAdmin }

func (p *StudentProfile) ProfileID() uuid.UUID     { return p.ID }
func (p *ParentProfile) ProfileID() uuid.UUID      { return p.ID }
func (p *FacilitatorProfile) ProfileID() uuid.UUID { return p.ID }
func (p *AdminProfile) ProfileID() uuid.UUID       { return p.ID }

// NewUser builds a user whose role is derived from its profile, so the two can never disagree
func NewUser(email, passwordHash, firstName, lastName string, profile Profile) (*User, error) {
	if profile == nil {
		return nil, fmt.Errorf("user %s: profile is required", email)
	}
	return &User{
		Email:        email,
		PasswordHash: passwordHash,
		FirstName:    firstName,
		LastName:     lastName,
		RoleType:     profile.Role(),
		IsActive:     true,
		Profile:      profile,
	}, nil
}

// NewProfile returns an empty profile of the kind matching role
func NewProfile(role RoleType) (Profile, error) {
	switch role {
	case RoleStudent:
		return &StudentProfile{}, nil
	case RoleParent:
		return &ParentProfile{}, nil
	case RoleFacilitator:
		return &FacilitatorProfile{}, nil
	case RoleAdmin:
		return &AdminProfile{}, nil
	}
	return nil, fmt.Errorf("unknown role %q", role)
}

// FullName joins first and last name
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// Student returns the student profile when the user is a student
func (u *User) Student() (*StudentProfile, bool) {
	p, ok := u.Profile.(*StudentProfile)
	return p, ok
}

// Parent returns the parent profile when the user is a parent
func (u *User) Parent() (*ParentProfile, bool) {
	p, ok := u.Profile.(*ParentProfile)
	return p, ok
}

// Facilitator returns the facilitator profile when the user is a facilitator
func (u *User) Facilitator() (*FacilitatorProfile, bool) {
	p, ok := u.Profile.(*FacilitatorProfile)
	return p, ok
}

// Admin returns the admin profile when the user is an admin
func (u *User) Admin() (*AdminProfile, bool) {
	p, ok := u.Profile.(*AdminProfile)
	return p, ok
}
