package models

import "github.com/google/uuid"

// Principal is the authenticated caller as established by the auth middleware
type Principal struct {
	UserID uuid.UUID
	Email  string
	Role   RoleType
}

// Is reports whether the principal holds one of roles
func (p Principal) Is(roles ...RoleType) bool {
	for _, r := range roles {
		if p.Role == r {
			return true
		}
	}
	return false
}
