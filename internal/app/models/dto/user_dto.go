package dto

import "github.com/mindforge/mindforge-api/internal/app/models"

// UserFilterRequest narrows the admin user listing
type UserFilterRequest struct {
	Role models.RoleType `form:"role" binding:"omitempty,oneof=STUDENT PARENT FACILITATOR ADMIN"`
}
