package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUserDerivesRoleFromProfile(t *testing.T) {
	u, err := NewUser("f@mindforge.dev", "hash", "Fay", "Lee", &FacilitatorProfile{Specialization: "math"})
	require.NoError(t, err)
	assert.Equal(t, RoleFacilitator, u.RoleType)
	assert.True(t, u.IsActive)

	f, ok := u.Facilitator()
	assert.True(t, ok)
	assert.Equal(t, "math", f.Specialization)

	_, ok = u.Student()
	assert.False(t, ok)
}

func TestNewUserRequiresProfile(t *testing.T) {
	_, err := NewUser("x@mindforge.dev", "hash", "X", "Y", nil)
	assert.Error(t, err)
}

func TestNewProfile(t *testing.T) {
	for _, role := range []RoleType{RoleStudent, RoleParent, RoleFacilitator, RoleAdmin} {
		p, err := NewProfile(role)
		require.NoError(t, err)
		assert.Equal(t, role, p.Role())
	}
	_, err := NewProfile("TEACHER")
	assert.Error(t, err)
	assert.False(t, RoleType("TEACHER").Valid())
}
