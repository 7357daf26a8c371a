package seed

import (
	"context"
	"testing"

	"github.com/mindforge/mindforge-api/internal/app/models"
	"github.com/mindforge/mindforge-api/internal/app/repositories/inmem"
	"github.com/mindforge/mindforge-api/internal/pkg/auth"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestCreateDefaultDataIsIdempotent(t *testing.T) {
	ctx := context.Background()
	repos := inmem.NewRepositories()
	hasher := auth.NewPasswordHasher(bcrypt.MinCost)
	admin := Admin{Email: "root@mindforge.dev", Password: "changeme123", FirstName: "System", LastName: "Admin"}

	require.NoError(t, CreateDefaultData(ctx, repos, hasher, admin, zerolog.Nop()))
	require.NoError(t, CreateDefaultData(ctx, repos, hasher, admin, zerolog.Nop()))

	users, total, err := repos.UserRepository.List(ctx, models.RoleAdmin, 10, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, users, 1)
	assert.Equal(t, models.RoleAdmin, users[0].RoleType)
	assert.True(t, hasher.Check(users[0].PasswordHash, "changeme123"))

	rubrics, err := repos.RubricRepository.List(ctx)
	require.NoError(t, err)
	assert.Len(t, rubrics, len(DefaultRubrics))

	rubric, err := repos.RubricRepository.GetBySkill(ctx, "COLLABORATION")
	require.NoError(t, err)
	require.Len(t, rubric.Levels, 4)
	assert.Equal(t, "Emerging", rubric.Levels[0].Label)
	assert.Equal(t, 4, rubric.Levels[3].Level)
}

func TestCreateDefaultDataWithoutAdmin(t *testing.T) {
	ctx := context.Background()
	repos := inmem.NewRepositories()

	require.NoError(t, CreateDefaultData(ctx, repos, auth.NewPasswordHasher(bcrypt.MinCost), Admin{}, zerolog.Nop()))

	_, total, err := repos.UserRepository.List(ctx, "", 10, 0)
	require.NoError(t, err)
	assert.Zero(t, total)
}
